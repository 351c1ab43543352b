// Package admin provides HTTP handlers for the admin console.
package admin

import (
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminController handles admin console endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// GetJobs returns every job listing
// @Summary List all jobs
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "All jobs"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/jobs [get]
func (ac *AdminController) GetJobs(c *gin.Context) {
	var jobs []model.Job
	if err := ac.DB.Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(jobs))
}

// GetUsers returns every regular user account
// @Summary List all users
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "All user-role accounts"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	var users []model.User
	if err := ac.DB.Where("role = ?", model.RoleUser).
		Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(users))
}

// DeleteJob removes a job and every application and bookmark referencing it,
// inside one transaction. Either all rows go or none do.
// @Summary Delete a job with its dependents
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job to delete"
// @Success 200 {object} utilities.MessageResponse "Job deleted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Delete failed, transaction rolled back"
// @Router /admin/jobs/{id} [delete]
func (ac *AdminController) DeleteJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Invalid job id"))
		return
	}

	job := model.Job{}
	if err := ac.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Error("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", job.ID).Delete(&model.SavedJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
	if err != nil {
		log.Printf("job delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.Error("Failed to delete job"))
		return
	}

	c.JSON(http.StatusOK, utilities.Message("Job deleted"))
}

// DeleteUser removes a user account together with the applications and
// bookmarks they created, the CVs they uploaded, and the jobs they posted
// (with those jobs' dependents), all inside one transaction.
// @Summary Delete a user with their dependents
// @Description Only admin can access this endpoint; admin accounts cannot be deleted
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "UUID of the user to delete"
// @Success 200 {object} utilities.MessageResponse "User deleted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid user id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Target is an admin account"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Delete failed, transaction rolled back"
// @Router /admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Invalid user id"))
		return
	}

	user := model.User{}
	if err := ac.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Error("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to retrieve user: %s", err.Error()),
		))
		return
	}

	if user.Role == model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.Error("Admin accounts cannot be deleted"))
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		// Rows created by the user
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.UserCV{}).Error; err != nil {
			return err
		}

		// Jobs posted by the user keep foreign keys into applications and
		// saved_jobs of other users, so their dependents go first.
		var jobIDs []uint
		if err := tx.Model(&model.Job{}).Where("user_id = ?", user.ID).
			Pluck("id", &jobIDs).Error; err != nil {
			return err
		}
		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&model.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&model.SavedJob{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", jobIDs).Delete(&model.Job{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("user delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.Error("Failed to delete user"))
		return
	}

	c.JSON(http.StatusOK, utilities.Message("User deleted"))
}

// DashboardStats aggregates the four dashboard counts.
// The counts are independent queries recomputed on every request.
// @Summary Get dashboard aggregate counts
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "Aggregate counts"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/dashboard/stats [get]
func (ac *AdminController) DashboardStats(c *gin.Context) {
	var stats model.DashboardStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalJobs, ac.DB.Model(&model.Job{})},
		{&stats.TotalUsers, ac.DB.Model(&model.User{}).Where("role = ?", model.RoleUser)},
		{&stats.TotalApplications, ac.DB.Model(&model.Application{})},
		{&stats.PendingApplications, ac.DB.Model(&model.Application{}).
			Where("status = ?", model.ApplicationStatusPending)},
	}

	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Error(
				fmt.Sprintf("Database error: %s", err.Error()),
			))
			return
		}
	}

	c.JSON(http.StatusOK, utilities.Data(stats))
}
