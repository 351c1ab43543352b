// Package application provides HTTP handlers for job application operations.
package application

import (
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type applyInfo struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	CoverLetter string `json:"coverLetter" binding:"required"`
	CVID        *uint  `json:"cvId"`
}

// ApplyHandler handles the submission of a job application.
// A user may apply to the same job more than once; re-applying is allowed.
// @Summary Apply to a job
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job to apply to"
// @Param application body applyInfo true "Application information"
// @Success 201 {object} utilities.DataResponse "Application submitted"
// @Failure 400 {object} utilities.ErrorResponse "Missing field, invalid job id or invalid cv reference"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Invalid job id"))
		return
	}

	var info applyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error(
			"Name, email and cover letter are required",
		))
		return
	}

	application := model.Application{
		JobID:       uint(jobID),
		UserID:      user.ID,
		Name:        info.Name,
		Email:       info.Email,
		CoverLetter: info.CoverLetter,
		CVID:        info.CVID,
		Status:      model.ApplicationStatusPending,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pgErr *pgconn.PgError
		// A foreign key violation means the job or cv id does not exist
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			c.JSON(http.StatusBadRequest, utilities.Error("Invalid job or cv reference"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to create application: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusCreated, utilities.Data(application))
}

// MyApplications returns the caller's applications together with the title
// and company of each applied job.
// @Summary List the caller's applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "Applications with job title and company"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/user/applications [get]
func (ac *ApplicationController) MyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	listings := []model.ApplicationListing{}
	if err := ac.DB.Model(&model.Application{}).
		Select("applications.id, applications.job_id, jobs.title AS job_title, jobs.company AS job_company, applications.status, applications.created_at").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.user_id = ?", user.ID).
		Order("applications.created_at DESC").
		Scan(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error("Failed to fetch applications"))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(listings))
}
