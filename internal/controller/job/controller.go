// Package job provides HTTP handlers for job listing, search and bookmarks.
package job

import (
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobController handles job related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// SearchJobs fetches all jobs matching the optional filter query parameters.
// Every filter value is passed as a bound parameter; absent filters impose
// no constraint, so an empty query returns the whole table.
// @Summary Search jobs with optional filters
// @Description Filters combine with AND; each skill in the comma-separated skills filter must be a member of the job's skill set (case insensitive)
// @Tags Job
// @Produce json
// @Param search query string false "Substring match against title or company, case insensitive"
// @Param type query string false "Exact match on job type"
// @Param location query string false "Substring match on location, case insensitive"
// @Param salary query integer false "Minimum salary in thousands, compared against the numeric prefix of the salary field"
// @Param skills query string false "Comma-separated skills, all required" example(React,Node.js)
// @Success 200 {object} utilities.DataResponse "Matching jobs"
// @Failure 400 {object} utilities.ErrorResponse "Salary filter is not an integer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs [get]
func (jc *JobController) SearchJobs(c *gin.Context) {

	rawSearch := c.Query("search")
	rawType := c.Query("type")
	rawLocation := c.Query("location")
	rawSalary := c.Query("salary")
	rawSkills := c.Query("skills")

	result := jc.DB.Model(&model.Job{})

	if rawSearch != "" {
		pattern := "%" + rawSearch + "%"
		result = result.Where("(title ILIKE ? OR company ILIKE ?)", pattern, pattern)
	}

	if rawType != "" {
		result = result.Where("type = ?", rawType)
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	if rawSalary != "" {
		floor, err := strconv.Atoi(rawSalary)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.Error("Salary filter must be an integer"))
			return
		}
		// Compare against the numeric prefix of salary text such as "90k"
		result = result.Where(
			"NULLIF(regexp_replace(salary, '[^0-9].*$', ''), '')::bigint >= ?", floor,
		)
	}

	if rawSkills != "" {
		for _, skill := range strings.Split(rawSkills, ",") {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			result = result.Where("? ILIKE ANY(skills)", skill)
		}
	}

	var jobs []model.Job
	if err := result.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error("Failed to fetch jobs"))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(jobs))
}

// GetJobByID fetches a job by its ID from the database
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param id path integer true "ID of desired job"
// @Success 200 {object} utilities.DataResponse "The job with the specified ID"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Invalid job id"))
		return
	}

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Error("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(job))
}

// CreateJob handles the creation of a new job listing by an authenticated user.
// @Summary Create job listing based on given json structure
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Input job information"
// @Success 201 {object} utilities.DataResponse "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	job := model.Job{}
	if err := c.ShouldBindJSON(&job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error(
			fmt.Sprintf("Invalid request body: %s", err.Error()),
		))
		return
	}

	job.UserID = user.ID
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprint("Failed to create job: ", err),
		))
		return
	}

	c.JSON(http.StatusCreated, utilities.Data(job))
}

// ToggleSaveJob bookmarks a job for the caller, or removes the bookmark if
// it already exists. The insert relies on the composite primary key of
// saved_jobs, so concurrent calls cannot produce duplicate rows.
// @Summary Toggle a saved-job bookmark
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job to save or unsave"
// @Success 200 {object} utilities.MessageResponse "Saved or removed"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/jobs/{id}/save [post]
func (jc *JobController) ToggleSaveJob(c *gin.Context) {
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

	job := model.Job{}
	if err := jc.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Error("Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		))
		return
	}

	saved := model.SavedJob{UserID: user.ID, JobID: uint(jobID)}
	result := jc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&saved)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to save job: %s", result.Error.Error()),
		))
		return
	}

	if result.RowsAffected == 0 {
		// Bookmark already present, the toggle removes it
		if err := jc.DB.Where("user_id = ? AND job_id = ?", user.ID, jobID).
			Delete(&model.SavedJob{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Error(
				fmt.Sprintf("Failed to unsave job: %s", err.Error()),
			))
			return
		}
		c.JSON(http.StatusOK, utilities.Message("Job removed from saved jobs"))
		return
	}

	c.JSON(http.StatusOK, utilities.Message("Job saved successfully"))
}

// GetSavedJobs returns the ids of every job the caller has bookmarked
// @Summary List saved job ids
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "Array of job ids"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/saved-jobs [get]
func (jc *JobController) GetSavedJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	jobIDs := []uint{}
	if err := jc.DB.Model(&model.SavedJob{}).
		Where("user_id = ?", user.ID).
		Pluck("job_id", &jobIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error("Failed to fetch saved jobs"))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(jobIDs))
}
