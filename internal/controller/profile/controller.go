// Package profile provides HTTP handlers for the user profile and CV uploads.
package profile

import (
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileController handles profile and CV related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// cvMimeTypes maps the accepted CV extensions to their mime types
var cvMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// GetProfile returns the caller's own account
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.DataResponse "The caller's user record"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /api/user/profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(user))
}

// UpdateProfile merges the provided non-empty fields into the caller's account
// @Summary Update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body model.EditableUserInfo true "Fields to update, empty fields are left unchanged"
// @Success 200 {object} utilities.DataResponse "The updated user record"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or email already taken"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/user/profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	var info model.EditableUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error(
			fmt.Sprintf("Invalid request body: %s", err.Error()),
		))
		return
	}

	if info.Email != "" && info.Email != user.Email {
		var existing model.User
		err := pc.DB.Where("email = ?", info.Email).First(&existing).Error
		switch {
		case err == nil:
			c.JSON(http.StatusBadRequest, utilities.Error("Email already taken"))
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Do nothing
		default:
			c.JSON(http.StatusInternalServerError, utilities.Error(
				fmt.Sprintf("Database error: %s", err.Error()),
			))
			return
		}
	}

	utilities.MergeNonEmpty(&user, &info)

	if err := pc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to update profile: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, utilities.Data(user))
}

// UploadCV stores an uploaded CV file for the caller.
// @Summary Upload a CV file
// @Description Only files smaller than 5 MB with .pdf, .doc or .docx extension are permitted
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param cv formData file true "The CV file"
// @Success 201 {object} utilities.DataResponse "CV metadata"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/upload-cv [post]
func (pc *ProfileController) UploadCV(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	rawFile, err := c.FormFile("cv")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.Error(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error(
			fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		))
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	mimeType, allowed := cvMimeTypes[extension]
	if !allowed {
		c.JSON(http.StatusUnsupportedMediaType, utilities.Error(
			fmt.Sprintf("Unsupported file extension: %s", extension),
		))
		return
	}

	opened, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to open file: %s", err.Error()),
		))
		return
	}
	defer func() { _ = opened.Close() }()

	content, err := io.ReadAll(opened)
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.Error("File exceeds the 5 MB limit"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to read file: %s", err.Error()),
		))
		return
	}

	cv := model.UserCV{
		UserID:       user.ID,
		OriginalName: rawFile.Filename,
		Extension:    extension,
		MimeType:     mimeType,
		Size:         int64(len(content)),
		Content:      content,
	}
	if err := pc.DB.Create(&cv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to store cv: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusCreated, utilities.Data(cv))
}

// GetCV serves a previously uploaded CV file back to its owner.
// @Summary Download own CV file
// @Tags Profile
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the CV"
// @Success 200 {file} binary "The CV file content"
// @Failure 400 {object} utilities.ErrorResponse "Invalid cv id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "CV owned by another user"
// @Failure 404 {object} utilities.ErrorResponse "CV not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /user/cv/{id} [get]
func (pc *ProfileController) GetCV(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Error(err.Error()))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Invalid cv id"))
		return
	}

	cv := model.UserCV{}
	if err := pc.DB.Where("id = ?", id).First(&cv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Error("CV not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to retrieve cv: %s", err.Error()),
		))
		return
	}

	if cv.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.Error("You are not allowed to access this CV"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cv.OriginalName))
	c.Data(http.StatusOK, cv.MimeType, cv.Content)
}
