package auth

import (
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Username    string `json:"username" binding:"required"`
	DateOfBirth string `json:"dob" binding:"required,datetime=2006-01-02"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler handles registration of a regular user account
// @Summary Register a new user account
// @Description Email must not already exist and password must be at least 6 characters
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Registration information, dob in YYYY-MM-DD"
// @Success 201 {object} model.AuthResponse "User created, token issued"
// @Failure 400 {object} utilities.ErrorResponse "Validation failed or email already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error(
			"Valid email, password of at least 6 characters, username and date of birth must be provided",
		))
		return
	}

	var existing model.User
	err := lh.DB.Where("email = ?", info.Email).First(&existing).Error

	switch {
	case err == nil:
		LogAuthAttempt("warning", "Register", "Fail", info.Email, "email already exists")
		c.JSON(http.StatusBadRequest, utilities.Error("User already exists"))
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed hash password: %s", err.Error()),
		))
		return
	}

	user := model.User{
		Email:       info.Email,
		Password:    hashedPassword,
		Username:    info.Username,
		DateOfBirth: info.DateOfBirth,
		Role:        model.RoleUser,
	}
	if err := lh.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to create user: %s", err.Error()),
		))
		return
	}

	token, err := GenerateAccessToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	LogAuthAttempt("info", "Register", "Success", user.Email, "")
	c.JSON(http.StatusCreated, model.AuthResponse{
		Status:  "success",
		Message: "Registration successful",
		Data:    model.AuthPayload{User: user, Token: token},
	})
}

// LoginHandler handles login for regular user accounts
// @Summary Login with email and password
// @Description Admin accounts must use the admin login surface instead
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AuthResponse "Token issued"
// @Failure 400 {object} utilities.ErrorResponse "Credentials not provided"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account role not accepted here"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	lh.login(c, model.RoleUser)
}

// AdminLoginHandler handles login for admin accounts only
// @Summary Login to the admin console
// @Description Only accounts with the admin role are accepted
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AuthResponse "Token issued"
// @Failure 400 {object} utilities.ErrorResponse "Credentials not provided"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account role not accepted here"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/admin/login [post]
func (lh *LocalAuthHandler) AdminLoginHandler(c *gin.Context) {
	lh.login(c, model.RoleAdmin)
}

// login verifies credentials and issues a token scoped to the matched role.
// Unknown email and wrong password produce the same 401 so the two cases
// cannot be told apart from outside.
func (lh *LocalAuthHandler) login(c *gin.Context, expectedRole string) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Error("Email or password is not provided"))
		return
	}

	var user model.User
	err := lh.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt("warning", "Login", "Fail", info.Email, "unknown email")
		c.JSON(http.StatusUnauthorized, utilities.Error("Email or password is incorrect"))
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		LogAuthAttempt("warning", "Login", "Fail", info.Email, "wrong password")
		c.JSON(http.StatusUnauthorized, utilities.Error("Email or password is incorrect"))
		return
	}

	if user.Role != expectedRole {
		LogAuthAttempt("warning", "Login", "Fail", info.Email, "role mismatch")
		c.JSON(http.StatusForbidden, utilities.Error("Account is not allowed on this login"))
		return
	}

	token, err := GenerateAccessToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.Error(
			fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		))
		return
	}

	LogAuthAttempt("info", "Login", "Success", user.Email, "")
	c.JSON(http.StatusOK, model.AuthResponse{
		Status:  "success",
		Message: "Login successful",
		Data:    model.AuthPayload{User: user, Token: token},
	})
}
