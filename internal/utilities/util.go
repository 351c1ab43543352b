// Package utilities contain utility code that use across the package
package utilities

import (
	"jobportal-backend/internal/model"
	"errors"
	"log"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse is the error envelope returned by every failing endpoint
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse is the envelope for successful calls without a data payload
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DataResponse is the envelope for successful calls carrying a data payload
type DataResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// Error builds the standard error envelope
func Error(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}

// Message builds the standard success envelope without data
func Message(message string) MessageResponse {
	return MessageResponse{Status: "success", Message: message}
}

// Data builds the standard success envelope around a payload
func Data(payload interface{}) DataResponse {
	return DataResponse{Status: "success", Data: payload}
}

// ExtractUser extracts the user model from Gin context.
// It no longer aborts the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, errors.New("User information not provided")
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// CreateAdmin creates an admin user with the given credentials in the provided database.
func CreateAdmin(email string, password string, username string, db *gorm.DB) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.User{
		Email:    email,
		Username: username,
		Password: hashedPassword,
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}

// Contains checks if a string is present in a slice of strings.
func Contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
