package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is awaiting review
	ApplicationStatusPending = "PENDING"
	// ApplicationStatusReviewed indicates that the application has been reviewed
	ApplicationStatusReviewed = "REVIEWED"
	// ApplicationStatusAccepted indicates that the applicant has been accepted
	ApplicationStatusAccepted = "ACCEPTED"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "REJECTED"
)

// Application represents a job application record
type Application struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Status string    `gorm:"type:text" json:"status"`

	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Name        string `gorm:"type:text" json:"name"`
	Email       string `gorm:"type:text" json:"email"`
	CoverLetter string `gorm:"type:text" json:"cover_letter"`

	CVID *uint   `json:"cv_id,omitempty"`
	CV   *UserCV `gorm:"foreignKey:CVID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// ApplicationListing is an application joined with the job it targets,
// shaped for the "my applications" endpoint.
type ApplicationListing struct {
	ID         uint      `json:"id"`
	JobID      uint      `json:"job_id"`
	JobTitle   string    `json:"job_title"`
	JobCompany string    `json:"job_company"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
