package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EditableJobInfo is part of a job listing that the poster provides
type EditableJobInfo struct {
	Title        string         `gorm:"type:text;not null" json:"title" binding:"required"`
	Company      string         `gorm:"type:text;not null" json:"company" binding:"required"`
	Location     string         `gorm:"type:text" json:"location"`
	Type         string         `gorm:"type:text" json:"type"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	Salary       string         `gorm:"type:text" json:"salary"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements string         `gorm:"type:text" json:"requirements"`
}

// Job is gorm model for store job listing data in DB
type Job struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	EditableJobInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}
