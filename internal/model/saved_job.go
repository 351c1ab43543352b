package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedJob is a user's bookmark of a job. The composite primary key makes
// duplicate bookmarks impossible at the data layer, so the save toggle can
// rely on insert-conflict semantics instead of a read-then-write check.
type SavedJob struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	JobID uint `gorm:"primaryKey" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
