package model

import (
	"time"

	"github.com/google/uuid"
)

// UserCV stores an uploaded CV with its content as bytes.
// The most recent row per user is the one offered when applying.
type UserCV struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	OriginalName string `gorm:"type:text" json:"original_name"`
	Extension    string `gorm:"type:text" json:"extension"`
	MimeType     string `gorm:"type:text" json:"mime_type"`
	Size         int64  `json:"size"`
	Content      []byte `json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
