package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a user's submission for an assignment. Either Content or
// AttachmentPath (a media host URL) is set, possibly both.
type Attachment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content        *string   `json:"content"`
	AttachmentPath *string   `json:"attachment_path"`
	SubmittedTime  time.Time `gorm:"not null" json:"submitted_time"`
	Point          string    `gorm:"not null" json:"point"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultPoint is the score of an attachment that has not been graded yet.
const DefaultPoint = "0"
