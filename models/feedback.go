package models

import (
	"time"
)

// Feedback is a free-standing record with no cross-entity references.
type Feedback struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	UserID       string    `json:"user_id" gorm:"index;size:191"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Email        string    `json:"email" gorm:"size:255"`
	FeedbackType string    `json:"feedback_type" gorm:"size:20"` // bug, feature
	Message      string    `json:"message" gorm:"not null;type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
