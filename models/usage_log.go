package models

import (
	"time"
)

// UsageLog is a committed ledger transaction. Records are never updated once written.
type UsageLog struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	ItemID       string    `json:"item_id" gorm:"not null;index;size:191"`
	UserID       string    `json:"user_id" gorm:"not null;index;size:191"`
	QuantityUsed int       `json:"quantity_used" gorm:"not null"`
	Reason       string    `json:"reason" gorm:"size:255"`
	EventName    string    `json:"event_name" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
}
