package models

import (
	"time"
)

// MaxVehiclesPerUser caps how many vehicles a single account can hold.
const MaxVehiclesPerUser = 2

type Vehicle struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	UserID       string    `json:"user_id" gorm:"not null;index;size:191"`
	Make         string    `json:"make" gorm:"not null;size:100"`
	Model        string    `json:"model" gorm:"not null;size:100"`
	Registration string    `json:"registration" gorm:"size:50"`
	VIN          string    `json:"vin" gorm:"size:50"`
	Photo        string    `json:"photo" gorm:"type:longtext"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
