package models

import (
	"time"
)

// Setup holds one tuning configuration for a vehicle. Ownership is transitive
// through the vehicle; setups carry no user_id of their own.
type Setup struct {
	ID        string  `json:"id" gorm:"primaryKey;size:191"`
	VehicleID string  `json:"vehicle_id" gorm:"not null;index;size:191"`
	GroupID   *string `json:"group_id" gorm:"index;size:191"`
	Name      string  `json:"name" gorm:"not null;size:255"`

	Conditions string `json:"conditions" gorm:"size:255"`

	TyreCompound  string `json:"tyre_compound" gorm:"size:50"`
	TyreType      string `json:"tyre_type" gorm:"size:50"`
	TyreSize      string `json:"tyre_size" gorm:"size:50"`
	TyreCondition string `json:"tyre_condition" gorm:"size:50"`

	TyrePressureFL float64 `json:"tyre_pressure_fl"`
	TyrePressureFR float64 `json:"tyre_pressure_fr"`
	TyrePressureRL float64 `json:"tyre_pressure_rl"`
	TyrePressureRR float64 `json:"tyre_pressure_rr"`

	RideHeightFL float64 `json:"ride_height_fl"`
	RideHeightFR float64 `json:"ride_height_fr"`
	RideHeightRL float64 `json:"ride_height_rl"`
	RideHeightRR float64 `json:"ride_height_rr"`

	CamberFront float64 `json:"camber_front"`
	CamberRear  float64 `json:"camber_rear"`
	ToeFront    float64 `json:"toe_front"`
	ToeRear     float64 `json:"toe_rear"`

	SpringRateFront float64 `json:"spring_rate_front"`
	SpringRateRear  float64 `json:"spring_rate_rear"`
	DamperFront     float64 `json:"damper_front"`
	DamperRear      float64 `json:"damper_rear"`
	ARBFront        float64 `json:"arb_front"`
	ARBRear         float64 `json:"arb_rear"`

	AeroFront string `json:"aero_front" gorm:"size:100"`
	AeroRear  string `json:"aero_rear" gorm:"size:100"`

	Rating int    `json:"rating"` // clamped to [0,5]
	Notes  string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClampRating forces a rating into the [0,5] range
func ClampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// SetupGroup bundles setups by session, track and date. Deleting a group
// detaches its setups instead of deleting them.
type SetupGroup struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;index;size:191"`
	VehicleID string    `json:"vehicle_id" gorm:"not null;index;size:191"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	TrackName string    `json:"track_name" gorm:"size:255"`
	Date      string    `json:"date" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
