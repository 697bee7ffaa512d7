package models

import (
	"time"
)

// Stocktake statuses. The transition is one-way: completed -> applied.
const (
	StocktakeStatusCompleted = "completed"
	StocktakeStatusApplied   = "applied"
)

// StocktakeItem is one counted line inside a stocktake snapshot.
type StocktakeItem struct {
	ItemID           string  `json:"item_id"`
	ItemName         string  `json:"item_name"`
	Location         string  `json:"location"`
	ExpectedQuantity int     `json:"expected_quantity"`
	ActualQuantity   int     `json:"actual_quantity"`
	Difference       int     `json:"difference"`
	Price            float64 `json:"price"`
	ValueDifference  float64 `json:"value_difference"`
}

// Stocktake captures expected-vs-actual quantities at a point in time.
// Counts are committed to inventory only on apply.
type Stocktake struct {
	ID                   string            `json:"id" gorm:"primaryKey;size:191"`
	UserID               string            `json:"user_id" gorm:"not null;index;size:191"`
	Items                StocktakeItemList `json:"items"`
	Notes                string            `json:"notes" gorm:"type:text"`
	Status               string            `json:"status" gorm:"not null;size:20"`
	ItemsMatched         int               `json:"items_matched"`
	ItemsOver            int               `json:"items_over"`
	ItemsUnder           int               `json:"items_under"`
	TotalValueDifference float64           `json:"total_value_difference"`
	AppliedAt            *time.Time        `json:"applied_at"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}
