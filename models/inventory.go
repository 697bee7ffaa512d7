package models

import (
	"time"
)

// Inventory item caps. Exceeding either is rejected, not truncated.
const (
	MaxItemPhotos       = 3
	MaxItemVehicleLinks = 2
)

// Valid inventory categories
const (
	CategoryParts  = "parts"
	CategoryTools  = "tools"
	CategoryFluids = "fluids"
)

type InventoryItem struct {
	ID          string          `json:"id" gorm:"primaryKey;size:191"`
	UserID      string          `json:"user_id" gorm:"not null;index;size:191"`
	Name        string          `json:"name" gorm:"not null;size:255"`
	Category    string          `json:"category" gorm:"not null;size:20"`
	Subcategory string          `json:"subcategory" gorm:"size:50"` // parts only
	Condition   string          `json:"condition" gorm:"size:50"`   // parts only
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Location    string          `json:"location" gorm:"size:255"`
	PartNumber  string          `json:"part_number" gorm:"size:100"`
	Supplier    string          `json:"supplier" gorm:"size:255"`
	SupplierURL string          `json:"supplier_url" gorm:"size:500"`
	Price       float64         `json:"price" gorm:"default:0"`
	MinStock    int             `json:"min_stock" gorm:"default:1"`
	Notes       string          `json:"notes" gorm:"type:text"`
	Photos      StringSliceType `json:"photos"`
	VehicleIDs  StringSliceType `json:"vehicle_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the item is at or below its minimum stock threshold
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// IsValidCategory checks an inventory category value
func IsValidCategory(category string) bool {
	switch category {
	case CategoryParts, CategoryTools, CategoryFluids:
		return true
	}
	return false
}
