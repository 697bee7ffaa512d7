package models

import (
	"time"
)

// Repair part sources
const (
	PartSourceInventory = "inventory"
	PartSourceNew       = "new"
)

// RepairPart is one consumed part on a repair log. Inventory-sourced parts
// debit the ledger when the repair is created; "new" parts are cost records only.
type RepairPart struct {
	Source          string  `json:"source"`
	InventoryItemID string  `json:"inventory_item_id,omitempty"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	Cost            float64 `json:"cost"`
}

type RepairLog struct {
	ID             string          `json:"id" gorm:"primaryKey;size:191"`
	UserID         string          `json:"user_id" gorm:"not null;index;size:191"`
	VehicleID      string          `json:"vehicle_id" gorm:"not null;index;size:191"`
	CauseOfDamage  string          `json:"cause_of_damage" gorm:"size:255"`
	AffectedArea   string          `json:"affected_area" gorm:"size:255"`
	PartsUsed      RepairPartList  `json:"parts_used"`
	TotalPartsCost float64         `json:"total_parts_cost"`
	RepairDetails  string          `json:"repair_details" gorm:"type:text"`
	Technicians    StringSliceType `json:"technicians"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
