package repositories

import (
	"errors"
	"time"

	"rallycommand-api/models"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary. Every lookup and mutation of an owned
// entity is scoped by user id; components receive a Store instead of a
// database handle.
type Store interface {
	// Users
	FindUserByID(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	InsertUser(user *models.User) error
	UpdateUser(user *models.User) error
	DeleteUser(id string) error

	// Vehicles
	FindVehicle(id, userID string) (*models.Vehicle, error)
	ListVehicles(userID string) ([]models.Vehicle, error)
	CountVehicles(userID string) (int64, error)
	InsertVehicle(vehicle *models.Vehicle) error
	UpdateVehicle(vehicle *models.Vehicle) error
	DeleteVehicle(id, userID string) error

	// Inventory items
	FindItem(id, userID string) (*models.InventoryItem, error)
	ListItems(userID string) ([]models.InventoryItem, error)
	InsertItem(item *models.InventoryItem) error
	UpdateItem(item *models.InventoryItem) error
	DeleteItem(id, userID string) error
	// DebitItemQuantity decrements quantity by amount only when the result
	// stays non-negative. Reports whether a row was updated.
	DebitItemQuantity(id, userID string, amount int, now time.Time) (bool, error)
	// SetItemQuantity overwrites quantity. Reports whether a row was updated.
	SetItemQuantity(id, userID string, quantity int, now time.Time) (bool, error)

	// Usage logs
	InsertUsageLog(log *models.UsageLog) error
	ListUsageLogsByItem(itemID, userID string) ([]models.UsageLog, error)
	ListUsageLogsByUser(userID string, limit int) ([]models.UsageLog, error)
	DeleteUsageLogsByItem(itemID string) error
	DeleteUsageLogsByUser(userID string) error

	// Setups (owner-scoped transitively through the vehicle)
	FindSetup(id string) (*models.Setup, error)
	ListSetupsByVehicle(vehicleID string) ([]models.Setup, error)
	ListSetupsByGroup(groupID string) ([]models.Setup, error)
	InsertSetup(setup *models.Setup) error
	UpdateSetup(setup *models.Setup) error
	DeleteSetup(id string) error
	DeleteSetupsByVehicle(vehicleID string) error
	// DetachSetupsFromGroup nulls group_id on every setup in the group.
	DetachSetupsFromGroup(groupID string) error

	// Setup groups
	FindSetupGroup(id, userID string) (*models.SetupGroup, error)
	ListSetupGroupsByVehicle(vehicleID, userID string) ([]models.SetupGroup, error)
	InsertSetupGroup(group *models.SetupGroup) error
	UpdateSetupGroup(group *models.SetupGroup) error
	DeleteSetupGroup(id, userID string) error
	DeleteSetupGroupsByVehicle(vehicleID string) error

	// Repair logs
	FindRepair(id, userID string) (*models.RepairLog, error)
	ListRepairs(userID string) ([]models.RepairLog, error)
	ListRepairsByVehicle(vehicleID, userID string) ([]models.RepairLog, error)
	InsertRepair(repair *models.RepairLog) error
	UpdateRepair(repair *models.RepairLog) error
	DeleteRepair(id, userID string) error
	DeleteRepairsByVehicle(vehicleID string) error
	DeleteRepairsByUser(userID string) error

	// Stocktakes
	FindStocktake(id, userID string) (*models.Stocktake, error)
	ListStocktakes(userID string) ([]models.Stocktake, error)
	InsertStocktake(stocktake *models.Stocktake) error
	UpdateStocktake(stocktake *models.Stocktake) error
	DeleteStocktake(id, userID string) error
	DeleteStocktakesByUser(userID string) error

	// Feedback
	InsertFeedback(feedback *models.Feedback) error
	ListFeedback(userID string) ([]models.Feedback, error)
	DeleteFeedbackByUser(userID string) error
}
