package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"rallycommand-api/models"
)

// GormStore is the MySQL-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *GormStore) FindUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) InsertUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *GormStore) DeleteUser(id string) error {
	res := s.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Vehicles

func (s *GormStore) FindVehicle(id, userID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}

func (s *GormStore) ListVehicles(userID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *GormStore) CountVehicles(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Vehicle{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *GormStore) InsertVehicle(vehicle *models.Vehicle) error {
	return s.db.Create(vehicle).Error
}

func (s *GormStore) UpdateVehicle(vehicle *models.Vehicle) error {
	return s.db.Save(vehicle).Error
}

func (s *GormStore) DeleteVehicle(id, userID string) error {
	res := s.db.Delete(&models.Vehicle{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Inventory items

func (s *GormStore) FindItem(id, userID string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *GormStore) ListItems(userID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) InsertItem(item *models.InventoryItem) error {
	return s.db.Create(item).Error
}

func (s *GormStore) UpdateItem(item *models.InventoryItem) error {
	return s.db.Save(item).Error
}

func (s *GormStore) DeleteItem(id, userID string) error {
	res := s.db.Delete(&models.InventoryItem{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DebitItemQuantity runs the decrement as a single guarded UPDATE so two
// concurrent debits cannot both read the same starting quantity and drive
// the value negative.
func (s *GormStore) DebitItemQuantity(id, userID string, amount int, now time.Time) (bool, error) {
	res := s.db.Model(&models.InventoryItem{}).
		Where("id = ? AND user_id = ? AND quantity >= ?", id, userID, amount).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) SetItemQuantity(id, userID string, quantity int, now time.Time) (bool, error) {
	res := s.db.Model(&models.InventoryItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Usage logs

func (s *GormStore) InsertUsageLog(log *models.UsageLog) error {
	return s.db.Create(log).Error
}

func (s *GormStore) ListUsageLogsByItem(itemID, userID string) ([]models.UsageLog, error) {
	var logs []models.UsageLog
	err := s.db.Where("item_id = ? AND user_id = ?", itemID, userID).
		Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormStore) ListUsageLogsByUser(userID string, limit int) ([]models.UsageLog, error) {
	var logs []models.UsageLog
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormStore) DeleteUsageLogsByItem(itemID string) error {
	return s.db.Delete(&models.UsageLog{}, "item_id = ?", itemID).Error
}

func (s *GormStore) DeleteUsageLogsByUser(userID string) error {
	return s.db.Delete(&models.UsageLog{}, "user_id = ?", userID).Error
}

// Setups

func (s *GormStore) FindSetup(id string) (*models.Setup, error) {
	var setup models.Setup
	if err := s.db.First(&setup, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &setup, nil
}

func (s *GormStore) ListSetupsByVehicle(vehicleID string) ([]models.Setup, error) {
	var setups []models.Setup
	err := s.db.Where("vehicle_id = ?", vehicleID).Order("created_at DESC").Find(&setups).Error
	if err != nil {
		return nil, err
	}
	return setups, nil
}

func (s *GormStore) ListSetupsByGroup(groupID string) ([]models.Setup, error) {
	var setups []models.Setup
	err := s.db.Where("group_id = ?", groupID).Order("created_at DESC").Find(&setups).Error
	if err != nil {
		return nil, err
	}
	return setups, nil
}

func (s *GormStore) InsertSetup(setup *models.Setup) error {
	return s.db.Create(setup).Error
}

func (s *GormStore) UpdateSetup(setup *models.Setup) error {
	return s.db.Save(setup).Error
}

func (s *GormStore) DeleteSetup(id string) error {
	res := s.db.Delete(&models.Setup{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteSetupsByVehicle(vehicleID string) error {
	return s.db.Delete(&models.Setup{}, "vehicle_id = ?", vehicleID).Error
}

func (s *GormStore) DetachSetupsFromGroup(groupID string) error {
	return s.db.Model(&models.Setup{}).
		Where("group_id = ?", groupID).
		Updates(map[string]interface{}{"group_id": nil, "updated_at": time.Now().UTC()}).Error
}

// Setup groups

func (s *GormStore) FindSetupGroup(id, userID string) (*models.SetupGroup, error) {
	var group models.SetupGroup
	if err := s.db.First(&group, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *GormStore) ListSetupGroupsByVehicle(vehicleID, userID string) ([]models.SetupGroup, error) {
	var groups []models.SetupGroup
	err := s.db.Where("vehicle_id = ? AND user_id = ?", vehicleID, userID).
		Order("created_at DESC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *GormStore) InsertSetupGroup(group *models.SetupGroup) error {
	return s.db.Create(group).Error
}

func (s *GormStore) UpdateSetupGroup(group *models.SetupGroup) error {
	return s.db.Save(group).Error
}

func (s *GormStore) DeleteSetupGroup(id, userID string) error {
	res := s.db.Delete(&models.SetupGroup{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteSetupGroupsByVehicle(vehicleID string) error {
	return s.db.Delete(&models.SetupGroup{}, "vehicle_id = ?", vehicleID).Error
}

// Repair logs

func (s *GormStore) FindRepair(id, userID string) (*models.RepairLog, error) {
	var repair models.RepairLog
	if err := s.db.First(&repair, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &repair, nil
}

func (s *GormStore) ListRepairs(userID string) ([]models.RepairLog, error) {
	var repairs []models.RepairLog
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&repairs).Error
	if err != nil {
		return nil, err
	}
	return repairs, nil
}

func (s *GormStore) ListRepairsByVehicle(vehicleID, userID string) ([]models.RepairLog, error) {
	var repairs []models.RepairLog
	err := s.db.Where("vehicle_id = ? AND user_id = ?", vehicleID, userID).
		Order("created_at DESC").Find(&repairs).Error
	if err != nil {
		return nil, err
	}
	return repairs, nil
}

func (s *GormStore) InsertRepair(repair *models.RepairLog) error {
	return s.db.Create(repair).Error
}

func (s *GormStore) UpdateRepair(repair *models.RepairLog) error {
	return s.db.Save(repair).Error
}

func (s *GormStore) DeleteRepair(id, userID string) error {
	res := s.db.Delete(&models.RepairLog{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteRepairsByVehicle(vehicleID string) error {
	return s.db.Delete(&models.RepairLog{}, "vehicle_id = ?", vehicleID).Error
}

func (s *GormStore) DeleteRepairsByUser(userID string) error {
	return s.db.Delete(&models.RepairLog{}, "user_id = ?", userID).Error
}

// Stocktakes

func (s *GormStore) FindStocktake(id, userID string) (*models.Stocktake, error) {
	var stocktake models.Stocktake
	if err := s.db.First(&stocktake, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &stocktake, nil
}

func (s *GormStore) ListStocktakes(userID string) ([]models.Stocktake, error) {
	var stocktakes []models.Stocktake
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&stocktakes).Error
	if err != nil {
		return nil, err
	}
	return stocktakes, nil
}

func (s *GormStore) InsertStocktake(stocktake *models.Stocktake) error {
	return s.db.Create(stocktake).Error
}

func (s *GormStore) UpdateStocktake(stocktake *models.Stocktake) error {
	return s.db.Save(stocktake).Error
}

func (s *GormStore) DeleteStocktake(id, userID string) error {
	res := s.db.Delete(&models.Stocktake{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteStocktakesByUser(userID string) error {
	return s.db.Delete(&models.Stocktake{}, "user_id = ?", userID).Error
}

// Feedback

func (s *GormStore) InsertFeedback(feedback *models.Feedback) error {
	return s.db.Create(feedback).Error
}

func (s *GormStore) ListFeedback(userID string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *GormStore) DeleteFeedbackByUser(userID string) error {
	return s.db.Delete(&models.Feedback{}, "user_id = ?", userID).Error
}
