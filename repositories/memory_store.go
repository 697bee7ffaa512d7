package repositories

import (
	"sort"
	"sync"
	"time"

	"rallycommand-api/models"
)

// MemoryStore is an in-process Store used by tests. All operations run under
// one mutex, so the conditional quantity updates are atomic like their SQL
// counterparts.
type MemoryStore struct {
	mu sync.Mutex

	users       map[string]models.User
	vehicles    map[string]models.Vehicle
	items       map[string]models.InventoryItem
	usageLogs   map[string]models.UsageLog
	setups      map[string]models.Setup
	setupGroups map[string]models.SetupGroup
	repairs     map[string]models.RepairLog
	stocktakes  map[string]models.Stocktake
	feedback    map[string]models.Feedback

	seq     map[string]int // insertion order, for stable listings
	nextSeq int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]models.User),
		vehicles:    make(map[string]models.Vehicle),
		items:       make(map[string]models.InventoryItem),
		usageLogs:   make(map[string]models.UsageLog),
		setups:      make(map[string]models.Setup),
		setupGroups: make(map[string]models.SetupGroup),
		repairs:     make(map[string]models.RepairLog),
		stocktakes:  make(map[string]models.Stocktake),
		feedback:    make(map[string]models.Feedback),
		seq:         make(map[string]int),
	}
}

func (s *MemoryStore) track(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func (s *MemoryStore) sortAsc(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] < s.seq[ids[j]] })
}

func (s *MemoryStore) sortDesc(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] > s.seq[ids[j]] })
}

// Users

func (s *MemoryStore) FindUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InsertUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	s.track(user.ID)
	return nil
}

func (s *MemoryStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Vehicles

func (s *MemoryStore) FindVehicle(id, userID string) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle, ok := s.vehicles[id]
	if !ok || vehicle.UserID != userID {
		return nil, ErrNotFound
	}
	return &vehicle, nil
}

func (s *MemoryStore) ListVehicles(userID string) ([]models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, v := range s.vehicles {
		if v.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortAsc(ids)
	out := make([]models.Vehicle, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.vehicles[id])
	}
	return out, nil
}

func (s *MemoryStore) CountVehicles(userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, v := range s.vehicles {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) InsertVehicle(vehicle *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[vehicle.ID] = *vehicle
	s.track(vehicle.ID)
	return nil
}

func (s *MemoryStore) UpdateVehicle(vehicle *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (s *MemoryStore) DeleteVehicle(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicle, ok := s.vehicles[id]
	if !ok || vehicle.UserID != userID {
		return ErrNotFound
	}
	delete(s.vehicles, id)
	return nil
}

// Inventory items

func (s *MemoryStore) FindItem(id, userID string) (*models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *MemoryStore) ListItems(userID string) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, item := range s.items {
		if item.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortAsc(ids)
	out := make([]models.InventoryItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertItem(item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	s.track(item.ID)
	return nil
}

func (s *MemoryStore) UpdateItem(item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryStore) DeleteItem(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) DebitItemQuantity(id, userID string, amount int, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.UserID != userID || item.Quantity < amount {
		return false, nil
	}
	item.Quantity -= amount
	item.UpdatedAt = now
	s.items[id] = item
	return true, nil
}

func (s *MemoryStore) SetItemQuantity(id, userID string, quantity int, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return false, nil
	}
	item.Quantity = quantity
	item.UpdatedAt = now
	s.items[id] = item
	return true, nil
}

// Usage logs

func (s *MemoryStore) InsertUsageLog(log *models.UsageLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usageLogs[log.ID] = *log
	s.track(log.ID)
	return nil
}

func (s *MemoryStore) ListUsageLogsByItem(itemID, userID string) ([]models.UsageLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, log := range s.usageLogs {
		if log.ItemID == itemID && log.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.UsageLog, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.usageLogs[id])
	}
	return out, nil
}

func (s *MemoryStore) ListUsageLogsByUser(userID string, limit int) ([]models.UsageLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, log := range s.usageLogs {
		if log.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]models.UsageLog, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.usageLogs[id])
	}
	return out, nil
}

func (s *MemoryStore) DeleteUsageLogsByItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, log := range s.usageLogs {
		if log.ItemID == itemID {
			delete(s.usageLogs, id)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteUsageLogsByUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, log := range s.usageLogs {
		if log.UserID == userID {
			delete(s.usageLogs, id)
		}
	}
	return nil
}

// Setups

func (s *MemoryStore) FindSetup(id string) (*models.Setup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setup, ok := s.setups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &setup, nil
}

func (s *MemoryStore) ListSetupsByVehicle(vehicleID string) ([]models.Setup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, setup := range s.setups {
		if setup.VehicleID == vehicleID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.Setup, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.setups[id])
	}
	return out, nil
}

func (s *MemoryStore) ListSetupsByGroup(groupID string) ([]models.Setup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, setup := range s.setups {
		if setup.GroupID != nil && *setup.GroupID == groupID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.Setup, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.setups[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertSetup(setup *models.Setup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setups[setup.ID] = *setup
	s.track(setup.ID)
	return nil
}

func (s *MemoryStore) UpdateSetup(setup *models.Setup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setups[setup.ID] = *setup
	return nil
}

func (s *MemoryStore) DeleteSetup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.setups[id]; !ok {
		return ErrNotFound
	}
	delete(s.setups, id)
	return nil
}

func (s *MemoryStore) DeleteSetupsByVehicle(vehicleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, setup := range s.setups {
		if setup.VehicleID == vehicleID {
			delete(s.setups, id)
		}
	}
	return nil
}

func (s *MemoryStore) DetachSetupsFromGroup(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, setup := range s.setups {
		if setup.GroupID != nil && *setup.GroupID == groupID {
			setup.GroupID = nil
			setup.UpdatedAt = time.Now().UTC()
			s.setups[id] = setup
		}
	}
	return nil
}

// Setup groups

func (s *MemoryStore) FindSetupGroup(id, userID string) (*models.SetupGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.setupGroups[id]
	if !ok || group.UserID != userID {
		return nil, ErrNotFound
	}
	return &group, nil
}

func (s *MemoryStore) ListSetupGroupsByVehicle(vehicleID, userID string) ([]models.SetupGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, group := range s.setupGroups {
		if group.VehicleID == vehicleID && group.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.SetupGroup, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.setupGroups[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertSetupGroup(group *models.SetupGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setupGroups[group.ID] = *group
	s.track(group.ID)
	return nil
}

func (s *MemoryStore) UpdateSetupGroup(group *models.SetupGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setupGroups[group.ID] = *group
	return nil
}

func (s *MemoryStore) DeleteSetupGroup(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.setupGroups[id]
	if !ok || group.UserID != userID {
		return ErrNotFound
	}
	delete(s.setupGroups, id)
	return nil
}

func (s *MemoryStore) DeleteSetupGroupsByVehicle(vehicleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, group := range s.setupGroups {
		if group.VehicleID == vehicleID {
			delete(s.setupGroups, id)
		}
	}
	return nil
}

// Repair logs

func (s *MemoryStore) FindRepair(id, userID string) (*models.RepairLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	repair, ok := s.repairs[id]
	if !ok || repair.UserID != userID {
		return nil, ErrNotFound
	}
	return &repair, nil
}

func (s *MemoryStore) ListRepairs(userID string) ([]models.RepairLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, repair := range s.repairs {
		if repair.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.RepairLog, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.repairs[id])
	}
	return out, nil
}

func (s *MemoryStore) ListRepairsByVehicle(vehicleID, userID string) ([]models.RepairLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, repair := range s.repairs {
		if repair.VehicleID == vehicleID && repair.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.RepairLog, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.repairs[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertRepair(repair *models.RepairLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repairs[repair.ID] = *repair
	s.track(repair.ID)
	return nil
}

func (s *MemoryStore) UpdateRepair(repair *models.RepairLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repairs[repair.ID] = *repair
	return nil
}

func (s *MemoryStore) DeleteRepair(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	repair, ok := s.repairs[id]
	if !ok || repair.UserID != userID {
		return ErrNotFound
	}
	delete(s.repairs, id)
	return nil
}

func (s *MemoryStore) DeleteRepairsByVehicle(vehicleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, repair := range s.repairs {
		if repair.VehicleID == vehicleID {
			delete(s.repairs, id)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteRepairsByUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, repair := range s.repairs {
		if repair.UserID == userID {
			delete(s.repairs, id)
		}
	}
	return nil
}

// Stocktakes

func (s *MemoryStore) FindStocktake(id, userID string) (*models.Stocktake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stocktake, ok := s.stocktakes[id]
	if !ok || stocktake.UserID != userID {
		return nil, ErrNotFound
	}
	return &stocktake, nil
}

func (s *MemoryStore) ListStocktakes(userID string) ([]models.Stocktake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, stocktake := range s.stocktakes {
		if stocktake.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.Stocktake, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.stocktakes[id])
	}
	return out, nil
}

func (s *MemoryStore) InsertStocktake(stocktake *models.Stocktake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocktakes[stocktake.ID] = *stocktake
	s.track(stocktake.ID)
	return nil
}

func (s *MemoryStore) UpdateStocktake(stocktake *models.Stocktake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocktakes[stocktake.ID] = *stocktake
	return nil
}

func (s *MemoryStore) DeleteStocktake(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stocktake, ok := s.stocktakes[id]
	if !ok || stocktake.UserID != userID {
		return ErrNotFound
	}
	delete(s.stocktakes, id)
	return nil
}

func (s *MemoryStore) DeleteStocktakesByUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stocktake := range s.stocktakes {
		if stocktake.UserID == userID {
			delete(s.stocktakes, id)
		}
	}
	return nil
}

// Feedback

func (s *MemoryStore) InsertFeedback(feedback *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback[feedback.ID] = *feedback
	s.track(feedback.ID)
	return nil
}

func (s *MemoryStore) ListFeedback(userID string) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, fb := range s.feedback {
		if fb.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortDesc(ids)
	out := make([]models.Feedback, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.feedback[id])
	}
	return out, nil
}

func (s *MemoryStore) DeleteFeedbackByUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, fb := range s.feedback {
		if fb.UserID == userID {
			delete(s.feedback, id)
		}
	}
	return nil
}
