package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

func seedUsageLog(t *testing.T, store repositories.Store, userID, itemID string) *models.UsageLog {
	t.Helper()
	usageLog := &models.UsageLog{
		ID:           uuid.New().String(),
		ItemID:       itemID,
		UserID:       userID,
		QuantityUsed: 1,
		Reason:       "race",
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertUsageLog(usageLog); err != nil {
		t.Fatalf("InsertUsageLog: %v", err)
	}
	return usageLog
}

func seedSetup(t *testing.T, store repositories.Store, vehicleID string, groupID *string) *models.Setup {
	t.Helper()
	setup := &models.Setup{
		ID:        uuid.New().String(),
		VehicleID: vehicleID,
		GroupID:   groupID,
		Name:      "Gravel base",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.InsertSetup(setup); err != nil {
		t.Fatalf("InsertSetup: %v", err)
	}
	return setup
}

func TestDeleteItemCascadesUsageLogs(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "item-cascade@example.com")
	item := seedItem(t, store, user.ID, "Clutch kit", 2)
	seedUsageLog(t, store, user.ID, item.ID)
	seedUsageLog(t, store, user.ID, item.ID)
	integrity := NewIntegrityService(store)

	if err := integrity.DeleteItem(item.ID, user.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := store.FindItem(item.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected item gone, got %v", err)
	}
	logs, err := store.ListUsageLogsByItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("ListUsageLogsByItem: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected usage logs gone, got %d", len(logs))
	}
}

func TestDeleteItemNotOwned(t *testing.T) {
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner2@example.com")
	intruder := seedUser(t, store, "intruder2@example.com")
	item := seedItem(t, store, owner.ID, "Skid plate", 1)
	integrity := NewIntegrityService(store)

	if err := integrity.DeleteItem(item.ID, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.FindItem(item.ID, owner.ID); err != nil {
		t.Fatalf("item should survive a foreign delete attempt: %v", err)
	}
}

func TestDeleteVehicleCascades(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "vehicle-cascade@example.com")
	vehicle := seedVehicle(t, store, user.ID)
	other := seedVehicle(t, store, user.ID)

	item := seedItem(t, store, user.ID, "Spare rim", 4)
	item.VehicleIDs = models.StringSliceType{vehicle.ID, other.ID}
	if err := store.UpdateItem(item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	setup := seedSetup(t, store, vehicle.ID, nil)
	keptSetup := seedSetup(t, store, other.ID, nil)

	group := &models.SetupGroup{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		VehicleID: vehicle.ID,
		Name:      "Rally Finland",
	}
	if err := store.InsertSetupGroup(group); err != nil {
		t.Fatalf("InsertSetupGroup: %v", err)
	}

	repair := &models.RepairLog{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		VehicleID: vehicle.ID,
	}
	if err := store.InsertRepair(repair); err != nil {
		t.Fatalf("InsertRepair: %v", err)
	}

	integrity := NewIntegrityService(store)
	if err := integrity.DeleteVehicle(vehicle.ID, user.ID); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}

	if _, err := store.FindVehicle(vehicle.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected vehicle gone, got %v", err)
	}

	// The association is scrubbed, the other vehicle's link survives.
	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.VehicleIDs.Contains(vehicle.ID) {
		t.Fatalf("expected vehicle id scrubbed from item, got %v", after.VehicleIDs)
	}
	if !after.VehicleIDs.Contains(other.ID) {
		t.Fatalf("expected other vehicle link to survive, got %v", after.VehicleIDs)
	}

	if _, err := store.FindSetup(setup.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected setup gone, got %v", err)
	}
	if _, err := store.FindSetup(keptSetup.ID); err != nil {
		t.Fatalf("setup on another vehicle should survive: %v", err)
	}
	if _, err := store.FindSetupGroup(group.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected setup group gone, got %v", err)
	}
	if _, err := store.FindRepair(repair.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected repair log gone, got %v", err)
	}
}

func TestDeleteSetupGroupDetachesSetups(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "group-detach@example.com")
	vehicle := seedVehicle(t, store, user.ID)

	group := &models.SetupGroup{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		VehicleID: vehicle.ID,
		Name:      "Shakedown",
	}
	if err := store.InsertSetupGroup(group); err != nil {
		t.Fatalf("InsertSetupGroup: %v", err)
	}
	setup := seedSetup(t, store, vehicle.ID, &group.ID)

	integrity := NewIntegrityService(store)
	if err := integrity.DeleteSetupGroup(group.ID, user.ID); err != nil {
		t.Fatalf("DeleteSetupGroup: %v", err)
	}

	// The setup survives with a null group reference.
	after, err := store.FindSetup(setup.ID)
	if err != nil {
		t.Fatalf("FindSetup: %v", err)
	}
	if after.GroupID != nil {
		t.Fatalf("expected group id cleared, got %v", *after.GroupID)
	}
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "goodbye@example.com")
	vehicle := seedVehicle(t, store, user.ID)
	item := seedItem(t, store, user.ID, "Light pod", 1)
	seedUsageLog(t, store, user.ID, item.ID)
	setup := seedSetup(t, store, vehicle.ID, nil)

	repair := &models.RepairLog{ID: uuid.New().String(), UserID: user.ID, VehicleID: vehicle.ID}
	if err := store.InsertRepair(repair); err != nil {
		t.Fatalf("InsertRepair: %v", err)
	}
	stocktake := &models.Stocktake{ID: uuid.New().String(), UserID: user.ID, Status: models.StocktakeStatusCompleted}
	if err := store.InsertStocktake(stocktake); err != nil {
		t.Fatalf("InsertStocktake: %v", err)
	}
	feedback := &models.Feedback{ID: uuid.New().String(), UserID: user.ID, Name: "Driver", Message: "hi"}
	if err := store.InsertFeedback(feedback); err != nil {
		t.Fatalf("InsertFeedback: %v", err)
	}

	integrity := NewIntegrityService(store)
	if err := integrity.DeleteAccount(user.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := store.FindUserByID(user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	if _, err := store.FindVehicle(vehicle.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected vehicle gone, got %v", err)
	}
	if _, err := store.FindItem(item.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected item gone, got %v", err)
	}
	if _, err := store.FindSetup(setup.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected setup gone, got %v", err)
	}
	if _, err := store.FindRepair(repair.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected repair gone, got %v", err)
	}
	if _, err := store.FindStocktake(stocktake.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected stocktake gone, got %v", err)
	}
	logs, err := store.ListUsageLogsByUser(user.ID, 100)
	if err != nil {
		t.Fatalf("ListUsageLogsByUser: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected usage logs gone, got %d", len(logs))
	}
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	store := repositories.NewMemoryStore()
	integrity := NewIntegrityService(store)

	if err := integrity.DeleteAccount(uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
