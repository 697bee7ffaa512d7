package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

func TestExportGathersFullGraph(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "export@example.com")
	vehicle := seedVehicle(t, store, user.ID)
	seedItem(t, store, user.ID, "Brake pads", 10)
	seedSetup(t, store, vehicle.ID, nil)
	seedSetup(t, store, vehicle.ID, nil)

	repair := &models.RepairLog{ID: uuid.New().String(), UserID: user.ID, VehicleID: vehicle.ID}
	if err := store.InsertRepair(repair); err != nil {
		t.Fatalf("InsertRepair: %v", err)
	}

	service := NewTransferService(store)
	doc, err := service.Export(user.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(doc.Vehicles) != 1 || len(doc.Inventory) != 1 || len(doc.Repairs) != 1 {
		t.Fatalf("unexpected export counts: vehicles=%d inventory=%d repairs=%d",
			len(doc.Vehicles), len(doc.Inventory), len(doc.Repairs))
	}
	// Setups have no user id and are collected through the vehicles.
	if len(doc.Setups) != 2 {
		t.Fatalf("expected 2 setups in export, got %d", len(doc.Setups))
	}
}

func TestImportRemapsVehicleReferences(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "import@example.com")
	service := NewTransferService(store)

	groupID := "old-group"
	doc := &ExportDocument{
		Vehicles: []models.Vehicle{
			{ID: "old-vehicle", UserID: "someone-else", Make: "Subaru", Model: "Impreza"},
		},
		Inventory: []models.InventoryItem{
			{
				ID:         "old-item",
				UserID:     "someone-else",
				Name:       "Brake pads",
				Category:   models.CategoryParts,
				Quantity:   10,
				VehicleIDs: models.StringSliceType{"old-vehicle", "unknown-vehicle"},
			},
		},
		Repairs: []models.RepairLog{
			{ID: "old-repair", UserID: "someone-else", VehicleID: "old-vehicle"},
		},
		Setups: []models.Setup{
			{ID: "old-setup", VehicleID: "old-vehicle", GroupID: &groupID, Name: "Tarmac"},
		},
		Stocktakes: []models.Stocktake{
			{ID: "old-stocktake", UserID: "someone-else", Status: models.StocktakeStatusCompleted},
		},
	}

	stats := service.Import(user.ID, doc)

	if stats.VehiclesImported != 1 || stats.InventoryImported != 1 ||
		stats.RepairsImported != 1 || stats.SetupsImported != 1 || stats.StocktakesImported != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", stats.Errors)
	}

	vehicles, err := store.ListVehicles(user.ID)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(vehicles))
	}
	newVehicle := vehicles[0]
	if newVehicle.ID == "old-vehicle" {
		t.Fatalf("expected a fresh vehicle id")
	}
	if newVehicle.UserID != user.ID {
		t.Fatalf("expected ownership reassigned, got %s", newVehicle.UserID)
	}

	items, err := store.ListItems(user.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	// The known reference is remapped, the unknown one pruned silently.
	if len(items[0].VehicleIDs) != 1 || items[0].VehicleIDs[0] != newVehicle.ID {
		t.Fatalf("expected remapped vehicle ids, got %v", items[0].VehicleIDs)
	}

	repairs, err := store.ListRepairs(user.ID)
	if err != nil {
		t.Fatalf("ListRepairs: %v", err)
	}
	if repairs[0].VehicleID != newVehicle.ID {
		t.Fatalf("expected repair remapped to %s, got %s", newVehicle.ID, repairs[0].VehicleID)
	}

	setups, err := store.ListSetupsByVehicle(newVehicle.ID)
	if err != nil {
		t.Fatalf("ListSetupsByVehicle: %v", err)
	}
	if len(setups) != 1 {
		t.Fatalf("expected 1 setup on new vehicle, got %d", len(setups))
	}
	// Group membership never survives a transfer.
	if setups[0].GroupID != nil {
		t.Fatalf("expected group id cleared on import, got %v", *setups[0].GroupID)
	}
}

func TestImportSkipsOrphans(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "orphans@example.com")
	service := NewTransferService(store)

	doc := &ExportDocument{
		Repairs: []models.RepairLog{
			{ID: "r1", VehicleID: "missing-vehicle"},
		},
		Setups: []models.Setup{
			{ID: "s1", VehicleID: "missing-vehicle", Name: "Orphan"},
		},
	}

	stats := service.Import(user.ID, doc)

	if stats.RepairsImported != 0 || stats.SetupsImported != 0 {
		t.Fatalf("expected orphans skipped, got %+v", stats)
	}
	if len(stats.Errors) != 2 {
		t.Fatalf("expected 2 error notes, got %v", stats.Errors)
	}
	for _, msg := range stats.Errors {
		if !strings.Contains(msg, "missing-vehicle") {
			t.Fatalf("expected error note to name the missing vehicle, got %q", msg)
		}
	}
}

func TestImportTwiceDuplicates(t *testing.T) {
	store := repositories.NewMemoryStore()
	source := seedUser(t, store, "source@example.com")
	vehicle := seedVehicle(t, store, source.ID)
	seedSetup(t, store, vehicle.ID, nil)
	seedItem(t, store, source.ID, "Brake pads", 10)

	service := NewTransferService(store)
	doc, err := service.Export(source.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	target := seedUser(t, store, "target@example.com")
	service.Import(target.ID, doc)
	service.Import(target.ID, doc)

	// Imports never deduplicate: two runs, two copies of everything.
	vehicles, err := store.ListVehicles(target.ID)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles after double import, got %d", len(vehicles))
	}
	items, err := store.ListItems(target.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after double import, got %d", len(items))
	}

	// The source account is untouched.
	sourceVehicles, err := store.ListVehicles(source.ID)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(sourceVehicles) != 1 {
		t.Fatalf("expected source vehicles untouched, got %d", len(sourceVehicles))
	}
}

func TestImportRejectsNegativeItemQuantity(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "negative-item@example.com")
	service := NewTransferService(store)

	doc := &ExportDocument{
		Inventory: []models.InventoryItem{
			{ID: "bad", Name: "Corrupt pads", Category: models.CategoryParts, Quantity: -5},
			{ID: "good", Name: "Brake pads", Category: models.CategoryParts, Quantity: 10},
		},
	}

	stats := service.Import(user.ID, doc)

	if stats.InventoryImported != 1 {
		t.Fatalf("expected only the valid item imported, got %+v", stats)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0], "negative quantity") {
		t.Fatalf("expected a negative-quantity error note, got %v", stats.Errors)
	}

	// No stored quantity may ever be negative.
	items, err := store.ListItems(user.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	for _, item := range items {
		if item.Quantity < 0 {
			t.Fatalf("item %s imported with quantity %d", item.Name, item.Quantity)
		}
	}
}

func TestImportRejectsNegativeStocktakeCount(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "negative-count@example.com")
	item := seedItem(t, store, user.ID, "Brake pads", 10)
	service := NewTransferService(store)

	doc := &ExportDocument{
		Stocktakes: []models.Stocktake{
			{
				ID:     "tampered",
				Status: models.StocktakeStatusCompleted,
				Items: models.StocktakeItemList{
					{ItemID: item.ID, ExpectedQuantity: 10, ActualQuantity: -4},
				},
			},
		},
	}

	stats := service.Import(user.ID, doc)

	if stats.StocktakesImported != 0 {
		t.Fatalf("expected tampered stocktake skipped, got %+v", stats)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0], "negative counted quantity") {
		t.Fatalf("expected a negative-count error note, got %v", stats.Errors)
	}

	// Nothing importable to apply: a negative count can never reach the
	// ledger through the import path.
	stocktakes, err := store.ListStocktakes(user.ID)
	if err != nil {
		t.Fatalf("ListStocktakes: %v", err)
	}
	if len(stocktakes) != 0 {
		t.Fatalf("expected no stocktakes stored, got %d", len(stocktakes))
	}
	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 10 {
		t.Fatalf("expected inventory untouched at 10, got %d", after.Quantity)
	}
}

func TestImportStocktakesVerbatim(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "verbatim@example.com")
	service := NewTransferService(store)

	applied := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := &ExportDocument{
		Stocktakes: []models.Stocktake{
			{
				ID:     "old-stocktake",
				UserID: "someone-else",
				Status: models.StocktakeStatusApplied,
				Items: models.StocktakeItemList{
					{ItemID: "item-from-other-account", ExpectedQuantity: 5, ActualQuantity: 3, Difference: -2},
				},
				AppliedAt: &applied,
			},
		},
	}

	stats := service.Import(user.ID, doc)
	if stats.StocktakesImported != 1 {
		t.Fatalf("expected stocktake imported, got %+v", stats)
	}

	stocktakes, err := store.ListStocktakes(user.ID)
	if err != nil {
		t.Fatalf("ListStocktakes: %v", err)
	}
	got := stocktakes[0]
	// Line item ids are historical data and are not remapped or checked.
	if got.Items[0].ItemID != "item-from-other-account" {
		t.Fatalf("expected line item id untouched, got %s", got.Items[0].ItemID)
	}
	if got.Status != models.StocktakeStatusApplied {
		t.Fatalf("expected applied status preserved, got %q", got.Status)
	}
}
