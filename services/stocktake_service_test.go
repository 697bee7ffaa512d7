package services

import (
	"errors"
	"testing"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

func TestStocktakeCreateComputesDifferences(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "count@example.com")
	short := seedItem(t, store, user.ID, "Brake pads", 10)
	exact := seedItem(t, store, user.ID, "Wheel nuts", 20)
	over := seedItem(t, store, user.ID, "Clips", 5)
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: short.ID, ExpectedQuantity: 10, ActualQuantity: 7},
		{ItemID: exact.ID, ExpectedQuantity: 20, ActualQuantity: 20},
		{ItemID: over.ID, ExpectedQuantity: 5, ActualQuantity: 6},
	}, "pre-season count")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if stocktake.Status != models.StocktakeStatusCompleted {
		t.Fatalf("expected status completed, got %q", stocktake.Status)
	}
	if stocktake.ItemsMatched != 1 || stocktake.ItemsOver != 1 || stocktake.ItemsUnder != 1 {
		t.Fatalf("unexpected counters: matched=%d over=%d under=%d",
			stocktake.ItemsMatched, stocktake.ItemsOver, stocktake.ItemsUnder)
	}

	line := stocktake.Items[0]
	if line.Difference != -3 {
		t.Fatalf("expected difference -3, got %d", line.Difference)
	}
	// Items are seeded at 25.0 each.
	if line.ValueDifference != -75.0 {
		t.Fatalf("expected value difference -75, got %f", line.ValueDifference)
	}
	if stocktake.TotalValueDifference != -75.0+25.0 {
		t.Fatalf("expected total value difference -50, got %f", stocktake.TotalValueDifference)
	}

	// The snapshot alone must not touch inventory.
	current, err := store.FindItem(short.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if current.Quantity != 10 {
		t.Fatalf("expected quantity unchanged at 10, got %d", current.Quantity)
	}
}

func TestStocktakeCreateBackfillsLineFromItem(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "backfill@example.com")
	item := seedItem(t, store, user.ID, "Gearbox oil", 3)
	item.Location = "Shelf B"
	if err := store.UpdateItem(item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: item.ID, ExpectedQuantity: 3, ActualQuantity: 3},
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	line := stocktake.Items[0]
	if line.ItemName != "Gearbox oil" || line.Location != "Shelf B" {
		t.Fatalf("expected backfilled name and location, got %q / %q", line.ItemName, line.Location)
	}
}

func TestStocktakeApply(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "apply@example.com")
	item := seedItem(t, store, user.ID, "Brake pads", 10)
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: item.ID, ExpectedQuantity: 10, ActualQuantity: 7},
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.Apply(stocktake.ID, user.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 item updated, got %d", updated)
	}

	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 7 {
		t.Fatalf("expected quantity corrected to 7, got %d", after.Quantity)
	}

	applied, err := store.FindStocktake(stocktake.ID, user.ID)
	if err != nil {
		t.Fatalf("FindStocktake: %v", err)
	}
	if applied.Status != models.StocktakeStatusApplied {
		t.Fatalf("expected status applied, got %q", applied.Status)
	}
	if applied.AppliedAt == nil {
		t.Fatalf("expected applied_at to be set")
	}
}

func TestStocktakeApplyTwice(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "apply-twice@example.com")
	item := seedItem(t, store, user.ID, "Brake pads", 10)
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: item.ID, ExpectedQuantity: 10, ActualQuantity: 7},
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := service.Apply(stocktake.ID, user.ID); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	// Drift the quantity after the first apply; the second apply must not
	// re-impose the counted value.
	if err := NewLedger(store, nil).SetAbsolute(item.ID, 9, user.ID); err != nil {
		t.Fatalf("SetAbsolute: %v", err)
	}

	if _, err := service.Apply(stocktake.ID, user.ID); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 9 {
		t.Fatalf("expected quantity 9 untouched by second apply, got %d", after.Quantity)
	}
}

func TestStocktakeApplySkipsDeletedItems(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "apply-skip@example.com")
	kept := seedItem(t, store, user.ID, "Brake pads", 10)
	doomed := seedItem(t, store, user.ID, "Old clips", 5)
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: doomed.ID, ExpectedQuantity: 5, ActualQuantity: 4},
		{ItemID: kept.ID, ExpectedQuantity: 10, ActualQuantity: 8},
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.DeleteItem(doomed.ID, user.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	updated, err := service.Apply(stocktake.ID, user.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 item updated after skip, got %d", updated)
	}

	after, err := store.FindItem(kept.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 8 {
		t.Fatalf("expected surviving item corrected to 8, got %d", after.Quantity)
	}

	applied, err := store.FindStocktake(stocktake.ID, user.ID)
	if err != nil {
		t.Fatalf("FindStocktake: %v", err)
	}
	if applied.Status != models.StocktakeStatusApplied {
		t.Fatalf("expected status applied despite skipped line, got %q", applied.Status)
	}
}

func TestStocktakeCreateUnknownItemValuedAtZero(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "ghost@example.com")
	service := NewStocktakeService(store, NewLedger(store, nil))

	stocktake, err := service.Create(user.ID, []StocktakeCount{
		{ItemID: "gone", ItemName: "Ghost part", ExpectedQuantity: 2, ActualQuantity: 0},
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	line := stocktake.Items[0]
	if line.Price != 0 || line.ValueDifference != 0 {
		t.Fatalf("expected zero valuation for unknown item, got price=%f value=%f", line.Price, line.ValueDifference)
	}
	if stocktake.ItemsUnder != 1 {
		t.Fatalf("expected line counted as under, got %d", stocktake.ItemsUnder)
	}
}
