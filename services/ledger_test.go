package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

func seedUser(t *testing.T, store repositories.Store, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      "Test Driver",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.InsertUser(user); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	return user
}

func seedItem(t *testing.T, store repositories.Store, userID, name string, quantity int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Category:  models.CategoryParts,
		Quantity:  quantity,
		Price:     25.0,
		MinStock:  1,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.InsertItem(item); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	return item
}

func seedVehicle(t *testing.T, store repositories.Store, userID string) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		ID:        uuid.New().String(),
		UserID:    userID,
		Make:      "Ford",
		Model:     "Fiesta R5",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.InsertVehicle(vehicle); err != nil {
		t.Fatalf("InsertVehicle: %v", err)
	}
	return vehicle
}

func TestLedgerDebit(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "debit@example.com")
	item := seedItem(t, store, user.ID, "Brake pads", 10)
	ledger := NewLedger(store, nil)

	updated, err := ledger.Debit(item.ID, 3, user.ID)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected quantity 7 after debit, got %d", updated.Quantity)
	}
}

func TestLedgerDebitInsufficientStock(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "short@example.com")
	item := seedItem(t, store, user.ID, "Brake pads", 7)
	ledger := NewLedger(store, nil)

	if _, err := ledger.Debit(item.ID, 8, user.ID); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// A rejected debit must leave the quantity untouched.
	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 7 {
		t.Fatalf("expected quantity 7 after rejected debit, got %d", after.Quantity)
	}
}

func TestLedgerDebitUnknownItem(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "missing@example.com")
	ledger := NewLedger(store, nil)

	if _, err := ledger.Debit(uuid.New().String(), 1, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerDebitOtherUsersItem(t *testing.T) {
	store := repositories.NewMemoryStore()
	owner := seedUser(t, store, "owner@example.com")
	intruder := seedUser(t, store, "intruder@example.com")
	item := seedItem(t, store, owner.ID, "Turbo", 5)
	ledger := NewLedger(store, nil)

	// Ownership and existence failures are indistinguishable.
	if _, err := ledger.Debit(item.ID, 1, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "race@example.com")
	item := seedItem(t, store, user.ID, "Wheel nuts", 10)
	ledger := NewLedger(store, nil)

	var wg sync.WaitGroup
	succeeded := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Debit(item.ID, 1, user.ID); err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	wins := 0
	for range succeeded {
		wins++
	}
	if wins != 10 {
		t.Fatalf("expected exactly 10 debits to succeed, got %d", wins)
	}

	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", after.Quantity)
	}
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []string
}

func (n *recordingNotifier) NotifyLowStock(user *models.User, item *models.InventoryItem) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item.ID)
}

func TestLedgerLowStockNotification(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "lowstock@example.com")
	item := seedItem(t, store, user.ID, "Oil filter", 3)
	notifier := &recordingNotifier{}
	ledger := NewLedger(store, notifier)

	// 3 -> 2 stays above the threshold of 1.
	if _, err := ledger.Debit(item.ID, 1, user.ID); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if len(notifier.items) != 0 {
		t.Fatalf("expected no notification above threshold, got %d", len(notifier.items))
	}

	// 2 -> 1 hits the threshold.
	if _, err := ledger.Debit(item.ID, 1, user.ID); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if len(notifier.items) != 1 || notifier.items[0] != item.ID {
		t.Fatalf("expected one notification for item %s, got %v", item.ID, notifier.items)
	}
}

func TestLedgerSetAbsolute(t *testing.T) {
	store := repositories.NewMemoryStore()
	user := seedUser(t, store, "absolute@example.com")
	item := seedItem(t, store, user.ID, "Mud flaps", 4)
	ledger := NewLedger(store, nil)

	if err := ledger.SetAbsolute(item.ID, 12, user.ID); err != nil {
		t.Fatalf("SetAbsolute: %v", err)
	}

	after, err := store.FindItem(item.ID, user.ID)
	if err != nil {
		t.Fatalf("FindItem: %v", err)
	}
	if after.Quantity != 12 {
		t.Fatalf("expected quantity 12, got %d", after.Quantity)
	}

	if err := ledger.SetAbsolute(uuid.New().String(), 5, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown item, got %v", err)
	}
}
