package services

import (
	"time"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

// LowStockNotifier is told when a debit leaves an item at or below its
// minimum stock threshold. Implementations must not block the caller.
type LowStockNotifier interface {
	NotifyLowStock(user *models.User, item *models.InventoryItem)
}

// Ledger is the single authority for inventory quantity changes. Usage logs,
// repair part consumption and stocktake corrections all go through it; the
// quantity of an item never goes negative.
type Ledger struct {
	store    repositories.Store
	notifier LowStockNotifier // optional
}

func NewLedger(store repositories.Store, notifier LowStockNotifier) *Ledger {
	return &Ledger{store: store, notifier: notifier}
}

// Debit subtracts amount from the item's quantity. The decrement is
// conditional at the store, so concurrent debits against the same item
// cannot race past each other's read and overdraw the stock.
func (l *Ledger) Debit(itemID string, amount int, userID string) (*models.InventoryItem, error) {
	if _, err := l.store.FindItem(itemID, userID); err != nil {
		return nil, err
	}

	ok, err := l.store.DebitItemQuantity(itemID, userID, amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientStock
	}

	item, err := l.store.FindItem(itemID, userID)
	if err != nil {
		return nil, err
	}

	if l.notifier != nil && item.IsLowStock() {
		if user, uerr := l.store.FindUserByID(userID); uerr == nil {
			l.notifier.NotifyLowStock(user, item)
		}
	}

	return item, nil
}

// SetAbsolute overwrites the item's quantity. Used by stocktake apply, where
// the value is non-negative by construction of the stocktake record.
func (l *Ledger) SetAbsolute(itemID string, quantity int, userID string) error {
	ok, err := l.store.SetItemQuantity(itemID, userID, quantity, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
