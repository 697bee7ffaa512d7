package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

// StocktakeCount is one submitted count line: what the caller expected to
// find and what was physically on the shelf.
type StocktakeCount struct {
	ItemID           string `json:"item_id" binding:"required"`
	ItemName         string `json:"item_name"`
	Location         string `json:"location"`
	ExpectedQuantity int    `json:"expected_quantity"`
	ActualQuantity   int    `json:"actual_quantity" binding:"min=0"`
}

// StocktakeService turns a physical count into a diff summary and, on a
// separate confirmation step, commits the diff to the ledger exactly once.
type StocktakeService struct {
	store  repositories.Store
	ledger *Ledger
}

func NewStocktakeService(store repositories.Store, ledger *Ledger) *StocktakeService {
	return &StocktakeService{store: store, ledger: ledger}
}

// Create computes per-line differences and the aggregate counters and
// persists the snapshot with status "completed". Inventory quantities are
// not touched yet; that happens on Apply, after the review step.
func (s *StocktakeService) Create(userID string, counts []StocktakeCount, notes string) (*models.Stocktake, error) {
	now := time.Now().UTC()
	stocktake := &models.Stocktake{
		ID:        uuid.New().String(),
		UserID:    userID,
		Notes:     notes,
		Status:    models.StocktakeStatusCompleted,
		Items:     make(models.StocktakeItemList, 0, len(counts)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, count := range counts {
		line := models.StocktakeItem{
			ItemID:           count.ItemID,
			ItemName:         count.ItemName,
			Location:         count.Location,
			ExpectedQuantity: count.ExpectedQuantity,
			ActualQuantity:   count.ActualQuantity,
			Difference:       count.ActualQuantity - count.ExpectedQuantity,
		}

		// Value the difference at the live item price; a line whose item
		// vanished between counting and submission is kept at zero value.
		if item, err := s.store.FindItem(count.ItemID, userID); err == nil {
			line.Price = item.Price
			if count.ItemName == "" {
				line.ItemName = item.Name
			}
			if count.Location == "" {
				line.Location = item.Location
			}
		}
		line.ValueDifference = float64(line.Difference) * line.Price

		switch {
		case line.Difference == 0:
			stocktake.ItemsMatched++
		case line.Difference > 0:
			stocktake.ItemsOver++
		default:
			stocktake.ItemsUnder++
		}
		stocktake.TotalValueDifference += line.ValueDifference
		stocktake.Items = append(stocktake.Items, line)
	}

	if err := s.store.InsertStocktake(stocktake); err != nil {
		return nil, err
	}
	return stocktake, nil
}

// Apply commits the counted quantities to inventory and flips the stocktake
// to its terminal "applied" status. The status guard is the sole idempotence
// mechanism: a second apply fails with ErrAlreadyApplied and changes nothing.
// Counted values overwrite whatever drift happened since the count was taken.
// Returns the number of items updated.
func (s *StocktakeService) Apply(stocktakeID, userID string) (int, error) {
	stocktake, err := s.store.FindStocktake(stocktakeID, userID)
	if err != nil {
		return 0, err
	}
	if stocktake.Status == models.StocktakeStatusApplied {
		return 0, ErrAlreadyApplied
	}

	updated := 0
	for _, line := range stocktake.Items {
		if err := s.ledger.SetAbsolute(line.ItemID, line.ActualQuantity, userID); err != nil {
			// Items deleted since the count are skipped; the rest of the
			// sequence still commits.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return updated, err
		}
		updated++
	}

	now := time.Now().UTC()
	stocktake.Status = models.StocktakeStatusApplied
	stocktake.AppliedAt = &now
	stocktake.UpdatedAt = now
	if err := s.store.UpdateStocktake(stocktake); err != nil {
		return updated, err
	}
	return updated, nil
}
