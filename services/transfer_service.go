package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
)

// ExportDocument is the transport-neutral snapshot of one user's entity
// graph. Identifiers are exported untouched; the remapping happens on import.
type ExportDocument struct {
	ExportedAt time.Time              `json:"exported_at"`
	User       *models.User           `json:"user,omitempty"`
	Vehicles   []models.Vehicle       `json:"vehicles"`
	Inventory  []models.InventoryItem `json:"inventory"`
	Repairs    []models.RepairLog     `json:"repairs"`
	Setups     []models.Setup         `json:"setups"`
	Stocktakes []models.Stocktake     `json:"stocktakes"`
	Feedback   []models.Feedback      `json:"feedback"`
}

// ImportStats reports what an import run achieved. Per-record problems land
// in Errors; they never abort the batch.
type ImportStats struct {
	VehiclesImported   int      `json:"vehicles_imported"`
	InventoryImported  int      `json:"inventory_imported"`
	RepairsImported    int      `json:"repairs_imported"`
	SetupsImported     int      `json:"setups_imported"`
	StocktakesImported int      `json:"stocktakes_imported"`
	Errors             []string `json:"errors"`
}

func negativeCount(items models.StocktakeItemList) (models.StocktakeItem, bool) {
	for _, line := range items {
		if line.ActualQuantity < 0 {
			return line, true
		}
	}
	return models.StocktakeItem{}, false
}

// TransferService produces and consumes account snapshots for backup,
// restore and migration between accounts.
type TransferService struct {
	store repositories.Store
}

func NewTransferService(store repositories.Store) *TransferService {
	return &TransferService{store: store}
}

// Export gathers the owner's complete entity graph. Setups are collected via
// the owner's vehicle ids because they carry no user id of their own.
func (s *TransferService) Export(userID string) (*ExportDocument, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.store.ListVehicles(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(userID)
	if err != nil {
		return nil, err
	}
	repairs, err := s.store.ListRepairs(userID)
	if err != nil {
		return nil, err
	}
	stocktakes, err := s.store.ListStocktakes(userID)
	if err != nil {
		return nil, err
	}
	feedback, err := s.store.ListFeedback(userID)
	if err != nil {
		return nil, err
	}

	setups := make([]models.Setup, 0)
	for _, vehicle := range vehicles {
		vehicleSetups, err := s.store.ListSetupsByVehicle(vehicle.ID)
		if err != nil {
			return nil, err
		}
		setups = append(setups, vehicleSetups...)
	}

	return &ExportDocument{
		ExportedAt: time.Now().UTC(),
		User:       user,
		Vehicles:   vehicles,
		Inventory:  items,
		Repairs:    repairs,
		Setups:     setups,
		Stocktakes: stocktakes,
		Feedback:   feedback,
	}, nil
}

// Import re-creates a snapshot's entity graph under the importing user with
// freshly generated identifiers. Vehicles go first so that the old->new id
// remap table exists before anything referencing a vehicle is processed.
// Two imports of the same document never collide or deduplicate.
func (s *TransferService) Import(userID string, doc *ExportDocument) *ImportStats {
	stats := &ImportStats{Errors: []string{}}
	now := time.Now().UTC()

	vehicleRemap := make(map[string]string, len(doc.Vehicles))
	for _, vehicle := range doc.Vehicles {
		oldID := vehicle.ID
		vehicle.ID = uuid.New().String()
		vehicle.UserID = userID
		vehicle.CreatedAt = now
		vehicle.UpdatedAt = now
		if err := s.store.InsertVehicle(&vehicle); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("vehicle %s %s: %v", vehicle.Make, vehicle.Model, err))
			continue
		}
		if oldID != "" {
			vehicleRemap[oldID] = vehicle.ID
		}
		stats.VehiclesImported++
	}

	for _, item := range doc.Inventory {
		// Quantities are non-negative everywhere at rest; a tampered or
		// corrupt document must not smuggle a negative one past the ledger.
		if item.Quantity < 0 {
			stats.Errors = append(stats.Errors, fmt.Sprintf("inventory item %s skipped: negative quantity %d", item.Name, item.Quantity))
			continue
		}
		// Broken vehicle references are pruned silently; the item itself
		// still imports.
		remapped := make(models.StringSliceType, 0, len(item.VehicleIDs))
		for _, oldID := range item.VehicleIDs {
			if newID, ok := vehicleRemap[oldID]; ok {
				remapped = append(remapped, newID)
			}
		}
		item.VehicleIDs = remapped
		item.ID = uuid.New().String()
		item.UserID = userID
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := s.store.InsertItem(&item); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("inventory item %s: %v", item.Name, err))
			continue
		}
		stats.InventoryImported++
	}

	for _, repair := range doc.Repairs {
		newVehicleID, ok := vehicleRemap[repair.VehicleID]
		if !ok {
			stats.Errors = append(stats.Errors, fmt.Sprintf("repair log skipped: vehicle %s not in import batch", repair.VehicleID))
			continue
		}
		repair.ID = uuid.New().String()
		repair.UserID = userID
		repair.VehicleID = newVehicleID
		repair.CreatedAt = now
		repair.UpdatedAt = now
		if err := s.store.InsertRepair(&repair); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("repair log: %v", err))
			continue
		}
		stats.RepairsImported++
	}

	for _, setup := range doc.Setups {
		newVehicleID, ok := vehicleRemap[setup.VehicleID]
		if !ok {
			stats.Errors = append(stats.Errors, fmt.Sprintf("setup %s skipped: vehicle %s not in import batch", setup.Name, setup.VehicleID))
			continue
		}
		setup.ID = uuid.New().String()
		setup.VehicleID = newVehicleID
		// Group membership does not survive the transfer; groups are not
		// part of the export document.
		setup.GroupID = nil
		setup.CreatedAt = now
		setup.UpdatedAt = now
		if err := s.store.InsertSetup(&setup); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("setup %s: %v", setup.Name, err))
			continue
		}
		stats.SetupsImported++
	}

	for _, stocktake := range doc.Stocktakes {
		// Line item ids are not checked against the destination account,
		// but counted quantities are: applying a line with a negative count
		// would write that negative straight into inventory.
		if line, ok := negativeCount(stocktake.Items); ok {
			stats.Errors = append(stats.Errors, fmt.Sprintf("stocktake skipped: negative counted quantity %d for item %s", line.ActualQuantity, line.ItemID))
			continue
		}
		stocktake.ID = uuid.New().String()
		stocktake.UserID = userID
		stocktake.CreatedAt = now
		stocktake.UpdatedAt = now
		if err := s.store.InsertStocktake(&stocktake); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("stocktake: %v", err))
			continue
		}
		stats.StocktakesImported++
	}

	return stats
}
