package services

import (
	"log"

	"rallycommand-api/repositories"
)

// IntegrityService maintains weak references when a parent entity goes away.
// The store enforces no foreign keys, so every rule lives here. Cascade
// effects run as an ordered best-effort sequence: a failed step is logged
// and skipped, earlier steps are never rolled back.
type IntegrityService struct {
	store repositories.Store
}

func NewIntegrityService(store repositories.Store) *IntegrityService {
	return &IntegrityService{store: store}
}

// DeleteItem removes an inventory item and every usage log referencing it.
func (s *IntegrityService) DeleteItem(itemID, userID string) error {
	if err := s.store.DeleteItem(itemID, userID); err != nil {
		return err
	}

	if err := s.store.DeleteUsageLogsByItem(itemID); err != nil {
		log.Printf("Warning: could not delete usage logs for item %s: %v", itemID, err)
	}
	return nil
}

// DeleteVehicle removes a vehicle, scrubs it from inventory associations and
// deletes its setups, setup groups and repair logs.
func (s *IntegrityService) DeleteVehicle(vehicleID, userID string) error {
	if err := s.store.DeleteVehicle(vehicleID, userID); err != nil {
		return err
	}

	items, err := s.store.ListItems(userID)
	if err != nil {
		log.Printf("Warning: could not list items to unlink vehicle %s: %v", vehicleID, err)
	} else {
		for i := range items {
			if !items[i].VehicleIDs.Contains(vehicleID) {
				continue
			}
			items[i].VehicleIDs = items[i].VehicleIDs.Remove(vehicleID)
			if err := s.store.UpdateItem(&items[i]); err != nil {
				log.Printf("Warning: could not unlink vehicle %s from item %s: %v", vehicleID, items[i].ID, err)
			}
		}
	}

	if err := s.store.DeleteSetupsByVehicle(vehicleID); err != nil {
		log.Printf("Warning: could not delete setups for vehicle %s: %v", vehicleID, err)
	}
	if err := s.store.DeleteSetupGroupsByVehicle(vehicleID); err != nil {
		log.Printf("Warning: could not delete setup groups for vehicle %s: %v", vehicleID, err)
	}
	if err := s.store.DeleteRepairsByVehicle(vehicleID); err != nil {
		log.Printf("Warning: could not delete repair logs for vehicle %s: %v", vehicleID, err)
	}
	return nil
}

// DeleteSetupGroup removes a group and detaches its setups. The setups
// themselves survive with a null group_id.
func (s *IntegrityService) DeleteSetupGroup(groupID, userID string) error {
	if err := s.store.DeleteSetupGroup(groupID, userID); err != nil {
		return err
	}

	if err := s.store.DetachSetupsFromGroup(groupID); err != nil {
		log.Printf("Warning: could not detach setups from group %s: %v", groupID, err)
	}
	return nil
}

// DeleteAccount removes everything a user owns, then the user record.
// The order matters: dependents first, the user last. A failed step is
// logged and the sequence continues.
func (s *IntegrityService) DeleteAccount(userID string) error {
	if _, err := s.store.FindUserByID(userID); err != nil {
		return err
	}

	if err := s.store.DeleteUsageLogsByUser(userID); err != nil {
		log.Printf("Warning: could not delete usage logs for user %s: %v", userID, err)
	}
	if err := s.store.DeleteRepairsByUser(userID); err != nil {
		log.Printf("Warning: could not delete repair logs for user %s: %v", userID, err)
	}
	if err := s.store.DeleteStocktakesByUser(userID); err != nil {
		log.Printf("Warning: could not delete stocktakes for user %s: %v", userID, err)
	}
	if err := s.store.DeleteFeedbackByUser(userID); err != nil {
		log.Printf("Warning: could not delete feedback for user %s: %v", userID, err)
	}

	// Setups carry no user id; reach them through the owned vehicles.
	vehicles, err := s.store.ListVehicles(userID)
	if err != nil {
		log.Printf("Warning: could not list vehicles for user %s: %v", userID, err)
		vehicles = nil
	}
	for _, vehicle := range vehicles {
		if err := s.store.DeleteSetupsByVehicle(vehicle.ID); err != nil {
			log.Printf("Warning: could not delete setups for vehicle %s: %v", vehicle.ID, err)
		}
	}
	for _, vehicle := range vehicles {
		if err := s.store.DeleteVehicle(vehicle.ID, userID); err != nil {
			log.Printf("Warning: could not delete vehicle %s: %v", vehicle.ID, err)
		}
	}

	items, err := s.store.ListItems(userID)
	if err != nil {
		log.Printf("Warning: could not list items for user %s: %v", userID, err)
		items = nil
	}
	for _, item := range items {
		if err := s.store.DeleteItem(item.ID, userID); err != nil {
			log.Printf("Warning: could not delete item %s: %v", item.ID, err)
		}
	}

	return s.store.DeleteUser(userID)
}
