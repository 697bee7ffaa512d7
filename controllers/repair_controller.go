package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
	"rallycommand-api/services"
	"rallycommand-api/utils"
)

type RepairController struct {
	store  repositories.Store
	ledger *services.Ledger
}

func NewRepairController(store repositories.Store, ledger *services.Ledger) *RepairController {
	return &RepairController{store: store, ledger: ledger}
}

type RepairRequest struct {
	VehicleID     string              `json:"vehicle_id" binding:"required"`
	CauseOfDamage string              `json:"cause_of_damage"`
	AffectedArea  string              `json:"affected_area"`
	PartsUsed     []models.RepairPart `json:"parts_used"`
	RepairDetails string              `json:"repair_details"`
	Technicians   []string            `json:"technicians"`
}

func totalPartsCost(parts []models.RepairPart) float64 {
	total := 0.0
	for _, part := range parts {
		quantity := part.Quantity
		if quantity < 1 {
			quantity = 1
		}
		total += part.Cost * float64(quantity)
	}
	return total
}

func (rc *RepairController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	repairs, err := rc.store.ListRepairs(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch repair logs")
		return
	}

	c.JSON(http.StatusOK, repairs)
}

func (rc *RepairController) ListByVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("vehicle_id")

	if _, err := rc.store.FindVehicle(vehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	repairs, err := rc.store.ListRepairsByVehicle(vehicleID, userID)
	if err != nil {
		respondError(c, err, "Failed to fetch repair logs")
		return
	}

	c.JSON(http.StatusOK, repairs)
}

func (rc *RepairController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	repair, err := rc.store.FindRepair(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch repair log")
		return
	}

	c.JSON(http.StatusOK, repair)
}

// Create records a repair and consumes its inventory-sourced parts through
// the ledger. There is no rollback: if a part cannot be debited the request
// fails, but debits already made for earlier parts stand.
func (rc *RepairController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if _, err := rc.store.FindVehicle(req.VehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	for _, part := range req.PartsUsed {
		if part.Source != models.PartSourceInventory || part.InventoryItemID == "" {
			continue
		}
		quantity := part.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if _, err := rc.ledger.Debit(part.InventoryItemID, quantity, userID); err != nil {
			respondError(c, err, "Failed to consume part from inventory")
			return
		}
	}

	now := time.Now().UTC()
	repair := models.RepairLog{
		ID:             uuid.New().String(),
		UserID:         userID,
		VehicleID:      req.VehicleID,
		CauseOfDamage:  req.CauseOfDamage,
		AffectedArea:   req.AffectedArea,
		PartsUsed:      models.RepairPartList(req.PartsUsed),
		TotalPartsCost: totalPartsCost(req.PartsUsed),
		RepairDetails:  req.RepairDetails,
		Technicians:    models.StringSliceType(req.Technicians),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := rc.store.InsertRepair(&repair); err != nil {
		respondError(c, err, "Failed to create repair log")
		return
	}

	utils.SendCreated(c, repair)
}

// Update edits the record only. Parts already consumed on create are not
// re-debited, and changing the parts list does not touch inventory.
func (rc *RepairController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	repair, err := rc.store.FindRepair(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch repair log")
		return
	}

	var req RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.VehicleID != repair.VehicleID {
		utils.SendValidationError(c, "Repair log cannot be moved to a different vehicle")
		return
	}

	repair.CauseOfDamage = req.CauseOfDamage
	repair.AffectedArea = req.AffectedArea
	repair.PartsUsed = models.RepairPartList(req.PartsUsed)
	repair.TotalPartsCost = totalPartsCost(req.PartsUsed)
	repair.RepairDetails = req.RepairDetails
	repair.Technicians = models.StringSliceType(req.Technicians)
	repair.UpdatedAt = time.Now().UTC()

	if err := rc.store.UpdateRepair(repair); err != nil {
		respondError(c, err, "Failed to update repair log")
		return
	}

	c.JSON(http.StatusOK, repair)
}

// Delete removes the record. Consumed stock is not returned to inventory.
func (rc *RepairController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := rc.store.DeleteRepair(c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete repair log")
		return
	}

	utils.SendSuccess(c, "Repair log deleted successfully")
}
