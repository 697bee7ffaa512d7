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

type UsageController struct {
	store  repositories.Store
	ledger *services.Ledger
}

func NewUsageController(store repositories.Store, ledger *services.Ledger) *UsageController {
	return &UsageController{store: store, ledger: ledger}
}

type UsageRequest struct {
	ItemID       string `json:"item_id" binding:"required"`
	QuantityUsed int    `json:"quantity_used" binding:"required,min=1"`
	Reason       string `json:"reason"`
	EventName    string `json:"event_name"`
}

// Record debits the item and writes the immutable usage log entry. A debit
// that would drive the quantity negative is rejected and nothing is logged.
func (uc *UsageController) Record(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	item, err := uc.ledger.Debit(req.ItemID, req.QuantityUsed, userID)
	if err != nil {
		respondError(c, err, "Failed to record usage")
		return
	}

	usageLog := models.UsageLog{
		ID:           uuid.New().String(),
		ItemID:       req.ItemID,
		UserID:       userID,
		QuantityUsed: req.QuantityUsed,
		Reason:       req.Reason,
		EventName:    req.EventName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.store.InsertUsageLog(&usageLog); err != nil {
		respondError(c, err, "Failed to record usage")
		return
	}

	utils.SendCreated(c, gin.H{
		"log":                usageLog,
		"remaining_quantity": item.Quantity,
	})
}

// History lists the usage log of one item, newest first.
func (uc *UsageController) History(c *gin.Context) {
	userID := c.GetString("user_id")

	logs, err := uc.store.ListUsageLogsByItem(c.Param("item_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch usage history")
		return
	}

	c.JSON(http.StatusOK, logs)
}
