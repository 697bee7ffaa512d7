package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rallycommand-api/repositories"
	"rallycommand-api/services"
	"rallycommand-api/utils"
)

type StocktakeController struct {
	store     repositories.Store
	stocktake *services.StocktakeService
}

func NewStocktakeController(store repositories.Store, stocktake *services.StocktakeService) *StocktakeController {
	return &StocktakeController{store: store, stocktake: stocktake}
}

type StocktakeRequest struct {
	Items []services.StocktakeCount `json:"items" binding:"required,min=1,dive"`
	Notes string                    `json:"notes"`
}

// Create records a count session as a reviewable diff. Inventory is not
// modified until the stocktake is applied.
func (stc *StocktakeController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req StocktakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	stocktake, err := stc.stocktake.Create(userID, req.Items, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to create stocktake")
		return
	}

	utils.SendCreated(c, stocktake)
}

func (stc *StocktakeController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	stocktakes, err := stc.store.ListStocktakes(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch stocktakes")
		return
	}

	c.JSON(http.StatusOK, stocktakes)
}

func (stc *StocktakeController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	stocktake, err := stc.store.FindStocktake(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch stocktake")
		return
	}

	c.JSON(http.StatusOK, stocktake)
}

// Apply commits the counted quantities to inventory. Idempotent in effect:
// a second call is rejected with a conflict.
func (stc *StocktakeController) Apply(c *gin.Context) {
	userID := c.GetString("user_id")

	updated, err := stc.stocktake.Apply(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to apply stocktake")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Stocktake applied successfully",
		"items_updated": updated,
	})
}

// Delete removes the snapshot record. An applied stocktake's inventory
// corrections are not reverted.
func (stc *StocktakeController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := stc.store.DeleteStocktake(c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete stocktake")
		return
	}

	utils.SendSuccess(c, "Stocktake deleted successfully")
}
