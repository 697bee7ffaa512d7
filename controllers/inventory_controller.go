package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
	"rallycommand-api/services"
	"rallycommand-api/utils"
)

type InventoryController struct {
	store     repositories.Store
	integrity *services.IntegrityService
}

func NewInventoryController(store repositories.Store, integrity *services.IntegrityService) *InventoryController {
	return &InventoryController{store: store, integrity: integrity}
}

type InventoryItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Subcategory string   `json:"subcategory"`
	Condition   string   `json:"condition"`
	Quantity    int      `json:"quantity" binding:"min=0"`
	Location    string   `json:"location"`
	PartNumber  string   `json:"part_number"`
	Supplier    string   `json:"supplier"`
	SupplierURL string   `json:"supplier_url"`
	Price       float64  `json:"price"`
	MinStock    int      `json:"min_stock"`
	Notes       string   `json:"notes"`
	Photos      []string `json:"photos"`
	VehicleIDs  []string `json:"vehicle_ids"`
}

// validate normalizes the request and checks caps and references. Subcategory
// and condition only apply to parts; they are cleared for other categories.
func (ic *InventoryController) validate(req *InventoryItemRequest, userID string) error {
	if req.Category != models.CategoryParts {
		req.Subcategory = ""
		req.Condition = ""
	}
	if len(req.Photos) > models.MaxItemPhotos {
		return fmt.Errorf("%w: maximum %d photos per item", services.ErrLimitExceeded, models.MaxItemPhotos)
	}
	if len(req.VehicleIDs) > models.MaxItemVehicleLinks {
		return fmt.Errorf("%w: maximum %d vehicle associations per item", services.ErrLimitExceeded, models.MaxItemVehicleLinks)
	}

	// A referenced vehicle must exist and belong to the caller.
	for _, vehicleID := range req.VehicleIDs {
		if _, err := ic.store.FindVehicle(vehicleID, userID); err != nil {
			return fmt.Errorf("%w: vehicle %s", services.ErrInvalidReference, vehicleID)
		}
	}

	return nil
}

// List supports optional category, search and low_stock filters.
func (ic *InventoryController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := ic.store.ListItems(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch inventory")
		return
	}

	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))
	lowStockOnly := c.Query("low_stock") == "true"

	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		if lowStockOnly && !item.IsLowStock() {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.PartNumber), search) &&
			!strings.Contains(strings.ToLower(item.Supplier), search) {
			continue
		}
		filtered = append(filtered, item)
	}

	c.JSON(http.StatusOK, filtered)
}

func (ic *InventoryController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	item, err := ic.store.FindItem(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.SendValidationError(c, "Invalid category: must be parts, tools or fluids")
		return
	}
	if err := ic.validate(&req, userID); err != nil {
		respondError(c, err, "Failed to create item")
		return
	}

	minStock := req.MinStock
	if minStock <= 0 {
		minStock = 1
	}

	now := time.Now().UTC()
	item := models.InventoryItem{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Condition:   req.Condition,
		Quantity:    req.Quantity,
		Location:    req.Location,
		PartNumber:  req.PartNumber,
		Supplier:    req.Supplier,
		SupplierURL: req.SupplierURL,
		Price:       req.Price,
		MinStock:    minStock,
		Notes:       req.Notes,
		Photos:      models.StringSliceType(req.Photos),
		VehicleIDs:  models.StringSliceType(req.VehicleIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ic.store.InsertItem(&item); err != nil {
		respondError(c, err, "Failed to create item")
		return
	}

	utils.SendCreated(c, item)
}

func (ic *InventoryController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	item, err := ic.store.FindItem(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch item")
		return
	}

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.SendValidationError(c, "Invalid category: must be parts, tools or fluids")
		return
	}
	if err := ic.validate(&req, userID); err != nil {
		respondError(c, err, "Failed to update item")
		return
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Subcategory = req.Subcategory
	item.Condition = req.Condition
	item.Quantity = req.Quantity
	item.Location = req.Location
	item.PartNumber = req.PartNumber
	item.Supplier = req.Supplier
	item.SupplierURL = req.SupplierURL
	item.Price = req.Price
	if req.MinStock > 0 {
		item.MinStock = req.MinStock
	}
	item.Notes = req.Notes
	item.Photos = models.StringSliceType(req.Photos)
	item.VehicleIDs = models.StringSliceType(req.VehicleIDs)
	item.UpdatedAt = time.Now().UTC()

	if err := ic.store.UpdateItem(item); err != nil {
		respondError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes the item together with its usage history.
func (ic *InventoryController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := ic.integrity.DeleteItem(c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete item")
		return
	}

	utils.SendSuccess(c, "Item deleted successfully")
}
