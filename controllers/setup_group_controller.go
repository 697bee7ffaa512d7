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

type SetupGroupController struct {
	store     repositories.Store
	integrity *services.IntegrityService
}

func NewSetupGroupController(store repositories.Store, integrity *services.IntegrityService) *SetupGroupController {
	return &SetupGroupController{store: store, integrity: integrity}
}

type SetupGroupRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	TrackName string `json:"track_name"`
	Date      string `json:"date"`
}

func (gc *SetupGroupController) ListByVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("vehicle_id")

	if _, err := gc.store.FindVehicle(vehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	groups, err := gc.store.ListSetupGroupsByVehicle(vehicleID, userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup groups")
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (gc *SetupGroupController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	group, err := gc.store.FindSetupGroup(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup group")
		return
	}

	c.JSON(http.StatusOK, group)
}

// Setups lists the setups attached to a group.
func (gc *SetupGroupController) Setups(c *gin.Context) {
	userID := c.GetString("user_id")

	group, err := gc.store.FindSetupGroup(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup group")
		return
	}

	setups, err := gc.store.ListSetupsByGroup(group.ID)
	if err != nil {
		respondError(c, err, "Failed to fetch setups")
		return
	}

	c.JSON(http.StatusOK, setups)
}

func (gc *SetupGroupController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SetupGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if _, err := gc.store.FindVehicle(req.VehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	now := time.Now().UTC()
	group := models.SetupGroup{
		ID:        uuid.New().String(),
		UserID:    userID,
		VehicleID: req.VehicleID,
		Name:      req.Name,
		TrackName: req.TrackName,
		Date:      req.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := gc.store.InsertSetupGroup(&group); err != nil {
		respondError(c, err, "Failed to create setup group")
		return
	}

	utils.SendCreated(c, group)
}

func (gc *SetupGroupController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	group, err := gc.store.FindSetupGroup(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup group")
		return
	}

	var req SetupGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.VehicleID != group.VehicleID {
		utils.SendValidationError(c, "Setup group cannot be moved to a different vehicle")
		return
	}

	group.Name = req.Name
	group.TrackName = req.TrackName
	group.Date = req.Date
	group.UpdatedAt = time.Now().UTC()

	if err := gc.store.UpdateSetupGroup(group); err != nil {
		respondError(c, err, "Failed to update setup group")
		return
	}

	c.JSON(http.StatusOK, group)
}

// Delete removes the group. Member setups survive and are detached.
func (gc *SetupGroupController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := gc.integrity.DeleteSetupGroup(c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete setup group")
		return
	}

	utils.SendSuccess(c, "Setup group deleted successfully")
}
