package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
	"rallycommand-api/services"
	"rallycommand-api/utils"
)

type VehicleController struct {
	store     repositories.Store
	integrity *services.IntegrityService
}

func NewVehicleController(store repositories.Store, integrity *services.IntegrityService) *VehicleController {
	return &VehicleController{store: store, integrity: integrity}
}

type VehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Registration string `json:"registration"`
	VIN          string `json:"vin"`
	Photo        string `json:"photo"`
}

func (vc *VehicleController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	vehicles, err := vc.store.ListVehicles(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	vehicle, err := vc.store.FindVehicle(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	count, err := vc.store.CountVehicles(userID)
	if err != nil {
		respondError(c, err, "Failed to count vehicles")
		return
	}
	if count >= models.MaxVehiclesPerUser {
		respondError(c, fmt.Errorf("%w: maximum %d vehicles per account", services.ErrLimitExceeded, models.MaxVehiclesPerUser), "Failed to create vehicle")
		return
	}

	now := time.Now().UTC()
	vehicle := models.Vehicle{
		ID:           uuid.New().String(),
		UserID:       userID,
		Make:         req.Make,
		Model:        req.Model,
		Registration: req.Registration,
		VIN:          req.VIN,
		Photo:        req.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := vc.store.InsertVehicle(&vehicle); err != nil {
		respondError(c, err, "Failed to create vehicle")
		return
	}

	utils.SendCreated(c, vehicle)
}

func (vc *VehicleController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	vehicle, err := vc.store.FindVehicle(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Registration = req.Registration
	vehicle.VIN = req.VIN
	vehicle.Photo = req.Photo
	vehicle.UpdatedAt = time.Now().UTC()

	if err := vc.store.UpdateVehicle(vehicle); err != nil {
		respondError(c, err, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// Delete removes the vehicle along with its setups, setup groups and repair
// logs, and unlinks it from inventory items.
func (vc *VehicleController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := vc.integrity.DeleteVehicle(c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete vehicle")
		return
	}

	utils.SendSuccess(c, "Vehicle deleted successfully")
}
