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

type SetupController struct {
	store repositories.Store
}

func NewSetupController(store repositories.Store) *SetupController {
	return &SetupController{store: store}
}

type SetupRequest struct {
	VehicleID string  `json:"vehicle_id" binding:"required"`
	GroupID   *string `json:"group_id"`
	Name      string  `json:"name" binding:"required"`

	Conditions string `json:"conditions"`

	TyreCompound  string `json:"tyre_compound"`
	TyreType      string `json:"tyre_type"`
	TyreSize      string `json:"tyre_size"`
	TyreCondition string `json:"tyre_condition"`

	TyrePressureFL float64 `json:"tyre_pressure_fl"`
	TyrePressureFR float64 `json:"tyre_pressure_fr"`
	TyrePressureRL float64 `json:"tyre_pressure_rl"`
	TyrePressureRR float64 `json:"tyre_pressure_rr"`

	RideHeightFL float64 `json:"ride_height_fl"`
	RideHeightFR float64 `json:"ride_height_fr"`
	RideHeightRL float64 `json:"ride_height_rl"`
	RideHeightRR float64 `json:"ride_height_rr"`

	CamberFront float64 `json:"camber_front"`
	CamberRear  float64 `json:"camber_rear"`
	ToeFront    float64 `json:"toe_front"`
	ToeRear     float64 `json:"toe_rear"`

	SpringRateFront float64 `json:"spring_rate_front"`
	SpringRateRear  float64 `json:"spring_rate_rear"`
	DamperFront     float64 `json:"damper_front"`
	DamperRear      float64 `json:"damper_rear"`
	ARBFront        float64 `json:"arb_front"`
	ARBRear         float64 `json:"arb_rear"`

	AeroFront string `json:"aero_front"`
	AeroRear  string `json:"aero_rear"`

	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

// findOwned loads a setup and verifies ownership through its vehicle. A setup
// on another user's vehicle is reported as not found.
func (sc *SetupController) findOwned(setupID, userID string) (*models.Setup, error) {
	setup, err := sc.store.FindSetup(setupID)
	if err != nil {
		return nil, err
	}
	if _, err := sc.store.FindVehicle(setup.VehicleID, userID); err != nil {
		return nil, err
	}
	return setup, nil
}

// checkGroup verifies that a referenced setup group belongs to the caller and
// to the same vehicle as the setup.
func (sc *SetupController) checkGroup(groupID *string, vehicleID, userID string) error {
	if groupID == nil || *groupID == "" {
		return nil
	}
	group, err := sc.store.FindSetupGroup(*groupID, userID)
	if err != nil {
		return fmt.Errorf("%w: setup group %s", services.ErrInvalidReference, *groupID)
	}
	if group.VehicleID != vehicleID {
		return fmt.Errorf("%w: setup group %s belongs to a different vehicle", services.ErrInvalidReference, group.ID)
	}
	return nil
}

// List returns every setup across the caller's vehicles. Setups carry no
// user id, so the collection is gathered vehicle by vehicle.
func (sc *SetupController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	vehicles, err := sc.store.ListVehicles(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch vehicles")
		return
	}

	setups := make([]models.Setup, 0)
	for _, vehicle := range vehicles {
		vehicleSetups, err := sc.store.ListSetupsByVehicle(vehicle.ID)
		if err != nil {
			respondError(c, err, "Failed to fetch setups")
			return
		}
		setups = append(setups, vehicleSetups...)
	}

	c.JSON(http.StatusOK, setups)
}

func (sc *SetupController) ListByVehicle(c *gin.Context) {
	userID := c.GetString("user_id")
	vehicleID := c.Param("vehicle_id")

	if _, err := sc.store.FindVehicle(vehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}

	setups, err := sc.store.ListSetupsByVehicle(vehicleID)
	if err != nil {
		respondError(c, err, "Failed to fetch setups")
		return
	}

	c.JSON(http.StatusOK, setups)
}

func (sc *SetupController) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	setup, err := sc.findOwned(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup")
		return
	}

	c.JSON(http.StatusOK, setup)
}

func (sc *SetupController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if _, err := sc.store.FindVehicle(req.VehicleID, userID); err != nil {
		respondError(c, err, "Failed to fetch vehicle")
		return
	}
	if err := sc.checkGroup(req.GroupID, req.VehicleID, userID); err != nil {
		respondError(c, err, "Failed to create setup")
		return
	}

	now := time.Now().UTC()
	setup := models.Setup{
		ID:        uuid.New().String(),
		VehicleID: req.VehicleID,
		GroupID:   req.GroupID,
		Name:      req.Name,

		Conditions: req.Conditions,

		TyreCompound:  req.TyreCompound,
		TyreType:      req.TyreType,
		TyreSize:      req.TyreSize,
		TyreCondition: req.TyreCondition,

		TyrePressureFL: req.TyrePressureFL,
		TyrePressureFR: req.TyrePressureFR,
		TyrePressureRL: req.TyrePressureRL,
		TyrePressureRR: req.TyrePressureRR,

		RideHeightFL: req.RideHeightFL,
		RideHeightFR: req.RideHeightFR,
		RideHeightRL: req.RideHeightRL,
		RideHeightRR: req.RideHeightRR,

		CamberFront: req.CamberFront,
		CamberRear:  req.CamberRear,
		ToeFront:    req.ToeFront,
		ToeRear:     req.ToeRear,

		SpringRateFront: req.SpringRateFront,
		SpringRateRear:  req.SpringRateRear,
		DamperFront:     req.DamperFront,
		DamperRear:      req.DamperRear,
		ARBFront:        req.ARBFront,
		ARBRear:         req.ARBRear,

		AeroFront: req.AeroFront,
		AeroRear:  req.AeroRear,

		Rating: models.ClampRating(req.Rating),
		Notes:  req.Notes,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := sc.store.InsertSetup(&setup); err != nil {
		respondError(c, err, "Failed to create setup")
		return
	}

	utils.SendCreated(c, setup)
}

func (sc *SetupController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	setup, err := sc.findOwned(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup")
		return
	}

	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	// A setup cannot move to another vehicle after creation.
	if req.VehicleID != setup.VehicleID {
		utils.SendValidationError(c, "Setup cannot be moved to a different vehicle")
		return
	}
	if err := sc.checkGroup(req.GroupID, setup.VehicleID, userID); err != nil {
		respondError(c, err, "Failed to update setup")
		return
	}

	setup.GroupID = req.GroupID
	setup.Name = req.Name
	setup.Conditions = req.Conditions
	setup.TyreCompound = req.TyreCompound
	setup.TyreType = req.TyreType
	setup.TyreSize = req.TyreSize
	setup.TyreCondition = req.TyreCondition
	setup.TyrePressureFL = req.TyrePressureFL
	setup.TyrePressureFR = req.TyrePressureFR
	setup.TyrePressureRL = req.TyrePressureRL
	setup.TyrePressureRR = req.TyrePressureRR
	setup.RideHeightFL = req.RideHeightFL
	setup.RideHeightFR = req.RideHeightFR
	setup.RideHeightRL = req.RideHeightRL
	setup.RideHeightRR = req.RideHeightRR
	setup.CamberFront = req.CamberFront
	setup.CamberRear = req.CamberRear
	setup.ToeFront = req.ToeFront
	setup.ToeRear = req.ToeRear
	setup.SpringRateFront = req.SpringRateFront
	setup.SpringRateRear = req.SpringRateRear
	setup.DamperFront = req.DamperFront
	setup.DamperRear = req.DamperRear
	setup.ARBFront = req.ARBFront
	setup.ARBRear = req.ARBRear
	setup.AeroFront = req.AeroFront
	setup.AeroRear = req.AeroRear
	setup.Rating = models.ClampRating(req.Rating)
	setup.Notes = req.Notes
	setup.UpdatedAt = time.Now().UTC()

	if err := sc.store.UpdateSetup(setup); err != nil {
		respondError(c, err, "Failed to update setup")
		return
	}

	c.JSON(http.StatusOK, setup)
}

func (sc *SetupController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	setup, err := sc.findOwned(c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch setup")
		return
	}

	if err := sc.store.DeleteSetup(setup.ID); err != nil {
		respondError(c, err, "Failed to delete setup")
		return
	}

	utils.SendSuccess(c, "Setup deleted successfully")
}
