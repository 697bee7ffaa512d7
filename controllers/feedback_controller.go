package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rallycommand-api/models"
	"rallycommand-api/repositories"
	"rallycommand-api/utils"
)

type FeedbackController struct {
	store repositories.Store
}

func NewFeedbackController(store repositories.Store) *FeedbackController {
	return &FeedbackController{store: store}
}

type FeedbackRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	FeedbackType string `json:"feedback_type" binding:"required,oneof=bug feature"`
	Message      string `json:"message" binding:"required"`
}

func (fc *FeedbackController) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	feedback := models.Feedback{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		FeedbackType: req.FeedbackType,
		Message:      req.Message,
		CreatedAt:    time.Now().UTC(),
	}

	if err := fc.store.InsertFeedback(&feedback); err != nil {
		respondError(c, err, "Failed to submit feedback")
		return
	}

	utils.SendCreated(c, feedback)
}

func (fc *FeedbackController) List(c *gin.Context) {
	userID := c.GetString("user_id")

	feedback, err := fc.store.ListFeedback(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch feedback")
		return
	}

	c.JSON(http.StatusOK, feedback)
}
