package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rallycommand-api/services"
	"rallycommand-api/utils"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognized is
// reported as the fallback message with a 500.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInsufficientStock):
		utils.SendError(c, http.StatusBadRequest, "Insufficient quantity in stock")
	case errors.Is(err, services.ErrLimitExceeded):
		utils.SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidReference):
		utils.SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied):
		utils.SendError(c, http.StatusConflict, "Stocktake already applied")
	default:
		utils.SendError(c, http.StatusInternalServerError, fallback)
	}
}
