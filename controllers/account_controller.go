package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"rallycommand-api/repositories"
	"rallycommand-api/services"
	"rallycommand-api/utils"
)

type AccountController struct {
	store     repositories.Store
	integrity *services.IntegrityService
	transfer  *services.TransferService
}

func NewAccountController(store repositories.Store, integrity *services.IntegrityService, transfer *services.TransferService) *AccountController {
	return &AccountController{store: store, integrity: integrity, transfer: transfer}
}

type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Update changes profile fields. Empty fields are left untouched.
func (ac *AccountController) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := ac.store.FindUserByID(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch account")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !utils.IsValidEmail(email) {
			utils.SendValidationError(c, "Invalid email format")
			return
		}
		if email != user.Email {
			if _, err := ac.store.FindUserByEmail(email); err == nil {
				utils.SendValidationError(c, "Email already registered")
				return
			}
			user.Email = email
		}
	}

	if req.Password != "" {
		if !utils.IsValidPassword(req.Password) {
			utils.SendValidationError(c, "Password must be at least 6 characters and mix upper/lower case, numbers or symbols")
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = string(hashedPassword)
	}

	user.UpdatedAt = time.Now().UTC()

	if err := ac.store.UpdateUser(user); err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete removes the account and everything it owns.
func (ac *AccountController) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := ac.integrity.DeleteAccount(userID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	utils.SendSuccess(c, "Account deleted successfully")
}

// Export returns the full entity graph as a downloadable snapshot.
func (ac *AccountController) Export(c *gin.Context) {
	userID := c.GetString("user_id")

	doc, err := ac.transfer.Export(userID)
	if err != nil {
		respondError(c, err, "Failed to export data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="rallycommand-export.json"`)
	c.JSON(http.StatusOK, doc)
}

// Import re-creates a snapshot under the caller's account. Per-record
// failures are reported in the stats, not as an overall failure.
func (ac *AccountController) Import(c *gin.Context) {
	userID := c.GetString("user_id")

	var doc services.ExportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		utils.SendValidationError(c, "Invalid import file: "+err.Error())
		return
	}

	stats := ac.transfer.Import(userID, &doc)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
		"errors": stats.Errors,
	})
}
