package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rallycommand-api/repositories"
)

type DashboardController struct {
	store repositories.Store
}

func NewDashboardController(store repositories.Store) *DashboardController {
	return &DashboardController{store: store}
}

// Stats aggregates the inventory overview shown on the dashboard: totals,
// low-stock count, per-category breakdown and the latest ledger activity.
func (dc *DashboardController) Stats(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := dc.store.ListItems(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch inventory")
		return
	}

	totalValue := 0.0
	lowStockCount := 0
	categories := map[string]int{}
	itemNames := make(map[string]string, len(items))
	for _, item := range items {
		totalValue += item.Price * float64(item.Quantity)
		if item.IsLowStock() {
			lowStockCount++
		}
		categories[item.Category]++
		itemNames[item.ID] = item.Name
	}

	logs, err := dc.store.ListUsageLogsByUser(userID, 10)
	if err != nil {
		respondError(c, err, "Failed to fetch recent activity")
		return
	}

	recentActivity := make([]gin.H, 0, len(logs))
	for _, usageLog := range logs {
		name, ok := itemNames[usageLog.ItemID]
		if !ok {
			name = "Deleted item"
		}
		recentActivity = append(recentActivity, gin.H{
			"item_id":       usageLog.ItemID,
			"item_name":     name,
			"quantity_used": usageLog.QuantityUsed,
			"reason":        usageLog.Reason,
			"event_name":    usageLog.EventName,
			"created_at":    usageLog.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_items":     len(items),
		"low_stock_count": lowStockCount,
		"total_value":     totalValue,
		"categories":      categories,
		"recent_activity": recentActivity,
	})
}
