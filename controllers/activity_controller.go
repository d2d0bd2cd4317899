package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
)

// GetActivity handles GET /api/v1/activity - reads recent entries back from
// the workspace database log
func GetActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := services.GetWorkspaceLog().RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// RunReconciliation handles POST /api/v1/reconcile - triggers one
// consistency sweep outside the schedule
func RunReconciliation(c *gin.Context) {
	report, err := reconcileService().Run(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}
