package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/study-planner-go/pkg/database"
	"github.com/arnavshah/study-planner-go/pkg/middleware"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get(middleware.APIKeyContextKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	usage, err := database.RecentUsage(h.DB, apiKey.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalSubjects, totalDays, totalMinutes int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalSubjects += int64(u.TotalSubjects)
		totalDays += int64(u.TotalDays)
		totalMinutes += int64(u.TotalMinutes)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests": totalRequests,
			"subjects": totalSubjects,
			"days":     totalDays,
			"minutes":  totalMinutes,
		},
	})
}
