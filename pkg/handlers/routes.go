package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the banner route
const Version = "1.0.0"

// Register mounts every route on r. h.Limiter, when set, runs after API key checks.
func (h *Handler) Register(r *gin.Engine) {
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Study Planner API",
			"version": Version,
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/example", h.Example)

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	if h.Limiter != nil {
		api.Use(h.Limiter.Middleware())
	}
	{
		api.POST("/plan", h.PlanJSON)
		api.POST("/plan/csv", h.PlanCSV)
		api.POST("/plan/xlsx", h.PlanXLSX)
		api.POST("/plan/ics", h.PlanICS)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}
}
