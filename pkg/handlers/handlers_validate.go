package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/study-planner-go/pkg/models"
	"github.com/arnavshah/study-planner-go/pkg/planner"
)

// ValidateInput checks a plan input without planning it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	p, err := planner.NewPlanner(input)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	units := make(map[string][]string, len(p.Subjects))
	for _, s := range p.Subjects {
		units[s.Name] = s.Units
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"subject_count":     len(p.Subjects),
			"fixed_event_count": len(p.Events),
			"day_count":         len(p.Settings.Days()),
			"units":             units,
		},
	})
}
