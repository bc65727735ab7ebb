package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/study-planner-go/pkg/export"
	"github.com/arnavshah/study-planner-go/pkg/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func exportFilename(result *models.PlanResult, ext string) string {
	return fmt.Sprintf("study_plan_%s_%s.%s", result.StartDate, result.EndDate, ext)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

// PlanCSV returns the scoped plan and the full timeline as CSV strings
func (h *Handler) PlanCSV(c *gin.Context) {
	result, ok := h.runPlan(c)
	if !ok {
		return
	}

	var scoped, timeline strings.Builder
	if err := export.WriteScopedCSV(&scoped, result.Scoped); err != nil {
		h.log().Error("writing scoped csv", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
		return
	}
	if err := export.WriteTimelineCSV(&timeline, export.AllBlocks(result)); err != nil {
		h.log().Error("writing timeline csv", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scoped_csv":   scoped.String(),
		"timeline_csv": timeline.String(),
		"warnings":     result.Warnings,
	})
}

// PlanXLSX returns the plan as an Excel workbook download
func (h *Handler) PlanXLSX(c *gin.Context) {
	result, ok := h.runPlan(c)
	if !ok {
		return
	}

	buf, err := export.XLSX(result)
	if err != nil {
		h.log().Error("writing workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate workbook"})
		return
	}
	attachment(c, exportFilename(result, "xlsx"), xlsxContentType, buf.Bytes())
}

// PlanICS returns the plan as an iCalendar download.
// Query: tz (IANA name, default UTC), breaks=true, fixed=true.
func (h *Handler) PlanICS(c *gin.Context) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time zone " + strconv.Quote(tz)})
			return
		}
		loc = l
	}

	result, ok := h.runPlan(c)
	if !ok {
		return
	}

	breaks, _ := strconv.ParseBool(c.Query("breaks"))
	fixed, _ := strconv.ParseBool(c.Query("fixed"))
	cal := export.ICS(result, export.ICSOptions{
		Location:      loc,
		IncludeBreaks: breaks,
		IncludeFixed:  fixed,
		Stamp:         h.now(),
	})
	attachment(c, exportFilename(result, "ics"), "text/calendar; charset=utf-8", []byte(cal))
}
