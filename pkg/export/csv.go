package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/arnavshah/study-planner-go/pkg/models"
	"github.com/arnavshah/study-planner-go/pkg/planner"
)

// spreadsheet apps need the BOM to detect UTF-8 in subject names
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	scopedHeader   = []string{"date", "subject", "scope", "minutes", "duration"}
	timelineHeader = []string{"date", "start", "end", "kind", "title", "subject", "scope", "minutes"}
)

// WriteScopedCSV writes one row per (date, subject, scope) allocation
func WriteScopedCSV(w io.Writer, rows []models.ScopedAllocation) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(scopedHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date.String(),
			r.Subject,
			r.Scope,
			strconv.Itoa(r.Minutes),
			planner.FormatMinutes(r.Minutes),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTimelineCSV writes timeline blocks in the order given
func WriteTimelineCSV(w io.Writer, blocks []models.TimelineBlock) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(timelineHeader); err != nil {
		return err
	}
	for _, b := range blocks {
		record := []string{
			b.Date.String(),
			b.Start.String(),
			b.End.String(),
			string(b.Kind),
			b.Title,
			b.Subject,
			b.Scope,
			strconv.Itoa(b.Minutes),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// AllBlocks flattens every day's timeline in date order
func AllBlocks(result *models.PlanResult) []models.TimelineBlock {
	var blocks []models.TimelineBlock
	for _, d := range result.Days {
		blocks = append(blocks, d.Blocks...)
	}
	return blocks
}
