package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arnavshah/study-planner-go/pkg/models"
	"github.com/arnavshah/study-planner-go/pkg/planner"
)

// ErrGenerateFailed is returned when a workbook or calendar cannot be written
var ErrGenerateFailed = errors.New("failed to generate export file")

const (
	SheetSummary  = "Summary"
	SheetDaily    = "Daily"
	SheetScoped   = "Scoped"
	SheetTimeline = "Timeline"
)

type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]interface{}
}

// XLSX renders the plan as a workbook with summary, daily, scoped and timeline sheets
func XLSX(result *models.PlanResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	for i, s := range planSheets(result) {
		idx, err := f.NewSheet(s.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
		}
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for i, w := range s.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(s.header), 1)
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		row := row
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func planSheets(result *models.PlanResult) []sheet {
	summary := sheet{
		name:   SheetSummary,
		header: []string{"subject", "minutes", "duration", "units"},
		widths: []float64{16, 10, 12, 40},
	}
	for _, t := range result.Totals {
		summary.rows = append(summary.rows, []interface{}{t.Subject, t.Minutes, t.Display, strings.Join(t.Units, ", ")})
	}

	daily := sheet{
		name:   SheetDaily,
		header: []string{"date", "weekday", "subject", "minutes", "duration"},
		widths: []float64{12, 8, 16, 10, 12},
	}
	weekday := make(map[string]string, len(result.Days))
	for _, d := range result.Days {
		weekday[d.Date.String()] = d.Weekday
	}
	for _, d := range result.Daily {
		date := d.Date.String()
		daily.rows = append(daily.rows, []interface{}{date, weekday[date], d.Subject, d.Minutes, planner.FormatMinutes(d.Minutes)})
	}

	scoped := sheet{
		name:   SheetScoped,
		header: scopedHeader,
		widths: []float64{12, 16, 20, 10, 12},
	}
	for _, s := range result.Scoped {
		scoped.rows = append(scoped.rows, []interface{}{s.Date.String(), s.Subject, s.Scope, s.Minutes, planner.FormatMinutes(s.Minutes)})
	}

	timeline := sheet{
		name:   SheetTimeline,
		header: timelineHeader,
		widths: []float64{12, 8, 8, 8, 20, 16, 20, 10},
	}
	for _, b := range AllBlocks(result) {
		timeline.rows = append(timeline.rows, []interface{}{
			b.Date.String(), b.Start.String(), b.End.String(), string(b.Kind), b.Title, b.Subject, b.Scope, b.Minutes,
		})
	}

	return []sheet{summary, daily, scoped, timeline}
}
