package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arnavshah/study-planner-go/pkg/export"
	"github.com/arnavshah/study-planner-go/pkg/models"
	"github.com/arnavshah/study-planner-go/pkg/planner"
)

func main() {
	in := flag.String("in", "", "plan input JSON file, or - for stdin")
	example := flag.Bool("example", false, "plan the built-in example input starting today")
	outDir := flag.String("out", "", "directory for plan.json, scoped.csv, timeline.csv, plan.xlsx and plan.ics")
	tz := flag.String("tz", "UTC", "time zone for calendar events")
	preview := flag.Int("preview", 7, "number of days to print")
	flag.Parse()

	if err := run(*in, *example, *outDir, *tz, *preview, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(in string, example bool, outDir, tz string, preview int, stdout io.Writer) error {
	today := models.DateOf(time.Now())

	var input models.PlanInput
	switch {
	case example:
		input = planner.ExampleInput(today)
	case in == "":
		return fmt.Errorf("either -in or -example is required")
	default:
		data, err := readInput(in)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("parsing %s: %w", in, err)
		}
	}

	result, err := planner.Plan(input)
	if err != nil {
		return err
	}

	printPreview(stdout, result, planner.PreviewDays(result, today, preview))

	if outDir == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown time zone %q: %w", tz, err)
	}
	return writeFiles(outDir, result, loc)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printPreview(w io.Writer, result *models.PlanResult, days []models.DayPlan) {
	fmt.Fprintf(w, "Plan %s to %s\n", result.StartDate, result.EndDate)
	for _, t := range result.Totals {
		fmt.Fprintf(w, "  %-12s %s\n", t.Subject, t.Display)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  ! %s: %s\n", warn.Code, warn.Message)
	}

	for _, d := range days {
		fmt.Fprintf(w, "\n%s (%s)  cap %s, planned %s\n", d.Date, d.Weekday,
			planner.FormatMinutes(d.EffectiveCapMinutes), planner.FormatMinutes(d.StudyMinutes))
		for _, b := range d.Blocks {
			label := b.Title
			if b.Kind == models.BlockStudy {
				label = b.Subject + " · " + b.Scope
			}
			fmt.Fprintf(w, "  %s-%s  %-6s %s\n", b.Start, b.End, b.Kind, label)
		}
	}
}

func writeFiles(dir string, result *models.PlanResult, loc *time.Location) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "plan.json"), data, 0o644); err != nil {
		return err
	}

	var scoped, timeline strings.Builder
	if err := export.WriteScopedCSV(&scoped, result.Scoped); err != nil {
		return err
	}
	if err := export.WriteTimelineCSV(&timeline, export.AllBlocks(result)); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "scoped.csv"), []byte(scoped.String()), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "timeline.csv"), []byte(timeline.String()), 0o644); err != nil {
		return err
	}

	buf, err := export.XLSX(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "plan.xlsx"), buf.Bytes(), 0o644); err != nil {
		return err
	}

	cal := export.ICS(result, export.ICSOptions{Location: loc})
	return os.WriteFile(filepath.Join(dir, "plan.ics"), []byte(cal), 0o644)
}
