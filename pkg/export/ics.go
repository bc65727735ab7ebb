package export

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

const productID = "-//study-planner-go//plan export//EN"

// ICSOptions controls which blocks become calendar events
type ICSOptions struct {
	Name          string
	Location      *time.Location
	IncludeBreaks bool
	IncludeFixed  bool
	// Stamp is written as DTSTAMP on every event; zero means now
	Stamp time.Time
}

// ICS renders study blocks (and optionally breaks and fixed events) as an iCalendar document
func ICS(result *models.PlanResult, opts ICSOptions) string {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("Study plan %s to %s", result.StartDate, result.EndDate)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)

	for _, d := range result.Days {
		for i, b := range d.Blocks {
			switch b.Kind {
			case models.BlockBreak:
				if !opts.IncludeBreaks {
					continue
				}
			case models.BlockFixed:
				if !opts.IncludeFixed {
					continue
				}
			}

			event := cal.AddEvent(eventUID(b, i))
			event.SetDtStampTime(stamp)
			event.SetStartAt(b.Date.At(b.Start, loc))
			event.SetEndAt(b.Date.At(b.End, loc))
			event.SetSummary(eventSummary(b))
			if b.Kind == models.BlockStudy {
				event.SetDescription(fmt.Sprintf("%s: %s (%d min)", b.Subject, b.Scope, b.Minutes))
			}
			event.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(b.Kind)))
		}
	}
	return cal.Serialize()
}

func eventUID(b models.TimelineBlock, i int) string {
	return fmt.Sprintf("%s-%s-%d-%s@study-planner", b.Date, strings.ReplaceAll(b.Start.String(), ":", ""), i, b.Kind)
}

func eventSummary(b models.TimelineBlock) string {
	if b.Kind == models.BlockStudy && b.Scope != "" {
		return b.Subject + " · " + b.Scope
	}
	return b.Title
}
