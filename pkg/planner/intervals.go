package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

// Window is the part of a day the student is awake and available
type Window struct {
	Start models.Clock `json:"start"`
	End   models.Clock `json:"end"`
}

// Event is a validated recurring commitment
type Event struct {
	Title    string
	Weekdays map[time.Weekday]bool
	Start    models.Clock
	End      models.Clock
	Buffer   int
}

// OccursOn reports whether the event recurs on day
func (e Event) OccursOn(day models.Date) bool {
	return e.Weekdays[day.Weekday()]
}

// BusyIntervals returns the merged, window-clipped spans blocked by events on
// day, each widened by the event's buffer on both sides.
func BusyIntervals(day models.Date, w Window, events []Event) []models.Interval {
	var clipped []models.Interval
	for _, ev := range events {
		if !ev.OccursOn(day) {
			continue
		}
		s := ev.Start.Add(-ev.Buffer)
		e := ev.End.Add(ev.Buffer)
		if s < w.Start {
			s = w.Start
		}
		if e > w.End {
			e = w.End
		}
		if e > s {
			clipped = append(clipped, models.Interval{Start: s, End: e, Title: ev.Title})
		}
	}
	if len(clipped) == 0 {
		return nil
	}

	sort.SliceStable(clipped, func(i, j int) bool {
		if clipped[i].Start != clipped[j].Start {
			return clipped[i].Start < clipped[j].Start
		}
		return clipped[i].End < clipped[j].End
	})

	merged := []models.Interval{clipped[0]}
	for _, iv := range clipped[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			last.Title = joinTitle(last.Title, iv.Title)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// FreeIntervals is the complement of busy within the window. busy must be
// sorted and non-overlapping, as returned by BusyIntervals.
func FreeIntervals(w Window, busy []models.Interval) []models.Interval {
	var free []models.Interval
	cur := w.Start
	for _, b := range busy {
		if b.Start > cur {
			free = append(free, models.Interval{Start: cur, End: b.Start})
		}
		if b.End > cur {
			cur = b.End
		}
	}
	if cur < w.End {
		free = append(free, models.Interval{Start: cur, End: w.End})
	}
	return free
}

// DayIntervals computes both the free and busy lists for day
func DayIntervals(day models.Date, w Window, events []Event) (free, busy []models.Interval) {
	busy = BusyIntervals(day, w, events)
	return FreeIntervals(w, busy), busy
}

func totalMinutes(intervals []models.Interval) int {
	sum := 0
	for _, iv := range intervals {
		sum += iv.Minutes()
	}
	return sum
}

func joinTitle(a, b string) string {
	if b == "" || a == b {
		return a
	}
	if a == "" {
		return b
	}
	for _, part := range strings.Split(a, ", ") {
		if part == b {
			return a
		}
	}
	return a + ", " + b
}
