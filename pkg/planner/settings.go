package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

// Defaults applied when a PlanInput leaves a setting out
const (
	DefaultWeekdayCapHours    = 4.0
	DefaultWeekendCapHours    = 6.0
	DefaultFocusMinutes       = 50
	DefaultBreakMinutes       = 10
	DefaultImportanceStrength = 1.0
	DefaultUrgencyStrength    = 1.2

	MaxWindowDays = 366
)

var (
	DefaultDayStart = models.NewClock(6, 0)
	DefaultDayEnd   = models.NewClock(23, 0)
)

// Settings is a PlanInput with defaults applied and every value checked
type Settings struct {
	Start             models.Date
	End               models.Date
	Window            Window
	WeekdayCapMinutes int
	WeekendCapMinutes int
	Cadence           Cadence
	Tuning            Tuning
}

// CapFor returns the raw study cap of a day before fixed events are considered
func (s Settings) CapFor(day models.Date) int {
	if day.IsWeekend() {
		return s.WeekendCapMinutes
	}
	return s.WeekdayCapMinutes
}

// Days lists every date from Start to End inclusive
func (s Settings) Days() []models.Date {
	var days []models.Date
	for d := s.Start; !d.After(s.End.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Resolve validates input and converts it to Settings, subjects and events.
// Only invalid configuration is reported as an error; everything else is
// left to the planner to handle as an empty or partial result.
func Resolve(input models.PlanInput) (Settings, []Subject, []Event, error) {
	var s Settings

	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return s, nil, nil, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidWindow)
	}
	if input.StartDate.After(input.EndDate.Time) {
		return s, nil, nil, fmt.Errorf("%w: %s > %s", ErrInvalidWindow, input.StartDate, input.EndDate)
	}
	if input.StartDate.DaysUntil(input.EndDate) >= MaxWindowDays {
		return s, nil, nil, fmt.Errorf("%w: window longer than %d days", ErrInvalidConfig, MaxWindowDays)
	}
	s.Start, s.End = input.StartDate, input.EndDate

	s.Window = Window{Start: clockOr(input.DayStart, DefaultDayStart), End: clockOr(input.DayEnd, DefaultDayEnd)}
	if s.Window.Start >= s.Window.End || s.Window.End > models.MinutesPerDay {
		return s, nil, nil, fmt.Errorf("%w: day_start must be before day_end", ErrInvalidConfig)
	}

	weekday := floatOr(input.WeekdayCapHours, DefaultWeekdayCapHours)
	weekend := floatOr(input.WeekendCapHours, DefaultWeekendCapHours)
	if !inRange(weekday, 0, 24) || !inRange(weekend, 0, 24) {
		return s, nil, nil, fmt.Errorf("%w: daily caps must be between 0 and 24 hours", ErrInvalidConfig)
	}
	s.WeekdayCapMinutes = int(math.RoundToEven(weekday * 60))
	s.WeekendCapMinutes = int(math.RoundToEven(weekend * 60))

	s.Cadence = Cadence{Focus: intOr(input.FocusMinutes, DefaultFocusMinutes), Break: intOr(input.BreakMinutes, DefaultBreakMinutes)}
	if s.Cadence.Focus < 20 || s.Cadence.Focus > 180 || s.Cadence.Focus%Granularity != 0 {
		return s, nil, nil, fmt.Errorf("%w: focus_minutes must be a multiple of 5 between 20 and 180", ErrInvalidConfig)
	}
	if s.Cadence.Break < 0 || s.Cadence.Break > 60 || s.Cadence.Break%Granularity != 0 {
		return s, nil, nil, fmt.Errorf("%w: break_minutes must be a multiple of 5 between 0 and 60", ErrInvalidConfig)
	}

	s.Tuning = Tuning{
		ImportanceStrength: floatOr(input.ImportanceStrength, DefaultImportanceStrength),
		UrgencyStrength:    floatOr(input.UrgencyStrength, DefaultUrgencyStrength),
	}
	if !inRange(s.Tuning.ImportanceStrength, 0, 3) || !inRange(s.Tuning.UrgencyStrength, 0, 3) {
		return s, nil, nil, fmt.Errorf("%w: strengths must be between 0 and 3", ErrInvalidConfig)
	}

	subjects, err := resolveSubjects(input.Subjects)
	if err != nil {
		return s, nil, nil, err
	}
	events, err := resolveEvents(input.FixedEvents)
	if err != nil {
		return s, nil, nil, err
	}
	return s, subjects, events, nil
}

func resolveSubjects(rows []models.Subject) ([]Subject, error) {
	seen := make(map[string]bool)
	var out []Subject
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSubject, name)
		}
		seen[name] = true

		for _, bound := range []*int{row.ScopeStart, row.ScopeEnd} {
			if bound != nil && (*bound < 0 || *bound > MaxScopeNumber) {
				return nil, fmt.Errorf("%w: scope range of %q must be between 0 and %d", ErrInvalidConfig, name, MaxScopeNumber)
			}
		}

		subj := Subject{
			Name:       name,
			Importance: ImportanceLevel(row.Importance),
			Units:      BuildScopeUnits(row.ScopeText, row.ScopeStart, row.ScopeEnd),
		}
		if row.TargetHours != nil {
			h := *row.TargetHours
			if math.IsNaN(h) || h < 0 || h > 24*MaxWindowDays {
				return nil, fmt.Errorf("%w: target_hours of %q out of range", ErrInvalidConfig, name)
			}
			target := int(math.RoundToEven(h * 60))
			subj.TargetMinutes = &target
		}
		if row.ExamDate != nil && !row.ExamDate.IsZero() {
			exam := *row.ExamDate
			subj.ExamDate = &exam
		}
		out = append(out, subj)
	}
	if len(out) == 0 {
		return nil, ErrNoSubjects
	}
	return out, nil
}

func resolveEvents(rows []models.FixedEvent) ([]Event, error) {
	var out []Event
	for i, row := range rows {
		title := strings.TrimSpace(row.Title)
		if row.End <= row.Start {
			return nil, fmt.Errorf("%w: fixed event %d (%s) must end after it starts", ErrInvalidConfig, i+1, title)
		}
		if row.BufferMinutes < 0 || row.BufferMinutes > 120 {
			return nil, fmt.Errorf("%w: buffer_minutes of fixed event %d must be between 0 and 120", ErrInvalidConfig, i+1)
		}
		days := make(map[time.Weekday]bool, len(row.Weekdays))
		for _, label := range row.Weekdays {
			wd, err := ParseWeekday(label)
			if err != nil {
				return nil, fmt.Errorf("%w: fixed event %d: %v", ErrInvalidConfig, i+1, err)
			}
			days[wd] = true
		}
		if len(days) == 0 {
			continue
		}
		out = append(out, Event{
			Title:    title,
			Weekdays: days,
			Start:    row.Start,
			End:      row.End,
			Buffer:   row.BufferMinutes,
		})
	}
	return out, nil
}

func clockOr(v *models.Clock, def models.Clock) models.Clock {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
