package planner

import (
	"fmt"
	"sort"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

// Planner turns a validated input snapshot into a day-by-day study plan.
// It holds no state between runs; build a new one per PlanInput.
type Planner struct {
	Settings Settings
	Subjects []Subject
	Events   []Event
	Warnings []models.Warning
}

// NewPlanner validates input and creates a planner for it
func NewPlanner(input models.PlanInput) (*Planner, error) {
	settings, subjects, events, err := Resolve(input)
	if err != nil {
		return nil, err
	}
	return &Planner{
		Settings: settings,
		Subjects: subjects,
		Events:   events,
	}, nil
}

// Plan is the one-shot entry point: validate input, then run the planner
func Plan(input models.PlanInput) (*models.PlanResult, error) {
	p, err := NewPlanner(input)
	if err != nil {
		return nil, err
	}
	return p.Run(), nil
}

// Run computes the plan. The output depends only on the planner's inputs.
func (p *Planner) Run() *models.PlanResult {
	p.Warnings = nil
	days := p.Settings.Days()

	result := &models.PlanResult{
		StartDate: p.Settings.Start,
		EndDate:   p.Settings.End,
		Days:      make([]models.DayPlan, len(days)),
	}

	// Capacity per day: the raw cap limited by the free time around fixed events
	caps := make([]DayCap, len(days))
	anyCapacity := false
	for i, d := range days {
		free, busy := DayIntervals(d, p.Settings.Window, p.Events)
		capMin := p.Settings.CapFor(d)
		eff := Floor5(minInt(capMin, totalMinutes(free)))
		caps[i] = DayCap{Date: d, Minutes: eff}
		if eff > 0 {
			anyCapacity = true
		}
		result.Days[i] = models.DayPlan{
			Date:                d,
			Weekday:             WeekdayLabel(d.Weekday()),
			CapMinutes:          capMin,
			EffectiveCapMinutes: eff,
			Busy:                busy,
			Free:                free,
		}
	}
	if !anyCapacity {
		p.warn(models.WarnZeroCapacity, "no study time is available on any day; check the daily caps and fixed events", nil)
	}

	// Daily budget
	eligible := EligibleCapTotals(caps, p.Subjects)
	for _, c := range caps {
		result.Daily = append(result.Daily, AllocateDay(c.Date, c.Minutes, p.Subjects, eligible, p.Settings.Tuning)...)
	}
	if len(result.Daily) == 0 && anyCapacity {
		p.warn(models.WarnNoAllocation, "nothing could be allocated; check subject settings and exam dates", nil)
	}

	// Scope units
	scoped := p.scheduleScopes(result.Daily)
	result.Totals = p.subjectTotals(result.Daily)

	// Timeline per day
	for i := range result.Days {
		day := &result.Days[i]
		items := scoped[day.Date.String()]
		result.Scoped = append(result.Scoped, items...)

		blocks, dropped := PackDay(day.Date, day.Free, day.Busy, items, p.Settings.Cadence)
		day.Blocks = blocks
		day.DroppedMinutes = dropped
		for _, b := range blocks {
			if b.Kind == models.BlockStudy {
				day.StudyMinutes += b.Minutes
			}
		}
		if dropped > 0 {
			date := day.Date
			p.warn(models.WarnUnplacedMinutes, fmt.Sprintf("%d minutes did not fit into the free time on %s", dropped, date), &date)
		}
	}

	result.Warnings = p.Warnings
	return result
}

func (p *Planner) warn(code models.WarningCode, msg string, date *models.Date) {
	p.Warnings = append(p.Warnings, models.Warning{Code: code, Message: msg, Date: date})
}

// scheduleScopes runs the scope scheduler per subject and groups the result
// by (date, subject) so days can be assembled in subject order.
func (p *Planner) scheduleScopes(daily []models.DailyAllocation) map[string][]models.ScopedAllocation {
	bySubject := make(map[string][]models.DailyAllocation)
	totals := make(map[string]int)
	for _, d := range daily {
		bySubject[d.Subject] = append(bySubject[d.Subject], d)
		totals[d.Subject] += d.Minutes
	}

	grouped := make(map[string][]models.ScopedAllocation)
	for _, s := range p.Subjects {
		rows := bySubject[s.Name]
		if len(rows) == 0 {
			continue
		}
		target := UnitTarget(totals[s.Name], len(s.Units))
		for _, sa := range ScheduleScopes(s.Units, target, rows) {
			key := scopedKey(sa.Date, sa.Subject)
			grouped[key] = append(grouped[key], sa)
		}
	}

	ordered := make(map[string][]models.ScopedAllocation)
	for _, d := range daily {
		key := d.Date.String()
		ordered[key] = append(ordered[key], grouped[scopedKey(d.Date, d.Subject)]...)
	}
	return ordered
}

func scopedKey(d models.Date, subject string) string {
	return d.String() + "\x00" + subject
}

// subjectTotals sums each subject's minutes, largest first
func (p *Planner) subjectTotals(daily []models.DailyAllocation) []models.SubjectTotal {
	sums := make(map[string]int)
	for _, d := range daily {
		sums[d.Subject] += d.Minutes
	}
	var totals []models.SubjectTotal
	for _, s := range p.Subjects {
		if sums[s.Name] <= 0 {
			continue
		}
		totals = append(totals, models.SubjectTotal{
			Subject: s.Name,
			Minutes: sums[s.Name],
			Display: FormatMinutes(sums[s.Name]),
			Units:   s.Units,
		})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Minutes > totals[j].Minutes
	})
	return totals
}
