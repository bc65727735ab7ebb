package planner

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int { return &v }

func TestPlan_UrgentExamConcentratesTime(t *testing.T) {
	exam := monday.AddDays(3)
	input := models.PlanInput{
		StartDate:       monday,
		EndDate:         monday.AddDays(6),
		WeekdayCapHours: f64(4),
		WeekendCapHours: f64(4),
		Subjects: []models.Subject{
			{Name: "Math", Importance: "매우 높음", ExamDate: &exam, ScopeText: "1~4단원"},
		},
	}

	result, err := Plan(input)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	perDay := make(map[string]int)
	for _, d := range result.Daily {
		perDay[d.Date.String()] += d.Minutes
	}
	for i := 0; i <= 3; i++ {
		if got := perDay[monday.AddDays(i).String()]; got != 240 {
			t.Errorf("Day %d: expected 240 minutes, got %d", i, got)
		}
	}
	for i := 4; i <= 6; i++ {
		if got := perDay[monday.AddDays(i).String()]; got != 0 {
			t.Errorf("Day %d is after the exam, expected 0, got %d", i, got)
		}
	}
	if len(result.Totals) != 1 || result.Totals[0].Minutes != 960 || result.Totals[0].Display != "16h" {
		t.Errorf("Unexpected totals %+v", result.Totals)
	}
}

func TestPlan_InvalidWindow(t *testing.T) {
	_, err := Plan(models.PlanInput{
		StartDate: monday.AddDays(1),
		EndDate:   monday,
		Subjects:  []models.Subject{{Name: "Math"}},
	})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
}

func TestPlan_NoSubjects(t *testing.T) {
	_, err := Plan(models.PlanInput{
		StartDate: monday,
		EndDate:   monday,
		Subjects:  []models.Subject{{Name: "  "}, {Name: ""}},
	})
	if !errors.Is(err, ErrNoSubjects) {
		t.Errorf("Expected ErrNoSubjects, got %v", err)
	}
}

func TestPlan_DuplicateSubject(t *testing.T) {
	_, err := Plan(models.PlanInput{
		StartDate: monday,
		EndDate:   monday,
		Subjects:  []models.Subject{{Name: "Math"}, {Name: " Math "}},
	})
	if !errors.Is(err, ErrDuplicateSubject) {
		t.Errorf("Expected ErrDuplicateSubject, got %v", err)
	}
}

func TestPlan_InvalidConfig(t *testing.T) {
	base := func() models.PlanInput {
		return models.PlanInput{StartDate: monday, EndDate: monday, Subjects: []models.Subject{{Name: "Math"}}}
	}

	cases := map[string]func(*models.PlanInput){
		"focus too short": func(in *models.PlanInput) { in.FocusMinutes = intp(10) },
		"break not step":  func(in *models.PlanInput) { in.BreakMinutes = intp(7) },
		"urgency > 3":     func(in *models.PlanInput) { in.UrgencyStrength = f64(3.5) },
		"negative cap":    func(in *models.PlanInput) { in.WeekdayCapHours = f64(-1) },
		"window reversed": func(in *models.PlanInput) {
			s, e := models.NewClock(22, 0), models.NewClock(6, 0)
			in.DayStart, in.DayEnd = &s, &e
		},
		"event ends first": func(in *models.PlanInput) {
			in.FixedEvents = []models.FixedEvent{{Title: "x", Weekdays: []string{"mon"}, Start: models.NewClock(10, 0), End: models.NewClock(9, 0)}}
		},
		"scope bound too large": func(in *models.PlanInput) {
			one, top := 1, math.MaxInt
			in.Subjects[0].ScopeStart, in.Subjects[0].ScopeEnd = &one, &top
		},
		"bad weekday": func(in *models.PlanInput) {
			in.FixedEvents = []models.FixedEvent{{Title: "x", Weekdays: []string{"someday"}, Start: models.NewClock(9, 0), End: models.NewClock(10, 0)}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base()
			mutate(&in)
			if _, err := Plan(in); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestPlan_ZeroCapacityWarns(t *testing.T) {
	result, err := Plan(models.PlanInput{
		StartDate:       monday,
		EndDate:         monday.AddDays(6),
		WeekdayCapHours: f64(0),
		WeekendCapHours: f64(0),
		Subjects:        []models.Subject{{Name: "Math", Importance: "5"}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Daily) != 0 {
		t.Errorf("Expected empty allocation, got %+v", result.Daily)
	}
	if !result.HasWarning(models.WarnZeroCapacity) {
		t.Errorf("Expected zero capacity warning, got %+v", result.Warnings)
	}
	if len(result.Days) != 7 {
		t.Errorf("Expected 7 day entries, got %d", len(result.Days))
	}
}

func TestPlan_AllExamsPassedWarns(t *testing.T) {
	past := monday.AddDays(-1)
	result, err := Plan(models.PlanInput{
		StartDate: monday,
		EndDate:   monday.AddDays(2),
		Subjects:  []models.Subject{{Name: "Math", ExamDate: &past}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.HasWarning(models.WarnNoAllocation) {
		t.Errorf("Expected no allocation warning, got %+v", result.Warnings)
	}
}

func TestPlan_ExampleInvariants(t *testing.T) {
	input := ExampleInput(monday)
	result, err := Plan(input)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	effCap := make(map[string]int)
	for _, d := range result.Days {
		effCap[d.Date.String()] = d.EffectiveCapMinutes
	}

	dayTotals := make(map[string]int)
	subjectTotals := make(map[string]int)
	pairTotals := make(map[string]int)
	for _, d := range result.Daily {
		if d.Minutes%Granularity != 0 || d.Minutes <= 0 {
			t.Errorf("Allocation %+v is not a positive multiple of 5", d)
		}
		dayTotals[d.Date.String()] += d.Minutes
		subjectTotals[d.Subject] += d.Minutes
		pairTotals[d.Date.String()+"/"+d.Subject] += d.Minutes
	}
	for day, sum := range dayTotals {
		if sum > effCap[day] {
			t.Errorf("Day %s allocates %d over its cap %d", day, sum, effCap[day])
		}
	}

	days := len(result.Days)
	for _, s := range input.Subjects {
		if s.TargetHours != nil {
			limit := int(*s.TargetHours*60) + 5*days
			if subjectTotals[s.Name] > limit {
				t.Errorf("%s exceeds its target: %d > %d", s.Name, subjectTotals[s.Name], limit)
			}
		}
		if s.ExamDate != nil {
			for _, d := range result.Daily {
				if d.Subject == s.Name && d.Date.After(s.ExamDate.Time) {
					t.Errorf("%s scheduled on %s after exam %s", s.Name, d.Date, s.ExamDate)
				}
			}
		}
	}

	for _, sa := range result.Scoped {
		pairTotals[sa.Date.String()+"/"+sa.Subject] -= sa.Minutes
	}
	for key, diff := range pairTotals {
		if diff != 0 {
			t.Errorf("Scoped minutes for %s differ from daily by %d", key, diff)
		}
	}

	w := Window{Start: DefaultDayStart, End: DefaultDayEnd}
	for _, d := range result.Days {
		assertNoOverlap(t, d.Blocks, w)
	}

	// weekdays have school, so Monday must show a fixed block
	if len(result.Days[0].Busy) != 1 || result.Days[0].Busy[0].Title != "학교" {
		t.Errorf("Expected the school block on Monday, got %+v", result.Days[0].Busy)
	}
}

func TestPlan_Idempotent(t *testing.T) {
	input := ExampleInput(monday)
	first, err := Plan(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Plan(input)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected two runs over the same input to be identical")
	}
}

func TestPlan_UnplacedMinutesAreReported(t *testing.T) {
	start, end := models.NewClock(9, 0), models.NewClock(11, 0)
	result, err := Plan(models.PlanInput{
		StartDate:       monday,
		EndDate:         monday,
		DayStart:        &start,
		DayEnd:          &end,
		WeekdayCapHours: f64(2),
		FocusMinutes:    intp(50),
		BreakMinutes:    intp(10),
		Subjects:        []models.Subject{{Name: "Math"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	day := result.Days[0]
	if day.EffectiveCapMinutes != 120 {
		t.Fatalf("Expected 120 minute cap, got %d", day.EffectiveCapMinutes)
	}
	// 50 + 10 + 50 + 10 leaves 20 of the 120 minutes without room
	if day.StudyMinutes != 100 || day.DroppedMinutes != 20 {
		t.Errorf("Expected 100 placed and 20 dropped, got %d and %d", day.StudyMinutes, day.DroppedMinutes)
	}
	if !result.HasWarning(models.WarnUnplacedMinutes) {
		t.Errorf("Expected unplaced warning, got %+v", result.Warnings)
	}
}

func TestPreviewDays(t *testing.T) {
	result, err := Plan(ExampleInput(monday))
	if err != nil {
		t.Fatal(err)
	}

	got := PreviewDays(result, monday.AddDays(3), 7)
	if len(got) != 7 || !got[0].Date.Equal(monday.AddDays(3).Time) {
		t.Errorf("Expected a week starting on day 3, got %d days from %s", len(got), got[0].Date)
	}

	got = PreviewDays(result, monday.AddDays(-30), 7)
	if !got[0].Date.Equal(monday.Time) {
		t.Errorf("Expected preview to start at the window start, got %s", got[0].Date)
	}

	got = PreviewDays(result, monday.AddDays(12), 7)
	if len(got) != 3 {
		t.Errorf("Expected the last three days, got %d", len(got))
	}
}
