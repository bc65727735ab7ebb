package planner

import (
	"github.com/arnavshah/study-planner-go/pkg/models"
)

// ExampleInput is the sample subject table offered to new users, anchored at today
func ExampleInput(today models.Date) models.PlanInput {
	hours := func(h float64) *float64 { return &h }
	num := func(n int) *int { return &n }
	exam := func(days int) *models.Date {
		d := today.AddDays(days)
		return &d
	}

	return models.PlanInput{
		StartDate: today,
		EndDate:   today.AddDays(14),
		Subjects: []models.Subject{
			{Name: "국어", Importance: "보통", ExamDate: exam(7), ScopeText: "지문 1~5"},
			{Name: "수학", Importance: "매우 높음", TargetHours: hours(20), ExamDate: exam(10), ScopeText: "1~5단원", ScopeStart: num(1), ScopeEnd: num(5)},
			{Name: "영어", Importance: "높음", ExamDate: exam(14), ScopeText: "Lesson 1~3", ScopeStart: num(1), ScopeEnd: num(3)},
			{Name: "사회", Importance: "낮음", TargetHours: hours(6), ScopeText: "-"},
		},
		FixedEvents: []models.FixedEvent{
			{
				Title:         "학교",
				Weekdays:      []string{"월", "화", "수", "목", "금"},
				Start:         models.NewClock(9, 0),
				End:           models.NewClock(15, 0),
				BufferMinutes: 10,
			},
		},
	}
}

// PreviewDays picks up to n days to show first: starting today when today is
// inside the plan window, otherwise from the first day.
func PreviewDays(result *models.PlanResult, today models.Date, n int) []models.DayPlan {
	if result == nil || len(result.Days) == 0 || n <= 0 {
		return nil
	}
	start := 0
	if !today.Before(result.StartDate.Time) && !today.After(result.EndDate.Time) {
		for i, d := range result.Days {
			if !d.Date.Before(today.Time) {
				start = i
				break
			}
		}
	}
	end := start + n
	if end > len(result.Days) {
		end = len(result.Days)
	}
	return result.Days[start:end]
}
