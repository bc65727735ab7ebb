package planner

import (
	"math"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

const (
	importanceExponentStep = 0.25
	urgentDays             = 3
	urgentBoost            = 1.5
)

// Tuning holds the two user-facing allocation knobs, each in [0, 3]
type Tuning struct {
	ImportanceStrength float64 `json:"importance_strength"`
	UrgencyStrength    float64 `json:"urgency_strength"`
}

// Subject is a validated subject ready for allocation
type Subject struct {
	Name       string
	Importance int
	// TargetMinutes is nil for auto-allocated subjects
	TargetMinutes *int
	ExamDate      *models.Date
	Units         []string
}

// Fixed reports whether the subject has a pinned total
func (s Subject) Fixed() bool {
	return s.TargetMinutes != nil
}

// EligibleOn reports whether the subject may receive time on day
func (s Subject) EligibleOn(day models.Date) bool {
	return s.ExamDate == nil || !day.After(s.ExamDate.Time)
}

// Weight computes a subject's priority for day. The second return value is
// false when the exam is already over.
func Weight(s Subject, day models.Date, t Tuning) (float64, bool) {
	if !s.EligibleOn(day) {
		return 0, false
	}
	w := math.Pow(float64(s.Importance), 1+importanceExponentStep*t.ImportanceStrength)
	if s.ExamDate != nil {
		daysLeft := day.DaysUntil(*s.ExamDate)
		w *= math.Pow(1/float64(daysLeft+1), math.Max(0, t.UrgencyStrength))
		if daysLeft <= urgentDays {
			w *= urgentBoost
		}
	}
	return w, true
}

// Weights returns the weight of every auto-allocated subject eligible on day
func Weights(day models.Date, subjects []Subject, t Tuning) map[string]float64 {
	weights := make(map[string]float64)
	for _, s := range subjects {
		if s.Fixed() {
			continue
		}
		if w, ok := Weight(s, day, t); ok {
			weights[s.Name] += w
		}
	}
	return weights
}
