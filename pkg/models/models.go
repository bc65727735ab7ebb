package models

// Subject is one row of the subject table a student fills in before planning.
type Subject struct {
	Name        string   `json:"name"`
	Importance  string   `json:"importance,omitempty"`
	// TargetHours pins the subject's total study time; nil means auto-allocated.
	TargetHours *float64 `json:"target_hours,omitempty"`
	ExamDate    *Date    `json:"exam_date,omitempty"`
	ScopeText   string   `json:"scope_text,omitempty"`
	ScopeStart  *int     `json:"scope_start,omitempty"`
	ScopeEnd    *int     `json:"scope_end,omitempty"`
}

// FixedEvent is a recurring commitment such as school or an academy class
type FixedEvent struct {
	Title         string   `json:"title"`
	Weekdays      []string `json:"weekdays"`
	Start         Clock    `json:"start"`
	End           Clock    `json:"end"`
	BufferMinutes int      `json:"buffer_minutes"`
}

// PlanInput is the snapshot of everything the planner needs for one run.
// Optional settings are pointers so that an explicit zero can be told apart
// from "use the default".
type PlanInput struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`

	DayStart *Clock `json:"day_start,omitempty"`
	DayEnd   *Clock `json:"day_end,omitempty"`

	WeekdayCapHours *float64 `json:"weekday_cap_hours,omitempty"`
	WeekendCapHours *float64 `json:"weekend_cap_hours,omitempty"`

	FocusMinutes *int `json:"focus_minutes,omitempty"`
	BreakMinutes *int `json:"break_minutes,omitempty"`

	ImportanceStrength *float64 `json:"importance_strength,omitempty"`
	UrgencyStrength    *float64 `json:"urgency_strength,omitempty"`

	Subjects    []Subject    `json:"subjects"`
	FixedEvents []FixedEvent `json:"fixed_events,omitempty"`
}

// BlockKind tells what a timeline block is used for
type BlockKind string

const (
	BlockFixed BlockKind = "fixed"
	BlockStudy BlockKind = "study"
	BlockBreak BlockKind = "break"
)

// DailyAllocation is the number of minutes a subject gets on one day
type DailyAllocation struct {
	Date    Date   `json:"date"`
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
}

// ScopedAllocation splits a DailyAllocation across the subject's scope units
type ScopedAllocation struct {
	Date    Date   `json:"date"`
	Subject string `json:"subject"`
	Scope   string `json:"scope"`
	Minutes int    `json:"minutes"`
}

// Interval is a span of clock time within a single day
type Interval struct {
	Start Clock  `json:"start"`
	End   Clock  `json:"end"`
	Title string `json:"title,omitempty"`
}

// Minutes returns the length of the interval
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

// TimelineBlock is one entry of a day's timeline
type TimelineBlock struct {
	Date    Date      `json:"date"`
	Start   Clock     `json:"start"`
	End     Clock     `json:"end"`
	Kind    BlockKind `json:"kind"`
	Title   string    `json:"title"`
	Subject string    `json:"subject,omitempty"`
	Scope   string    `json:"scope,omitempty"`
	Minutes int       `json:"minutes"`
}

// DayPlan collects everything computed for one calendar day
type DayPlan struct {
	Date                Date            `json:"date"`
	Weekday             string          `json:"weekday"`
	CapMinutes          int             `json:"cap_minutes"`
	EffectiveCapMinutes int             `json:"effective_cap_minutes"`
	Busy                []Interval      `json:"busy"`
	Free                []Interval      `json:"free"`
	Blocks              []TimelineBlock `json:"blocks"`
	StudyMinutes        int             `json:"study_minutes"`
	DroppedMinutes      int             `json:"dropped_minutes"`
}

// SubjectTotal summarises how much time a subject received over the window
type SubjectTotal struct {
	Subject string   `json:"subject"`
	Minutes int      `json:"minutes"`
	Display string   `json:"display"`
	Units   []string `json:"units"`
}

// WarningCode is a machine readable reason attached to a partial or empty result
type WarningCode string

const (
	WarnZeroCapacity    WarningCode = "zero_capacity"
	WarnNoAllocation    WarningCode = "no_allocation"
	WarnUnplacedMinutes WarningCode = "unplaced_minutes"
)

// Warning explains why a plan is empty or partial
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Date    *Date       `json:"date,omitempty"`
}

// PlanResult is the output of one planning run
type PlanResult struct {
	StartDate Date               `json:"start_date"`
	EndDate   Date               `json:"end_date"`
	Days      []DayPlan          `json:"days"`
	Daily     []DailyAllocation  `json:"daily"`
	Scoped    []ScopedAllocation `json:"scoped"`
	Totals    []SubjectTotal     `json:"totals"`
	Warnings  []Warning          `json:"warnings,omitempty"`
}

// HasWarning reports whether the result carries the given warning code
func (r *PlanResult) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
