package planner

import "errors"

var (
	// ErrInvalidWindow is returned when the planning window is missing or runs backwards
	ErrInvalidWindow = errors.New("start date must not be after end date")
	// ErrNoSubjects is returned when every subject row has an empty name
	ErrNoSubjects = errors.New("need at least one subject")
	// ErrDuplicateSubject is returned when two subjects share a name
	ErrDuplicateSubject = errors.New("duplicate subject name")
	// ErrInvalidConfig covers out-of-range settings and malformed fixed events
	ErrInvalidConfig = errors.New("invalid planner configuration")
)
