package planner

import (
	"testing"
	"time"
)

func TestImportanceLevel(t *testing.T) {
	cases := map[string]int{
		"매우 높음":     5,
		"매우  높음":    5,
		"낮음":        2,
		"High":      4,
		"very low":  1,
		"2":         2,
		"":          DefaultImportance,
		"important": DefaultImportance,
		"9":         DefaultImportance,
	}
	for label, want := range cases {
		if got := ImportanceLevel(label); got != want {
			t.Errorf("ImportanceLevel(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"월":       time.Monday,
		"목요일":     time.Thursday,
		"Tuesday": time.Tuesday,
		"tues":    time.Tuesday,
		" SAT ":   time.Saturday,
		"sun":     time.Sunday,
	}
	for label, want := range cases {
		got, err := ParseWeekday(label)
		if err != nil {
			t.Errorf("ParseWeekday(%q) returned error: %v", label, err)
			continue
		}
		if got != want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", label, got, want)
		}
	}

	for _, bad := range []string{"", "xyz", "mondayy"} {
		if _, err := ParseWeekday(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
