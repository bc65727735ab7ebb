package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultImportance is used when an importance label is missing or unknown
const DefaultImportance = 3

var importanceLevels = map[string]int{
	"매우 낮음": 1,
	"낮음":    2,
	"보통":    3,
	"높음":    4,
	"매우 높음": 5,

	"very low":  1,
	"low":       2,
	"normal":    3,
	"medium":    3,
	"high":      4,
	"very high": 5,
}

// ImportanceLevel maps an importance label to its ordinal 1..5
func ImportanceLevel(label string) int {
	key := strings.ToLower(strings.Join(strings.Fields(label), " "))
	if lvl, ok := importanceLevels[key]; ok {
		return lvl
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 5 {
		return n
	}
	return DefaultImportance
}

var weekdayNames = map[string]time.Weekday{
	"월": time.Monday,
	"화": time.Tuesday,
	"수": time.Wednesday,
	"목": time.Thursday,
	"금": time.Friday,
	"토": time.Saturday,
	"일": time.Sunday,

	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// ParseWeekday accepts Korean single-character labels and English short or long names
func ParseWeekday(label string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.TrimSuffix(key, "요일")
	if wd, ok := weekdayNames[key]; ok {
		return wd, nil
	}
	if len(key) > 3 {
		if wd, ok := weekdayNames[key[:3]]; ok && strings.HasPrefix(strings.ToLower(wd.String()), key) {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", label)
}

// WeekdayLabel returns the short English name of a weekday
func WeekdayLabel(wd time.Weekday) string {
	return wd.String()[:3]
}
