package planner

import (
	"math"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

// UnitTarget is the number of minutes each scope unit should receive when a
// subject's total is spread over units: ceil(total/units) rounded up to
// Granularity, and never below Granularity.
func UnitTarget(totalMinutes, units int) int {
	if units < 1 {
		units = 1
	}
	per := int(math.Ceil(float64(totalMinutes) / float64(units)))
	if t := Ceil5(per); t > Granularity {
		return t
	}
	return Granularity
}

// ScheduleScopes walks a subject's daily allocations in chronological order
// and assigns the minutes to scope units sequentially: a unit is filled up to
// target before the next one starts. Trailing units may stay short when the
// minutes run out.
func ScheduleScopes(units []string, target int, daily []models.DailyAllocation) []models.ScopedAllocation {
	if len(units) == 0 {
		units = []string{WholeScope}
	}
	if target < Granularity {
		target = Granularity
	}
	used := make([]int, len(units))
	idx := 0

	var out []models.ScopedAllocation
	for _, d := range daily {
		remain := d.Minutes
		for idx < len(units) && used[idx] >= target {
			idx++
		}
		for remain > 0 && idx < len(units) {
			need := target - used[idx]
			if need <= 0 {
				idx++
				continue
			}
			take := Floor5(minInt(need, remain))
			if take <= 0 {
				// a sub-granularity gap would stall the unit forever
				take = minInt(Granularity, remain)
			}
			out = append(out, models.ScopedAllocation{
				Date:    d.Date,
				Subject: d.Subject,
				Scope:   units[idx],
				Minutes: take,
			})
			used[idx] += take
			remain -= take
			if used[idx] >= target {
				idx++
			}
		}
	}
	return out
}
