package planner

import "github.com/arnavshah/study-planner-go/pkg/models"

// DayCap is the effective study capacity of one day in minutes
type DayCap struct {
	Date    models.Date
	Minutes int
}

// EligibleCapTotals sums, per fixed-target subject, the capacity of every day
// on which the subject can still be studied. It is the denominator used to
// spread a fixed total over the window.
func EligibleCapTotals(caps []DayCap, subjects []Subject) map[string]int {
	totals := make(map[string]int)
	for _, s := range subjects {
		if !s.Fixed() {
			continue
		}
		for _, c := range caps {
			if s.EligibleOn(c.Date) {
				totals[s.Name] += c.Minutes
			}
		}
	}
	return totals
}

// AllocateDay splits one day's capacity across subjects. Fixed-target subjects
// take a share proportional to the day's capacity; what is left goes to the
// auto-allocated subjects by weight. Every entry is a multiple of Granularity
// and the entries never sum to more than capMinutes.
func AllocateDay(day models.Date, capMinutes int, subjects []Subject, eligibleCaps map[string]int, t Tuning) []models.DailyAllocation {
	capMinutes = Floor5(capMinutes)
	if capMinutes <= 0 {
		return nil
	}

	minutes := make([]int, len(subjects))

	// Fixed shares, scaled down when together they would overrun the day
	raw := make([]float64, len(subjects))
	var rawSum float64
	for i, s := range subjects {
		if !s.Fixed() || !s.EligibleOn(day) || *s.TargetMinutes <= 0 {
			continue
		}
		total := eligibleCaps[s.Name]
		if total <= 0 {
			continue
		}
		raw[i] = float64(*s.TargetMinutes) * float64(capMinutes) / float64(total)
		rawSum += raw[i]
	}
	scale := 1.0
	if rawSum > float64(capMinutes) {
		scale = float64(capMinutes) / rawSum
	}
	fixedSum := 0
	for i := range subjects {
		if raw[i] > 0 {
			minutes[i] = Round5(raw[i] * scale)
			fixedSum += minutes[i]
		}
	}

	// Weighted remainder for auto subjects
	remain := capMinutes - fixedSum
	if remain > 0 {
		weights := Weights(day, subjects, t)
		// summed in subject order so rounding is the same on every run
		var totalWeight float64
		for _, s := range subjects {
			totalWeight += weights[s.Name]
		}
		if totalWeight > 0 {
			for i, s := range subjects {
				w, ok := weights[s.Name]
				if s.Fixed() || !ok {
					continue
				}
				minutes[i] += Round5(float64(remain) * w / totalWeight)
			}
		}
	}

	trimToCap(minutes, capMinutes)

	var out []models.DailyAllocation
	for i, s := range subjects {
		if m := Floor5(minutes[i]); m > 0 {
			out = append(out, models.DailyAllocation{Date: day, Subject: s.Name, Minutes: m})
		}
	}
	return out
}

// trimToCap takes Granularity minutes at a time from the largest entry until
// the entries fit in capMinutes. Ties go to the earliest entry.
func trimToCap(minutes []int, capMinutes int) {
	sum := 0
	for _, m := range minutes {
		sum += m
	}
	for sum > capMinutes {
		largest := -1
		for i, m := range minutes {
			if m > 0 && (largest < 0 || m > minutes[largest]) {
				largest = i
			}
		}
		if largest < 0 {
			return
		}
		cut := minInt(Granularity, minutes[largest])
		minutes[largest] -= cut
		sum -= cut
	}
}
