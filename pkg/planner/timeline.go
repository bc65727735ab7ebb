package planner

import (
	"sort"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

// FixedTitle is shown for busy spans whose events have no title
const FixedTitle = "Fixed schedule"

// BreakTitle is the title of break blocks
const BreakTitle = "Break"

// Cadence is the focus/break rhythm used when laying out study time
type Cadence struct {
	Focus int `json:"focus_minutes"`
	Break int `json:"break_minutes"`
}

// PackDay lays a day's scoped allocations into its free intervals in
// chronological order. Each item is cut into focus blocks separated by breaks;
// when an interval has less than Granularity minutes left the packer moves to
// the next one. Minutes that do not fit anywhere are dropped and returned as
// the second value. Busy spans are included as fixed blocks.
func PackDay(day models.Date, free, busy []models.Interval, items []models.ScopedAllocation, c Cadence) ([]models.TimelineBlock, int) {
	if c.Focus < Granularity {
		c.Focus = Granularity
	}
	blocks := make([]models.TimelineBlock, 0, len(busy)+2*len(items))
	for _, b := range busy {
		title := b.Title
		if title == "" {
			title = FixedTitle
		}
		blocks = append(blocks, newBlock(day, b.Start, b.End, models.BlockFixed, title, "", ""))
	}

	slots := append([]models.Interval(nil), free...)
	idx := 0
	dropped := 0

	for _, item := range items {
		remain := Floor5(item.Minutes)
		dropped += item.Minutes - remain

		for remain > 0 && idx < len(slots) {
			cur, end := slots[idx].Start, slots[idx].End
			for remain > 0 {
				focus := Floor5(minInt(c.Focus, remain, int(end-cur)))
				if focus <= 0 {
					break
				}
				blocks = append(blocks, newBlock(day, cur, cur.Add(focus), models.BlockStudy, item.Subject, item.Subject, item.Scope))
				cur = cur.Add(focus)
				remain -= focus

				if remain > 0 {
					br := Floor5(minInt(c.Break, int(end-cur)))
					if br > 0 {
						blocks = append(blocks, newBlock(day, cur, cur.Add(br), models.BlockBreak, BreakTitle, "", ""))
						cur = cur.Add(br)
					}
				}
			}
			if int(end-cur) < Granularity {
				idx++
			} else {
				slots[idx].Start = cur
			}
		}
		dropped += remain
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start < blocks[j].Start
	})
	return blocks, dropped
}

func newBlock(day models.Date, start, end models.Clock, kind models.BlockKind, title, subject, scope string) models.TimelineBlock {
	return models.TimelineBlock{
		Date:    day,
		Start:   start,
		End:     end,
		Kind:    kind,
		Title:   title,
		Subject: subject,
		Scope:   scope,
		Minutes: int(end - start),
	}
}
