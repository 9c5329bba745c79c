package adherence

import (
	"fmt"
	"time"

	"github.com/fitmatchai/backend/internal/trainlog"
)

// WeekID identifies a calendar week either by its ISO label ("2025-W11") or
// by an explicit [start, end] date pair. The label is the canonical persisted
// form; when built from a range, the label is derived from the range start.
type WeekID struct {
	label    string
	start    time.Time
	end      time.Time
	hasRange bool
}

func WeekIDFromLabel(label string) WeekID {
	return WeekID{label: label}
}

func WeekIDFromRange(start, end time.Time) WeekID {
	return WeekID{
		label:    trainlog.WeekLabel(start),
		start:    start,
		end:      end,
		hasRange: true,
	}
}

func (w WeekID) Label() string {
	return w.label
}

// Range returns the explicit date pair, if this week id carries one.
func (w WeekID) Range() (start, end time.Time, ok bool) {
	return w.start, w.end, w.hasRange
}

func (w WeekID) String() string {
	if w.hasRange {
		return fmt.Sprintf("%s [%s - %s]",
			w.label,
			w.start.Format(trainlog.DateKeyLayout),
			w.end.Format(trainlog.DateKeyLayout),
		)
	}
	return w.label
}

// AdherenceSummary is the weekly roll-up handed to plan generation.
// One row per (plan, week), recomputation overwrites the prior row.
type AdherenceSummary struct {
	PlanID         string  `json:"planId"`
	Week           WeekID  `json:"-"`
	WeekLabel      string  `json:"weekLabel"`
	CompletionPct  float64 `json:"completionPct"`
	VolumeScale    float64 `json:"volumeScale"`
	IntensityScale float64 `json:"intensityScale"`
	MissedDays     int     `json:"missedDays"`
	Pain           bool    `json:"pain"`
	Notes          string  `json:"notes"`
}
