package adherence

import "strings"

const (
	// ScaleMin and ScaleMax bound every emitted weekly scale,
	// whatever the threshold table and the safety overrides produce.
	ScaleMin = 0.90
	ScaleMax = 1.10
)

// WeekAdjust is the weekly progression adjustment derived from day scores.
type WeekAdjust struct {
	Completion     float64 `json:"completion"`
	MissedDays     int     `json:"missedDays"`
	VolumeScale    float64 `json:"volumeScale"`
	IntensityScale float64 `json:"intensityScale"`
	Recommendation string  `json:"recommendation"`
	Pain           bool    `json:"pain"`
	HiRPE          bool    `json:"hiRpe"`
}

// AdjustWeek derives the progression adjustment from the given day scores,
// normally the most recent seven. With no scores at all it assumes a fully
// missed week and keeps the scales neutral.
func AdjustWeek(dayScores []DayScore) WeekAdjust {
	if len(dayScores) == 0 {
		return WeekAdjust{
			Completion:     0,
			MissedDays:     7,
			VolumeScale:    1.0,
			IntensityScale: 1.0,
			Recommendation: "No data.",
		}
	}

	var scoreSum float64
	var missedDays int
	var pain, hiRPE bool
	for _, ds := range dayScores {
		scoreSum += ds.Score
		if ds.Score == 0 {
			missedDays++
		}
		pain = pain || ds.Pain
		hiRPE = hiRPE || ds.HiRPE
	}
	completion := scoreSum / float64(len(dayScores))

	volumeScale, intensityScale := baseScales(completion)

	// safety overrides only ever lower a scale
	if pain {
		volumeScale = min(volumeScale, 0.90)
		intensityScale = min(intensityScale, 0.95)
	}
	if hiRPE {
		intensityScale = min(intensityScale, 0.98)
	}

	return WeekAdjust{
		Completion:     completion,
		MissedDays:     missedDays,
		VolumeScale:    clamp(volumeScale, ScaleMin, ScaleMax),
		IntensityScale: clamp(intensityScale, ScaleMin, ScaleMax),
		Recommendation: recommendation(completion, pain, hiRPE),
		Pain:           pain,
		HiRPE:          hiRPE,
	}
}

func baseScales(completion float64) (volumeScale, intensityScale float64) {
	switch {
	case completion >= 0.90:
		return 1.05, 1.05
	case completion >= 0.75:
		return 1.00, 1.00
	case completion >= 0.60:
		return 0.95, 0.98
	default:
		return 0.90, 0.95
	}
}

func recommendation(completion float64, pain, hiRPE bool) string {
	var sb strings.Builder
	if pain {
		sb.WriteString("Pain reported, scaling back to recover. ")
	} else if hiRPE {
		sb.WriteString("Effort ran very high, capping intensity. ")
	}

	switch {
	case completion >= 0.90:
		sb.WriteString("Excellent week, progressing the plan.")
	case completion >= 0.75:
		sb.WriteString("Solid week, keeping the plan as is.")
	case completion >= 0.60:
		sb.WriteString("Patchy week, easing the plan slightly.")
	default:
		sb.WriteString("Tough week, pulling the plan back.")
	}
	return sb.String()
}
