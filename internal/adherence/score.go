package adherence

import (
	"github.com/fitmatchai/backend/internal/trainlog"
)

const (
	// HiRPEThreshold marks an exercise effort as dangerously high.
	HiRPEThreshold = 9.0

	painPenalty  = 0.5
	hiRPEPenalty = 0.8
)

// DayScore is the adherence verdict for a single day log.
// Score is penalized for pain and very high effort, VolumeRatio is not.
type DayScore struct {
	Score       float64 `json:"score"`
	VolumeRatio float64 `json:"volumeRatio"`
	Pain        bool    `json:"pain"`
	HiRPE       bool    `json:"hiRpe"`
}

// ScoreDay computes the DayScore of one day log. A missed day, or a day
// without any exercises, scores zero without looking at the exercises.
func ScoreDay(dayLog trainlog.DayLog) DayScore {
	if dayLog.Missed || len(dayLog.Exercises) == 0 {
		return DayScore{}
	}

	var scoreSum, ratioSum float64
	var pain, hiRPE bool
	for _, exercise := range dayLog.Exercises {
		ratio := exercise.CompletionRatio()

		penalty := 1.0
		if exercise.Pain {
			penalty = painPenalty
		} else if exercise.RPE >= HiRPEThreshold {
			penalty = hiRPEPenalty
		}

		scoreSum += ratio * penalty
		ratioSum += ratio

		pain = pain || exercise.Pain
		hiRPE = hiRPE || exercise.RPE >= HiRPEThreshold
	}

	count := float64(len(dayLog.Exercises))
	return DayScore{
		Score:       clamp(scoreSum/count, 0, 1),
		VolumeRatio: clamp(ratioSum/count, 0, 1),
		Pain:        pain,
		HiRPE:       hiRPE,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
