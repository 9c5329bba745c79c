package trainlog

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical yyyyMMdd date key of a day log.
const DateKeyLayout = "20060102"

// ExerciseLog is one prescribed exercise within a day.
// Immutable after the day log is submitted.
type ExerciseLog struct {
	Name        string  `json:"name"`
	PlannedSets int     `json:"plannedSets"`
	PlannedReps int     `json:"plannedReps"`
	DoneSets    int     `json:"doneSets"`
	DoneReps    int     `json:"doneReps"`
	RPE         float64 `json:"rpe"`
	Pain        bool    `json:"pain"`
}

// PlannedVolume floors both factors at 1, so "0 planned" collapses into
// a token unit instead of an undefined ratio.
func (e ExerciseLog) PlannedVolume() int {
	sets := e.PlannedSets
	if sets < 1 {
		sets = 1
	}
	reps := e.PlannedReps
	if reps < 1 {
		reps = 1
	}
	return sets * reps
}

func (e ExerciseLog) DoneVolume() int {
	sets := e.DoneSets
	if sets < 0 {
		sets = 0
	}
	reps := e.DoneReps
	if reps < 0 {
		reps = 0
	}
	return sets * reps
}

// CompletionRatio is done/planned volume, capped at 1.0 - over-performance
// is not credited beyond 100%.
func (e ExerciseLog) CompletionRatio() float64 {
	ratio := float64(e.DoneVolume()) / float64(e.PlannedVolume())
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// Completed reports whether the exercise was done at full prescribed volume.
func (e ExerciseLog) Completed() bool {
	return e.DoneVolume() >= e.PlannedVolume()
}

// DayLog is one day of a training plan. It is created once per day per plan;
// overwrite-by-date-key is the only allowed mutation.
type DayLog struct {
	PlanID    string        `json:"planId"`
	DayIndex  int           `json:"dayIndex"`
	Date      time.Time     `json:"date"`
	DateKey   string        `json:"dateKey"`
	Missed    bool          `json:"missed"`
	Exercises []ExerciseLog `json:"exercises"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (dl DayLog) ExercisesCount() int {
	return len(dl.Exercises)
}

func (dl DayLog) ExercisesCompleted() int {
	var completed int
	for _, e := range dl.Exercises {
		if e.Completed() {
			completed++
		}
	}
	return completed
}

// Progress converts the day log into its read-side projection,
// with neutral 1.0 ratios.
func (dl DayLog) Progress() ProgressDayLog {
	return ProgressDayLog{
		PlanID:             dl.PlanID,
		DayIndex:           dl.DayIndex,
		Date:               dl.Date,
		DateKey:            dl.DateKey,
		ExercisesCount:     dl.ExercisesCount(),
		ExercisesCompleted: dl.ExercisesCompleted(),
		VolumeRatio:        1.0,
		IntensityRatio:     1.0,
	}
}

// ProgressDayLog is the read-side projection of a day log, used by the
// adherence aggregator and the progress analytics. VolumeRatio and
// IntensityRatio default to 1.0 (neutral) when absent in storage.
type ProgressDayLog struct {
	PlanID             string    `json:"planId"`
	DayIndex           int       `json:"dayIndex"`
	Date               time.Time `json:"date"`
	DateKey            string    `json:"dateKey"`
	ExercisesCount     int       `json:"exercisesCount"`
	ExercisesCompleted int       `json:"exercisesCompleted"`
	VolumeRatio        float64   `json:"volumeRatio"`
	IntensityRatio     float64   `json:"intensityRatio"`
}

// DoneDayCompletionThreshold is the share of prescribed exercises that has to
// be completed for a day to count as done. Used by both the adherence
// aggregation and the session tiles, the two must never diverge.
const DoneDayCompletionThreshold = 0.70

func (p ProgressDayLog) Done() bool {
	return p.ExercisesCount > 0 &&
		float64(p.ExercisesCompleted) >= DoneDayCompletionThreshold*float64(p.ExercisesCount)
}

// WeekLabel formats the ISO year-week of t, e.g. "2025-W11".
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
