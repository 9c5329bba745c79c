package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/internal/trainlog"
)

const dailyLabelLayout = "Jan 2"

type progressLogsRepo interface {
	ListProgress(ctx context.Context, params trainlog.ListParams) ([]trainlog.ProgressDayLog, error)
}

// Analyzer derives the analytics overview of a plan from its day logs.
type Analyzer struct {
	repo progressLogsRepo
	now  func() time.Time
}

func NewAnalyzer(repo progressLogsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
		now:  time.Now,
	}
}

func (a *Analyzer) Overview(ctx context.Context, planID string) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.analyzer.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("planID", planID))

	logs, err := a.repo.ListProgress(ctx, trainlog.ListParams{PlanID: planID})
	if err != nil {
		return nil, fmt.Errorf("list progress day logs: %w", err)
	}

	overview := BuildOverview(logs, a.now())
	return &overview, nil
}

// BuildOverview computes the full analytics surface from the given day logs.
// The input order does not matter, everything is derived from one sorted
// pass. "This week" is judged against now, not against the data's own range.
func BuildOverview(logs []trainlog.ProgressDayLog, now time.Time) Overview {
	if len(logs) == 0 {
		return Overview{}
	}

	sorted := make([]trainlog.ProgressDayLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var overview Overview
	overview.Daily = dailySeries(sorted)
	overview.Weekly = weeklySeries(sorted)
	overview.Tiles = sessionTiles(sorted)
	overview.BestStreakDays = bestStreak(sorted)
	overview.ThisWeekCompletion = weekCompletion(overview.Weekly, trainlog.WeekLabel(now))

	for _, dayLog := range sorted {
		overview.TotalCompleted += dayLog.ExercisesCompleted
		overview.TotalExercises += dayLog.ExercisesCount
	}
	// keeps downstream ratios over the total defined
	if overview.TotalExercises < 1 {
		overview.TotalExercises = 1
	}

	return overview
}

func dailySeries(sorted []trainlog.ProgressDayLog) []DailyPoint {
	daily := make([]DailyPoint, 0, len(sorted))
	for _, dayLog := range sorted {
		adherence := float64(dayLog.ExercisesCompleted) / float64(max(1, dayLog.ExercisesCount))
		daily = append(daily, DailyPoint{
			DateKey:        dayLog.DateKey,
			Label:          dayLog.Date.Format(dailyLabelLayout),
			Adherence:      clamp01(adherence),
			VolumeRatio:    dayLog.VolumeRatio,
			IntensityRatio: dayLog.IntensityRatio,
		})
	}
	return daily
}

func weeklySeries(sorted []trainlog.ProgressDayLog) []WeeklyBar {
	type weekAcc struct {
		volumeSum      float64
		days           int
		completedSum   int
		exercisesCount int
	}

	accs := map[string]*weekAcc{}
	var weekLabels []string
	for _, dayLog := range sorted {
		label := trainlog.WeekLabel(dayLog.Date)
		acc, ok := accs[label]
		if !ok {
			acc = &weekAcc{}
			accs[label] = acc
			weekLabels = append(weekLabels, label)
		}
		acc.volumeSum += dayLog.VolumeRatio
		acc.days++
		acc.completedSum += dayLog.ExercisesCompleted
		acc.exercisesCount += dayLog.ExercisesCount
	}

	weekly := make([]WeeklyBar, 0, len(weekLabels))
	for _, label := range weekLabels {
		acc := accs[label]
		completion := float64(acc.completedSum) / float64(max(1, acc.exercisesCount))
		weekly = append(weekly, WeeklyBar{
			Label:      label,
			VolumeBar:  acc.volumeSum / float64(acc.days),
			Completion: clamp01(completion),
		})
	}
	return weekly
}

func sessionTiles(sorted []trainlog.ProgressDayLog) SessionTiles {
	var tiles SessionTiles
	for _, dayLog := range sorted {
		if dayLog.Done() {
			tiles.Done++
		} else {
			tiles.Missed++
		}
	}
	return tiles
}

// bestStreak finds the longest run of consecutive calendar days that each
// have a log entry, stepping one day at a time over the observed range.
// Any entry counts, even a 1% day. The walk is over the canonical date
// keys, not the raw dates, so entries logged at arbitrary wall-clock
// times cannot shift the day boundaries.
func bestStreak(sorted []trainlog.ProgressDayLog) int {
	present := make(map[string]struct{}, len(sorted))
	firstKey, lastKey := sorted[0].DateKey, sorted[0].DateKey
	for _, dayLog := range sorted {
		present[dayLog.DateKey] = struct{}{}
		if dayLog.DateKey < firstKey {
			firstKey = dayLog.DateKey
		}
		if dayLog.DateKey > lastKey {
			lastKey = dayLog.DateKey
		}
	}

	first, err := time.Parse(trainlog.DateKeyLayout, firstKey)
	if err != nil {
		return 0
	}
	last, err := time.Parse(trainlog.DateKeyLayout, lastKey)
	if err != nil {
		return 0
	}

	var best, running int
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if _, ok := present[day.Format(trainlog.DateKeyLayout)]; ok {
			running++
			if running > best {
				best = running
			}
		} else {
			running = 0
		}
	}
	return best
}

func weekCompletion(weekly []WeeklyBar, label string) float64 {
	for _, bar := range weekly {
		if bar.Label == label {
			return bar.Completion
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
