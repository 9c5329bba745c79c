package adherence

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/internal/trainlog"
)

const (
	aggVolumeScaleMin = 0.85
	aggVolumeScaleMax = 1.15

	aggIntensityScaleMin = 0.90
	aggIntensityScaleMax = 1.10
)

type progressLogsRepo interface {
	ListProgress(ctx context.Context, params trainlog.ListParams) ([]trainlog.ProgressDayLog, error)
}

// Aggregator rolls a date-bounded window of day logs up
// into a weekly adherence summary.
type Aggregator struct {
	repo progressLogsRepo
}

func NewAggregator(repo progressLogsRepo) *Aggregator {
	return &Aggregator{repo: repo}
}

// Summarize fetches the plan's day logs in [from, to] and reduces them.
// The window does not have to hold seven days; missed days count against
// the calendar length of the window.
func (a *Aggregator) Summarize(ctx context.Context, planID string, from, to time.Time) (_ *AdherenceSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.aggregator.summarize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("planID", planID))

	logs, err := a.repo.ListProgress(ctx, trainlog.ListParams{
		PlanID: planID,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, fmt.Errorf("list progress day logs: %w", err)
	}

	summary := Summarize(logs, WeekIDFromRange(from, to))
	summary.PlanID = planID
	return summary, nil
}

// Summarize reduces the given day logs into an adherence summary for the
// given week. Zero logs yield zero completion with neutral scales.
func Summarize(logs []trainlog.ProgressDayLog, week WeekID) *AdherenceSummary {
	summary := &AdherenceSummary{
		Week:           week,
		WeekLabel:      week.Label(),
		CompletionPct:  0,
		VolumeScale:    1.0,
		IntensityScale: 1.0,
		MissedDays:     rangeDays(week),
	}
	if len(logs) == 0 {
		return summary
	}

	var doneDays int
	var volumeSum, intensitySum float64
	for _, dayLog := range logs {
		if dayLog.Done() {
			doneDays++
		}
		volumeSum += dayLog.VolumeRatio
		intensitySum += dayLog.IntensityRatio
	}

	totalDays := float64(len(logs))
	summary.CompletionPct = float64(doneDays) / totalDays
	summary.VolumeScale = clamp(volumeSum/totalDays, aggVolumeScaleMin, aggVolumeScaleMax)
	summary.IntensityScale = clamp(intensitySum/totalDays, aggIntensityScaleMin, aggIntensityScaleMax)
	summary.MissedDays = max(0, rangeDays(week)-doneDays)
	return summary
}

// rangeDays is the calendar length of the week's range, inclusive on both
// ends. Without an explicit range a seven day week is assumed.
func rangeDays(week WeekID) int {
	start, end, ok := week.Range()
	if !ok || end.Before(start) {
		return 7
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
