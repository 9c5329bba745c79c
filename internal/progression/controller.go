package progression

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/adherence"
	"github.com/fitmatchai/backend/internal/telemetry/metrics"
	"github.com/fitmatchai/backend/internal/telemetry/tracing"
)

// State of a plan within its weekly progression cycle.
type State string

const (
	StateActive      State = "active"
	StateWeekClosed  State = "week-closed"
	StateRegenerated State = "regenerated"
	StateHeld        State = "held"
)

const (
	// below this weekly completion the progression is frozen
	holdCompletionThreshold = 0.40

	heldMessage = "Low adherence this week; holding progression."
)

//go:generate mockgen -source=$GOFILE -destination=controller_mocks_test.go -package=progression

type weekSummarizer interface {
	Summarize(ctx context.Context, planID string, from, to time.Time) (*adherence.AdherenceSummary, error)
}

type summariesRepo interface {
	Upsert(ctx context.Context, summary adherence.AdherenceSummary) error
}

type featuresRepo interface {
	Latest(ctx context.Context, userID string) (FeatureVector, error)
	Save(ctx context.Context, userID string, features FeatureVector) error
}

type planPredictor interface {
	GeneratePlan(ctx context.Context, userID string, features FeatureVector) (*GeneratedPlan, error)
}

type FinalizeWeekParams struct {
	UserID    string
	PlanID    string
	WeekStart time.Time
	WeekEnd   time.Time
}

// FinalizeWeekResult reports how the week was closed. The summary is always
// persisted, a new plan only exists in the regenerated state.
type FinalizeWeekResult struct {
	State   State                       `json:"state"`
	Summary *adherence.AdherenceSummary `json:"summary"`
	Message string                      `json:"message,omitempty"`
	Plan    *GeneratedPlan              `json:"plan,omitempty"`
}

// Controller drives the weekly progression of a plan: close the week,
// persist the adherence summary, then either hold or regenerate.
type Controller struct {
	aggregator     weekSummarizer
	summaries      summariesRepo
	features       featuresRepo
	predictor      planPredictor
	metricsManager *metrics.Manager
}

func NewController(
	aggregator weekSummarizer,
	summaries summariesRepo,
	features featuresRepo,
	predictor planPredictor,
	metricsManager *metrics.Manager,
) *Controller {
	return &Controller{
		aggregator:     aggregator,
		summaries:      summaries,
		features:       features,
		predictor:      predictor,
		metricsManager: metricsManager,
	}
}

// FinalizeWeek closes the [WeekStart, WeekEnd] window of a plan. Any failure
// is terminal for this invocation, the caller retries the whole operation if
// it wants to. A persisted summary without a regenerated plan is a valid
// state, not a leftover.
func (c *Controller) FinalizeWeek(ctx context.Context, params FinalizeWeekParams) (_ *FinalizeWeekResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.controller.finalizeWeek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("userID", params.UserID),
		attribute.String("planID", params.PlanID),
	)

	summary, err := c.aggregator.Summarize(ctx, params.PlanID, params.WeekStart, params.WeekEnd)
	if err != nil {
		return nil, fmt.Errorf("summarize week: %w", err)
	}

	if err := c.summaries.Upsert(ctx, *summary); err != nil {
		return nil, fmt.Errorf("persist summary: %w", err)
	}
	c.metricsManager.CounterWeeksFinalized.Inc()

	if summary.CompletionPct < holdCompletionThreshold {
		c.metricsManager.CounterWeeksHeld.Inc()
		return &FinalizeWeekResult{
			State:   StateHeld,
			Summary: summary,
			Message: heldMessage,
		}, nil
	}

	features, err := c.features.Latest(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch feature vector: %w", err)
	}

	features.VolumeScale = summary.VolumeScale
	features.IntensityScale = summary.IntensityScale
	features.ProgressionBias = progressionBias(summary.CompletionPct)

	plan, err := c.predictor.GeneratePlan(ctx, params.UserID, features)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	if err := c.features.Save(ctx, params.UserID, features); err != nil {
		return nil, fmt.Errorf("save feature vector: %w", err)
	}

	c.metricsManager.CounterPlansRegenerated.Inc()
	return &FinalizeWeekResult{
		State:   StateRegenerated,
		Summary: summary,
		Plan:    plan,
	}, nil
}

func progressionBias(completionPct float64) float64 {
	switch {
	case completionPct >= 0.90:
		return 1
	case completionPct >= 0.75:
		return 0
	default:
		return -1
	}
}
