package progression

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fitmatchai/backend/internal/adherence"
	"github.com/fitmatchai/backend/internal/telemetry/metrics"
)

type controllerMocks struct {
	aggregator *MockweekSummarizer
	summaries  *MocksummariesRepo
	features   *MockfeaturesRepo
	predictor  *MockplanPredictor
}

func newTestController(t *testing.T) (*Controller, controllerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := controllerMocks{
		aggregator: NewMockweekSummarizer(ctrl),
		summaries:  NewMocksummariesRepo(ctrl),
		features:   NewMockfeaturesRepo(ctrl),
		predictor:  NewMockplanPredictor(ctrl),
	}
	controller := NewController(
		mocks.aggregator,
		mocks.summaries,
		mocks.features,
		mocks.predictor,
		metrics.NewTestManager(),
	)
	return controller, mocks
}

func finalizeParams() FinalizeWeekParams {
	return FinalizeWeekParams{
		UserID:    "user-1",
		PlanID:    "plan-1",
		WeekStart: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		WeekEnd:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	}
}

func weekSummary(completionPct float64) *adherence.AdherenceSummary {
	return &adherence.AdherenceSummary{
		PlanID:         "plan-1",
		WeekLabel:      "2025-W11",
		CompletionPct:  completionPct,
		VolumeScale:    1.0,
		IntensityScale: 1.0,
	}
}

func TestController_FinalizeWeek_Held(t *testing.T) {
	controller, mocks := newTestController(t)
	params := finalizeParams()
	summary := weekSummary(0.35)

	mocks.aggregator.
		EXPECT().
		Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
		Return(summary, nil)
	// the summary is persisted even when progression is held
	mocks.summaries.EXPECT().Upsert(gomock.Any(), *summary).Return(nil)
	// no feature fetch and no predictor call on the held path

	result, err := controller.FinalizeWeek(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, StateHeld, result.State)
	assert.Equal(t, summary, result.Summary)
	assert.Equal(t, "Low adherence this week; holding progression.", result.Message)
	assert.Nil(t, result.Plan)
}

func TestController_FinalizeWeek_Regenerated(t *testing.T) {
	controller, mocks := newTestController(t)
	params := finalizeParams()
	summary := weekSummary(0.80)
	summary.VolumeScale = 1.05
	summary.IntensityScale = 0.98

	mocks.aggregator.
		EXPECT().
		Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
		Return(summary, nil)
	mocks.summaries.EXPECT().Upsert(gomock.Any(), *summary).Return(nil)
	mocks.features.
		EXPECT().
		Latest(gomock.Any(), "user-1").
		Return(FeatureVector{Extra: map[string]float64{"age": 33}}, nil)

	expectedFeatures := FeatureVector{
		VolumeScale:     1.05,
		IntensityScale:  0.98,
		ProgressionBias: 0,
		Extra:           map[string]float64{"age": 33},
	}
	generatedPlan := &GeneratedPlan{PlanID: "plan-2", UserID: "user-1"}
	mocks.predictor.
		EXPECT().
		GeneratePlan(gomock.Any(), "user-1", expectedFeatures).
		Return(generatedPlan, nil)
	mocks.features.EXPECT().Save(gomock.Any(), "user-1", expectedFeatures).Return(nil)

	result, err := controller.FinalizeWeek(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, StateRegenerated, result.State)
	assert.Equal(t, generatedPlan, result.Plan)
	assert.Empty(t, result.Message)
}

func TestController_FinalizeWeek_Bias(t *testing.T) {
	testCases := []struct {
		name          string
		completionPct float64
		expectedBias  float64
	}{
		{name: "excellent week", completionPct: 0.95, expectedBias: 1},
		{name: "at the upper threshold", completionPct: 0.90, expectedBias: 1},
		{name: "solid week", completionPct: 0.80, expectedBias: 0},
		{name: "shaky week", completionPct: 0.60, expectedBias: -1},
		{name: "just above the hold gate", completionPct: 0.40, expectedBias: -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			controller, mocks := newTestController(t)
			params := finalizeParams()
			summary := weekSummary(tc.completionPct)

			mocks.aggregator.
				EXPECT().
				Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
				Return(summary, nil)
			mocks.summaries.EXPECT().Upsert(gomock.Any(), *summary).Return(nil)
			mocks.features.EXPECT().Latest(gomock.Any(), "user-1").Return(FeatureVector{}, nil)
			mocks.predictor.
				EXPECT().
				GeneratePlan(gomock.Any(), "user-1", gomock.Any()).
				DoAndReturn(func(_ any, _ string, features FeatureVector) (*GeneratedPlan, error) {
					assert.Equal(t, tc.expectedBias, features.ProgressionBias)
					return &GeneratedPlan{PlanID: "plan-2"}, nil
				})
			mocks.features.EXPECT().Save(gomock.Any(), "user-1", gomock.Any()).Return(nil)

			result, err := controller.FinalizeWeek(context.Background(), params)
			require.NoError(t, err)
			assert.Equal(t, StateRegenerated, result.State)
		})
	}
}

func TestController_FinalizeWeek_SummarizeFails(t *testing.T) {
	controller, mocks := newTestController(t)
	params := finalizeParams()

	mocks.aggregator.
		EXPECT().
		Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
		Return(nil, errors.New("pg down"))
	// nothing is written when the read fails

	_, err := controller.FinalizeWeek(context.Background(), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize week")
}

func TestController_FinalizeWeek_PersistFails(t *testing.T) {
	controller, mocks := newTestController(t)
	params := finalizeParams()
	summary := weekSummary(0.80)

	mocks.aggregator.
		EXPECT().
		Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
		Return(summary, nil)
	mocks.summaries.EXPECT().Upsert(gomock.Any(), *summary).Return(errors.New("pg down"))

	_, err := controller.FinalizeWeek(context.Background(), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist summary")
}

func TestController_FinalizeWeek_PredictorFails(t *testing.T) {
	controller, mocks := newTestController(t)
	params := finalizeParams()
	summary := weekSummary(0.80)

	mocks.aggregator.
		EXPECT().
		Summarize(gomock.Any(), "plan-1", params.WeekStart, params.WeekEnd).
		Return(summary, nil)
	mocks.summaries.EXPECT().Upsert(gomock.Any(), *summary).Return(nil)
	mocks.features.EXPECT().Latest(gomock.Any(), "user-1").Return(FeatureVector{}, nil)
	mocks.predictor.
		EXPECT().
		GeneratePlan(gomock.Any(), "user-1", gomock.Any()).
		Return(nil, errors.New("predictor down"))
	// features are not saved when the plan request fails

	_, err := controller.FinalizeWeek(context.Background(), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate plan")
}
