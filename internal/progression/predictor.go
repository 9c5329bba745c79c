package progression

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
)

const (
	oneHour         = 60 * 60
	planCacheExpire = oneHour * 12
)

// PlannedExercise is one prescription within a generated plan day.
type PlannedExercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

type PlanDay struct {
	DayIndex  int               `json:"dayIndex"`
	Exercises []PlannedExercise `json:"exercises"`
}

// GeneratedPlan is the prediction service's output for one user.
type GeneratedPlan struct {
	PlanID string    `json:"planId"`
	UserID string    `json:"userId"`
	Days   []PlanDay `json:"days"`
}

type planRequest struct {
	UserID   string        `json:"userId"`
	Features FeatureVector `json:"features"`
}

// Predictor calls the external plan prediction service. The latest generated
// plan per user is kept in an in-process cache.
type Predictor struct {
	cache      *freecache.Cache
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPredictor(baseURL, apiKey string, cacheSizeMegabytes int, httpClient *http.Client) *Predictor {
	megabyte := 1024 * 1024
	return &Predictor{
		cache:      freecache.NewCache(cacheSizeMegabytes * megabyte),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// GeneratePlan requests a new plan for the user from the given features.
func (p *Predictor) GeneratePlan(ctx context.Context, userID string, features FeatureVector) (_ *GeneratedPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.predictor.generatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("userID", userID))

	reqBytes, err := json.Marshal(planRequest{
		UserID:   userID,
		Features: features,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	predictURL := fmt.Sprintf("%s/predict", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", predictURL, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read predictor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	plan := &GeneratedPlan{}
	if err := json.Unmarshal(respBytes, plan); err != nil {
		return nil, fmt.Errorf("unmarshal predictor response: %w", err)
	}

	if err := p.cache.Set([]byte(userID), respBytes, planCacheExpire); err != nil {
		log.Errorf("failed to cache generated plan for user %s: %s", userID, err)
	}

	return plan, nil
}

// CachedPlan returns the most recently generated plan for the user, if it is
// still in the cache.
func (p *Predictor) CachedPlan(userID string) (*GeneratedPlan, bool) {
	planBytes, err := p.cache.Get([]byte(userID))
	if err != nil {
		return nil, false
	}
	plan := &GeneratedPlan{}
	if err := json.Unmarshal(planBytes, plan); err != nil {
		log.Errorf("failed to unmarshal cached plan for user %s: %s", userID, err)
		return nil, false
	}
	return plan, true
}
