package progression

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/internal/trainlog"
	"github.com/fitmatchai/backend/pkg"
)

type weekFinalizer interface {
	FinalizeWeek(ctx context.Context, params FinalizeWeekParams) (*FinalizeWeekResult, error)
}

type featuresGetter interface {
	Latest(ctx context.Context, userID string) (FeatureVector, error)
}

type FinalizeWeekRequest struct {
	UserID    string `json:"userId"`
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
}

type Handler struct {
	controller weekFinalizer
	features   featuresGetter
}

func NewHandler(controller weekFinalizer, features featuresGetter) *Handler {
	return &Handler{
		controller: controller,
		features:   features,
	}
}

func (handler *Handler) HandleFinalizeWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.finalizeWeek")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	planID := mux.Vars(r)["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	var finalizeReq FinalizeWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&finalizeReq); err != nil {
		log.Tracef("finalize week, unmarshal json params: %s", err)
		http.Error(w, "finalize week failed", http.StatusBadRequest)
		return
	}
	if finalizeReq.UserID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	weekStart, err := time.Parse(trainlog.DateKeyLayout, finalizeReq.WeekStart)
	if err != nil {
		http.Error(w, "error, invalid week start", http.StatusBadRequest)
		return
	}
	weekEnd, err := time.Parse(trainlog.DateKeyLayout, finalizeReq.WeekEnd)
	if err != nil {
		http.Error(w, "error, invalid week end", http.StatusBadRequest)
		return
	}
	if weekEnd.Before(weekStart) {
		http.Error(w, "error, week end before week start", http.StatusBadRequest)
		return
	}

	result, err := handler.controller.FinalizeWeek(ctx, FinalizeWeekParams{
		UserID:    finalizeReq.UserID,
		PlanID:    planID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	})
	if err != nil {
		log.Errorf("finalize week for plan [%s]: %s", planID, err)
		http.Error(w, "failed to finalize week", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal finalize week result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("week finalized for plan [%s]: %s", planID, result.State)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleGetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.getFeatures")
	defer span.End()

	userID := mux.Vars(r)["userID"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	features, err := handler.features.Latest(ctx, userID)
	if err != nil {
		log.Errorf("get feature vector for user [%s]: %s", userID, err)
		http.Error(w, "failed to get features", http.StatusInternalServerError)
		return
	}

	featuresJson, err := json.Marshal(features)
	if err != nil {
		log.Errorf("marshal feature vector: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, featuresJson, http.StatusOK)
}
