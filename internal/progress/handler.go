package progress

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/pkg"
)

type overviewAnalyzer interface {
	Overview(ctx context.Context, planID string) (*Overview, error)
}

type Handler struct {
	analyzer overviewAnalyzer
}

func NewHandler(analyzer overviewAnalyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.overview")
	defer span.End()

	planID := mux.Vars(r)["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	overview, err := handler.analyzer.Overview(ctx, planID)
	if err != nil {
		log.Errorf("progress overview for plan [%s]: %s", planID, err)
		http.Error(w, "failed to get progress overview", http.StatusInternalServerError)
		return
	}

	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("marshal progress overview: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, overviewJson, http.StatusOK)
}
