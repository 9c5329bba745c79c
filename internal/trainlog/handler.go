package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitmatchai/backend/internal/telemetry/metrics"
	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=trainlog

type dayLogsRepo interface {
	Upsert(ctx context.Context, dayLog DayLog) (*DayLog, error)
	Get(ctx context.Context, planID, dateKey string) (*DayLog, error)
	ListRange(ctx context.Context, params ListParams) ([]DayLog, error)
	Delete(ctx context.Context, planID, dateKey string) error
}

type ListResponse struct {
	DayLogs []DayLog `json:"dayLogs"`
	Total   int      `json:"total"`
}

type DeleteResponse struct {
	DeletedDateKey string `json:"deletedDateKey"`
}

type Handler struct {
	repo           dayLogsRepo
	watcher        *Watcher
	metricsManager *metrics.Manager
}

func NewHandler(repo dayLogsRepo, watcher *Watcher, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		watcher:        watcher,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var dayLog DayLog
	if err := json.NewDecoder(r.Body).Decode(&dayLog); err != nil {
		log.Tracef("upsert day log, unmarshal json params: %s", err)
		http.Error(w, "add day log failed", http.StatusBadRequest)
		return
	}

	if dayLog.PlanID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}
	if dayLog.DateKey == "" && dayLog.Date.IsZero() {
		http.Error(w, "error, day log date empty", http.StatusBadRequest)
		return
	}

	if dayLog.DateKey == "" {
		dayLog.DateKey = dayLog.Date.Format(DateKeyLayout)
	}
	if dayLog.Date.IsZero() {
		date, err := time.Parse(DateKeyLayout, dayLog.DateKey)
		if err != nil {
			http.Error(w, "error, invalid date key", http.StatusBadRequest)
			return
		}
		dayLog.Date = date
	}
	if dayLog.CreatedAt.IsZero() {
		dayLog.CreatedAt = time.Now()
	}

	savedDayLog, err := handler.repo.Upsert(ctx, dayLog)
	if err != nil {
		log.Errorf("failed to upsert day log [%s] [%s]: %s", dayLog.PlanID, dayLog.DateKey, err)
		http.Error(w, "error, failed to save day log", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterDayLogsWritten.Inc()

	savedDayLogJson, err := json.Marshal(savedDayLog)
	if err != nil {
		log.Errorf("failed to marshal saved day log: %s", err)
		http.Error(w, "error, failed to save day log", http.StatusInternalServerError)
		return
	}

	log.Debugf("day log saved: [%s] [%s]", savedDayLog.PlanID, savedDayLog.DateKey)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedDayLogJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.get")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}
	dateKey := vars["dateKey"]
	if dateKey == "" {
		http.Error(w, "error, date key empty", http.StatusBadRequest)
		return
	}

	dayLog, err := handler.repo.Get(ctx, planID, dateKey)
	if err != nil && !errors.Is(err, ErrDayLogNotFound) {
		log.Errorf("failed to get day log [%s] [%s]: %s", planID, dateKey, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrDayLogNotFound) {
		http.Error(w, "day log not found", http.StatusNotFound)
		return
	}

	dayLogJson, err := json.Marshal(dayLog)
	if err != nil {
		log.Errorf("failed to marshal day log: %s", err)
		http.Error(w, "failed to marshal day log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayLogJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.list")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	params := ListParams{PlanID: planID}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(DateKeyLayout, fromStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <from>", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(DateKeyLayout, toStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <to>", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	dayLogs, err := handler.repo.ListRange(ctx, params)
	if err != nil {
		log.Errorf("list day logs error: %s", err)
		http.Error(w, "failed to get day logs", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		DayLogs: dayLogs,
		Total:   len(dayLogs),
	})
	if err != nil {
		log.Errorf("marshal day logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

// HandleWatch long-polls the next day logs snapshot of a plan. The first
// snapshot comes right away, clients re-request to keep following.
func (handler *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.watch")
	defer span.End()

	planID := mux.Vars(r)["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	sub := handler.watcher.Watch(ctx, planID)
	defer sub.Close()

	select {
	case snapshot, ok := <-sub.Updates:
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		snapshotJson, err := json.Marshal(snapshot)
		if err != nil {
			log.Errorf("marshal day logs snapshot: %s", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, snapshotJson, http.StatusOK)
	case <-ctx.Done():
		w.WriteHeader(http.StatusNoContent)
	}
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainlog.delete")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["planID"]
	dateKey := vars["dateKey"]
	if planID == "" || dateKey == "" {
		http.Error(w, "error, plan id or date key empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, planID, dateKey); err != nil {
		if errors.Is(err, ErrDayLogNotFound) {
			http.Error(w, "day log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete day log [%s] [%s]: %s", planID, dateKey, err)
		http.Error(w, "day log not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteResponse{
		DeletedDateKey: dateKey,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
