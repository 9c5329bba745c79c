package adherence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
	"github.com/fitmatchai/backend/internal/trainlog"
	"github.com/fitmatchai/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=adherence

type weekSummarizer interface {
	Summarize(ctx context.Context, planID string, from, to time.Time) (*AdherenceSummary, error)
}

type dayLogsRepo interface {
	Get(ctx context.Context, planID, dateKey string) (*trainlog.DayLog, error)
	ListRange(ctx context.Context, params trainlog.ListParams) ([]trainlog.DayLog, error)
}

type Handler struct {
	aggregator weekSummarizer
	dayLogs    dayLogsRepo
}

func NewHandler(aggregator weekSummarizer, dayLogs dayLogsRepo) *Handler {
	return &Handler{
		aggregator: aggregator,
		dayLogs:    dayLogs,
	}
}

// WeekResponse pairs the aggregated summary with the adjustment computed
// from the window's fully detailed day logs.
type WeekResponse struct {
	Summary *AdherenceSummary `json:"summary"`
	Adjust  WeekAdjust        `json:"adjust"`
}

// HandleWeek computes the adherence summary and the per-day-scored week
// adjustment for the requested window without persisting either. Start and
// end date keys are inclusive.
func (handler *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.week")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["planID"]
	if planID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(trainlog.DateKeyLayout, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "parse form error, parameter <start>", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(trainlog.DateKeyLayout, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "parse form error, parameter <end>", http.StatusBadRequest)
		return
	}
	if end.Before(start) {
		http.Error(w, "error, end before start", http.StatusBadRequest)
		return
	}

	summary, err := handler.aggregator.Summarize(ctx, planID, start, end)
	if err != nil {
		log.Errorf("summarize week for plan [%s]: %s", planID, err)
		http.Error(w, "failed to summarize week", http.StatusInternalServerError)
		return
	}

	dayLogs, err := handler.dayLogs.ListRange(ctx, trainlog.ListParams{
		PlanID: planID,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		log.Errorf("list day logs for plan [%s]: %s", planID, err)
		http.Error(w, "failed to list day logs", http.StatusInternalServerError)
		return
	}

	dayScores := make([]DayScore, 0, len(dayLogs))
	for _, dayLog := range dayLogs {
		dayScores = append(dayScores, ScoreDay(dayLog))
	}

	weekJson, err := json.Marshal(WeekResponse{
		Summary: summary,
		Adjust:  AdjustWeek(dayScores),
	})
	if err != nil {
		log.Errorf("marshal week response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, weekJson, http.StatusOK)
}

// HandleDay scores a single day log.
func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.day")
	defer span.End()

	vars := mux.Vars(r)
	planID := vars["planID"]
	dateKey := vars["dateKey"]
	if planID == "" || dateKey == "" {
		http.Error(w, "error, plan id or date key empty", http.StatusBadRequest)
		return
	}

	dayLog, err := handler.dayLogs.Get(ctx, planID, dateKey)
	if err != nil {
		if errors.Is(err, trainlog.ErrDayLogNotFound) {
			http.Error(w, "day log not found", http.StatusNotFound)
			return
		}
		log.Errorf("get day log [%s] [%s]: %s", planID, dateKey, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	dayScoreJson, err := json.Marshal(ScoreDay(*dayLog))
	if err != nil {
		log.Errorf("marshal day score: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayScoreJson, http.StatusOK)
}
