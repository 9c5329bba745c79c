package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrDayLogNotFound = errors.New("day log not found")

type ListParams struct {
	PlanID string
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert writes a day log, replacing any prior log with the same
// (plan_id, date_key). Full overwrite, no merge.
func (r *Repo) Upsert(ctx context.Context, dayLog DayLog) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan_id", dayLog.PlanID))
	span.SetAttributes(attribute.String("date_key", dayLog.DateKey))

	exercisesJson, err := json.Marshal(dayLog.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO day_log
				(plan_id, day_index, date, date_key, missed, notes, exercises,
				 exercises_count, exercises_completed, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (plan_id, date_key) DO UPDATE SET
				day_index = EXCLUDED.day_index,
				date = EXCLUDED.date,
				missed = EXCLUDED.missed,
				notes = EXCLUDED.notes,
				exercises = EXCLUDED.exercises,
				exercises_count = EXCLUDED.exercises_count,
				exercises_completed = EXCLUDED.exercises_completed,
				created_at = EXCLUDED.created_at;`,
		dayLog.PlanID, dayLog.DayIndex, dayLog.Date, dayLog.DateKey,
		dayLog.Missed, dayLog.Notes, exercisesJson,
		dayLog.ExercisesCount(), dayLog.ExercisesCompleted(), dayLog.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dayLog, nil
}

func (r *Repo) Get(ctx context.Context, planID, dateKey string) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan_id", planID))
	span.SetAttributes(attribute.String("date_key", dateKey))

	rows, err := r.db.Query(
		ctx,
		`SELECT plan_id, day_index, date, date_key, missed, notes, exercises, created_at
			FROM day_log
			WHERE plan_id = $1 AND date_key = $2;`,
		planID, dateKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayLogs, err := r.rows2dayLogs(rows)
	if err != nil {
		return nil, err
	}

	if len(dayLogs) != 1 {
		return nil, ErrDayLogNotFound
	}

	return &dayLogs[0], nil
}

// ListRange returns the full day logs of a plan, ordered by date key.
func (r *Repo) ListRange(ctx context.Context, params ListParams) (_ []DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.listrange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan_id", params.PlanID))

	rows, err := r.db.Query(
		ctx,
		`SELECT plan_id, day_index, date, date_key, missed, notes, exercises, created_at
			FROM day_log
			WHERE plan_id = $1
			AND ($2::timestamp IS NULL OR date >= $2)
			AND ($3::timestamp IS NULL OR date <= $3)
			ORDER BY date_key ASC;`,
		params.PlanID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2dayLogs(rows)
}

// ListProgress returns the read-side projections of a plan's day logs,
// ordered by date key. Missing volume/intensity ratios default to 1.0.
func (r *Repo) ListProgress(ctx context.Context, params ListParams) (_ []ProgressDayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.listprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan_id", params.PlanID))

	rows, err := r.db.Query(
		ctx,
		`SELECT plan_id, day_index, date, date_key,
				exercises_count, exercises_completed, volume_ratio, intensity_ratio
			FROM day_log
			WHERE plan_id = $1
			AND ($2::timestamp IS NULL OR date >= $2)
			AND ($3::timestamp IS NULL OR date <= $3)
			ORDER BY date_key ASC;`,
		params.PlanID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	progressLogs := make([]ProgressDayLog, 0)
	for rows.Next() {
		var p ProgressDayLog
		var volumeRatio, intensityRatio *float64
		if err := rows.Scan(
			&p.PlanID, &p.DayIndex, &p.Date, &p.DateKey,
			&p.ExercisesCount, &p.ExercisesCompleted, &volumeRatio, &intensityRatio,
		); err != nil {
			return nil, err
		}

		// absent ratios are neutral
		p.VolumeRatio = 1.0
		if volumeRatio != nil {
			p.VolumeRatio = *volumeRatio
		}
		p.IntensityRatio = 1.0
		if intensityRatio != nil {
			p.IntensityRatio = *intensityRatio
		}

		progressLogs = append(progressLogs, p)
	}

	return progressLogs, nil
}

func (r *Repo) Delete(ctx context.Context, planID, dateKey string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan_id", planID))
	span.SetAttributes(attribute.String("date_key", dateKey))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM day_log WHERE plan_id = $1 AND date_key = $2;`,
		planID, dateKey,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDayLogNotFound
	}
	return nil
}

func (r *Repo) rows2dayLogs(rows pgx.Rows) ([]DayLog, error) {
	dayLogs := make([]DayLog, 0)
	for rows.Next() {
		var dl DayLog
		var exercisesBytes []byte
		if err := rows.Scan(
			&dl.PlanID, &dl.DayIndex, &dl.Date, &dl.DateKey,
			&dl.Missed, &dl.Notes, &exercisesBytes, &dl.CreatedAt,
		); err != nil {
			return nil, err
		}

		dl.Exercises = make([]ExerciseLog, 0)
		if len(exercisesBytes) > 0 {
			if err := json.Unmarshal(exercisesBytes, &dl.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal exercises for day log %s/%s: %w", dl.PlanID, dl.DateKey, err)
			}
		}

		dayLogs = append(dayLogs, dl)
	}

	return dayLogs, nil
}
