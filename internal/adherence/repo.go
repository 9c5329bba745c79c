package adherence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
)

var ErrSummaryNotFound = errors.New("adherence summary not found")

// Repo stores weekly adherence summaries, one row per (plan, week label).
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Upsert writes the summary, fully replacing a prior row for the same
// plan and week.
func (r *Repo) Upsert(ctx context.Context, summary AdherenceSummary) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.repo.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("planID", summary.PlanID),
		attribute.String("weekLabel", summary.WeekLabel),
	)

	weekStart, weekEnd, hasRange := summary.Week.Range()
	var weekStartParam, weekEndParam any
	if hasRange {
		weekStartParam, weekEndParam = weekStart, weekEnd
	}

	_, err = r.db.Exec(ctx, `
			INSERT INTO adherence_summary (
				plan_id, week_label, week_start, week_end,
				completion_pct, volume_scale, intensity_scale,
				missed_days, pain, notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (plan_id, week_label) DO UPDATE SET
				week_start = EXCLUDED.week_start,
				week_end = EXCLUDED.week_end,
				completion_pct = EXCLUDED.completion_pct,
				volume_scale = EXCLUDED.volume_scale,
				intensity_scale = EXCLUDED.intensity_scale,
				missed_days = EXCLUDED.missed_days,
				pain = EXCLUDED.pain,
				notes = EXCLUDED.notes`,
		summary.PlanID, summary.WeekLabel, weekStartParam, weekEndParam,
		summary.CompletionPct, summary.VolumeScale, summary.IntensityScale,
		summary.MissedDays, summary.Pain, summary.Notes,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, planID, weekLabel string) (_ *AdherenceSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.repo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("planID", planID),
		attribute.String("weekLabel", weekLabel),
	)

	row := r.db.QueryRow(ctx, `
			SELECT
				plan_id, week_label, week_start, week_end,
				completion_pct, volume_scale, intensity_scale,
				missed_days, pain, notes
			FROM adherence_summary
			WHERE plan_id = $1 AND week_label = $2`,
		planID, weekLabel,
	)
	return scanSummary(row)
}

// ListForPlan returns all persisted summaries of a plan, newest week first.
func (r *Repo) ListForPlan(ctx context.Context, planID string) (_ []AdherenceSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adherence.repo.listForPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("planID", planID))

	rows, err := r.db.Query(ctx, `
			SELECT
				plan_id, week_label, week_start, week_end,
				completion_pct, volume_scale, intensity_scale,
				missed_days, pain, notes
			FROM adherence_summary
			WHERE plan_id = $1
			ORDER BY week_label DESC`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []AdherenceSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, rows.Err()
}

func scanSummary(row pgx.Row) (*AdherenceSummary, error) {
	var summary AdherenceSummary
	var weekLabel string
	var weekStart, weekEnd *time.Time
	err := row.Scan(
		&summary.PlanID, &weekLabel, &weekStart, &weekEnd,
		&summary.CompletionPct, &summary.VolumeScale, &summary.IntensityScale,
		&summary.MissedDays, &summary.Pain, &summary.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}

	summary.WeekLabel = weekLabel
	if weekStart != nil && weekEnd != nil {
		summary.Week = WeekIDFromRange(*weekStart, *weekEnd)
	} else {
		summary.Week = WeekIDFromLabel(weekLabel)
	}
	return &summary, nil
}
