package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitmatchai/backend/internal/telemetry/tracing"
)

// FeaturesRepo stores the latest plan feature vector per user as one
// jsonb row.
type FeaturesRepo struct {
	db *pgxpool.Pool
}

func NewFeaturesRepo(db *pgxpool.Pool) *FeaturesRepo {
	return &FeaturesRepo{db: db}
}

// Latest returns the user's current feature vector. A user without one gets
// an empty vector, not an error.
func (r *FeaturesRepo) Latest(ctx context.Context, userID string) (_ FeatureVector, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.featuresRepo.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("userID", userID))

	var featuresJson []byte
	err = r.db.QueryRow(ctx,
		`SELECT features FROM plan_features WHERE user_id = $1`,
		userID,
	).Scan(&featuresJson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FeatureVector{}, nil
		}
		return FeatureVector{}, err
	}

	var features FeatureVector
	if err := json.Unmarshal(featuresJson, &features); err != nil {
		return FeatureVector{}, fmt.Errorf("unmarshal feature vector: %w", err)
	}
	return features, nil
}

// Save overwrites the user's feature vector.
func (r *FeaturesRepo) Save(ctx context.Context, userID string, features FeatureVector) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.featuresRepo.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("userID", userID))

	featuresJson, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("marshal feature vector: %w", err)
	}

	_, err = r.db.Exec(ctx, `
			INSERT INTO plan_features (user_id, features, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET
				features = EXCLUDED.features,
				updated_at = EXCLUDED.updated_at`,
		userID, featuresJson, time.Now(),
	)
	return err
}
