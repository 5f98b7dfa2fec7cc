// Package history provides access to a subject's prior accepted submissions.
// The validation pipeline itself never touches storage; callers fetch a
// snapshot here and pass it in.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hrkey/reference-validator/internal/types"
)

// DefaultLimit caps how much history one consistency check considers.
const DefaultLimit = 20

// Provider supplies prior accepted submissions for a subject.
type Provider interface {
	PriorSubmissions(ctx context.Context, subjectID string, limit int) ([]types.PriorSubmission, error)
}

// Store is a PostgreSQL-backed history provider. It also persists finished
// validation outputs on behalf of the surrounding platform.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PriorSubmissions returns up to limit accepted submissions for a subject,
// most recent first.
func (s *Store) PriorSubmissions(ctx context.Context, subjectID string, limit int) ([]types.PriorSubmission, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT attribute_ratings, embedding
		 FROM reference_submissions
		 WHERE subject_id = $1 AND status IN ('APPROVED', 'APPROVED_WITH_WARNINGS')
		 ORDER BY validated_at DESC
		 LIMIT $2`,
		subjectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query prior submissions: %w", err)
	}
	defer rows.Close()

	var prior []types.PriorSubmission
	for rows.Next() {
		var ratingsJSON []byte
		var embeddingJSON []byte
		if err := rows.Scan(&ratingsJSON, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan prior submission: %w", err)
		}

		var p types.PriorSubmission
		if err := json.Unmarshal(ratingsJSON, &p.AttributeRatings); err != nil {
			return nil, fmt.Errorf("failed to decode attribute ratings: %w", err)
		}
		if len(embeddingJSON) > 0 {
			if err := json.Unmarshal(embeddingJSON, &p.Embedding); err != nil {
				return nil, fmt.Errorf("failed to decode embedding: %w", err)
			}
		}
		prior = append(prior, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prior submissions: %w", err)
	}

	return prior, nil
}

// SaveResult persists a finished validation output.
func (s *Store) SaveResult(ctx context.Context, out *types.StructuredValidationOutput) error {
	ratings := make(map[string]float64, len(out.Dimensions))
	for name, dim := range out.Dimensions {
		ratings[name] = dim.Rating
	}
	ratingsJSON, err := json.Marshal(ratings)
	if err != nil {
		return fmt.Errorf("failed to marshal attribute ratings: %w", err)
	}

	var embeddingJSON []byte
	if len(out.Embedding) > 0 {
		embeddingJSON, err = json.Marshal(out.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}
	}
	flagsJSON, err := json.Marshal(out.Flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO reference_submissions
		   (id, subject_id, narrative, attribute_ratings, consistency_score, risk_score,
		    confidence, status, flags, embedding, validated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		out.ID, out.SubjectID, out.Narrative, ratingsJSON, out.ConsistencyScore, out.RiskScore,
		out.Confidence, string(out.Status), flagsJSON, embeddingJSON, out.Metadata.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save validation result: %w", err)
	}
	return nil
}
