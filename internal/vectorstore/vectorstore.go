// Package vectorstore provides PostgreSQL/pgvector persistence for entity
// embeddings. Vectors are opaque whole values: written and read in full,
// never updated element-wise.
package vectorstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillmatch/internal/types"
)

// EntityKind distinguishes what a stored embedding describes.
type EntityKind string

// Entity kind constants
const (
	KindResume EntityKind = "resume"
	KindJob    EntityKind = "job"
)

// Store wraps a PostgreSQL connection pool with pgvector support.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the embeddings table and pgvector extension if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)
	if err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS entity_embeddings (
			entity_id  UUID NOT NULL,
			kind       TEXT NOT NULL,
			embedding  vector NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (entity_id, kind)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create embeddings table: %w", err)
	}
	return nil
}

// Upsert stores the embedding for an entity, replacing any previous vector.
func (s *Store) Upsert(ctx context.Context, entityID uuid.UUID, kind EntityKind, vector []float64) error {
	if len(vector) == 0 {
		return fmt.Errorf("cannot store an empty vector")
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO entity_embeddings (entity_id, kind, embedding, updated_at)
		 VALUES ($1, $2, $3::vector, NOW())
		 ON CONFLICT (entity_id, kind) DO UPDATE SET embedding = $3::vector, updated_at = NOW()`,
		entityID, kind, encodeVector(vector),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert embedding for %s: %w", entityID, err)
	}
	return nil
}

// Get retrieves the stored embedding for an entity. Returns pgx.ErrNoRows
// wrapped when no embedding exists.
func (s *Store) Get(ctx context.Context, entityID uuid.UUID, kind EntityKind) ([]float64, error) {
	var raw string
	err := s.pool.QueryRow(ctx,
		`SELECT embedding::text FROM entity_embeddings WHERE entity_id = $1 AND kind = $2`,
		entityID, kind,
	).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedding for %s: %w", entityID, err)
	}
	return decodeVector(raw)
}

// QueryNearest returns up to limit entities of the given kind ordered by
// cosine similarity to the query vector, most similar first. Ranking happens
// store-side via the pgvector cosine distance operator.
func (s *Store) QueryNearest(ctx context.Context, subjectID uuid.UUID, query []float64, kind EntityKind, limit int) ([]types.MatchResult, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("cannot query with an empty vector")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT entity_id, 1 - (embedding <=> $1::vector) AS similarity
		 FROM entity_embeddings
		 WHERE kind = $2
		 ORDER BY embedding <=> $1::vector
		 LIMIT $3`,
		encodeVector(query), kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearest embeddings: %w", err)
	}
	defer rows.Close()

	var results []types.MatchResult
	rank := 1
	for rows.Next() {
		var id uuid.UUID
		var similarity float64
		if err := rows.Scan(&id, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		results = append(results, types.MatchResult{
			SubjectID:       subjectID.String(),
			CandidateID:     id.String(),
			SimilarityScore: clamp01(similarity),
			Rank:            rank,
		})
		rank++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}

	return results, nil
}

// Delete removes the stored embedding for an entity.
func (s *Store) Delete(ctx context.Context, entityID uuid.UUID, kind EntityKind) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM entity_embeddings WHERE entity_id = $1 AND kind = $2`,
		entityID, kind,
	)
	if err != nil {
		return fmt.Errorf("failed to delete embedding for %s: %w", entityID, err)
	}
	return nil
}

// encodeVector renders a vector in pgvector's text input format: [x,y,z].
func encodeVector(vector []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// decodeVector parses pgvector's text output format back into a slice.
func decodeVector(raw string) ([]float64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	if trimmed == "" {
		return nil, fmt.Errorf("embedding column contained an empty vector")
	}

	parts := strings.Split(trimmed, ",")
	vector := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedding component %d: %w", i, err)
		}
		vector[i] = v
	}
	return vector, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
