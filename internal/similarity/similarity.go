// Package similarity provides pure numeric cosine similarity scoring and batch ranking.
// It performs no I/O; embeddings come from the embedding provider.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/skillmatch/internal/types"
)

// DimensionMismatchError indicates two vectors of different lengths were compared.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// DegenerateVectorError indicates a zero-magnitude vector, typically from
// embedding empty text.
type DegenerateVectorError struct {
	Side string // "a" or "b"
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("degenerate embedding vector (zero magnitude) on side %s", e.Side)
}

// Candidate pairs an entity ID with its embedding for batch ranking.
type Candidate struct {
	ID        string
	Embedding []float64
}

// Score computes the cosine similarity between two embedding vectors,
// clamped to [0,1]. Raw cosine can dip below zero for dissimilar text and
// drift past 1.0 from floating-point error; neither is propagated.
func Score(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 {
		return 0, &DegenerateVectorError{Side: "a"}
	}
	if magB == 0 {
		return 0, &DegenerateVectorError{Side: "b"}
	}

	score := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	return clamp01(score), nil
}

// Rank scores every candidate against the query and returns MatchResults in
// descending score order. The sort is stable: equal scores preserve candidate
// insertion order, so identical inputs always produce identical output.
func Rank(subjectID string, query []float64, candidates []Candidate) ([]types.MatchResult, error) {
	results := make([]types.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		score, err := Score(query, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("scoring candidate %s: %w", c.ID, err)
		}
		results = append(results, types.MatchResult{
			SubjectID:       subjectID,
			CandidateID:     c.ID,
			SimilarityScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
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
