package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func TestScore(t *testing.T) {
	t.Run("identical vectors score one", func(t *testing.T) {
		v := []float64{0.3, -0.2, 0.9, 0.1}
		score, err := Score(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		score, err := Score([]float64{1, 0}, []float64{0, 1})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("opposite vectors clamp to zero", func(t *testing.T) {
		score, err := Score([]float64{1, 0}, []float64{-1, 0})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Score([]float64{1, 0}, []float64{1, 0, 0})
		require.Error(t, err)

		var dimErr *DimensionMismatchError
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 2, dimErr.LenA)
		assert.Equal(t, 3, dimErr.LenB)
	})

	t.Run("zero vector rejected", func(t *testing.T) {
		_, err := Score([]float64{0, 0}, []float64{1, 0})
		require.Error(t, err)

		var degErr *DegenerateVectorError
		require.ErrorAs(t, err, &degErr)
		assert.Equal(t, "a", degErr.Side)

		_, err = Score([]float64{1, 0}, []float64{0, 0})
		require.ErrorAs(t, err, &degErr)
		assert.Equal(t, "b", degErr.Side)
	})

	t.Run("empty vectors rejected", func(t *testing.T) {
		_, err := Score(nil, nil)
		assert.Error(t, err)
	})
}

func TestRank(t *testing.T) {
	query := []float64{1, 0, 0}

	t.Run("descending order with one-based ranks", func(t *testing.T) {
		results, err := Rank("resume-1", query, []Candidate{
			{ID: "far", Embedding: []float64{0, 1, 0}},
			{ID: "near", Embedding: []float64{1, 0.1, 0}},
			{ID: "exact", Embedding: []float64{2, 0, 0}},
		})
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "exact", results[0].CandidateID)
		assert.Equal(t, "near", results[1].CandidateID)
		assert.Equal(t, "far", results[2].CandidateID)
		for i, r := range results {
			assert.Equal(t, i+1, r.Rank)
			assert.Equal(t, "resume-1", r.SubjectID)
		}
	})

	t.Run("stable on ties", func(t *testing.T) {
		candidates := []Candidate{
			{ID: "first", Embedding: []float64{0, 1, 0}},
			{ID: "second", Embedding: []float64{0, 2, 0}},
		}
		results, err := Rank("resume-1", query, candidates)
		require.NoError(t, err)

		assert.Equal(t, "first", results[0].CandidateID)
		assert.Equal(t, "second", results[1].CandidateID)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		candidates := []Candidate{
			{ID: "a", Embedding: []float64{0.5, 0.5, 0}},
			{ID: "b", Embedding: []float64{0.5, 0, 0.5}},
			{ID: "c", Embedding: []float64{1, 0, 0}},
		}
		first, err := Rank("resume-1", query, candidates)
		require.NoError(t, err)
		second, err := Rank("resume-1", query, candidates)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("bad candidate surfaces its ID", func(t *testing.T) {
		_, err := Rank("resume-1", query, []Candidate{
			{ID: "broken", Embedding: []float64{1, 0}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("empty candidate list", func(t *testing.T) {
		results, err := Rank("resume-1", query, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRankResultsAreMatchResults(t *testing.T) {
	results, err := Rank("resume-1", []float64{1, 0}, []Candidate{
		{ID: "job-1", Embedding: []float64{1, 0}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	expected := types.MatchResult{
		SubjectID:       "resume-1",
		CandidateID:     "job-1",
		SimilarityScore: 1.0,
		Rank:            1,
	}
	assert.Equal(t, expected, results[0])
}
