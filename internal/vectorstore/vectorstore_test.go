package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVector(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
		want   string
	}{
		{"single", []float64{1}, "[1]"},
		{"multiple", []float64{0.5, -0.25, 1}, "[0.5,-0.25,1]"},
		{"empty", nil, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeVector(tt.vector))
		})
	}
}

func TestDecodeVector(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := []float64{0.125, -3.5, 0, 42}
		decoded, err := decodeVector(encodeVector(original))
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		decoded, err := decodeVector(" [1, 2, 3] ")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, decoded)
	})

	t.Run("empty vector rejected", func(t *testing.T) {
		_, err := decodeVector("[]")
		assert.Error(t, err)
	})

	t.Run("malformed component rejected", func(t *testing.T) {
		_, err := decodeVector("[1,abc,3]")
		assert.Error(t, err)
	})
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.2))
	assert.Equal(t, 1.0, clamp01(1.00001))
	assert.Equal(t, 0.75, clamp01(0.75))
}
