package match

import (
	"math"
	"testing"

	"github.com/poiesic/scholaris/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineDistance(t *testing.T) {
	t.Run("identical direction", func(t *testing.T) {
		d, err := CosineDistance([]float32{1, 2, 3}, []float32{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, d, 1e-9)
	})

	t.Run("scaled copies keep distance zero", func(t *testing.T) {
		d, err := CosineDistance([]float32{1, 2, 3}, []float32{2, 4, 6})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, d, 1e-9)
	})

	t.Run("opposite direction", func(t *testing.T) {
		d, err := CosineDistance([]float32{1, 0}, []float32{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, d, 1e-9)
	})

	t.Run("orthogonal", func(t *testing.T) {
		d, err := CosineDistance([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, d, 1e-9)
	})

	t.Run("forty five degrees", func(t *testing.T) {
		d, err := CosineDistance([]float32{1, 0}, []float32{1, 1})
		require.NoError(t, err)
		assert.InDelta(t, 1.0-math.Sqrt2/2, d, 1e-6)
	})

	t.Run("zero vector compares as orthogonal", func(t *testing.T) {
		d, err := CosineDistance([]float32{0, 0, 0}, []float32{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, d, 1e-9)

		d, err = CosineDistance([]float32{1, 2, 3}, []float32{0, 0, 0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, d, 1e-9)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CosineDistance([]float32{1, 2}, []float32{1, 2, 3})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestRank(t *testing.T) {
	candidates := []Candidate{
		{Id: 1, Vector: []float32{1, 0}},
		{Id: 2, Vector: []float32{0, 1}},
		{Id: 3, Vector: []float32{-1, 0}},
		{Id: 4, Vector: []float32{0.9, 0.1}},
	}

	t.Run("orders by ascending distance", func(t *testing.T) {
		matches, err := Rank([]float32{1, 0}, candidates, nil, 10)
		require.NoError(t, err)
		require.Len(t, matches, 4)

		assert.Equal(t, core.ID(1), matches[0].Id)
		assert.Equal(t, core.ID(4), matches[1].Id)
		assert.Equal(t, core.ID(2), matches[2].Id)
		assert.Equal(t, core.ID(3), matches[3].Id)

		for i := 0; i < len(matches)-1; i++ {
			assert.GreaterOrEqual(t, matches[i].Score, matches[i+1].Score)
		}
	})

	t.Run("score endpoints", func(t *testing.T) {
		matches, err := Rank([]float32{1, 0}, candidates, nil, 10)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, float64(matches[0].Score), 1e-6) // identical
		assert.InDelta(t, 0.5, float64(matches[2].Score), 1e-6) // orthogonal
		assert.InDelta(t, 0.0, float64(matches[3].Score), 1e-6) // opposite
	})

	t.Run("truncates to topK", func(t *testing.T) {
		matches, err := Rank([]float32{1, 0}, candidates, nil, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, core.ID(1), matches[0].Id)
		assert.Equal(t, core.ID(4), matches[1].Id)
	})

	t.Run("nil query yields empty result", func(t *testing.T) {
		matches, err := Rank(nil, candidates, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("zero or negative topK yields empty result", func(t *testing.T) {
		matches, err := Rank([]float32{1, 0}, candidates, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, matches)

		matches, err = Rank([]float32{1, 0}, candidates, nil, -3)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("no candidates", func(t *testing.T) {
		matches, err := Rank([]float32{1, 0}, nil, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []Candidate{
			{Id: 10, Vector: []float32{1, 0}},
			{Id: 20, Vector: []float32{2, 0}},
			{Id: 30, Vector: []float32{3, 0}},
		}
		matches, err := Rank([]float32{1, 0}, tied, nil, 10)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, core.ID(10), matches[0].Id)
		assert.Equal(t, core.ID(20), matches[1].Id)
		assert.Equal(t, core.ID(30), matches[2].Id)
	})

	t.Run("filter excludes before distance work", func(t *testing.T) {
		mixed := []Candidate{
			{Id: 1, Vector: []float32{1, 0}},
			{Id: 2, Vector: []float32{1, 2, 3}}, // wrong width, must be filtered out untouched
		}
		onlyFirst := func(id core.ID) bool { return id == 1 }

		matches, err := Rank([]float32{1, 0}, mixed, onlyFirst, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, core.ID(1), matches[0].Id)
	})

	t.Run("filter that drops everything", func(t *testing.T) {
		none := func(core.ID) bool { return false }

		matches, err := Rank([]float32{1, 0}, candidates, none, 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("dimension mismatch propagates", func(t *testing.T) {
		bad := []Candidate{
			{Id: 1, Vector: []float32{1, 0}},
			{Id: 2, Vector: []float32{1, 0, 0}},
		}
		_, err := Rank([]float32{1, 0}, bad, nil, 10)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
