package index

import (
	"math"
	"testing"

	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_NormalizesRows(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add([][]float64{{3, 4}}))

	m := b.Finalize()
	require.Equal(t, 1, m.Len())
	require.Equal(t, 2, m.Dim())

	row := m.Row(0)
	assert.InDelta(t, 0.6, float64(row[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(row[1]), 1e-6)

	var norm float64
	for _, v := range row {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestBuilder_OrdinalsFollowAppendOrder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add([][]float64{{1, 0}, {0, 1}}))
	require.NoError(t, b.Add([][]float64{{1, 1}}))

	m := b.Finalize()
	require.Equal(t, 3, m.Len())
	assert.InDelta(t, 1.0, float64(m.Row(0)[0]), 1e-6)
	assert.InDelta(t, 1.0, float64(m.Row(1)[1]), 1e-6)
}

func TestBuilder_ZeroVectorIsFatal(t *testing.T) {
	b := NewBuilder()
	err := b.Add([][]float64{{0, 0, 0}})
	require.ErrorIs(t, err, search.ErrZeroVector)
	assert.Equal(t, 0, b.Len())
}

func TestBuilder_DimensionMismatchIsFatal(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add([][]float64{{1, 0, 0}}))

	err := b.Add([][]float64{{1, 0}})
	require.ErrorIs(t, err, search.ErrDimensionMismatch)

	// The failed batch must not have touched the matrix.
	assert.Equal(t, 1, b.Len())
}

func TestBuilder_MismatchWithinBatchLeavesBuilderUnchanged(t *testing.T) {
	b := NewBuilder()
	err := b.Add([][]float64{{1, 0}, {1, 0, 0}})
	require.ErrorIs(t, err, search.ErrDimensionMismatch)
	assert.Equal(t, 0, b.Len())
}

func TestNormalize_ZeroNorm(t *testing.T) {
	_, err := Normalize([]float64{0, 0})
	require.ErrorIs(t, err, search.ErrZeroVector)
}
