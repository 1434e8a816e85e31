// Package index implements the exact inner-product vector index and its
// on-disk store: a dense row-ordered matrix of L2-normalized vectors, a
// JSON Lines metadata file aligned 1:1 with the matrix rows, and a
// manifest recording the embedding model and dimension. Stores are written
// wholesale with an atomic directory swap and are immutable afterwards.
package index

import (
	"fmt"
	"math"

	"github.com/corpuslabs/ragstore/domain/search"
)

// Builder assembles normalized vectors into a dense matrix, one batch at a
// time. The dimension is fixed by the first vector added; the row index of
// each vector is permanently its ordinal position.
type Builder struct {
	dim  int
	rows [][]float32
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add normalizes each vector to unit L2 norm and appends it as the next
// matrix row. A zero-norm vector is a fatal input error
// (search.ErrZeroVector); a vector whose dimension differs from the first
// one is fatal as well (search.ErrDimensionMismatch). On error the builder
// is left unchanged and the whole ingest must be aborted.
func (b *Builder) Add(vectors [][]float64) error {
	normalized := make([][]float32, 0, len(vectors))
	dim := b.dim

	for i, vec := range vectors {
		if len(vec) == 0 {
			return fmt.Errorf("vector %d of batch is empty: %w", i, search.ErrDimensionMismatch)
		}
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return fmt.Errorf("vector %d of batch has dimension %d, want %d: %w",
				i, len(vec), dim, search.ErrDimensionMismatch)
		}

		row, err := Normalize(vec)
		if err != nil {
			return fmt.Errorf("vector %d of batch: %w", i, err)
		}
		normalized = append(normalized, row)
	}

	b.dim = dim
	b.rows = append(b.rows, normalized...)
	return nil
}

// Len returns the number of vectors added so far.
func (b *Builder) Len() int { return len(b.rows) }

// Finalize fixes the matrix and returns it. The builder must not be used
// afterwards.
func (b *Builder) Finalize() Matrix {
	m := Matrix{dim: b.dim, rows: b.rows}
	b.rows = nil
	return m
}

// Normalize scales vec to unit L2 norm, converting to float32 storage
// precision. Normalizing before storage keeps inner-product scoring equal
// to cosine similarity without re-normalizing the corpus matrix per query.
func Normalize(vec []float64) ([]float32, error) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, search.ErrZeroVector
	}

	row := make([]float32, len(vec))
	for i, v := range vec {
		row[i] = float32(v / norm)
	}
	return row, nil
}
