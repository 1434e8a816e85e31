package index

import "sort"

// Matrix is a dense, row-ordered set of L2-normalized vectors supporting
// exact exhaustive inner-product search. It is immutable once built.
type Matrix struct {
	dim  int
	rows [][]float32
}

// NewMatrix creates a Matrix from pre-normalized rows.
func NewMatrix(dim int, rows [][]float32) Matrix {
	return Matrix{dim: dim, rows: rows}
}

// Dim returns the vector dimension, or 0 for an empty matrix.
func (m Matrix) Dim() int { return m.dim }

// Len returns the number of stored vectors.
func (m Matrix) Len() int { return len(m.rows) }

// Row returns the vector at the given ordinal.
func (m Matrix) Row(ordinal int) []float32 { return m.rows[ordinal] }

// Hit is one scored row of the matrix.
type Hit struct {
	ordinal int
	score   float64
}

// Ordinal returns the row position of the hit.
func (h Hit) Ordinal() int { return h.ordinal }

// Score returns the inner-product score of the hit.
func (h Hit) Score() float64 { return h.score }

// Search scores the normalized query against every row and returns the k
// highest-scoring hits, ordered by descending score with ties broken by
// ascending ordinal. k greater than the row count is clamped; an empty
// matrix yields no hits. The query must already be L2-normalized and of
// matching dimension.
func (m Matrix) Search(query []float32, k int) []Hit {
	if k <= 0 || len(m.rows) == 0 {
		return nil
	}

	hits := make([]Hit, len(m.rows))
	for i, row := range m.rows {
		var dot float64
		for j := range row {
			dot += float64(row[j]) * float64(query[j])
		}
		hits[i] = Hit{ordinal: i, score: dot}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].ordinal < hits[j].ordinal
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}
