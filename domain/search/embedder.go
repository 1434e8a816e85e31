package search

import "context"

// Embedder converts text into embedding vectors.
//
// Implementations must return exactly one vector per input text, in input
// order, with the same dimension for every vector produced by a given
// model. Any unrecoverable provider failure must surface as an error, never
// as a partial result.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Model returns the embedding model identifier. Vectors from different
	// models are not comparable, so the identifier is recorded in the store
	// manifest and checked before every search.
	Model() string
}
