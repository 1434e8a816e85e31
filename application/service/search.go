package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/infrastructure/index"
)

// Search answers nearest-neighbor queries against a persisted store. It is
// read-only: the store is loaded per call and never mutated, so any number
// of searches may run concurrently.
type Search struct {
	embedder search.Embedder
	logger   *slog.Logger
}

// NewSearch creates a Search service.
func NewSearch(embedder search.Embedder, logger *slog.Logger) (*Search, error) {
	if embedder == nil {
		return nil, fmt.Errorf("NewSearch: nil embedder")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Search{embedder: embedder, logger: logger}, nil
}

// Run embeds the query, scores it against every entry of the store at
// storePath, and returns the top query.K() results ordered by descending
// score with ties broken by ascending ordinal.
//
// A k of zero or less is fatal (search.ErrInvalidK); a k larger than the
// store is silently clamped. The query must be embedded with the model the
// store was built with (search.ErrModelMismatch otherwise). An empty store
// yields an empty result list, not an error.
func (s *Search) Run(ctx context.Context, storePath string, query search.Query) ([]search.Result, error) {
	if query.K() <= 0 {
		return nil, fmt.Errorf("k=%d: %w", query.K(), search.ErrInvalidK)
	}
	if strings.TrimSpace(query.Text()) == "" {
		return nil, fmt.Errorf("query text is empty")
	}

	store, err := index.Load(storePath)
	if err != nil {
		return nil, err
	}

	manifest := store.Manifest()
	if manifest.Model != s.embedder.Model() {
		return nil, fmt.Errorf("store was built with model %q, query uses %q: %w",
			manifest.Model, s.embedder.Model(), search.ErrModelMismatch)
	}

	if store.Len() == 0 {
		return []search.Result{}, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query.Text()})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}
	if len(vectors[0]) != manifest.Dimension {
		return nil, fmt.Errorf("query embedding has dimension %d, store has %d: %w",
			len(vectors[0]), manifest.Dimension, search.ErrDimensionMismatch)
	}

	normalized, err := index.Normalize(vectors[0])
	if err != nil {
		return nil, fmt.Errorf("normalize query embedding: %w", err)
	}

	hits := store.Matrix().Search(normalized, query.K())

	threshold, hasThreshold := query.Threshold()
	results := make([]search.Result, 0, len(hits))
	for _, hit := range hits {
		if hasThreshold && hit.Score() < threshold {
			continue
		}
		rec := store.Records()[hit.Ordinal()]
		results = append(results, search.NewResult(
			hit.Score(),
			hit.Ordinal(),
			rec.SourcePath,
			rec.ChunkOrdinal,
			rec.OffsetStart,
			rec.OffsetEnd,
			rec.Text,
		))
	}

	s.logger.Debug("search completed",
		"store", storePath,
		"k", query.K(),
		"results", len(results),
	)
	return results, nil
}
