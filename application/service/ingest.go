// Package service provides the application layer services that orchestrate
// ingest and search over the domain and infrastructure packages.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofrs/flock"

	"github.com/corpuslabs/ragstore/domain/corpus"
	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/infrastructure/chunking"
	"github.com/corpuslabs/ragstore/infrastructure/index"
)

// DocumentSource enumerates and reads the documents of a corpus.
type DocumentSource interface {
	ReadAll() ([]corpus.Document, error)
}

// Ingest builds a store from a corpus: read, chunk, embed, index, persist.
// One ingest run always rebuilds the target store wholesale.
type Ingest struct {
	source   DocumentSource
	embedder search.Embedder
	window   chunking.Window
	logger   *slog.Logger
}

// NewIngest creates an Ingest service.
func NewIngest(source DocumentSource, embedder search.Embedder, window chunking.Window, logger *slog.Logger) (*Ingest, error) {
	if source == nil {
		return nil, fmt.Errorf("NewIngest: nil source")
	}
	if embedder == nil {
		return nil, fmt.Errorf("NewIngest: nil embedder")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingest{
		source:   source,
		embedder: embedder,
		window:   window,
		logger:   logger,
	}, nil
}

// Run performs a full rebuild of the store at storePath. The store
// directory is replaced atomically; on any fatal error the previously
// persisted store is left untouched. Concurrent ingests of the same store
// are rejected via an exclusive file lock (search.ErrIngestLocked).
func (s *Ingest) Run(ctx context.Context, storePath string) error {
	lock := flock.New(storePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", storePath, search.ErrIngestLocked)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	documents, err := s.source.ReadAll()
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	chunks := s.chunkAll(documents)
	s.logger.Info("corpus chunked",
		"documents", len(documents),
		"chunks", len(chunks),
		"chunk_size", s.window.Size(),
		"overlap", s.window.Overlap(),
	)

	builder := index.NewBuilder()
	records := make([]index.Record, 0, len(chunks))

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text()
		}

		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed corpus: %w", err)
		}
		if len(vectors) != len(chunks) {
			return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}

		if err := builder.Add(vectors); err != nil {
			return fmt.Errorf("build index: %w", err)
		}
		for i, c := range chunks {
			records = append(records, index.NewRecord(i, c))
		}
	}

	store, err := index.NewStore(builder.Finalize(), records, s.embedder.Model())
	if err != nil {
		return fmt.Errorf("assemble store: %w", err)
	}

	if err := store.Write(storePath); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	s.logger.Info("store written",
		"path", storePath,
		"entries", store.Len(),
		"dimension", store.Matrix().Dim(),
		"model", store.Manifest().Model,
	)

	s.selfCheck(ctx, store)
	return nil
}

// chunkAll cuts every document into chunks, assigning per-document
// ordinals. Chunk order follows document order, so store ordinals are
// stable across ingests of an unchanged corpus.
func (s *Ingest) chunkAll(documents []corpus.Document) []corpus.Chunk {
	var chunks []corpus.Chunk
	for _, doc := range documents {
		ordinal := 0
		for span := range s.window.Spans(doc.Text()) {
			chunks = append(chunks, corpus.NewChunk(doc.Path(), ordinal, span.Start(), span.End(), span.Text()))
			ordinal++
		}
	}
	return chunks
}

// selfCheck probes the freshly built store with a word sampled from its
// first record and logs the top hit. It is a sanity signal only; failures
// are warnings and never fail the ingest.
func (s *Ingest) selfCheck(ctx context.Context, store index.Store) {
	if store.Len() == 0 {
		return
	}

	word := probeWord(store.Records()[0].Text)
	if word == "" {
		return
	}

	vectors, err := s.embedder.Embed(ctx, []string{word})
	if err != nil || len(vectors) != 1 {
		s.logger.Warn("self-check embed failed", "error", err)
		return
	}

	query, err := index.Normalize(vectors[0])
	if err != nil {
		s.logger.Warn("self-check skipped", "error", err)
		return
	}

	hits := store.Matrix().Search(query, 1)
	if len(hits) == 0 {
		s.logger.Warn("self-check returned no hits", "probe", word)
		return
	}

	rec := store.Records()[hits[0].Ordinal()]
	s.logger.Info("self-check passed",
		"probe", word,
		"source_path", rec.SourcePath,
		"score", hits[0].Score(),
	)
}

// probeWord picks the first word of at least four letters from text,
// stripped of surrounding punctuation.
func probeWord(text string) string {
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,;:!?()[]{}\"'")
		if len([]rune(w)) >= 4 {
			return w
		}
	}
	return ""
}
