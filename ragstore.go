// Package ragstore provides local semantic search over a document corpus.
//
// Ragstore reads a directory of text documents, cuts them into overlapping
// chunks, embeds the chunks through any OpenAI-compatible endpoint, and
// persists a flat vector store that can be searched by cosine similarity.
//
// Basic usage:
//
//	client, err := ragstore.New(
//	    ragstore.WithConfig(cfg),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Build the store from the configured corpus directory
//	if err := client.IngestCorpus(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Query it
//	results, err := client.Query(ctx, search.NewQuery("how do I install", 5))
//	for _, r := range results {
//	    fmt.Println(r.SourcePath(), r.Score())
//	}
package ragstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corpuslabs/ragstore/application/service"
	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/infrastructure/chunking"
	corpusfs "github.com/corpuslabs/ragstore/infrastructure/corpus"
	"github.com/corpuslabs/ragstore/infrastructure/provider"
	"github.com/corpuslabs/ragstore/internal/config"
	"github.com/corpuslabs/ragstore/internal/log"
)

// Client is the main entry point for the ragstore library.
//
// Access the underlying services directly for finer control:
//
//	client.Ingest.Run(ctx, "/some/other/store")
//	client.Search.Run(ctx, storePath, query)
type Client struct {
	// Ingest rebuilds stores from the configured corpus.
	Ingest *service.Ingest

	// Search answers queries against persisted stores.
	Search *service.Search

	cfg    config.AppConfig
	logger *slog.Logger
}

// New creates a Client from options.
func New(opts ...Option) (*Client, error) {
	cc := newClientConfig()
	for _, opt := range opts {
		opt(cc)
	}

	logger := cc.logger
	if logger == nil {
		logger = log.New(cc.cfg)
	}

	embedder := cc.embedder
	if embedder == nil {
		ep := cc.cfg.Embedding()
		embedder = provider.NewOpenAIEmbedder(provider.OpenAIConfig{
			APIKey:        ep.APIKey(),
			BaseURL:       ep.BaseURL(),
			Model:         ep.Model(),
			Timeout:       ep.Timeout(),
			BatchSize:     ep.BatchSize(),
			ParallelTasks: ep.ParallelTasks(),
			MaxRetries:    ep.MaxRetries(),
			InitialDelay:  ep.InitialDelay(),
			BackoffFactor: ep.BackoffFactor(),
		})
	}

	window, err := chunking.NewWindow(cc.cfg.ChunkSize(), cc.cfg.ChunkOverlap())
	if err != nil {
		return nil, fmt.Errorf("chunk window: %w", err)
	}

	source := cc.source
	if source == nil {
		source = corpusfs.NewReader(cc.cfg.CorpusPath(), cc.cfg.Extensions(), logger)
	}

	ingest, err := service.NewIngest(source, embedder, window, logger)
	if err != nil {
		return nil, err
	}
	searchSvc, err := service.NewSearch(embedder, logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		Ingest: ingest,
		Search: searchSvc,
		cfg:    cc.cfg,
		logger: logger,
	}, nil
}

// IngestCorpus rebuilds the configured store from the configured corpus.
func (c *Client) IngestCorpus(ctx context.Context) error {
	return c.Ingest.Run(ctx, c.cfg.StorePath())
}

// Query runs a search against the configured store.
func (c *Client) Query(ctx context.Context, query search.Query) ([]search.Result, error) {
	return c.Search.Run(ctx, c.cfg.StorePath(), query)
}

// Config returns the client configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Logger returns the client logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
