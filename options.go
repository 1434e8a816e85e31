package ragstore

import (
	"log/slog"

	"github.com/corpuslabs/ragstore/application/service"
	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	cfg      config.AppConfig
	logger   *slog.Logger
	embedder search.Embedder
	source   service.DocumentSource
}

func newClientConfig() *clientConfig {
	return &clientConfig{cfg: config.NewAppConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig sets the full application configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) { c.cfg = cfg }
}

// WithLogger sets the logger. Defaults to a logger built from the
// configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithEmbedder overrides the embedding client. Defaults to an
// OpenAI-compatible client built from the configured endpoint.
func WithEmbedder(embedder search.Embedder) Option {
	return func(c *clientConfig) { c.embedder = embedder }
}

// WithDocumentSource overrides the corpus reader. Defaults to a filesystem
// reader rooted at the configured corpus path.
func WithDocumentSource(source service.DocumentSource) Option {
	return func(c *clientConfig) { c.source = source }
}
