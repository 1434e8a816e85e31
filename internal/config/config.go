// Package config provides application configuration.
package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultHost                  = "127.0.0.1"
	DefaultPort                  = 8080
	DefaultLogLevel              = "INFO"
	DefaultStorePath             = "./store"
	DefaultCorpusPath            = "./corpus"
	DefaultChunkSize             = 900
	DefaultChunkOverlap          = 150
	DefaultSearchK               = 5
	DefaultEmbeddingModel        = "mxbai-embed-large"
	DefaultEmbeddingBaseURL      = "http://localhost:11434/v1"
	DefaultEndpointTimeout       = 120 * time.Second
	DefaultEndpointMaxRetries    = 5
	DefaultEndpointInitialDelay  = 2 * time.Second
	DefaultEndpointBackoff       = 2.0
	DefaultEndpointBatchSize     = 32
	DefaultEndpointParallelTasks = 1
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures the embedding service endpoint. The defaults point
// at a local Ollama instance through its OpenAI-compatible API.
type Endpoint struct {
	baseURL       string
	model         string
	apiKey        string
	timeout       time.Duration
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
	batchSize     int
	parallelTasks int
}

// NewEndpoint creates an Endpoint with defaults.
func NewEndpoint() Endpoint {
	return Endpoint{
		baseURL:       DefaultEmbeddingBaseURL,
		model:         DefaultEmbeddingModel,
		timeout:       DefaultEndpointTimeout,
		maxRetries:    DefaultEndpointMaxRetries,
		initialDelay:  DefaultEndpointInitialDelay,
		backoffFactor: DefaultEndpointBackoff,
		batchSize:     DefaultEndpointBatchSize,
		parallelTasks: DefaultEndpointParallelTasks,
	}
}

// BaseURL returns the endpoint base URL.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the embedding model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key, which may be empty for local providers.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the per-request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// BatchSize returns the number of texts per embedding call.
func (e Endpoint) BatchSize() int { return e.batchSize }

// ParallelTasks returns how many embedding calls may run concurrently.
func (e Endpoint) ParallelTasks() int { return e.parallelTasks }

// AppConfig holds the full application configuration.
type AppConfig struct {
	host         string
	port         int
	storePath    string
	corpusPath   string
	extensions   []string
	chunkSize    int
	chunkOverlap int
	searchK      int
	logLevel     string
	logFormat    LogFormat
	embedding    Endpoint
}

// AppConfigOption mutates an AppConfig during construction.
type AppConfigOption func(*AppConfig)

// NewAppConfig creates an AppConfig with defaults applied.
func NewAppConfig(opts ...AppConfigOption) AppConfig {
	cfg := AppConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		storePath:    DefaultStorePath,
		corpusPath:   DefaultCorpusPath,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		searchK:      DefaultSearchK,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		embedding:    NewEndpoint(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithStorePath sets the store directory path.
func WithStorePath(path string) AppConfigOption {
	return func(c *AppConfig) { c.storePath = path }
}

// WithCorpusPath sets the corpus root path.
func WithCorpusPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.corpusPath = path }
}

// WithExtensions sets the accepted corpus file extensions.
func WithExtensions(exts []string) AppConfigOption {
	return func(c *AppConfig) { c.extensions = exts }
}

// WithChunkSize sets the chunk window size in characters.
func WithChunkSize(n int) AppConfigOption {
	return func(c *AppConfig) { c.chunkSize = n }
}

// WithChunkOverlap sets the chunk window overlap in characters.
func WithChunkOverlap(n int) AppConfigOption {
	return func(c *AppConfig) { c.chunkOverlap = n }
}

// WithSearchK sets the default number of search results.
func WithSearchK(k int) AppConfigOption {
	return func(c *AppConfig) { c.searchK = k }
}

// WithLogLevel sets the log verbosity level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log output format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithEmbeddingEndpoint sets the embedding endpoint configuration.
func WithEmbeddingEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.embedding = e }
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address to bind to.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// StorePath returns the store directory path.
func (c AppConfig) StorePath() string { return c.storePath }

// CorpusPath returns the corpus root path.
func (c AppConfig) CorpusPath() string { return c.corpusPath }

// Extensions returns the accepted corpus file extensions; an empty slice
// means the reader's defaults apply.
func (c AppConfig) Extensions() []string { return c.extensions }

// ChunkSize returns the chunk window size in characters.
func (c AppConfig) ChunkSize() int { return c.chunkSize }

// ChunkOverlap returns the chunk window overlap in characters.
func (c AppConfig) ChunkOverlap() int { return c.chunkOverlap }

// SearchK returns the default number of search results.
func (c AppConfig) SearchK() int { return c.searchK }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Embedding returns the embedding endpoint configuration.
func (c AppConfig) Embedding() Endpoint { return c.embedding }
