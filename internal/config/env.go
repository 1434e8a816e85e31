package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables with the RAGSTORE_ prefix (e.g. RAGSTORE_STORE_PATH);
// nested structs use underscore delimiters
// (e.g. RAGSTORE_EMBEDDING_ENDPOINT_BASE_URL).
type EnvConfig struct {
	// Host is the HTTP server host to bind to.
	Host string `envconfig:"HOST"`

	// Port is the HTTP server port to listen on.
	Port int `envconfig:"PORT"`

	// StorePath is the store directory.
	StorePath string `envconfig:"STORE_PATH"`

	// CorpusPath is the corpus root directory.
	CorpusPath string `envconfig:"CORPUS_PATH"`

	// Extensions is a comma-separated list of accepted file extensions
	// (e.g. ".md,.txt,.py").
	Extensions string `envconfig:"EXTENSIONS"`

	// ChunkSize is the chunk window size in characters.
	ChunkSize int `envconfig:"CHUNK_SIZE"`

	// ChunkOverlap is the chunk window overlap in characters.
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP"`

	// SearchK is the default number of search results.
	SearchK int `envconfig:"SEARCH_K"`

	// LogLevel is the log verbosity level (DEBUG, INFO, WARN, ERROR).
	LogLevel string `envconfig:"LOG_LEVEL"`

	// LogFormat is the log output format (pretty or json).
	LogFormat string `envconfig:"LOG_FORMAT"`

	// EmbeddingEndpoint configures the embedding service.
	EmbeddingEndpoint EndpointEnv `envconfig:"EMBEDDING_ENDPOINT"`
}

// EndpointEnv holds environment configuration for the embedding endpoint.
type EndpointEnv struct {
	// BaseURL is the OpenAI-compatible base URL
	// (e.g. http://localhost:11434/v1 for Ollama).
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the embedding model identifier.
	Model string `envconfig:"MODEL"`

	// APIKey is the API key; empty for local providers.
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	Timeout float64 `envconfig:"TIMEOUT"`

	// MaxRetries is the maximum number of retries.
	MaxRetries int `envconfig:"MAX_RETRIES"`

	// InitialDelay is the initial retry delay in seconds.
	InitialDelay float64 `envconfig:"INITIAL_DELAY"`

	// BackoffFactor is the retry backoff multiplier.
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR"`

	// BatchSize is the number of texts per embedding call.
	BatchSize int `envconfig:"BATCH_SIZE"`

	// NumParallelTasks is the number of concurrent embedding calls.
	NumParallelTasks int `envconfig:"NUM_PARALLEL_TASKS"`
}

// envPrefix namespaces all ragstore environment variables.
const envPrefix = "RAGSTORE"

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig, applying only the values
// that were actually set.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.StorePath != "" {
		opts = append(opts, WithStorePath(e.StorePath))
	}
	if e.CorpusPath != "" {
		opts = append(opts, WithCorpusPath(e.CorpusPath))
	}
	if e.Extensions != "" {
		opts = append(opts, WithExtensions(ParseExtensions(e.Extensions)))
	}
	if e.ChunkSize > 0 {
		opts = append(opts, WithChunkSize(e.ChunkSize))
	}
	if e.ChunkOverlap > 0 {
		opts = append(opts, WithChunkOverlap(e.ChunkOverlap))
	}
	if e.SearchK > 0 {
		opts = append(opts, WithSearchK(e.SearchK))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	opts = append(opts, WithEmbeddingEndpoint(e.EmbeddingEndpoint.ToEndpoint()))

	return NewAppConfig(opts...)
}

// ToEndpoint converts EndpointEnv to Endpoint, keeping defaults for unset
// fields.
func (e EndpointEnv) ToEndpoint() Endpoint {
	ep := NewEndpoint()

	if e.BaseURL != "" {
		ep.baseURL = e.BaseURL
	}
	if e.Model != "" {
		ep.model = e.Model
	}
	if e.APIKey != "" {
		ep.apiKey = e.APIKey
	}
	if e.Timeout > 0 {
		ep.timeout = time.Duration(e.Timeout * float64(time.Second))
	}
	if e.MaxRetries > 0 {
		ep.maxRetries = e.MaxRetries
	}
	if e.InitialDelay > 0 {
		ep.initialDelay = time.Duration(e.InitialDelay * float64(time.Second))
	}
	if e.BackoffFactor > 0 {
		ep.backoffFactor = e.BackoffFactor
	}
	if e.BatchSize > 0 {
		ep.batchSize = e.BatchSize
	}
	if e.NumParallelTasks > 0 {
		ep.parallelTasks = e.NumParallelTasks
	}

	return ep
}

// ParseExtensions splits a comma-separated extension list, trimming
// whitespace and dropping empty entries.
func ParseExtensions(s string) []string {
	parts := strings.Split(s, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
