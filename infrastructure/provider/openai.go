package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/corpuslabs/ragstore/domain/search"
)

// Defaults for the OpenAI-compatible embedder.
const (
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultBatchSize      = 32
	DefaultParallelTasks  = 1
	DefaultMaxRetries     = 5
	DefaultInitialDelay   = 2 * time.Second
	DefaultBackoffFactor  = 2.0
)

// errEmbeddingCountMismatch indicates the API returned fewer embedding
// vectors than requested. This is retryable because transient upstream
// issues (e.g. rate-limiting behind a 200 status) can produce partial
// responses.
var errEmbeddingCountMismatch = errors.New("embedding response count mismatch")

// errUpstreamProviderFailure indicates the API returned HTTP 200 but the
// response body contained an error instead of embedding data. This happens
// with routing providers like OpenRouter when all upstream providers fail.
// Retrying is futile because the upstream provider is down, not
// transiently overloaded.
var errUpstreamProviderFailure = errors.New("upstream provider failure")

// OpenAIEmbedder implements search.Embedder against any OpenAI-compatible
// embeddings endpoint (api.openai.com, Ollama's /v1 shim, vLLM, ...).
//
// Large inputs are split into batches which may be issued concurrently;
// every batch writes its vectors into the slot reserved for it, so the
// returned order always equals the input order regardless of which batch
// finishes first.
type OpenAIEmbedder struct {
	client        *openai.Client
	model         string
	batchSize     int
	parallelTasks int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Timeout       time.Duration
	BatchSize     int
	ParallelTasks int
	MaxRetries    int
	InitialDelay  time.Duration
	BackoffFactor float64
}

// NewOpenAIEmbedder creates an embedder from configuration, applying
// defaults for anything unset.
func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	parallel := cfg.ParallelTasks
	if parallel <= 0 {
		parallel = DefaultParallelTasks
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	initialDelay := cfg.InitialDelay
	if initialDelay == 0 {
		initialDelay = DefaultInitialDelay
	}
	backoffFactor := cfg.BackoffFactor
	if backoffFactor == 0 {
		backoffFactor = DefaultBackoffFactor
	}

	return &OpenAIEmbedder{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         model,
		batchSize:     batchSize,
		parallelTasks: parallel,
		maxRetries:    maxRetries,
		initialDelay:  initialDelay,
		backoffFactor: backoffFactor,
	}
}

// Model returns the embedding model identifier.
func (e *OpenAIEmbedder) Model() string { return e.model }

// Embed embeds texts in order-preserving batches. Any batch failure fails
// the whole call; partial results are never returned.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	vectors := make([][]float64, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelTasks)

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		g.Go(func() error {
			batch, err := e.embedBatch(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// embedBatch issues one embeddings API call with retry.
func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	req := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	}

	var resp openai.EmbeddingResponse
	var err error

	err = e.withRetry(ctx, func() error {
		resp, err = e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		// Routing providers can return HTTP 200 with an error body that the
		// go-openai library silently parses as an empty response. Zero data
		// with zero usage and no model means the upstream is down.
		if len(resp.Data) == 0 && string(resp.Model) == "" && resp.Usage.TotalTokens == 0 {
			return fmt.Errorf(
				"%w: provider returned HTTP 200 with no embedding data, no model, and zero usage",
				errUpstreamProviderFailure,
			)
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("%w: got %d vectors for %d texts", errEmbeddingCountMismatch, len(resp.Data), len(texts))
		}
		return nil
	})
	if err != nil {
		return nil, e.wrapError(err)
	}

	vectors := make([][]float64, len(resp.Data))
	for i, data := range resp.Data {
		vec := make([]float64, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// withRetry executes fn with exponential backoff.
func (e *OpenAIEmbedder) withRetry(ctx context.Context, fn func() error) error {
	delay := e.initialDelay
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < e.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * e.backoffFactor)
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable determines whether an error should be retried.
func isRetryable(err error) bool {
	// Partial embedding responses are retryable; upstream providers can
	// return 200 with missing data under transient load.
	if errors.Is(err, errEmbeddingCountMismatch) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return true
	}

	return false
}

// wrapError wraps a go-openai error into a ProviderError.
func (e *OpenAIEmbedder) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError("embedding", apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError("embedding", reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError("embedding", 0, err.Error(), err)
}

var _ search.Embedder = (*OpenAIEmbedder)(nil)
