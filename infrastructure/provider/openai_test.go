package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbeddingServer mimics the OpenAI embeddings endpoint. Each input
// text is mapped to a deterministic 3-dimensional vector derived from its
// length, so ordering bugs are visible in the output.
func fakeEmbeddingServer(t *testing.T, counter *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)

		var body struct {
			Input interface{} `json:"input"`
			Model string      `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		var texts []string
		switch v := body.Input.(type) {
		case string:
			texts = []string{v}
		case []interface{}:
			for _, item := range v {
				texts = append(texts, item.(string))
			}
		}

		data := make([]map[string]interface{}, len(texts))
		for i, text := range texts {
			n := float64(len(text))
			data[i] = map[string]interface{}{
				"object":    "embedding",
				"index":     i,
				"embedding": []float64{n, n + 1, n + 2},
			}
		}

		resp := map[string]interface{}{
			"object": "list",
			"data":   data,
			"model":  body.Model,
			"usage":  map[string]int{"prompt_tokens": len(texts), "total_tokens": len(texts)},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIEmbedder_EmbedEmpty(t *testing.T) {
	var counter atomic.Int64
	srv := fakeEmbeddingServer(t, &counter)
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})

	vectors, err := e.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Zero(t, counter.Load())
}

func TestOpenAIEmbedder_PreservesOrderAcrossBatches(t *testing.T) {
	var counter atomic.Int64
	srv := fakeEmbeddingServer(t, &counter)
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:        "test-key",
		BaseURL:       srv.URL,
		Model:         "test-model",
		BatchSize:     2,
		ParallelTasks: 4,
	})

	texts := make([]string, 7)
	for i := range texts {
		texts[i] = strings.Repeat("x", i+1)
	}

	vectors, err := e.Embed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, 7)

	// Vector i encodes len(texts[i]) = i+1 in its first component.
	for i, vec := range vectors {
		require.Len(t, vec, 3)
		assert.InDelta(t, float64(i+1), vec[0], 1e-9, "vector %d out of order", i)
	}
	assert.EqualValues(t, 4, counter.Load())
}

func TestOpenAIEmbedder_RetriesOn429(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
			return
		}
		resp := map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float64{1, 0, 0}},
			},
			"model": "test-model",
			"usage": map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		Model:        "test-model",
		InitialDelay: time.Millisecond,
	})

	vectors, err := e.Embed(context.Background(), []string{"hello"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestOpenAIEmbedder_HardErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:       "bad-key",
		BaseURL:      srv.URL,
		Model:        "test-model",
		InitialDelay: time.Millisecond,
	})

	_, err := e.Embed(context.Background(), []string{"hello"})
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode())
	assert.EqualValues(t, 1, calls.Load())
}

func TestOpenAIEmbedder_UpstreamFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with an empty body the client parses as zero embeddings.
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"object":"list","data":[],"model":"","usage":{"prompt_tokens":0,"total_tokens":0}}`)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		Model:        "test-model",
		InitialDelay: time.Millisecond,
	})

	_, err := e.Embed(context.Background(), []string{"hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream provider failure")
}

func TestOpenAIEmbedder_Model(t *testing.T) {
	e := NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", Model: "mxbai-embed-large"})
	assert.Equal(t, "mxbai-embed-large", e.Model())

	e = NewOpenAIEmbedder(OpenAIConfig{APIKey: "k"})
	assert.Equal(t, DefaultEmbeddingModel, e.Model())
}
