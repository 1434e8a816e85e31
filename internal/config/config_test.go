package config

import (
	"testing"
	"time"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultHost != "127.0.0.1" {
		t.Errorf("DefaultHost = %v, want '127.0.0.1'", DefaultHost)
	}
	if DefaultPort != 8080 {
		t.Errorf("DefaultPort = %v, want 8080", DefaultPort)
	}
	if DefaultChunkSize != 900 {
		t.Errorf("DefaultChunkSize = %v, want 900", DefaultChunkSize)
	}
	if DefaultChunkOverlap != 150 {
		t.Errorf("DefaultChunkOverlap = %v, want 150", DefaultChunkOverlap)
	}
	if DefaultSearchK != 5 {
		t.Errorf("DefaultSearchK = %v, want 5", DefaultSearchK)
	}
	if DefaultEmbeddingModel != "mxbai-embed-large" {
		t.Errorf("DefaultEmbeddingModel = %v, want 'mxbai-embed-large'", DefaultEmbeddingModel)
	}
	if DefaultEndpointTimeout != 120*time.Second {
		t.Errorf("DefaultEndpointTimeout = %v, want 120s", DefaultEndpointTimeout)
	}
	if DefaultEndpointBatchSize != 32 {
		t.Errorf("DefaultEndpointBatchSize = %v, want 32", DefaultEndpointBatchSize)
	}
}

func TestEndpoint_Defaults(t *testing.T) {
	e := NewEndpoint()

	if e.BaseURL() != DefaultEmbeddingBaseURL {
		t.Errorf("BaseURL() = %v, want %v", e.BaseURL(), DefaultEmbeddingBaseURL)
	}
	if e.Model() != DefaultEmbeddingModel {
		t.Errorf("Model() = %v, want %v", e.Model(), DefaultEmbeddingModel)
	}
	if e.APIKey() != "" {
		t.Errorf("APIKey() = %v, want empty", e.APIKey())
	}
	if e.Timeout() != DefaultEndpointTimeout {
		t.Errorf("Timeout() = %v, want %v", e.Timeout(), DefaultEndpointTimeout)
	}
	if e.MaxRetries() != DefaultEndpointMaxRetries {
		t.Errorf("MaxRetries() = %v, want %v", e.MaxRetries(), DefaultEndpointMaxRetries)
	}
	if e.BackoffFactor() != DefaultEndpointBackoff {
		t.Errorf("BackoffFactor() = %v, want %v", e.BackoffFactor(), DefaultEndpointBackoff)
	}
	if e.BatchSize() != DefaultEndpointBatchSize {
		t.Errorf("BatchSize() = %v, want %v", e.BatchSize(), DefaultEndpointBatchSize)
	}
	if e.ParallelTasks() != DefaultEndpointParallelTasks {
		t.Errorf("ParallelTasks() = %v, want %v", e.ParallelTasks(), DefaultEndpointParallelTasks)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Host() != DefaultHost {
		t.Errorf("Host() = %v, want %v", cfg.Host(), DefaultHost)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %v, want %v", cfg.Port(), DefaultPort)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %v, want '127.0.0.1:8080'", cfg.Addr())
	}
	if cfg.StorePath() != DefaultStorePath {
		t.Errorf("StorePath() = %v, want %v", cfg.StorePath(), DefaultStorePath)
	}
	if cfg.CorpusPath() != DefaultCorpusPath {
		t.Errorf("CorpusPath() = %v, want %v", cfg.CorpusPath(), DefaultCorpusPath)
	}
	if len(cfg.Extensions()) != 0 {
		t.Errorf("Extensions() = %v, want empty", cfg.Extensions())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat() = %v, want pretty", cfg.LogFormat())
	}
	if cfg.Embedding().Model() != DefaultEmbeddingModel {
		t.Errorf("Embedding().Model() = %v, want %v", cfg.Embedding().Model(), DefaultEmbeddingModel)
	}
}

func TestAppConfig_WithOptions(t *testing.T) {
	cfg := NewAppConfig(
		WithHost("0.0.0.0"),
		WithPort(9000),
		WithStorePath("/data/store"),
		WithCorpusPath("/data/corpus"),
		WithExtensions([]string{".md", ".rst"}),
		WithChunkSize(500),
		WithChunkOverlap(50),
		WithSearchK(10),
		WithLogLevel("DEBUG"),
		WithLogFormat(LogFormatJSON),
	)

	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr() = %v, want '0.0.0.0:9000'", cfg.Addr())
	}
	if cfg.StorePath() != "/data/store" {
		t.Errorf("StorePath() = %v, want '/data/store'", cfg.StorePath())
	}
	if cfg.CorpusPath() != "/data/corpus" {
		t.Errorf("CorpusPath() = %v, want '/data/corpus'", cfg.CorpusPath())
	}
	if len(cfg.Extensions()) != 2 || cfg.Extensions()[0] != ".md" {
		t.Errorf("Extensions() = %v, want [.md .rst]", cfg.Extensions())
	}
	if cfg.ChunkSize() != 500 {
		t.Errorf("ChunkSize() = %v, want 500", cfg.ChunkSize())
	}
	if cfg.ChunkOverlap() != 50 {
		t.Errorf("ChunkOverlap() = %v, want 50", cfg.ChunkOverlap())
	}
	if cfg.SearchK() != 10 {
		t.Errorf("SearchK() = %v, want 10", cfg.SearchK())
	}
	if cfg.LogLevel() != "DEBUG" {
		t.Errorf("LogLevel() = %v, want 'DEBUG'", cfg.LogLevel())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat() = %v, want json", cfg.LogFormat())
	}
}

func TestAppConfig_ApplyReturnsCopy(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(9999))

	if changed.Port() != 9999 {
		t.Errorf("changed.Port() = %v, want 9999", changed.Port())
	}
	if base.Port() != DefaultPort {
		t.Errorf("base.Port() = %v, want %v (Apply must not mutate)", base.Port(), DefaultPort)
	}
}
