// Package v1 implements the version 1 HTTP API.
package v1

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/infrastructure/api/middleware"
)

// Searcher answers queries against a persisted store.
type Searcher interface {
	Run(ctx context.Context, storePath string, query search.Query) ([]search.Result, error)
}

// SearchRouter handles the search API endpoints.
type SearchRouter struct {
	searcher  Searcher
	storePath string
	defaultK  int
	logger    *slog.Logger
}

// NewSearchRouter creates a SearchRouter serving queries from the store at
// storePath. defaultK applies when the request omits the k parameter.
func NewSearchRouter(searcher Searcher, storePath string, defaultK int, logger *slog.Logger) *SearchRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchRouter{
		searcher:  searcher,
		storePath: storePath,
		defaultK:  defaultK,
		logger:    logger,
	}
}

// Routes returns the chi router for search endpoints.
func (r *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Search)
	return router
}

// SearchResult is one entry of a search response.
type SearchResult struct {
	Score       float64 `json:"score"`
	SourcePath  string  `json:"source_path"`
	ChunkIndex  int     `json:"chunk_index"`
	OffsetStart int     `json:"offset_start"`
	OffsetEnd   int     `json:"offset_end"`
	Text        string  `json:"text"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// Search handles GET /api/v1/search?q=...&k=...&threshold=...
func (r *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query().Get("q")
	if q == "" {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
		return
	}

	k := r.defaultK
	if raw := req.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid k: %q", raw)})
			return
		}
		k = parsed
	}

	query := search.NewQuery(q, k)
	if raw := req.URL.Query().Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid threshold: %q", raw)})
			return
		}
		query = query.WithThreshold(threshold)
	}

	results, err := r.searcher.Run(req.Context(), r.storePath, query)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := SearchResponse{
		Query:   q,
		Results: make([]SearchResult, len(results)),
	}
	for i, res := range results {
		response.Results[i] = SearchResult{
			Score:       res.Score(),
			SourcePath:  res.SourcePath(),
			ChunkIndex:  res.ChunkIndex(),
			OffsetStart: res.Start(),
			OffsetEnd:   res.End(),
			Text:        res.Text(),
		}
	}
	middleware.WriteJSON(w, http.StatusOK, response)
}
