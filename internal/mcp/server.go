// Package mcp exposes search over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/corpuslabs/ragstore/domain/search"
)

// Searcher answers queries against a persisted store.
type Searcher interface {
	Run(ctx context.Context, storePath string, query search.Query) ([]search.Result, error)
}

// Server wraps the MCP server with the ragstore search tool.
type Server struct {
	mcpServer *server.MCPServer
	searcher  Searcher
	storePath string
	defaultK  int
	logger    *slog.Logger
}

// NewServer creates an MCP server serving queries from the store at
// storePath. defaultK applies when a tool call omits top_k.
func NewServer(searcher Searcher, storePath string, defaultK int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		searcher:  searcher,
		storePath: storePath,
		defaultK:  defaultK,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"ragstore",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)
	s.mcpServer = mcpServer
	return s
}

// MCPServer returns the underlying MCP server for transport wiring.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout and blocks until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	searchTool := mcp.NewTool("search",
		mcp.WithDescription("Search the indexed corpus by semantic similarity"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Number of results to return"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum cosine similarity score; results below it are dropped"),
		),
	)

	mcpServer.AddTool(searchTool, s.handleSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	queryText, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}

	topK := request.GetInt("top_k", s.defaultK)

	query := search.NewQuery(queryText, topK)
	if threshold := request.GetFloat("threshold", -1); threshold >= 0 {
		query = query.WithThreshold(threshold)
	}

	results, err := s.searcher.Run(ctx, s.storePath, query)
	if err != nil {
		s.logger.Error("search failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type searchResult struct {
		Score       float64 `json:"score"`
		SourcePath  string  `json:"source_path"`
		ChunkIndex  int     `json:"chunk_index"`
		OffsetStart int     `json:"offset_start"`
		OffsetEnd   int     `json:"offset_end"`
		Text        string  `json:"text"`
	}

	formatted := make([]searchResult, len(results))
	for i, r := range results {
		formatted[i] = searchResult{
			Score:       r.Score(),
			SourcePath:  r.SourcePath(),
			ChunkIndex:  r.ChunkIndex(),
			OffsetStart: r.Start(),
			OffsetEnd:   r.End(),
			Text:        r.Text(),
		}
	}

	payload, err := json.Marshal(map[string]any{"results": formatted})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
