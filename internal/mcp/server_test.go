package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpuslabs/ragstore/domain/search"
)

type stubSearcher struct {
	lastQuery search.Query
	results   []search.Result
	err       error
}

func (s *stubSearcher) Run(_ context.Context, _ string, query search.Query) ([]search.Result, error) {
	s.lastQuery = query
	return s.results, s.err
}

func callSearch(t *testing.T, srv *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "search"
	req.Params.Arguments = args

	result, err := srv.handleSearch(context.Background(), req)
	require.NoError(t, err)
	return result
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestHandleSearch_ReturnsResults(t *testing.T) {
	stub := &stubSearcher{
		results: []search.Result{
			search.NewResult(0.87, 2, "notes/setup.md", 0, 0, 120, "install with make"),
		},
	}
	srv := NewServer(stub, "/tmp/store", 5, nil)

	result := callSearch(t, srv, map[string]any{"query": "install"})
	require.False(t, result.IsError)

	var payload struct {
		Results []struct {
			Score      float64 `json:"score"`
			SourcePath string  `json:"source_path"`
			Text       string  `json:"text"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	require.Len(t, payload.Results, 1)
	assert.Equal(t, 0.87, payload.Results[0].Score)
	assert.Equal(t, "notes/setup.md", payload.Results[0].SourcePath)
	assert.Equal(t, "install with make", payload.Results[0].Text)

	assert.Equal(t, 5, stub.lastQuery.K())
}

func TestHandleSearch_TopKAndThreshold(t *testing.T) {
	stub := &stubSearcher{}
	srv := NewServer(stub, "/tmp/store", 5, nil)

	result := callSearch(t, srv, map[string]any{
		"query":     "anything",
		"top_k":     float64(3),
		"threshold": 0.8,
	})
	require.False(t, result.IsError)

	assert.Equal(t, 3, stub.lastQuery.K())
	threshold, ok := stub.lastQuery.Threshold()
	require.True(t, ok)
	assert.Equal(t, 0.8, threshold)
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	srv := NewServer(&stubSearcher{}, "/tmp/store", 5, nil)

	result := callSearch(t, srv, map[string]any{})
	assert.True(t, result.IsError)
}

func TestHandleSearch_SearchFailure(t *testing.T) {
	stub := &stubSearcher{err: errors.New("store corrupted")}
	srv := NewServer(stub, "/tmp/store", 5, nil)

	result := callSearch(t, srv, map[string]any{"query": "x"})
	assert.True(t, result.IsError)
}
