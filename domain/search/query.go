// Package search defines the domain contracts for vector similarity
// search: the embedding boundary, queries, ranked results, and the
// sentinel errors shared by ingest and search.
package search

// Query is one search request against a persisted store.
type Query struct {
	text      string
	k         int
	threshold float64
	useThresh bool
}

// NewQuery creates a new Query for the top k results.
func NewQuery(text string, k int) Query {
	return Query{text: text, k: k}
}

// WithThreshold returns a copy of the query that drops results scoring
// below min.
func (q Query) WithThreshold(min float64) Query {
	q.threshold = min
	q.useThresh = true
	return q
}

// Text returns the query text.
func (q Query) Text() string { return q.text }

// K returns the requested number of results.
func (q Query) K() int { return q.k }

// Threshold returns the minimum score and whether one was set.
func (q Query) Threshold() (float64, bool) { return q.threshold, q.useThresh }
