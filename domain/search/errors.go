package search

import "errors"

// Sentinel errors for ingest and search. All of them abort the current
// operation; per-file read failures are logged warnings instead and never
// surface here.
var (
	// ErrZeroVector indicates a chunk embedded to a zero-norm vector,
	// which cannot be L2-normalized.
	ErrZeroVector = errors.New("ragstore: embedding has zero norm")

	// ErrDimensionMismatch indicates a vector whose dimension differs from
	// the dimension fixed by the first vector of the store.
	ErrDimensionMismatch = errors.New("ragstore: embedding dimension mismatch")

	// ErrModelMismatch indicates the query embedding model differs from the
	// model recorded in the store manifest.
	ErrModelMismatch = errors.New("ragstore: embedding model mismatch")

	// ErrInvalidK indicates a non-positive result count was requested.
	ErrInvalidK = errors.New("ragstore: k must be a positive integer")

	// ErrStoreNotFound indicates the store directory or one of its files is
	// missing.
	ErrStoreNotFound = errors.New("ragstore: store not found")

	// ErrIngestLocked indicates another ingest holds the store's exclusive
	// lock.
	ErrIngestLocked = errors.New("ragstore: store is locked by another ingest")
)
