package search

// Result is one ranked search hit joined with its chunk metadata.
type Result struct {
	score      float64
	ordinal    int
	sourcePath string
	chunkIndex int
	start      int
	end        int
	text       string
}

// NewResult creates a new Result.
func NewResult(score float64, ordinal int, sourcePath string, chunkIndex, start, end int, text string) Result {
	return Result{
		score:      score,
		ordinal:    ordinal,
		sourcePath: sourcePath,
		chunkIndex: chunkIndex,
		start:      start,
		end:        end,
		text:       text,
	}
}

// Score returns the inner-product similarity of the hit.
func (r Result) Score() float64 { return r.score }

// Ordinal returns the hit's row position in the store.
func (r Result) Ordinal() int { return r.ordinal }

// SourcePath returns the path of the source document.
func (r Result) SourcePath() string { return r.sourcePath }

// ChunkIndex returns the chunk's position within its source document.
func (r Result) ChunkIndex() int { return r.chunkIndex }

// Start returns the inclusive character offset of the chunk.
func (r Result) Start() int { return r.start }

// End returns the exclusive character offset of the chunk.
func (r Result) End() int { return r.end }

// Text returns the chunk text.
func (r Result) Text() string { return r.text }
