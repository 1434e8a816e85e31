// Package chunking provides fixed-size sliding-window text chunking with
// overlap for RAG indexing.
package chunking

import (
	"fmt"
	"iter"
)

// Default window parameters, sized for prose retrieval.
const (
	DefaultSize    = 900
	DefaultOverlap = 150
)

// Span is one window cut from a document. Start and End are a half-open
// character (rune) range [Start, End) into the source text, so every span
// can be traced back to the exact text it was cut from.
type Span struct {
	start int
	end   int
	text  string
}

// Start returns the inclusive character offset where the span begins.
func (s Span) Start() int { return s.start }

// End returns the exclusive character offset where the span ends.
func (s Span) End() int { return s.end }

// Text returns the span text.
func (s Span) Text() string { return s.text }

// Window splits text into fixed-size spans with overlap. Size and Overlap
// are measured in runes. Adjacent spans share Overlap runes of text; the
// duplication is a deliberate retrieval-redundancy trade-off and duplicate
// near-hits in search results are not deduplicated.
type Window struct {
	size    int
	overlap int
}

// NewWindow creates a Window. Overlap must be smaller than size so the
// window always advances.
func NewWindow(size, overlap int) (Window, error) {
	if size <= 0 {
		return Window{}, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return Window{}, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return Window{}, fmt.Errorf("overlap (%d) must be less than size (%d)", overlap, size)
	}
	return Window{size: size, overlap: overlap}, nil
}

// DefaultWindow returns a Window with the default size and overlap.
func DefaultWindow() Window {
	w, err := NewWindow(DefaultSize, DefaultOverlap)
	if err != nil {
		panic(err) // defaults are valid by construction
	}
	return w
}

// Size returns the window size in runes.
func (w Window) Size() int { return w.size }

// Overlap returns the overlap between adjacent spans in runes.
func (w Window) Overlap() int { return w.overlap }

// Spans returns a lazy, restartable sequence of spans covering text
// end-to-end with no gaps. A document shorter than one window yields
// exactly one span covering the whole document; empty text yields no
// spans. Iterating the sequence again restarts from the beginning.
func (w Window) Spans(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		runes := []rune(text)
		step := w.size - w.overlap
		for start := 0; start < len(runes); start += step {
			end := min(start+w.size, len(runes))
			span := Span{start: start, end: end, text: string(runes[start:end])}
			if !yield(span) {
				return
			}
			// The final window reaches the end of the text; stepping
			// further would only re-emit already-covered tail fragments.
			if end == len(runes) {
				return
			}
		}
	}
}
