// Package corpus defines the domain types for source documents and the
// chunks cut from them during ingest.
package corpus

// Document is one source file read from the corpus. It is immutable once
// read; the text is the file's decoded UTF-8 content.
type Document struct {
	path string
	text string
}

// NewDocument creates a new Document.
func NewDocument(path, text string) Document {
	return Document{path: path, text: text}
}

// Path returns the document's path relative to the corpus root.
func (d Document) Path() string { return d.path }

// Text returns the document's raw text.
func (d Document) Text() string { return d.text }

// Chunk is a bounded span of a document, the unit that gets embedded and
// indexed. Offsets are a half-open character range [Start, End) into the
// source document, and Ordinal is unique per document.
type Chunk struct {
	sourcePath string
	ordinal    int
	start      int
	end        int
	text       string
}

// NewChunk creates a new Chunk.
func NewChunk(sourcePath string, ordinal, start, end int, text string) Chunk {
	return Chunk{
		sourcePath: sourcePath,
		ordinal:    ordinal,
		start:      start,
		end:        end,
		text:       text,
	}
}

// SourcePath returns the path of the document this chunk was cut from.
func (c Chunk) SourcePath() string { return c.sourcePath }

// Ordinal returns the chunk's position within its document.
func (c Chunk) Ordinal() int { return c.ordinal }

// Start returns the inclusive character offset where the chunk begins.
func (c Chunk) Start() int { return c.start }

// End returns the exclusive character offset where the chunk ends.
func (c Chunk) End() int { return c.end }

// Text returns the chunk text.
func (c Chunk) Text() string { return c.text }
