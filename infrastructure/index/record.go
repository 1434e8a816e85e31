package index

import "github.com/corpuslabs/ragstore/domain/corpus"

// Record is the wire form of one chunk's metadata, serialized as one JSON
// line in meta.jsonl. Line N of the file corresponds to row N of the
// vector matrix; that ordinal alignment is the sole join key between the
// index and the metadata.
type Record struct {
	// ID is the record's ordinal position across the whole store.
	ID int `json:"id"`

	// SourcePath is the chunk's document path relative to the corpus root.
	SourcePath string `json:"source_path"`

	// ChunkOrdinal is the chunk's position within its source document.
	ChunkOrdinal int `json:"chunk_ordinal"`

	// OffsetStart and OffsetEnd are the half-open character range the
	// chunk was cut from.
	OffsetStart int `json:"offset_start"`
	OffsetEnd   int `json:"offset_end"`

	// Text is the chunk text.
	Text string `json:"text"`
}

// NewRecord creates a Record for the chunk at the given store ordinal.
func NewRecord(id int, chunk corpus.Chunk) Record {
	return Record{
		ID:           id,
		SourcePath:   chunk.SourcePath(),
		ChunkOrdinal: chunk.Ordinal(),
		OffsetStart:  chunk.Start(),
		OffsetEnd:    chunk.End(),
		Text:         chunk.Text(),
	}
}
