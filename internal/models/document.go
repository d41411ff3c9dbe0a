// Package models defines core data structures for documents, chunks, queries, and responses.
package models

import "time"

// SourceType tags where a chunk's text originated, used for source filtering.
type SourceType string

const (
	// SourceDocument is text extracted from a regular document.
	SourceDocument SourceType = "document"
	// SourceAudio is text transcribed from audio.
	SourceAudio SourceType = "audio"
	// SourceImage is text recovered by OCR from an image.
	SourceImage SourceType = "image"
)

// Document is an immutable record created by the parsing collaborator at
// ingestion time. The engine treats it as read-only input.
type Document struct {
	ID          string                 `json:"id"`
	FileName    string                 `json:"file_name"`
	ContentType string                 `json:"content_type"`
	Content     string                 `json:"content"`
	Chunks      []*Chunk               `json:"chunks"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	UploadedBy  string                 `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Chunk is the atomic unit of retrieval: a bounded contiguous span of a
// document's text. Chunk index 0 is treated as a probable header/title chunk.
// Offsets are monotonically non-decreasing across a document's chunk
// sequence; chunks overlap only by the configured overlap amount.
//
// Chunks carry no per-query score. Relevance is scratch state computed per
// query and returned alongside the chunk (see ranking.ScoredChunk), so
// concurrent queries never share mutable state.
type Chunk struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"document_id"`
	Content    string     `json:"content"`
	Index      int        `json:"index"`
	StartChar  int        `json:"start_char"`
	EndChar    int        `json:"end_char"`
	Embedding  []float32  `json:"-"`
	Source     SourceType `json:"source,omitempty"`
}

// DocumentInput is the input for ingesting a document whose text has already
// been extracted by the parsing collaborator.
type DocumentInput struct {
	ID          string                 `json:"id,omitempty"`
	FileName    string                 `json:"file_name"`
	ContentType string                 `json:"content_type,omitempty"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	UploadedBy  string                 `json:"uploaded_by,omitempty"`
	Source      SourceType             `json:"source,omitempty"`
}
