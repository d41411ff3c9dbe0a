// Package storage defines the document repository interface and its
// reference implementations. The engine reads documents and chunks; all
// mutation happens through ingestion, so no locking discipline is required
// on the read path beyond what each implementation provides.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/kotae/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// SearchHit is a backend-scored chunk candidate. Score semantics are
// backend-specific and treated as opaque by callers: cosine similarity
// backends emit scores in roughly [0,1], text-search backends emit larger
// relevance values. Callers adapt through threshold heuristics only.
type SearchHit struct {
	Chunk *models.Chunk
	Score float64
}

// Storage is the document repository collaborator contract.
type Storage interface {
	// Add stores a document with its chunks.
	Add(ctx context.Context, doc *models.Document) error
	// GetAll returns every stored document.
	GetAll(ctx context.Context) ([]*models.Document, error)
	// GetByID returns one document, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)
	// Search returns up to limit chunk candidates for the query using the
	// backend's own retrieval (vector similarity, BM25, or scan).
	Search(ctx context.Context, query string, limit int) ([]*SearchHit, error)
	// Delete removes a document and its chunks.
	Delete(ctx context.Context, id string) error
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
	// Name identifies the backend for response configuration echoes.
	Name() string

	Close() error
}
