package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
)

// MemoryStore is an in-memory document repository with brute-force lexical
// retrieval. Suitable for tests and small corpora.
type MemoryStore struct {
	docs map[string]*models.Document
	mu   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*models.Document)}
}

// Name identifies the backend.
func (m *MemoryStore) Name() string { return "memory" }

// Add stores a document, replacing any existing document with the same ID.
func (m *MemoryStore) Add(ctx context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

// GetAll returns every stored document.
func (m *MemoryStore) GetAll(ctx context.Context) ([]*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]*models.Document, 0, len(m.docs))
	for _, d := range m.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// GetByID returns one document, or ErrNotFound.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Search scans every chunk and scores it by whole-word query token
// occurrences, weighted toward chunks matching more distinct tokens.
func (m *MemoryStore) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	tokens := ranking.Tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []*SearchHit
	for _, doc := range m.docs {
		for _, chunk := range doc.Chunks {
			text := strings.ToLower(chunk.Content)
			score := 0.0
			distinct := 0
			for _, tok := range tokens {
				if n := ranking.CountWholeWord(text, tok); n > 0 {
					distinct++
					score += float64(n)
				}
			}
			if distinct == 0 {
				continue
			}
			score += float64(distinct * distinct)
			hits = append(hits, &SearchHit{Chunk: chunk, Score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Delete removes a document.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// Count returns the number of stored documents.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error { return nil }
