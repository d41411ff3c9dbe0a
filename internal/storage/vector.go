package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/pkg/utils"
)

// VectorStore is a document repository whose Search runs cosine-similarity
// retrieval over chunk embeddings. Scores from this backend fall in the
// vector regime (roughly [0,1]).
type VectorStore struct {
	index    *vector.Index
	embedder provider.Embedder
	docs     map[string]*models.Document
	chunks   map[string]*models.Chunk
	mu       sync.RWMutex
}

// NewVectorStore creates a vector-backed store using the given embedder for
// both ingestion and query embedding.
func NewVectorStore(embedder provider.Embedder) (*VectorStore, error) {
	index, err := vector.NewIndex(embedder.Dimensions())
	if err != nil {
		return nil, err
	}
	return &VectorStore{
		index:    index,
		embedder: embedder,
		docs:     make(map[string]*models.Document),
		chunks:   make(map[string]*models.Chunk),
	}, nil
}

// Name identifies the backend.
func (v *VectorStore) Name() string { return "vector" }

// Add stores a document, embedding any chunk that does not already carry an
// embedding, and indexes all chunk vectors.
func (v *VectorStore) Add(ctx context.Context, doc *models.Document) error {
	ids := make([]string, 0, len(doc.Chunks))
	vectors := make([][]float32, 0, len(doc.Chunks))
	for _, chunk := range doc.Chunks {
		emb := chunk.Embedding
		if emb == nil {
			computed, err := v.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embed chunk %s: %w", chunk.ID, err)
			}
			utils.NormalizeL2(computed)
			chunk.Embedding = computed
			emb = computed
		}
		ids = append(ids, chunk.ID)
		vectors = append(vectors, emb)
	}
	if err := v.index.Add(ctx, ids, vectors); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs[doc.ID] = doc
	for _, chunk := range doc.Chunks {
		v.chunks[chunk.ID] = chunk
	}
	return nil
}

// GetAll returns every stored document.
func (v *VectorStore) GetAll(ctx context.Context) ([]*models.Document, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	docs := make([]*models.Document, 0, len(v.docs))
	for _, d := range v.docs {
		docs = append(docs, d)
	}
	return docs, nil
}

// GetByID returns one document, or ErrNotFound.
func (v *VectorStore) GetByID(ctx context.Context, id string) (*models.Document, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	doc, ok := v.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Search embeds the query and returns the most similar chunks.
func (v *VectorStore) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	if limit <= 0 {
		return nil, nil
	}
	queryEmb, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	utils.NormalizeL2(queryEmb)
	results, err := v.index.Search(ctx, queryEmb, limit)
	if err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	hits := make([]*SearchHit, 0, len(results))
	for _, r := range results {
		chunk, ok := v.chunks[r.ID]
		if !ok {
			continue
		}
		hits = append(hits, &SearchHit{Chunk: chunk, Score: r.Score})
	}
	return hits, nil
}

// Delete removes a document and its chunk vectors.
func (v *VectorStore) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	doc, ok := v.docs[id]
	if !ok {
		v.mu.Unlock()
		return ErrNotFound
	}
	ids := make([]string, 0, len(doc.Chunks))
	for _, chunk := range doc.Chunks {
		ids = append(ids, chunk.ID)
		delete(v.chunks, chunk.ID)
	}
	delete(v.docs, id)
	v.mu.Unlock()
	return v.index.Remove(ctx, ids)
}

// Count returns the number of stored documents.
func (v *VectorStore) Count(ctx context.Context) (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs), nil
}

// Close is a no-op; the embedder is owned by the caller.
func (v *VectorStore) Close() error { return nil }
