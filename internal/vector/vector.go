// Package vector provides an in-memory vector index with brute-force
// cosine similarity search.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Result is a single vector search hit. Score is cosine similarity for
// normalized vectors, so it falls in roughly [0,1] for natural text.
type Result struct {
	ID    string
	Score float64
}

// Index stores normalized vectors by ID and searches them by inner product.
type Index struct {
	dimensions int
	ids        []string
	vectors    [][]float32
	mu         sync.RWMutex
}

// NewIndex creates an index for vectors of the given dimension.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Index{dimensions: dimensions}, nil
}

// Add appends vectors with the given IDs.
func (ix *Index) Add(ctx context.Context, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i, id := range ids {
		if len(vectors[i]) != ix.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(vectors[i]), ix.dimensions)
		}
		vec := make([]float32, ix.dimensions)
		copy(vec, vectors[i])
		ix.ids = append(ix.ids, id)
		ix.vectors = append(ix.vectors, vec)
	}
	return nil
}

// Search returns the top-k vectors by inner product (cosine similarity for
// normalized vectors).
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]*Result, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), ix.dimensions)
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if k <= 0 || len(ix.ids) == 0 {
		return nil, nil
	}
	scores := make([]*Result, len(ix.ids))
	for i, vec := range ix.vectors {
		var dot float64
		for j := 0; j < ix.dimensions; j++ {
			dot += float64(query[j] * vec[j])
		}
		scores[i] = &Result{ID: ix.ids[i], Score: dot}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k], nil
}

// Remove removes vectors by ID.
func (ix *Index) Remove(ctx context.Context, ids []string) error {
	removeSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		removeSet[id] = true
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	newIDs := ix.ids[:0]
	newVectors := ix.vectors[:0]
	for i, id := range ix.ids {
		if !removeSet[id] {
			newIDs = append(newIDs, id)
			newVectors = append(newVectors, ix.vectors[i])
		}
	}
	ix.ids = newIDs
	ix.vectors = newVectors
	return nil
}

// Size returns the number of stored vectors.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.ids)
}
