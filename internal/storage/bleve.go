package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/hyperjump/kotae/internal/models"
)

// chunkEntry is the shape indexed into Bleve per chunk.
type chunkEntry struct {
	Content  string `json:"content"`
	FileName string `json:"file_name"`
}

// BleveStore is a document repository whose Search runs BM25 retrieval over
// chunks through a Bleve index. Relevance scores from this backend sit in
// the lexical regime (typically above 1, often well above 3 for strong
// matches), unlike cosine-similarity backends.
type BleveStore struct {
	index  bleve.Index
	docs   map[string]*models.Document
	chunks map[string]*models.Chunk
	mu     sync.RWMutex
}

// NewBleveStore creates a chunk-level Bleve-backed store. When path is empty
// the index lives in memory; otherwise an existing index at path is opened
// and reused.
func NewBleveStore(path string) (*BleveStore, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	contentMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so exact query
	// words match exact indexed words.
	contentMapping.Analyzer = standard.Name
	fileNameMapping := bleve.NewTextFieldMapping()
	// The simple analyzer splits on non-letters, so "employee-handbook.txt"
	// indexes as separate terms and the bare word matches.
	fileNameMapping.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("content", contentMapping)
	docMapping.AddFieldMappingsAt("file_name", fileNameMapping)
	im.DefaultMapping = docMapping

	var index bleve.Index
	var err error
	switch {
	case path == "":
		index, err = bleve.NewMemOnly(im)
	default:
		if _, statErr := os.Stat(path); statErr == nil {
			index, err = bleve.Open(path)
		} else {
			index, err = bleve.New(path, im)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &BleveStore{
		index:  index,
		docs:   make(map[string]*models.Document),
		chunks: make(map[string]*models.Chunk),
	}, nil
}

// Name identifies the backend.
func (b *BleveStore) Name() string { return "bleve" }

// Add stores a document and indexes each of its chunks.
func (b *BleveStore) Add(ctx context.Context, doc *models.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.index.NewBatch()
	for _, chunk := range doc.Chunks {
		if err := batch.Index(chunk.ID, &chunkEntry{Content: chunk.Content, FileName: doc.FileName}); err != nil {
			return fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
		b.chunks[chunk.ID] = chunk
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}
	b.docs[doc.ID] = doc
	return nil
}

// GetAll returns every stored document.
func (b *BleveStore) GetAll(ctx context.Context) ([]*models.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	docs := make([]*models.Document, 0, len(b.docs))
	for _, d := range b.docs {
		docs = append(docs, d)
	}
	return docs, nil
}

// GetByID returns one document, or ErrNotFound.
func (b *BleveStore) GetByID(ctx context.Context, id string) (*models.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Search runs a match query over chunk content and file names.
func (b *BleveStore) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := bleve.NewMatchQuery(query)
	request := bleve.NewSearchRequest(q)
	request.Size = limit
	results, err := b.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	hits := make([]*SearchHit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		chunk, ok := b.chunks[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, &SearchHit{Chunk: chunk, Score: hit.Score})
	}
	return hits, nil
}

// Delete removes a document and unindexes its chunks.
func (b *BleveStore) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.docs[id]
	if !ok {
		return ErrNotFound
	}
	batch := b.index.NewBatch()
	for _, chunk := range doc.Chunks {
		batch.Delete(chunk.ID)
		delete(b.chunks, chunk.ID)
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	delete(b.docs, id)
	return nil
}

// Count returns the number of stored documents.
func (b *BleveStore) Count(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.docs), nil
}

// Close releases the underlying index.
func (b *BleveStore) Close() error {
	return b.index.Close()
}
