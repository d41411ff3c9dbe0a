package indexer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/storage"
	"go.uber.org/zap"
)

// ErrEmptyContent is returned when an ingested document has no text.
var ErrEmptyContent = errors.New("document content is empty")

// Indexer ingests extracted document text: chunking, optional embedding, and
// storage. The embedder is optional; without it chunks are stored unembedded
// and retrieval relies on the backend's own search.
type Indexer struct {
	chunker  *Chunker
	store    storage.Storage
	embedder provider.Embedder
	logger   *zap.Logger
}

// NewIndexer creates an Indexer. embedder may be nil.
func NewIndexer(chunker *Chunker, store storage.Storage, embedder provider.Embedder, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{chunker: chunker, store: store, embedder: embedder, logger: logger}
}

// Index chunks, embeds, and stores one document. The input text must already
// be extracted; parsing is the caller's concern.
func (i *Indexer) Index(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	chunks := i.chunker.Chunk(i.docID(input), input.Content)
	if len(chunks) == 0 {
		return nil, ErrEmptyContent
	}

	source := input.Source
	if source == "" {
		source = models.SourceDocument
	}
	for _, chunk := range chunks {
		chunk.Source = source
	}

	if i.embedder != nil {
		if err := i.embedChunks(ctx, chunks); err != nil {
			return nil, err
		}
	}

	doc := &models.Document{
		ID:          chunks[0].DocumentID,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Content:     input.Content,
		Chunks:      chunks,
		Metadata:    input.Metadata,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   time.Now(),
	}
	if err := i.store.Add(ctx, doc); err != nil {
		return nil, err
	}

	i.logger.Info("document indexed",
		zap.String("id", doc.ID),
		zap.String("file_name", doc.FileName),
		zap.Int("chunks", len(chunks)),
	)
	return doc, nil
}

// Remove deletes a document and its chunks.
func (i *Indexer) Remove(ctx context.Context, id string) error {
	return i.store.Delete(ctx, id)
}

func (i *Indexer) docID(input *models.DocumentInput) string {
	if input.ID != "" {
		return input.ID
	}
	return uuid.New().String()
}

func (i *Indexer) embedChunks(ctx context.Context, chunks []*models.Chunk) error {
	texts := make([]string, len(chunks))
	for n, chunk := range chunks {
		texts[n] = chunk.Content
	}
	embeddings, err := i.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(chunks) {
		return errors.New("embedding count mismatch")
	}
	for n, chunk := range chunks {
		chunk.Embedding = embeddings[n]
	}
	return nil
}
