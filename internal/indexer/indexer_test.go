package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/storage"
	"go.uber.org/zap"
)

func TestIndex_StoresChunkedDocument(t *testing.T) {
	store := storage.NewMemoryStore()
	idx := NewIndexer(NewChunker(100, 10, 0), store, nil, zap.NewNop())
	ctx := context.Background()

	doc, err := idx.Index(ctx, &models.DocumentInput{
		ID:       "doc-1",
		FileName: "guide.txt",
		Content:  "First sentence of the guide. Second sentence with more detail. Third sentence wraps it all up nicely for the reader.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "doc-1" {
		t.Errorf("document id = %s, want doc-1", doc.ID)
	}
	if len(doc.Chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for _, ch := range doc.Chunks {
		if ch.Source != models.SourceDocument {
			t.Errorf("chunk source = %s, want document default", ch.Source)
		}
	}

	stored, err := store.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.FileName != "guide.txt" {
		t.Errorf("stored file name = %s", stored.FileName)
	}
}

func TestIndex_EmptyContent(t *testing.T) {
	idx := NewIndexer(NewChunker(100, 10, 0), storage.NewMemoryStore(), nil, zap.NewNop())
	_, err := idx.Index(context.Background(), &models.DocumentInput{FileName: "empty.txt", Content: "  \n "})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
}

func TestIndex_GeneratesIDWhenMissing(t *testing.T) {
	store := storage.NewMemoryStore()
	idx := NewIndexer(NewChunker(100, 10, 0), store, nil, zap.NewNop())

	doc, err := idx.Index(context.Background(), &models.DocumentInput{
		FileName: "anon.txt",
		Content:  "Content without an explicit document id.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID == "" {
		t.Fatal("expected a generated document id")
	}
	for _, ch := range doc.Chunks {
		if ch.DocumentID != doc.ID {
			t.Errorf("chunk document id %s != %s", ch.DocumentID, doc.ID)
		}
	}
}

func TestIndex_KeepsExplicitSource(t *testing.T) {
	idx := NewIndexer(NewChunker(100, 10, 0), storage.NewMemoryStore(), nil, zap.NewNop())
	doc, err := idx.Index(context.Background(), &models.DocumentInput{
		FileName: "meeting.wav",
		Content:  "Transcribed meeting notes about the release plan.",
		Source:   models.SourceAudio,
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Chunks[0].Source != models.SourceAudio {
		t.Errorf("chunk source = %s, want audio", doc.Chunks[0].Source)
	}
}

func TestIndex_EmbedsChunks(t *testing.T) {
	embedder := provider.NewMockEmbedder(64)
	idx := NewIndexer(NewChunker(100, 10, 0), storage.NewMemoryStore(), embedder, zap.NewNop())

	doc, err := idx.Index(context.Background(), &models.DocumentInput{
		ID:       "doc-e",
		FileName: "embedded.txt",
		Content:  "Short content that fits in one chunk.",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range doc.Chunks {
		if len(ch.Embedding) != 64 {
			t.Errorf("embedding dimensions = %d, want 64", len(ch.Embedding))
		}
	}
}

func TestRemove(t *testing.T) {
	store := storage.NewMemoryStore()
	idx := NewIndexer(NewChunker(100, 10, 0), store, nil, zap.NewNop())
	ctx := context.Background()

	if _, err := idx.Index(ctx, &models.DocumentInput{ID: "doc-r", FileName: "r.txt", Content: "To be removed."}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Remove(ctx, "doc-r"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetByID(ctx, "doc-r"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := idx.Remove(ctx, "doc-r"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
}
