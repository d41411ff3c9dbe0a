package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/kotae/internal/provider"
)

func TestVectorStore_SearchReturnsNearestChunks(t *testing.T) {
	store, err := NewVectorStore(provider.NewMockEmbedder(64))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()

	_ = store.Add(ctx, docWithChunks("a", "vacation policy for employees"))
	_ = store.Add(ctx, docWithChunks("b", "deployment pipeline configuration"))

	hits, err := store.Search(ctx, "vacation policy for employees", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	// The embedder is deterministic, so the identical text is the top hit
	// with similarity 1 up to rounding.
	if hits[0].Chunk.DocumentID != "a" {
		t.Errorf("top hit = %s, want a", hits[0].Chunk.DocumentID)
	}
	if hits[0].Score < 0.99 {
		t.Errorf("identical text similarity = %f, want close to 1", hits[0].Score)
	}
	if hits[0].Score < hits[1].Score {
		t.Errorf("scores not descending: %f, %f", hits[0].Score, hits[1].Score)
	}
}

func TestVectorStore_AddEmbedsMissingEmbeddings(t *testing.T) {
	store, err := NewVectorStore(provider.NewMockEmbedder(32))
	if err != nil {
		t.Fatal(err)
	}
	doc := docWithChunks("a", "content without a precomputed embedding")
	if err := store.Add(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Chunks[0].Embedding) != 32 {
		t.Errorf("embedding dimensions = %d, want 32", len(doc.Chunks[0].Embedding))
	}
}

func TestVectorStore_DeleteRemovesVectors(t *testing.T) {
	store, err := NewVectorStore(provider.NewMockEmbedder(32))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = store.Add(ctx, docWithChunks("a", "ephemeral content"))
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	hits, err := store.Search(ctx, "ephemeral content", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("deleted vectors still searchable: %d hits", len(hits))
	}
	if err := store.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
