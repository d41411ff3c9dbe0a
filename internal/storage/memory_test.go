package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func docWithChunks(id string, contents ...string) *models.Document {
	chunks := make([]*models.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = &models.Chunk{
			ID:         fmt.Sprintf("%s_c%d", id, i),
			DocumentID: id,
			Content:    c,
			Index:      i,
		}
	}
	return &models.Document{ID: id, FileName: id + ".txt", Chunks: chunks}
}

func TestMemoryStore_CRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Add(ctx, docWithChunks("a", "alpha content")); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, docWithChunks("b", "beta content")); err != nil {
		t.Fatal(err)
	}

	if n, _ := store.Count(ctx); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	doc, err := store.GetByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if doc.FileName != "a.txt" {
		t.Errorf("file name = %s", doc.FileName)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("GetAll order unstable: %v, %v", all[0].ID, all[1].ID)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetByID(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_AddReplacesExisting(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Add(ctx, docWithChunks("a", "old text")); err != nil {
		t.Fatal(err)
	}
	if err := store.Add(ctx, docWithChunks("a", "new text")); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("count = %d, want 1 after replace", n)
	}
	doc, _ := store.GetByID(ctx, "a")
	if doc.Chunks[0].Content != "new text" {
		t.Errorf("content = %q, want replacement", doc.Chunks[0].Content)
	}
}

func TestMemoryStore_SearchRanksDistinctMatchesHigher(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Add(ctx, docWithChunks("both", "vacation policy for employees"))
	_ = store.Add(ctx, docWithChunks("one", "vacation vacation vacation"))
	_ = store.Add(ctx, docWithChunks("none", "carbonara recipe with pancetta"))

	hits, err := store.Search(ctx, "vacation policy", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Chunk.DocumentID != "both" {
		t.Errorf("top hit = %s, want the chunk matching both tokens", hits[0].Chunk.DocumentID)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %f, %f", hits[0].Score, hits[1].Score)
	}
}

func TestMemoryStore_SearchWholeWordsOnly(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Add(ctx, docWithChunks("sub", "the category listing"))
	_ = store.Add(ctx, docWithChunks("whole", "the cat sleeps"))

	hits, err := store.Search(ctx, "cat", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Chunk.DocumentID != "whole" {
		t.Errorf("whole-word search matched wrong chunks: %d hits", len(hits))
	}
}

func TestMemoryStore_SearchLimitAndEmptyQuery(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = store.Add(ctx, docWithChunks(fmt.Sprintf("d%d", i), "shared keyword here"))
	}

	hits, err := store.Search(ctx, "keyword", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Errorf("got %d hits, want limit 3", len(hits))
	}

	if hits, _ := store.Search(ctx, "  ", 3); hits != nil {
		t.Errorf("empty query should return nothing, got %d", len(hits))
	}
	if hits, _ := store.Search(ctx, "keyword", 0); hits != nil {
		t.Errorf("zero limit should return nothing, got %d", len(hits))
	}
}
