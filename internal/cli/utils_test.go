package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/kotae/internal/models"
)

func TestWriteAnswer_JSON(t *testing.T) {
	response := &models.RagResponse{
		Query:  "what is the vacation policy",
		Answer: "Employees get 25 days.",
		Sources: []*models.SearchSource{
			{DocumentID: "doc-1", FileName: "handbook.txt", Snippet: "25 days of vacation"},
		},
		Strategy:   "document_only",
		SessionID:  "sess-1",
		SearchedAt: time.Now(),
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteAnswer(json): %v", err)
	}
	var decoded models.RagResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Answer != response.Answer || decoded.Strategy != response.Strategy {
		t.Errorf("decoded answer=%q strategy=%q", decoded.Answer, decoded.Strategy)
	}
	if len(decoded.Sources) != 1 || decoded.Sources[0].DocumentID != "doc-1" {
		t.Errorf("decoded sources: %+v", decoded.Sources)
	}
}

func TestWriteAnswer_text(t *testing.T) {
	response := &models.RagResponse{
		Query:  "q",
		Answer: "The answer.",
		Sources: []*models.SearchSource{
			{DocumentID: "doc-1", FileName: "notes.md", Snippet: "evidence text"},
			{DocumentID: "doc-2"},
		},
		Strategy:  "hybrid",
		SessionID: "sess-2",
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, response, OutputText); err != nil {
		t.Fatalf("WriteAnswer(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"The answer.", "Sources:", "notes.md", "doc-2", "evidence text", "Strategy: hybrid", "sess-2"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteAnswer_unknownFormatTreatedAsText(t *testing.T) {
	response := &models.RagResponse{Answer: "plain"}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, response, OutputFormat("unknown")); err != nil {
		t.Fatalf("WriteAnswer(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "plain") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestWriteChunks_JSON(t *testing.T) {
	chunks := []*models.Chunk{
		{ID: "c1", DocumentID: "doc-1", Content: "first chunk", Index: 0},
		{ID: "c2", DocumentID: "doc-1", Content: "second chunk", Index: 1},
	}
	var buf bytes.Buffer
	if err := WriteChunks(&buf, "query", chunks, OutputJSON); err != nil {
		t.Fatalf("WriteChunks(json): %v", err)
	}
	var decoded struct {
		Query  string          `json:"query"`
		Chunks []*models.Chunk `json:"chunks"`
		Count  int             `json:"count"`
	}
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 2 || len(decoded.Chunks) != 2 {
		t.Errorf("decoded count=%d chunks=%d", decoded.Count, len(decoded.Chunks))
	}
}

func TestWriteChunks_text(t *testing.T) {
	chunks := []*models.Chunk{
		{ID: "c1", DocumentID: "doc-9", Content: "chunk body text", Index: 3},
	}
	var buf bytes.Buffer
	if err := WriteChunks(&buf, "needle", chunks, OutputText); err != nil {
		t.Fatalf("WriteChunks(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 1 chunks", "needle", "doc-9", "Chunk: 3", "chunk body text"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}
