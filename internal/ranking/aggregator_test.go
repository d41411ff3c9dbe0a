package ranking

import (
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func chunkOf(docID, content string) *ScoredChunk {
	return &ScoredChunk{Chunk: &models.Chunk{DocumentID: docID, Content: content}}
}

func TestScoreDocuments_CoverageBeatsFrequency(t *testing.T) {
	agg := NewAggregator(nil)
	query := NewQueryAnalyzer(nil).Analyze("alpha beta gamma")

	covered := chunkOf("doc-full", "alpha beta gamma together in one place")
	covered.Score = 5
	repeated := chunkOf("doc-spam", strings.Repeat("alpha ", 10))
	repeated.Score = 5

	scores := agg.ScoreDocuments([]*ScoredChunk{covered, repeated}, query)
	if len(scores) != 2 {
		t.Fatalf("got %d document scores, want 2", len(scores))
	}
	if scores[0].DocumentID != "doc-full" {
		t.Errorf("top document = %s, want doc-full", scores[0].DocumentID)
	}
	if scores[0].Coverage != 1.0 {
		t.Errorf("doc-full coverage = %f, want 1.0", scores[0].Coverage)
	}
	// beta and gamma appear only in doc-full.
	if scores[0].UniqueWords != 2 {
		t.Errorf("doc-full unique words = %d, want 2", scores[0].UniqueWords)
	}
}

func TestScoreDocuments_FullCoverageBeatsAdversarialFrequency(t *testing.T) {
	agg := NewAggregator(nil)
	query := NewQueryAnalyzer(nil).Analyze("alpha beta gamma")

	covered := chunkOf("doc-full", "alpha beta gamma together in one place")
	covered.Score = 5

	// A document stuffed with thousands of repetitions of a single query
	// word across many chunks must not outrank full coverage.
	pool := []*ScoredChunk{covered}
	for i := 0; i < 30; i++ {
		spam := chunkOf("doc-spam", strings.Repeat("alpha ", 150))
		spam.Chunk.Index = i
		spam.Score = 5
		pool = append(pool, spam)
	}

	scores := agg.ScoreDocuments(pool, query)
	if scores[0].DocumentID != "doc-full" {
		t.Errorf("top document = %s (final %f), full coverage must win over frequency (spam final %f)",
			scores[0].DocumentID, scores[0].Final, scores[1].Final)
	}
}

func TestScoreDocuments_OccurrenceContributionIsCapped(t *testing.T) {
	cfg := DefaultScoringConfig()
	agg := NewAggregator(cfg)
	query := NewQueryAnalyzer(nil).Analyze("alpha")

	sparse := chunkOf("sparse", "alpha appears once")
	dense := chunkOf("dense", strings.Repeat("alpha ", 500))

	scores := agg.ScoreDocuments([]*ScoredChunk{sparse, dense}, query)
	byID := map[string]*DocumentScore{}
	for _, ds := range scores {
		byID[ds.DocumentID] = ds
	}
	// Identical bases, coverage, and uniqueness: the gap is only the
	// occurrence term, which is bounded by the configured cap.
	gap := byID["dense"].Final - byID["sparse"].Final
	if gap > cfg.MaxOccurrenceBonus {
		t.Errorf("frequency gap = %f, must not exceed the occurrence cap %f", gap, cfg.MaxOccurrenceBonus)
	}
}

func TestScoreDocuments_BaseIsTopChunkAverage(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.TopChunksPerDocument = 2
	agg := NewAggregator(cfg)
	query := NewQueryAnalyzer(nil).Analyze("nothing matches here")

	chunks := []*ScoredChunk{
		{Chunk: &models.Chunk{DocumentID: "d", Content: "x"}, Score: 10},
		{Chunk: &models.Chunk{DocumentID: "d", Content: "x"}, Score: 6},
		{Chunk: &models.Chunk{DocumentID: "d", Content: "x"}, Score: 1},
	}
	scores := agg.ScoreDocuments(chunks, query)
	if len(scores) != 1 {
		t.Fatalf("got %d document scores, want 1", len(scores))
	}
	if scores[0].Base != 8 {
		t.Errorf("base = %f, want average of top two (8)", scores[0].Base)
	}
}

func TestScoreDocuments_SkipsNilChunks(t *testing.T) {
	agg := NewAggregator(nil)
	query := NewQueryAnalyzer(nil).Analyze("alpha")
	scores := agg.ScoreDocuments([]*ScoredChunk{{Score: 3}, chunkOf("d", "alpha")}, query)
	if len(scores) != 1 {
		t.Errorf("got %d document scores, want 1", len(scores))
	}
}

func TestRelevantDocuments(t *testing.T) {
	agg := NewAggregator(nil)
	tests := []struct {
		name   string
		scores []*DocumentScore
		want   []string
	}{
		{
			name:   "empty input",
			scores: nil,
			want:   nil,
		},
		{
			name:   "zero top score means nothing is relevant",
			scores: []*DocumentScore{{DocumentID: "a", Final: 0}},
			want:   nil,
		},
		{
			name: "close second is included",
			scores: []*DocumentScore{
				{DocumentID: "a", Final: 10},
				{DocumentID: "b", Final: 9},
			},
			want: []string{"a", "b"},
		},
		{
			name: "distant second is excluded",
			scores: []*DocumentScore{
				{DocumentID: "a", Final: 10},
				{DocumentID: "b", Final: 4},
			},
			want: []string{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.RelevantDocuments(tt.scores)
			if len(got) != len(tt.want) {
				t.Fatalf("relevant = %v, want %v", got, tt.want)
			}
			for _, id := range tt.want {
				if !got[id] {
					t.Errorf("expected %s to be relevant: %v", id, got)
				}
			}
		})
	}
}

func TestBoostRelevant(t *testing.T) {
	agg := NewAggregator(nil)
	in := []*ScoredChunk{
		{Chunk: &models.Chunk{DocumentID: "hot"}, Score: 4},
		{Chunk: &models.Chunk{DocumentID: "cold"}, Score: 4},
	}
	out := agg.BoostRelevant(in, map[string]bool{"hot": true})

	if out[0].Score != 4+DefaultScoringConfig().RelevantDocumentBoost {
		t.Errorf("boosted score = %f", out[0].Score)
	}
	if !out[0].FromRelevantDocument {
		t.Error("boosted chunk should be marked")
	}
	if out[1].Score != 4 || out[1].FromRelevantDocument {
		t.Errorf("unrelated chunk modified: %+v", out[1])
	}
	if in[0].Score != 4 || in[0].FromRelevantDocument {
		t.Error("input slice must not be mutated")
	}
}
