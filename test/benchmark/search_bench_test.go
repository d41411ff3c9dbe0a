package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/vector"
)

func BenchmarkChunkScorer(b *testing.B) {
	cfg := ranking.DefaultScoringConfig()
	analyzer := ranking.NewQueryAnalyzer(cfg)
	scorer := ranking.NewChunkScorer(cfg)
	analyzed := analyzer.Analyze("machine learning algorithms for anomaly detection")
	chunk := &models.Chunk{
		Content: "Machine learning algorithms learn patterns from data. Anomaly detection flags unusual behavior: 1. spikes 2. drops 3. drift.",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = scorer.Score(chunk, "ml-handbook.md", analyzed)
	}
}

func BenchmarkAggregator(b *testing.B) {
	cfg := ranking.DefaultScoringConfig()
	analyzer := ranking.NewQueryAnalyzer(cfg)
	aggregator := ranking.NewAggregator(cfg)
	analyzed := analyzer.Analyze("incident escalation steps")

	scored := make([]*ranking.ScoredChunk, 200)
	for i := range scored {
		scored[i] = &ranking.ScoredChunk{
			Chunk: &models.Chunk{
				DocumentID: fmt.Sprintf("doc-%d", i%20),
				Content:    "The incident response runbook lists escalation steps for on-call engineers.",
				Index:      i % 10,
			},
			Score: float64(200 - i),
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = aggregator.ScoreDocuments(scored, analyzed)
	}
}

func BenchmarkVectorIndexSearch(b *testing.B) {
	idx, _ := vector.NewIndex(384)
	ctx := context.Background()
	ids := make([]string, 1000)
	vecs := make([][]float32, 1000)
	for i := 0; i < 1000; i++ {
		vecs[i] = make([]float32, 384)
		vecs[i][0] = float32(i) / 1000
		ids[i] = fmt.Sprintf("chunk-%d", i)
	}
	_ = idx.Add(ctx, ids, vecs)
	query := make([]float32, 384)
	query[0] = 1.0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = idx.Search(ctx, query, 10)
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := provider.NewMockEmbedder(384)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "benchmark query text for embedding")
	}
}
