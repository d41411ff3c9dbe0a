// Package search provides document retrieval: candidate fetch, lexical
// rescoring, document relevance aggregation, context expansion, and the
// early-exit source-selection heuristic.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/storage"
	"go.uber.org/zap"
)

// SearcherConfig holds retrieval-width settings.
type SearcherConfig struct {
	// TopKCandidates is how many backend candidates to fetch before
	// rescoring.
	TopKCandidates int `yaml:"top_k_candidates"` // default: 100
	// ComprehensiveMultiplier scales the seed width for comprehensive
	// queries.
	ComprehensiveMultiplier int `yaml:"comprehensive_multiplier"` // default: 3
	// EarlyExitEnabled gates the source-selection heuristic.
	EarlyExitEnabled bool `yaml:"early_exit_enabled"` // default: true
}

// DefaultSearcherConfig returns the default retrieval settings.
func DefaultSearcherConfig() *SearcherConfig {
	return &SearcherConfig{
		TopKCandidates:          100,
		ComprehensiveMultiplier: 3,
		EarlyExitEnabled:        true,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *SearcherConfig) ApplyDefaults() {
	d := DefaultSearcherConfig()
	if c.TopKCandidates == 0 {
		c.TopKCandidates = d.TopKCandidates
	}
	if c.ComprehensiveMultiplier == 0 {
		c.ComprehensiveMultiplier = d.ComprehensiveMultiplier
	}
}

// Result is the outcome of one document retrieval: the ranked, expanded
// chunk pool plus the signals the orchestrator needs for strategy selection.
type Result struct {
	// Chunks is the final candidate pool, sorted descending by score.
	Chunks []*ranking.ScoredChunk
	// Query is the analyzed form of the query.
	Query *ranking.AnalyzedQuery
	// DocumentScores are the aggregate document relevances, sorted
	// descending.
	DocumentScores []*ranking.DocumentScore
	// Exit is the early-exit decision over the scored distribution.
	Exit ExitDecision
}

// HasMatch reports whether retrieval found anything usable.
func (r *Result) HasMatch() bool {
	return r != nil && len(r.Chunks) > 0 && r.Chunks[0].Score > 0
}

// Searcher runs the document retrieval pipeline. It holds no per-query
// state and is safe for concurrent use.
type Searcher struct {
	config     *SearcherConfig
	store      storage.Storage
	analyzer   *ranking.QueryAnalyzer
	scorer     *ranking.ChunkScorer
	aggregator *ranking.Aggregator
	expander   *Expander
	earlyExit  *EarlyExit
	logger     *zap.Logger
}

// NewSearcher creates a Searcher over store with the given configs.
func NewSearcher(cfg *SearcherConfig, scoring *ranking.ScoringConfig, expansion *ExpanderConfig, store storage.Storage, logger *zap.Logger) *Searcher {
	if cfg == nil {
		cfg = DefaultSearcherConfig()
	}
	cfg.ApplyDefaults()
	if scoring == nil {
		scoring = ranking.DefaultScoringConfig()
	}
	scoring.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		config:     cfg,
		store:      store,
		analyzer:   ranking.NewQueryAnalyzer(scoring),
		scorer:     ranking.NewChunkScorer(scoring),
		aggregator: ranking.NewAggregator(scoring),
		expander:   NewExpander(expansion, store),
		earlyExit:  NewEarlyExit(scoring, cfg.EarlyExitEnabled),
		logger:     logger,
	}
}

// Search retrieves, rescores, aggregates, boosts, and expands chunks for
// the query. limit is the seed width; comprehensive queries widen it by the
// configured multiplier and use the wide expansion window.
func (s *Searcher) Search(ctx context.Context, query string, limit int, opts *models.SearchOptions) (*Result, error) {
	if opts == nil {
		opts = models.DefaultSearchOptions()
	}
	analyzed := s.analyzer.Analyze(query)

	candidates, fileNames, err := s.fetchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := make([]*ranking.ScoredChunk, 0, len(candidates))
	for _, chunk := range candidates {
		if !opts.AllowsSource(chunk.Source) {
			continue
		}
		scored = append(scored, &ranking.ScoredChunk{
			Chunk: chunk,
			Score: s.scorer.Score(chunk, fileNames[chunk.DocumentID], analyzed),
		})
	}

	docScores := s.aggregator.ScoreDocuments(scored, analyzed)
	relevant := s.aggregator.RelevantDocuments(docScores)
	boosted := s.aggregator.BoostRelevant(scored, relevant)
	sort.SliceStable(boosted, func(i, j int) bool { return boosted[i].Score > boosted[j].Score })

	width := limit
	if analyzed.Comprehensive {
		width *= s.config.ComprehensiveMultiplier
	}
	if width > len(boosted) {
		width = len(boosted)
	}
	seeds := boosted[:width]

	expanded := s.expander.Expand(ctx, seeds, analyzed, s.expander.Window(analyzed.Comprehensive), opts)
	sort.SliceStable(expanded, func(i, j int) bool { return expanded[i].Score > expanded[j].Score })

	exit := s.earlyExit.Decide(expanded, len(scored) > 0)
	s.logger.Debug("document search complete",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Int("pool", len(expanded)),
		zap.Bool("comprehensive", analyzed.Comprehensive),
		zap.Bool("early_exit", exit.Skip),
	)

	return &Result{
		Chunks:         expanded,
		Query:          analyzed,
		DocumentScores: docScores,
		Exit:           exit,
	}, nil
}

// BuildContext assembles the bounded evidence text for the chunk pool.
func (s *Searcher) BuildContext(chunks []*ranking.ScoredChunk) string {
	return s.expander.BuildContext(chunks)
}

// fetchCandidates asks the backend for its top candidates and falls back to
// a full scan when backend retrieval fails or returns nothing. File names
// are resolved per document so they can contribute to chunk scores.
func (s *Searcher) fetchCandidates(ctx context.Context, query string) ([]*models.Chunk, map[string]string, error) {
	hits, err := s.store.Search(ctx, query, s.config.TopKCandidates)
	if err != nil {
		s.logger.Warn("backend search failed, falling back to scan", zap.Error(err))
	}
	if len(hits) > 0 {
		chunks := make([]*models.Chunk, len(hits))
		for i, h := range hits {
			chunks[i] = h.Chunk
		}
		names, err := s.resolveFileNames(ctx, chunks)
		if err != nil {
			return nil, nil, err
		}
		return chunks, names, nil
	}

	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("scan documents: %w", err)
	}
	var chunks []*models.Chunk
	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		names[doc.ID] = doc.FileName
		chunks = append(chunks, doc.Chunks...)
	}
	return chunks, names, nil
}

func (s *Searcher) resolveFileNames(ctx context.Context, chunks []*models.Chunk) (map[string]string, error) {
	names := make(map[string]string)
	for _, chunk := range chunks {
		if _, ok := names[chunk.DocumentID]; ok {
			continue
		}
		doc, err := s.store.GetByID(ctx, chunk.DocumentID)
		if err != nil {
			// Orphaned chunk: score without a file name.
			names[chunk.DocumentID] = ""
			continue
		}
		names[chunk.DocumentID] = doc.FileName
	}
	return names, nil
}
