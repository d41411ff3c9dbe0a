// Package rag provides the query-orchestration engine: strategy selection
// over document and database backends, execution with a fallback chain, and
// hybrid answer merging.
package rag

import (
	"context"
	"sync"
	"time"

	"github.com/hyperjump/kotae/internal/conversation"
	"github.com/hyperjump/kotae/internal/database"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/prompt"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

// fallbackAnswer is returned when even the conversational safety net fails.
const fallbackAnswer = "I was unable to produce an answer for this question."

// snippetLength bounds the source attribution snippet.
const snippetLength = 200

// Config holds orchestration settings.
type Config struct {
	Strategy *StrategyConfig `yaml:"strategy"`
	// BackendTimeout bounds every collaborator call (database, generation,
	// storage search). A timeout is treated identically to a failure.
	BackendTimeout time.Duration `yaml:"backend_timeout"` // default: 30s
	// MaxSources bounds source attribution entries per response.
	MaxSources int `yaml:"max_sources"` // default: 5
}

// DefaultConfig returns the default orchestration settings.
func DefaultConfig() *Config {
	return &Config{
		Strategy:       DefaultStrategyConfig(),
		BackendTimeout: 30 * time.Second,
		MaxSources:     5,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Strategy == nil {
		c.Strategy = DefaultStrategyConfig()
	}
	c.Strategy.ApplyDefaults()
	if c.BackendTimeout == 0 {
		c.BackendTimeout = 30 * time.Second
	}
	if c.MaxSources == 0 {
		c.MaxSources = 5
	}
}

// Deps bundles the engine's collaborators. Storage, Searcher, Generator,
// and Conversation are required; Database is optional and nil disables the
// database strategies.
type Deps struct {
	Storage      storage.Storage
	Searcher     *search.Searcher
	Generator    provider.Generator
	Database     database.Coordinator
	Conversation conversation.Manager
	Prompts      *prompt.Builder
	Logger       *zap.Logger
}

// Engine orchestrates one query end to end. It holds no per-query state and
// is safe to run concurrently for independent queries.
type Engine struct {
	config *Config
	deps   Deps
}

// NewEngine creates an engine with the given configuration and collaborators.
func NewEngine(config *Config, deps Deps) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	if deps.Prompts == nil {
		deps.Prompts = prompt.NewBuilder()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Engine{config: config, deps: deps}
}

// SearchDocuments runs document retrieval only and returns the ranked chunk
// pool. An empty or whitespace-only query is rejected.
func (e *Engine) SearchDocuments(ctx context.Context, query string, limit int, opts *models.SearchOptions) ([]*models.Chunk, error) {
	req := &models.QueryRequest{Query: query, MaxResults: limit, Options: opts}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res, err := e.deps.Searcher.Search(ctx, req.Query, req.MaxResults, req.Options)
	if err != nil {
		return nil, err
	}
	chunks := make([]*models.Chunk, len(res.Chunks))
	for i, sc := range res.Chunks {
		chunks[i] = sc.Chunk
	}
	return chunks, nil
}

// QueryIntelligence answers a natural-language query by selecting and
// executing a retrieval strategy. Backend failures and timeouts degrade
// through the fallback chain; the caller always receives a well-formed
// response, with an error only for invalid input.
func (e *Engine) QueryIntelligence(ctx context.Context, query string, limit int, startNewConversation bool, opts *models.SearchOptions) (*models.RagResponse, error) {
	req := &models.QueryRequest{
		Query:           query,
		MaxResults:      limit,
		StartNewSession: startNewConversation,
		Options:         opts,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	opts = req.Options

	sessionID := e.deps.Conversation.GetOrCreateSession(startNewConversation)
	history := e.deps.Conversation.GetHistory(sessionID)

	docRes, intent := e.probe(ctx, req.Query, req.MaxResults, opts)

	confidence := 0.0
	if intent != nil {
		confidence = intent.Confidence
	}
	hasDatabase := e.deps.Database != nil && intent.HasSubQueries()
	hasDocument := docRes.HasMatch()

	var strategy models.QueryStrategy
	if docRes != nil && docRes.Exit.Skip {
		// Document results are confident enough to skip the remaining
		// backends entirely.
		strategy = models.StrategyDocumentOnly
		e.deps.Logger.Debug("early exit",
			zap.Float64("exit_confidence", docRes.Exit.Confidence))
	} else {
		strategy = DecideStrategy(e.config.Strategy, confidence, hasDatabase, hasDocument)
	}
	e.deps.Logger.Info("strategy selected",
		zap.String("strategy", strategy.String()),
		zap.Float64("confidence", confidence),
		zap.Bool("has_database", hasDatabase),
		zap.Bool("has_document", hasDocument),
	)

	answer, sources := e.execute(ctx, strategy, req.Query, req.MaxResults, docRes, intent, history, opts)
	e.deps.Conversation.Append(sessionID, req.Query, answer)

	return &models.RagResponse{
		Query:      req.Query,
		Answer:     answer,
		Sources:    sources,
		Strategy:   strategy.String(),
		SessionID:  sessionID,
		SearchedAt: time.Now(),
		Configuration: &models.ConfigEcho{
			AIProvider:      e.deps.Generator.Name(),
			StorageProvider: e.deps.Storage.Name(),
		},
	}, nil
}

// probe runs the document pre-check and the database intent analysis
// concurrently; both are independent I/O calls with no ordering dependency.
// Either probe failing just leaves its signal empty.
func (e *Engine) probe(ctx context.Context, query string, limit int, opts *models.SearchOptions) (*search.Result, *models.QueryIntent) {
	var (
		docRes *search.Result
		intent *models.QueryIntent
		wg     sync.WaitGroup
	)

	if opts.DocumentSearch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tctx, cancel := e.withTimeout(ctx)
			defer cancel()
			res, err := e.deps.Searcher.Search(tctx, query, limit, opts)
			if err != nil {
				e.deps.Logger.Warn("document pre-check failed", zap.Error(err))
				return
			}
			docRes = res
		}()
	}

	if opts.DatabaseSearch && e.deps.Database != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tctx, cancel := e.withTimeout(ctx)
			defer cancel()
			i, err := e.deps.Database.AnalyzeIntent(tctx, query)
			if err != nil {
				e.deps.Logger.Warn("intent analysis failed", zap.Error(err))
				return
			}
			intent = i
		}()
	}

	wg.Wait()
	return docRes, intent
}

type branchResult struct {
	answer  string
	sources []*models.SearchSource
	ok      bool
}

// execute runs the selected strategy with its fallback chain and always
// returns an answer.
func (e *Engine) execute(ctx context.Context, strategy models.QueryStrategy, query string, limit int, docRes *search.Result, intent *models.QueryIntent, history string, opts *models.SearchOptions) (string, []*models.SearchSource) {
	switch strategy {
	case models.StrategyDatabaseOnly:
		if dbr, ok := e.databaseBranch(ctx, query, intent, limit, opts.Language); ok {
			return dbr.Answer, dbr.Sources
		}
		e.deps.Logger.Info("database returned no meaningful data, falling back to documents")
		if br := e.documentBranch(ctx, query, docRes, history, opts); br.ok {
			return br.answer, br.sources
		}

	case models.StrategyHybrid:
		if answer, sources, ok := e.hybridBranch(ctx, query, limit, docRes, intent, history, opts); ok {
			return answer, sources
		}

	default:
		if br := e.documentBranch(ctx, query, docRes, history, opts); br.ok {
			return br.answer, br.sources
		}
	}

	return e.conversationalFallback(ctx, query, history, opts.Language), nil
}

// documentBranch generates an answer from the retrieved chunk pool.
func (e *Engine) documentBranch(ctx context.Context, query string, docRes *search.Result, history string, opts *models.SearchOptions) branchResult {
	if !docRes.HasMatch() {
		return branchResult{}
	}
	contextText := e.deps.Searcher.BuildContext(docRes.Chunks)
	p := e.deps.Prompts.Document(query, contextText, history, opts.Language)

	tctx, cancel := e.withTimeout(ctx)
	defer cancel()
	answer, err := e.deps.Generator.Generate(tctx, p)
	if err != nil {
		e.deps.Logger.Warn("document answer generation failed", zap.Error(err))
		return branchResult{}
	}
	if !HasMeaningfulData(answer, query) {
		return branchResult{}
	}
	return branchResult{answer: answer, sources: e.buildSources(ctx, docRes.Chunks), ok: true}
}

// databaseBranch runs the database coordinator. A response whose answer
// matches a missing-data pattern is reclassified as "no data" even though
// the call succeeded.
func (e *Engine) databaseBranch(ctx context.Context, query string, intent *models.QueryIntent, limit int, language string) (*models.RagResponse, bool) {
	if e.deps.Database == nil || !intent.HasSubQueries() {
		return nil, false
	}
	tctx, cancel := e.withTimeout(ctx)
	defer cancel()
	resp, err := e.deps.Database.QueryMultiple(tctx, query, intent, limit, language)
	if err != nil {
		e.deps.Logger.Warn("database query failed", zap.Error(err))
		return nil, false
	}
	if resp == nil || !HasMeaningfulData(resp.Answer, query) {
		return nil, false
	}
	return resp, true
}

// hybridBranch runs the database and document branches concurrently and
// merges their answers through the generator. Database failure here is
// caught and logged, never propagated: the document branch still proceeds.
func (e *Engine) hybridBranch(ctx context.Context, query string, limit int, docRes *search.Result, intent *models.QueryIntent, history string, opts *models.SearchOptions) (string, []*models.SearchSource, bool) {
	var (
		dbr  *models.RagResponse
		dbOK bool
		br   branchResult
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dbr, dbOK = e.databaseBranch(ctx, query, intent, limit, opts.Language)
	}()
	go func() {
		defer wg.Done()
		br = e.documentBranch(ctx, query, docRes, history, opts)
	}()
	wg.Wait()

	switch {
	case dbOK && br.ok:
		sources := append(br.sources, dbr.Sources...)
		tctx, cancel := e.withTimeout(ctx)
		defer cancel()
		merged, err := e.deps.Generator.Generate(tctx, e.deps.Prompts.Merge(query, dbr.Answer, br.answer, opts.Language))
		if err != nil || !HasMeaningfulData(merged, query) {
			e.deps.Logger.Warn("hybrid merge failed, concatenating branch answers", zap.Error(err))
			return br.answer + "\n\n" + dbr.Answer, sources, true
		}
		return merged, sources, true
	case dbOK:
		return dbr.Answer, dbr.Sources, true
	case br.ok:
		return br.answer, br.sources, true
	default:
		return "", nil, false
	}
}

// conversationalFallback is the terminal safety net.
func (e *Engine) conversationalFallback(ctx context.Context, query, history, language string) string {
	tctx, cancel := e.withTimeout(ctx)
	defer cancel()
	answer, err := e.deps.Conversation.HandleGeneralConversation(tctx, query, history, language)
	if err != nil || answer == "" {
		e.deps.Logger.Warn("conversational fallback failed", zap.Error(err))
		return fallbackAnswer
	}
	return answer
}

// buildSources attributes the answer to its best chunk per document, up to
// MaxSources documents, in pool order.
func (e *Engine) buildSources(ctx context.Context, chunks []*ranking.ScoredChunk) []*models.SearchSource {
	seen := make(map[string]bool)
	var sources []*models.SearchSource
	for _, sc := range chunks {
		if len(sources) >= e.config.MaxSources {
			break
		}
		docID := sc.Chunk.DocumentID
		if seen[docID] {
			continue
		}
		seen[docID] = true
		fileName := ""
		if doc, err := e.deps.Storage.GetByID(ctx, docID); err == nil {
			fileName = doc.FileName
		}
		sources = append(sources, &models.SearchSource{
			DocumentID: docID,
			FileName:   fileName,
			Snippet:    utils.Truncate(sc.Chunk.Content, snippetLength),
			Source:     sc.Chunk.Source,
		})
	}
	return sources
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.BackendTimeout > 0 {
		return context.WithTimeout(ctx, e.config.BackendTimeout)
	}
	return context.WithCancel(ctx)
}
