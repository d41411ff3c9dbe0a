// Package main is the Kotae CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/conversation"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/prompt"
	"github.com/hyperjump/kotae/internal/provider"
	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		// No config file at all is fine: run on defaults.
		if errors.Is(err, os.ErrNotExist) {
			cfg = &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "search":
		runSearch()
	case "index":
		runIndex()
	case "delete":
		runDelete()
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if resolvedConfigPath != "" {
		// Scoring, expansion, and strategy tunables apply in place on
		// reload; backend and server changes need a restart.
		watch := config.NewWatcher(resolvedConfigPath, func(next *config.Config) {
			*cfg.Scoring = *next.Scoring
			*cfg.Expansion = *next.Expansion
			*cfg.Query.Strategy = *next.Query.Strategy
		}, logger)
		if err := watch.Start(watchCtx); err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			defer watch.Stop()
		}
	}

	srv := server.NewServer(
		components.Engine,
		components.Indexer,
		components.Storage,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 5, "maximum results to retrieve")
	newSession := fs.Bool("new-session", false, "start a fresh conversation session")
	language := fs.String("language", "", "preferred answer language")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: kotae ask [flags] <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	opts := models.DefaultSearchOptions()
	opts.Language = *language
	response, err := components.Engine.QueryIntelligence(context.Background(), query, *limit, *newSession, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAnswer(os.Stdout, response, outputFormatOf(*outputFormat)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 10, "number of results")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	query := buildQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: kotae search [flags] <query>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	chunks, err := components.Engine.SearchDocuments(context.Background(), query, *limit, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteChunks(os.Stdout, query, chunks, outputFormatOf(*outputFormat)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	fileName := fs.String("name", "", "file name to record (defaults to the path's base name)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotae index [flags] <text-file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	name := *fileName
	if name == "" {
		name = filepath.Base(path)
	}
	doc, err := components.Indexer.Index(context.Background(), &models.DocumentInput{
		FileName: name,
		Content:  string(content),
	})
	if err != nil {
		fmt.Printf("Indexing failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document indexed: %s (%d chunks)\n", doc.ID, len(doc.Chunks))
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotae delete [flags] <document-id>")
		os.Exit(1)
	}
	docID := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Indexer.Remove(context.Background(), docID); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document deleted: %s\n", docID)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func outputFormatOf(s string) cli.OutputFormat {
	if s == "json" {
		return cli.OutputJSON
	}
	return cli.OutputText
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Embedder provider.Embedder
	Engine   *rag.Engine
	Indexer  *indexer.Indexer
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var (
		generator provider.Generator
		embedder  provider.Embedder
	)
	switch cfg.Provider.Type {
	case "mock":
		generator = &provider.MockGenerator{Answer: "mock provider configured; no model available"}
		embedder = provider.NewMockEmbedder(cfg.Provider.Dimensions)
	default:
		p, err := provider.NewOllamaProvider(cfg.Provider.Host, cfg.Provider.Model, cfg.Provider.EmbedModel, cfg.Provider.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize provider: %w", err)
		}
		generator = p
		embedder = provider.NewCachedEmbedder(p, cfg.Provider.CacheSize)
	}

	var (
		store      storage.Storage
		indexEmbed provider.Embedder
		err        error
	)
	switch cfg.Storage.Backend {
	case "bleve":
		store, err = storage.NewBleveStore(cfg.Storage.BleveIndexPath)
	case "vector":
		store, err = storage.NewVectorStore(embedder)
		indexEmbed = embedder
	default:
		store = storage.NewMemoryStore()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	searcher := search.NewSearcher(cfg.Searcher, cfg.Scoring, cfg.Expansion, store, logger)
	prompts := prompt.NewBuilder()
	conv := conversation.NewStore(generator, prompts, 10)
	engine := rag.NewEngine(cfg.Query, rag.Deps{
		Storage:      store,
		Searcher:     searcher,
		Generator:    generator,
		Conversation: conv,
		Prompts:      prompts,
		Logger:       logger,
	})

	chunker := indexer.NewChunker(cfg.Chunking.MaxSize, cfg.Chunking.MinSize, cfg.Chunking.Overlap)
	idx := indexer.NewIndexer(chunker, store, indexEmbed, logger)

	return &Components{
		Storage:  store,
		Embedder: embedder,
		Engine:   engine,
		Indexer:  idx,
	}, nil
}

func printUsage() {
	fmt.Println(`kotae - Retrieval-augmented answer engine

Usage:
  kotae server [flags]            Start the HTTP server
  kotae ask [flags] <question>    Answer a question from indexed documents
  kotae search [flags] <query>    Retrieve matching chunks without generation
  kotae index [flags] <file>      Index a text file
  kotae delete [flags] <id>       Delete a document
  kotae version                   Show version
  kotae help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml)
  --debug            Enable debug logging

Ask Flags:
  --config string    Config file path
  --limit int        Maximum results to retrieve (default: 5)
  --new-session      Start a fresh conversation session
  --language string  Preferred answer language
  --output string    Output format: text or json (default: text)

Search Flags:
  --config string    Config file path
  --limit int        Number of results (default: 10)
  --output string    Output format: text or json (default: text)

Examples:
  kotae server
  kotae ask "what does the onboarding handbook say about vacation?"
  kotae ask --output json --new-session "list all reported incidents"
  kotae search expense reporting
  kotae index handbook.txt
  kotae delete doc-123`)
}
