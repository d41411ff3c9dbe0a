package config

import (
	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
	if cfg.Provider.Type == "" {
		cfg.Provider.Type = "ollama"
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = "llama3.2"
	}
	if cfg.Provider.EmbedModel == "" {
		cfg.Provider.EmbedModel = "nomic-embed-text"
	}
	if cfg.Provider.Dimensions == 0 {
		cfg.Provider.Dimensions = 768
	}
	if cfg.Provider.CacheSize == 0 {
		cfg.Provider.CacheSize = 10000
	}
	if cfg.Chunking.MaxSize == 0 {
		cfg.Chunking.MaxSize = 1000
	}
	if cfg.Chunking.MinSize == 0 {
		cfg.Chunking.MinSize = cfg.Chunking.MaxSize / 10
	}
	if cfg.Scoring == nil {
		cfg.Scoring = ranking.DefaultScoringConfig()
	}
	cfg.Scoring.ApplyDefaults()
	if cfg.Expansion == nil {
		cfg.Expansion = search.DefaultExpanderConfig()
	}
	cfg.Expansion.ApplyDefaults()
	if cfg.Searcher == nil {
		cfg.Searcher = search.DefaultSearcherConfig()
	}
	cfg.Searcher.ApplyDefaults()
	if cfg.Query == nil {
		cfg.Query = rag.DefaultConfig()
	}
	cfg.Query.ApplyDefaults()
}
