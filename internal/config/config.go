// Package config provides configuration loading, defaults, and hot-reload
// for the Kotae server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kotae/internal/rag"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool                   `yaml:"debug"`
	Server    ServerConfig           `yaml:"server"`
	Storage   StorageConfig          `yaml:"storage"`
	Provider  ProviderConfig         `yaml:"provider"`
	Chunking  ChunkingConfig         `yaml:"chunking"`
	Scoring   *ranking.ScoringConfig `yaml:"scoring"`
	Expansion *search.ExpanderConfig `yaml:"expansion"`
	Searcher  *search.SearcherConfig `yaml:"searcher"`
	Query     *rag.Config            `yaml:"query"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the chunk store backend.
type StorageConfig struct {
	// Backend is one of "memory", "bleve", or "vector".
	Backend string `yaml:"backend"`
	// BleveIndexPath is the on-disk index location for the bleve backend.
	// Empty means an in-memory index.
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// ProviderConfig configures the AI provider used for generation and
// embeddings.
type ProviderConfig struct {
	// Type is one of "ollama" or "mock".
	Type       string `yaml:"type"`
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	EmbedModel string `yaml:"embed_model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// ChunkingConfig holds document chunking settings, in runes.
type ChunkingConfig struct {
	MaxSize int `yaml:"max_size"`
	MinSize int `yaml:"min_size"`
	Overlap int `yaml:"overlap"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Storage.BleveIndexPath != "" {
		cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
