package rag

import "github.com/hyperjump/kotae/internal/models"

// StrategyConfig holds the confidence bands for strategy selection.
type StrategyConfig struct {
	// HighConfidence is the database-leaning bar.
	HighConfidence float64 `yaml:"high_confidence"` // default: 0.7
	// LowConfidence is the floor of the hybrid band.
	LowConfidence float64 `yaml:"low_confidence"` // default: 0.3
}

// DefaultStrategyConfig returns the default confidence bands.
func DefaultStrategyConfig() *StrategyConfig {
	return &StrategyConfig{HighConfidence: 0.7, LowConfidence: 0.3}
}

// ApplyDefaults fills in zero values with defaults.
func (c *StrategyConfig) ApplyDefaults() {
	d := DefaultStrategyConfig()
	if c.HighConfidence == 0 {
		c.HighConfidence = d.HighConfidence
	}
	if c.LowConfidence == 0 {
		c.LowConfidence = d.LowConfidence
	}
}

// DecideStrategy selects the terminal strategy from the database-intent
// confidence, the database-intent flag (sub-queries exist and database
// search is enabled), and the document-match flag.
//
// The fallback is always document retrieval, never a hard failure: the
// conversational answer remains available as a terminal safety net further
// down the execution chain.
func DecideStrategy(cfg *StrategyConfig, confidence float64, hasDatabase, hasDocument bool) models.QueryStrategy {
	switch {
	case confidence >= cfg.HighConfidence:
		if !hasDatabase {
			return models.StrategyDocumentOnly
		}
		if hasDocument {
			return models.StrategyHybrid
		}
		return models.StrategyDatabaseOnly
	case confidence >= cfg.LowConfidence:
		if hasDatabase && hasDocument {
			return models.StrategyHybrid
		}
		if hasDatabase {
			return models.StrategyDatabaseOnly
		}
		return models.StrategyDocumentOnly
	default:
		return models.StrategyDocumentOnly
	}
}
