package rag

import (
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func TestDecideStrategy(t *testing.T) {
	cfg := DefaultStrategyConfig()
	tests := []struct {
		name        string
		confidence  float64
		hasDatabase bool
		hasDocument bool
		want        models.QueryStrategy
	}{
		{"high confidence with both sources", 0.9, true, true, models.StrategyHybrid},
		{"high confidence database only", 0.9, true, false, models.StrategyDatabaseOnly},
		{"high confidence without database capability", 0.9, false, true, models.StrategyDocumentOnly},
		{"exactly at high bar", 0.7, true, false, models.StrategyDatabaseOnly},
		{"medium band with both sources", 0.5, true, true, models.StrategyHybrid},
		{"medium band database only", 0.5, true, false, models.StrategyDatabaseOnly},
		{"medium band documents only", 0.5, false, true, models.StrategyDocumentOnly},
		{"exactly at low bar", 0.3, true, true, models.StrategyHybrid},
		{"low confidence ignores database", 0.1, true, true, models.StrategyDocumentOnly},
		{"zero confidence with nothing", 0, false, false, models.StrategyDocumentOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideStrategy(cfg, tt.confidence, tt.hasDatabase, tt.hasDocument)
			if got != tt.want {
				t.Errorf("DecideStrategy(%.1f, db=%v, doc=%v) = %s, want %s",
					tt.confidence, tt.hasDatabase, tt.hasDocument, got, tt.want)
			}
		})
	}
}

func TestDecideStrategy_CustomBands(t *testing.T) {
	cfg := &StrategyConfig{HighConfidence: 0.9, LowConfidence: 0.5}
	if got := DecideStrategy(cfg, 0.8, true, true); got != models.StrategyHybrid {
		t.Errorf("0.8 under a 0.9 high bar = %s, want hybrid", got)
	}
	if got := DecideStrategy(cfg, 0.4, true, true); got != models.StrategyDocumentOnly {
		t.Errorf("0.4 under a 0.5 low bar = %s, want document_only", got)
	}
}

func TestStrategyConfigApplyDefaults(t *testing.T) {
	cfg := &StrategyConfig{HighConfidence: 0.8}
	cfg.ApplyDefaults()
	if cfg.HighConfidence != 0.8 {
		t.Errorf("explicit value overwritten: %f", cfg.HighConfidence)
	}
	if cfg.LowConfidence != 0.3 {
		t.Errorf("LowConfidence = %f, want default 0.3", cfg.LowConfidence)
	}
}
