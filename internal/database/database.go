// Package database defines the external database coordinator contract.
// SQL generation and execution live behind this interface; the engine only
// consumes intent confidences and finished answers.
package database

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// Coordinator analyzes queries for database intent and executes database
// sub-queries against the configured relational backends.
type Coordinator interface {
	// AnalyzeIntent classifies the query, returning a confidence in [0,1]
	// and candidate database sub-queries.
	AnalyzeIntent(ctx context.Context, query string) (*models.QueryIntent, error)
	// QueryMultiple runs the sub-queries and synthesizes a combined answer.
	QueryMultiple(ctx context.Context, query string, intent *models.QueryIntent, limit int, language string) (*models.RagResponse, error)
}
