// Package ranking provides per-query lexical chunk scoring and document-level
// relevance aggregation.
//
// Scores are never stored on chunk entities. Every scoring function returns
// ScoredChunk values scoped to the query that produced them, so concurrent
// queries over the same chunks share no mutable state.
package ranking

import "github.com/hyperjump/kotae/internal/models"

// ScoredChunk pairs a chunk with its relevance score for one query.
type ScoredChunk struct {
	Chunk *models.Chunk
	Score float64
	// FromRelevantDocument marks chunks belonging to a document the
	// aggregator judged relevant; such chunks survive pool trimming.
	FromRelevantDocument bool
}

// DocumentScore is the aggregate relevance of one document for one query.
type DocumentScore struct {
	DocumentID string
	// Base is the average of the document's top chunk scores.
	Base float64
	// UniqueWords counts query words found in this document and no other.
	UniqueWords int
	// Coverage is the fraction of distinct query words present in the
	// document's wide chunk sample.
	Coverage float64
	// Occurrences is the total whole-word occurrence count of query words.
	Occurrences int
	// Final is the combined score used for ranking documents.
	Final float64
}

// AnalyzedQuery holds the tokenized and analyzed form of one query.
type AnalyzedQuery struct {
	// Original is the raw query string.
	Original string
	// Words are the normalized query tokens.
	Words []string
	// PotentialNames are multi-word capitalized phrases extracted from the
	// query, matched as whole phrases with the highest bonus.
	PotentialNames []string
	// Comprehensive indicates the query needs wide, multi-chunk retrieval.
	Comprehensive bool
}
