package models

import "time"

// QueryStrategy is the terminal strategy chosen for one query.
type QueryStrategy int

const (
	// StrategyDocumentOnly answers from document retrieval alone.
	StrategyDocumentOnly QueryStrategy = iota
	// StrategyDatabaseOnly answers from the database coordinator alone.
	StrategyDatabaseOnly
	// StrategyHybrid answers by merging database and document results.
	StrategyHybrid
)

// String returns a string representation of the strategy.
func (s QueryStrategy) String() string {
	switch s {
	case StrategyDocumentOnly:
		return "document_only"
	case StrategyDatabaseOnly:
		return "database_only"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// SearchSource attributes part of an answer to a document.
type SearchSource struct {
	DocumentID string     `json:"document_id"`
	FileName   string     `json:"file_name"`
	Snippet    string     `json:"snippet,omitempty"`
	Source     SourceType `json:"source,omitempty"`
}

// ConfigEcho identifies the provider and storage backends that served a
// query, for observability. It carries no secrets.
type ConfigEcho struct {
	AIProvider      string `json:"ai_provider,omitempty"`
	StorageProvider string `json:"storage_provider,omitempty"`
}

// RagResponse is the output contract of QueryIntelligence. It is constructed
// fresh per query and never cached.
type RagResponse struct {
	Query         string          `json:"query"`
	Answer        string          `json:"answer"`
	Sources       []*SearchSource `json:"sources"`
	Strategy      string          `json:"strategy,omitempty"`
	SessionID     string          `json:"session_id,omitempty"`
	SearchedAt    time.Time       `json:"searched_at"`
	Configuration *ConfigEcho     `json:"configuration,omitempty"`
}
