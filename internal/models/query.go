package models

import "fmt"

// SearchOptions is a per-query configuration snapshot. It is immutable for
// the duration of a query; the engine never mutates it.
type SearchOptions struct {
	DocumentSearch bool   `json:"document_search"`
	DatabaseSearch bool   `json:"database_search"`
	AudioSearch    bool   `json:"audio_search"`
	ImageSearch    bool   `json:"image_search"`
	Language       string `json:"language,omitempty"`
}

// DefaultSearchOptions enables every source with no language preference.
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{
		DocumentSearch: true,
		DatabaseSearch: true,
		AudioSearch:    true,
		ImageSearch:    true,
	}
}

// AllowsSource reports whether chunks of the given source type may appear
// in results under these options.
func (o *SearchOptions) AllowsSource(s SourceType) bool {
	switch s {
	case SourceAudio:
		return o.AudioSearch
	case SourceImage:
		return o.ImageSearch
	default:
		return o.DocumentSearch
	}
}

// QueryIntent is the output of the external database-intent analyzer.
// The engine treats it as opaque input: a confidence in [0,1] and zero or
// more candidate database sub-queries.
type QueryIntent struct {
	Confidence float64  `json:"confidence"`
	SubQueries []string `json:"sub_queries,omitempty"`
}

// HasSubQueries reports whether the analyzer produced any candidate
// database sub-queries.
func (i *QueryIntent) HasSubQueries() bool {
	return i != nil && len(i.SubQueries) > 0
}

// QueryRequest is a validated intelligence query.
type QueryRequest struct {
	Query           string         `json:"query"`
	MaxResults      int            `json:"max_results,omitempty"`
	StartNewSession bool           `json:"start_new_session,omitempty"`
	Options         *SearchOptions `json:"options,omitempty"`
}

// Validate ensures the request has valid fields and sets defaults.
// Returns an error if the query is empty or whitespace-only.
func (r *QueryRequest) Validate() error {
	if !hasContent(r.Query) {
		return fmt.Errorf("query cannot be empty")
	}
	if r.MaxResults <= 0 {
		r.MaxResults = 5
	}
	if r.MaxResults > 100 {
		r.MaxResults = 100
	}
	if r.Options == nil {
		r.Options = DefaultSearchOptions()
	}
	return nil
}

func hasContent(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
