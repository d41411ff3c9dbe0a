package models

import "testing"

func TestQueryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     QueryRequest
		wantErr bool
		wantMax int
	}{
		{"empty query", QueryRequest{Query: ""}, true, 0},
		{"whitespace query", QueryRequest{Query: " \t\n "}, true, 0},
		{"defaults max results", QueryRequest{Query: "hello"}, false, 5},
		{"keeps explicit max", QueryRequest{Query: "hello", MaxResults: 20}, false, 20},
		{"caps oversized max", QueryRequest{Query: "hello", MaxResults: 500}, false, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.req.MaxResults != tt.wantMax {
				t.Errorf("MaxResults = %d, want %d", tt.req.MaxResults, tt.wantMax)
			}
			if tt.req.Options == nil {
				t.Error("Validate should fill default options")
			}
		})
	}
}

func TestSearchOptionsAllowsSource(t *testing.T) {
	opts := &SearchOptions{DocumentSearch: true, AudioSearch: false, ImageSearch: true}
	if !opts.AllowsSource(SourceDocument) {
		t.Error("document source should be allowed")
	}
	if opts.AllowsSource(SourceAudio) {
		t.Error("audio source should be filtered")
	}
	if !opts.AllowsSource(SourceImage) {
		t.Error("image source should be allowed")
	}
	// Untagged chunks follow the document toggle.
	if !opts.AllowsSource("") {
		t.Error("untagged source should follow the document toggle")
	}
}

func TestQueryIntentHasSubQueries(t *testing.T) {
	var nilIntent *QueryIntent
	if nilIntent.HasSubQueries() {
		t.Error("nil intent has no sub-queries")
	}
	if (&QueryIntent{Confidence: 0.9}).HasSubQueries() {
		t.Error("intent without sub-queries")
	}
	if !(&QueryIntent{SubQueries: []string{"SELECT 1"}}).HasSubQueries() {
		t.Error("intent with sub-queries")
	}
}

func TestQueryStrategyString(t *testing.T) {
	tests := []struct {
		strategy QueryStrategy
		want     string
	}{
		{StrategyDocumentOnly, "document_only"},
		{StrategyDatabaseOnly, "database_only"},
		{StrategyHybrid, "hybrid"},
		{QueryStrategy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.strategy.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
