// Package cli provides CLI output formatting for Kotae.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteAnswer writes a query response to w in the given format.
func WriteAnswer(w io.Writer, response *models.RagResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\n%s\n", response.Answer)
	if len(response.Sources) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, src := range response.Sources {
			name := src.FileName
			if name == "" {
				name = src.DocumentID
			}
			fmt.Fprintf(w, "  - %s\n", name)
			if src.Snippet != "" {
				fmt.Fprintf(w, "    %s\n", utils.Truncate(src.Snippet, 120))
			}
		}
	}
	fmt.Fprintf(w, "\nStrategy: %s | Session: %s\n", response.Strategy, response.SessionID)
	return nil
}

// WriteChunks writes retrieved chunks to w in the given format.
func WriteChunks(w io.Writer, query string, chunks []*models.Chunk, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"query":  query,
			"chunks": chunks,
			"count":  len(chunks),
		})
	}
	fmt.Fprintf(w, "\nFound %d chunks for %q\n\n", len(chunks), query)
	for i, chunk := range chunks {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Document: %s | Chunk: %d\n", i+1, chunk.DocumentID, chunk.Index)
		fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(chunk.Content, 200))
	}
	return nil
}
