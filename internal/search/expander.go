package search

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/storage"
)

// ExpanderConfig bounds context expansion and context text assembly.
type ExpanderConfig struct {
	// DefaultWindow is how many neighboring chunks to pull on each side of
	// a seed chunk for ordinary queries.
	DefaultWindow int `yaml:"default_window"` // default: 2
	// ComprehensiveWindow replaces DefaultWindow for comprehensive queries.
	ComprehensiveWindow int `yaml:"comprehensive_window"` // default: 8
	// MaxChunks caps the total chunk count after expansion.
	MaxChunks int `yaml:"max_chunks"` // default: 50
	// MaxContextChars caps the assembled context text length.
	MaxContextChars int `yaml:"max_context_chars"` // default: 18000
	// NeighborListMarkerBonus is the per-marker score awarded to pulled-in
	// neighbor chunks containing numbered-list items.
	NeighborListMarkerBonus float64 `yaml:"neighbor_list_marker_bonus"` // default: 0.2
}

// DefaultExpanderConfig returns the default expansion limits.
func DefaultExpanderConfig() *ExpanderConfig {
	return &ExpanderConfig{
		DefaultWindow:           2,
		ComprehensiveWindow:     8,
		MaxChunks:               50,
		MaxContextChars:         18000,
		NeighborListMarkerBonus: 0.2,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ExpanderConfig) ApplyDefaults() {
	d := DefaultExpanderConfig()
	if c.DefaultWindow == 0 {
		c.DefaultWindow = d.DefaultWindow
	}
	if c.ComprehensiveWindow == 0 {
		c.ComprehensiveWindow = d.ComprehensiveWindow
	}
	if c.MaxChunks == 0 {
		c.MaxChunks = d.MaxChunks
	}
	if c.MaxContextChars == 0 {
		c.MaxContextChars = d.MaxContextChars
	}
	if c.NeighborListMarkerBonus == 0 {
		c.NeighborListMarkerBonus = d.NeighborListMarkerBonus
	}
}

// Expander widens a seed chunk set with adjacent chunks from the same
// documents so list items and split paragraphs arrive as complete evidence.
type Expander struct {
	config  *ExpanderConfig
	storage storage.Storage
}

// NewExpander creates an Expander reading neighbor chunks from store.
func NewExpander(config *ExpanderConfig, store storage.Storage) *Expander {
	if config == nil {
		config = DefaultExpanderConfig()
	}
	config.ApplyDefaults()
	return &Expander{config: config, storage: store}
}

// Window returns the expansion window for the query shape.
func (e *Expander) Window(comprehensive bool) int {
	if comprehensive {
		return e.config.ComprehensiveWindow
	}
	return e.config.DefaultWindow
}

// Expand returns the seeds plus up to window chunks immediately before and
// after each seed in the same document, de-duplicated. Seed scores are
// preserved; new chunks get a lightweight heuristic score (word-match count
// plus a list-marker bonus) so they can be ranked alongside the seeds.
// Neighbors whose source the options exclude are not pulled in.
//
// The result is capped at MaxChunks: chunks from relevant documents are
// always kept, the remainder is trimmed by ascending score.
func (e *Expander) Expand(ctx context.Context, seeds []*ranking.ScoredChunk, query *ranking.AnalyzedQuery, window int, opts *models.SearchOptions) []*ranking.ScoredChunk {
	if len(seeds) == 0 || window <= 0 {
		return e.cap(seeds)
	}

	seen := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		seen[s.Chunk.ID] = true
	}

	// Neighbor lookup needs each parent document's full chunk sequence.
	docChunks := make(map[string][]*models.Chunk)
	out := make([]*ranking.ScoredChunk, len(seeds))
	copy(out, seeds)

	for _, seed := range seeds {
		docID := seed.Chunk.DocumentID
		chunks, ok := docChunks[docID]
		if !ok {
			doc, err := e.storage.GetByID(ctx, docID)
			if err != nil {
				docChunks[docID] = nil
				continue
			}
			chunks = doc.Chunks
			docChunks[docID] = chunks
		}
		if chunks == nil {
			continue
		}
		lo := seed.Chunk.Index - window
		hi := seed.Chunk.Index + window
		for _, neighbor := range chunks {
			if neighbor.Index < lo || neighbor.Index > hi || seen[neighbor.ID] {
				continue
			}
			if opts != nil && !opts.AllowsSource(neighbor.Source) {
				continue
			}
			seen[neighbor.ID] = true
			out = append(out, &ranking.ScoredChunk{
				Chunk:                neighbor,
				Score:                e.neighborScore(neighbor, query),
				FromRelevantDocument: seed.FromRelevantDocument,
			})
		}
	}
	return e.cap(out)
}

// cap trims the pool to MaxChunks, keeping every chunk carrying the
// relevant-document boost and dropping the rest by ascending score.
func (e *Expander) cap(chunks []*ranking.ScoredChunk) []*ranking.ScoredChunk {
	if len(chunks) <= e.config.MaxChunks {
		return chunks
	}
	var kept, trimmable []*ranking.ScoredChunk
	for _, c := range chunks {
		if c.FromRelevantDocument {
			kept = append(kept, c)
		} else {
			trimmable = append(trimmable, c)
		}
	}
	room := e.config.MaxChunks - len(kept)
	if room <= 0 {
		return kept
	}
	sort.SliceStable(trimmable, func(i, j int) bool { return trimmable[i].Score > trimmable[j].Score })
	if room > len(trimmable) {
		room = len(trimmable)
	}
	return append(kept, trimmable[:room]...)
}

// neighborScore is the lightweight heuristic for pulled-in neighbors:
// one point per matching query word plus a numbered-list bonus.
func (e *Expander) neighborScore(chunk *models.Chunk, query *ranking.AnalyzedQuery) float64 {
	text := strings.ToLower(chunk.Content)
	score := 0.0
	for _, w := range query.Words {
		if strings.Contains(text, w) {
			score++
		}
	}
	if markers := ranking.CountListMarkers(chunk.Content); markers > 0 {
		score += float64(markers) * e.config.NeighborListMarkerBonus
	}
	return score
}

// BuildContext assembles the evidence text for prompt construction, in the
// given chunk order, separated by blank lines. The total length is capped
// at MaxContextChars; a chunk that would exceed the budget is truncated to
// the remaining room rather than dropped, to preserve as much evidence as
// possible.
func (e *Expander) BuildContext(chunks []*ranking.ScoredChunk) string {
	var sb strings.Builder
	budget := e.config.MaxContextChars
	for i, c := range chunks {
		content := c.Chunk.Content
		sep := 0
		if i > 0 {
			sep = 2
		}
		remaining := budget - sb.Len() - sep
		if remaining <= 0 {
			break
		}
		if len(content) > remaining {
			cut := remaining
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
		if sb.Len() >= budget {
			break
		}
	}
	return sb.String()
}
