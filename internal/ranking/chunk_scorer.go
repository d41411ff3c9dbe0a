package ranking

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

const punctuationRunes = ".,;:!?"

// ChunkScorer assigns a lexical relevance score to a chunk for one query.
// Scoring is a pure function of its inputs: no I/O, no shared state.
// Higher is more relevant; scores are non-negative.
type ChunkScorer struct {
	config *ScoringConfig
}

// NewChunkScorer creates a ChunkScorer with the given config.
func NewChunkScorer(config *ScoringConfig) *ChunkScorer {
	if config == nil {
		config = DefaultScoringConfig()
	}
	return &ChunkScorer{config: config}
}

// Score computes the relevance of chunk for the analyzed query. The owning
// document's file name is concatenated with the content before matching so
// a document's name contributes to its own chunks' scores.
func (s *ChunkScorer) Score(chunk *models.Chunk, fileName string, query *AnalyzedQuery) float64 {
	if chunk == nil || query == nil {
		return 0
	}
	text := strings.ToLower(fileName + " " + chunk.Content)
	score := 0.0

	score += s.scoreNameMatches(text, query.PotentialNames)

	matched := s.scoreWordMatches(text, query.Words, &score)
	switch {
	case matched >= 3:
		score += s.config.ThreeWordMatchBonus
	case matched == 2:
		score += s.config.TwoWordMatchBonus
	}

	if matched > 0 && looksLikeTitle(chunk.Content, s.config.TitleMaxLength) {
		score += s.config.TitleChunkBonus
	}

	score += s.scoreStructure(chunk.Content)
	return score
}

// scoreNameMatches awards the full-phrase bonus for each potential name
// found verbatim, and the partial bonus when only some of a name's words
// are present.
func (s *ChunkScorer) scoreNameMatches(text string, names []string) float64 {
	score := 0.0
	for _, name := range names {
		if strings.Contains(text, name) {
			score += s.config.FullNameMatchBonus
			continue
		}
		for _, part := range strings.Fields(name) {
			if strings.Contains(text, part) {
				score += s.config.PartialNameMatchBonus
				break
			}
		}
	}
	return score
}

// scoreWordMatches awards per-word bonuses and returns how many distinct
// query words matched. Words that miss exactly are probed with a shrinking
// prefix window (half bonus) to tolerate morphological suffixes in
// agglutinative languages; only words of MinFuzzyWordLength runes or more
// are probed.
func (s *ChunkScorer) scoreWordMatches(text string, words []string, score *float64) int {
	matched := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			*score += s.config.ExactWordBonus
			matched++
			continue
		}
		runes := []rune(word)
		if len(runes) < s.config.MinFuzzyWordLength {
			continue
		}
		for l := len(runes) - 1; l >= s.config.MinFuzzyWordLength; l-- {
			if strings.Contains(text, string(runes[:l])) {
				*score += s.config.FuzzyWordBonus
				matched++
				break
			}
		}
	}
	return matched
}

// scoreStructure awards content-shape bonuses: a word-count sweet spot,
// punctuation density typical of prose, and numbered-list markers.
func (s *ChunkScorer) scoreStructure(content string) float64 {
	score := 0.0

	wordCount := len(strings.Fields(content))
	if wordCount >= s.config.SweetSpotMinWords && wordCount <= s.config.SweetSpotMaxWords {
		score += s.config.SweetSpotBonus
	}

	if len(content) > 0 {
		punct := 0
		for _, r := range content {
			if strings.ContainsRune(punctuationRunes, r) {
				punct++
			}
		}
		density := float64(punct) / float64(len(content))
		if density >= s.config.PunctuationDensityMin && density <= s.config.PunctuationDensityMax {
			score += s.config.PunctuationBonus
		}
	}

	if markers := CountListMarkers(content); markers > 0 {
		if markers > s.config.MaxListMarkers {
			markers = s.config.MaxListMarkers
		}
		score += float64(markers) * s.config.ListMarkerBonus
	}
	return score
}

// looksLikeTitle reports whether content has the shape of a header or title
// chunk: short with few lines, or containing a colon.
func looksLikeTitle(content string, maxLength int) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) <= maxLength && strings.Count(trimmed, "\n") < 3 {
		return true
	}
	return strings.Contains(trimmed, ":")
}
