package search

import (
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
)

// ExitDecision is the outcome of the source-selection heuristic: whether
// the remaining backends can be skipped, and a confidence in [0,1] derived
// from the qualifying scores.
type ExitDecision struct {
	Skip       bool
	Confidence float64
}

// EarlyExit decides from a scored chunk distribution whether the database,
// audio, and image backends can be skipped. Each call is a pure function of
// the score distribution; no state is held between calls.
type EarlyExit struct {
	config  *ranking.ScoringConfig
	enabled bool
}

// NewEarlyExit creates the heuristic. When enabled is false every decision
// is "do not skip".
func NewEarlyExit(config *ranking.ScoringConfig, enabled bool) *EarlyExit {
	if config == nil {
		config = ranking.DefaultScoringConfig()
	}
	return &EarlyExit{config: config, enabled: enabled}
}

// Decide evaluates the score distribution. scored must be sorted descending
// by score; precheckOK reports whether the document-retrieval pre-check
// succeeded.
func (e *EarlyExit) Decide(scored []*ranking.ScoredChunk, precheckOK bool) ExitDecision {
	if !e.enabled || !precheckOK || len(scored) == 0 {
		return ExitDecision{}
	}

	top := scored[0].Score
	if top <= 0 {
		return ExitDecision{}
	}

	// Two disjoint scoring regimes: lexical relevance scores sit well above
	// cosine similarities. The regime is detected from the top score's
	// magnitude and selects the matching fixed threshold.
	lexical := top > e.config.RegimeCutoff
	threshold := e.config.VectorScoreThreshold
	highBar := e.config.HighConfidenceVector
	margin := e.config.TopScoreMargin
	minSpread := e.config.MinScoreSpread
	if lexical {
		threshold = e.config.LexicalScoreThreshold
		highBar = e.config.HighConfidenceLexical
		scale := e.config.LexicalScoreThreshold / e.config.VectorScoreThreshold
		margin *= scale
		minSpread *= scale
	}

	qualifying := 0
	qualifyingSum := 0.0
	for _, sc := range scored {
		if sc.Score >= threshold {
			qualifying++
			qualifyingSum += sc.Score
		}
	}
	if qualifying < e.config.MinQualifyingResults {
		return ExitDecision{}
	}

	// Score discrimination: a narrow range between the best and Nth-best
	// score means the ranking is ambiguous, which blocks early exit unless
	// the top score clears the threshold by a margin, the results include
	// image/OCR hits (noisier scores, deliberately more lenient), or the
	// top score clears the high-confidence bar.
	nth := e.config.MinQualifyingResults - 1
	if nth >= len(scored) {
		nth = len(scored) - 1
	}
	spread := top - scored[nth].Score
	if spread < minSpread {
		clearedMargin := top >= threshold+margin
		if !clearedMargin && !hasImageHits(scored) && top < highBar {
			return ExitDecision{}
		}
	}

	avg := qualifyingSum / float64(qualifying)
	return ExitDecision{Skip: true, Confidence: e.normalize(avg, lexical)}
}

// normalize maps an average qualifying score into [0,1]. Vector scores are
// clamped directly; lexical scores are compressed against twice the lexical
// threshold so a score at the threshold maps to 0.5.
func (e *EarlyExit) normalize(avg float64, lexical bool) float64 {
	var c float64
	if lexical {
		c = avg / (2 * e.config.LexicalScoreThreshold)
	} else {
		c = avg
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func hasImageHits(scored []*ranking.ScoredChunk) bool {
	for _, sc := range scored {
		if sc.Chunk != nil && sc.Chunk.Source == models.SourceImage {
			return true
		}
	}
	return false
}
