package ranking

// ScoringConfig holds every bonus magnitude and threshold used by chunk
// scoring, document relevance aggregation, and the early-exit heuristic.
// All values are tunable; tests construct deterministic fixtures from it.
type ScoringConfig struct {
	// Chunk scorer bonuses
	FullNameMatchBonus    float64 `yaml:"full_name_match_bonus"`    // default: 10
	PartialNameMatchBonus float64 `yaml:"partial_name_match_bonus"` // default: 5
	ExactWordBonus        float64 `yaml:"exact_word_bonus"`         // default: 2
	FuzzyWordBonus        float64 `yaml:"fuzzy_word_bonus"`         // default: 1 (half of exact)
	MinFuzzyWordLength    int     `yaml:"min_fuzzy_word_length"`    // default: 4
	ThreeWordMatchBonus   float64 `yaml:"three_word_match_bonus"`   // default: 3
	TwoWordMatchBonus     float64 `yaml:"two_word_match_bonus"`     // default: 1.5
	TitleChunkBonus       float64 `yaml:"title_chunk_bonus"`        // default: 1.5
	TitleMaxLength        int     `yaml:"title_max_length"`         // default: 150
	SweetSpotBonus        float64 `yaml:"sweet_spot_bonus"`         // default: 0.5
	SweetSpotMinWords     int     `yaml:"sweet_spot_min_words"`     // default: 20
	SweetSpotMaxWords     int     `yaml:"sweet_spot_max_words"`     // default: 200
	PunctuationBonus      float64 `yaml:"punctuation_bonus"`        // default: 0.3
	PunctuationDensityMin float64 `yaml:"punctuation_density_min"`  // default: 0.005
	PunctuationDensityMax float64 `yaml:"punctuation_density_max"`  // default: 0.08
	ListMarkerBonus       float64 `yaml:"list_marker_bonus"`        // default: 0.4
	MaxListMarkers        int     `yaml:"max_list_markers"`         // default: 10

	// Document relevance aggregation
	TopChunksPerDocument  int     `yaml:"top_chunks_per_document"` // default: 5
	WideSampleSize        int     `yaml:"wide_sample_size"`        // default: 30
	UniqueWordBonus       float64 `yaml:"unique_word_bonus"`       // default: 5
	CoverageMultiplier    float64 `yaml:"coverage_multiplier"`     // default: 10
	OccurrenceBonus       float64 `yaml:"occurrence_bonus"`        // default: 0.05
	MaxOccurrenceBonus    float64 `yaml:"max_occurrence_bonus"`    // default: 2 (keeps frequency below coverage and uniqueness)
	SecondDocumentRatio   float64 `yaml:"second_document_ratio"`   // default: 0.8 (within 20% of top)
	RelevantDocumentBoost float64 `yaml:"relevant_document_boost"` // default: 2

	// Query pattern analysis
	ComprehensiveTokenCount int `yaml:"comprehensive_token_count"` // default: 6
	MinDigitGroups          int `yaml:"min_digit_groups"`          // default: 2

	// Early-exit heuristic. Two disjoint scoring regimes exist: vector
	// similarity scores are typically 0-1, lexical scores typically above
	// RegimeCutoff. The cutoff is configuration, not a universal constant:
	// a different scoring backend may violate the assumption.
	RegimeCutoff          float64 `yaml:"regime_cutoff"`           // default: 3
	VectorScoreThreshold  float64 `yaml:"vector_score_threshold"`  // default: 0.6
	LexicalScoreThreshold float64 `yaml:"lexical_score_threshold"` // default: 5
	MinQualifyingResults  int     `yaml:"min_qualifying_results"`  // default: 2
	MinScoreSpread        float64 `yaml:"min_score_spread"`        // default: 0.15 (vector) scaled for lexical
	TopScoreMargin        float64 `yaml:"top_score_margin"`        // default: 0.1
	HighConfidenceVector  float64 `yaml:"high_confidence_vector"`  // default: 0.8
	HighConfidenceLexical float64 `yaml:"high_confidence_lexical"` // default: 9
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		FullNameMatchBonus:    10,
		PartialNameMatchBonus: 5,
		ExactWordBonus:        2,
		FuzzyWordBonus:        1,
		MinFuzzyWordLength:    4,
		ThreeWordMatchBonus:   3,
		TwoWordMatchBonus:     1.5,
		TitleChunkBonus:       1.5,
		TitleMaxLength:        150,
		SweetSpotBonus:        0.5,
		SweetSpotMinWords:     20,
		SweetSpotMaxWords:     200,
		PunctuationBonus:      0.3,
		PunctuationDensityMin: 0.005,
		PunctuationDensityMax: 0.08,
		ListMarkerBonus:       0.4,
		MaxListMarkers:        10,

		TopChunksPerDocument:  5,
		WideSampleSize:        30,
		UniqueWordBonus:       5,
		CoverageMultiplier:    10,
		OccurrenceBonus:       0.05,
		MaxOccurrenceBonus:    2,
		SecondDocumentRatio:   0.8,
		RelevantDocumentBoost: 2,

		ComprehensiveTokenCount: 6,
		MinDigitGroups:          2,

		RegimeCutoff:          3,
		VectorScoreThreshold:  0.6,
		LexicalScoreThreshold: 5,
		MinQualifyingResults:  2,
		MinScoreSpread:        0.15,
		TopScoreMargin:        0.1,
		HighConfidenceVector:  0.8,
		HighConfidenceLexical: 9,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	d := DefaultScoringConfig()

	if c.FullNameMatchBonus == 0 {
		c.FullNameMatchBonus = d.FullNameMatchBonus
	}
	if c.PartialNameMatchBonus == 0 {
		c.PartialNameMatchBonus = d.PartialNameMatchBonus
	}
	if c.ExactWordBonus == 0 {
		c.ExactWordBonus = d.ExactWordBonus
	}
	if c.FuzzyWordBonus == 0 {
		c.FuzzyWordBonus = d.FuzzyWordBonus
	}
	if c.MinFuzzyWordLength == 0 {
		c.MinFuzzyWordLength = d.MinFuzzyWordLength
	}
	if c.ThreeWordMatchBonus == 0 {
		c.ThreeWordMatchBonus = d.ThreeWordMatchBonus
	}
	if c.TwoWordMatchBonus == 0 {
		c.TwoWordMatchBonus = d.TwoWordMatchBonus
	}
	if c.TitleChunkBonus == 0 {
		c.TitleChunkBonus = d.TitleChunkBonus
	}
	if c.TitleMaxLength == 0 {
		c.TitleMaxLength = d.TitleMaxLength
	}
	if c.SweetSpotBonus == 0 {
		c.SweetSpotBonus = d.SweetSpotBonus
	}
	if c.SweetSpotMinWords == 0 {
		c.SweetSpotMinWords = d.SweetSpotMinWords
	}
	if c.SweetSpotMaxWords == 0 {
		c.SweetSpotMaxWords = d.SweetSpotMaxWords
	}
	if c.PunctuationBonus == 0 {
		c.PunctuationBonus = d.PunctuationBonus
	}
	if c.PunctuationDensityMin == 0 {
		c.PunctuationDensityMin = d.PunctuationDensityMin
	}
	if c.PunctuationDensityMax == 0 {
		c.PunctuationDensityMax = d.PunctuationDensityMax
	}
	if c.ListMarkerBonus == 0 {
		c.ListMarkerBonus = d.ListMarkerBonus
	}
	if c.MaxListMarkers == 0 {
		c.MaxListMarkers = d.MaxListMarkers
	}
	if c.TopChunksPerDocument == 0 {
		c.TopChunksPerDocument = d.TopChunksPerDocument
	}
	if c.WideSampleSize == 0 {
		c.WideSampleSize = d.WideSampleSize
	}
	if c.UniqueWordBonus == 0 {
		c.UniqueWordBonus = d.UniqueWordBonus
	}
	if c.CoverageMultiplier == 0 {
		c.CoverageMultiplier = d.CoverageMultiplier
	}
	if c.OccurrenceBonus == 0 {
		c.OccurrenceBonus = d.OccurrenceBonus
	}
	if c.MaxOccurrenceBonus == 0 {
		c.MaxOccurrenceBonus = d.MaxOccurrenceBonus
	}
	if c.SecondDocumentRatio == 0 {
		c.SecondDocumentRatio = d.SecondDocumentRatio
	}
	if c.RelevantDocumentBoost == 0 {
		c.RelevantDocumentBoost = d.RelevantDocumentBoost
	}
	if c.ComprehensiveTokenCount == 0 {
		c.ComprehensiveTokenCount = d.ComprehensiveTokenCount
	}
	if c.MinDigitGroups == 0 {
		c.MinDigitGroups = d.MinDigitGroups
	}
	if c.RegimeCutoff == 0 {
		c.RegimeCutoff = d.RegimeCutoff
	}
	if c.VectorScoreThreshold == 0 {
		c.VectorScoreThreshold = d.VectorScoreThreshold
	}
	if c.LexicalScoreThreshold == 0 {
		c.LexicalScoreThreshold = d.LexicalScoreThreshold
	}
	if c.MinQualifyingResults == 0 {
		c.MinQualifyingResults = d.MinQualifyingResults
	}
	if c.MinScoreSpread == 0 {
		c.MinScoreSpread = d.MinScoreSpread
	}
	if c.TopScoreMargin == 0 {
		c.TopScoreMargin = d.TopScoreMargin
	}
	if c.HighConfidenceVector == 0 {
		c.HighConfidenceVector = d.HighConfidenceVector
	}
	if c.HighConfidenceLexical == 0 {
		c.HighConfidenceLexical = d.HighConfidenceLexical
	}
}
