package ranking

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// questionRunes is the question-mark family across scripts.
const questionRunes = "?¿؟"

// listMarkerPatterns detect numbered-list items: "1.", "1)", "1-", and
// "1 Capital" (a digit immediately introducing a capitalized item).
var listMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)(?:^|\s)\d+\.\s`),
	regexp.MustCompile(`(?m)(?:^|\s)\d+\)\s`),
	regexp.MustCompile(`(?m)(?:^|\s)\d+-\s`),
	regexp.MustCompile(`\d+\s+\p{Lu}`),
}

var digitGroupPattern = regexp.MustCompile(`\d+`)

// QueryAnalyzer tokenizes queries, extracts potential name phrases, and
// detects structural signals that call for comprehensive retrieval.
// Detection is language-agnostic: only structure, no keyword lists.
type QueryAnalyzer struct {
	config *ScoringConfig
}

// NewQueryAnalyzer creates a QueryAnalyzer with the given config.
func NewQueryAnalyzer(config *ScoringConfig) *QueryAnalyzer {
	if config == nil {
		config = DefaultScoringConfig()
	}
	return &QueryAnalyzer{config: config}
}

// Analyze tokenizes the query and computes all structural signals.
func (qa *QueryAnalyzer) Analyze(query string) *AnalyzedQuery {
	return &AnalyzedQuery{
		Original:       query,
		Words:          Tokenize(query),
		PotentialNames: ExtractPotentialNames(query),
		Comprehensive:  qa.NeedsComprehensiveSearch(query),
	}
}

// NeedsComprehensiveSearch reports whether the query requires wide,
// multi-chunk retrieval. Any single signal is sufficient.
func (qa *QueryAnalyzer) NeedsComprehensiveSearch(query string) bool {
	questionMarks := 0
	for _, r := range query {
		if strings.ContainsRune(questionRunes, r) {
			questionMarks++
		}
	}
	hasDigit := strings.IndexFunc(query, unicode.IsDigit) >= 0
	listMarkers := CountListMarkers(query)

	if questionMarks > 0 && (hasDigit || listMarkers > 0) {
		return true
	}
	if len(digitGroupPattern.FindAllString(query, -1)) >= qa.config.MinDigitGroups {
		return true
	}
	if len(Tokenize(query)) >= qa.config.ComprehensiveTokenCount {
		return true
	}
	if listMarkers > 0 {
		return true
	}
	return questionMarks >= 2
}

// Tokenize splits a query into normalized lowercase tokens. Edge punctuation
// is stripped; internal hyphens and underscores are kept; tokens shorter
// than two runes are dropped.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := normalizeToken(f)
		if len([]rune(t)) >= 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func normalizeToken(token string) string {
	token = strings.ToLower(token)
	return strings.TrimFunc(token, func(r rune) bool {
		return (unicode.IsPunct(r) || unicode.IsSymbol(r)) && r != '-' && r != '_'
	})
}

// ExtractPotentialNames finds runs of two or more capitalized words in the
// query and returns them as lowercase phrases. Such runs usually denote
// proper names (people, products, places) and match with the highest bonus.
func ExtractPotentialNames(query string) []string {
	fields := strings.Fields(query)
	var names []string
	var run []string
	flush := func() {
		if len(run) >= 2 {
			names = append(names, strings.ToLower(strings.Join(run, " ")))
		}
		run = nil
	}
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w != "" && unicode.IsUpper([]rune(w)[0]) {
			run = append(run, w)
			continue
		}
		flush()
	}
	flush()
	return names
}

// CountListMarkers counts numbered-list markers in the text.
func CountListMarkers(text string) int {
	count := 0
	for _, p := range listMarkerPatterns {
		count += len(p.FindAllStringIndex(text, -1))
	}
	return count
}

// ContainsWholeWord reports whether word occurs in text delimited by
// non-alphanumeric runes on both sides. A plain substring check would
// wrongly match "cat" inside "category". Both arguments are expected to
// be lowercase.
func ContainsWholeWord(text, word string) bool {
	return CountWholeWord(text, word) > 0
}

// CountWholeWord counts whole-word occurrences of word in text. Both
// arguments are expected to be lowercase.
func CountWholeWord(text, word string) int {
	if word == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return count
		}
		start := offset + i
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
		}
		offset = start + len(word)
	}
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
