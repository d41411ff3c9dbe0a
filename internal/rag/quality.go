package rag

import "strings"

// missingDataIndicators are answer fragments that mark a technically
// successful backend call as carrying no data. They keep a confident-
// sounding but vacuous answer from short-circuiting better sources.
var missingDataIndicators = []string{
	"no data",
	"no results",
	"no records",
	"no rows",
	"0 rows",
	"zero rows",
	"not found",
	"no matching",
	"no information",
	"cannot find",
	"could not find",
	"couldn't find",
	"i don't know",
	"i do not know",
	"does not contain",
	"unable to answer",
}

// IndicatesMissingData reports whether an answer matches a known
// emptiness/negation pattern.
func IndicatesMissingData(answer string) bool {
	lowered := strings.ToLower(answer)
	for _, indicator := range missingDataIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

// HasMeaningfulData reports whether an answer is worth returning: non-empty,
// not a missing-data pattern, and not merely an echo of the query with no
// new information.
func HasMeaningfulData(answer, query string) bool {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return false
	}
	if IndicatesMissingData(trimmed) {
		return false
	}
	return !echoesQuery(trimmed, query)
}

// echoesQuery detects answers that restate the query without adding
// information.
func echoesQuery(answer, query string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if a == q {
		return true
	}
	return strings.Contains(a, q) && len(a) <= len(q)+len(q)/5
}
