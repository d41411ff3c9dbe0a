package ranking

import (
	"sort"
	"strings"
)

// Aggregator rolls chunk scores up to document-level relevance scores,
// rewarding coverage of the whole query and words unique to one document.
type Aggregator struct {
	config *ScoringConfig
}

// NewAggregator creates an Aggregator with the given config.
func NewAggregator(config *ScoringConfig) *Aggregator {
	if config == nil {
		config = DefaultScoringConfig()
	}
	return &Aggregator{config: config}
}

// ScoreDocuments computes a relevance score per document from chunk-scored
// results, sorted descending by final score.
//
// The base is the average of each document's top chunk scores. From a wider
// chunk sample per document, whole-word presence of each query word is
// collected to find words unique to one document (strong discriminators),
// the query coverage ratio (squared, so a document containing all query
// words beats one with high frequency of a subset), and total occurrence
// counts.
func (a *Aggregator) ScoreDocuments(scored []*ScoredChunk, query *AnalyzedQuery) []*DocumentScore {
	byDoc := make(map[string][]*ScoredChunk)
	order := make([]string, 0)
	for _, sc := range scored {
		if sc.Chunk == nil {
			continue
		}
		id := sc.Chunk.DocumentID
		if _, ok := byDoc[id]; !ok {
			order = append(order, id)
		}
		byDoc[id] = append(byDoc[id], sc)
	}

	// wordDocs maps each query word to the set of documents containing it.
	wordDocs := make(map[string]map[string]bool)
	// wordHits tracks per-document distinct-word coverage and occurrences.
	type docHits struct {
		distinct    int
		occurrences int
	}
	hits := make(map[string]*docHits)

	results := make([]*DocumentScore, 0, len(order))
	for _, docID := range order {
		chunks := byDoc[docID]
		sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].Score > chunks[j].Score })

		topN := a.config.TopChunksPerDocument
		if topN > len(chunks) {
			topN = len(chunks)
		}
		base := 0.0
		for i := 0; i < topN; i++ {
			base += chunks[i].Score
		}
		if topN > 0 {
			base /= float64(topN)
		}

		sample := a.config.WideSampleSize
		if sample > len(chunks) {
			sample = len(chunks)
		}
		h := &docHits{}
		hits[docID] = h
		for _, word := range query.Words {
			occurrences := 0
			for i := 0; i < sample; i++ {
				occurrences += CountWholeWord(strings.ToLower(chunks[i].Chunk.Content), word)
			}
			if occurrences > 0 {
				h.distinct++
				h.occurrences += occurrences
				if wordDocs[word] == nil {
					wordDocs[word] = make(map[string]bool)
				}
				wordDocs[word][docID] = true
			}
		}

		results = append(results, &DocumentScore{
			DocumentID:  docID,
			Base:        base,
			Occurrences: h.occurrences,
		})
	}

	for _, ds := range results {
		h := hits[ds.DocumentID]
		for _, docs := range wordDocs {
			if len(docs) == 1 && docs[ds.DocumentID] {
				ds.UniqueWords++
			}
		}
		if len(query.Words) > 0 {
			ds.Coverage = float64(h.distinct) / float64(len(query.Words))
		}
		// The occurrence contribution is capped so raw frequency can never
		// outweigh coverage and uniqueness: a document containing every
		// query word outranks one repeating a subset, no matter how often.
		occurrence := float64(ds.Occurrences) * a.config.OccurrenceBonus
		if occurrence > a.config.MaxOccurrenceBonus {
			occurrence = a.config.MaxOccurrenceBonus
		}
		ds.Final = ds.Base +
			float64(ds.UniqueWords)*a.config.UniqueWordBonus +
			ds.Coverage*ds.Coverage*a.config.CoverageMultiplier +
			occurrence
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Final > results[j].Final })
	return results
}

// RelevantDocuments returns the IDs of documents judged relevant: always
// the top-scoring document when its score is positive, plus the second
// ranked document when its score is within the configured ratio of the top.
func (a *Aggregator) RelevantDocuments(scores []*DocumentScore) map[string]bool {
	relevant := make(map[string]bool)
	if len(scores) == 0 || scores[0].Final <= 0 {
		return relevant
	}
	relevant[scores[0].DocumentID] = true
	if len(scores) > 1 && scores[1].Final >= scores[0].Final*a.config.SecondDocumentRatio {
		relevant[scores[1].DocumentID] = true
	}
	return relevant
}

// BoostRelevant adds a fixed boost to chunks belonging to relevant documents
// and marks them, so chunks from the right document are not crowded out by
// many mediocre chunks from other documents. A new slice is returned; the
// input is not modified.
func (a *Aggregator) BoostRelevant(scored []*ScoredChunk, relevant map[string]bool) []*ScoredChunk {
	out := make([]*ScoredChunk, len(scored))
	for i, sc := range scored {
		boosted := *sc
		if sc.Chunk != nil && relevant[sc.Chunk.DocumentID] {
			boosted.Score += a.config.RelevantDocumentBoost
			boosted.FromRelevantDocument = true
		}
		out[i] = &boosted
	}
	return out
}
