// Package indexer provides boundary-safe document chunking and ingestion.
package indexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/models"
)

const (
	// widenCap bounds the widened boundary search window.
	widenCap = 500
	// lastResortRadius is the fixed radius of the final boundary scan.
	lastResortRadius = 100
)

// Chunker splits text into bounded segments that never cut a word in half.
// Offsets are rune offsets into the original text.
type Chunker struct {
	maxSize int
	minSize int
	overlap int
}

// NewChunker creates a chunker. maxSize and minSize are in runes; overlap is
// the number of runes shared between consecutive chunks.
func NewChunker(maxSize, minSize, overlap int) *Chunker {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if minSize < 0 || minSize >= maxSize {
		minSize = maxSize / 10
	}
	if overlap < 0 || overlap >= maxSize {
		overlap = 0
	}
	return &Chunker{maxSize: maxSize, minSize: minSize, overlap: overlap}
}

// Chunk splits text into ordered chunks covering the whole text. Chunk
// boundaries prefer sentence ends, then paragraph breaks, then word
// boundaries; a chosen boundary never lands inside an alphanumeric run.
// Empty or whitespace-only candidate chunks are dropped and the index
// sequence stays contiguous from 0.
func (c *Chunker) Chunk(docID, text string) []*models.Chunk {
	runes := []rune(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(runes) <= c.maxSize {
		return []*models.Chunk{c.newChunk(docID, text, 0, 0, len(runes))}
	}

	var chunks []*models.Chunk
	index := 0
	pos := 0
	for pos < len(runes) {
		end := pos + c.maxSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = c.findBoundary(runes, pos, end)
			end = validateBoundary(runes, pos, end)
		}

		content := string(runes[pos:end])
		if strings.TrimSpace(content) != "" {
			chunks = append(chunks, c.newChunk(docID, content, index, pos, end))
			index++
		}
		if end >= len(runes) {
			break
		}

		next := end - c.overlap
		// Forward progress: if overlap would not advance the cursor,
		// force a one-rune minimum advance so chunking terminates.
		if next <= pos {
			next = pos + 1
		}
		pos = next
	}
	return chunks
}

func (c *Chunker) newChunk(docID, content string, index, start, end int) *models.Chunk {
	return &models.Chunk{
		ID:         fmt.Sprintf("%s_%s", docID, uuid.New().String()[:8]),
		DocumentID: docID,
		Content:    content,
		Index:      index,
		StartChar:  start,
		EndChar:    end,
	}
}

// findBoundary picks the best cut point in runes[start:limit], trying in
// priority order: sentence-ending punctuation, paragraph break, whitespace,
// any punctuation, a widened window, and a last-resort fixed-radius scan.
func (c *Chunker) findBoundary(runes []rune, start, limit int) int {
	floor := start + c.minSize

	if b := lastSentenceEnd(runes, floor, limit); b > floor {
		return b
	}
	if b := lastParagraphBreak(runes, floor, limit); b > floor {
		return b
	}
	if b := lastWhitespace(runes, floor, limit); b > floor {
		return b
	}
	if b := lastPunctuation(runes, floor, limit); b > floor {
		return b
	}

	// Widen the window by 10% of the document length, capped.
	widen := len(runes) / 10
	if widen > widenCap {
		widen = widenCap
	}
	wideLimit := limit + widen
	if wideLimit > len(runes) {
		wideLimit = len(runes)
	}
	if b := lastWhitespace(runes, floor, wideLimit); b > floor {
		return b
	}
	if b := lastPunctuation(runes, floor, wideLimit); b > floor {
		return b
	}

	// Last resort: fixed-radius scan around the hard limit.
	lo := limit - lastResortRadius
	if lo < start+1 {
		lo = start + 1
	}
	hi := limit + lastResortRadius
	if hi > len(runes) {
		hi = len(runes)
	}
	if b := lastWhitespace(runes, lo, hi); b > lo {
		return b
	}
	return limit
}

// validateBoundary walks the boundary backward to the nearest whitespace or
// punctuation when it falls in the middle of an alphanumeric run.
func validateBoundary(runes []rune, start, end int) int {
	if end <= start || end >= len(runes) {
		return end
	}
	if !isWordRune(runes[end-1]) || !isWordRune(runes[end]) {
		return end
	}
	for b := end - 1; b > start+1; b-- {
		if !isWordRune(runes[b-1]) {
			return b
		}
	}
	return end
}

func lastSentenceEnd(runes []rune, lo, hi int) int {
	for i := hi - 1; i >= lo; i-- {
		switch runes[i] {
		case '.', '!', '?', '。', '؟', '…':
			return i + 1
		}
	}
	return -1
}

func lastParagraphBreak(runes []rune, lo, hi int) int {
	for i := hi - 1; i > lo; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i + 1
		}
	}
	return -1
}

func lastWhitespace(runes []rune, lo, hi int) int {
	for i := hi - 1; i >= lo; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func lastPunctuation(runes []rune, lo, hi int) int {
	for i := hi - 1; i >= lo; i-- {
		if unicode.IsPunct(runes[i]) {
			return i + 1
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
