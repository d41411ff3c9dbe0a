// Package prompt builds the textual prompts for document-RAG, hybrid-merge,
// and conversational calls.
package prompt

import (
	"fmt"
	"strings"
)

// Builder assembles prompts. It is stateless and safe for concurrent use.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Document builds the prompt for answering a query from document evidence.
func (b *Builder) Document(query, context, history, language string) string {
	var sb strings.Builder
	sb.WriteString("You are a precise assistant. Answer the question using only the provided context.\n")
	sb.WriteString("If the context does not contain the answer, say you do not know.\n")
	b.writeLanguage(&sb, language)
	if history != "" {
		fmt.Fprintf(&sb, "\nConversation so far:\n%s\n", history)
	}
	fmt.Fprintf(&sb, "\nContext:\n%s\n", context)
	fmt.Fprintf(&sb, "\nQuestion: %s\nAnswer:", query)
	return sb.String()
}

// Merge builds the prompt that combines a database answer and a document
// answer into one response for a hybrid query.
func (b *Builder) Merge(query, databaseAnswer, documentAnswer, language string) string {
	var sb strings.Builder
	sb.WriteString("Two independent sources answered the same question.\n")
	sb.WriteString("Combine them into a single coherent answer. Prefer concrete figures from the database result; use the document result for explanation and context. Do not repeat information.\n")
	b.writeLanguage(&sb, language)
	fmt.Fprintf(&sb, "\nQuestion: %s\n", query)
	fmt.Fprintf(&sb, "\nDatabase result:\n%s\n", databaseAnswer)
	fmt.Fprintf(&sb, "\nDocument result:\n%s\n", documentAnswer)
	sb.WriteString("\nCombined answer:")
	return sb.String()
}

// Conversation builds the prompt for the general conversational fallback.
func (b *Builder) Conversation(query, history, language string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant. Answer conversationally.\n")
	b.writeLanguage(&sb, language)
	if history != "" {
		fmt.Fprintf(&sb, "\nConversation so far:\n%s\n", history)
	}
	fmt.Fprintf(&sb, "\nUser: %s\nAssistant:", query)
	return sb.String()
}

func (b *Builder) writeLanguage(sb *strings.Builder, language string) {
	if language != "" {
		fmt.Fprintf(sb, "Respond in %s.\n", language)
	}
}
