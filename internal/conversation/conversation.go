// Package conversation provides session tracking and the conversational
// fallback. Persistence is the caller's concern; the reference Store keeps
// bounded history in memory.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/prompt"
	"github.com/hyperjump/kotae/internal/provider"
)

// Manager is the conversation collaborator contract.
type Manager interface {
	// GetOrCreateSession returns the current session ID, creating a fresh
	// session when startNew is true or none exists.
	GetOrCreateSession(startNew bool) string
	// GetHistory returns the formatted history for a session.
	GetHistory(sessionID string) string
	// Append records one query/answer exchange.
	Append(sessionID, query, answer string)
	// HandleGeneralConversation produces the terminal fallback answer.
	HandleGeneralConversation(ctx context.Context, query, history, language string) (string, error)
}

// Store is an in-memory Manager with bounded per-session history.
type Store struct {
	generator provider.Generator
	prompts   *prompt.Builder
	maxTurns  int
	mu        sync.Mutex
	current   string
	histories map[string][]turn
}

type turn struct {
	query  string
	answer string
}

// NewStore creates a Store keeping up to maxTurns exchanges per session.
func NewStore(generator provider.Generator, prompts *prompt.Builder, maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &Store{
		generator: generator,
		prompts:   prompts,
		maxTurns:  maxTurns,
		histories: make(map[string][]turn),
	}
}

// GetOrCreateSession returns the current session, starting a new one when
// asked or when no session exists yet.
func (s *Store) GetOrCreateSession(startNew bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if startNew || s.current == "" {
		s.current = uuid.New().String()
		s.histories[s.current] = nil
	}
	return s.current
}

// GetHistory formats the session history as alternating User/Assistant lines.
func (s *Store) GetHistory(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.histories[sessionID]
	if len(turns) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&sb, "User: %s\nAssistant: %s\n", t.query, t.answer)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Append records an exchange, evicting the oldest when over capacity.
func (s *Store) Append(sessionID, query, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.histories[sessionID], turn{query: query, answer: answer})
	if len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}
	s.histories[sessionID] = turns
}

// HandleGeneralConversation asks the generator for a conversational answer.
// This is the terminal safety net: it is only reached when every retrieval
// backend produced nothing useful.
func (s *Store) HandleGeneralConversation(ctx context.Context, query, history, language string) (string, error) {
	return s.generator.Generate(ctx, s.prompts.Conversation(query, history, language))
}
