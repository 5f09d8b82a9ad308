package responder

import "github.com/ucroboticslab/go-pepper/pkg/inference"

// Defaults for conversation memory bounds.
const (
	DefaultMaxTurns    = 10
	DefaultTokenBudget = 1500

	// Rough bytes-per-token estimate used for the budget check.
	bytesPerToken = 4
)

// ConversationMemory is an ordered, bounded record of conversation turns.
// It is owned by a single responder and mutated only on that responder's
// goroutine, so it carries no lock.
type ConversationMemory struct {
	turns       []inference.Message
	maxTurns    int
	tokenBudget int
}

// NewConversationMemory creates a memory bounded by maxTurns messages and
// approximately tokenBudget tokens. Non-positive bounds fall back to the
// defaults.
func NewConversationMemory(maxTurns, tokenBudget int) *ConversationMemory {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &ConversationMemory{
		maxTurns:    maxTurns,
		tokenBudget: tokenBudget,
	}
}

// Add appends a turn and drops the oldest turns until both bounds hold.
func (m *ConversationMemory) Add(role inference.Role, content string) {
	m.turns = append(m.turns, inference.Message{Role: role, Content: content})
	m.trim()
}

// Turns returns the remembered messages, oldest first. The returned slice
// is a copy; the caller may append to it freely.
func (m *ConversationMemory) Turns() []inference.Message {
	return append([]inference.Message(nil), m.turns...)
}

// Len returns the number of remembered turns.
func (m *ConversationMemory) Len() int {
	return len(m.turns)
}

// Clear forgets all turns.
func (m *ConversationMemory) Clear() {
	m.turns = nil
}

func (m *ConversationMemory) trim() {
	for len(m.turns) > m.maxTurns {
		m.turns = m.turns[1:]
	}
	for len(m.turns) > 1 && m.approxTokens() > m.tokenBudget {
		m.turns = m.turns[1:]
	}
}

func (m *ConversationMemory) approxTokens() int {
	total := 0
	for _, t := range m.turns {
		total += len(t.Content) / bytesPerToken
	}
	return total
}
