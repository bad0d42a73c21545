// Package chat defines the conversation value types shared across the tutor
// runtime: transcript turns, cited web sources, and the incremental stream
// events a provider emits while producing an assistant reply.
package chat

import "slices"

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a cited web resource backing part of an assistant answer.
// URI is the unique identity of the source; Title is display text and
// falls back to the URI when the provider supplies none.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Turn is a single message in a transcript. Sources is nil for user turns
// and for assistant turns without citations.
type Turn struct {
	Role    Role     `json:"role"`
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

// NewTurn creates a Turn with the given role and text.
func NewTurn(role Role, text string) Turn {
	return Turn{Role: role, Text: text}
}

// Clone returns a deep copy of the turn. Mutating the copy's Sources does
// not affect the original.
func (t Turn) Clone() Turn {
	t.Sources = slices.Clone(t.Sources)
	return t
}

// StreamEvent is one incremental delivery unit of an assistant reply.
// Text carries the next delta (possibly empty) and Sources carries raw
// candidate citations attached to this delta, in provider order. Candidates
// are unfiltered: duplicates and entries without a URI are expected and are
// handled downstream.
type StreamEvent struct {
	Text    string
	Sources []Source
}
