// Package transcript maintains the ordered log of conversation turns for
// one assistant surface. At most one turn (always the most recently
// appended assistant turn) is "active" and mutated in place as reply
// events arrive; every other turn is immutable.
package transcript

import (
	"errors"
	"sync"

	"github.com/campus-ai/tutor/core/chat"
)

// ErrTurnActive is returned by Begin while a previous turn is still
// receiving events.
var ErrTurnActive = errors.New("a turn is already streaming")

// Transcript is an append-only log of turns, safe for concurrent reads
// while a single writer drives the active turn.
type Transcript struct {
	mu     sync.RWMutex
	turns  []chat.Turn
	active bool
}

// New creates an empty Transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append adds a finalized turn to the log. Used for synthesized turns such
// as the opening greeting.
func (t *Transcript) Append(turn chat.Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Begin records a user prompt and opens the assistant turn that will
// receive its reply: the user turn and an empty assistant placeholder are
// appended atomically, and the placeholder becomes the active turn.
// Returns ErrTurnActive, without touching the log, if a turn is already
// streaming.
func (t *Transcript) Begin(prompt string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return ErrTurnActive
	}

	t.turns = append(t.turns,
		chat.NewTurn(chat.RoleUser, prompt),
		chat.NewTurn(chat.RoleAssistant, ""),
	)
	t.active = true
	return nil
}

// Advance applies one reply event to the active turn: the delta is
// appended to the turn's text and the candidates are merged into its
// sources (deduplicated by URI, first seen wins). Ignored when no turn is
// active.
func (t *Transcript) Advance(delta string, candidates []chat.Source) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	turn := &t.turns[len(t.turns)-1]
	turn.Text += delta
	turn.Sources = MergeSources(turn.Sources, candidates)
}

// Finalize freezes the active turn. The transcript returns to the
// "no turn active" state, permitting the next Begin.
func (t *Transcript) Finalize() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

// Fail replaces the active turn's content with a substitute message,
// drops any accumulated sources, and freezes the turn. Ignored when no
// turn is active.
func (t *Transcript) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	turn := &t.turns[len(t.turns)-1]
	turn.Text = message
	turn.Sources = nil
	t.active = false
}

// Active reports whether a turn is currently receiving events.
func (t *Transcript) Active() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Len returns the number of turns in the log.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Turns returns a defensive copy of the log in insertion order.
func (t *Transcript) Turns() []chat.Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Turn, len(t.turns))
	for i, turn := range t.turns {
		copied[i] = turn.Clone()
	}
	return copied
}
