// Package session provides the opaque handle for one dialogue with the
// remote assistant. A session binds a system instruction to an open
// provider conversation for its whole lifetime; changing the instruction
// means opening a new session and dropping the old one.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-ai/tutor/core/chat"
	"github.com/campus-ai/tutor/provider"
	"github.com/campus-ai/tutor/stream"
)

// Session is one ongoing dialogue. Every New call yields a fresh,
// independent session; there is no pooling and no reuse. Sessions have no
// teardown call; dropping the last reference ends the dialogue.
type Session struct {
	id          string
	instruction string
	conv        provider.Conversation
}

// New opens a session against p with the given system instruction. Opening
// never fails; transport problems surface on the first streamed turn.
// The session is assigned a unique UUIDv7 identifier.
func New(p provider.Provider, instruction string) *Session {
	return &Session{
		id:          uuid.Must(uuid.NewV7()).String(),
		instruction: instruction,
		conv:        p.Open(instruction),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Instruction returns the system instruction the session was opened with.
func (s *Session) Instruction() string {
	return s.instruction
}

// Stream sends one turn and returns the reply event stream. Callers must
// not start a new turn until the returned stream has closed.
func (s *Session) Stream(ctx context.Context, prompt string) *stream.Stream[chat.StreamEvent] {
	return s.conv.Stream(ctx, prompt)
}
