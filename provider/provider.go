// Package provider defines the transport boundary to the remote assistant
// service. A Provider opens Conversations; a Conversation turns prompts into
// ordered streams of incremental reply events. Concrete transports register
// themselves by name and are selected through configuration.
package provider

import (
	"context"

	"github.com/campus-ai/tutor/core/chat"
	"github.com/campus-ai/tutor/stream"
)

// Provider opens conversations with a remote assistant service.
type Provider interface {
	// Open starts a fresh conversation parameterized by a system
	// instruction. Open never fails: transports that cannot be reached
	// report the failure on the conversation's first Stream call.
	Open(instruction string) Conversation
}

// Conversation is one ongoing dialogue with the remote assistant. The
// conversation carries whatever ordering or context state the transport
// needs between turns; callers treat it as opaque.
//
// Implementations need not be safe for concurrent Stream calls: the runtime
// guarantees a new turn is not started until the previous turn's stream has
// closed.
type Conversation interface {
	// Stream sends a prompt and returns the reply as a finite stream of
	// events in delivery order. All failures, including failures to
	// establish the stream, surface through the stream's terminal error;
	// Stream itself never fails. The stream always terminates: transports
	// bound each turn with their own timeout in addition to ctx.
	Stream(ctx context.Context, prompt string) *stream.Stream[chat.StreamEvent]
}
