package tutor

import "github.com/campus-ai/tutor/observability"

// Surface event types emitted during the conversation lifecycle.
const (
	EventOpen           observability.EventType = "tutor.open"
	EventLocaleChange   observability.EventType = "tutor.locale.change"
	EventSubmit         observability.EventType = "tutor.submit"
	EventStreamEvent    observability.EventType = "tutor.stream.event"
	EventStreamComplete observability.EventType = "tutor.stream.complete"
	EventStreamError    observability.EventType = "tutor.stream.error"
)
