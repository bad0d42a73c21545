// Package tutor implements the assistant surface runtime: it owns the
// session lifecycle and the transcript, drives one reply stream at a time,
// and keeps the visible conversation consistent while events arrive.
//
// The surface initializes from configuration via New, creating its
// subsystems internally. Functional options allow overrides of any
// subsystem.
//
//	s, err := tutor.New(&cfg, tutor.WithUpdateFunc(render))
//	s.Open()
//	err = s.Submit(ctx, "What are the admission deadlines?")
package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-ai/tutor/core/chat"
	"github.com/campus-ai/tutor/locale"
	"github.com/campus-ai/tutor/observability"
	"github.com/campus-ai/tutor/provider"
	"github.com/campus-ai/tutor/session"
	"github.com/campus-ai/tutor/transcript"
)

// State is the surface lifecycle state.
type State int

const (
	StateClosed State = iota
	StateIdle
	StateStreaming
)

// UpdateFunc receives the full ordered transcript after every change.
// It runs synchronously between stream events; keep it cheap.
type UpdateFunc func(turns []chat.Turn)

// Option configures a Surface after config-driven initialization.
type Option func(*Surface)

// WithProvider overrides the config-created transport.
func WithProvider(p provider.Provider) Option {
	return func(s *Surface) { s.provider = p }
}

// WithLocales overrides the config-created locale provider.
func WithLocales(l *locale.Provider) Option {
	return func(s *Surface) { s.locales = l }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(s *Surface) { s.observer = o }
}

// WithUpdateFunc sets the presentation callback.
func WithUpdateFunc(fn UpdateFunc) Option {
	return func(s *Surface) { s.onUpdate = fn }
}

// Surface is one assistant surface instance. Independent surfaces share no
// mutable state; each owns its session and transcript exclusively.
type Surface struct {
	provider provider.Provider
	locales  *locale.Provider
	observer observability.Observer
	tracer   trace.Tracer
	onUpdate UpdateFunc

	// mu guards lifecycle state. The transcript has its own lock; stream
	// consumption itself runs lock-free on the submitting goroutine.
	mu      sync.Mutex
	state   State
	session *session.Session
	log     *transcript.Transcript
	cancel  context.CancelFunc
}

// New creates a Surface from configuration. The transport is resolved
// through the provider registry and the locale provider from its bundle
// directory; options applied afterwards can override either. The surface
// starts closed; call Open before submitting.
//
// A locale change while the surface is open discards the session and
// transcript and reopens with the new instruction and greeting.
func New(cfg *Config, opts ...Option) (*Surface, error) {
	p, err := provider.New(&cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	locales, err := locale.NewProvider(&cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create locale provider: %w", err)
	}

	s := &Surface{
		provider: p,
		locales:  locales,
		observer: observability.NewSlogObserver(slog.Default()),
		tracer:   otel.Tracer("tutor"),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.locales.Subscribe(func(tag string) {
		s.mu.Lock()
		open := s.state != StateClosed
		s.mu.Unlock()
		if !open {
			return
		}

		s.observer.OnEvent(context.Background(), observability.Event{
			Type:      EventLocaleChange,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "tutor.Surface",
			Data:      map[string]any{"locale": tag},
		})
		s.Open()
	})

	return s, nil
}

// Locales returns the surface's locale provider.
func (s *Surface) Locales() *locale.Provider {
	return s.locales
}

// State returns the current lifecycle state.
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a defensive copy of the visible conversation, in
// render order. Empty while the surface has never been opened.
func (s *Surface) Transcript() []chat.Turn {
	s.mu.Lock()
	log := s.log
	s.mu.Unlock()

	if log == nil {
		return nil
	}
	return log.Turns()
}

// SessionID returns the active session's identifier, or "" when closed.
func (s *Surface) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.ID()
}

// Open creates a fresh session for the active locale and resets the
// transcript to a single greeting turn. Any previous session, transcript,
// and in-flight stream are discarded; opening never contacts the remote
// service and never fails.
func (s *Surface) Open() {
	instruction := s.locales.T("tutor.instruction", nil)
	greeting := s.locales.T("tutor.greeting", nil)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.session = session.New(s.provider, instruction)
	s.log = transcript.New()
	s.log.Append(chat.NewTurn(chat.RoleAssistant, greeting))
	s.state = StateIdle

	id := s.session.ID()
	log := s.log
	s.mu.Unlock()

	s.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventOpen,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "tutor.Surface",
		Data: map[string]any{
			"session": id,
			"locale":  s.locales.Locale(),
		},
	})

	s.publish(log)
}

// Close shuts the surface: any in-flight stream is cancelled and further
// submissions are rejected until the next Open. The transcript is retained
// for rendering until a new session replaces it.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateClosed
}

// Submit sends one user prompt and consumes the reply stream to
// completion, mutating the transcript and invoking the update callback
// after each event. Submit blocks until the turn finalizes; hosts that
// need a responsive loop run it on its own goroutine.
//
// A prompt that is empty after trimming returns ErrEmptyPrompt and a
// submission while a turn is streaming returns ErrBusy; neither touches
// the transcript. Stream failures never propagate: the assistant turn is
// finalized with the locale's substitute error text and Submit returns
// nil.
func (s *Surface) Submit(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}

	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return ErrClosed
	case StateStreaming:
		s.mu.Unlock()
		return ErrBusy
	}

	log := s.log
	sess := s.session
	if err := log.Begin(prompt); err != nil {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateStreaming

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "tutor.Submit")
	defer span.End()

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventSubmit,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "tutor.Submit",
		Data: map[string]any{
			"session":       sess.ID(),
			"prompt_length": len(prompt),
		},
	})

	s.publish(log)

	events := 0
	st := sess.Stream(ctx, prompt)
	for {
		event, ok := st.Recv(ctx)
		if !ok {
			break
		}

		log.Advance(event.Text, event.Sources)
		events++

		s.observer.OnEvent(ctx, observability.Event{
			Type:      EventStreamEvent,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "tutor.Submit",
			Data: map[string]any{
				"session":      sess.ID(),
				"delta_length": len(event.Text),
				"candidates":   len(event.Sources),
			},
		})

		s.publish(log)
	}

	if err := st.Err(); err != nil {
		log.Fail(s.locales.T("tutor.error", nil))

		s.observer.OnEvent(ctx, observability.Event{
			Type:      EventStreamError,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    "tutor.Submit",
			Data: map[string]any{
				"session": sess.ID(),
				"error":   err.Error(),
			},
		})
	} else {
		log.Finalize()

		s.observer.OnEvent(ctx, observability.Event{
			Type:      EventStreamComplete,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "tutor.Submit",
			Data: map[string]any{
				"session": sess.ID(),
				"events":  events,
			},
		})
	}

	s.mu.Lock()
	// A locale change mid-stream replaces the transcript and Close
	// transitions the state; either way this turn only rolls back its own
	// bookkeeping.
	if s.log == log && s.state == StateStreaming {
		s.state = StateIdle
		s.cancel = nil
	}
	s.mu.Unlock()

	s.publish(log)
	return nil
}

// publish pushes a transcript snapshot to the presentation callback,
// unless the transcript has been superseded by a newer session.
func (s *Surface) publish(log *transcript.Transcript) {
	if s.onUpdate == nil {
		return
	}

	s.mu.Lock()
	current := s.log == log
	s.mu.Unlock()
	if !current {
		return
	}

	s.onUpdate(log.Turns())
}
