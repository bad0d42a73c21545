// Package stream provides a channel-backed, single-consumer sequence of
// values produced by one goroutine and consumed by another. A Stream is
// finite: the producer closes it exactly once, optionally with an error,
// and the consumer observes that error only after draining all values.
package stream

import (
	"context"
	"sync"
	"sync/atomic"
)

// Stream delivers values from one producer to one consumer in send order.
// Close (or CloseWithError) is required; Recv never returns false before it.
type Stream[T any] struct {
	ch     chan T
	closed atomic.Int32

	mu  sync.Mutex
	err error
}

// New creates a Stream with the given buffer size.
func New[T any](bufferSize int) *Stream[T] {
	return &Stream[T]{
		ch: make(chan T, bufferSize),
	}
}

// Send delivers a value to the consumer, blocking until the value is
// accepted or ctx is done. Sending on a closed stream panics; producers
// must not call Send after Close.
func (s *Stream[T]) Send(ctx context.Context, value T) error {
	select {
	case s.ch <- value:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv returns the next value in send order. ok is false once the stream
// is closed and drained, or when ctx is done before a value arrives; in the
// ctx case the context error is recorded and visible through Err.
func (s *Stream[T]) Recv(ctx context.Context) (value T, ok bool) {
	select {
	case value, ok = <-s.ch:
		return value, ok
	case <-ctx.Done():
		s.fail(ctx.Err())
		var zero T
		return zero, false
	}
}

// Close marks the stream complete. Idempotent; values already sent remain
// receivable.
func (s *Stream[T]) Close() {
	if s.closed.CompareAndSwap(0, 1) {
		close(s.ch)
	}
}

// CloseWithError marks the stream complete with a terminal error. The first
// recorded error wins; later calls still close the stream.
func (s *Stream[T]) CloseWithError(err error) {
	s.fail(err)
	s.Close()
}

// Err reports the terminal error, if any. Meaningful only after Recv has
// returned ok == false.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Closed reports whether the producer has closed the stream.
func (s *Stream[T]) Closed() bool {
	return s.closed.Load() == 1
}

func (s *Stream[T]) fail(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
