// Package audit hands post-execution AuditEvents off to an external sink
// without letting a slow or unavailable sink slow down the query path.
package audit

import (
	"sync/atomic"

	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// Sink receives audit events. Implementations must not block the caller for
// long — Publish is called on the hot path, synchronously, by AsyncSink's
// drain goroutine or directly by a caller that wants synchronous delivery.
type Sink interface {
	Publish(event types.AuditEvent)
}

// NoopSink discards every event. It's the default when no external audit
// system is configured.
type NoopSink struct{}

// Publish implements Sink.
func (NoopSink) Publish(types.AuditEvent) {}

// AsyncSink wraps another Sink with a bounded buffer and a single drain
// goroutine, so a slow downstream sink can never block the caller's request
// path. When the buffer is full, new events are dropped and counted rather
// than applying back-pressure to the caller.
type AsyncSink struct {
	events chan types.AuditEvent
	next   Sink
	log    logger.Interface

	droppedCount atomic.Uint64
}

// NewAsyncSink builds an AsyncSink delivering to next, buffering up to
// bufferSize pending events. A non-positive bufferSize defaults to 1024.
func NewAsyncSink(next Sink, bufferSize int, log logger.Interface) *AsyncSink {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if next == nil {
		next = NoopSink{}
	}
	s := &AsyncSink{
		events: make(chan types.AuditEvent, bufferSize),
		next:   next,
		log:    log,
	}
	go s.drain()
	return s
}

// Publish enqueues event for asynchronous delivery. It never blocks: a full
// buffer drops the event and increments the drop counter instead.
func (s *AsyncSink) Publish(event types.AuditEvent) {
	select {
	case s.events <- event:
	default:
		total := s.droppedCount.Add(1)
		if s.log != nil {
			s.log.Warn("audit event dropped, buffer full", "statement_id", event.StatementID, "dropped_total", total)
		}
	}
}

// Dropped reports how many events have been dropped due to back-pressure
// since this sink was created.
func (s *AsyncSink) Dropped() uint64 { return s.droppedCount.Load() }

func (s *AsyncSink) drain() {
	for event := range s.events {
		s.next.Publish(event)
	}
}

// Close stops accepting new events. The drain goroutine still delivers the
// events already buffered, but Close returns without waiting for that
// delivery. It is safe to call at most once.
func (s *AsyncSink) Close() {
	close(s.events)
}
