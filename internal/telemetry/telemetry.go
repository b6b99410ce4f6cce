// Package telemetry provides the fire-and-forget event sink consumed by
// the function registry and resolution chain.
//
// Delivery failure of telemetry must never affect the Result returned to
// the caller: Emit has no error return and implementations swallow their
// own failures.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Event is one telemetry record. Tier and ErrorClass are optional.
type Event struct {
	Type           string
	Operation      string
	Tier           string
	CacheHit       bool
	LatencyMs      int64
	Success        bool
	ErrorClass     string
	ConversationID string
}

// Event types emitted by the core.
const (
	EventInvocation   = "function.invocation"
	EventDegradedTier = "resolution.tier_degraded"
	EventTierAnswered = "resolution.tier_answered"
)

// ErrorClass reduces an error to a stable class name for Event.ErrorClass:
// the dynamic type of the innermost wrapped error. Free-form error strings
// carry query text and hostnames, which makes them useless for aggregation.
func ErrorClass(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return fmt.Sprintf("%T", err)
}

// Sink receives events. Implementations must be safe for concurrent use
// and must not block the caller on delivery.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NewNop returns a sink that discards everything. Intended for tests and
// for running without a telemetry backend.
func NewNop() Sink {
	return nopSink{}
}

type nopSink struct{}

func (nopSink) Emit(context.Context, Event) {}

// Memory is an in-memory sink for tests.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Emit records the event.
func (m *Memory) Emit(_ context.Context, event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything emitted so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// ByType returns emitted events of one type.
func (m *Memory) ByType(eventType string) []Event {
	var matched []Event
	for _, event := range m.Events() {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
