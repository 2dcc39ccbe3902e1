// Copyright 2025 The Routekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trace

import (
	"fmt"
	"sync"
	"time"
)

// Layer names the subsystem a span was opened on behalf of.
type Layer string

const (
	LayerRequest  Layer = "request"
	LayerRouting  Layer = "routing"
	LayerData     Layer = "data"
	LayerCache    Layer = "cache"
	LayerForms    Layer = "forms"
	LayerSignals  Layer = "signals"
	LayerRPC      Layer = "rpc"
	LayerDatabase Layer = "database"
	LayerAuth     Layer = "auth"
	LayerIslands  Layer = "islands"
	LayerBuild    Layer = "build"
	LayerErrors   Layer = "errors"
)

// Status is the terminal disposition of a span.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// SpanEvent is a timestamped, named annotation attached to a span between
// its start and end.
type SpanEvent struct {
	Name       string
	Time       time.Time
	Attributes map[string]any
}

// Span is one node in a trace's call tree. A Span is safe for concurrent
// use; attribute and event methods may be called from any goroutine up
// until End returns.
type Span struct {
	mu sync.Mutex

	id       string
	traceID  string
	parentID string
	name     string
	layer    Layer

	startTime time.Time
	endTime   time.Time
	duration  time.Duration
	status    Status

	attributes map[string]any
	events     []SpanEvent
	childIDs   []string
	ended      bool

	tracer  *Tracer
	trace   *Trace
	tracked bool
}

// ID returns the span's identifier.
func (s *Span) ID() string { return s.id }

// TraceID returns the identifier of the trace this span belongs to.
func (s *Span) TraceID() string { return s.traceID }

// ParentID returns the identifier of this span's parent, or "" for a root.
func (s *Span) ParentID() string { return s.parentID }

// Name returns the span's name.
func (s *Span) Name() string { return s.name }

// Layer returns the subsystem this span was opened for.
func (s *Span) Layer() Layer { return s.layer }

// Status returns the span's terminal status. Before End is called this is
// StatusError if Error has been called, and the zero Status otherwise.
func (s *Span) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// StartTime returns when the span began.
func (s *Span) StartTime() time.Time { return s.startTime }

// EndTime returns when the span ended. Before End is called this is the
// zero time.
func (s *Span) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}

// Duration returns EndTime minus StartTime. Before End is called this is 0.
func (s *Span) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Attributes returns a snapshot copy of the span's attribute set.
func (s *Span) Attributes() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.attributes))
	for k, v := range s.attributes {
		out[k] = v
	}
	return out
}

// Events returns a snapshot copy of the span's recorded events, oldest
// first.
func (s *Span) Events() []SpanEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SpanEvent, len(s.events))
	copy(out, s.events)
	return out
}

// ChildIDs returns a snapshot copy of the IDs of spans opened via Child.
func (s *Span) ChildIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.childIDs))
	copy(out, s.childIDs)
	return out
}

// SetAttribute records a scalar key/value pair on the span. A later call
// with the same key overwrites the earlier value. Once End has been
// called the span is immutable: SetAttribute is a no-op.
func (s *Span) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.attributes == nil {
		s.attributes = make(map[string]any)
	}
	s.attributes[key] = value
}

// Event appends a named, timestamped annotation to the span. Once End has
// been called the span is immutable: Event is a no-op.
func (s *Span) Event(name string, attrs map[string]any) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	ev := SpanEvent{Name: name, Time: s.tracer.now(), Attributes: attrs}
	s.events = append(s.events, ev)
	s.mu.Unlock()

	if !s.tracked {
		return
	}
	s.tracer.publish(Event{Type: EventSpanEvent, Trace: s.trace, Span: s})
}

// Error records err as the span's terminal error: it sets status to
// StatusError, stores "error.message", and — since every Go error carries
// a concrete type — stores "error.class" as that type's name. Errors
// reported after End has been called are dropped.
func (s *Span) Error(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if s.attributes == nil {
		s.attributes = make(map[string]any)
	}
	s.status = StatusError
	s.attributes["error.message"] = err.Error()
	s.attributes["error.class"] = fmt.Sprintf("%T", err)
}

// Now returns the current time as seen by the span's tracer, so adapters
// that measure their own sub-durations use the same injectable clock as
// the rest of the tracer instead of the wall clock.
func (s *Span) Now() time.Time { return s.tracer.now() }

// Child opens a new span whose parent is s, within the same trace. Once
// the trace's span cap (see WithMaxSpansPerTrace) has been reached, further
// children are discarded silently: the returned Span remains fully usable
// but is not retained in the trace and emits no events.
func (s *Span) Child(name string, layer Layer) *Span {
	return s.tracer.newChildSpan(s.trace, s.id, name, layer)
}

// End marks the span complete. End is idempotent: calls after the first
// are no-ops. If Error was not called, the span's status is StatusOK.
func (s *Span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.endTime = s.tracer.now()
	s.duration = s.endTime.Sub(s.startTime)
	if s.status == "" {
		s.status = StatusOK
	}
	s.mu.Unlock()

	if !s.tracked {
		return
	}
	s.tracer.publish(Event{Type: EventSpanEnd, Trace: s.trace, Span: s})
	if s.parentID == "" {
		s.tracer.finishTrace(s.trace, s.EndTime())
	}
}
