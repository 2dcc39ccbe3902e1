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

import "time"

// ClientSpan is a span recorded by a browser-side instrument and shipped
// to the server over the transport's client:spans message (see
// trace/transport). Unlike a server Span, timestamps arrive pre-computed
// and the span arrives already ended.
type ClientSpan struct {
	ID        string
	TraceID   string
	ParentID  string
	Name      string
	Layer     Layer
	Status    Status
	StartTime time.Time
	EndTime   time.Time
	Attributes map[string]any
	Events     []SpanEvent
}

// MergeClientSpans attaches a batch of client-recorded spans to the trace
// they name, marking each with OriginClient semantics. Spans naming a
// trace ID the tracer does not know about are skipped and reported via
// ErrClientSpanOrphaned; spans for a known trace are merged even if the
// trace has already completed and moved to the retained buffer.
func (t *Tracer) MergeClientSpans(spans []ClientSpan) error {
	var orphaned bool

	for _, cs := range spans {
		tr, ok := t.Trace(cs.TraceID)
		if !ok {
			orphaned = true
			continue
		}

		s := &Span{
			id:         cs.ID,
			traceID:    cs.TraceID,
			parentID:   cs.ParentID,
			name:       cs.Name,
			layer:      cs.Layer,
			status:     cs.Status,
			startTime:  cs.StartTime,
			endTime:    cs.EndTime,
			duration:   cs.EndTime.Sub(cs.StartTime),
			attributes: cs.Attributes,
			events:     cs.Events,
			ended:      true,
			tracer:     t,
			trace:      tr,
			tracked:    true,
		}
		if s.attributes == nil {
			s.attributes = make(map[string]any)
		}
		s.attributes["origin"] = string(OriginClient)

		if tr.spanCount() >= t.maxSpansPerTrace {
			continue
		}
		tr.register(s)

		if parent, ok := tr.Span(cs.ParentID); ok {
			parent.mu.Lock()
			parent.childIDs = append(parent.childIDs, s.id)
			parent.mu.Unlock()
		}

		t.publish(Event{Type: EventSpanStart, Trace: tr, Span: s})
		t.publish(Event{Type: EventSpanEnd, Trace: tr, Span: s})
	}

	if orphaned {
		return ErrClientSpanOrphaned
	}
	return nil
}
