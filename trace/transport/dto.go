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

// Package transport serializes trace.Tracer state to and from JSON for an
// inspector client, and streams live trace events over a WebSocket.
package transport

import (
	"time"

	"routekit.dev/routekit/trace"
)

// SpanDTO is the wire shape of a trace.Span.
type SpanDTO struct {
	ID         string            `json:"id"`
	TraceID    string            `json:"traceId"`
	ParentID   string            `json:"parentId,omitempty"`
	Name       string            `json:"name"`
	Layer      string            `json:"layer"`
	Status     string            `json:"status"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    time.Time         `json:"endTime,omitempty"`
	DurationMs float64           `json:"durationMs"`
	Attributes map[string]any    `json:"attributes,omitempty"`
	Events     []SpanEventDTO    `json:"events,omitempty"`
	ChildIDs   []string          `json:"childIds,omitempty"`
}

// SpanEventDTO is the wire shape of a trace.SpanEvent.
type SpanEventDTO struct {
	Name       string         `json:"name"`
	Time       time.Time      `json:"time"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// TraceDTO is the wire shape of a trace.Trace, including every span it
// retains.
type TraceDTO struct {
	ID           string    `json:"id"`
	RootSpanID   string    `json:"rootSpanId"`
	Origin       string    `json:"origin"`
	Method       string    `json:"method,omitempty"`
	Pathname     string    `json:"pathname,omitempty"`
	RoutePattern string    `json:"routePattern,omitempty"`
	StatusCode   int       `json:"statusCode,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime,omitempty"`
	DurationMs   float64   `json:"durationMs"`
	Complete     bool      `json:"complete"`
	Spans        []SpanDTO `json:"spans"`
}

// EventDTO is the wire shape of one trace.Event pushed over the stream.
type EventDTO struct {
	Type  string    `json:"type"`
	Trace *TraceDTO `json:"trace,omitempty"`
	Span  *SpanDTO  `json:"span,omitempty"`
}

func spanToDTO(s *trace.Span) SpanDTO {
	return SpanDTO{
		ID:         s.ID(),
		TraceID:    s.TraceID(),
		ParentID:   s.ParentID(),
		Name:       s.Name(),
		Layer:      string(s.Layer()),
		Status:     string(s.Status()),
		StartTime:  s.StartTime(),
		EndTime:    s.EndTime(),
		DurationMs: float64(s.Duration().Microseconds()) / 1000,
		Attributes: s.Attributes(),
		Events:     eventsToDTO(s.Events()),
		ChildIDs:   s.ChildIDs(),
	}
}

func eventsToDTO(evs []trace.SpanEvent) []SpanEventDTO {
	out := make([]SpanEventDTO, 0, len(evs))
	for _, e := range evs {
		out = append(out, SpanEventDTO{Name: e.Name, Time: e.Time, Attributes: e.Attributes})
	}
	return out
}

// TraceToDTO serializes a trace.Trace and every span it retains.
func TraceToDTO(tr *trace.Trace) TraceDTO {
	md := tr.Metadata()
	spans := tr.Spans()
	dtoSpans := make([]SpanDTO, 0, len(spans))
	for _, s := range spans {
		dtoSpans = append(dtoSpans, spanToDTO(s))
	}
	return TraceDTO{
		ID:           tr.ID(),
		RootSpanID:   tr.RootSpanID(),
		Origin:       string(md.Origin),
		Method:       md.Method,
		Pathname:     md.Pathname,
		RoutePattern: md.RoutePattern,
		StatusCode:   md.StatusCode,
		StartTime:    tr.StartTime(),
		EndTime:      tr.EndTime(),
		DurationMs:   float64(tr.Duration().Microseconds()) / 1000,
		Complete:     tr.Complete(),
		Spans:        dtoSpans,
	}
}

// EventToDTO serializes a trace.Event for the stream endpoint. A
// trace:end event carries only the trace; a span:* event carries both
// the owning trace's identity and the span.
func EventToDTO(ev trace.Event) EventDTO {
	out := EventDTO{Type: string(ev.Type)}
	if ev.Trace != nil {
		dto := TraceToDTO(ev.Trace)
		out.Trace = &dto
	}
	if ev.Span != nil {
		dto := spanToDTO(ev.Span)
		out.Span = &dto
	}
	return out
}
