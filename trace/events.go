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

// EventType names the lifecycle notification a Tracer publishes to its
// subscribers.
type EventType string

const (
	EventTraceStart EventType = "trace:start"
	EventTraceEnd   EventType = "trace:end"
	EventSpanStart  EventType = "span:start"
	EventSpanEnd    EventType = "span:end"
	EventSpanEvent  EventType = "span:event"
)

// Event is delivered to every subscriber as span and trace lifecycle
// transitions occur. Trace and Span are read through their own
// thread-safe accessor methods.
type Event struct {
	Type  EventType
	Trace *Trace
	Span  *Span
}

// Subscriber receives Events synchronously, in the order they are
// published. A subscriber that panics is isolated: the panic is recovered
// and does not affect the publisher or other subscribers.
type Subscriber func(Event)
