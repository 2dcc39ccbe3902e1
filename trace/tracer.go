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
	"sync"
	"time"
)

// Tracer holds every in-flight trace and a bounded, retained history of
// completed ones. A Tracer is safe for concurrent use.
type Tracer struct {
	capacity         int
	maxSpansPerTrace int
	clock            func() time.Time

	mu         sync.RWMutex
	inFlight   map[string]*Trace
	retained   *RingBuffer[*Trace]

	subMu       sync.Mutex
	subscribers map[int]Subscriber
	nextSubID   int
}

// New returns a ready-to-use Tracer.
func New(opts ...Option) *Tracer {
	t := &Tracer{
		capacity:         DefaultCapacity,
		maxSpansPerTrace: DefaultMaxSpansPerTrace,
		clock:            time.Now,
		inFlight:         make(map[string]*Trace),
		subscribers:      make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(t)
	}
	rb, _ := NewRingBuffer[*Trace](t.capacity)
	t.retained = rb
	return t
}

func (t *Tracer) now() time.Time { return t.clock() }

// StartTrace opens a new trace and its root span. name and layer describe
// the root span; metadata is attached to the trace itself.
func (t *Tracer) StartTrace(name string, layer Layer, metadata Metadata) *Span {
	now := t.now()
	tr := &Trace{
		id:        newTraceID(),
		startTime: now,
		metadata:  metadata,
		spans:     make(map[string]*Span),
	}

	root := &Span{
		id:         newSpanID(),
		traceID:    tr.id,
		name:       name,
		layer:      layer,
		startTime:  now,
		attributes: make(map[string]any),
		tracer:     t,
		trace:      tr,
		tracked:    true,
	}
	tr.rootSpanID = root.id
	tr.register(root)

	t.mu.Lock()
	t.inFlight[tr.id] = tr
	t.mu.Unlock()

	t.publish(Event{Type: EventTraceStart, Trace: tr, Span: root})
	t.publish(Event{Type: EventSpanStart, Trace: tr, Span: root})
	return root
}

func (t *Tracer) newChildSpan(tr *Trace, parentID, name string, layer Layer) *Span {
	child := &Span{
		id:         newSpanID(),
		traceID:    tr.id,
		parentID:   parentID,
		name:       name,
		layer:      layer,
		startTime:  t.now(),
		attributes: make(map[string]any),
		tracer:     t,
		trace:      tr,
	}

	if tr.spanCount() >= t.maxSpansPerTrace {
		return child
	}
	child.tracked = true
	tr.register(child)

	if parent, ok := tr.Span(parentID); ok {
		parent.mu.Lock()
		parent.childIDs = append(parent.childIDs, child.id)
		parent.mu.Unlock()
	}

	t.publish(Event{Type: EventSpanStart, Trace: tr, Span: child})
	return child
}

func (t *Tracer) finishTrace(tr *Trace, rootEndTime time.Time) {
	tr.finish(rootEndTime)

	t.mu.Lock()
	delete(t.inFlight, tr.id)
	t.mu.Unlock()

	t.retained.Push(tr)
	t.publish(Event{Type: EventTraceEnd, Trace: tr, Span: nil})
}

// Trace returns the trace with the given ID, whether in flight or
// retained.
func (t *Tracer) Trace(id string) (*Trace, bool) {
	t.mu.RLock()
	tr, ok := t.inFlight[id]
	t.mu.RUnlock()
	if ok {
		return tr, true
	}
	return t.retained.Get(id)
}

// Traces returns every retained (completed) trace, oldest first.
func (t *Tracer) Traces() []*Trace {
	return t.retained.ToArray()
}

// InFlight returns every trace that has not yet completed.
func (t *Tracer) InFlight() []*Trace {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Trace, 0, len(t.inFlight))
	for _, tr := range t.inFlight {
		out = append(out, tr)
	}
	return out
}

// Subscribe registers cb to receive every future Event. The returned
// function removes the subscription; calling it more than once is a
// no-op.
func (t *Tracer) Subscribe(cb Subscriber) func() {
	t.subMu.Lock()
	id := t.nextSubID
	t.nextSubID++
	t.subscribers[id] = cb
	t.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.subMu.Lock()
			delete(t.subscribers, id)
			t.subMu.Unlock()
		})
	}
}

func (t *Tracer) publish(ev Event) {
	t.subMu.Lock()
	cbs := make([]Subscriber, 0, len(t.subscribers))
	for _, cb := range t.subscribers {
		cbs = append(cbs, cb)
	}
	t.subMu.Unlock()

	for _, cb := range cbs {
		invokeSubscriber(cb, ev)
	}
}

func invokeSubscriber(cb Subscriber, ev Event) {
	defer func() {
		_ = recover()
	}()
	cb(ev)
}
