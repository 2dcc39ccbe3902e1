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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartTraceRegistersInFlight(t *testing.T) {
	tr := New()
	root := tr.StartTrace("request", LayerRequest, Metadata{Method: "GET"})

	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)
	require.False(t, trc.Complete())
	require.Len(t, tr.InFlight(), 1)
}

func TestTraceMovesToRetainedOnRootEnd(t *testing.T) {
	tr := New()
	root := tr.StartTrace("request", LayerRequest, Metadata{})
	root.End()

	require.Empty(t, tr.InFlight())
	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)
	require.True(t, trc.Complete())
	require.Len(t, tr.Traces(), 1)
}

func TestEventOrderingForRootWithChild(t *testing.T) {
	tr := New()
	var types []EventType
	var mu sync.Mutex
	unsub := tr.Subscribe(func(ev Event) {
		mu.Lock()
		types = append(types, ev.Type)
		mu.Unlock()
	})
	defer unsub()

	root := tr.StartTrace("request", LayerRequest, Metadata{})
	child := root.Child("db-query", LayerDatabase)
	child.End()
	root.End()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []EventType{
		EventTraceStart,
		EventSpanStart, // root
		EventSpanStart, // child
		EventSpanEnd,   // child
		EventSpanEnd,   // root
		EventTraceEnd,
	}, types)
}

func TestSubscribeUnsubscribeStopsDelivery(t *testing.T) {
	tr := New()
	count := 0
	unsub := tr.Subscribe(func(ev Event) { count++ })
	unsub()
	unsub() // calling twice is a no-op, not a panic

	root := tr.StartTrace("request", LayerRequest, Metadata{})
	root.End()
	require.Equal(t, 0, count)
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	tr := New()
	var secondCalled bool
	tr.Subscribe(func(ev Event) { panic("boom") })
	tr.Subscribe(func(ev Event) { secondCalled = true })

	require.NotPanics(t, func() {
		root := tr.StartTrace("request", LayerRequest, Metadata{})
		root.End()
	})
	require.True(t, secondCalled)
}

func TestRetainedCapacityEvictsOldestTrace(t *testing.T) {
	tr := New(WithCapacity(1))
	first := tr.StartTrace("first", LayerRequest, Metadata{})
	first.End()
	second := tr.StartTrace("second", LayerRequest, Metadata{})
	second.End()

	require.Len(t, tr.Traces(), 1)
	_, ok := tr.Trace(first.TraceID())
	require.False(t, ok)
	_, ok = tr.Trace(second.TraceID())
	require.True(t, ok)
}

func TestTraceDurationMatchesRootSpanExactly(t *testing.T) {
	start := time.Unix(1000, 0)
	var ticks int
	tr := New(WithClock(func() time.Time {
		t := start.Add(time.Duration(ticks) * time.Second)
		ticks++
		return t
	}))

	root := tr.StartTrace("request", LayerRequest, Metadata{})
	root.End()

	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)
	require.Equal(t, root.EndTime(), trc.EndTime())
	require.Equal(t, root.EndTime().Sub(root.StartTime()), trc.Duration())
}

func TestUntrackedChildEmitsNoEvents(t *testing.T) {
	tr := New(WithMaxSpansPerTrace(1))
	var types []EventType
	tr.Subscribe(func(ev Event) { types = append(types, ev.Type) })

	root := tr.StartTrace("request", LayerRequest, Metadata{})
	child := root.Child("discarded", LayerData)
	child.End() // untracked: must not publish span:start or span:end

	starts := 0
	for _, typ := range types {
		if typ == EventSpanStart {
			starts++
		}
	}
	require.Equal(t, 1, starts, "only the root span's start should have been published")
}
