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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMergeClientSpansAttachesToKnownTrace(t *testing.T) {
	tr := New()
	root := tr.StartTrace("request", LayerRequest, Metadata{})

	cs := ClientSpan{
		ID:        "client-span-1",
		TraceID:   root.TraceID(),
		ParentID:  root.ID(),
		Name:      "hydrate-island",
		Layer:     LayerIslands,
		Status:    StatusOK,
		StartTime: time.Unix(1, 0),
		EndTime:   time.Unix(2, 0),
	}
	err := tr.MergeClientSpans([]ClientSpan{cs})
	require.NoError(t, err)

	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)
	merged, ok := trc.Span("client-span-1")
	require.True(t, ok)
	require.Equal(t, string(OriginClient), merged.Attributes()["origin"])
	require.Contains(t, root.ChildIDs(), "client-span-1")
}

func TestMergeClientSpansReportsOrphans(t *testing.T) {
	tr := New()
	err := tr.MergeClientSpans([]ClientSpan{{
		ID:      "orphan",
		TraceID: "unknown-trace",
	}})
	require.ErrorIs(t, err, ErrClientSpanOrphaned)
}

func TestMergeClientSpansMixedOrphanAndKnownStillMergesKnown(t *testing.T) {
	tr := New()
	root := tr.StartTrace("request", LayerRequest, Metadata{})

	err := tr.MergeClientSpans([]ClientSpan{
		{ID: "a", TraceID: "unknown"},
		{ID: "b", TraceID: root.TraceID(), ParentID: root.ID(), Name: "known"},
	})
	require.ErrorIs(t, err, ErrClientSpanOrphaned)

	trc, _ := tr.Trace(root.TraceID())
	_, ok := trc.Span("b")
	require.True(t, ok)
}

func TestMergeClientSpansCompletedTraceStillAccepted(t *testing.T) {
	tr := New()
	root := tr.StartTrace("request", LayerRequest, Metadata{})
	root.End()

	err := tr.MergeClientSpans([]ClientSpan{{
		ID:       "late-span",
		TraceID:  root.TraceID(),
		ParentID: root.ID(),
	}})
	require.NoError(t, err)

	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)
	_, ok = trc.Span("late-span")
	require.True(t, ok)
}
