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

package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"routekit.dev/routekit/trace"
)

func TestTraceToDTOIncludesSpansAndMetadata(t *testing.T) {
	tr := trace.New()
	root := tr.StartTrace("request", trace.LayerRequest, trace.Metadata{
		Method: "GET", Pathname: "/blog/hello", RoutePattern: "/blog/[slug]",
	})
	child := root.Child("db-query", trace.LayerDatabase)
	child.SetAttribute("db.statement", "select 1")
	child.End()
	root.End()

	trc, ok := tr.Trace(root.TraceID())
	require.True(t, ok)

	dto := TraceToDTO(trc)
	require.Equal(t, root.TraceID(), dto.ID)
	require.Equal(t, "GET", dto.Method)
	require.Equal(t, "/blog/[slug]", dto.RoutePattern)
	require.True(t, dto.Complete)
	require.Len(t, dto.Spans, 2)

	var childDTO *SpanDTO
	for i := range dto.Spans {
		if dto.Spans[i].ID == child.ID() {
			childDTO = &dto.Spans[i]
		}
	}
	require.NotNil(t, childDTO)
	require.Equal(t, "select 1", childDTO.Attributes["db.statement"])
	require.Equal(t, root.ID(), childDTO.ParentID)
}

func TestEventToDTOCarriesTraceAndSpan(t *testing.T) {
	tr := trace.New()
	root := tr.StartTrace("request", trace.LayerRequest, trace.Metadata{})

	ev := trace.Event{Type: trace.EventSpanStart, Trace: mustTrace(t, tr, root.TraceID()), Span: root}
	dto := EventToDTO(ev)

	require.Equal(t, string(trace.EventSpanStart), dto.Type)
	require.NotNil(t, dto.Trace)
	require.NotNil(t, dto.Span)
	require.Equal(t, root.ID(), dto.Span.ID)
}

func TestEventToDTOTraceEndHasNoSpan(t *testing.T) {
	ev := trace.Event{Type: trace.EventTraceEnd}
	dto := EventToDTO(ev)
	require.Nil(t, dto.Trace)
	require.Nil(t, dto.Span)
}

func mustTrace(t *testing.T, tr *trace.Tracer, id string) *trace.Trace {
	t.Helper()
	trc, ok := tr.Trace(id)
	require.True(t, ok)
	return trc
}
