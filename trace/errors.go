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

import "errors"

var (
	// ErrTraceNotFound is returned when a lookup names a trace ID that is
	// neither in flight nor in the retained ring buffer.
	ErrTraceNotFound = errors.New("trace: trace not found")

	// ErrSpanNotFound is returned when a lookup names a span ID absent
	// from its trace's span table.
	ErrSpanNotFound = errors.New("trace: span not found")

	// ErrInvalidCapacity is returned by NewRingBuffer for a non-positive
	// capacity.
	ErrInvalidCapacity = errors.New("trace: ring buffer capacity must be positive")

	// ErrClientSpanOrphaned is returned by MergeClientSpans when a client
	// span names a trace ID unknown to the tracer. The parent ID is not
	// checked.
	ErrClientSpanOrphaned = errors.New("trace: client span references an unknown trace")
)
