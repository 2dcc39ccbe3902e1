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

const (
	// DefaultCapacity is the number of completed traces retained by
	// default once a Tracer has no option overriding it.
	DefaultCapacity = 200

	// DefaultMaxSpansPerTrace bounds how many spans a single trace will
	// retain before further children are silently discarded.
	DefaultMaxSpansPerTrace = 500
)

// Option configures a Tracer at construction time.
type Option func(*Tracer)

// WithCapacity overrides the number of completed traces retained in the
// ring buffer. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(t *Tracer) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithMaxSpansPerTrace overrides the per-trace span cap. Non-positive
// values are ignored.
func WithMaxSpansPerTrace(n int) Option {
	return func(t *Tracer) {
		if n > 0 {
			t.maxSpansPerTrace = n
		}
	}
}

// WithClock overrides the tracer's time source. Intended for tests that
// need deterministic span durations.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracer) {
		if clock != nil {
			t.clock = clock
		}
	}
}
