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

// Package trace implements an in-memory, subscribable request tracer.
//
// Unlike a conventional OTel-style exporter pipeline, a Tracer here holds
// completed traces in a bounded ring buffer and lets callers subscribe to
// span lifecycle events synchronously, as they happen. This makes it a good
// fit for driving a live trace inspector without a collector round-trip.
//
// # Key Features
//
//   - Root spans open a Trace; child spans link to a parent within it.
//   - Every trace and span carries a fixed-size identifier generated with
//     github.com/google/uuid, not a sequential counter.
//   - Retention is a fixed-capacity ring buffer (see RingBuffer) keyed by
//     trace ID, so memory use is bounded regardless of request volume.
//   - Subscribers receive trace:start, span:start, span:event, span:end and
//     trace:end notifications synchronously and in emission order.
//
// # Constructor Pattern
//
// New returns a ready-to-use *Tracer; there is no fallible setup, so it
// does not return an error.
package trace
