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

// Package router implements a file-based routing engine.
//
// Route definitions are discovered from a directory tree (in the style of
// Next.js/Fresh-like frameworks): `index.*` files become index routes,
// `_layout.*` files wrap descendants, `_middleware.*` files attach
// middleware at a path prefix, and bracketed segments (`[id]`, `[[id]]`,
// `[...rest]`) become dynamic, optional, and catch-all parameters.
//
// # Key Features
//
//   - Path segment parsing and a scored, prioritized matcher
//   - A hierarchical route tree with parent/child links and layout chains
//   - Debounced filesystem watching with incremental tree updates
//   - Per-route configuration parsing and parent-to-child merging
//   - Typed path/query parameter validation
//   - Optional Serve/ServeTLS helpers with production timeouts and h2c
//
// # Constructor Pattern
//
// New returns (*Router, error): unlike a purely in-memory router, file-based
// discovery touches the filesystem during construction, so initialization
// can fail (unreadable directory, watcher setup). Options
// use the "With" prefix, matching the rest of the ecosystem.
package router
