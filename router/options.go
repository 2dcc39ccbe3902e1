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

package router

import (
	"io"
	"log/slog"
	"time"
)

// noopLogger is a singleton no-op logger used when no observability is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger { return noopLogger }

// DiagnosticKind categorizes a DiagnosticEvent.
type DiagnosticKind string

const (
	DiagnosticDiscoveryError DiagnosticKind = "discovery_error"
	DiagnosticConfigError    DiagnosticKind = "config_error"
	DiagnosticWatchEvent     DiagnosticKind = "watch_event"
	DiagnosticH2CEnabled     DiagnosticKind = "h2c_enabled"
)

// DiagnosticEvent is an optional informational event raised during
// discovery, config parsing, or watching. The router functions correctly
// whether diagnostics are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticHandler receives DiagnosticEvents.
type DiagnosticHandler interface {
	Handle(DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a function to DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// Handle implements DiagnosticHandler.
func (f DiagnosticHandlerFunc) Handle(e DiagnosticEvent) { f(e) }

// Option configures a Router at construction time.
type Option func(*Router)

// WithRoutesDir sets the directory routes are discovered from.
// Defaults to "app/routes".
func WithRoutesDir(dir string) Option {
	return func(r *Router) { r.routesDir = dir }
}

// WithBasePath records a base path for the router. Defaults to "".
// The value is stored only: discovered route paths do not include it and
// Match does not strip it.
func WithBasePath(base string) Option {
	return func(r *Router) { r.basePath = base }
}

// WithExtensions overrides the recognized route file extensions.
// Defaults to DefaultExtensions.
func WithExtensions(exts ...string) Option {
	return func(r *Router) { r.extensions = exts }
}

// WithWatch enables the filesystem watcher and incremental tree updates.
// Defaults to false.
func WithWatch(enable bool) Option {
	return func(r *Router) { r.watch = enable }
}

// WithLogger sets a structured logger used for internal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// WithDiagnostics sets a diagnostic handler for the router.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) { r.diagnostics = handler }
}

// WithH2C enables HTTP/2 cleartext for Serve.
//
// Only use this in development or behind a trusted load balancer that
// terminates TLS: h2c accepts prior-knowledge HTTP/2 over a plaintext
// connection, so exposing it directly to untrusted clients skips the
// protections TLS would otherwise provide.
func WithH2C(enable bool) Option {
	return func(r *Router) { r.enableH2C = enable }
}

// WithServerTimeouts overrides the default Serve/ServeTLS timeouts.
// Defaults: 5s read-header, 15s read, 30s write, 60s idle.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.serverTimeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// defaultServerTimeouts returns the timeouts Serve/ServeTLS use when
// WithServerTimeouts was not given, chosen to resist slowloris-style
// connection exhaustion.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}
