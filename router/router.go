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
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Router discovers file-based routes, compiles them into a prioritized
// matcher, and keeps both in sync with the filesystem when watching is
// enabled.
//
// Router is safe for concurrent use: the tree and matcher each guard their
// own state, and Match may be called concurrently with a running watcher.
type Router struct {
	routesDir  string
	basePath   string
	extensions []string
	watch      bool

	logger      *slog.Logger
	diagnostics DiagnosticHandler

	tree    *Tree
	matcher *Matcher

	watcherMu sync.Mutex
	watcher   *Watcher

	enableH2C      bool
	serverTimeouts *serverTimeouts

	serverMu sync.Mutex
	server   *http.Server
}

// serverTimeouts holds the http.Server timeout values Serve and ServeTLS
// apply. A nil *serverTimeouts on Router means defaultServerTimeouts.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// New discovers routes under the configured directory and compiles the
// initial matcher. Discovery can fail (unreadable directory for a reason
// other than non-existence), as can starting the watcher, so New returns
// an error rather than panicking. New does not load route modules or
// parse their configuration.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		routesDir:  "app/routes",
		extensions: DefaultExtensions,
		logger:     noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}

	files, err := Discover(r.routesDir, r.extensions)
	if err != nil {
		r.emitDiagnostic(DiagnosticDiscoveryError, err.Error(), nil)
		return nil, err
	}

	r.tree = NewTree()
	r.tree.Build(files)

	matcher, err := NewMatcher(r.tree)
	if err != nil {
		return nil, err
	}
	r.matcher = matcher

	if r.watch {
		w, err := NewWatcher(r.routesDir, r.extensions, r.tree, r.matcher)
		if err != nil {
			return nil, err
		}
		r.watcher = w
	}

	return r, nil
}

func (r *Router) emitDiagnostic(kind DiagnosticKind, msg string, fields map[string]any) {
	r.logger.Debug(msg, "kind", kind)
	if r.diagnostics != nil {
		r.diagnostics.Handle(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
	}
}

// Match resolves a pathname (the base path stripped by the caller) to a
// route, its parameters, and its layout chain.
func (r *Router) Match(pathname string) (MatchResult, bool) {
	return r.matcher.Match(pathname)
}

// Tree exposes the underlying route tree for introspection and testing.
func (r *Router) Tree() *Tree { return r.tree }

// MatchTable returns the compiled matcher's entries in match-precedence
// order, for diagnostic printing (see cmd/routekit's -print mode).
func (r *Router) MatchTable() []MatchEntry { return r.matcher.Entries() }

// MiddlewareChain returns the root-to-leaf middleware file chain for a
// matched route's URL path.
func (r *Router) MiddlewareChain(routePath string) []string {
	return r.tree.MiddlewareChain(routePath)
}

// WatchEvents exposes the watcher's event channel, or nil if watching is
// disabled.
func (r *Router) WatchEvents() <-chan WatchEvent {
	r.watcherMu.Lock()
	defer r.watcherMu.Unlock()
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Events()
}

// Close stops the filesystem watcher, if running.
func (r *Router) Close() error {
	r.watcherMu.Lock()
	defer r.watcherMu.Unlock()
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}
