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

// Package instrument provides thin, per-layer helpers that open and
// annotate trace.Span values with the attribute and event names each
// layer contributes, so callers never hand-roll attribute keys.
package instrument

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"routekit.dev/routekit/trace"
	"routekit.dev/routekit/trace/tracemw"
)

// truncate shortens s to max runes, appending an ellipsis when it does.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// Routing opens a "route.match" span for a successful match, recording
// the matched pattern, route id, the extracted params, and the joined
// layout chain.
func Routing(parent *trace.Span, pathname, pattern, routeID string, params map[string]any, layouts []string) *trace.Span {
	s := parent.Child("route.match", trace.LayerRouting)
	s.SetAttribute("route.pathname", pathname)
	s.SetAttribute("route.matched", true)
	s.SetAttribute("route.pattern", pattern)
	s.SetAttribute("route.id", routeID)
	s.SetAttribute("route.params", fmt.Sprintf("%v", params))
	s.SetAttribute("route.layouts", strings.Join(layouts, ","))
	return s
}

// RoutingNotMatched opens a "route.match" span for a pathname that matched
// nothing, and emits a 404 event on it.
func RoutingNotMatched(parent *trace.Span, pathname string) *trace.Span {
	s := parent.Child("route.match", trace.LayerRouting)
	s.SetAttribute("route.pathname", pathname)
	s.SetAttribute("route.matched", false)
	s.Event("404", map[string]any{"route.pathname": pathname})
	return s
}

// DataLoad opens a "loader:<key>" span for a route loader invocation.
func DataLoad(parent *trace.Span, key string) *trace.Span {
	s := parent.Child("loader:"+key, trace.LayerData)
	s.SetAttribute("loader.key", key)
	return s
}

// RecordLoaderMetrics records an already-collected loader measurement as
// a sibling span, for loaders whose timing is gathered out of band rather
// than observed live through DataLoad.
func RecordLoaderMetrics(parent *trace.Span, key string, durationMS int64, cacheHit bool, source string, waitingFor []string) *trace.Span {
	s := parent.Child("loader:"+key, trace.LayerData)
	s.SetAttribute("loader.key", key)
	s.SetAttribute("loader.duration_ms", durationMS)
	s.SetAttribute("loader.cache_hit", cacheHit)
	s.SetAttribute("loader.source", source)
	s.SetAttribute("loader.waiting_for", waitingFor)
	s.End()
	return s
}

// CacheGet records a cache read as a "cache.get" event. Keys longer than
// 100 characters are truncated.
func CacheGet(parent *trace.Span, key string, hit bool) {
	parent.Event("cache.get", map[string]any{
		"cache.key": truncate(key, 100),
		"cache.hit": hit,
	})
}

// CacheSet records a cache write as a "cache.set" event.
func CacheSet(parent *trace.Span, key string) {
	parent.Event("cache.set", map[string]any{"cache.key": truncate(key, 100)})
}

// CacheInvalidate records a cache eviction as a "cache.invalidate" event.
func CacheInvalidate(parent *trace.Span, key string) {
	parent.Event("cache.invalidate", map[string]any{"cache.key": truncate(key, 100)})
}

// FormSubmit opens a "form:<name>" span for a form action.
func FormSubmit(parent *trace.Span, name string, fieldCount int) *trace.Span {
	s := parent.Child("form:"+name, trace.LayerForms)
	s.SetAttribute("form.name", name)
	s.SetAttribute("form.field_count", fieldCount)
	return s
}

// SignalUpdate records a single reactive signal mutation as a
// "signal.update" event.
func SignalUpdate(parent *trace.Span, name string) {
	parent.Event("signal.update", map[string]any{"signal.name": name})
}

// SignalBatch records a batched set of signal mutations as a
// "signal.batch" event.
func SignalBatch(parent *trace.Span, names []string) {
	parent.Event("signal.batch", map[string]any{"signal.names": names})
}

// RPCCallType is the kind of remote procedure a span describes.
type RPCCallType string

const (
	RPCQuery        RPCCallType = "query"
	RPCMutation     RPCCallType = "mutation"
	RPCSubscription RPCCallType = "subscription"
)

// RPCCall opens a "rpc:<procedure>" span.
func RPCCall(parent *trace.Span, procedure string, callType RPCCallType) *trace.Span {
	s := parent.Child("rpc:"+procedure, trace.LayerRPC)
	s.SetAttribute("rpc.procedure", procedure)
	s.SetAttribute("rpc.call_type", string(callType))
	return s
}

// RPCValidation records an input-validation outcome on an RPC span as a
// "rpc.validation" event.
func RPCValidation(span *trace.Span, durationMS int64, valid bool) {
	span.Event("rpc.validation", map[string]any{
		"rpc.duration_ms": durationMS,
		"rpc.valid":       valid,
	})
}

// DatabaseQuery opens a "db.query" span for a manually-instrumented
// single query, recording the statement (truncated to 200 characters)
// and, when given, the bound parameter count.
func DatabaseQuery(parent *trace.Span, statement string, args ...any) *trace.Span {
	s := parent.Child("db.query", trace.LayerDatabase)
	s.SetAttribute("db.statement", truncate(statement, 200))
	if len(args) > 0 {
		s.SetAttribute("db.param_count", len(args))
	}
	return s
}

// WrapQuerier wraps a caller-supplied query executor with a database
// span: it opens the span, runs exec, records the row count, duration,
// and any error, and ends the span before returning. Duration is
// measured with the span's own tracer clock rather than the wall clock,
// so it honors trace.WithClock in tests.
func WrapQuerier(parent *trace.Span, statement string, args []any, exec func() (rows int, err error)) (int, error) {
	s := DatabaseQuery(parent, statement, args...)
	start := s.Now()
	rows, err := exec()
	s.SetAttribute("db.rows", rows)
	s.SetAttribute("db.duration_ms", s.Now().Sub(start).Milliseconds())
	if err != nil {
		s.Error(err)
	}
	s.End()
	return rows, err
}

// DBAdapter is the set of query-executing methods WrapDBAdapter
// intercepts. Each method takes a statement and its bound parameters and
// returns a driver-specific result (a slice for list-shaped results) or
// an error.
type DBAdapter interface {
	Query(ctx context.Context, statement string, args ...any) (any, error)
	Execute(ctx context.Context, statement string, args ...any) (any, error)
	Get(ctx context.Context, statement string, args ...any) (any, error)
	All(ctx context.Context, statement string, args ...any) (any, error)
	Run(ctx context.Context, statement string, args ...any) (any, error)
}

// WrapDBAdapter returns a DBAdapter that opens a "db.<method>" span
// around every call, using the request's active span (as attached by
// tracemw.Middleware) as parent. If ctx carries no active span, the call
// passes through untraced.
func WrapDBAdapter(adapter DBAdapter) DBAdapter {
	return &instrumentedDB{adapter: adapter}
}

type instrumentedDB struct {
	adapter DBAdapter
}

func (d *instrumentedDB) Query(ctx context.Context, statement string, args ...any) (any, error) {
	return d.call(ctx, "query", statement, args, d.adapter.Query)
}

func (d *instrumentedDB) Execute(ctx context.Context, statement string, args ...any) (any, error) {
	return d.call(ctx, "execute", statement, args, d.adapter.Execute)
}

func (d *instrumentedDB) Get(ctx context.Context, statement string, args ...any) (any, error) {
	return d.call(ctx, "get", statement, args, d.adapter.Get)
}

func (d *instrumentedDB) All(ctx context.Context, statement string, args ...any) (any, error) {
	return d.call(ctx, "all", statement, args, d.adapter.All)
}

func (d *instrumentedDB) Run(ctx context.Context, statement string, args ...any) (any, error) {
	return d.call(ctx, "run", statement, args, d.adapter.Run)
}

func (d *instrumentedDB) call(
	ctx context.Context,
	method, statement string,
	args []any,
	fn func(context.Context, string, ...any) (any, error),
) (any, error) {
	parent, ok := tracemw.FromContext(ctx)
	if !ok {
		return fn(ctx, statement, args...)
	}

	s := parent.Child("db."+method, trace.LayerDatabase)
	s.SetAttribute("db.statement", truncate(statement, 200))
	if len(args) > 0 {
		s.SetAttribute("db.param_count", len(args))
	}
	result, err := fn(ctx, statement, args...)
	if err != nil {
		s.Error(err)
	} else if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		s.SetAttribute("db.row_count", v.Len())
	}
	s.End()
	return result, err
}

// AuthCheck opens a "auth:<operation>" span for an authorization decision.
func AuthCheck(parent *trace.Span, operation, provider string, roles []string) *trace.Span {
	s := parent.Child("auth:"+operation, trace.LayerAuth)
	s.SetAttribute("auth.operation", operation)
	s.SetAttribute("auth.provider", provider)
	s.SetAttribute("auth.roles", roles)
	return s
}

// AuthRedirectError is implemented by response-style errors that carry a
// redirect location, e.g. a denied-auth check that wants the caller sent
// to a login page.
type AuthRedirectError interface {
	error
	RedirectLocation() string
}

// AuthResult records the outcome of an AuthCheck span: auth.result is
// "ok" on success or "denied" on failure, and if err implements
// AuthRedirectError its redirect location is also recorded.
func AuthResult(span *trace.Span, allowed bool, err error) {
	if allowed {
		span.SetAttribute("auth.result", "ok")
		return
	}
	span.SetAttribute("auth.result", "denied")
	if err == nil {
		return
	}
	span.Error(err)
	if re, ok := err.(AuthRedirectError); ok {
		span.SetAttribute("auth.redirect", re.RedirectLocation())
	}
}

// HydrationStrategy is when a client island is hydrated.
type HydrationStrategy string

const (
	HydrateLoad    HydrationStrategy = "load"
	HydrateIdle    HydrationStrategy = "idle"
	HydrateVisible HydrationStrategy = "visible"
	HydrateMedia   HydrationStrategy = "media"
	HydrateNone    HydrationStrategy = "none"
)

func validHydrationStrategy(s HydrationStrategy) bool {
	switch s {
	case HydrateLoad, HydrateIdle, HydrateVisible, HydrateMedia, HydrateNone:
		return true
	}
	return false
}

// IslandHydrate opens a "hydrate:<component>" span, recording the
// hydration strategy (and whether it is one of the recognized values)
// and the serialized props size in bytes.
func IslandHydrate(parent *trace.Span, component string, strategy HydrationStrategy, propsSize int) *trace.Span {
	s := parent.Child("hydrate:"+component, trace.LayerIslands)
	s.SetAttribute("island.component", component)
	s.SetAttribute("island.strategy", string(strategy))
	s.SetAttribute("island.strategy_valid", validHydrationStrategy(strategy))
	s.SetAttribute("island.props_size", propsSize)
	return s
}

// IslandHydrateEvent is a lighter-weight alternative to IslandHydrate for
// callers that only want a single annotation rather than an owned span.
func IslandHydrateEvent(parent *trace.Span, component string, strategy HydrationStrategy) {
	parent.Event("hydrate", map[string]any{
		"island.component": component,
		"island.strategy":  string(strategy),
	})
}

// BuildStep opens a "build:<stage>" span for a single build pipeline
// step, recording the stage name and the number of files it processed.
func BuildStep(parent *trace.Span, stage string, fileCount int) *trace.Span {
	s := parent.Child("build:"+stage, trace.LayerBuild)
	s.SetAttribute("build.stage", stage)
	s.SetAttribute("build.file_count", fileCount)
	return s
}

// ErrorPhase is where in the request lifecycle an error surfaced.
type ErrorPhase string

const (
	PhaseMiddleware ErrorPhase = "middleware"
	PhaseLoader     ErrorPhase = "loader"
	PhaseAction     ErrorPhase = "action"
	PhaseRender     ErrorPhase = "render"
	PhaseRPC        ErrorPhase = "rpc"
	PhaseUnknown    ErrorPhase = "unknown"
)

// CaughtError records an error surfaced to an error boundary: it opens a
// span carrying the phase and the error's type name, marks the span
// errored, appends an "error" event with the message, and ends it.
func CaughtError(parent *trace.Span, phase ErrorPhase, err error) *trace.Span {
	s := parent.Child("error.boundary", trace.LayerErrors)
	s.SetAttribute("error.phase", string(phase))
	s.SetAttribute("error.class", fmt.Sprintf("%T", err))
	s.Error(err)
	s.Event("error", map[string]any{"error.message": err.Error()})
	s.End()
	return s
}
