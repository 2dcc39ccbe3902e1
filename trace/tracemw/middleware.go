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

// Package tracemw adapts trace.Tracer into a net/http middleware that
// opens one root span per request.
package tracemw

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"routekit.dev/routekit/trace"
)

type ctxKey struct{}

var spanCtxKey = ctxKey{}

// Config controls the request tracing middleware.
type Config struct {
	// HeaderPrefix names the response/request header family, e.g. "X-Routekit".
	// The response carries the trace ID under "<HeaderPrefix>-Trace-Id".
	HeaderPrefix string

	// Exclude lists pathname prefixes that should not be traced.
	Exclude []string

	// RecordHeaders, when true, attaches request headers as a span
	// attribute (header names only have their values redacted to
	// "present" unless explicitly allow-listed via RecordHeaderNames).
	RecordHeaders bool

	// RecordHeaderNames is the allow-list of headers recorded verbatim
	// when RecordHeaders is true. All other headers are recorded as
	// present/absent only.
	RecordHeaderNames []string
}

func defaultConfig() Config {
	return Config{HeaderPrefix: "X-Routekit"}
}

// Middleware returns a net/http middleware that opens a root span named
// by method and pathname for every non-excluded request, attaches it to
// the request context, and injects the resulting trace ID into the
// response header "<HeaderPrefix>-Trace-Id".
func Middleware(tracer *trace.Tracer, cfg Config) func(http.Handler) http.Handler {
	if cfg.HeaderPrefix == "" {
		cfg.HeaderPrefix = defaultConfig().HeaderPrefix
	}
	traceIDHeader := cfg.HeaderPrefix + "-Trace-Id"
	inboundTraceIDHeader := cfg.HeaderPrefix + "-Client-Trace-Id"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.Exclude {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			md := trace.Metadata{
				Origin:   trace.OriginServer,
				Method:   r.Method,
				Pathname: r.URL.Path,
			}
			span := tracer.StartTrace(fmt.Sprintf("%s %s", r.Method, r.URL.Path), trace.LayerRequest, md)
			span.SetAttribute("http.method", r.Method)
			span.SetAttribute("http.pathname", r.URL.Path)
			if q := r.URL.RawQuery; q != "" {
				span.SetAttribute("http.search", q)
			}

			if clientTraceID := r.Header.Get(inboundTraceIDHeader); clientTraceID != "" {
				span.SetAttribute("http.client_trace_id", clientTraceID)
			}

			if cfg.RecordHeaders {
				span.SetAttribute("http.headers", recordedHeaders(r.Header, cfg.RecordHeaderNames))
			}

			w.Header().Set(traceIDHeader, span.TraceID())

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := ContextWithSpan(r.Context(), span)

			func() {
				defer func() {
					if rec := recover(); rec != nil {
						span.SetAttribute("http.panic", fmt.Sprintf("%v", rec))
						span.Error(fmt.Errorf("panic: %v", rec))
						span.End()
						panic(rec)
					}
				}()
				next.ServeHTTP(rec, r.WithContext(ctx))
			}()

			span.SetAttribute("http.status_code", rec.status)
			if rec.status >= 500 {
				span.Error(fmt.Errorf("http status %d", rec.status))
			}
			span.End()
		})
	}
}

// FromContext returns the root span attached to ctx by Middleware, if
// any.
func FromContext(ctx context.Context) (*trace.Span, bool) {
	s, ok := ctx.Value(spanCtxKey).(*trace.Span)
	return s, ok
}

// ContextWithSpan returns a copy of ctx carrying span as the active span,
// retrievable later with FromContext. Middleware uses this internally;
// callers that attach spans outside of an HTTP request (background jobs,
// manual instrumentation) can use it directly.
func ContextWithSpan(ctx context.Context, span *trace.Span) context.Context {
	return context.WithValue(ctx, spanCtxKey, span)
}

func recordedHeaders(h http.Header, allow []string) map[string]string {
	allowed := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		allowed[strings.ToLower(name)] = struct{}{}
	}
	out := make(map[string]string, len(h))
	for name, values := range h {
		if _, ok := allowed[strings.ToLower(name)]; ok && len(values) > 0 {
			out[name] = values[0]
		} else {
			out[name] = "present"
		}
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
