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
	"context"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Serve starts an http.Server bound to addr in front of handler, blocking
// until the listener exits. The handler is typically the caller's
// top-level mux with request-tracing middleware already applied; Router
// itself only matches and does not dispatch requests.
//
// Call Shutdown from another goroutine for a graceful stop. If WithH2C
// was set, handler is wrapped so it also accepts prior-knowledge HTTP/2
// over plaintext connections.
func (r *Router) Serve(addr string, handler http.Handler) error {
	h := handler
	if r.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		r.emitDiagnostic(DiagnosticH2CEnabled, "H2C enabled; use only in dev or behind a trusted LB", nil)
	}

	srv := r.newServer(addr, h)

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServe()
}

// ServeTLS starts an https.Server bound to addr in front of handler using
// the given certificate and key files. HTTP/2 is negotiated via ALPN, so
// WithH2C has no effect here.
func (r *Router) ServeTLS(addr, certFile, keyFile string, handler http.Handler) error {
	srv := r.newServer(addr, handler)

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown gracefully stops the server started by Serve or ServeTLS,
// honoring ctx's deadline for in-flight connections. Shutdown is a no-op
// if no server is running.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.server = nil
	r.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	timeouts := r.serverTimeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}
}
