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
	"encoding/json"
	"net/http"
	"strings"

	"routekit.dev/routekit/trace"
)

// SnapshotHandler serves the current set of retained traces as JSON, or a
// single trace when the request path carries an ID suffix after prefix.
// A request naming an unknown trace ID answers 404.
func SnapshotHandler(tracer *trace.Tracer, prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		id = strings.Trim(id, "/")

		w.Header().Set("Content-Type", "application/json")

		if id == "" {
			traces := tracer.Traces()
			dtos := make([]TraceDTO, 0, len(traces))
			for _, tr := range traces {
				dtos = append(dtos, TraceToDTO(tr))
			}
			_ = json.NewEncoder(w).Encode(dtos)
			return
		}

		tr, ok := tracer.Trace(id)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "trace not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(TraceToDTO(tr))
	}
}

// HTMLSnapshotHandler renders the current retained traces embedded as a
// JSON literal inside a minimal HTML document, escaping "<" and ">" to
// their unicode forms so the payload cannot close the enclosing <script>
// tag early.
func HTMLSnapshotHandler(tracer *trace.Tracer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traces := tracer.Traces()
		dtos := make([]TraceDTO, 0, len(traces))
		for _, tr := range traces {
			dtos = append(dtos, TraceToDTO(tr))
		}

		raw, err := json.Marshal(dtos)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		escaped := escapeForInlineScript(raw)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!DOCTYPE html><html><head><title>traces</title></head><body>" +
			"<script>window.__TRACES__ = " + escaped + ";</script></body></html>"))
	}
}

func escapeForInlineScript(raw []byte) string {
	s := string(raw)
	s = strings.ReplaceAll(s, "<", "\\u003c")
	s = strings.ReplaceAll(s, ">", "\\u003e")
	return s
}
