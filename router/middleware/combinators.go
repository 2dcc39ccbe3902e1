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

package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

// Predicate decides whether a conditional handler should run for the
// current request.
type Predicate func(r *http.Request, ctx *Context) bool

// When invokes h when pred(r, ctx) is true; otherwise it delegates to next.
func When(pred Predicate, h Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request, ctx *Context, next Next) error {
		if pred(r, ctx) {
			return h(w, r, ctx, next)
		}
		return next()
	}
}

// Method is shorthand for When gated on request method membership.
func Method(methods []string, h Handler) Handler {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = struct{}{}
	}
	return When(func(r *http.Request, _ *Context) bool {
		_, ok := set[strings.ToUpper(r.Method)]
		return ok
	}, h)
}

// PathPattern is either a string (matched per the rules documented on
// Path) or a compiled *regexp.Regexp tested directly against the pathname.
type PathPattern any

// Path is shorthand for When gated on the request pathname. String
// patterns match by: exact equality; a wildcard suffix "/*" which matches
// by prefix on the leading segment; otherwise a prefix match that requires
// "/" as a segment boundary. Regex patterns are tested directly.
func Path(patterns []PathPattern, h Handler) Handler {
	return When(func(r *http.Request, _ *Context) bool {
		p := r.URL.Path
		for _, pattern := range patterns {
			switch pat := pattern.(type) {
			case string:
				if matchPathString(pat, p) {
					return true
				}
			case *regexp.Regexp:
				if pat.MatchString(p) {
					return true
				}
			}
		}
		return false
	}, h)
}

func matchPathString(pattern, p string) bool {
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	if pattern == p {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(pattern, "/")+"/")
}

// Compose builds a single Handler that internally runs h1..hn in chain
// order and delegates its own next when the inner chain is exhausted.
func Compose(handlers ...Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request, ctx *Context, next Next) error {
		return Dispatch(handlers, w, r, ctx, func(w http.ResponseWriter, r *http.Request, ctx *Context) error {
			return next()
		}, nil)
	}
}
