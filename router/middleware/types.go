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

// Package middleware implements a named registry and a recursive,
// Koa-style dispatcher: handlers run in declared order around a
// single-call "next", support short-circuiting, and compose through a
// small set of combinators (when/method/path).
package middleware

import "net/http"

// ContextKey is a type for context keys to avoid collisions with other
// packages' string-keyed context values.
type ContextKey string

// Next advances the chain. Calling Next a second time from within the same
// handler invocation fails with ErrNextCalledTwice.
type Next func() error

// Handler is one link in a middleware chain. It receives the shared
// per-request Context bag (see context.go) alongside the standard
// http.ResponseWriter/http.Request pair, and must call next() to continue
// the chain or return without calling it to short-circuit.
type Handler func(w http.ResponseWriter, r *http.Request, ctx *Context, next Next) error

// ErrorHandler receives an error raised by a Handler or the final handler.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, ctx *Context, err error) error

// FinalHandler is invoked once every Handler in the chain has called next.
type FinalHandler func(w http.ResponseWriter, r *http.Request, ctx *Context) error
