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

import "net/http"

// Dispatch composes handlers into a recursive, onion-model chain and runs
// it against w/r/ctx.
//
// Within a request: pre-next code runs in declared order (h1..hn);
// post-next code runs in reverse order (hn..h1). A handler that returns
// without calling next short-circuits every downstream handler and the
// final handler. Each invocation is guarded: a panic is converted to a
// *WrappedError (which unwraps to the panic value when that value is an
// error) and handed to errHandler if set, otherwise rethrown via the
// returned error. Errors returned by handlers are passed on unwrapped.
func Dispatch(handlers []Handler, w http.ResponseWriter, r *http.Request, ctx *Context, final FinalHandler, errHandler ErrorHandler) error {
	index := 0

	var next Next
	next = func() error {
		if index == len(handlers) {
			if final == nil {
				return nil
			}
			return guardFinal(final, w, r, ctx)
		}
		h := handlers[index]
		index++
		called := false
		localNext := Next(func() error {
			if called {
				return ErrNextCalledTwice
			}
			called = true
			return next()
		})
		return guardHandler(h, w, r, ctx, localNext)
	}

	err := next()
	if err == nil {
		return nil
	}
	if errHandler != nil {
		return errHandler(w, r, ctx, err)
	}
	return err
}

func guardHandler(h Handler, w http.ResponseWriter, r *http.Request, ctx *Context, next Next) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &WrappedError{Cause: rec}
		}
	}()
	return h(w, r, ctx, next)
}

func guardFinal(final FinalHandler, w http.ResponseWriter, r *http.Request, ctx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &WrappedError{Cause: rec}
		}
	}()
	return final(w, r, ctx)
}
