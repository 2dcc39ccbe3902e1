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

import "errors"

// Static errors for better error handling and testing.
var (
	// ErrMiddlewareNotFound is returned when a named reference does not
	// resolve against the registry.
	ErrMiddlewareNotFound = errors.New("named middleware not found")

	// ErrInvalidReference is returned when a reference is neither a
	// function nor a registered name.
	ErrInvalidReference = errors.New("invalid middleware reference type")

	// ErrNextCalledTwice is returned when a handler invokes next() more
	// than once during a single invocation.
	ErrNextCalledTwice = errors.New("next() called more than once")
)

// WrappedError wraps a panic or non-error value raised by a handler so it
// can be passed through an ErrorHandler uniformly.
type WrappedError struct {
	Cause any
}

func (e *WrappedError) Error() string {
	if err, ok := e.Cause.(error); ok {
		return err.Error()
	}
	return "middleware panic"
}

func (e *WrappedError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
