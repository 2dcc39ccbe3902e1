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

import "errors"

// Static errors for better error handling and testing.
// These should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Discovery errors
	ErrDirUnreadable = errors.New("routes directory could not be read")

	// Tree errors
	ErrRouteNotFound = errors.New("route not found")

	// Config parse errors
	ErrMiddlewareListInvalid = errors.New("middleware field must be a list")
	ErrMiddlewareItemInvalid = errors.New("middleware item must be a name or handler reference")
	ErrRenderModeInvalid     = errors.New("render mode must be one of ssg, ssr, csr, json, xml")
	ErrPrerenderPathsInvalid = errors.New("prerender paths must be a list or a function returning a list")
	ErrHydrationStrategyBad  = errors.New("hydration strategy must be one of load, idle, visible, media, none")
	ErrPrefetchTriggerBad    = errors.New("prefetch trigger is not recognized")
	ErrVariantMissingPath    = errors.New("variant is missing a path")

	// Parameter validation errors
	ErrParamMissingRequired = errors.New("missing required parameter")
	ErrParamTypeMismatch    = errors.New("parameter type mismatch")
	ErrParamOutOfRange      = errors.New("parameter out of range")
	ErrParamRegexMismatch   = errors.New("parameter does not match pattern")
	ErrParamNotInEnum       = errors.New("parameter is not a member of the enum")
	ErrParamNotInteger      = errors.New("parameter is not an integer")
)
