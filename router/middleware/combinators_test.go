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
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func markHandler(ran *bool) Handler {
	return func(w http.ResponseWriter, r *http.Request, ctx *Context, next Next) error {
		*ran = true
		return next()
	}
}

func TestWhenRunsHandlerWhenTrue(t *testing.T) {
	var ran bool
	h := When(func(r *http.Request, ctx *Context) bool { return true }, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestWhenSkipsHandlerWhenFalse(t *testing.T) {
	var ran bool
	h := When(func(r *http.Request, ctx *Context) bool { return false }, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.False(t, ran)
}

func TestMethodGatesOnRequestMethod(t *testing.T) {
	var ran bool
	h := Method([]string{"post", "put"}, markHandler(&ran))

	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.False(t, ran)

	ran = false
	err = Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestPathExactMatch(t *testing.T) {
	var ran bool
	h := Path([]PathPattern{"/admin"}, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestPathWildcardSuffixMatchesNested(t *testing.T) {
	var ran bool
	h := Path([]PathPattern{"/admin/*"}, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/users", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestPathPrefixRequiresSegmentBoundary(t *testing.T) {
	var ran bool
	h := Path([]PathPattern{"/admin"}, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/administrator", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.False(t, ran)
}

func TestPathRegexPattern(t *testing.T) {
	var ran bool
	h := Path([]PathPattern{regexp.MustCompile(`^/users/\d+$`)}, markHandler(&ran))
	err := Dispatch([]Handler{h}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/42", nil), NewContext(), nil, nil)
	require.NoError(t, err)
	require.True(t, ran)
}

func TestComposeChainsHandlersAndDelegatesNext(t *testing.T) {
	var trail []string
	composed := Compose(
		recordingHandler("x", &trail),
		recordingHandler("y", &trail),
	)
	final := func(w http.ResponseWriter, r *http.Request, ctx *Context) error {
		trail = append(trail, "final")
		return nil
	}
	err := Dispatch([]Handler{composed}, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NewContext(), final, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"x:pre", "y:pre", "final", "y:post", "x:post"}, trail)
}
