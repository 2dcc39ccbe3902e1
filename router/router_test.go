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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRouteFile(t *testing.T, dir, rel string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("export default function () {}\n"), 0o644))
}

func TestRouterMatchesDiscoveredRoutes(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "index.tsx")
	writeRouteFile(t, dir, "about.tsx")
	writeRouteFile(t, dir, "blog/[slug].tsx")

	r, err := New(WithRoutesDir(dir))
	require.NoError(t, err)
	defer r.Close()

	res, ok := r.Match("/blog/hello")
	require.True(t, ok)
	require.Equal(t, "hello", res.Params["slug"])
}

func TestRouterMatchTableIsScoreOrdered(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "index.tsx")
	writeRouteFile(t, dir, "about.tsx")
	writeRouteFile(t, dir, "blog/[slug].tsx")

	r, err := New(WithRoutesDir(dir))
	require.NoError(t, err)
	defer r.Close()

	entries := r.MatchTable()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}
}

func TestRouterMissingDirectoryIsNotAnError(t *testing.T) {
	r, err := New(WithRoutesDir(filepath.Join(t.TempDir(), "nope")))
	require.NoError(t, err)
	defer r.Close()

	_, ok := r.Match("/anything")
	require.False(t, ok)
}

func TestRouterMiddlewareChainIncludesRootMiddleware(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "_middleware.ts")
	writeRouteFile(t, dir, "blog/index.tsx")

	r, err := New(WithRoutesDir(dir))
	require.NoError(t, err)
	defer r.Close()

	chain := r.MiddlewareChain("/blog")
	require.Len(t, chain, 1)
}

func TestRouterWatchDisabledHasNilEventsChannel(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "index.tsx")

	r, err := New(WithRoutesDir(dir))
	require.NoError(t, err)
	defer r.Close()

	require.Nil(t, r.WatchEvents())
}
