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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRouteConfigDefaults(t *testing.T) {
	cfg, err := ParseRouteConfig(map[string]any{})
	require.NoError(t, err)
	require.Equal(t, RenderSSR, cfg.Render.Mode)
	require.True(t, cfg.Render.Streaming.Enabled)
}

func TestParseRouteConfigMiddlewareMixedRefs(t *testing.T) {
	handler := func() {}
	cfg, err := ParseRouteConfig(map[string]any{
		"middleware": []any{"auth", handler},
	})
	require.NoError(t, err)
	require.Len(t, cfg.Middleware, 2)
	require.Equal(t, "auth", cfg.Middleware[0].Name)
	require.NotNil(t, cfg.Middleware[1].Handler)
}

func TestParseRouteConfigInvalidRenderMode(t *testing.T) {
	_, err := ParseRouteConfig(map[string]any{
		"render": map[string]any{"mode": "bogus"},
	})
	require.ErrorIs(t, err, ErrRenderModeInvalid)
}

func TestParseRouteConfigPrerenderPathsList(t *testing.T) {
	cfg, err := ParseRouteConfig(map[string]any{
		"render": map[string]any{
			"prerender": []any{"/a", "/b"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/a", "/b"}, cfg.Render.Prerender.Paths)
}

func TestParseRouteConfigAuth(t *testing.T) {
	cfg, err := ParseRouteConfig(map[string]any{
		"auth": map[string]any{
			"required": true,
			"roles":    []any{"admin", "editor"},
		},
	})
	require.NoError(t, err)
	require.True(t, cfg.Auth.Required)
	require.Equal(t, []string{"admin", "editor"}, cfg.Auth.Roles)
}

func TestParseRouteConfigVariantsRequirePath(t *testing.T) {
	_, err := ParseRouteConfig(map[string]any{
		"variants": []any{map[string]any{"data": 1}},
	})
	require.ErrorIs(t, err, ErrVariantMissingPath)
}

func TestMergeRouteConfigsChildOverridesAndConcatenatesMiddleware(t *testing.T) {
	parent := &RouteConfig{
		Middleware: []MiddlewareRef{{Name: "logging"}},
		Render:     &RenderConfig{Mode: RenderSSR},
	}
	child := &RouteConfig{
		Middleware: []MiddlewareRef{{Name: "auth"}},
		Render:     &RenderConfig{Mode: RenderCSR},
	}
	merged := MergeRouteConfigs(parent, child)
	require.Equal(t, []MiddlewareRef{{Name: "logging"}, {Name: "auth"}}, merged.Middleware)
	require.Equal(t, RenderCSR, merged.Render.Mode)
}

func TestMergeRouteConfigsNilParentReturnsChild(t *testing.T) {
	child := &RouteConfig{}
	require.Same(t, child, MergeRouteConfigs(nil, child))
}
