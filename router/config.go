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

import "fmt"

// RenderMode enumerates the five recognized rendering strategies.
type RenderMode string

const (
	RenderSSG  RenderMode = "ssg"
	RenderSSR  RenderMode = "ssr"
	RenderCSR  RenderMode = "csr"
	RenderJSON RenderMode = "json"
	RenderXML  RenderMode = "xml"
)

func (m RenderMode) valid() bool {
	switch m {
	case RenderSSG, RenderSSR, RenderCSR, RenderJSON, RenderXML:
		return true
	}
	return false
}

// StreamingConfig controls SSR response streaming.
type StreamingConfig struct {
	Enabled bool
}

// PrerenderPaths is either a concrete list of paths or a (possibly async)
// function returning one. The source does not distinguish "function
// returned empty" from "missing"; downstream consumers should treat both
// identically.
type PrerenderPaths struct {
	Paths []string
	Func  func() ([]string, error)
}

// RenderConfig carries the parsed "render" subsection. Defaults to
// {mode: ssr, streaming: {enabled: true}} when absent.
type RenderConfig struct {
	Mode      RenderMode
	Streaming StreamingConfig
	Prerender *PrerenderPaths
}

// AuthConfig carries the parsed "auth" subsection.
type AuthConfig struct {
	Required     bool
	Roles        []string
	Permissions  []string
	Check        func(params map[string]any) (bool, error)
	Redirect     string
	Unauthorized any
}

// VariantConfig is one entry of the "variants" subsection.
type VariantConfig struct {
	Path string
	Data any
}

// MiddlewareRef is either a name to resolve against a registry, or a
// direct handler value. Exactly one of Name or Handler is set.
type MiddlewareRef struct {
	Name    string
	Handler any
}

// RouteConfig is the parsed, canonical form of a route module's exported
// `config` object. Unknown fields are preserved permissively by the raw
// map callers may retain separately; RouteConfig models only the
// recognized fields.
type RouteConfig struct {
	Middleware  []MiddlewareRef
	Render      *RenderConfig
	Cache       any
	Auth        *AuthConfig
	Progressive any
	Islands     any
	Dev         any
	Variants    []VariantConfig
}

// ParseRouteConfig validates and canonicalizes a raw, dynamically-typed
// config map (as decoded from JSON/YAML or constructed by a route module).
func ParseRouteConfig(raw map[string]any) (*RouteConfig, error) {
	cfg := &RouteConfig{}

	if v, ok := raw["middleware"]; ok {
		mw, err := parseMiddlewareField(v)
		if err != nil {
			return nil, err
		}
		cfg.Middleware = mw
	}

	render, err := parseRenderField(raw["render"])
	if err != nil {
		return nil, err
	}
	cfg.Render = render

	if v, ok := raw["auth"]; ok && v != nil {
		auth, err := parseAuthField(v)
		if err != nil {
			return nil, err
		}
		cfg.Auth = auth
	}

	cfg.Cache = raw["cache"]
	cfg.Progressive = raw["progressive"]
	cfg.Islands = raw["islands"]
	cfg.Dev = raw["dev"]

	if v, ok := raw["variants"]; ok {
		variants, err := parseVariantsField(v)
		if err != nil {
			return nil, err
		}
		cfg.Variants = variants
	}

	return cfg, nil
}

func parseMiddlewareField(v any) ([]MiddlewareRef, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, ErrMiddlewareListInvalid
	}
	refs := make([]MiddlewareRef, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			refs = append(refs, MiddlewareRef{Name: t})
		default:
			if isCallable(item) {
				refs = append(refs, MiddlewareRef{Handler: item})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrMiddlewareItemInvalid, item)
		}
	}
	return refs, nil
}

// isCallable reports whether v looks like a handler reference: any
// non-nil value that is not itself a plain data type we already handle.
// Route config values flow in as opaque `any`; the router does not
// impose a concrete handler type here (see router/middleware for that).
func isCallable(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case string, int, int64, float64, bool, []any, map[string]any:
		return false
	default:
		return true
	}
}

func parseRenderField(v any) (*RenderConfig, error) {
	cfg := &RenderConfig{Mode: RenderSSR, Streaming: StreamingConfig{Enabled: true}}
	if v == nil {
		return cfg, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrRenderModeInvalid
	}
	if modeRaw, ok := m["mode"]; ok {
		modeStr, ok := modeRaw.(string)
		if !ok {
			return nil, ErrRenderModeInvalid
		}
		mode := RenderMode(modeStr)
		if !mode.valid() {
			return nil, ErrRenderModeInvalid
		}
		cfg.Mode = mode
	}
	if streamingRaw, ok := m["streaming"]; ok {
		sm, ok := streamingRaw.(map[string]any)
		if !ok {
			return nil, ErrRenderModeInvalid
		}
		if enabled, ok := sm["enabled"]; ok {
			b, ok := enabled.(bool)
			if !ok {
				return nil, ErrRenderModeInvalid
			}
			cfg.Streaming.Enabled = b
		}
	}
	if prerenderRaw, ok := m["prerender"]; ok {
		pp, err := parsePrerenderPaths(prerenderRaw)
		if err != nil {
			return nil, err
		}
		cfg.Prerender = pp
	}
	return cfg, nil
}

func parsePrerenderPaths(v any) (*PrerenderPaths, error) {
	switch t := v.(type) {
	case []any:
		paths := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, ErrPrerenderPathsInvalid
			}
			paths = append(paths, s)
		}
		return &PrerenderPaths{Paths: paths}, nil
	case func() ([]string, error):
		return &PrerenderPaths{Func: t}, nil
	default:
		return nil, ErrPrerenderPathsInvalid
	}
}

func parseAuthField(v any) (*AuthConfig, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("auth: %w", ErrRenderModeInvalid)
	}
	cfg := &AuthConfig{}
	if req, ok := m["required"].(bool); ok {
		cfg.Required = req
	}
	if roles, ok := m["roles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				cfg.Roles = append(cfg.Roles, s)
			}
		}
	}
	if perms, ok := m["permissions"].([]any); ok {
		for _, p := range perms {
			if s, ok := p.(string); ok {
				cfg.Permissions = append(cfg.Permissions, s)
			}
		}
	}
	if check, ok := m["check"].(func(map[string]any) (bool, error)); ok {
		cfg.Check = check
	}
	if redirect, ok := m["redirect"].(string); ok {
		cfg.Redirect = redirect
	}
	cfg.Unauthorized = m["unauthorized"]
	return cfg, nil
}

func parseVariantsField(v any) ([]VariantConfig, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, ErrVariantMissingPath
	}
	variants := make([]VariantConfig, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, ErrVariantMissingPath
		}
		p, ok := m["path"].(string)
		if !ok || p == "" {
			return nil, ErrVariantMissingPath
		}
		variants = append(variants, VariantConfig{Path: p, Data: m["data"]})
	}
	return variants, nil
}

// MergeRouteConfigs concatenates middleware (parent first, child second)
// and uses the child's value for every other field when set, else the
// parent's. Nested objects are not deep-merged.
func MergeRouteConfigs(parent, child *RouteConfig) *RouteConfig {
	if parent == nil {
		return child
	}
	if child == nil {
		return parent
	}
	merged := &RouteConfig{}
	merged.Middleware = append(append([]MiddlewareRef{}, parent.Middleware...), child.Middleware...)

	if child.Render != nil {
		merged.Render = child.Render
	} else {
		merged.Render = parent.Render
	}
	if child.Cache != nil {
		merged.Cache = child.Cache
	} else {
		merged.Cache = parent.Cache
	}
	if child.Auth != nil {
		merged.Auth = child.Auth
	} else {
		merged.Auth = parent.Auth
	}
	if child.Progressive != nil {
		merged.Progressive = child.Progressive
	} else {
		merged.Progressive = parent.Progressive
	}
	if child.Islands != nil {
		merged.Islands = child.Islands
	} else {
		merged.Islands = parent.Islands
	}
	if child.Dev != nil {
		merged.Dev = child.Dev
	} else {
		merged.Dev = parent.Dev
	}
	if len(child.Variants) > 0 {
		merged.Variants = child.Variants
	} else {
		merged.Variants = parent.Variants
	}
	return merged
}
