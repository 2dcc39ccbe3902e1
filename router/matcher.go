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
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// MatchEntry is one compiled row in the matcher's prioritized table.
type MatchEntry struct {
	Route    *RouteNode
	Segments []Segment
	Regex    *regexp.Regexp
	Score    float64
}

// MatchResult is the outcome of a successful Matcher.Match call.
type MatchResult struct {
	Route    *RouteNode
	Params   map[string]any // string for dynamic/optional, []string for catch-all
	Pathname string
	Layouts  []*RouteNode // outermost first
}

// Matcher holds an ordered, score-sorted sequence of compiled entries.
// Ordering determines match precedence: the first entry whose regex
// accepts the normalized pathname wins.
type Matcher struct {
	mu      sync.RWMutex
	entries []MatchEntry
	layouts []*RouteNode // every node with IsLayout set, for §4.4 layout resolution
}

// NewMatcher compiles a matcher from every tree node.
//
// Layouts are excluded from direct matching except when they also carry an
// index flag (a layout that is also an index route can still match).
func NewMatcher(tree *Tree) (*Matcher, error) {
	m := &Matcher{}
	if err := m.Rebuild(tree); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild recompiles the matcher from the current state of tree.
func (m *Matcher) Rebuild(tree *Tree) error {
	nodes := tree.AllNodes()
	var entries []MatchEntry
	var layouts []*RouteNode
	for _, n := range nodes {
		if n.ID == "" {
			continue // synthetic root never matches directly
		}
		if n.IsLayout {
			layouts = append(layouts, n)
			if !n.IsIndex {
				continue
			}
		}
		re, err := CompilePattern(n.Segments)
		if err != nil {
			return err
		}
		entries = append(entries, MatchEntry{
			Route:    n,
			Segments: n.Segments,
			Regex:    re,
			Score:    n.Score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = entries
	m.layouts = layouts
	return nil
}

// Insert adds a single compiled entry, keeping entries sorted by descending
// score (stable with respect to equal scores already present).
func (m *Matcher) Insert(n *RouteNode) error {
	re, err := CompilePattern(n.Segments)
	if err != nil {
		return err
	}
	entry := MatchEntry{Route: n, Segments: n.Segments, Regex: re, Score: n.Score}

	m.mu.Lock()
	defer m.mu.Unlock()
	idx := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Score < entry.Score
	})
	m.entries = append(m.entries, MatchEntry{})
	copy(m.entries[idx+1:], m.entries[idx:])
	m.entries[idx] = entry
	if n.IsLayout {
		m.layouts = append(m.layouts, n)
	}
	return nil
}

// Remove drops the entry for the given route ID, if present.
func (m *Matcher) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.Route.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	for i, l := range m.layouts {
		if l.ID == id {
			m.layouts = append(m.layouts[:i], m.layouts[i+1:]...)
			break
		}
	}
}

// Entries returns a snapshot copy of the compiled table in match-precedence
// order (highest score first).
func (m *Matcher) Entries() []MatchEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MatchEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// NormalizePathname collapses consecutive slashes, maps the empty path to
// "/", and decodes percent-escapes for non-structural characters only
// (preserving "%2F"). Decode failures fall back to the raw, collapsed path.
func NormalizePathname(pathname string) string {
	if pathname == "" {
		pathname = "/"
	}
	var b strings.Builder
	lastSlash := false
	for _, r := range pathname {
		if r == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteRune(r)
	}
	collapsed := b.String()

	protected := strings.ReplaceAll(collapsed, "%2F", "\x00SLASH\x00")
	protected = strings.ReplaceAll(protected, "%2f", "\x00SLASH\x00")
	decoded, err := url.PathUnescape(protected)
	if err != nil {
		return collapsed
	}
	return strings.ReplaceAll(decoded, "\x00SLASH\x00", "%2F")
}

// Match walks entries in score order and returns the first regex match,
// extracting captures per segment. Catch-all captures are split by "/"
// into a []string; other captures are the literal string (or absent for
// an optional segment that did not match).
func (m *Matcher) Match(pathname string) (MatchResult, bool) {
	normalized := NormalizePathname(pathname)

	m.mu.RLock()
	entries := m.entries
	layouts := m.layouts
	m.mu.RUnlock()

	for _, e := range entries {
		groups := e.Regex.FindStringSubmatch(normalized)
		if groups == nil {
			continue
		}
		params := extractParams(e.Segments, groups[1:])
		return MatchResult{
			Route:    e.Route,
			Params:   params,
			Pathname: normalized,
			Layouts:  resolveLayouts(layouts, normalized),
		}, true
	}
	return MatchResult{}, false
}

func extractParams(segments []Segment, captures []string) map[string]any {
	params := make(map[string]any)
	ci := 0
	for _, s := range segments {
		switch s.Kind {
		case SegmentStatic:
			continue
		case SegmentDynamic, SegmentOptional:
			if ci < len(captures) {
				if captures[ci] != "" || s.Kind == SegmentDynamic {
					params[s.Param] = captures[ci]
				}
			}
			ci++
		case SegmentCatchAll:
			if ci < len(captures) && captures[ci] != "" {
				params[s.Param] = strings.Split(captures[ci], "/")
			}
			ci++
		}
	}
	return params
}

// resolveLayouts collects every layout whose path is a prefix of pathname
// (path equals pathname, pathname starts with path+"/", or path is "/"),
// sorted by ascending path length so the outermost wraps first.
func resolveLayouts(layouts []*RouteNode, pathname string) []*RouteNode {
	var matched []*RouteNode
	for _, l := range layouts {
		if isPrefixOf(l.Path, pathname) {
			matched = append(matched, l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return len(matched[i].Path) < len(matched[j].Path)
	})
	return matched
}
