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
	"regexp"
	"strings"
)

// CompilePattern turns segments into an anchored regular expression that
// matches a pathname with an optional trailing slash.
//
//   - Static segments are literal, with regex metacharacters escaped.
//   - Dynamic segments become "/([^/]+)".
//   - Optional segments become "(?:/([^/]+))?".
//   - Catch-all segments become "(?:/(.+))?" — the dot intentionally matches "/".
//   - The root pattern (empty segments) is "^/$".
func CompilePattern(segments []Segment) (*regexp.Regexp, error) {
	if len(segments) == 0 {
		return regexp.Compile(`^/$`)
	}
	var b strings.Builder
	b.WriteString("^")
	for _, s := range segments {
		switch s.Kind {
		case SegmentStatic:
			b.WriteString("/")
			b.WriteString(regexp.QuoteMeta(s.Raw))
		case SegmentDynamic:
			b.WriteString("/([^/]+)")
		case SegmentOptional:
			b.WriteString("(?:/([^/]+))?")
		case SegmentCatchAll:
			b.WriteString("(?:/(.+))?")
		}
	}
	b.WriteString("/?$")
	return regexp.Compile(b.String())
}
