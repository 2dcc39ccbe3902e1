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

// Base segment weights used by Score. Earlier segments dominate the final
// score so that a static-then-dynamic pattern like "/blog/[slug]" outranks
// a dynamic-then-static pattern like "/[id]/posts", and a static segment
// anywhere beats a catch-all.
const (
	weightStatic   = 100
	weightIndex    = 90
	weightDynamic  = 50
	weightOptional = 30
	weightCatchAll = 10
)

func weightFor(kind SegmentKind, isIndex bool) int {
	if isIndex {
		return weightIndex
	}
	switch kind {
	case SegmentStatic:
		return weightStatic
	case SegmentDynamic:
		return weightDynamic
	case SegmentOptional:
		return weightOptional
	case SegmentCatchAll:
		return weightCatchAll
	default:
		return 0
	}
}

// Score computes Σᵢ (weightᵢ × 1000/(i+1)) over the 0-based segment
// position i. isIndex applies the index weight to an empty-segment route
// (the route for a directory's index file) instead of falling back to zero.
func Score(segments []Segment, isIndex bool) float64 {
	if len(segments) == 0 {
		if isIndex {
			return float64(weightIndex) * 1000
		}
		return 0
	}
	var total float64
	for i, s := range segments {
		w := weightFor(s.Kind, false)
		total += float64(w) * 1000 / float64(i+1)
	}
	return total
}
