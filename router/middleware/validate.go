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

import "fmt"

// Mismatch records one middleware in a chain whose requirements were not
// satisfied by what upstream middleware provided.
type Mismatch struct {
	Name    string
	Missing []string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("%s requires %v, which upstream middleware did not provide", m.Name, m.Missing)
}

// ValidateChain simulates running the named chain against reg, accumulating
// each middleware's Provides set and verifying each middleware's Requires
// set is a subset of what has been provided so far. It does not
// short-circuit: every mismatch in the chain is returned.
func ValidateChain(names []string, reg *Registry) []Mismatch {
	provided := make(map[string]struct{})
	var mismatches []Mismatch

	for _, name := range names {
		meta, _ := reg.LookupMetadata(name)

		var missing []string
		for _, req := range meta.Requires {
			if _, ok := provided[req]; !ok {
				missing = append(missing, req)
			}
		}
		if len(missing) > 0 {
			mismatches = append(mismatches, Mismatch{Name: name, Missing: missing})
		}

		for _, p := range meta.Provides {
			provided[p] = struct{}{}
		}
	}
	return mismatches
}
