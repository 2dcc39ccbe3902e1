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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateChainNoMismatchesWhenSatisfied(t *testing.T) {
	reg := NewRegistry()
	reg.Register("auth", noopHandler, Metadata{Provides: []string{"user"}})
	reg.Register("billing", noopHandler, Metadata{Requires: []string{"user"}})

	mismatches := ValidateChain([]string{"auth", "billing"}, reg)
	require.Empty(t, mismatches)
}

func TestValidateChainReportsMissingRequirement(t *testing.T) {
	reg := NewRegistry()
	reg.Register("billing", noopHandler, Metadata{Requires: []string{"user"}})

	mismatches := ValidateChain([]string{"billing"}, reg)
	require.Len(t, mismatches, 1)
	require.Equal(t, "billing", mismatches[0].Name)
	require.Equal(t, []string{"user"}, mismatches[0].Missing)
}

func TestValidateChainOrderMattersForProvides(t *testing.T) {
	reg := NewRegistry()
	reg.Register("auth", noopHandler, Metadata{Provides: []string{"user"}})
	reg.Register("billing", noopHandler, Metadata{Requires: []string{"user"}})

	// billing before auth: requirement not yet satisfied.
	mismatches := ValidateChain([]string{"billing", "auth"}, reg)
	require.Len(t, mismatches, 1)
	require.Equal(t, "billing", mismatches[0].Name)
}

func TestValidateChainDoesNotShortCircuit(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a", noopHandler, Metadata{Requires: []string{"x"}})
	reg.Register("b", noopHandler, Metadata{Requires: []string{"y"}})

	mismatches := ValidateChain([]string{"a", "b"}, reg)
	require.Len(t, mismatches, 2)
}

func TestValidateChainUnregisteredNameTreatedAsEmptyMetadata(t *testing.T) {
	reg := NewRegistry()
	mismatches := ValidateChain([]string{"missing"}, reg)
	require.Empty(t, mismatches)
}
