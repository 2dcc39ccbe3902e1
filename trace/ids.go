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

package trace

import (
	"strings"

	"github.com/google/uuid"
)

// newTraceID returns a 16-byte identifier rendered as an unhyphenated hex
// string (32 characters).
func newTraceID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// newSpanID returns an 8-byte identifier rendered as an unhyphenated hex
// string (16 characters) — the low half of a fresh UUID.
func newSpanID() string {
	id := uuid.New()
	return strings.ReplaceAll(uuid.UUID(id).String(), "-", "")[16:]
}
