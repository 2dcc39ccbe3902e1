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
	"fmt"
	"sync"
)

// Metadata describes what a named middleware provides to, and requires
// from, the context bag — used by ValidateChain (see validate.go).
type Metadata struct {
	Provides []string
	Requires []string
}

// Registry is a process-wide mapping from name to handler, plus a
// secondary mapping from name to typed Metadata.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	metadata map[string]Metadata
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		metadata: make(map[string]Metadata),
	}
}

// Register adds or replaces the handler for name, with optional metadata.
func (reg *Registry) Register(name string, h Handler, meta ...Metadata) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.handlers[name] = h
	if len(meta) > 0 {
		reg.metadata[name] = meta[0]
	}
}

// Unregister removes name from the registry.
func (reg *Registry) Unregister(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.handlers, name)
	delete(reg.metadata, name)
}

// Clear removes every registered handler and its metadata.
func (reg *Registry) Clear() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.handlers = make(map[string]Handler)
	reg.metadata = make(map[string]Metadata)
}

// Lookup returns the handler registered under name.
func (reg *Registry) Lookup(name string) (Handler, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	h, ok := reg.handlers[name]
	return h, ok
}

// LookupMetadata returns the metadata registered under name.
func (reg *Registry) LookupMetadata(name string) (Metadata, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	m, ok := reg.metadata[name]
	return m, ok
}

// Reference is either a Handler value or a string name to resolve against
// a Registry.
type Reference any

// Resolve turns a Reference into a concrete Handler. A function reference
// resolves to itself; a string reference looks up in reg; a missing name
// fails with ErrMiddlewareNotFound. Any other reference type fails with
// ErrInvalidReference.
func Resolve(ref Reference, reg *Registry) (Handler, error) {
	switch v := ref.(type) {
	case Handler:
		return v, nil
	case string:
		h, ok := reg.Lookup(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMiddlewareNotFound, v)
		}
		return h, nil
	default:
		return nil, ErrInvalidReference
	}
}

// ResolveAll resolves every reference in order, stopping at the first error.
func ResolveAll(refs []Reference, reg *Registry) ([]Handler, error) {
	handlers := make([]Handler, 0, len(refs))
	for _, ref := range refs {
		h, err := Resolve(ref, reg)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}
