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
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEventKind enumerates the three event kinds the watcher emits.
type WatchEventKind int

const (
	// EventReload fires when a route file is created or renamed; the
	// caller should treat it as "full discovery ran, here is the new set".
	EventReload WatchEventKind = iota
	// EventChange fires when an existing route file was modified in place.
	EventChange
	// EventRemove fires when a route file was deleted.
	EventRemove
)

// WatchEvent is delivered on Watcher.Events().
type WatchEvent struct {
	Kind    WatchEventKind
	Routes  []RouteFile // populated for EventReload
	Route   *RouteNode  // populated for EventChange
	RouteID string      // populated for EventRemove
}

// debounceDelay is the fixed coalescing window for filesystem events:
// a burst of rapid writes collapses into a single update.
const debounceDelay = 50 * time.Millisecond

// Watcher drives incremental route tree updates from filesystem
// notifications. One background goroutine reads the notifications and
// keeps a single pending debounce timer; the timer's callback runs on its
// own goroutine, so the timer and the pending event are guarded by mu.
type Watcher struct {
	routesDir  string
	extensions []string
	tree       *Tree
	matcher    *Matcher

	fsw    *fsnotify.Watcher
	events chan WatchEvent
	done   chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	pending *fsnotify.Event
}

// NewWatcher subscribes to routesDir recursively and begins debounced
// dispatch. Callers must call Close when done.
func NewWatcher(routesDir string, extensions []string, tree *Tree, matcher *Matcher) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		routesDir:  routesDir,
		extensions: extensions,
		tree:       tree,
		matcher:    matcher,
		fsw:        fsw,
		events:     make(chan WatchEvent, 16),
		done:       make(chan struct{}),
	}
	if err := w.addRecursive(routesDir); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(p)
		}
		return nil
	})
}

// Events returns the channel on which watch events are delivered.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Close stops the watcher and releases its filesystem subscription.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleRaw(ev)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Errors are surfaced only as missed events; the watcher keeps running.
		}
	}
}

// handleRaw filters events before debouncing. Events whose extension is
// outside the allowlist, or with no filename, are ignored.
func (w *Watcher) handleRaw(ev fsnotify.Event) {
	if ev.Name == "" {
		return
	}
	if ev.Has(fsnotify.Create) {
		_ = w.addRecursive(ev.Name) // harmless if ev.Name is a file, not a dir
	}
	if !hasAllowedExtension(ev.Name, w.extensions) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	evCopy := ev
	w.pending = &evCopy
	w.timer = time.AfterFunc(debounceDelay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	ev := w.pending
	w.pending = nil
	w.mu.Unlock()
	if ev == nil {
		return
	}
	w.dispatch(*ev)
}

// dispatch stats the affected file and decides between a full reload, an
// in-place change, or a removal.
func (w *Watcher) dispatch(ev fsnotify.Event) {
	info, err := os.Stat(ev.Name)
	exists := err == nil

	if !exists {
		rel := relFromAbs(w.routesDir, ev.Name)
		id := routeID(rel)
		w.tree.RemoveByID(id)
		w.matcher.Remove(id)
		select {
		case w.events <- WatchEvent{Kind: EventRemove, RouteID: id}:
		case <-w.done:
		}
		return
	}
	_ = info

	wasRename := ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
	if wasRename {
		files, err := Discover(w.routesDir, w.extensions)
		if err != nil {
			return
		}
		w.tree.Build(files)
		if err := w.matcher.Rebuild(w.tree); err != nil {
			return
		}
		select {
		case w.events <- WatchEvent{Kind: EventReload, Routes: files}:
		case <-w.done:
		}
		return
	}

	rel := relFromAbs(w.routesDir, ev.Name)
	node := w.tree.UpsertFile(RouteFile{RelPath: rel, AbsPath: ev.Name})
	node.Module = nil
	node.Config = nil
	_ = w.matcher.Rebuild(w.tree)
	select {
	case w.events <- WatchEvent{Kind: EventChange, Route: node}:
	case <-w.done:
	}
}
