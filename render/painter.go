// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/drawbatch"
)

// Painter executes render state and geometry submissions.
//
// The batching engine is the only caller during a frame flush: it
// executes a batch's state, binds its texture, and submits the
// assembled CoordBuffer as one draw. Painters are NOT thread-safe;
// all calls happen on the rendering goroutine.
type Painter interface {
	// ExecuteState makes st the active render state for subsequent
	// submissions. It also resets any bound texture.
	ExecuteState(st drawbatch.State)

	// SetTexture binds the texture sampled by subsequent submissions.
	SetTexture(t drawbatch.Texture)

	// DrawCoords issues one draw submission for the buffer contents
	// under the active state. The caller clears the buffer afterwards.
	DrawCoords(c *drawbatch.CoordBuffer, mode drawbatch.DrawMode)

	// SaveState pushes the active paint state and resets it to
	// defaults. Used around framed-pool compositing.
	SaveState()

	// RestoreState pops the most recently saved paint state.
	RestoreState()

	// Clear fills the currently bound target with the given color.
	Clear(c drawbatch.RGBA)

	// NewTarget creates an offscreen render target compatible with
	// this painter.
	NewTarget(width, height int) (Target, error)
}

// ErrNoPainter is returned when no registered painter backend is
// available on this system.
var ErrNoPainter = errors.New("render: no painter backend available")

// PainterFactory creates a painter with the given output dimensions.
type PainterFactory func(width, height int) (Painter, error)

// registryEntry represents a registered painter backend.
type registryEntry struct {
	name      string
	priority  int
	factory   PainterFactory
	available bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*registryEntry)
)

// Register adds a painter backend to the registry.
//
// Standard priorities:
//   - 100: GPU backends
//   - 10: pure software backends
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory PainterFactory, available func() bool) {
	ok := true
	if available != nil {
		ok = available()
	}
	registryMu.Lock()
	registry[name] = &registryEntry{
		name:      name,
		priority:  priority,
		factory:   factory,
		available: ok,
	}
	registryMu.Unlock()
}

// NewPainter creates a painter from the highest-priority available
// backend. Returns ErrNoPainter if none is registered and available.
func NewPainter(width, height int) (Painter, error) {
	registryMu.RLock()
	entries := make([]*registryEntry, 0, len(registry))
	for _, e := range registry {
		if e.available {
			entries = append(entries, e)
		}
	}
	registryMu.RUnlock()

	if len(entries) == 0 {
		return nil, ErrNoPainter
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	var firstErr error
	for _, e := range entries {
		p, err := e.factory(width, height)
		if err == nil {
			drawbatch.Logger().Info("render: painter selected", "backend", e.name)
			return p, nil
		}
		drawbatch.Logger().Warn("render: painter backend failed", "backend", e.name, "err", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("render: backend %q: %w", e.name, err)
		}
	}
	return nil, firstErr
}

// NewPainterByName creates a painter from a specific backend.
func NewPainterByName(name string, width, height int) (Painter, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()
	if !ok || !e.available {
		return nil, fmt.Errorf("render: backend %q: %w", name, ErrNoPainter)
	}
	return e.factory(width, height)
}

// Backends returns the registered backend names, highest priority first.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	entries := make([]*registryEntry, 0, len(registry))
	for _, e := range registry {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
