// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"fmt"

	"github.com/gogpu/drawbatch"
	"github.com/gogpu/drawbatch/render"
)

// Kind identifies one of the engine's fixed rendering layers. Pools
// are composited in Kind order, so the order below is the layering
// order.
type Kind uint8

// Pool kinds.
const (
	// KindMap is the game-world layer. Framed; rendered with blending
	// disabled since the map repaints every pixel.
	KindMap Kind = iota

	// KindCreatureInfo holds health bars and name plates drawn over
	// the map. Immediate.
	KindCreatureInfo

	// KindLight is the lighting overlay. Framed; composited with the
	// Light blend mode.
	KindLight

	// KindText holds floating text. Immediate.
	KindText

	// KindForeground is the UI layer. Framed.
	KindForeground

	// KindUnknown is the always-present catch-all pool, current by
	// default. Immediate.
	KindUnknown

	numKinds
)

// String returns the string representation of the pool kind.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "Map"
	case KindCreatureInfo:
		return "CreatureInfo"
	case KindLight:
		return "Light"
	case KindText:
		return "Text"
	case KindForeground:
		return "Foreground"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Pool is a named accumulation buffer holding one layer's draw batches
// for the current frame. Pools live for the engine's lifetime; their
// batch lists are cleared after every Draw.
type Pool struct {
	kind    Kind
	batches []*Batch
	enabled bool

	// state seeds every new batch created while this pool is current:
	// clip, composition, opacity, alpha-write, and shader carry over,
	// texture and color come from the individual draw call.
	state drawbatch.State

	// searchIndex caches where the repeating merge path may start
	// scanning. Reset on Use, advanced past action batches.
	searchIndex int

	frame *frame
}

// frame is the framed-pool extension: the offscreen target, how it is
// composited, and the change-detection hash pair.
type frame struct {
	target render.Target

	dest, src drawbatch.Rect

	beforeDraw, afterDraw func()

	// hash accumulates over the current frame's draws; lastHash holds
	// the value of the last rendered frame. alwaysRender is set when a
	// shader is seen this frame, since shader side effects cannot be
	// captured by the hash.
	hash         uint64
	lastHash     uint64
	alwaysRender bool
}

func newPool(kind Kind) *Pool {
	return &Pool{
		kind:    kind,
		enabled: true,
		state:   drawbatch.DefaultState(),
	}
}

// Kind returns the pool's layer kind.
func (p *Pool) Kind() Kind { return p.kind }

// Framed reports whether the pool owns an offscreen render target.
func (p *Pool) Framed() bool { return p.frame != nil }

// Enabled reports whether the pool participates in Draw.
func (p *Pool) Enabled() bool { return p.enabled }

// SetEnabled includes or excludes the pool from both Draw phases.
// Disabling does not touch the pool's offscreen target contents.
func (p *Pool) SetEnabled(enabled bool) { p.enabled = enabled }

// Target returns the pool's offscreen target, or nil for immediate
// pools.
func (p *Pool) Target() render.Target {
	if p.frame == nil {
		return nil
	}
	return p.frame.target
}

// SetBeforeDraw sets a callback invoked just before the pool's target
// is composited. No-op for immediate pools.
func (p *Pool) SetBeforeDraw(fn func()) {
	if p.frame != nil {
		p.frame.beforeDraw = fn
	}
}

// SetAfterDraw sets a callback invoked just after the pool's target is
// composited. No-op for immediate pools.
func (p *Pool) SetAfterDraw(fn func()) {
	if p.frame != nil {
		p.frame.afterDraw = fn
	}
}

// Batches exposes the accumulated batch list. Read-only for callers;
// tests use it to observe merge behavior.
func (p *Pool) Batches() []*Batch { return p.batches }

// reset prepares the pool for accumulation as the current pool: the
// state snapshot returns to defaults with alpha-writing disabled, the
// merge-search index rewinds, and a framed pool's current-frame hash
// restarts.
func (p *Pool) reset() {
	p.state = drawbatch.DefaultState()
	p.state.AlphaWrite = false
	p.searchIndex = 0
	if p.frame != nil {
		p.frame.hash = hashSeed
		p.frame.alwaysRender = false
	}
}

// changed reports whether the framed pool must be re-rendered this
// frame.
func (f *frame) changed() bool {
	return f.alwaysRender || f.hash != f.lastHash
}

// markRendered records the current hash as the rendered baseline.
func (f *frame) markRendered() { f.lastHash = f.hash }

// compositeRects returns the dest/src pair used to draw the target,
// defaulting to the full target size when unset.
func (f *frame) compositeRects() (dest, src drawbatch.Rect) {
	dest, src = f.dest, f.src
	full := drawbatch.RectFromSize(f.target.Width(), f.target.Height())
	if dest.IsEmpty() {
		dest = full
	}
	if src.IsEmpty() {
		src = full
	}
	return dest, src
}
