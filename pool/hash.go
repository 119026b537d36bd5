// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"math"

	"github.com/gogpu/drawbatch"
)

// Content hashing for framed-pool change detection.
//
// Every draw routed to a framed pool folds its state and geometry into
// the pool's current-frame hash with an order-sensitive FNV-1a
// combine: two frames produce equal hashes only when they contain the
// same draws, with the same parameters, in the same order. Fields at
// their default value are not folded, so the common all-defaults state
// contributes nothing but the geometry.
//
// Collisions are an accepted, bounded risk: a colliding frame reuses a
// stale target for one frame and self-corrects on the next. This is a
// performance optimization, never a correctness path.

const (
	hashSeed  uint64 = 14695981039346656037
	hashPrime uint64 = 1099511628211
)

// fold combines a 64-bit value into h, byte by byte.
func fold(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= hashPrime
		v >>= 8
	}
	return h
}

func foldFloat(h uint64, f float64) uint64 {
	return fold(h, math.Float64bits(f))
}

func foldColor(h uint64, c drawbatch.RGBA) uint64 {
	h = foldFloat(h, c.R)
	h = foldFloat(h, c.G)
	h = foldFloat(h, c.B)
	return foldFloat(h, c.A)
}

func foldRect(h uint64, r drawbatch.Rect) uint64 {
	h = fold(h, uint64(int64(r.X)))
	h = fold(h, uint64(int64(r.Y)))
	h = fold(h, uint64(int64(r.W)))
	return fold(h, uint64(int64(r.H)))
}

func foldPoint(h uint64, p drawbatch.Point) uint64 {
	h = fold(h, uint64(int64(p.X)))
	return fold(h, uint64(int64(p.Y)))
}

// updateHash folds one draw into the framed pool's current-frame hash.
// A bound shader forces a re-render instead, since its output cannot
// be captured here.
func (f *frame) updateHash(st drawbatch.State, cmd Command) {
	h := f.hash

	if st.Texture != nil {
		h = fold(h, st.Texture.HashID())
	}
	if st.Opacity < 1 {
		h = foldFloat(h, st.Opacity)
	}
	if st.Color != drawbatch.White {
		h = foldColor(h, st.Color)
	}
	if st.Composition != drawbatch.CompositionNormal {
		h = fold(h, uint64(st.Composition))
	}
	if st.Shader != nil {
		f.alwaysRender = true
	}
	if st.Clip.IsValid() {
		h = foldRect(h, st.Clip)
	}

	if cmd.Dest.IsValid() {
		h = foldRect(h, cmd.Dest)
	}
	if cmd.Src.IsValid() {
		h = foldRect(h, cmd.Src)
	}
	if !cmd.A.IsZero() {
		h = foldPoint(h, cmd.A)
	}
	if !cmd.B.IsZero() {
		h = foldPoint(h, cmd.B)
	}
	if !cmd.C.IsZero() {
		h = foldPoint(h, cmd.C)
	}
	if cmd.LineWidth != 0 {
		h = fold(h, uint64(int64(cmd.LineWidth)))
	}
	if cmd.Hash != 0 {
		h = fold(h, cmd.Hash)
	}

	f.hash = h
}
