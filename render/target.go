// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/drawbatch"
)

// Target is an offscreen surface a framed pool renders into.
//
// The frame driver binds the target, replays the pool's batches into
// it, releases it, and later composites it into the main output with
// Draw. Targets persist across frames so an unchanged pool can skip
// the re-render and composite the previous contents.
type Target interface {
	// Bind redirects painter output into the target and clears it to
	// transparent. Every Bind must be paired with Release.
	Bind()

	// Release restores painter output to the previous destination.
	Release()

	// Draw composites the target region src into the current output
	// rectangle dest, honoring the target's composition mode.
	Draw(dest, src drawbatch.Rect)

	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the texture format of the target surface.
	Format() gputypes.TextureFormat

	// SetCompositionMode sets the blend mode used by Draw.
	SetCompositionMode(mode drawbatch.CompositionMode)

	// DisableBlend makes draws into the target overwrite instead of
	// blend. Used by layers that fully repaint every pixel.
	DisableBlend()

	// Destroy releases the target's surface resources.
	Destroy()
}

// PixmapTarget is the CPU Target used by the software painter. It is
// backed by a plain RGBA image.
type PixmapTarget struct {
	painter     *SoftwarePainter
	img         *image.RGBA
	prev        *image.RGBA
	composition drawbatch.CompositionMode
	blend       bool
}

// NewPixmapTarget creates a CPU render target for p.
func NewPixmapTarget(p *SoftwarePainter, width, height int) *PixmapTarget {
	return &PixmapTarget{
		painter: p,
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		blend:   true,
	}
}

// Bind redirects the painter into the target and clears it.
func (t *PixmapTarget) Bind() {
	clear(t.img.Pix)
	t.prev = t.painter.bound
	t.painter.bound = t.img
	t.painter.blend = t.blend
}

// Release restores the painter's previous destination.
func (t *PixmapTarget) Release() {
	t.painter.bound = t.prev
	t.painter.blend = true
	t.prev = nil
}

// Draw scale-blits the target region src into dest on the painter's
// current destination.
func (t *PixmapTarget) Draw(dest, src drawbatch.Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	dst := t.painter.bound
	dr := image.Rect(dest.X, dest.Y, dest.Right(), dest.Bottom())
	sr := image.Rect(src.X, src.Y, src.Right(), src.Bottom())
	switch t.composition {
	case drawbatch.CompositionLight, drawbatch.CompositionAdd,
		drawbatch.CompositionMultiply, drawbatch.CompositionDestBlending:
		// Non-trivial blend modes go through the triangle rasterizer so
		// a single blending path serves both targets and textures.
		t.painter.drawScaled(t.img, dr, sr, t.composition)
	case drawbatch.CompositionReplace:
		xdraw.NearestNeighbor.Scale(dst, dr, t.img, sr, xdraw.Src, nil)
	default:
		xdraw.NearestNeighbor.Scale(dst, dr, t.img, sr, xdraw.Over, nil)
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Bounds().Dy() }

// Format returns the surface format. CPU targets are always
// byte-order RGBA.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// SetCompositionMode sets the blend mode used by Draw.
func (t *PixmapTarget) SetCompositionMode(mode drawbatch.CompositionMode) {
	t.composition = mode
}

// DisableBlend makes draws into the target overwrite destination
// pixels.
func (t *PixmapTarget) DisableBlend() { t.blend = false }

// Destroy releases the target. CPU targets hold no external
// resources; the backing image is garbage collected.
func (t *PixmapTarget) Destroy() {}

// Image exposes the backing pixels for tests and readback.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

var _ Target = (*PixmapTarget)(nil)

// TargetRegistry tracks the targets created through a painter so they
// can be destroyed together when the owner shuts down.
type TargetRegistry struct {
	mu      sync.Mutex
	painter Painter
	targets []Target
}

// NewTargetRegistry creates a registry issuing targets from p.
func NewTargetRegistry(p Painter) *TargetRegistry {
	return &TargetRegistry{painter: p}
}

// NewTarget creates and tracks a target.
func (r *TargetRegistry) NewTarget(width, height int) (Target, error) {
	t, err := r.painter.NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.targets = append(r.targets, t)
	r.mu.Unlock()
	return t, nil
}

// Close destroys every tracked target.
func (r *TargetRegistry) Close() {
	r.mu.Lock()
	targets := r.targets
	r.targets = nil
	r.mu.Unlock()
	for _, t := range targets {
		t.Destroy()
	}
}
