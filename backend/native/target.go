// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawbatch"
	"github.com/gogpu/drawbatch/render"
)

// Target is an offscreen hal render target. It doubles as a sampled
// texture when composited onto another target.
type Target struct {
	painter *Painter
	tex     hal.Texture
	view    hal.TextureView
	width   int
	height  int

	composition drawbatch.CompositionMode
	blend       bool

	prev *Target
}

var _ render.Target = (*Target)(nil)

func (p *Painter) newTarget(width, height int, label string) (*Target, error) {
	w, h := uint32(width), uint32(height)
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create target texture: %w", err)
	}

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("native: create target view: %w", err)
	}

	return &Target{
		painter: p,
		tex:     tex,
		view:    view,
		width:   width,
		height:  height,
		blend:   true,
	}, nil
}

// Bind clears the target and redirects subsequent painter submissions
// into it until Release.
func (t *Target) Bind() {
	t.prev = t.painter.bound
	t.painter.bound = t
	if err := t.painter.clearPass(t, drawbatch.Transparent); err != nil {
		drawbatch.Logger().Warn("native: target clear failed", "err", err)
	}
}

// Release restores the painter's previously bound target.
func (t *Target) Release() {
	if t.prev != nil {
		t.painter.bound = t.prev
		t.prev = nil
	}
}

// Draw composites the src region of the target onto dest of the
// painter's bound target using the target's composition mode.
func (t *Target) Draw(dest, src drawbatch.Rect) {
	if dest.IsEmpty() {
		dest = drawbatch.RectFromSize(t.painter.bound.width, t.painter.bound.height)
	}
	if src.IsEmpty() {
		src = drawbatch.RectFromSize(t.width, t.height)
	}

	var coords drawbatch.CoordBuffer
	coords.AddQuad(dest, src)
	vertexData := packVertices(&coords)

	if err := t.painter.draw(drawParams{
		vertexData:  vertexData,
		vertexCount: uint32(coords.VertexCount()),
		topology:    gputypes.PrimitiveTopologyTriangleStrip,
		comp:        t.composition,
		blend:       true,
		alphaWrite:  true,
		color:       drawbatch.White,
		texture:     &boundTexture{tex: t.tex, view: t.view, width: t.width, height: t.height},
	}); err != nil {
		drawbatch.Logger().Warn("native: target composite failed", "err", err)
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Format returns the target's texture format.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// SetCompositionMode sets the mode used when the target is composited
// onto another target.
func (t *Target) SetCompositionMode(mode drawbatch.CompositionMode) {
	t.composition = mode
}

// DisableBlend turns off blending for submissions rendered into the
// target.
func (t *Target) DisableBlend() { t.blend = false }

// Destroy releases the target's GPU resources.
func (t *Target) Destroy() {
	if t.view != nil {
		t.painter.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.painter.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
