// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/drawbatch"
)

func TestBlendStateMapping(t *testing.T) {
	if blendState(drawbatch.CompositionReplace) != nil {
		t.Error("Replace must disable blending")
	}

	tests := []struct {
		comp     drawbatch.CompositionMode
		srcColor gputypes.BlendFactor
		dstColor gputypes.BlendFactor
	}{
		{drawbatch.CompositionNormal, gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
		{drawbatch.CompositionMultiply, gputypes.BlendFactorDst, gputypes.BlendFactorZero},
		{drawbatch.CompositionAdd, gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne},
		{drawbatch.CompositionLight, gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne},
		{drawbatch.CompositionDestBlending, gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorDstAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.comp.String(), func(t *testing.T) {
			b := blendState(tt.comp)
			if b == nil {
				t.Fatal("expected a blend state")
			}
			if b.Color.SrcFactor != tt.srcColor || b.Color.DstFactor != tt.dstColor {
				t.Errorf("color factors = (%v, %v), want (%v, %v)",
					b.Color.SrcFactor, b.Color.DstFactor, tt.srcColor, tt.dstColor)
			}
		})
	}
}

func TestPipelineKeyDistinguishesVariants(t *testing.T) {
	base := pipelineKey{
		topology:   gputypes.PrimitiveTopologyTriangleList,
		comp:       drawbatch.CompositionNormal,
		blend:      true,
		alphaWrite: true,
	}
	variants := []pipelineKey{
		{topology: gputypes.PrimitiveTopologyTriangleStrip, comp: base.comp, blend: true, alphaWrite: true},
		{topology: base.topology, comp: drawbatch.CompositionAdd, blend: true, alphaWrite: true},
		{topology: base.topology, comp: base.comp, blend: false, alphaWrite: true},
		{topology: base.topology, comp: base.comp, blend: true, alphaWrite: false},
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with the base key", i)
		}
	}
}

func TestPackVerticesInterleaves(t *testing.T) {
	var c drawbatch.CoordBuffer
	c.AddQuad(drawbatch.NewRect(0, 0, 10, 20), drawbatch.NewRect(2, 4, 10, 20))

	data := packVertices(&c)
	if len(data) != 4*quadVertexStride {
		t.Fatalf("got %d bytes, want %d", len(data), 4*quadVertexStride)
	}

	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	// First vertex: position (0, 0), texcoord (2, 4).
	if f32(0) != 0 || f32(4) != 0 {
		t.Errorf("first position = (%v, %v), want (0, 0)", f32(0), f32(4))
	}
	if f32(8) != 2 || f32(12) != 4 {
		t.Errorf("first texcoord = (%v, %v), want (2, 4)", f32(8), f32(12))
	}
	// Second vertex: position (0, 20), texcoord (2, 24).
	if f32(16) != 0 || f32(20) != 20 {
		t.Errorf("second position = (%v, %v), want (0, 20)", f32(16), f32(20))
	}
}

func TestPackVerticesUntextured(t *testing.T) {
	var c drawbatch.CoordBuffer
	c.AddRect(drawbatch.NewRect(0, 0, 4, 4))

	data := packVertices(&c)
	if len(data) != 6*quadVertexStride {
		t.Fatalf("got %d bytes, want %d", len(data), 6*quadVertexStride)
	}
	// Untextured geometry gets zero texcoords.
	for i := 0; i < 6; i++ {
		off := i*quadVertexStride + 8
		if binary.LittleEndian.Uint32(data[off:]) != 0 ||
			binary.LittleEndian.Uint32(data[off+4:]) != 0 {
			t.Errorf("vertex %d texcoord not zeroed", i)
		}
	}
}

func TestPackUniformsLayout(t *testing.T) {
	p := &Painter{bound: &Target{width: 640, height: 480}}
	data := p.packUniforms(drawParams{
		color:   drawbatch.RGBA{R: 1, G: 0.5, B: 0, A: 1},
		clip:    drawbatch.NewRect(10, 20, 30, 40),
		texture: &boundTexture{width: 32, height: 64},
	})
	if len(data) != quadUniformSize {
		t.Fatalf("got %d bytes, want %d", len(data), quadUniformSize)
	}

	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	if f32(0) != 640 || f32(4) != 480 {
		t.Errorf("viewport = (%v, %v), want (640, 480)", f32(0), f32(4))
	}
	if f32(8) != 32 || f32(12) != 64 {
		t.Errorf("tex_size = (%v, %v), want (32, 64)", f32(8), f32(12))
	}
	if f32(16) != 1 || f32(20) != 0.5 {
		t.Errorf("color = (%v, %v, ...), want (1, 0.5, ...)", f32(16), f32(20))
	}
	if f32(32) != 10 || f32(36) != 20 || f32(40) != 30 || f32(44) != 40 {
		t.Error("clip rectangle not packed at offset 32")
	}
}

func TestPackUniformsNoClip(t *testing.T) {
	p := &Painter{bound: &Target{width: 8, height: 8}}
	data := p.packUniforms(drawParams{
		color:   drawbatch.White,
		texture: &boundTexture{width: 1, height: 1},
	})
	// An invalid clip leaves the clip words zero, which the shader
	// treats as clipping disabled.
	for off := 32; off < 48; off += 4 {
		if binary.LittleEndian.Uint32(data[off:]) != 0 {
			t.Errorf("clip word at offset %d not zero", off)
		}
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	errs := []error{ErrNoVulkan, ErrNoAdapter, ErrNoHalDevice, ErrGPUTimeout}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && a == b {
				t.Errorf("errors %d and %d are the same value", i, j)
			}
		}
	}
}
