// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawbatch"
)

// pipelineKey identifies one render pipeline variant. Pipelines are
// created lazily and cached for the painter's lifetime.
type pipelineKey struct {
	topology   gputypes.PrimitiveTopology
	comp       drawbatch.CompositionMode
	blend      bool
	alphaWrite bool
}

// createBindGroupLayout creates the single bind group layout shared by
// every pipeline variant: uniforms, quad texture, sampler.
func createBindGroupLayout(device hal.Device) (hal.BindGroupLayout, error) {
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "drawbatch_quad_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group layout: %w", err)
	}
	return layout, nil
}

// blendState maps a composition mode to the wgpu blend equations.
// Returns nil for Replace, which overwrites without blending.
func blendState(comp drawbatch.CompositionMode) *gputypes.BlendState {
	var b gputypes.BlendState
	switch comp {
	case drawbatch.CompositionReplace:
		return nil
	case drawbatch.CompositionMultiply:
		b.Color = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorDst,
			DstFactor: gputypes.BlendFactorZero,
		}
		b.Alpha = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorZero,
			DstFactor: gputypes.BlendFactorOne,
		}
	case drawbatch.CompositionAdd, drawbatch.CompositionLight:
		b.Color = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOne,
		}
		b.Alpha = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
		}
	case drawbatch.CompositionDestBlending:
		b.Color = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorOneMinusDstAlpha,
			DstFactor: gputypes.BlendFactorDstAlpha,
		}
		b.Alpha = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorZero,
			DstFactor: gputypes.BlendFactorOne,
		}
	default:
		b.Color = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		}
		b.Alpha = gputypes.BlendComponent{
			Operation: gputypes.BlendOperationAdd,
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		}
	}
	return &b
}

// pipeline returns the cached render pipeline for key, creating it on
// first use.
func (p *Painter) pipeline(key pipelineKey) (hal.RenderPipeline, error) {
	if pl, ok := p.pipelines[key]; ok {
		return pl, nil
	}

	var blend *gputypes.BlendState
	if key.blend {
		blend = blendState(key.comp)
	}
	writeMask := gputypes.ColorWriteMaskAll
	if !key.alphaWrite {
		writeMask = gputypes.ColorWriteMaskRed |
			gputypes.ColorWriteMaskGreen |
			gputypes.ColorWriteMaskBlue
	}

	pl, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("drawbatch_quad_%s_%d", key.comp, key.topology),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: quadVertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					Blend:     blend,
					WriteMask: writeMask,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: key.topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create pipeline %v: %w", key, err)
	}
	p.pipelines[key] = pl
	return pl, nil
}
