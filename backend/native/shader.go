// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

// quadUniformSize is the byte size of the quad uniform buffer.
// Layout: viewport (vec2<f32>) + tex_size (vec2<f32>) +
// color (vec4<f32>) + clip (vec4<f32>) = 48 bytes.
const quadUniformSize = 48

// quadVertexStride is the byte stride per vertex:
// position (vec2<f32>) + tex_coord (vec2<f32>) = 16 bytes.
const quadVertexStride = 16

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("native: compile shader: %w", err)
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createQuadShader compiles the quad shader and creates the hal module.
func createQuadShader(device hal.Device) (hal.ShaderModule, error) {
	spirv, err := compileShaderToSPIRV(quadShaderSource)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "drawbatch_quad_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader module: %w", err)
	}
	return module, nil
}
