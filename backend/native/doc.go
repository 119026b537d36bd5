// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the GPU painter on gogpu/wgpu/hal.
//
// Each batch submission becomes one render pass draw: vertices are
// uploaded to a transient buffer, the render state maps to a cached
// pipeline keyed by topology and blend mode, and textures are uploaded
// once and bound per draw. The painter renders into offscreen hal
// textures; framed-pool targets are hal textures composited back as
// textured quads.
//
// The painter can share a host application's device through
// render.DeviceHandle, or open a standalone Vulkan device when used
// headless. Import drawbatch/gpu to register this backend.
package native
