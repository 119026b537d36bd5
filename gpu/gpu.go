// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu registers the hal-backed painter with the render
// registry. Import it for side effects:
//
//	import _ "github.com/gogpu/drawbatch/gpu"
//
// When no Vulkan backend is present the registration is skipped and
// painter selection falls through to the software backend.
package gpu

import (
	"github.com/gogpu/drawbatch/backend/native"
	"github.com/gogpu/drawbatch/render"
)

func init() {
	render.Register("native", 100, func(width, height int) (render.Painter, error) {
		return native.NewPainter(width, height)
	}, native.Available)
}
