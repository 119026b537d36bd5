// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// readbackRowAlign is the wgpu requirement for BytesPerRow in
// texture-to-buffer copies.
const readbackRowAlign = 256

// ReadImage copies the screen target's pixels back to the CPU.
func (p *Painter) ReadImage() (*image.RGBA, error) {
	return p.readTarget(p.screen)
}

// readTarget copies a target's pixels into an RGBA image. The copy
// goes through a staging buffer with rows padded to the wgpu
// alignment.
func (p *Painter) readTarget(t *Target) (*image.RGBA, error) {
	w, h := t.width, t.height
	rowBytes := w * 4
	paddedRow := (rowBytes + readbackRowAlign - 1) / readbackRowAlign * readbackRowAlign
	bufSize := uint64(paddedRow * h)

	staging, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "drawbatch_readback",
		Size:  bufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create readback buffer: %w", err)
	}
	defer p.device.DestroyBuffer(staging)

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "drawbatch_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("drawbatch_readback"); err != nil {
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}

	encoder.CopyTextureToBuffer(t.tex, staging, []hal.BufferTextureCopy{
		{
			BufferLayout: hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(paddedRow),
				RowsPerImage: uint32(h),
			},
			TextureBase: hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
			Size: hal.Extent3D{
				Width:              uint32(w),
				Height:             uint32(h),
				DepthOrArrayLayers: 1,
			},
		},
	})

	if err := p.finish(encoder); err != nil {
		return nil, err
	}

	padded := make([]byte, bufSize)
	if err := p.queue.ReadBuffer(staging, 0, padded); err != nil {
		return nil, fmt.Errorf("native: read buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], padded[y*paddedRow:])
	}
	return img, nil
}
