// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawbatch"
	"github.com/gogpu/drawbatch/render"
)

// gpuWaitTimeout bounds every fence wait after a submission.
const gpuWaitTimeout = 5 * time.Second

// imageProvider is implemented by textures carrying CPU pixel data
// that the painter can upload.
type imageProvider interface {
	Image() *image.RGBA
}

// boundTexture is an uploaded texture with its per-painter bind view.
type boundTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
}

// Painter is the hal-backed render.Painter. It renders into offscreen
// RGBA8 textures, one render pass submission per batch.
//
// Not safe for concurrent use; all calls must come from the rendering
// goroutine, matching the engine's contract.
type Painter struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	pipelines  map[pipelineKey]hal.RenderPipeline

	screen *Target
	bound  *Target

	state drawbatch.State
	saved []drawbatch.State

	// white is the 1x1 fallback bound for untextured draws so a single
	// pipeline layout covers every batch.
	white    *boundTexture
	active   *boundTexture
	textures map[uint64]*boundTexture
}

// NewPainter creates a painter with its own standalone Vulkan device.
func NewPainter(width, height int) (*Painter, error) {
	device, queue, err := openStandaloneDevice()
	if err != nil {
		return nil, err
	}
	return newPainter(device, queue, width, height)
}

// NewPainterWithDevice creates a painter on a host-provided device.
// The handle must expose the underlying hal device and queue.
func NewPainterWithDevice(handle render.DeviceHandle, width, height int) (*Painter, error) {
	device, queue, err := deviceFromHandle(handle)
	if err != nil {
		return nil, err
	}
	return newPainter(device, queue, width, height)
}

func newPainter(device hal.Device, queue hal.Queue, width, height int) (*Painter, error) {
	p := &Painter{
		device:    device,
		queue:     queue,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
		textures:  make(map[uint64]*boundTexture),
		state:     drawbatch.DefaultState(),
	}

	shader, err := createQuadShader(device)
	if err != nil {
		return nil, err
	}
	p.shader = shader

	bindLayout, err := createBindGroupLayout(device)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "drawbatch_quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("native: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "drawbatch_quad_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("native: create sampler: %w", err)
	}
	p.sampler = sampler

	white, err := p.uploadPixels(1, 1, []byte{0xff, 0xff, 0xff, 0xff}, "drawbatch_white")
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.white = white
	p.active = white

	screen, err := p.newTarget(width, height, "drawbatch_screen")
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.screen = screen
	p.bound = screen

	return p, nil
}

var _ render.Painter = (*Painter)(nil)

// Screen returns the painter's final output target.
func (p *Painter) Screen() *Target { return p.screen }

// ExecuteState makes st the active render state.
func (p *Painter) ExecuteState(st drawbatch.State) {
	p.state = st
	p.SetTexture(st.Texture)
}

// SetTexture binds the texture sampled by subsequent submissions.
// Textures with CPU pixel data are uploaded once and cached by
// identity; anything else falls back to the white texture.
func (p *Painter) SetTexture(t drawbatch.Texture) {
	if t == nil {
		p.active = p.white
		return
	}
	if bt, ok := p.textures[t.ID()]; ok {
		p.active = bt
		return
	}
	ip, ok := t.(imageProvider)
	if !ok || ip.Image() == nil {
		p.active = p.white
		return
	}

	img := ip.Image()
	b := img.Bounds()
	bt, err := p.uploadPixels(b.Dx(), b.Dy(), img.Pix, fmt.Sprintf("drawbatch_tex_%d", t.ID()))
	if err != nil {
		drawbatch.Logger().Warn("native: texture upload failed", "id", t.ID(), "err", err)
		p.active = p.white
		return
	}
	p.textures[t.ID()] = bt
	p.active = bt
}

// DrawCoords issues one render pass draw for the buffer contents under
// the active state.
func (p *Painter) DrawCoords(c *drawbatch.CoordBuffer, mode drawbatch.DrawMode) {
	n := c.VertexCount()
	if n == 0 {
		return
	}
	vertexData := packVertices(c)

	tint := p.state.Color.Scale(p.state.Opacity)
	if err := p.draw(drawParams{
		vertexData:  vertexData,
		vertexCount: uint32(n),
		topology:    mode.Topology(),
		comp:        p.state.Composition,
		blend:       p.bound.blend,
		alphaWrite:  p.state.AlphaWrite,
		clip:        p.state.Clip,
		color:       tint,
		texture:     p.active,
	}); err != nil {
		drawbatch.Logger().Warn("native: draw failed", "err", err)
	}
}

// SaveState pushes the active paint state and resets it to defaults.
func (p *Painter) SaveState() {
	p.saved = append(p.saved, p.state)
	p.state = drawbatch.DefaultState()
	p.active = p.white
}

// RestoreState pops the most recently saved paint state.
func (p *Painter) RestoreState() {
	if len(p.saved) == 0 {
		return
	}
	p.state = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
	p.SetTexture(p.state.Texture)
}

// Clear fills the bound target with c via an empty clearing pass.
func (p *Painter) Clear(c drawbatch.RGBA) {
	if err := p.clearPass(p.bound, c); err != nil {
		drawbatch.Logger().Warn("native: clear failed", "err", err)
	}
}

// NewTarget creates an offscreen hal render target.
func (p *Painter) NewTarget(width, height int) (render.Target, error) {
	t, err := p.newTarget(width, height, "drawbatch_target")
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Destroy releases every GPU resource the painter owns. The device is
// not destroyed; it may be shared with the host.
func (p *Painter) Destroy() {
	for _, pl := range p.pipelines {
		p.device.DestroyRenderPipeline(pl)
	}
	p.pipelines = map[pipelineKey]hal.RenderPipeline{}
	for _, bt := range p.textures {
		p.destroyTexture(bt)
	}
	p.textures = map[uint64]*boundTexture{}
	if p.white != nil {
		p.destroyTexture(p.white)
		p.white = nil
	}
	if p.screen != nil {
		p.screen.Destroy()
		p.screen = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// drawParams collects everything one render pass draw needs.
type drawParams struct {
	vertexData  []byte
	vertexCount uint32
	topology    gputypes.PrimitiveTopology
	comp        drawbatch.CompositionMode
	blend       bool
	alphaWrite  bool
	clip        drawbatch.Rect
	color       drawbatch.RGBA
	texture     *boundTexture
}

// draw uploads transient vertex and uniform buffers, encodes one
// render pass on the bound target, submits, and waits.
func (p *Painter) draw(params drawParams) error {
	pl, err := p.pipeline(pipelineKey{
		topology:   params.topology,
		comp:       params.comp,
		blend:      params.blend,
		alphaWrite: params.alphaWrite,
	})
	if err != nil {
		return err
	}

	vertBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "drawbatch_verts",
		Size:  uint64(len(params.vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create vertex buffer: %w", err)
	}
	defer p.device.DestroyBuffer(vertBuf)
	p.queue.WriteBuffer(vertBuf, 0, params.vertexData)

	uniformData := p.packUniforms(params)
	uniformBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "drawbatch_uniform",
		Size:  quadUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create uniform buffer: %w", err)
	}
	defer p.device.DestroyBuffer(uniformBuf)
	p.queue.WriteBuffer(uniformBuf, 0, uniformData)

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "drawbatch_bind",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: quadUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: params.texture.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(bindGroup)

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "drawbatch_encoder",
	})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("drawbatch_draw"); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "drawbatch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    p.bound.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	rp.SetPipeline(pl)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(params.vertexCount, 1, 0, 0)
	rp.End()

	return p.finish(encoder)
}

// clearPass encodes an empty render pass that clears t to c.
func (p *Painter) clearPass(t *Target, c drawbatch.RGBA) error {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "drawbatch_clear_encoder",
	})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("drawbatch_clear"); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "drawbatch_clear_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A},
		}},
	})
	rp.End()

	return p.finish(encoder)
}

// finish ends encoding, submits, and waits for the fence.
func (p *Painter) finish(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("native: create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	ok, err := p.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return fmt.Errorf("native: wait for GPU: %w", err)
	}
	if !ok {
		return ErrGPUTimeout
	}
	return nil
}

// uploadPixels creates an immutable sampled texture from RGBA pixels.
func (p *Painter) uploadPixels(width, height int, pix []byte, label string) (*boundTexture, error) {
	w, h := uint32(width), uint32(height)
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture: %w", err)
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
		return nil, fmt.Errorf("native: create texture view: %w", err)
	}

	p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	return &boundTexture{tex: tex, view: view, width: width, height: height}, nil
}

func (p *Painter) destroyTexture(bt *boundTexture) {
	if bt.view != nil {
		p.device.DestroyTextureView(bt.view)
	}
	if bt.tex != nil {
		p.device.DestroyTexture(bt.tex)
	}
}

// packUniforms serializes the 48-byte uniform block.
func (p *Painter) packUniforms(params drawParams) []byte {
	buf := make([]byte, quadUniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}

	put(float32(p.bound.width))
	put(float32(p.bound.height))
	put(float32(params.texture.width))
	put(float32(params.texture.height))
	put(float32(params.color.R))
	put(float32(params.color.G))
	put(float32(params.color.B))
	put(float32(params.color.A))
	if params.clip.IsValid() {
		put(float32(params.clip.X))
		put(float32(params.clip.Y))
		put(float32(params.clip.W))
		put(float32(params.clip.H))
	}
	return buf
}

// packVertices interleaves positions and texcoords into the 16-byte
// vertex layout. Untextured buffers get zero texcoords, which sample
// the white fallback texture.
func packVertices(c *drawbatch.CoordBuffer) []byte {
	verts := c.Vertices()
	tex := c.TexCoords()
	n := len(verts) / 2
	data := make([]byte, n*quadVertexStride)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(v))
		off += 4
	}
	for i := 0; i < n; i++ {
		put(verts[2*i])
		put(verts[2*i+1])
		if len(tex) >= 2*i+2 {
			put(tex[2*i])
			put(tex[2*i+1])
		} else {
			put(0)
			put(0)
		}
	}
	return data
}
