// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/drawbatch"
)

func init() {
	Register("software", 10, func(width, height int) (Painter, error) {
		return NewSoftwarePainter(width, height), nil
	}, nil)
}

// imageProvider is implemented by textures carrying CPU pixel data.
type imageProvider interface {
	Image() *image.RGBA
}

type savedPaint struct {
	state   drawbatch.State
	texture drawbatch.Texture
	texImg  *image.RGBA
}

// SoftwarePainter is a pure-CPU painter. It rasterizes triangle
// geometry into an RGBA image with nearest-texel sampling and serves
// as the reference for GPU backends and as the test double for the
// frame driver.
type SoftwarePainter struct {
	screen *image.RGBA
	bound  *image.RGBA
	blend  bool

	state   drawbatch.State
	texture drawbatch.Texture
	texImg  *image.RGBA

	saved []savedPaint
}

// NewSoftwarePainter creates a CPU painter with the given output size.
func NewSoftwarePainter(width, height int) *SoftwarePainter {
	screen := image.NewRGBA(image.Rect(0, 0, width, height))
	return &SoftwarePainter{
		screen: screen,
		bound:  screen,
		blend:  true,
		state:  drawbatch.DefaultState(),
	}
}

var _ Painter = (*SoftwarePainter)(nil)

// Screen returns the final output image.
func (p *SoftwarePainter) Screen() *image.RGBA { return p.screen }

// ExecuteState makes st the active render state.
func (p *SoftwarePainter) ExecuteState(st drawbatch.State) {
	p.state = st
	p.SetTexture(st.Texture)
}

// SetTexture binds the texture sampled by subsequent submissions.
// Textures without CPU pixel data are drawn as untextured fills.
func (p *SoftwarePainter) SetTexture(t drawbatch.Texture) {
	p.texture = t
	p.texImg = nil
	if ip, ok := t.(imageProvider); ok && t != nil {
		p.texImg = ip.Image()
	}
}

// DrawCoords rasterizes the buffer contents under the active state.
func (p *SoftwarePainter) DrawCoords(c *drawbatch.CoordBuffer, mode drawbatch.DrawMode) {
	verts := c.Vertices()
	tex := c.TexCoords()
	textured := p.texImg != nil && len(tex) >= len(verts)

	emit := func(i0, i1, i2 int) {
		var tri triangle
		tri.x[0], tri.y[0] = float64(verts[2*i0]), float64(verts[2*i0+1])
		tri.x[1], tri.y[1] = float64(verts[2*i1]), float64(verts[2*i1+1])
		tri.x[2], tri.y[2] = float64(verts[2*i2]), float64(verts[2*i2+1])
		if textured {
			tri.u[0], tri.v[0] = float64(tex[2*i0]), float64(tex[2*i0+1])
			tri.u[1], tri.v[1] = float64(tex[2*i1]), float64(tex[2*i1+1])
			tri.u[2], tri.v[2] = float64(tex[2*i2]), float64(tex[2*i2+1])
			tri.textured = true
		}
		p.rasterize(tri)
	}

	n := len(verts) / 2
	switch mode {
	case drawbatch.DrawModeTriangleStrip:
		for i := 0; i+2 < n; i++ {
			emit(i, i+1, i+2)
		}
	case drawbatch.DrawModeTriangles:
		for i := 0; i+2 < n; i += 3 {
			emit(i, i+1, i+2)
		}
	}
}

// SaveState pushes the active paint state and resets it to defaults.
func (p *SoftwarePainter) SaveState() {
	p.saved = append(p.saved, savedPaint{
		state:   p.state,
		texture: p.texture,
		texImg:  p.texImg,
	})
	p.state = drawbatch.DefaultState()
	p.texture = nil
	p.texImg = nil
}

// RestoreState pops the most recently saved paint state.
func (p *SoftwarePainter) RestoreState() {
	if len(p.saved) == 0 {
		return
	}
	s := p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
	p.state = s.state
	p.texture = s.texture
	p.texImg = s.texImg
}

// Clear fills the bound destination with c.
func (p *SoftwarePainter) Clear(c drawbatch.RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))
	pix := p.bound.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
}

// NewTarget creates a CPU render target.
func (p *SoftwarePainter) NewTarget(width, height int) (Target, error) {
	return NewPixmapTarget(p, width, height), nil
}

type triangle struct {
	x, y     [3]float64
	u, v     [3]float64
	textured bool
}

// rasterize fills one triangle into the bound image, applying the
// active clip, tint, opacity, and composition mode.
func (p *SoftwarePainter) rasterize(t triangle) {
	area := (t.x[1]-t.x[0])*(t.y[2]-t.y[0]) - (t.y[1]-t.y[0])*(t.x[2]-t.x[0])
	if area == 0 {
		return
	}

	b := p.bound.Bounds()
	minX := max(b.Min.X, int(min(t.x[0], min(t.x[1], t.x[2]))))
	minY := max(b.Min.Y, int(min(t.y[0], min(t.y[1], t.y[2]))))
	maxX := min(b.Max.X, int(max(t.x[0], max(t.x[1], t.x[2]))+1))
	maxY := min(b.Max.Y, int(max(t.y[0], max(t.y[1], t.y[2]))+1))
	if clip := p.state.Clip; clip.IsValid() {
		minX = max(minX, clip.X)
		minY = max(minY, clip.Y)
		maxX = min(maxX, clip.Right())
		maxY = min(maxY, clip.Bottom())
	}

	tint := p.state.Color.Scale(p.state.Opacity)
	texW, texH := 0, 0
	if t.textured {
		tb := p.texImg.Bounds()
		texW, texH = tb.Dx(), tb.Dy()
	}

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			w0 := ((t.x[1]-cx)*(t.y[2]-cy) - (t.y[1]-cy)*(t.x[2]-cx)) / area
			w1 := ((t.x[2]-cx)*(t.y[0]-cy) - (t.y[2]-cy)*(t.x[0]-cx)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			src := tint
			if t.textured {
				u := int(w0*t.u[0] + w1*t.u[1] + w2*t.u[2])
				v := int(w0*t.v[0] + w1*t.v[1] + w2*t.v[2])
				u = min(max(u, 0), texW-1)
				v = min(max(v, 0), texH-1)
				texel := p.texImg.RGBAAt(u, v)
				src = drawbatch.RGBA{
					R: float64(texel.R) / 255,
					G: float64(texel.G) / 255,
					B: float64(texel.B) / 255,
					A: float64(texel.A) / 255,
				}.Modulate(tint)
			}
			p.blendPixel(px, py, src)
		}
	}
}

// drawScaled nearest-blits the rectangle sr of src into dr on the
// bound image under the given composition mode. Used by PixmapTarget
// for blend modes the plain scaler cannot express.
func (p *SoftwarePainter) drawScaled(src *image.RGBA, dr, sr image.Rectangle, mode drawbatch.CompositionMode) {
	if dr.Empty() || sr.Empty() {
		return
	}
	savedMode := p.state.Composition
	p.state.Composition = mode
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		sy := sr.Min.Y + (py-dr.Min.Y)*sr.Dy()/dr.Dy()
		for px := dr.Min.X; px < dr.Max.X; px++ {
			sx := sr.Min.X + (px-dr.Min.X)*sr.Dx()/dr.Dx()
			texel := src.RGBAAt(sx, sy)
			p.blendPixel(px, py, drawbatch.RGBA{
				R: float64(texel.R) / 255,
				G: float64(texel.G) / 255,
				B: float64(texel.B) / 255,
				A: float64(texel.A) / 255,
			})
		}
	}
	p.state.Composition = savedMode
}

// blendPixel combines src with the destination pixel at (x, y) under
// the active composition mode.
func (p *SoftwarePainter) blendPixel(x, y int, src drawbatch.RGBA) {
	if !p.bound.Rect.Overlaps(image.Rect(x, y, x+1, y+1)) {
		return
	}
	d := p.bound.RGBAAt(x, y)
	dst := drawbatch.RGBA{
		R: float64(d.R) / 255,
		G: float64(d.G) / 255,
		B: float64(d.B) / 255,
		A: float64(d.A) / 255,
	}

	var out drawbatch.RGBA
	mode := p.state.Composition
	if !p.blend {
		mode = drawbatch.CompositionReplace
	}
	switch mode {
	case drawbatch.CompositionReplace:
		out = src
	case drawbatch.CompositionMultiply:
		out = dst.Modulate(src)
		out.A = dst.A
	case drawbatch.CompositionAdd, drawbatch.CompositionLight:
		out = drawbatch.RGBA{
			R: clamp01(dst.R + src.R*src.A),
			G: clamp01(dst.G + src.G*src.A),
			B: clamp01(dst.B + src.B*src.A),
			A: clamp01(dst.A + src.A),
		}
	case drawbatch.CompositionDestBlending:
		out = drawbatch.RGBA{
			R: src.R*(1-dst.A) + dst.R*dst.A,
			G: src.G*(1-dst.A) + dst.G*dst.A,
			B: src.B*(1-dst.A) + dst.B*dst.A,
			A: dst.A,
		}
	default:
		out = drawbatch.RGBA{
			R: src.R*src.A + dst.R*(1-src.A),
			G: src.G*src.A + dst.G*(1-src.A),
			B: src.B*src.A + dst.B*(1-src.A),
			A: src.A + dst.A*(1-src.A),
		}
	}

	if !p.state.AlphaWrite {
		out.A = dst.A
	}
	p.bound.SetRGBA(x, y, rgbaToColor(out))
}

func rgbaToColor(c drawbatch.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
