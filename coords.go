package drawbatch

// CoordBuffer accumulates the vertex and texture-coordinate stream for
// one batch submission. It is the single point where draw commands are
// converted to raw vertex data: the frame driver assembles one batch
// into the buffer, submits it, and clears it before the next batch.
//
// Vertices are (x, y) float32 pairs in pixel space. Texture coordinates
// are (u, v) float32 pairs in texel units; normalization against the
// bound texture size is the submitting painter's concern.
type CoordBuffer struct {
	vertices  []float32
	texCoords []float32
}

// Vertices returns the accumulated vertex stream.
func (c *CoordBuffer) Vertices() []float32 { return c.vertices }

// TexCoords returns the accumulated texture-coordinate stream.
// Empty when the buffer holds untextured geometry.
func (c *CoordBuffer) TexCoords() []float32 { return c.texCoords }

// VertexCount returns the number of accumulated vertices.
func (c *CoordBuffer) VertexCount() int { return len(c.vertices) / 2 }

// IsEmpty reports whether the buffer holds no geometry.
func (c *CoordBuffer) IsEmpty() bool { return len(c.vertices) == 0 }

// Clear empties the buffer, retaining capacity. Must be called after
// every submission so geometry cannot leak into the next batch.
func (c *CoordBuffer) Clear() {
	c.vertices = c.vertices[:0]
	c.texCoords = c.texCoords[:0]
}

func (c *CoordBuffer) vertex(x, y int) {
	c.vertices = append(c.vertices, float32(x), float32(y))
}

func (c *CoordBuffer) texCoord(u, v int) {
	c.texCoords = append(c.texCoords, float32(u), float32(v))
}

// AddRect appends a filled rectangle as a two-triangle list.
func (c *CoordBuffer) AddRect(dest Rect) {
	if dest.IsEmpty() {
		return
	}
	r, b := dest.Right(), dest.Bottom()
	c.vertex(dest.X, dest.Y)
	c.vertex(dest.X, b)
	c.vertex(r, dest.Y)
	c.vertex(r, dest.Y)
	c.vertex(dest.X, b)
	c.vertex(r, b)
}

// AddTexturedRect appends a textured rectangle as a two-triangle list,
// sampling src from the bound texture.
func (c *CoordBuffer) AddTexturedRect(dest, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	c.AddRect(dest)
	r, b := src.Right(), src.Bottom()
	c.texCoord(src.X, src.Y)
	c.texCoord(src.X, b)
	c.texCoord(r, src.Y)
	c.texCoord(r, src.Y)
	c.texCoord(src.X, b)
	c.texCoord(r, b)
}

// AddQuad appends a textured rectangle as four strip vertices.
// Cheaper than AddTexturedRect but only valid as the sole quad of a
// triangle-strip submission.
func (c *CoordBuffer) AddQuad(dest, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	r, b := dest.Right(), dest.Bottom()
	c.vertex(dest.X, dest.Y)
	c.vertex(dest.X, b)
	c.vertex(r, dest.Y)
	c.vertex(r, b)
	sr, sb := src.Right(), src.Bottom()
	c.texCoord(src.X, src.Y)
	c.texCoord(src.X, sb)
	c.texCoord(sr, src.Y)
	c.texCoord(sr, sb)
}

// AddUpsideDownRect appends a vertically flipped textured rectangle as
// a two-triangle list. Used when sampling render targets, whose rows
// are stored bottom-up relative to screen space.
func (c *CoordBuffer) AddUpsideDownRect(dest, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	c.AddRect(dest)
	r, b := src.Right(), src.Bottom()
	c.texCoord(src.X, b)
	c.texCoord(src.X, src.Y)
	c.texCoord(r, b)
	c.texCoord(r, b)
	c.texCoord(src.X, src.Y)
	c.texCoord(r, src.Y)
}

// AddUpsideDownQuad appends a vertically flipped textured rectangle as
// four strip vertices.
func (c *CoordBuffer) AddUpsideDownQuad(dest, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	r, b := dest.Right(), dest.Bottom()
	c.vertex(dest.X, dest.Y)
	c.vertex(dest.X, b)
	c.vertex(r, dest.Y)
	c.vertex(r, b)
	sr, sb := src.Right(), src.Bottom()
	c.texCoord(src.X, sb)
	c.texCoord(src.X, src.Y)
	c.texCoord(sr, sb)
	c.texCoord(sr, src.Y)
}

// AddRepeatedRects tiles dest with copies of src, clamping partial
// tiles at the right and bottom edges.
func (c *CoordBuffer) AddRepeatedRects(dest, src Rect) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	for y := dest.Y; y < dest.Bottom(); y += src.H {
		th := min(src.H, dest.Bottom()-y)
		for x := dest.X; x < dest.Right(); x += src.W {
			tw := min(src.W, dest.Right()-x)
			c.AddTexturedRect(
				Rect{X: x, Y: y, W: tw, H: th},
				Rect{X: src.X, Y: src.Y, W: tw, H: th},
			)
		}
	}
}

// AddTriangle appends one filled triangle.
func (c *CoordBuffer) AddTriangle(a, b, p Point) {
	c.vertices = append(c.vertices,
		float32(a.X), float32(a.Y),
		float32(b.X), float32(b.Y),
		float32(p.X), float32(p.Y),
	)
}

// AddBoundingRect appends the four edge strips of a rectangle outline
// with the given inner line width.
func (c *CoordBuffer) AddBoundingRect(dest Rect, innerLineWidth int) {
	if dest.IsEmpty() || innerLineWidth <= 0 {
		return
	}
	lw := min(innerLineWidth, min(dest.W, dest.H)/2)
	if lw <= 0 {
		lw = 1
	}

	// Top and bottom span the full width; left and right fill between.
	c.AddRect(Rect{X: dest.X, Y: dest.Y, W: dest.W, H: lw})
	c.AddRect(Rect{X: dest.X, Y: dest.Bottom() - lw, W: dest.W, H: lw})
	if inner := dest.H - 2*lw; inner > 0 {
		c.AddRect(Rect{X: dest.X, Y: dest.Y + lw, W: lw, H: inner})
		c.AddRect(Rect{X: dest.Right() - lw, Y: dest.Y + lw, W: lw, H: inner})
	}
}
