package drawbatch

// Rect is an axis-aligned rectangle in integer pixel space, defined by
// its top-left corner and size. A Rect with non-positive width or
// height is empty.
type Rect struct {
	X, Y, W, H int
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(w, h int) Rect {
	return Rect{W: w, H: h}
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// IsValid reports whether the rectangle has positive size.
func (r Rect) IsValid() bool { return !r.IsEmpty() }

// Right returns the exclusive right edge coordinate.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge coordinate.
func (r Rect) Bottom() int { return r.Y + r.H }

// Pos returns the top-left corner.
func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the width and height.
func (r Rect) Size() (w, h int) { return r.W, r.H }

// Contains reports whether o lies entirely inside r.
// An empty o is never contained.
func (r Rect) Contains(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersect returns the overlap of two rectangles, or the zero Rect
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}
