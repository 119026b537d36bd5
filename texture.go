package drawbatch

import (
	"image"
	"sync/atomic"
)

// Texture is a shared-ownership handle to a texture resource.
//
// Textures are created and uploaded by the graphics-resource layer and
// shared across many render states simultaneously; the batching core
// never touches texel contents, only identity and capability queries.
//
// Superimposable is an externally supplied capability predicate: it
// marks textures whose pixels may be discarded when a later opaque draw
// fully covers the same destination. The batching core never infers it.
type Texture interface {
	// ID returns the stable identity of the texture resource.
	ID() uint64

	// HashID returns the identity folded into framed-pool content
	// hashes. For most textures this equals ID; animated textures whose
	// backing image changes every frame return a per-frame value so the
	// change detector sees them as modified.
	HashID() uint64

	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// Opaque reports whether every texel has full alpha.
	Opaque() bool

	// Superimposable reports whether a draw of this texture may be
	// dropped when fully covered by a later opaque draw.
	Superimposable() bool
}

// textureIDs issues stable texture identities.
var textureIDs atomic.Uint64

// StaticTexture is a plain Texture implementation for still images.
// It optionally carries CPU pixel data for software painters.
type StaticTexture struct {
	id             uint64
	width, height  int
	opaque         bool
	superimposable bool
	img            *image.RGBA
}

// NewStaticTexture creates a texture handle with the given dimensions.
func NewStaticTexture(width, height int) *StaticTexture {
	return &StaticTexture{
		id:     textureIDs.Add(1),
		width:  width,
		height: height,
	}
}

// NewStaticTextureFromImage creates a texture handle backed by CPU
// pixel data. The image is referenced, not copied.
func NewStaticTextureFromImage(img *image.RGBA) *StaticTexture {
	b := img.Bounds()
	t := NewStaticTexture(b.Dx(), b.Dy())
	t.img = img
	return t
}

// ID returns the stable texture identity.
func (t *StaticTexture) ID() uint64 { return t.id }

// HashID returns the identity used for content hashing.
func (t *StaticTexture) HashID() uint64 { return t.id }

// Size returns the texture dimensions in pixels.
func (t *StaticTexture) Size() (int, int) { return t.width, t.height }

// Opaque reports whether the texture was marked fully opaque.
func (t *StaticTexture) Opaque() bool { return t.opaque }

// Superimposable reports whether the texture was marked superimposable.
func (t *StaticTexture) Superimposable() bool { return t.superimposable }

// SetOpaque marks the texture as fully opaque.
func (t *StaticTexture) SetOpaque(opaque bool) { t.opaque = opaque }

// SetSuperimposable marks the texture as superimposable.
// The defining condition is owned by the graphics-resource layer.
func (t *StaticTexture) SetSuperimposable(s bool) { t.superimposable = s }

// Image returns the CPU pixel data, or nil for GPU-only textures.
func (t *StaticTexture) Image() *image.RGBA { return t.img }

var _ Texture = (*StaticTexture)(nil)

// SameTexture reports whether two texture handles refer to the same
// resource. Nil handles compare equal only to nil.
func SameTexture(a, b Texture) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
