package drawbatch

// State is the render state associated with one draw command: the full
// GPU configuration a batch is submitted under. It is a value type;
// two states are equal iff every field compares equal, which is the
// merge criterion for batching.
//
// The texture handle is shared, not owned: many states may reference
// the same Texture simultaneously.
type State struct {
	Texture     Texture
	Color       RGBA
	Opacity     float64
	Composition CompositionMode
	Clip        Rect
	Shader      *Shader
	AlphaWrite  bool
}

// DefaultState returns the state draws inherit when a pool has no
// overrides: white color, full opacity, normal blending, no clip.
func DefaultState() State {
	return State{
		Color:      White,
		Opacity:    1,
		AlphaWrite: true,
	}
}

// Equal reports whether every field of both states compares equal.
// Textures compare by handle identity, shaders by pointer.
func (s State) Equal(o State) bool {
	return SameTexture(s.Texture, o.Texture) &&
		s.Color == o.Color &&
		s.Opacity == o.Opacity &&
		s.Composition == o.Composition &&
		s.Clip == o.Clip &&
		s.Shader == o.Shader &&
		s.AlphaWrite == o.AlphaWrite
}
