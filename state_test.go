package drawbatch

import "testing"

func TestStateEqual(t *testing.T) {
	texA := NewStaticTexture(8, 8)
	texB := NewStaticTexture(8, 8)
	shader := NewShader("grayscale")

	base := DefaultState()
	base.Texture = texA

	alter := []struct {
		name string
		mut  func(*State)
	}{
		{"texture", func(s *State) { s.Texture = texB }},
		{"color", func(s *State) { s.Color = RGB(1, 0, 0) }},
		{"opacity", func(s *State) { s.Opacity = 0.5 }},
		{"composition", func(s *State) { s.Composition = CompositionAdd }},
		{"clip", func(s *State) { s.Clip = NewRect(0, 0, 10, 10) }},
		{"shader", func(s *State) { s.Shader = shader }},
		{"alpha write", func(s *State) { s.AlphaWrite = false }},
	}

	if !base.Equal(base) {
		t.Fatal("state must equal itself")
	}
	for _, tt := range alter {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mut(&other)
			if base.Equal(other) {
				t.Errorf("states differing in %s compared equal", tt.name)
			}
		})
	}
}

func TestStateEqualByTextureIdentity(t *testing.T) {
	tex := NewStaticTexture(8, 8)
	a := DefaultState()
	a.Texture = tex
	b := DefaultState()
	b.Texture = tex
	if !a.Equal(b) {
		t.Error("states sharing a texture handle must compare equal")
	}
}

func TestSameTexture(t *testing.T) {
	a := NewStaticTexture(8, 8)
	b := NewStaticTexture(8, 8)
	if !SameTexture(a, a) {
		t.Error("texture must equal itself")
	}
	if SameTexture(a, b) {
		t.Error("distinct textures compared equal")
	}
	if SameTexture(a, nil) || SameTexture(nil, b) {
		t.Error("nil must only equal nil")
	}
	if !SameTexture(nil, nil) {
		t.Error("nil textures must compare equal")
	}
}
