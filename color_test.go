package drawbatch

import "testing"

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#fff", White},
		{"000", RGBA{A: 1}},
		{"#ff0000", RGB(1, 0, 0)},
		{"00ff00", RGB(0, 1, 0)},
		{"#0000ff80", RGBA{B: 1, A: float64(0x80) / 255}},
		{"f00f", RGB(1, 0, 0)},
		{"", Black},
		{"not-a-color", Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScaleClamps(t *testing.T) {
	c := RGB(0.8, 0.5, 0.1).Scale(2)
	if c.R != 1 || c.A != 1 {
		t.Errorf("Scale(2) = %v, want components clamped to 1", c)
	}
	if c.B != 0.2 {
		t.Errorf("Scale(2).B = %v, want 0.2", c.B)
	}
}

func TestModulate(t *testing.T) {
	got := RGB(1, 0.5, 0).Modulate(RGB(0.5, 0.5, 0.5))
	want := RGBA{R: 0.5, G: 0.25, B: 0, A: 1}
	if got != want {
		t.Errorf("Modulate = %v, want %v", got, want)
	}
}
