package drawbatch

import "testing"

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name  string
		r     Rect
		empty bool
	}{
		{"zero", Rect{}, true},
		{"negative width", NewRect(0, 0, -1, 10), true},
		{"zero height", NewRect(5, 5, 10, 0), true},
		{"valid", NewRect(5, 5, 10, 10), false},
		{"unit", NewRect(-3, -3, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
			if got := tt.r.IsValid(); got == tt.empty {
				t.Errorf("IsValid() = %v, want %v", got, !tt.empty)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Right() != 40 {
		t.Errorf("Right() = %d, want 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, want 60", r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", NewRect(10, 10, 20, 20), true},
		{"equal", outer, true},
		{"touching right edge", NewRect(80, 0, 20, 20), true},
		{"over right edge", NewRect(90, 0, 20, 20), false},
		{"outside", NewRect(200, 200, 10, 10), false},
		{"empty", Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.o); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(20, 20, 10, 10), Rect{}},
		{"touching", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), Rect{}},
		{"contained", NewRect(0, 0, 100, 100), NewRect(10, 10, 5, 5), NewRect(10, 10, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	got := NewRect(1, 2, 3, 4).Translate(10, -2)
	want := NewRect(11, 0, 3, 4)
	if got != want {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}
