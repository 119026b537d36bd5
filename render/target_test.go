// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/drawbatch"
)

func TestPixmapTargetBindRedirectsDraws(t *testing.T) {
	p := NewSoftwarePainter(8, 8)
	target := NewPixmapTarget(p, 8, 8)

	st := drawbatch.DefaultState()
	st.Color = drawbatch.RGB(1, 0, 0)
	p.ExecuteState(st)

	target.Bind()
	fillRect(p, drawbatch.NewRect(0, 0, 8, 8))
	target.Release()

	if got := target.Image().RGBAAt(2, 2); got.R != 255 {
		t.Errorf("target pixel = %v, want red", got)
	}
	if got := p.Screen().RGBAAt(2, 2); got.A != 0 {
		t.Errorf("screen pixel = %v, want untouched while target bound", got)
	}
}

func TestPixmapTargetBindClears(t *testing.T) {
	p := NewSoftwarePainter(8, 8)
	target := NewPixmapTarget(p, 8, 8)

	target.Bind()
	p.Clear(drawbatch.RGB(0, 1, 0))
	target.Release()

	target.Bind()
	target.Release()

	if got := target.Image().RGBAAt(1, 1); got.G != 0 || got.A != 0 {
		t.Errorf("target pixel after rebind = %v, want cleared", got)
	}
}

func TestPixmapTargetDrawComposites(t *testing.T) {
	p := NewSoftwarePainter(8, 8)
	target := NewPixmapTarget(p, 8, 8)

	st := drawbatch.DefaultState()
	st.Color = drawbatch.RGB(0, 0, 1)
	p.ExecuteState(st)
	target.Bind()
	fillRect(p, drawbatch.NewRect(0, 0, 8, 8))
	target.Release()

	target.Draw(drawbatch.RectFromSize(8, 8), drawbatch.RectFromSize(8, 8))

	if got := p.Screen().RGBAAt(4, 4); got.B != 255 {
		t.Errorf("screen pixel = %v, want composited blue", got)
	}
}

func TestPixmapTargetDisableBlendOverwrites(t *testing.T) {
	p := NewSoftwarePainter(8, 8)
	target := NewPixmapTarget(p, 8, 8)
	target.DisableBlend()

	st := drawbatch.DefaultState()
	st.Color = drawbatch.RGBA{R: 1, G: 0, B: 0, A: 0.5}
	p.ExecuteState(st)

	target.Bind()
	fillRect(p, drawbatch.NewRect(0, 0, 8, 8))
	target.Release()

	// Unblended draws write the source value straight through.
	if got := target.Image().RGBAAt(2, 2); got.A != 127 {
		t.Errorf("target pixel A = %d, want 127 (no blending)", got.A)
	}
}

func TestTargetRegistryCloseDestroysAll(t *testing.T) {
	p := NewSoftwarePainter(8, 8)
	reg := NewTargetRegistry(p)

	if _, err := reg.NewTarget(4, 4); err != nil {
		t.Fatalf("NewTarget: %v", err)
	}
	if _, err := reg.NewTarget(4, 4); err != nil {
		t.Fatalf("NewTarget: %v", err)
	}
	reg.Close()
	// Close on an empty registry is a no-op.
	reg.Close()
}

func TestRegistryProvidesSoftwareBackend(t *testing.T) {
	found := false
	for _, name := range Backends() {
		if name == "software" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Backends() = %v, want to contain software", Backends())
	}

	p, err := NewPainterByName("software", 8, 8)
	if err != nil {
		t.Fatalf("NewPainterByName: %v", err)
	}
	if _, ok := p.(*SoftwarePainter); !ok {
		t.Errorf("backend returned %T, want *SoftwarePainter", p)
	}
}

func TestNewPainterFallsBackOnFactoryError(t *testing.T) {
	Register("failing", 200, func(int, int) (Painter, error) {
		return nil, ErrNoPainter
	}, nil)
	defer func() {
		registryMu.Lock()
		delete(registry, "failing")
		registryMu.Unlock()
	}()

	p, err := NewPainter(8, 8)
	if err != nil {
		t.Fatalf("NewPainter: %v", err)
	}
	if _, ok := p.(*SoftwarePainter); !ok {
		t.Errorf("fallback returned %T, want *SoftwarePainter", p)
	}
}
