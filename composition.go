package drawbatch

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// CompositionMode selects how a draw blends with the destination.
type CompositionMode uint8

// Composition modes.
const (
	// CompositionNormal is standard source-over alpha blending.
	CompositionNormal CompositionMode = iota

	// CompositionMultiply multiplies source and destination.
	CompositionMultiply

	// CompositionAdd sums source and destination.
	CompositionAdd

	// CompositionReplace overwrites the destination.
	CompositionReplace

	// CompositionDestBlending blends using destination alpha.
	CompositionDestBlending

	// CompositionLight is the additive mode used by light layers.
	CompositionLight
)

// String returns the string representation of the composition mode.
func (m CompositionMode) String() string {
	switch m {
	case CompositionNormal:
		return "Normal"
	case CompositionMultiply:
		return "Multiply"
	case CompositionAdd:
		return "Add"
	case CompositionReplace:
		return "Replace"
	case CompositionDestBlending:
		return "DestBlending"
	case CompositionLight:
		return "Light"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// DrawMode is the vertex topology a batch is submitted with.
type DrawMode uint8

// Draw modes.
const (
	// DrawModeNone marks batches with no geometry (action batches).
	DrawModeNone DrawMode = iota

	// DrawModeTriangles is a triangle list. Merged batches always use
	// this mode since independent quads cannot share a strip.
	DrawModeTriangles

	// DrawModeTriangleStrip is a triangle strip, used for single quads.
	DrawModeTriangleStrip
)

// String returns the string representation of the draw mode.
func (m DrawMode) String() string {
	switch m {
	case DrawModeNone:
		return "None"
	case DrawModeTriangles:
		return "Triangles"
	case DrawModeTriangleStrip:
		return "TriangleStrip"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// Topology maps the draw mode to the wgpu primitive topology used by
// GPU submission backends.
func (m DrawMode) Topology() gputypes.PrimitiveTopology {
	if m == DrawModeTriangleStrip {
		return gputypes.PrimitiveTopologyTriangleStrip
	}
	return gputypes.PrimitiveTopologyTriangleList
}
