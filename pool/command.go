// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"fmt"

	"github.com/gogpu/drawbatch"
)

// CommandKind selects how a command's geometry fields are interpreted.
type CommandKind uint8

// Command kinds.
const (
	// CommandFilledRect fills Dest with the state color.
	CommandFilledRect CommandKind = iota

	// CommandRepeatedFilledRect is a filled rect routed through the
	// repeating merge path.
	CommandRepeatedFilledRect

	// CommandTexturedRect draws Src of the state texture into Dest.
	CommandTexturedRect

	// CommandRepeatedTexturedRect is a textured rect routed through
	// the repeating merge path.
	CommandRepeatedTexturedRect

	// CommandRepeatedTexturedRepeatedRect tiles Dest with copies of
	// Src.
	CommandRepeatedTexturedRepeatedRect

	// CommandUpsideDownTexturedRect draws Src vertically flipped into
	// Dest. Used when sampling offscreen targets.
	CommandUpsideDownTexturedRect

	// CommandFilledTriangle fills the triangle A, B, C.
	CommandFilledTriangle

	// CommandBoundingRect outlines Dest with LineWidth-thick edges.
	CommandBoundingRect
)

// String returns the string representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandFilledRect:
		return "FilledRect"
	case CommandRepeatedFilledRect:
		return "RepeatedFilledRect"
	case CommandTexturedRect:
		return "TexturedRect"
	case CommandRepeatedTexturedRect:
		return "RepeatedTexturedRect"
	case CommandRepeatedTexturedRepeatedRect:
		return "RepeatedTexturedRepeatedRect"
	case CommandUpsideDownTexturedRect:
		return "UpsideDownTexturedRect"
	case CommandFilledTriangle:
		return "FilledTriangle"
	case CommandBoundingRect:
		return "BoundingRect"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Command is a tagged geometry descriptor. The kind selects which
// fields are meaningful: Dest/Src for rect kinds, A/B/C for triangles,
// LineWidth for outlines.
//
// Commands never carry degenerate geometry: the engine's primitive
// constructors reject empty rects and coincident triangle vertices
// before a command is built.
type Command struct {
	Kind CommandKind

	Dest, Src drawbatch.Rect

	A, B, C drawbatch.Point

	LineWidth int

	// Hash is an optional override folded into the owning framed
	// pool's content hash, for draws whose visual content is not fully
	// captured by the geometry fields.
	Hash uint64
}

// assemble appends the command's geometry to the coordinate buffer
// using the batch topology.
func (c Command) assemble(buf *drawbatch.CoordBuffer, mode drawbatch.DrawMode) {
	switch c.Kind {
	case CommandFilledRect, CommandRepeatedFilledRect:
		buf.AddRect(c.Dest)
	case CommandTexturedRect, CommandRepeatedTexturedRect:
		if mode == drawbatch.DrawModeTriangles {
			buf.AddTexturedRect(c.Dest, c.Src)
		} else {
			buf.AddQuad(c.Dest, c.Src)
		}
	case CommandUpsideDownTexturedRect:
		if mode == drawbatch.DrawModeTriangles {
			buf.AddUpsideDownRect(c.Dest, c.Src)
		} else {
			buf.AddUpsideDownQuad(c.Dest, c.Src)
		}
	case CommandRepeatedTexturedRepeatedRect:
		buf.AddRepeatedRects(c.Dest, c.Src)
	case CommandFilledTriangle:
		buf.AddTriangle(c.A, c.B, c.C)
	case CommandBoundingRect:
		buf.AddBoundingRect(c.Dest, c.LineWidth)
	}
}
