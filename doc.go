// Package drawbatch is the draw-batching core of a real-time 2D client.
//
// Collaborator code (game world, UI) issues thousands of small per-frame
// draw requests: textured quads, filled rects, triangles, bounding
// outlines. drawbatch coalesces requests that share an identical render
// state into single GPU submissions, eliminates fully occluded overdraw,
// and skips re-rendering offscreen layers whose content is unchanged
// since the previous frame.
//
// The root package holds the shared value types: geometry (Point, Rect),
// color (RGBA), render state (State), resource handles (Texture, Shader)
// and the CoordBuffer vertex assembler. The batching engine itself lives
// in the pool subpackage; painter and render-target abstractions live in
// render; an optional wgpu-backed submission painter lives in
// backend/native and is enabled by blank-importing the gpu subpackage.
//
// drawbatch is frame-paced and single-threaded: all draw issuance and
// the per-frame flush happen on one rendering goroutine.
package drawbatch
