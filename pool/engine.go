// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"github.com/gogpu/drawbatch"
	"github.com/gogpu/drawbatch/render"
)

// Engine owns the fixed pool set and drives the once-per-frame
// two-phase flush. It is explicitly constructed and passed by handle;
// there is no process-wide instance.
//
// Engine methods must be called from a single rendering goroutine.
// The current-pool cursor is plain mutable state shared across calls
// and is deliberately not synchronized.
type Engine struct {
	painter render.Painter
	targets *render.TargetRegistry

	pools   [numKinds]*Pool
	current *Pool

	coords drawbatch.CoordBuffer
	stats  engineStats

	targetW, targetH int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTargetSize sets the pixel size of the framed pools' offscreen
// targets. Defaults to 1920x1080.
func WithTargetSize(width, height int) Option {
	return func(e *Engine) {
		e.targetW, e.targetH = width, height
	}
}

// WithTargetRegistry supplies an existing target registry, letting the
// caller share target bookkeeping with other subsystems. By default
// the engine creates and owns its own registry.
func WithTargetRegistry(reg *render.TargetRegistry) Option {
	return func(e *Engine) { e.targets = reg }
}

// NewEngine creates the engine and its fixed pool set. The Map, Light,
// and Foreground pools receive offscreen targets from the painter; the
// Map target draws unblended and the Light target composites with the
// Light mode. The catch-all Unknown pool starts current.
//
// Close must be called before the painter's GPU context is torn down.
func NewEngine(painter render.Painter, opts ...Option) (*Engine, error) {
	e := &Engine{
		painter: painter,
		targetW: 1920,
		targetH: 1080,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.targets == nil {
		e.targets = render.NewTargetRegistry(painter)
	}

	for k := Kind(0); k < numKinds; k++ {
		p := newPool(k)
		switch k {
		case KindMap, KindLight, KindForeground:
			t, err := e.targets.NewTarget(e.targetW, e.targetH)
			if err != nil {
				e.targets.Close()
				return nil, err
			}
			switch k {
			case KindMap:
				t.DisableBlend()
			case KindLight:
				t.SetCompositionMode(drawbatch.CompositionLight)
			}
			p.frame = &frame{target: t, hash: hashSeed}
		}
		e.pools[k] = p
	}

	e.Use(KindUnknown)
	return e, nil
}

// Close releases every pool's offscreen target. Must run before GPU
// context teardown.
func (e *Engine) Close() {
	e.current = nil
	for i := range e.pools {
		e.pools[i] = nil
	}
	e.targets.Close()
}

// Pool returns the pool for the given kind. Unknown kinds map to the
// catch-all pool.
func (e *Engine) Pool(kind Kind) *Pool {
	if kind >= numKinds {
		kind = KindUnknown
	}
	return e.pools[kind]
}

// Current returns the pool receiving draw calls.
func (e *Engine) Current() *Pool { return e.current }

// Use switches the current pool and resets its accumulation state:
// the state snapshot returns to defaults with alpha-writing disabled,
// and a framed pool's current-frame hash restarts.
func (e *Engine) Use(kind Kind) {
	e.current = e.Pool(kind)
	e.current.reset()
}

// UseFramed switches to a framed pool and records where its target is
// later composited: the dest rectangle on the output, sampling the src
// region of the target. Falls back to Use for non-framed kinds.
func (e *Engine) UseFramed(kind Kind, dest, src drawbatch.Rect) {
	e.Use(kind)
	if f := e.current.frame; f != nil {
		f.dest, f.src = dest, src
	}
}

// Pool-state setters mutate the current pool's snapshot, which seeds
// every batch created while that pool stays current.

// SetClip sets the clip rectangle on the current pool's snapshot.
func (e *Engine) SetClip(clip drawbatch.Rect) { e.current.state.Clip = clip }

// SetCompositionMode sets the blend mode on the current pool's
// snapshot.
func (e *Engine) SetCompositionMode(mode drawbatch.CompositionMode) {
	e.current.state.Composition = mode
}

// SetOpacity sets the opacity on the current pool's snapshot.
func (e *Engine) SetOpacity(opacity float64) { e.current.state.Opacity = opacity }

// SetShader sets the shader on the current pool's snapshot. Framed
// pools with a shader are re-rendered every frame.
func (e *Engine) SetShader(s *drawbatch.Shader) { e.current.state.Shader = s }

// SetAlphaWrite toggles alpha-channel writes on the current pool's
// snapshot.
func (e *Engine) SetAlphaWrite(enabled bool) { e.current.state.AlphaWrite = enabled }

// snapshotState builds the render state for one draw call from the
// current pool's snapshot plus the call's texture and color tint.
func (e *Engine) snapshotState(tex drawbatch.Texture, color drawbatch.RGBA) drawbatch.State {
	st := e.current.state
	st.Texture = tex
	st.Color = color
	return st
}

// add is the non-repeating merge path: compare against the last batch
// only. Identical state appends the command and forces the merged
// triangle-list topology; differing state opens a new batch. Either
// way, a prior command fully occluded by this one is dropped.
func (e *Engine) add(st drawbatch.State, cmd Command, mode drawbatch.DrawMode) {
	p := e.current
	if f := p.frame; f != nil {
		f.updateHash(st, cmd)
	}

	if n := len(p.batches); n > 0 {
		last := p.batches[n-1]
		sameState := !last.IsAction() && last.State.Equal(st)

		if cmd.Dest.IsValid() && !last.IsAction() {
			e.eliminateOccluded(last, st, cmd, sameState)
		}

		if sameState {
			last.Mode = drawbatch.DrawModeTriangles
			last.Commands = append(last.Commands, cmd)
			e.stats.merged.Add(1)
			return
		}
	}

	p.batches = append(p.batches, &Batch{State: st, Mode: mode, Commands: []Command{cmd}})
}

// eliminateOccluded removes from the last batch at most one prior
// command whose destination equals the incoming command's and whose
// pixels the incoming draw fully covers: either the same state and
// source region, or an opaque incoming texture over a superimposable
// one. First match wins.
func (e *Engine) eliminateOccluded(last *Batch, st drawbatch.State, cmd Command, sameState bool) {
	opaqueOver := st.Texture != nil && st.Texture.Opaque() &&
		last.State.Texture != nil && last.State.Texture.Superimposable()

	for i, prev := range last.Commands {
		if prev.Dest != cmd.Dest {
			continue
		}
		if (sameState && prev.Src == cmd.Src) || opaqueOver {
			last.Commands = append(last.Commands[:i], last.Commands[i+1:]...)
			e.stats.eliminated.Add(1)
			return
		}
	}
}

// addRepeated is the repeating merge path: scan forward from the
// cached search index over all batches for a state match, appending to
// the first one found. Used for draws that recur with the same state
// many times per frame, where grouping matters more than ordering
// against other states.
func (e *Engine) addRepeated(st drawbatch.State, cmd Command) {
	p := e.current
	if f := p.frame; f != nil {
		f.updateHash(st, cmd)
	}

	start := 0
	if p.searchIndex > 0 {
		start = p.searchIndex - 1
	}
	for _, b := range p.batches[start:] {
		if !b.IsAction() && b.State.Equal(st) {
			b.Commands = append(b.Commands, cmd)
			e.stats.merged.Add(1)
			return
		}
	}

	p.batches = append(p.batches, &Batch{
		State:    st,
		Mode:     drawbatch.DrawModeTriangles,
		Commands: []Command{cmd},
	})
}

// AddTexturedRect draws the src region of tex into dest, tinted with
// color. Empty rects are silently dropped.
func (e *Engine) AddTexturedRect(dest drawbatch.Rect, tex drawbatch.Texture, src drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandTexturedRect, Dest: dest, Src: src}
	e.add(e.snapshotState(tex, color), cmd, drawbatch.DrawModeTriangleStrip)
}

// AddFullTexturedRect draws the whole of tex into dest.
func (e *Engine) AddFullTexturedRect(dest drawbatch.Rect, tex drawbatch.Texture, color drawbatch.RGBA) {
	w, h := tex.Size()
	e.AddTexturedRect(dest, tex, drawbatch.RectFromSize(w, h), color)
}

// AddUpsideDownTexturedRect draws the src region of tex vertically
// flipped into dest. Used to composite offscreen targets, whose rows
// are stored bottom-up.
func (e *Engine) AddUpsideDownTexturedRect(dest drawbatch.Rect, tex drawbatch.Texture, src drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandUpsideDownTexturedRect, Dest: dest, Src: src}
	e.add(e.snapshotState(tex, color), cmd, drawbatch.DrawModeTriangleStrip)
}

// AddRepeatedTexturedRect draws the src region of tex into dest via
// the repeating merge path.
func (e *Engine) AddRepeatedTexturedRect(dest drawbatch.Rect, tex drawbatch.Texture, src drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandRepeatedTexturedRect, Dest: dest, Src: src}
	e.addRepeated(e.snapshotState(tex, color), cmd)
}

// AddRepeatedTexturedRepeatedRect tiles dest with copies of the src
// region of tex, via the repeating merge path.
func (e *Engine) AddRepeatedTexturedRepeatedRect(dest drawbatch.Rect, tex drawbatch.Texture, src drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() || src.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandRepeatedTexturedRepeatedRect, Dest: dest, Src: src}
	e.addRepeated(e.snapshotState(tex, color), cmd)
}

// AddFilledRect fills dest with color.
func (e *Engine) AddFilledRect(dest drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandFilledRect, Dest: dest}
	e.add(e.snapshotState(nil, color), cmd, drawbatch.DrawModeTriangles)
}

// AddRepeatedFilledRect fills dest with color via the repeating merge
// path.
func (e *Engine) AddRepeatedFilledRect(dest drawbatch.Rect, color drawbatch.RGBA) {
	if dest.IsEmpty() {
		return
	}
	cmd := Command{Kind: CommandRepeatedFilledRect, Dest: dest}
	e.addRepeated(e.snapshotState(nil, color), cmd)
}

// AddFilledTriangle fills the triangle a, b, c with color. Degenerate
// triangles with coincident vertices are silently dropped.
func (e *Engine) AddFilledTriangle(a, b, c drawbatch.Point, color drawbatch.RGBA) {
	if a == b || a == c || b == c {
		return
	}
	cmd := Command{Kind: CommandFilledTriangle, A: a, B: b, C: c}
	e.add(e.snapshotState(nil, color), cmd, drawbatch.DrawModeTriangles)
}

// AddBoundingRect outlines dest with innerLineWidth-thick edges.
func (e *Engine) AddBoundingRect(dest drawbatch.Rect, color drawbatch.RGBA, innerLineWidth int) {
	if dest.IsEmpty() || innerLineWidth <= 0 {
		return
	}
	cmd := Command{Kind: CommandBoundingRect, Dest: dest, LineWidth: innerLineWidth}
	e.add(e.snapshotState(nil, color), cmd, drawbatch.DrawModeTriangles)
}

// AddAction enqueues a callback invoked at this position in the draw
// order during replay. Actions never merge with neighboring batches,
// and the repeating merge path never scans across them.
func (e *Engine) AddAction(fn func()) {
	p := e.current
	p.batches = append(p.batches, &Batch{Mode: drawbatch.DrawModeNone, Action: fn})
	p.searchIndex = len(p.batches)
}

// Draw flushes the frame in two phases. First every enabled framed
// pool whose content changed re-renders its batches into its offscreen
// target. Then every enabled pool is drawn in layering order: framed
// pools composite their target as one textured quad, immediate pools
// replay into whatever is currently bound. All batch lists end the
// frame empty, enabled or not.
func (e *Engine) Draw() {
	log := drawbatch.Logger()

	for _, p := range e.pools {
		f := p.frame
		if !p.enabled || f == nil {
			continue
		}
		if !f.changed() {
			e.stats.skipped.Add(1)
			log.Debug("pool: framed pre-draw skipped", "pool", p.kind.String())
			continue
		}
		f.markRendered()
		if len(p.batches) > 0 {
			e.stats.rendered.Add(1)
			f.target.Bind()
			for _, b := range p.batches {
				e.replayBatch(b)
			}
			f.target.Release()
		}
	}

	for _, p := range e.pools {
		if p.enabled {
			if f := p.frame; f != nil {
				e.painter.SaveState()
				if f.beforeDraw != nil {
					f.beforeDraw()
				}
				dest, src := f.compositeRects()
				f.target.Draw(dest, src)
				if f.afterDraw != nil {
					f.afterDraw()
				}
				e.painter.RestoreState()
			} else {
				for _, b := range p.batches {
					e.replayBatch(b)
				}
			}
		}
		p.batches = p.batches[:0]
		p.searchIndex = 0
	}

	e.stats.frames.Add(1)
}

// replayBatch executes one batch: actions run in place, command
// batches assemble their geometry into the shared coordinate buffer
// and go to the painter as a single submission.
func (e *Engine) replayBatch(b *Batch) {
	if b.IsAction() {
		b.Action()
		return
	}
	if len(b.Commands) == 0 {
		return
	}

	e.painter.ExecuteState(b.State)
	if b.State.Texture != nil {
		e.painter.SetTexture(b.State.Texture)
	}

	for _, cmd := range b.Commands {
		cmd.assemble(&e.coords, b.Mode)
	}

	e.painter.DrawCoords(&e.coords, b.Mode)
	e.coords.Clear()
	e.stats.submissions.Add(1)
}
