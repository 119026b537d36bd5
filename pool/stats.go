// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import "sync/atomic"

// engineStats carries the engine's frame counters. Counters are
// atomic so monitoring code may snapshot them from another goroutine
// while the rendering goroutine draws.
type engineStats struct {
	frames      atomic.Uint64
	submissions atomic.Uint64
	merged      atomic.Uint64
	eliminated  atomic.Uint64
	skipped     atomic.Uint64
	rendered    atomic.Uint64
}

// Stats is a point-in-time snapshot of engine counters.
type Stats struct {
	// Frames is the number of completed Draw cycles.
	Frames uint64

	// Submissions is the number of painter draw submissions issued.
	Submissions uint64

	// Merged counts commands appended to an existing batch instead of
	// opening a new one.
	Merged uint64

	// Eliminated counts commands removed by overdraw elimination.
	Eliminated uint64

	// FramedSkipped counts framed-pool pre-draws skipped because the
	// content hash was unchanged.
	FramedSkipped uint64

	// FramedRendered counts framed-pool pre-draws performed.
	FramedRendered uint64
}

// Stats returns a snapshot of the engine's frame counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:         e.stats.frames.Load(),
		Submissions:    e.stats.submissions.Load(),
		Merged:         e.stats.merged.Load(),
		Eliminated:     e.stats.eliminated.Load(),
		FramedSkipped:  e.stats.skipped.Load(),
		FramedRendered: e.stats.rendered.Load(),
	}
}

// ResetStats zeroes all engine counters.
func (e *Engine) ResetStats() {
	e.stats.frames.Store(0)
	e.stats.submissions.Store(0)
	e.stats.merged.Store(0)
	e.stats.eliminated.Store(0)
	e.stats.skipped.Store(0)
	e.stats.rendered.Store(0)
}
