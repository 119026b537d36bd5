// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import "github.com/gogpu/drawbatch"

// Batch groups the ordered draw commands sharing one render state, so
// they reach the painter as a single submission. A batch may instead
// hold an action callback, invoked in list position during replay;
// action batches never carry commands.
//
// Surviving command order is exactly append order. Overlapping
// geometry depends on painter's-algorithm ordering, so replay must
// never reorder.
type Batch struct {
	State    drawbatch.State
	Mode     drawbatch.DrawMode
	Commands []Command
	Action   func()
}

// IsAction reports whether the batch is an action callback.
func (b *Batch) IsAction() bool { return b.Action != nil }
