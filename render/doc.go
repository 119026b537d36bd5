// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the painter and render-target abstractions the
// batching engine submits to, plus a CPU reference implementation.
//
// A Painter executes render state and issues one GPU submission per
// assembled CoordBuffer. A Target is an offscreen surface owned by a
// framed pool: bound while the pool re-renders, then composited as a
// single textured quad.
//
// Painter backends register themselves by name and priority; the
// software painter registers at low priority so a GPU backend (see
// drawbatch/backend/native, enabled via drawbatch/gpu) wins when
// available.
package render
