// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool implements the draw-batching engine: pools accumulate
// per-frame draw commands grouped into batches by render state, and
// the engine flushes them once per frame as a minimal set of painter
// submissions.
//
// The engine is single-threaded by contract. All draw-call issuance
// and the per-frame Draw happen on one rendering goroutine; there is
// no locking because there is no concurrent mutation.
package pool
