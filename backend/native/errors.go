// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors.
var (
	// ErrNoVulkan is returned when the Vulkan hal backend is not
	// compiled in or no adapter is present.
	ErrNoVulkan = errors.New("native: vulkan backend not available")

	// ErrNoAdapter is returned when adapter enumeration finds no GPU.
	ErrNoAdapter = errors.New("native: no GPU adapters found")

	// ErrNoHalDevice is returned when a device handle cannot expose
	// its underlying hal device and queue.
	ErrNoHalDevice = errors.New("native: device handle does not expose hal types")

	// ErrGPUTimeout is returned when a submitted command buffer does
	// not signal its fence in time.
	ErrGPUTimeout = errors.New("native: timed out waiting for GPU")
)
