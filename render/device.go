// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This is the integration point between drawbatch and GPU frameworks:
// the host implements DeviceHandle and passes it to the GPU painter,
// which then renders on the shared device instead of creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping the
// painter compatible with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// HalProvider is implemented by device handles that can expose their
// underlying hal objects. GPU painters assert for it to reach the raw
// device and queue behind a gpucontext provider.
type HalProvider interface {
	// HalDevice returns the underlying hal.Device.
	HalDevice() any

	// HalQueue returns the underlying hal.Queue.
	HalQueue() any
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns unknown adapter metadata for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
