// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawbatch"
	"github.com/gogpu/drawbatch/render"
)

// deviceFromHandle extracts the hal device and queue from a host
// device handle. The handle must implement render.HalProvider; the
// gpucontext interfaces alone do not carry the raw hal objects.
func deviceFromHandle(handle render.DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := handle.(render.HalProvider)
	if !ok {
		return nil, nil, ErrNoHalDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalDevice)
	}
	return device, queue, nil
}

// openStandaloneDevice creates a standalone Vulkan device. This is the
// fallback path when no host device handle is provided, used for
// headless rendering.
func openStandaloneDevice() (hal.Device, hal.Queue, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, ErrNoVulkan
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, fmt.Errorf("native: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, nil, fmt.Errorf("native: open device: %w", err)
	}

	drawbatch.Logger().Info("native: standalone device opened", "adapter", selected.Info.Name)
	return openDev.Device, openDev.Queue, nil
}

// Available reports whether the Vulkan hal backend is present. Used by
// the painter registry to skip this backend on machines without GPU
// support.
func Available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}
