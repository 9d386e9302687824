// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	functor "github.com/functor-dev/functor"
)

// DeviceHandle provides GPU device access from a host application.
//
// A host such as gogpu.App implements it and hands it to functor so that
// shapes upload into the host's device instead of a private one. It is an
// alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// Backend selects the HAL implementation OpenDevice uses.
type Backend uint8

const (
	// BackendNoop records nothing and needs no GPU. It is the default for
	// headless runs and tests.
	BackendNoop Backend = iota

	// BackendVulkan opens a real device through the Vulkan HAL.
	BackendVulkan
)

// String returns the flag spelling of b.
func (b Backend) String() string {
	switch b {
	case BackendNoop:
		return "noop"
	case BackendVulkan:
		return "vulkan"
	default:
		return "unknown"
	}
}

// ParseBackend parses a backend name as accepted by the CLI.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "noop":
		return BackendNoop, nil
	case "vulkan":
		return BackendVulkan, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBackendUnavailable, s)
	}
}

// Device owns a HAL instance together with the device and queue opened on
// one of its adapters.
type Device struct {
	backend  Backend
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string
}

// OpenDevice creates an instance for backend and opens a device on its
// preferred adapter. Discrete and integrated GPUs are preferred over
// software adapters.
func OpenDevice(backend Backend) (*Device, error) {
	instance, err := createInstance(backend)
	if err != nil {
		return nil, err
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapters
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
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}

	functor.Logger().Info("render: device opened",
		slog.String("backend", backend.String()),
		slog.String("adapter", selected.Info.Name))

	return &Device{
		backend:  backend,
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		adapter:  selected.Info.Name,
	}, nil
}

func createInstance(backend Backend) (hal.Instance, error) {
	switch backend {
	case BackendNoop:
		instance, err := noop.API{}.CreateInstance(nil)
		if err != nil {
			return nil, fmt.Errorf("render: create noop instance: %w", err)
		}
		return instance, nil
	case BackendVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: vulkan", ErrBackendUnavailable)
		}
		instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("render: create vulkan instance: %w", err)
		}
		return instance, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
	}
}

// Backend returns the backend the device was opened with.
func (d *Device) Backend() Backend { return d.backend }

// AdapterName returns the name of the adapter the device was opened on.
func (d *Device) AdapterName() string { return d.adapter }

// HalDevice returns the device as any, matching the accessor hosts expose
// for sharing.
func (d *Device) HalDevice() any { return d.device }

// HalQueue returns the queue as any.
func (d *Device) HalQueue() any { return d.queue }

// NewContext creates a HALContext on the device.
func (d *Device) NewContext() (*HALContext, error) {
	return NewContext(d.device, d.queue)
}

// Close destroys the device and its instance. It is safe to call more
// than once.
func (d *Device) Close() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// halProvider is implemented by hosts that expose their HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewContextFromProvider creates a HALContext on the host's device.
// The provider must expose HalDevice() and HalQueue() returning hal.Device
// and hal.Queue; otherwise ErrProviderNotHAL is returned.
func NewContextFromProvider(provider DeviceHandle) (*HALContext, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	return NewContext(device, queue)
}
