// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Package errors for render.
var (
	// ErrBackendUnavailable is returned when the requested HAL backend is
	// not compiled in or not supported on this machine.
	ErrBackendUnavailable = errors.New("render: backend not available")

	// ErrNoAdapters is returned when an instance reports no GPU adapters.
	ErrNoAdapters = errors.New("render: no GPU adapters found")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// hal.Device and hal.Queue.
	ErrProviderNotHAL = errors.New("render: provider does not expose HAL types")

	// ErrUnknownBuffer is returned when uploading to a buffer handle the
	// context did not create.
	ErrUnknownBuffer = errors.New("render: unknown buffer handle")

	// ErrNoBoundBuffer is returned when uploading with no buffer bound.
	ErrNoBoundBuffer = errors.New("render: no buffer bound")

	// ErrNoActivePass is returned when ending a pass that was never begun.
	ErrNoActivePass = errors.New("render: no active render pass")

	// ErrSubmissionIncomplete is returned when the GPU reports idle but
	// a frame's submission has not completed.
	ErrSubmissionIncomplete = errors.New("render: GPU submission not completed")

	// ErrNilDevice is returned when a renderer or context is created
	// without a device.
	ErrNilDevice = errors.New("render: nil device")
)
