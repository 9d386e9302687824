// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultTargetFormat is the color format of offscreen targets.
const DefaultTargetFormat = gputypes.TextureFormatBGRA8Unorm

// offscreenTarget is a single-sample color texture the renderer draws
// into when no surface is attached.
type offscreenTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// ensure creates or recreates the texture when the requested size or
// format differs from the current one. Matching dimensions are a no-op.
func (t *offscreenTarget) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat) error {
	if t.tex != nil && t.width == w && t.height == h && t.format == format {
		return nil
	}
	t.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "functor_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("render: create target texture: %w", err)
	}
	t.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "functor_target_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("render: create target view: %w", err)
	}
	t.view = view
	t.width = w
	t.height = h
	t.format = format
	return nil
}

func (t *offscreenTarget) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}
