// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

// Register the Vulkan HAL so BackendVulkan can find it.
import _ "github.com/gogpu/wgpu/hal/vulkan"
