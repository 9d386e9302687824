// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// previewShaderWGSL draws position/texcoord vertices with a fixed
// three-quarter view and a checker pattern from the texture coordinate.
const previewShaderWGSL = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let x = in.position.x * 0.8 - in.position.z * 0.4;
    let y = in.position.y * 0.8 + in.position.z * 0.3 - in.position.x * 0.1;
    out.clip = vec4<f32>(x, y, 0.5, 1.0);
    out.uv = in.uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let cell = floor(in.uv * 8.0);
    let checker = (cell.x + cell.y) - 2.0 * floor((cell.x + cell.y) * 0.5);
    let shade = 0.35 + 0.4 * checker;
    return vec4<f32>(shade, shade, shade, 1.0);
}
`

// PreviewShaderSource returns the WGSL source of the preview pipeline.
func PreviewShaderSource() string {
	return previewShaderWGSL
}

// CompileShader compiles WGSL source to SPIR-V words.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("render: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("render: compile shader: SPIR-V size %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}
