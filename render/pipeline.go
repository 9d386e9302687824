// Copyright 2026 The functor Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/functor-dev/functor/geometry"
)

// VertexBufferLayout converts a geometry attribute layout to the HAL
// vertex buffer layout the pipeline consumes.
func VertexBufferLayout(l geometry.AttributeLayout) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, 0, len(l.Attributes))
	for _, a := range l.Attributes {
		format, ok := vertexFormat(a.Components, geometry.AttribFloat32)
		if !ok {
			continue
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Slot,
		})
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// Pipeline is the preview render pipeline for PositionTexture vertices.
// GPU objects are created on the first call to Ensure and kept until
// Destroy.
type Pipeline struct {
	device hal.Device
	format gputypes.TextureFormat
	layout geometry.AttributeLayout

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewPipeline returns a pipeline that renders into targets of format.
// No GPU objects are created yet.
func NewPipeline(device hal.Device, format gputypes.TextureFormat) *Pipeline {
	return &Pipeline{
		device: device,
		format: format,
		layout: geometry.PositionTexture,
	}
}

// Format returns the color target format.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Ready reports whether the render pipeline has been created.
func (p *Pipeline) Ready() bool { return p.pipeline != nil }

// Ensure creates the shader module, layout and render pipeline if they do
// not exist yet and returns the pipeline. A failed attempt leaves nothing
// behind, so a later call retries.
func (p *Pipeline) Ensure() (hal.RenderPipeline, error) {
	if p.pipeline != nil {
		return p.pipeline, nil
	}
	if p.device == nil {
		return nil, ErrNilDevice
	}

	code, err := CompileShader(previewShaderWGSL)
	if err != nil {
		return nil, err
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "functor_preview_shader",
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: create preview shader module: %w", err)
	}

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "functor_preview_pipe_layout",
	})
	if err != nil {
		p.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("render: create preview pipeline layout: %w", err)
	}

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "functor_preview_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{VertexBufferLayout(p.layout)},
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.device.DestroyPipelineLayout(pipeLayout)
		p.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("render: create preview pipeline: %w", err)
	}

	p.shader = shader
	p.pipeLayout = pipeLayout
	p.pipeline = pipeline
	return pipeline, nil
}

// Destroy releases the GPU objects. The pipeline can be ensured again
// afterwards.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
