package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/model"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
	depthFormat        = wgpu.TextureFormatDepth24Plus
)

type meshKey = scene.Shape

// gpuMesh holds the vertex and index buffers for one shape.
type gpuMesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

// gpuObject is the per-primitive uniform state drawn with a shared mesh.
type gpuObject struct {
	mesh      *gpuMesh
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

// Surface is a WebGPU swapchain bound to one native window.
type Surface struct {
	mu   *sync.Mutex
	host *Host

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	sampleCount uint32

	// msaaView is nil when sampleCount is 1; the pass then draws straight
	// into the swapchain view.
	msaaTexture  *wgpu.Texture
	msaaView     *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	pipeline     *wgpu.RenderPipeline
	frameLayout  *wgpu.BindGroupLayout
	objectLayout *wgpu.BindGroupLayout
	frameBuffer  *wgpu.Buffer
	frameGroup   *wgpu.BindGroup

	meshes  map[meshKey]*gpuMesh
	scene   *scene.Scene
	objects []gpuObject

	width, height int
	released      bool
}

var _ viewport.Surface = &Surface{}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Released reports whether the host has released the surface.
func (s *Surface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

func (s *Surface) Draw(sc *scene.Scene, cam camera.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return viewport.ErrSurfaceReleased
	}
	if sc == nil || cam == nil {
		return nil
	}
	if sc != s.scene {
		if err := s.bindScene(sc); err != nil {
			return fmt.Errorf("bind scene: %w", err)
		}
	}

	frame := NewGPUFrameUniform(cam, sc)
	s.queue.WriteBuffer(s.frameBuffer, 0, frame.Marshal())

	surfaceTexture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	bg := sc.Background
	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: float64(bg.A),
		},
	}
	if s.msaaView != nil {
		// Samples are resolved into the swapchain and never read back.
		color.View = s.msaaView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	pass.SetPipeline(s.pipeline)
	pass.SetBindGroup(0, s.frameGroup, nil)
	for _, obj := range s.objects {
		pass.SetBindGroup(1, obj.bindGroup, nil)
		pass.SetVertexBuffer(0, obj.mesh.vertices, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(obj.mesh.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(obj.mesh.indexCount, 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	s.queue.Submit(commandBuffer)
	commandBuffer.Release()

	s.surface.Present()
	return nil
}

// bindScene uploads per-primitive uniforms for a newly built scene. Meshes are
// shared across scenes by shape so a pose change only rewrites uniforms.
// Caller must hold the mutex.
func (s *Surface) bindScene(sc *scene.Scene) error {
	s.releaseObjects()

	objects := make([]gpuObject, 0, len(sc.Primitives))
	for _, p := range sc.Primitives {
		mesh, err := s.mesh(p.Shape)
		if err != nil {
			s.objects = objects
			s.releaseObjects()
			return err
		}

		buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: p.Name + " Uniform Buffer",
			Size:  objectUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			s.objects = objects
			s.releaseObjects()
			return err
		}
		uniform := NewGPUObjectUniform(p)
		s.queue.WriteBuffer(buf, 0, uniform.Marshal())

		group, err := s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  p.Name + " Bind Group",
			Layout: s.objectLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			buf.Release()
			s.objects = objects
			s.releaseObjects()
			return err
		}
		objects = append(objects, gpuObject{mesh: mesh, uniform: buf, bindGroup: group})
	}

	s.objects = objects
	s.scene = sc
	return nil
}

// mesh returns the GPU buffers for a shape, uploading them on first use.
// Caller must hold the mutex.
func (s *Surface) mesh(shape scene.Shape) (*gpuMesh, error) {
	if m, ok := s.meshes[shape]; ok {
		return m, nil
	}

	cpu := s.host.meshes.Get(shape)
	vertexData := make([]byte, 0, len(cpu.Vertices)*model.GPUVertexStride)
	for i := range cpu.Vertices {
		vertexData = append(vertexData, cpu.Vertices[i].Marshal()...)
	}
	indexData := common.SliceToBytes(cpu.Indices)

	label := shape.Kind.String()
	vertices, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	s.queue.WriteBuffer(vertices, 0, vertexData)

	indices, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertices.Release()
		return nil, err
	}
	s.queue.WriteBuffer(indices, 0, indexData)

	m := &gpuMesh{vertices: vertices, indices: indices, indexCount: uint32(len(cpu.Indices))}
	s.meshes[shape] = m
	return m, nil
}

// configure (re)creates the swapchain and the render attachments for the given size.
// Caller must hold the mutex, or be the only reference to a surface still being built.
func (s *Surface) configure(width, height int) error {
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: s.presentMode,
		AlphaMode:   s.alphaMode,
	})

	var msaaTexture *wgpu.Texture
	var msaaView *wgpu.TextureView
	if s.sampleCount > 1 {
		var err error
		msaaTexture, msaaView, err = s.attachment("MSAA Texture", s.format, width, height)
		if err != nil {
			return fmt.Errorf("create msaa target: %w", err)
		}
	}

	// The depth sample count must match the color attachment.
	depthTexture, depthView, err := s.attachment("Depth Texture", depthFormat, width, height)
	if err != nil {
		if msaaTexture != nil {
			msaaView.Release()
			msaaTexture.Release()
		}
		return fmt.Errorf("create depth target: %w", err)
	}

	s.releaseTargets()
	s.msaaTexture, s.msaaView = msaaTexture, msaaView
	s.depthTexture, s.depthView = depthTexture, depthView
	s.width, s.height = width, height
	return nil
}

// attachment creates a render-only texture at the surface sample count.
func (s *Surface) attachment(label string, format wgpu.TextureFormat, width, height int) (*wgpu.Texture, *wgpu.TextureView, error) {
	texture, err := s.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   max(s.sampleCount, 1),
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, nil, err
	}
	return texture, view, nil
}

// createPipeline compiles the pose shader and builds the render pipeline with
// its two uniform bind group layouts.
func (s *Surface) createPipeline() error {
	module, err := s.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Pose Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: PoseShaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	s.frameLayout, err = s.device.CreateBindGroupLayout(uniformLayout("Frame Layout", frameUniformSize,
		wgpu.ShaderStageVertex|wgpu.ShaderStageFragment))
	if err != nil {
		return err
	}
	s.objectLayout, err = s.device.CreateBindGroupLayout(uniformLayout("Object Layout", objectUniformSize,
		wgpu.ShaderStageVertex|wgpu.ShaderStageFragment))
	if err != nil {
		return err
	}

	pipelineLayout, err := s.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Pose Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{s.frameLayout, s.objectLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	s.pipeline, err = s.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Pose Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: model.GPUVertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{Format: s.format, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: max(s.sampleCount, 1),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	s.frameBuffer, err = s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  frameUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	s.frameGroup, err = s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: s.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: s.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	return err
}

func uniformLayout(label string, size uint64, visibility wgpu.ShaderStage) *wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: visibility,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = size
	return &wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

// releaseObjects frees per-primitive uniforms. Caller must hold the mutex.
func (s *Surface) releaseObjects() {
	for _, obj := range s.objects {
		obj.bindGroup.Release()
		obj.uniform.Release()
	}
	s.objects = nil
	s.scene = nil
}

// releaseTargets frees the MSAA and depth attachments. Caller must hold the mutex.
func (s *Surface) releaseTargets() {
	if s.msaaView != nil {
		s.msaaView.Release()
		s.msaaView = nil
	}
	if s.msaaTexture != nil {
		s.msaaTexture.Release()
		s.msaaTexture = nil
	}
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTexture != nil {
		s.depthTexture.Release()
		s.depthTexture = nil
	}
}

// destroy releases every GPU resource in reverse creation order. It tolerates
// a partially built surface. Caller must hold the mutex.
func (s *Surface) destroy() {
	s.releaseObjects()
	for shape, m := range s.meshes {
		m.indices.Release()
		m.vertices.Release()
		delete(s.meshes, shape)
	}
	if s.frameGroup != nil {
		s.frameGroup.Release()
		s.frameGroup = nil
	}
	if s.frameBuffer != nil {
		s.frameBuffer.Release()
		s.frameBuffer = nil
	}
	if s.pipeline != nil {
		s.pipeline.Release()
		s.pipeline = nil
	}
	if s.objectLayout != nil {
		s.objectLayout.Release()
		s.objectLayout = nil
	}
	if s.frameLayout != nil {
		s.frameLayout.Release()
		s.frameLayout = nil
	}
	s.releaseTargets()
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
}
