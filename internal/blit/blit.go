package blit

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/cache"
	"github.com/gogpu/texstore/internal/format"
	"github.com/gogpu/texstore/internal/shaders"
)

// Renderer is the part of the owning renderer the blitter drives.
type Renderer interface {
	Device() d3d11.Device
	DeviceContext() d3d11.DeviceContext
	IsLevel9() bool
	Max3DTextureSize() int

	// MarkAllStateDirty tells the renderer its cached pipeline state no
	// longer matches the device context.
	MarkAllStateDirty()
	SetOneTimeRenderTarget(rtv d3d11.RenderTargetView)
	SetShaderResource(stage d3d11.ShaderStage, slot int, srv d3d11.ShaderResourceView)
	UnapplyRenderTargets()

	Logger() *slog.Logger
}

// swizzleConstantsSize is one uint4 of swizzle indices.
const swizzleConstantsSize = 16

// Blitter performs format-converting copies, swizzles and depth copies
// on behalf of texture storages. Create it with New.
type Blitter struct {
	r   Renderer
	lib shaders.Library
	log *slog.Logger

	vertexBuffer d3d11.Buffer
	swizzleCB    d3d11.Buffer

	pointSampler  d3d11.SamplerState
	linearSampler d3d11.SamplerState

	scissorEnabledRS  d3d11.RasterizerState
	scissorDisabledRS d3d11.RasterizerState
	depthStencilState d3d11.DepthStencilState

	quad2DIL d3d11.InputLayout
	quad2DVS d3d11.VertexShader
	depthPS  d3d11.PixelShader

	// 3D programs are absent on feature level 9.
	quad3DIL d3d11.InputLayout
	quad3DVS d3d11.VertexShader
	quad3DGS d3d11.GeometryShader

	pixelShaders   *cache.Cache[string, d3d11.PixelShader]
	blitShaders    *cache.Cache[blitParameters, shaderSet]
	swizzleShaders *cache.Cache[swizzleParameters, shaderSet]
}

var (
	quad2DLayout = []d3d11.InputElementDesc{
		{SemanticName: "POSITION", Format: d3d11.FORMAT_R32G32_FLOAT, AlignedByteOffset: 0, InputSlotClass: d3d11.INPUT_PER_VERTEX_DATA},
		{SemanticName: "TEXCOORD", Format: d3d11.FORMAT_R32G32_FLOAT, AlignedByteOffset: 8, InputSlotClass: d3d11.INPUT_PER_VERTEX_DATA},
	}
	quad3DLayout = []d3d11.InputElementDesc{
		{SemanticName: "POSITION", Format: d3d11.FORMAT_R32G32_FLOAT, AlignedByteOffset: 0, InputSlotClass: d3d11.INPUT_PER_VERTEX_DATA},
		{SemanticName: "LAYER", Format: d3d11.FORMAT_R32_UINT, AlignedByteOffset: 8, InputSlotClass: d3d11.INPUT_PER_VERTEX_DATA},
		{SemanticName: "TEXCOORD", Format: d3d11.FORMAT_R32G32B32_FLOAT, AlignedByteOffset: 12, InputSlotClass: d3d11.INPUT_PER_VERTEX_DATA},
	}
)

const float32Max = 3.402823466e+38

func samplerDesc(filter d3d11.Filter) d3d11.SamplerDesc {
	return d3d11.SamplerDesc{
		Filter:         filter,
		AddressU:       d3d11.TEXTURE_ADDRESS_CLAMP,
		AddressV:       d3d11.TEXTURE_ADDRESS_CLAMP,
		AddressW:       d3d11.TEXTURE_ADDRESS_CLAMP,
		ComparisonFunc: d3d11.COMPARISON_NEVER,
		MaxLOD:         float32Max,
	}
}

func rasterizerDesc(scissor bool) d3d11.RasterizerDesc {
	return d3d11.RasterizerDesc{
		FillMode:        d3d11.FILL_SOLID,
		CullMode:        d3d11.CULL_NONE,
		DepthClipEnable: true,
		ScissorEnable:   scissor,
	}
}

// New creates the blitter's buffers, states and shader maps. On failure
// everything created so far is released.
func New(r Renderer, lib shaders.Library) (*Blitter, error) {
	b := &Blitter{
		r:              r,
		lib:            lib,
		log:            r.Logger(),
		pixelShaders:   cache.New[string, d3d11.PixelShader](),
		blitShaders:    cache.New[blitParameters, shaderSet](),
		swizzleShaders: cache.New[swizzleParameters, shaderSet](),
	}
	if err := b.init(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func createError(what string, err error) error {
	return gl.OutOfMemory("Failed to create internal %s for blit, result: 0x%X.", what, d3d11.HRESULT(err))
}

func (b *Blitter) init() error {
	dev := b.r.Device()
	var err error

	b.vertexBuffer, err = dev.CreateBuffer(&d3d11.BufferDesc{
		ByteWidth:      uint32(vertexBufferSize(b.r.Max3DTextureSize())),
		Usage:          d3d11.USAGE_DYNAMIC,
		BindFlags:      d3d11.BIND_VERTEX_BUFFER,
		CPUAccessFlags: d3d11.CPU_ACCESS_WRITE,
	}, nil)
	if err != nil {
		return createError("vertex buffer", err)
	}

	pointDesc := samplerDesc(d3d11.FILTER_MIN_MAG_MIP_POINT)
	if b.pointSampler, err = dev.CreateSamplerState(&pointDesc); err != nil {
		return createError("point sampler state", err)
	}
	linearDesc := samplerDesc(d3d11.FILTER_MIN_MAG_MIP_LINEAR)
	if b.linearSampler, err = dev.CreateSamplerState(&linearDesc); err != nil {
		return createError("linear sampler state", err)
	}

	scissorOn, scissorOff := rasterizerDesc(true), rasterizerDesc(false)
	if b.scissorEnabledRS, err = dev.CreateRasterizerState(&scissorOn); err != nil {
		return createError("scissoring rasterizer state", err)
	}
	if b.scissorDisabledRS, err = dev.CreateRasterizerState(&scissorOff); err != nil {
		return createError("rasterizer state", err)
	}

	b.depthStencilState, err = dev.CreateDepthStencilState(&d3d11.DepthStencilDesc{
		DepthEnable:      true,
		DepthWriteMask:   d3d11.DEPTH_WRITE_MASK_ALL,
		DepthFunc:        d3d11.COMPARISON_ALWAYS,
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
		FrontFace:        keepStencil,
		BackFace:         keepStencil,
	})
	if err != nil {
		return createError("depth stencil state", err)
	}

	vs2D, err := b.bytecode(shaders.VSPassthrough2D)
	if err != nil {
		return err
	}
	if b.quad2DIL, err = dev.CreateInputLayout(quad2DLayout, vs2D); err != nil {
		return createError("input layout", err)
	}
	if b.quad2DVS, err = dev.CreateVertexShader(vs2D); err != nil {
		return createError("vertex shader", err)
	}
	if b.depthPS, err = b.pixelShader(shaders.PSPassthroughDepth2D); err != nil {
		return err
	}

	if !b.r.IsLevel9() {
		vs3D, err := b.bytecode(shaders.VSPassthrough3D)
		if err != nil {
			return err
		}
		if b.quad3DIL, err = dev.CreateInputLayout(quad3DLayout, vs3D); err != nil {
			return createError("3D input layout", err)
		}
		if b.quad3DVS, err = dev.CreateVertexShader(vs3D); err != nil {
			return createError("3D vertex shader", err)
		}
		gs3D, err := b.bytecode(shaders.GSPassthrough3D)
		if err != nil {
			return err
		}
		if b.quad3DGS, err = dev.CreateGeometryShader(gs3D); err != nil {
			return createError("3D geometry shader", err)
		}
	}

	b.swizzleCB, err = dev.CreateBuffer(&d3d11.BufferDesc{
		ByteWidth:      swizzleConstantsSize,
		Usage:          d3d11.USAGE_DYNAMIC,
		BindFlags:      d3d11.BIND_CONSTANT_BUFFER,
		CPUAccessFlags: d3d11.CPU_ACCESS_WRITE,
	}, nil)
	if err != nil {
		return createError("swizzle constant buffer", err)
	}

	return b.buildShaderMap()
}

var keepStencil = d3d11.DepthStencilOpDesc{
	StencilFailOp:      d3d11.STENCIL_OP_KEEP,
	StencilDepthFailOp: d3d11.STENCIL_OP_KEEP,
	StencilPassOp:      d3d11.STENCIL_OP_KEEP,
	StencilFunc:        d3d11.COMPARISON_ALWAYS,
}

func (b *Blitter) bytecode(name string) ([]byte, error) {
	code, err := b.lib.Bytecode(name)
	if err != nil {
		return nil, fmt.Errorf("blit: %w", err)
	}
	return code, nil
}

// pixelShader returns the pixel shader for a program, creating it once.
func (b *Blitter) pixelShader(name string) (d3d11.PixelShader, error) {
	return b.pixelShaders.GetOrCreate(name, func() (d3d11.PixelShader, error) {
		code, err := b.bytecode(name)
		if err != nil {
			return nil, err
		}
		ps, err := b.r.Device().CreatePixelShader(code)
		if err != nil {
			return nil, createError("pixel shader "+name, err)
		}
		return ps, nil
	})
}

// Release frees every device object the blitter owns. It is safe to call
// on a partially constructed blitter.
func (b *Blitter) Release() {
	b.clearShaderMap()

	for _, obj := range []d3d11.Unknown{
		b.vertexBuffer, b.swizzleCB,
		b.pointSampler, b.linearSampler,
		b.scissorEnabledRS, b.scissorDisabledRS, b.depthStencilState,
		b.quad2DIL, b.quad2DVS,
		b.quad3DIL, b.quad3DVS, b.quad3DGS,
	} {
		safeRelease(obj)
	}
	b.vertexBuffer, b.swizzleCB = nil, nil
	b.pointSampler, b.linearSampler = nil, nil
	b.scissorEnabledRS, b.scissorDisabledRS, b.depthStencilState = nil, nil, nil
	b.quad2DIL, b.quad2DVS, b.depthPS = nil, nil, nil
	b.quad3DIL, b.quad3DVS, b.quad3DGS = nil, nil, nil
}

// safeRelease releases obj unless it is nil.
func safeRelease(obj d3d11.Unknown) {
	if obj == nil {
		return
	}
	obj.Release()
}

// swizzleIndex maps a swizzle source to its slot in the shader lookup
// table.
func swizzleIndex(swizzle gl.Enum) uint32 {
	switch swizzle {
	case gl.RED:
		return 0
	case gl.GREEN:
		return 1
	case gl.BLUE:
		return 2
	case gl.ALPHA:
		return 3
	case gl.ZERO:
		return 4
	case gl.ONE:
		return 5
	default:
		panic(fmt.Sprintf("blit: invalid swizzle source %#x", uint32(swizzle)))
	}
}

// shaderClass reduces a component type to the numeric class of the
// swizzle programs.
func shaderClass(componentType gl.Enum) gl.Enum {
	switch componentType {
	case gl.UNSIGNED_NORMALIZED, gl.SIGNED_NORMALIZED, gl.FLOAT:
		return gl.FLOAT
	case gl.INT:
		return gl.INT
	case gl.UNSIGNED_INT:
		return gl.UNSIGNED_INT
	default:
		panic(fmt.Sprintf("blit: unsupported component type %#x", uint32(componentType)))
	}
}

// mapVertices writes the vertices for one draw into the shared vertex
// buffer.
func (b *Blitter) mapVertices(write vertexWriter, sourceArea gl.Box, sourceSize gl.Extents,
	destArea gl.Box, destSize gl.Extents, what string) (stride, count uint32, topology d3d11.PrimitiveTopology, err error) {
	ctx := b.r.DeviceContext()
	mapped, err := ctx.Map(b.vertexBuffer, 0, d3d11.MAP_WRITE_DISCARD, 0)
	if err != nil {
		return 0, 0, 0, gl.OutOfMemory("Failed to map internal vertex buffer for %s, HRESULT: 0x%X.", what, d3d11.HRESULT(err))
	}
	stride, count, topology = write(sourceArea, sourceSize, destArea, destSize, mapped.Data)
	ctx.Unmap(b.vertexBuffer, 0)
	return stride, count, topology, nil
}

// SwizzleTexture copies source into dest with the channels rearranged.
// Each of swizzleRed..swizzleAlpha is one of gl.RED, gl.GREEN, gl.BLUE,
// gl.ALPHA, gl.ZERO or gl.ONE. size is the extent of the destination
// level; its depth is the number of layers written.
func (b *Blitter) SwizzleTexture(source d3d11.ShaderResourceView, dest d3d11.RenderTargetView, size gl.Extents,
	swizzleRed, swizzleGreen, swizzleBlue, swizzleAlpha gl.Enum) error {
	ctx := b.r.DeviceContext()

	srvDesc := source.Desc()
	params := swizzleParameters{
		destinationType: shaderClass(format.GetDXGIFormatInfo(srvDesc.Format).ComponentType),
		viewDimension:   srvDesc.ViewDimension,
	}
	shader, ok := b.swizzleShaders.Get(params)
	if !ok {
		return gl.Errorf(gl.INVALID_OPERATION, "Internal error, missing swizzle shader.")
	}
	var indices [4]uint32
	for i, s := range [4]gl.Enum{swizzleRed, swizzleGreen, swizzleBlue, swizzleAlpha} {
		indices[i] = swizzleIndex(s)
	}

	area := gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
	stride, count, topology, err := b.mapVertices(shader.write, area, size, area, size, "swizzle")
	if err != nil {
		return err
	}

	mapped, err := ctx.Map(b.swizzleCB, 0, d3d11.MAP_WRITE_DISCARD, 0)
	if err != nil {
		return gl.OutOfMemory("Failed to map internal constant buffer for swizzle, HRESULT: 0x%X.", d3d11.HRESULT(err))
	}
	for i, index := range indices {
		binary.LittleEndian.PutUint32(mapped.Data[i*4:], index)
	}
	ctx.Unmap(b.swizzleCB, 0)

	pass := b.beginPass()
	defer pass.end()

	ctx.IASetVertexBuffers(0, []d3d11.Buffer{b.vertexBuffer}, []uint32{stride}, []uint32{0})
	ctx.PSSetConstantBuffers(0, []d3d11.Buffer{b.swizzleCB})

	ctx.OMSetBlendState(nil, nil, d3d11.DefaultSampleMask)
	ctx.OMSetDepthStencilState(nil, 0xFFFFFFFF)
	ctx.RSSetState(b.scissorDisabledRS)

	shader.apply(ctx, topology)

	// Unbind the source first in case it is still bound as an input.
	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, nil)
	b.r.SetOneTimeRenderTarget(dest)
	ctx.RSSetViewports([]d3d11.Viewport{viewport(size)})

	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, source)
	ctx.PSSetSamplers(0, []d3d11.SamplerState{b.pointSampler})

	ctx.Draw(count, 0)
	return nil
}

func viewport(size gl.Extents) d3d11.Viewport {
	return d3d11.Viewport{
		Width:    float32(size.Width),
		Height:   float32(size.Height),
		MaxDepth: 1,
	}
}

func (b *Blitter) applyScissor(ctx d3d11.DeviceContext, scissor *gl.Rectangle) {
	if scissor == nil {
		ctx.RSSetState(b.scissorDisabledRS)
		return
	}
	ctx.RSSetScissorRects([]d3d11.Rect{{
		Left:   int32(scissor.X),
		Top:    int32(scissor.Y),
		Right:  int32(scissor.X + scissor.Width),
		Bottom: int32(scissor.Y + scissor.Height),
	}})
	ctx.RSSetState(b.scissorEnabledRS)
}

// sampler returns the sampler state for a GL blit filter. Only NEAREST
// and LINEAR are valid; blits read a single level.
func (b *Blitter) sampler(filter gl.Enum) d3d11.SamplerState {
	mode := format.FilterMode(filter)
	if format.MipmapFilterMode(filter) != gputypes.MipmapFilterModeUndefined {
		mode = gputypes.FilterModeUndefined
	}
	switch mode {
	case gputypes.FilterModeNearest:
		return b.pointSampler
	case gputypes.FilterModeLinear:
		return b.linearSampler
	default:
		panic(fmt.Sprintf("blit: unknown blit filter mode %#x", uint32(filter)))
	}
}

// CopyTexture draws sourceArea of source into destArea of dest, converting
// to destFormat, a GL unsized format such as gl.RGBA or gl.RG_INTEGER.
// A source area deeper than one slice is a 3D blit. filter is gl.NEAREST
// or gl.LINEAR; scissor may be nil.
func (b *Blitter) CopyTexture(source d3d11.ShaderResourceView, sourceArea gl.Box, sourceSize gl.Extents,
	dest d3d11.RenderTargetView, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle,
	destFormat, filter gl.Enum) error {
	ctx := b.r.DeviceContext()
	sampler := b.sampler(filter)

	// destFormat tells integer from float but not the signedness.
	srvDesc := source.Desc()
	params := blitParameters{
		destinationFormat: destFormat,
		signedInteger:     format.GetDXGIFormatInfo(srvDesc.Format).ComponentType == gl.INT,
		is3D:              sourceArea.Depth > 1,
	}
	shader, ok := b.blitShaders.Get(params)
	if !ok {
		return gl.OutOfMemory("Could not find appropriate shader for internal texture blit.")
	}

	stride, count, topology, err := b.mapVertices(shader.write, sourceArea, sourceSize, destArea, destSize, "texture copy")
	if err != nil {
		return err
	}

	pass := b.beginPass()
	defer pass.end()

	ctx.IASetVertexBuffers(0, []d3d11.Buffer{b.vertexBuffer}, []uint32{stride}, []uint32{0})

	ctx.OMSetBlendState(nil, nil, d3d11.DefaultSampleMask)
	ctx.OMSetDepthStencilState(nil, 0xFFFFFFFF)
	b.applyScissor(ctx, scissor)

	shader.apply(ctx, topology)

	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, nil)
	b.r.SetOneTimeRenderTarget(dest)
	ctx.RSSetViewports([]d3d11.Viewport{viewport(destSize)})

	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, source)
	ctx.PSSetSamplers(0, []d3d11.SamplerState{sampler})

	ctx.Draw(count, 0)
	return nil
}

// CopyDepth writes the depth of sourceArea of source into destArea of
// dest through the depth pass-through program. No color target is bound.
func (b *Blitter) CopyDepth(source d3d11.ShaderResourceView, sourceArea gl.Box, sourceSize gl.Extents,
	dest d3d11.DepthStencilView, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle) error {
	ctx := b.r.DeviceContext()

	stride, count, topology, err := b.mapVertices(write2DVertices, sourceArea, sourceSize, destArea, destSize, "texture copy")
	if err != nil {
		return err
	}

	pass := b.beginPass()
	defer pass.end()

	ctx.IASetVertexBuffers(0, []d3d11.Buffer{b.vertexBuffer}, []uint32{stride}, []uint32{0})

	ctx.OMSetBlendState(nil, nil, d3d11.DefaultSampleMask)
	ctx.OMSetDepthStencilState(b.depthStencilState, 0xFFFFFFFF)
	b.applyScissor(ctx, scissor)

	ctx.IASetInputLayout(b.quad2DIL)
	ctx.IASetPrimitiveTopology(topology)
	ctx.VSSetShader(b.quad2DVS)
	ctx.PSSetShader(b.depthPS)
	ctx.GSSetShader(nil)

	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, nil)
	ctx.OMSetRenderTargets(nil, dest)
	ctx.RSSetViewports([]d3d11.Viewport{viewport(destSize)})

	b.r.SetShaderResource(d3d11.ShaderStagePixel, 0, source)
	ctx.PSSetSamplers(0, []d3d11.SamplerState{b.pointSampler})

	ctx.Draw(count, 0)
	return nil
}
