package blit

import (
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/shaders"
)

// blitParameters selects a CopyTexture program.
type blitParameters struct {
	destinationFormat gl.Enum
	signedInteger     bool
	is3D              bool
}

// swizzleParameters selects a SwizzleTexture program. The view dimension
// is part of the key because integer cube storages are sampled through
// 2D array views.
type swizzleParameters struct {
	destinationType gl.Enum
	viewDimension   d3d11.SRVDimension
}

// shaderSet is everything bound for one program. The input layout and the
// vertex and geometry shaders are shared and owned by the Blitter; pixel
// shaders are owned by its pixelShaders cache.
type shaderSet struct {
	write  vertexWriter
	layout d3d11.InputLayout
	vs     d3d11.VertexShader
	gs     d3d11.GeometryShader
	ps     d3d11.PixelShader
}

func (s shaderSet) apply(ctx d3d11.DeviceContext, topology d3d11.PrimitiveTopology) {
	ctx.IASetInputLayout(s.layout)
	ctx.IASetPrimitiveTopology(topology)
	ctx.VSSetShader(s.vs)
	ctx.PSSetShader(s.ps)
	ctx.GSSetShader(s.gs)
}

func (b *Blitter) set2D(ps d3d11.PixelShader) shaderSet {
	return shaderSet{write: write2DVertices, layout: b.quad2DIL, vs: b.quad2DVS, ps: ps}
}

func (b *Blitter) set3D(ps d3d11.PixelShader) shaderSet {
	return shaderSet{write: write3DVertices, layout: b.quad3DIL, vs: b.quad3DVS, gs: b.quad3DGS, ps: ps}
}

type blitEntry struct {
	format  gl.Enum
	signed  bool
	program string
}

// Programs per destination format. BGRA and alpha-only targets use the
// RGBA program; the render target format places the channels.
var (
	float2DBlits = []blitEntry{
		{gl.RGBA, false, shaders.PSPassthroughRGBA2D},
		{gl.BGRA_EXT, false, shaders.PSPassthroughRGBA2D},
		{gl.RGB, false, shaders.PSPassthroughRGB2D},
		{gl.RG, false, shaders.PSPassthroughRG2D},
		{gl.RED, false, shaders.PSPassthroughR2D},
		{gl.ALPHA, false, shaders.PSPassthroughRGBA2D},
		{gl.LUMINANCE, false, shaders.PSPassthroughLum2D},
		{gl.LUMINANCE_ALPHA, false, shaders.PSPassthroughLumAlpha2D},
	}
	integer2DBlits = []blitEntry{
		{gl.RGBA_INTEGER, false, shaders.PSPassthroughRGBA2DUI},
		{gl.RGBA_INTEGER, true, shaders.PSPassthroughRGBA2DI},
		{gl.RGB_INTEGER, false, shaders.PSPassthroughRGB2DUI},
		{gl.RGB_INTEGER, true, shaders.PSPassthroughRGB2DI},
		{gl.RG_INTEGER, false, shaders.PSPassthroughRG2DUI},
		{gl.RG_INTEGER, true, shaders.PSPassthroughRG2DI},
		{gl.RED_INTEGER, false, shaders.PSPassthroughR2DUI},
		{gl.RED_INTEGER, true, shaders.PSPassthroughR2DI},
	}
	blits3D = []blitEntry{
		{gl.RGBA, false, shaders.PSPassthroughRGBA3D},
		{gl.RGBA_INTEGER, false, shaders.PSPassthroughRGBA3DUI},
		{gl.RGBA_INTEGER, true, shaders.PSPassthroughRGBA3DI},
		{gl.BGRA_EXT, false, shaders.PSPassthroughRGBA3D},
		{gl.RGB, false, shaders.PSPassthroughRGB3D},
		{gl.RGB_INTEGER, false, shaders.PSPassthroughRGB3DUI},
		{gl.RGB_INTEGER, true, shaders.PSPassthroughRGB3DI},
		{gl.RG, false, shaders.PSPassthroughRG3D},
		{gl.RG_INTEGER, false, shaders.PSPassthroughRG3DUI},
		{gl.RG_INTEGER, true, shaders.PSPassthroughRG3DI},
		{gl.RED, false, shaders.PSPassthroughR3D},
		{gl.RED_INTEGER, false, shaders.PSPassthroughR3DUI},
		{gl.RED_INTEGER, true, shaders.PSPassthroughR3DI},
		{gl.ALPHA, false, shaders.PSPassthroughRGBA3D},
		{gl.LUMINANCE, false, shaders.PSPassthroughLum3D},
		{gl.LUMINANCE_ALPHA, false, shaders.PSPassthroughLumAlpha3D},
	}
)

type swizzleEntry struct {
	class     gl.Enum
	dimension d3d11.SRVDimension
	program   string
}

var swizzles = []swizzleEntry{
	{gl.FLOAT, d3d11.SRV_DIMENSION_TEXTURE2D, shaders.PSSwizzleF2D},
	{gl.UNSIGNED_INT, d3d11.SRV_DIMENSION_TEXTURE2D, shaders.PSSwizzleUI2D},
	{gl.INT, d3d11.SRV_DIMENSION_TEXTURE2D, shaders.PSSwizzleI2D},

	{gl.FLOAT, d3d11.SRV_DIMENSION_TEXTURECUBE, shaders.PSSwizzleF2DArray},
	{gl.UNSIGNED_INT, d3d11.SRV_DIMENSION_TEXTURECUBE, shaders.PSSwizzleUI2DArray},
	{gl.INT, d3d11.SRV_DIMENSION_TEXTURECUBE, shaders.PSSwizzleI2DArray},

	{gl.FLOAT, d3d11.SRV_DIMENSION_TEXTURE3D, shaders.PSSwizzleF3D},
	{gl.UNSIGNED_INT, d3d11.SRV_DIMENSION_TEXTURE3D, shaders.PSSwizzleUI3D},
	{gl.INT, d3d11.SRV_DIMENSION_TEXTURE3D, shaders.PSSwizzleI3D},

	{gl.FLOAT, d3d11.SRV_DIMENSION_TEXTURE2DARRAY, shaders.PSSwizzleF2DArray},
	{gl.UNSIGNED_INT, d3d11.SRV_DIMENSION_TEXTURE2DARRAY, shaders.PSSwizzleUI2DArray},
	{gl.INT, d3d11.SRV_DIMENSION_TEXTURE2DARRAY, shaders.PSSwizzleI2DArray},
}

// buildShaderMap fills both shader maps. Feature level 9 gets only the 2D
// float blits: it has no integer formats, geometry shaders or swizzles.
func (b *Blitter) buildShaderMap() error {
	level9 := b.r.IsLevel9()

	add2D := func(entries []blitEntry) error {
		for _, e := range entries {
			ps, err := b.pixelShader(e.program)
			if err != nil {
				return err
			}
			b.blitShaders.Set(blitParameters{destinationFormat: e.format, signedInteger: e.signed}, b.set2D(ps))
		}
		return nil
	}

	if err := add2D(float2DBlits); err != nil {
		return err
	}
	if !level9 {
		if err := add2D(integer2DBlits); err != nil {
			return err
		}
		for _, e := range blits3D {
			ps, err := b.pixelShader(e.program)
			if err != nil {
				return err
			}
			b.blitShaders.Set(blitParameters{destinationFormat: e.format, signedInteger: e.signed, is3D: true}, b.set3D(ps))
		}
		for _, e := range swizzles {
			ps, err := b.pixelShader(e.program)
			if err != nil {
				return err
			}
			set := b.set3D(ps)
			if e.dimension == d3d11.SRV_DIMENSION_TEXTURE2D {
				set = b.set2D(ps)
			}
			b.swizzleShaders.Set(swizzleParameters{destinationType: e.class, viewDimension: e.dimension}, set)
		}
	}

	b.log.Debug("blit: shader maps built",
		slog.Bool("level9", level9),
		slog.Int("blit", b.blitShaders.Len()),
		slog.Int("swizzle", b.swizzleShaders.Len()),
		slog.Int("pixelShaders", b.pixelShaders.Len()))
	return nil
}

// clearShaderMap drops both maps and releases the pixel shaders behind
// them, including the depth program.
func (b *Blitter) clearShaderMap() {
	b.blitShaders.Clear(nil)
	b.swizzleShaders.Clear(nil)
	b.pixelShaders.Clear(func(ps d3d11.PixelShader) { ps.Release() })
}
