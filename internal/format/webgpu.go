package format

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

var webgpuFormats = map[d3d11.Format]gputypes.TextureFormat{
	d3d11.FORMAT_R8_UNORM: gputypes.TextureFormatR8Unorm,
	d3d11.FORMAT_R8_SNORM: gputypes.TextureFormatR8Snorm,
	d3d11.FORMAT_R8_UINT:  gputypes.TextureFormatR8Uint,
	d3d11.FORMAT_R8_SINT:  gputypes.TextureFormatR8Sint,

	d3d11.FORMAT_R16_UNORM: gputypes.TextureFormatR16Unorm,
	d3d11.FORMAT_R16_SNORM: gputypes.TextureFormatR16Snorm,
	d3d11.FORMAT_R16_UINT:  gputypes.TextureFormatR16Uint,
	d3d11.FORMAT_R16_SINT:  gputypes.TextureFormatR16Sint,
	d3d11.FORMAT_R16_FLOAT: gputypes.TextureFormatR16Float,

	d3d11.FORMAT_R8G8_UNORM: gputypes.TextureFormatRG8Unorm,
	d3d11.FORMAT_R8G8_SNORM: gputypes.TextureFormatRG8Snorm,
	d3d11.FORMAT_R8G8_UINT:  gputypes.TextureFormatRG8Uint,
	d3d11.FORMAT_R8G8_SINT:  gputypes.TextureFormatRG8Sint,

	d3d11.FORMAT_R32_FLOAT: gputypes.TextureFormatR32Float,
	d3d11.FORMAT_R32_UINT:  gputypes.TextureFormatR32Uint,
	d3d11.FORMAT_R32_SINT:  gputypes.TextureFormatR32Sint,

	d3d11.FORMAT_R16G16_UNORM: gputypes.TextureFormatRG16Unorm,
	d3d11.FORMAT_R16G16_SNORM: gputypes.TextureFormatRG16Snorm,
	d3d11.FORMAT_R16G16_UINT:  gputypes.TextureFormatRG16Uint,
	d3d11.FORMAT_R16G16_SINT:  gputypes.TextureFormatRG16Sint,
	d3d11.FORMAT_R16G16_FLOAT: gputypes.TextureFormatRG16Float,

	d3d11.FORMAT_R8G8B8A8_UNORM:      gputypes.TextureFormatRGBA8Unorm,
	d3d11.FORMAT_R8G8B8A8_UNORM_SRGB: gputypes.TextureFormatRGBA8UnormSrgb,
	d3d11.FORMAT_R8G8B8A8_SNORM:      gputypes.TextureFormatRGBA8Snorm,
	d3d11.FORMAT_R8G8B8A8_UINT:       gputypes.TextureFormatRGBA8Uint,
	d3d11.FORMAT_R8G8B8A8_SINT:       gputypes.TextureFormatRGBA8Sint,
	d3d11.FORMAT_B8G8R8A8_UNORM:      gputypes.TextureFormatBGRA8Unorm,

	d3d11.FORMAT_R10G10B10A2_UINT:   gputypes.TextureFormatRGB10A2Uint,
	d3d11.FORMAT_R10G10B10A2_UNORM:  gputypes.TextureFormatRGB10A2Unorm,
	d3d11.FORMAT_R11G11B10_FLOAT:    gputypes.TextureFormatRG11B10Ufloat,
	d3d11.FORMAT_R9G9B9E5_SHAREDEXP: gputypes.TextureFormatRGB9E5Ufloat,

	d3d11.FORMAT_R32G32_FLOAT: gputypes.TextureFormatRG32Float,
	d3d11.FORMAT_R32G32_UINT:  gputypes.TextureFormatRG32Uint,
	d3d11.FORMAT_R32G32_SINT:  gputypes.TextureFormatRG32Sint,

	d3d11.FORMAT_R16G16B16A16_UNORM: gputypes.TextureFormatRGBA16Unorm,
	d3d11.FORMAT_R16G16B16A16_SNORM: gputypes.TextureFormatRGBA16Snorm,
	d3d11.FORMAT_R16G16B16A16_UINT:  gputypes.TextureFormatRGBA16Uint,
	d3d11.FORMAT_R16G16B16A16_SINT:  gputypes.TextureFormatRGBA16Sint,
	d3d11.FORMAT_R16G16B16A16_FLOAT: gputypes.TextureFormatRGBA16Float,

	d3d11.FORMAT_R32G32B32A32_FLOAT: gputypes.TextureFormatRGBA32Float,
	d3d11.FORMAT_R32G32B32A32_UINT:  gputypes.TextureFormatRGBA32Uint,
	d3d11.FORMAT_R32G32B32A32_SINT:  gputypes.TextureFormatRGBA32Sint,

	// Depth resources are typeless so that they can be sampled.
	d3d11.FORMAT_D16_UNORM:            gputypes.TextureFormatDepth16Unorm,
	d3d11.FORMAT_R16_TYPELESS:         gputypes.TextureFormatDepth16Unorm,
	d3d11.FORMAT_D24_UNORM_S8_UINT:    gputypes.TextureFormatDepth24PlusStencil8,
	d3d11.FORMAT_R24G8_TYPELESS:       gputypes.TextureFormatDepth24PlusStencil8,
	d3d11.FORMAT_D32_FLOAT:            gputypes.TextureFormatDepth32Float,
	d3d11.FORMAT_R32_TYPELESS:         gputypes.TextureFormatDepth32Float,
	d3d11.FORMAT_D32_FLOAT_S8X24_UINT: gputypes.TextureFormatDepth32FloatStencil8,
	d3d11.FORMAT_R32G8X24_TYPELESS:    gputypes.TextureFormatDepth32FloatStencil8,

	d3d11.FORMAT_BC1_UNORM: gputypes.TextureFormatBC1RGBAUnorm,
	d3d11.FORMAT_BC2_UNORM: gputypes.TextureFormatBC2RGBAUnorm,
	d3d11.FORMAT_BC3_UNORM: gputypes.TextureFormatBC3RGBAUnorm,
}

// WebGPUFormat maps a DXGI format onto the equivalent WebGPU texture format
// for sharing textures with gogpu renderers. Formats without an exact
// counterpart map to TextureFormatUndefined.
func WebGPUFormat(f d3d11.Format) gputypes.TextureFormat {
	if wf, ok := webgpuFormats[f]; ok {
		return wf
	}
	return gputypes.TextureFormatUndefined
}

// FilterMode returns the texel filter of a GL filter. The mipmap variants
// report the filter applied within a level. Other values map to
// FilterModeUndefined.
func FilterMode(filter gl.Enum) gputypes.FilterMode {
	switch filter {
	case gl.NEAREST, gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST_MIPMAP_LINEAR:
		return gputypes.FilterModeNearest
	case gl.LINEAR, gl.LINEAR_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_LINEAR:
		return gputypes.FilterModeLinear
	default:
		return gputypes.FilterModeUndefined
	}
}

// MipmapFilterMode returns the filter between levels of a GL minification
// filter. Filters without mipmapping map to MipmapFilterModeUndefined.
func MipmapFilterMode(filter gl.Enum) gputypes.MipmapFilterMode {
	switch filter {
	case gl.NEAREST_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_NEAREST:
		return gputypes.MipmapFilterModeNearest
	case gl.NEAREST_MIPMAP_LINEAR, gl.LINEAR_MIPMAP_LINEAR:
		return gputypes.MipmapFilterModeLinear
	default:
		return gputypes.MipmapFilterModeUndefined
	}
}
