package format

import (
	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

// DXGIInfo describes the memory layout of a DXGI format.
type DXGIInfo struct {
	// PixelBytes is the size of one pixel, or of one block for
	// block-compressed formats.
	PixelBytes  int
	BlockWidth  int
	BlockHeight int

	DepthBits     int
	DepthOffset   int
	StencilBits   int
	StencilOffset int

	// ComponentType is the GL component type texels decode to. Typeless
	// formats report gl.NONE.
	ComponentType gl.Enum
	// InternalFormat is the GL format that reads back this layout without
	// conversion, or gl.NONE.
	InternalFormat gl.Enum
}

func plain(pixelBytes int, componentType, internalFormat gl.Enum) DXGIInfo {
	return DXGIInfo{
		PixelBytes: pixelBytes, BlockWidth: 1, BlockHeight: 1,
		ComponentType: componentType, InternalFormat: internalFormat,
	}
}

func depth(pixelBytes, depthBits, depthOffset, stencilBits, stencilOffset int, componentType, internalFormat gl.Enum) DXGIInfo {
	info := plain(pixelBytes, componentType, internalFormat)
	info.DepthBits, info.DepthOffset = depthBits, depthOffset
	info.StencilBits, info.StencilOffset = stencilBits, stencilOffset
	return info
}

func block(blockBytes int, internalFormat gl.Enum) DXGIInfo {
	return DXGIInfo{
		PixelBytes: blockBytes, BlockWidth: 4, BlockHeight: 4,
		ComponentType: gl.UNSIGNED_NORMALIZED, InternalFormat: internalFormat,
	}
}

const (
	unorm = gl.UNSIGNED_NORMALIZED
	snorm = gl.SIGNED_NORMALIZED
	float = gl.FLOAT
	uint_ = gl.UNSIGNED_INT
	sint  = gl.INT
	none  = gl.NONE
)

var dxgiInfos = map[d3d11.Format]DXGIInfo{
	d3d11.FORMAT_R32G32B32A32_TYPELESS: plain(16, none, none),
	d3d11.FORMAT_R32G32B32A32_FLOAT:    plain(16, float, gl.RGBA32F),
	d3d11.FORMAT_R32G32B32A32_UINT:     plain(16, uint_, gl.RGBA32UI),
	d3d11.FORMAT_R32G32B32A32_SINT:     plain(16, sint, gl.RGBA32I),
	d3d11.FORMAT_R32G32B32_TYPELESS:    plain(12, none, none),
	d3d11.FORMAT_R32G32B32_FLOAT:       plain(12, float, gl.RGB32F),
	d3d11.FORMAT_R32G32B32_UINT:        plain(12, uint_, none),
	d3d11.FORMAT_R32G32B32_SINT:        plain(12, sint, none),

	d3d11.FORMAT_R16G16B16A16_TYPELESS: plain(8, none, none),
	d3d11.FORMAT_R16G16B16A16_FLOAT:    plain(8, float, gl.RGBA16F),
	d3d11.FORMAT_R16G16B16A16_UNORM:    plain(8, unorm, none),
	d3d11.FORMAT_R16G16B16A16_UINT:     plain(8, uint_, gl.RGBA16UI),
	d3d11.FORMAT_R16G16B16A16_SNORM:    plain(8, snorm, none),
	d3d11.FORMAT_R16G16B16A16_SINT:     plain(8, sint, gl.RGBA16I),

	d3d11.FORMAT_R32G32_TYPELESS: plain(8, none, none),
	d3d11.FORMAT_R32G32_FLOAT:    plain(8, float, gl.RG32F),
	d3d11.FORMAT_R32G32_UINT:     plain(8, uint_, none),
	d3d11.FORMAT_R32G32_SINT:     plain(8, sint, none),

	d3d11.FORMAT_R32G8X24_TYPELESS:        depth(8, 32, 0, 8, 32, none, none),
	d3d11.FORMAT_D32_FLOAT_S8X24_UINT:     depth(8, 32, 0, 8, 32, float, gl.DEPTH32F_STENCIL8),
	d3d11.FORMAT_R32_FLOAT_X8X24_TYPELESS: depth(8, 32, 0, 0, 0, float, none),
	d3d11.FORMAT_X32_TYPELESS_G8X24_UINT:  depth(8, 0, 0, 8, 32, uint_, none),

	d3d11.FORMAT_R10G10B10A2_TYPELESS: plain(4, none, none),
	d3d11.FORMAT_R10G10B10A2_UNORM:    plain(4, unorm, gl.RGB10_A2),
	d3d11.FORMAT_R10G10B10A2_UINT:     plain(4, uint_, none),
	d3d11.FORMAT_R11G11B10_FLOAT:      plain(4, float, gl.R11F_G11F_B10F),

	d3d11.FORMAT_R8G8B8A8_TYPELESS:   plain(4, none, none),
	d3d11.FORMAT_R8G8B8A8_UNORM:      plain(4, unorm, gl.RGBA8),
	d3d11.FORMAT_R8G8B8A8_UNORM_SRGB: plain(4, unorm, gl.SRGB8_ALPHA8),
	d3d11.FORMAT_R8G8B8A8_UINT:       plain(4, uint_, gl.RGBA8UI),
	d3d11.FORMAT_R8G8B8A8_SNORM:      plain(4, snorm, gl.RGBA8_SNORM),
	d3d11.FORMAT_R8G8B8A8_SINT:       plain(4, sint, gl.RGBA8I),

	d3d11.FORMAT_R16G16_TYPELESS: plain(4, none, none),
	d3d11.FORMAT_R16G16_FLOAT:    plain(4, float, gl.RG16F),
	d3d11.FORMAT_R16G16_UNORM:    plain(4, unorm, none),
	d3d11.FORMAT_R16G16_UINT:     plain(4, uint_, none),
	d3d11.FORMAT_R16G16_SNORM:    plain(4, snorm, none),
	d3d11.FORMAT_R16G16_SINT:     plain(4, sint, none),

	d3d11.FORMAT_R32_TYPELESS: depth(4, 32, 0, 0, 0, none, none),
	d3d11.FORMAT_D32_FLOAT:    depth(4, 32, 0, 0, 0, float, gl.DEPTH_COMPONENT32F),
	d3d11.FORMAT_R32_FLOAT:    plain(4, float, gl.R32F),
	d3d11.FORMAT_R32_UINT:     plain(4, uint_, gl.R32UI),
	d3d11.FORMAT_R32_SINT:     plain(4, sint, gl.R32I),

	d3d11.FORMAT_R24G8_TYPELESS:        depth(4, 24, 0, 8, 24, none, none),
	d3d11.FORMAT_D24_UNORM_S8_UINT:     depth(4, 24, 0, 8, 24, unorm, gl.DEPTH24_STENCIL8),
	d3d11.FORMAT_R24_UNORM_X8_TYPELESS: depth(4, 24, 0, 0, 0, unorm, none),
	d3d11.FORMAT_X24_TYPELESS_G8_UINT:  depth(4, 0, 0, 8, 24, uint_, none),

	d3d11.FORMAT_R8G8_TYPELESS: plain(2, none, none),
	d3d11.FORMAT_R8G8_UNORM:    plain(2, unorm, gl.RG8),
	d3d11.FORMAT_R8G8_UINT:     plain(2, uint_, gl.RG8UI),
	d3d11.FORMAT_R8G8_SNORM:    plain(2, snorm, none),
	d3d11.FORMAT_R8G8_SINT:     plain(2, sint, gl.RG8I),

	d3d11.FORMAT_R16_TYPELESS: depth(2, 16, 0, 0, 0, none, none),
	d3d11.FORMAT_R16_FLOAT:    plain(2, float, gl.R16F),
	d3d11.FORMAT_D16_UNORM:    depth(2, 16, 0, 0, 0, unorm, gl.DEPTH_COMPONENT16),
	d3d11.FORMAT_R16_UNORM:    plain(2, unorm, none),
	d3d11.FORMAT_R16_UINT:     plain(2, uint_, gl.R16UI),
	d3d11.FORMAT_R16_SNORM:    plain(2, snorm, none),
	d3d11.FORMAT_R16_SINT:     plain(2, sint, gl.R16I),

	d3d11.FORMAT_R8_TYPELESS: plain(1, none, none),
	d3d11.FORMAT_R8_UNORM:    plain(1, unorm, gl.R8),
	d3d11.FORMAT_R8_UINT:     plain(1, uint_, gl.R8UI),
	d3d11.FORMAT_R8_SNORM:    plain(1, snorm, gl.R8_SNORM),
	d3d11.FORMAT_R8_SINT:     plain(1, sint, gl.R8I),
	d3d11.FORMAT_A8_UNORM:    plain(1, unorm, gl.ALPHA8_EXT),

	d3d11.FORMAT_R9G9B9E5_SHAREDEXP: plain(4, float, none),

	d3d11.FORMAT_BC1_UNORM: block(8, gl.COMPRESSED_RGBA_S3TC_DXT1_EXT),
	d3d11.FORMAT_BC2_UNORM: block(16, gl.COMPRESSED_RGBA_S3TC_DXT3),
	d3d11.FORMAT_BC3_UNORM: block(16, gl.COMPRESSED_RGBA_S3TC_DXT5),

	d3d11.FORMAT_B5G6R5_UNORM:      plain(2, unorm, gl.RGB565),
	d3d11.FORMAT_B5G5R5A1_UNORM:    plain(2, unorm, gl.RGB5_A1),
	d3d11.FORMAT_B8G8R8A8_UNORM:    plain(4, unorm, gl.BGRA8_EXT),
	d3d11.FORMAT_B8G8R8X8_UNORM:    plain(4, unorm, none),
	d3d11.FORMAT_B8G8R8A8_TYPELESS: plain(4, none, none),
	d3d11.FORMAT_B4G4R4A4_UNORM:    plain(2, unorm, gl.RGBA4),
}

// GetDXGIFormatInfo returns the layout of a DXGI format. FORMAT_UNKNOWN and
// unlisted formats yield the zero DXGIInfo.
func GetDXGIFormatInfo(f d3d11.Format) DXGIInfo {
	return dxgiInfos[f]
}
