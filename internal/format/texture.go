package format

import (
	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/loadimage"
)

// TextureInfo is the D3D11 representation chosen for a GL internal format.
type TextureInfo struct {
	TexFormat    d3d11.Format
	SRVFormat    d3d11.Format
	RTVFormat    d3d11.Format
	DSVFormat    d3d11.Format
	RenderFormat d3d11.Format

	// Swizzle formats hold the four-channel intermediate a swizzled view
	// samples from.
	SwizzleTexFormat d3d11.Format
	SwizzleSRVFormat d3d11.Format
	SwizzleRTVFormat d3d11.Format

	loads map[gl.Enum]loadimage.LoadFunc
}

// LoadFunction returns the conversion from client pixels of type typ to
// TexFormat, or nil when the type is not accepted for this format.
func (t TextureInfo) LoadFunction(typ gl.Enum) loadimage.LoadFunc {
	return t.loads[typ]
}

type loads = map[gl.Enum]loadimage.LoadFunc

type entry struct {
	tex, srv, rtv, dsv d3d11.Format
	loads              loads
}

const unknown = d3d11.FORMAT_UNKNOWN

func color(f d3d11.Format, l loads) entry {
	return entry{tex: f, srv: f, rtv: f, dsv: unknown, loads: l}
}

func sampleOnly(f d3d11.Format, l loads) entry {
	return entry{tex: f, srv: f, rtv: unknown, dsv: unknown, loads: l}
}

var native1, native2, native4, native8, native16 = loadimage.Native(1), loadimage.Native(2),
	loadimage.Native(4), loadimage.Native(8), loadimage.Native(16)

var textureEntries = map[gl.Enum]entry{
	gl.RGBA8: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{
		gl.UNSIGNED_BYTE:          native4,
		gl.UNSIGNED_SHORT_4_4_4_4: loadimage.RGBA4ToRGBA8,
		gl.UNSIGNED_SHORT_5_5_5_1: loadimage.RGB5A1ToRGBA8,
	}),
	gl.RGB8: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{
		gl.UNSIGNED_BYTE:        loadimage.RGB8ToRGBA8(0xFF),
		gl.UNSIGNED_SHORT_5_6_5: loadimage.R5G6B5ToRGBA8,
	}),
	gl.RGBA4: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{
		gl.UNSIGNED_BYTE:          native4,
		gl.UNSIGNED_SHORT_4_4_4_4: loadimage.RGBA4ToRGBA8,
	}),
	gl.RGB5_A1: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{
		gl.UNSIGNED_BYTE:          native4,
		gl.UNSIGNED_SHORT_5_5_5_1: loadimage.RGB5A1ToRGBA8,
	}),
	gl.RGB565: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{
		gl.UNSIGNED_BYTE:        loadimage.RGB8ToRGBA8(0xFF),
		gl.UNSIGNED_SHORT_5_6_5: loadimage.R5G6B5ToRGBA8,
	}),
	gl.RGB10_A2:     color(d3d11.FORMAT_R10G10B10A2_UNORM, loads{gl.UNSIGNED_INT_2_10_10_10_REV: native4}),
	gl.R8:           color(d3d11.FORMAT_R8_UNORM, loads{gl.UNSIGNED_BYTE: native1}),
	gl.RG8:          color(d3d11.FORMAT_R8G8_UNORM, loads{gl.UNSIGNED_BYTE: native2}),
	gl.R8_SNORM:     sampleOnly(d3d11.FORMAT_R8_SNORM, loads{gl.BYTE: native1}),
	gl.RGBA8_SNORM:  sampleOnly(d3d11.FORMAT_R8G8B8A8_SNORM, loads{gl.BYTE: native4}),
	gl.SRGB8_ALPHA8: color(d3d11.FORMAT_R8G8B8A8_UNORM_SRGB, loads{gl.UNSIGNED_BYTE: native4}),
	gl.BGRA8_EXT:    color(d3d11.FORMAT_B8G8R8A8_UNORM, loads{gl.UNSIGNED_BYTE: native4}),

	gl.R16F:    color(d3d11.FORMAT_R16_FLOAT, loads{gl.HALF_FLOAT: native2, gl.FLOAT: loadimage.Float32ToFloat16(1)}),
	gl.RG16F:   color(d3d11.FORMAT_R16G16_FLOAT, loads{gl.HALF_FLOAT: native4, gl.FLOAT: loadimage.Float32ToFloat16(2)}),
	gl.RGBA16F: color(d3d11.FORMAT_R16G16B16A16_FLOAT, loads{gl.HALF_FLOAT: native8, gl.FLOAT: loadimage.Float32ToFloat16(4)}),
	gl.R32F:    color(d3d11.FORMAT_R32_FLOAT, loads{gl.FLOAT: native4}),
	gl.RG32F:   color(d3d11.FORMAT_R32G32_FLOAT, loads{gl.FLOAT: native8}),
	gl.RGB32F:  color(d3d11.FORMAT_R32G32B32A32_FLOAT, loads{gl.FLOAT: loadimage.RGB32FToRGBA32F}),
	gl.RGBA32F: color(d3d11.FORMAT_R32G32B32A32_FLOAT, loads{gl.FLOAT: native16}),

	gl.R11F_G11F_B10F: color(d3d11.FORMAT_R11G11B10_FLOAT, loads{gl.UNSIGNED_INT_10F_11F_11F_REV: native4}),

	gl.R8UI:     color(d3d11.FORMAT_R8_UINT, loads{gl.UNSIGNED_BYTE: native1}),
	gl.R8I:      color(d3d11.FORMAT_R8_SINT, loads{gl.BYTE: native1}),
	gl.R16UI:    color(d3d11.FORMAT_R16_UINT, loads{gl.UNSIGNED_SHORT: native2}),
	gl.R16I:     color(d3d11.FORMAT_R16_SINT, loads{gl.SHORT: native2}),
	gl.R32UI:    color(d3d11.FORMAT_R32_UINT, loads{gl.UNSIGNED_INT: native4}),
	gl.R32I:     color(d3d11.FORMAT_R32_SINT, loads{gl.INT: native4}),
	gl.RG8UI:    color(d3d11.FORMAT_R8G8_UINT, loads{gl.UNSIGNED_BYTE: native2}),
	gl.RG8I:     color(d3d11.FORMAT_R8G8_SINT, loads{gl.BYTE: native2}),
	gl.RGB8UI:   color(d3d11.FORMAT_R8G8B8A8_UINT, loads{gl.UNSIGNED_BYTE: loadimage.RGB8ToRGBA8(1)}),
	gl.RGB8I:    color(d3d11.FORMAT_R8G8B8A8_SINT, loads{gl.BYTE: loadimage.RGB8ToRGBA8(1)}),
	gl.RGBA8UI:  color(d3d11.FORMAT_R8G8B8A8_UINT, loads{gl.UNSIGNED_BYTE: native4}),
	gl.RGBA8I:   color(d3d11.FORMAT_R8G8B8A8_SINT, loads{gl.BYTE: native4}),
	gl.RGBA16UI: color(d3d11.FORMAT_R16G16B16A16_UINT, loads{gl.UNSIGNED_SHORT: native8}),
	gl.RGBA16I:  color(d3d11.FORMAT_R16G16B16A16_SINT, loads{gl.SHORT: native8}),
	gl.RGBA32UI: color(d3d11.FORMAT_R32G32B32A32_UINT, loads{gl.UNSIGNED_INT: native16}),
	gl.RGBA32I:  color(d3d11.FORMAT_R32G32B32A32_SINT, loads{gl.INT: native16}),

	gl.ALPHA8_EXT:            color(d3d11.FORMAT_A8_UNORM, loads{gl.UNSIGNED_BYTE: native1}),
	gl.LUMINANCE8_EXT:        color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{gl.UNSIGNED_BYTE: loadimage.L8ToRGBA8}),
	gl.LUMINANCE8_ALPHA8_EXT: color(d3d11.FORMAT_R8G8B8A8_UNORM, loads{gl.UNSIGNED_BYTE: loadimage.LA8ToRGBA8}),

	gl.DEPTH_COMPONENT16: {
		tex: d3d11.FORMAT_R16_TYPELESS, srv: d3d11.FORMAT_R16_UNORM, dsv: d3d11.FORMAT_D16_UNORM,
		loads: loads{gl.UNSIGNED_SHORT: native2, gl.UNSIGNED_INT: loadimage.R32ToR16},
	},
	gl.DEPTH_COMPONENT24: {
		tex: d3d11.FORMAT_R24G8_TYPELESS, srv: d3d11.FORMAT_R24_UNORM_X8_TYPELESS, dsv: d3d11.FORMAT_D24_UNORM_S8_UINT,
		loads: loads{gl.UNSIGNED_INT: loadimage.R32ToR24G8},
	},
	gl.DEPTH_COMPONENT32F: {
		tex: d3d11.FORMAT_R32_TYPELESS, srv: d3d11.FORMAT_R32_FLOAT, dsv: d3d11.FORMAT_D32_FLOAT,
		loads: loads{gl.FLOAT: native4},
	},
	gl.DEPTH24_STENCIL8: {
		tex: d3d11.FORMAT_R24G8_TYPELESS, srv: d3d11.FORMAT_R24_UNORM_X8_TYPELESS, dsv: d3d11.FORMAT_D24_UNORM_S8_UINT,
		loads: loads{gl.UNSIGNED_INT_24_8: loadimage.R32ToR24G8},
	},
	gl.DEPTH32F_STENCIL8: {
		tex: d3d11.FORMAT_R32G8X24_TYPELESS, srv: d3d11.FORMAT_R32_FLOAT_X8X24_TYPELESS, dsv: d3d11.FORMAT_D32_FLOAT_S8X24_UINT,
		loads: loads{gl.FLOAT_32_UNSIGNED_INT_24_8_REV: native8},
	},

	gl.COMPRESSED_RGB_S3TC_DXT1_EXT:  sampleOnly(d3d11.FORMAT_BC1_UNORM, nil),
	gl.COMPRESSED_RGBA_S3TC_DXT1_EXT: sampleOnly(d3d11.FORMAT_BC1_UNORM, nil),
	gl.COMPRESSED_RGBA_S3TC_DXT3:     sampleOnly(d3d11.FORMAT_BC2_UNORM, nil),
	gl.COMPRESSED_RGBA_S3TC_DXT5:     sampleOnly(d3d11.FORMAT_BC3_UNORM, nil),
}

type swizzleKey struct {
	bits          int
	componentType gl.Enum
}

type swizzleFormats struct {
	tex, srv, rtv d3d11.Format
}

func same(f d3d11.Format) swizzleFormats { return swizzleFormats{f, f, f} }

var swizzleTable = map[swizzleKey]swizzleFormats{
	{8, unorm}:  same(d3d11.FORMAT_R8G8B8A8_UNORM),
	{16, unorm}: same(d3d11.FORMAT_R16G16B16A16_UNORM),
	{24, unorm}: same(d3d11.FORMAT_R32G32B32A32_FLOAT),
	{32, unorm}: same(d3d11.FORMAT_R32G32B32A32_FLOAT),
	{8, snorm}:  same(d3d11.FORMAT_R8G8B8A8_SNORM),
	{16, snorm}: same(d3d11.FORMAT_R16G16B16A16_SNORM),
	{16, float}: same(d3d11.FORMAT_R16G16B16A16_FLOAT),
	{32, float}: same(d3d11.FORMAT_R32G32B32A32_FLOAT),
	{8, uint_}:  same(d3d11.FORMAT_R8G8B8A8_UINT),
	{16, uint_}: same(d3d11.FORMAT_R16G16B16A16_UINT),
	{32, uint_}: same(d3d11.FORMAT_R32G32B32A32_UINT),
	{8, sint}:   same(d3d11.FORMAT_R8G8B8A8_SINT),
	{16, sint}:  same(d3d11.FORMAT_R16G16B16A16_SINT),
	{32, sint}:  same(d3d11.FORMAT_R32G32B32A32_SINT),
}

var textureInfos = buildTextureInfos()

func buildTextureInfos() map[gl.Enum]TextureInfo {
	infos := make(map[gl.Enum]TextureInfo, len(textureEntries))
	for internalFormat, e := range textureEntries {
		info := TextureInfo{
			TexFormat: e.tex,
			SRVFormat: e.srv,
			RTVFormat: e.rtv,
			DSVFormat: e.dsv,
			loads:     e.loads,
		}
		if e.rtv != unknown {
			info.RenderFormat = e.rtv
		} else {
			info.RenderFormat = e.dsv
		}

		glInfo := gl.GetInternalFormatInfo(internalFormat)
		if glInfo.ComponentCount == 4 && e.tex != unknown && e.srv != unknown && e.rtv != unknown {
			info.SwizzleTexFormat, info.SwizzleSRVFormat, info.SwizzleRTVFormat = e.tex, e.srv, e.rtv
		} else {
			bits := 8
			if !glInfo.Compressed {
				bits = roundUp8(glInfo.MaxChannelBits())
			}
			s := swizzleTable[swizzleKey{bits: bits, componentType: glInfo.ComponentType}]
			info.SwizzleTexFormat, info.SwizzleSRVFormat, info.SwizzleRTVFormat = s.tex, s.srv, s.rtv
		}
		infos[internalFormat] = info
	}
	return infos
}

func roundUp8(bits int) int {
	if bits <= 0 {
		return 8
	}
	return (bits + 7) / 8 * 8
}

// GetTextureFormatInfo returns the D3D11 representation of a GL internal
// format. Unsupported formats yield a TextureInfo with every format
// FORMAT_UNKNOWN.
func GetTextureFormatInfo(internalFormat gl.Enum) TextureInfo {
	return textureInfos[internalFormat]
}
