package format

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

func TestTextureFormatInfo(t *testing.T) {
	tests := []struct {
		name                   string
		internalFormat         gl.Enum
		tex, srv, rtv, dsv     d3d11.Format
		swizzleTex, swizzleSRV d3d11.Format
	}{
		{"rgba8 keeps own swizzle", gl.RGBA8,
			d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM},
		{"r8 widens to rgba8", gl.R8,
			d3d11.FORMAT_R8_UNORM, d3d11.FORMAT_R8_UNORM, d3d11.FORMAT_R8_UNORM, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM},
		{"d24s8 swizzles through float", gl.DEPTH24_STENCIL8,
			d3d11.FORMAT_R24G8_TYPELESS, d3d11.FORMAT_R24_UNORM_X8_TYPELESS, d3d11.FORMAT_UNKNOWN, d3d11.FORMAT_D24_UNORM_S8_UINT,
			d3d11.FORMAT_R32G32B32A32_FLOAT, d3d11.FORMAT_R32G32B32A32_FLOAT},
		{"r16ui", gl.R16UI,
			d3d11.FORMAT_R16_UINT, d3d11.FORMAT_R16_UINT, d3d11.FORMAT_R16_UINT, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R16G16B16A16_UINT, d3d11.FORMAT_R16G16B16A16_UINT},
		{"rg8i", gl.RG8I,
			d3d11.FORMAT_R8G8_SINT, d3d11.FORMAT_R8G8_SINT, d3d11.FORMAT_R8G8_SINT, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R8G8B8A8_SINT, d3d11.FORMAT_R8G8B8A8_SINT},
		{"r11g11b10 uses half", gl.R11F_G11F_B10F,
			d3d11.FORMAT_R11G11B10_FLOAT, d3d11.FORMAT_R11G11B10_FLOAT, d3d11.FORMAT_R11G11B10_FLOAT, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R16G16B16A16_FLOAT, d3d11.FORMAT_R16G16B16A16_FLOAT},
		{"dxt1", gl.COMPRESSED_RGBA_S3TC_DXT1_EXT,
			d3d11.FORMAT_BC1_UNORM, d3d11.FORMAT_BC1_UNORM, d3d11.FORMAT_UNKNOWN, d3d11.FORMAT_UNKNOWN,
			d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetTextureFormatInfo(tt.internalFormat)
			if info.TexFormat != tt.tex || info.SRVFormat != tt.srv || info.RTVFormat != tt.rtv || info.DSVFormat != tt.dsv {
				t.Errorf("formats = %d/%d/%d/%d, want %d/%d/%d/%d",
					info.TexFormat, info.SRVFormat, info.RTVFormat, info.DSVFormat, tt.tex, tt.srv, tt.rtv, tt.dsv)
			}
			if info.SwizzleTexFormat != tt.swizzleTex || info.SwizzleSRVFormat != tt.swizzleSRV {
				t.Errorf("swizzle formats = %d/%d, want %d/%d",
					info.SwizzleTexFormat, info.SwizzleSRVFormat, tt.swizzleTex, tt.swizzleSRV)
			}
		})
	}
}

func TestRenderFormat(t *testing.T) {
	if got := GetTextureFormatInfo(gl.RGBA8).RenderFormat; got != d3d11.FORMAT_R8G8B8A8_UNORM {
		t.Errorf("RGBA8 render format = %d", got)
	}
	if got := GetTextureFormatInfo(gl.DEPTH_COMPONENT16).RenderFormat; got != d3d11.FORMAT_D16_UNORM {
		t.Errorf("DEPTH_COMPONENT16 render format = %d", got)
	}
}

func TestLoadFunction(t *testing.T) {
	info := GetTextureFormatInfo(gl.RGB8)
	if info.LoadFunction(gl.UNSIGNED_BYTE) == nil {
		t.Error("RGB8/UNSIGNED_BYTE has no load function")
	}
	if info.LoadFunction(gl.FLOAT) != nil {
		t.Error("RGB8/FLOAT should not have a load function")
	}

	in := []byte{1, 2, 3}
	out := make([]byte, 4)
	info.LoadFunction(gl.UNSIGNED_BYTE)(1, 1, 1, in, 3, 3, out, 4, 4)
	if out[3] != 0xFF {
		t.Errorf("RGB8 load alpha = %d, want 255", out[3])
	}
}

func TestEveryTextureFormatHasDXGIInfo(t *testing.T) {
	for internalFormat, info := range textureInfos {
		for _, f := range []d3d11.Format{info.TexFormat, info.SRVFormat, info.RTVFormat, info.DSVFormat, info.SwizzleTexFormat} {
			if f == d3d11.FORMAT_UNKNOWN {
				continue
			}
			if GetDXGIFormatInfo(f).PixelBytes == 0 {
				t.Errorf("internal format %#x uses DXGI format %d without layout info", uint32(internalFormat), f)
			}
		}
	}
}

func TestDXGIDepthStencilLayout(t *testing.T) {
	tests := []struct {
		format                                         d3d11.Format
		depthBits, depthOffset, stencilBits, stencilOf int
	}{
		{d3d11.FORMAT_R16_TYPELESS, 16, 0, 0, 0},
		{d3d11.FORMAT_D16_UNORM, 16, 0, 0, 0},
		{d3d11.FORMAT_R24G8_TYPELESS, 24, 0, 8, 24},
		{d3d11.FORMAT_D24_UNORM_S8_UINT, 24, 0, 8, 24},
		{d3d11.FORMAT_R32_TYPELESS, 32, 0, 0, 0},
		{d3d11.FORMAT_D32_FLOAT, 32, 0, 0, 0},
		{d3d11.FORMAT_R32G8X24_TYPELESS, 32, 0, 8, 32},
		{d3d11.FORMAT_D32_FLOAT_S8X24_UINT, 32, 0, 8, 32},
		{d3d11.FORMAT_R8G8B8A8_UNORM, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		info := GetDXGIFormatInfo(tt.format)
		if info.DepthBits != tt.depthBits || info.DepthOffset != tt.depthOffset ||
			info.StencilBits != tt.stencilBits || info.StencilOffset != tt.stencilOf {
			t.Errorf("format %d depth/stencil = %d@%d %d@%d, want %d@%d %d@%d", tt.format,
				info.DepthBits, info.DepthOffset, info.StencilBits, info.StencilOffset,
				tt.depthBits, tt.depthOffset, tt.stencilBits, tt.stencilOf)
		}
	}
}

func TestMakeValidSize(t *testing.T) {
	tests := []struct {
		name         string
		isImage      bool
		format       gl.Enum
		w, h         int
		wantW, wantH int
		wantUpsample int
	}{
		{"uncompressed untouched", true, gl.RGBA8, 3, 5, 3, 5, 0},
		{"compressed image 1x1", true, gl.COMPRESSED_RGBA_S3TC_DXT1_EXT, 1, 1, 4, 4, 2},
		{"compressed image 6x4", true, gl.COMPRESSED_RGBA_S3TC_DXT1_EXT, 6, 4, 12, 8, 1},
		{"compressed storage 6x4 untouched", false, gl.COMPRESSED_RGBA_S3TC_DXT1_EXT, 6, 4, 6, 4, 0},
		{"compressed storage 2x8", false, gl.COMPRESSED_RGBA_S3TC_DXT5, 2, 8, 4, 16, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.w, tt.h
			up := MakeValidSize(tt.isImage, tt.format, &w, &h)
			if w != tt.wantW || h != tt.wantH || up != tt.wantUpsample {
				t.Errorf("MakeValidSize() = %dx%d (%d), want %dx%d (%d)", w, h, up, tt.wantW, tt.wantH, tt.wantUpsample)
			}
		})
	}
}

func TestMipLevelCount(t *testing.T) {
	tests := []struct{ w, h, d, want int }{
		{1, 1, 1, 1},
		{2, 1, 1, 2},
		{256, 128, 1, 9},
		{5, 3, 1, 3},
		{4, 4, 16, 5},
	}
	for _, tt := range tests {
		if got := MipLevelCount(tt.w, tt.h, tt.d); got != tt.want {
			t.Errorf("MipLevelCount(%d,%d,%d) = %d, want %d", tt.w, tt.h, tt.d, got, tt.want)
		}
	}
	if got := LevelSize(5, 2); got != 1 {
		t.Errorf("LevelSize(5,2) = %d, want 1", got)
	}
	if got := LevelSize(5, 9); got != 1 {
		t.Errorf("LevelSize(5,9) = %d, want 1", got)
	}
}

func TestWebGPUFormat(t *testing.T) {
	tests := []struct {
		in   d3d11.Format
		want gputypes.TextureFormat
	}{
		{d3d11.FORMAT_B8G8R8A8_UNORM, gputypes.TextureFormatBGRA8Unorm},
		{d3d11.FORMAT_R8G8B8A8_UNORM_SRGB, gputypes.TextureFormatRGBA8UnormSrgb},
		{d3d11.FORMAT_R16G16B16A16_FLOAT, gputypes.TextureFormatRGBA16Float},
		{d3d11.FORMAT_R9G9B9E5_SHAREDEXP, gputypes.TextureFormatRGB9E5Ufloat},
		{d3d11.FORMAT_R24G8_TYPELESS, gputypes.TextureFormatDepth24PlusStencil8},
		{d3d11.FORMAT_R32G8X24_TYPELESS, gputypes.TextureFormatDepth32FloatStencil8},
		{d3d11.FORMAT_BC3_UNORM, gputypes.TextureFormatBC3RGBAUnorm},
		{d3d11.FORMAT_A8_UNORM, gputypes.TextureFormatUndefined},
		{d3d11.FORMAT_B5G6R5_UNORM, gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		if got := WebGPUFormat(tt.in); got != tt.want {
			t.Errorf("WebGPUFormat(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterMode(t *testing.T) {
	tests := []struct {
		filter gl.Enum
		want   gputypes.FilterMode
		mip    gputypes.MipmapFilterMode
	}{
		{gl.NEAREST, gputypes.FilterModeNearest, gputypes.MipmapFilterModeUndefined},
		{gl.LINEAR, gputypes.FilterModeLinear, gputypes.MipmapFilterModeUndefined},
		{gl.NEAREST_MIPMAP_LINEAR, gputypes.FilterModeNearest, gputypes.MipmapFilterModeLinear},
		{gl.LINEAR_MIPMAP_NEAREST, gputypes.FilterModeLinear, gputypes.MipmapFilterModeNearest},
		{gl.RGBA, gputypes.FilterModeUndefined, gputypes.MipmapFilterModeUndefined},
	}
	for _, tt := range tests {
		if got := FilterMode(tt.filter); got != tt.want {
			t.Errorf("FilterMode(%#x) = %v, want %v", uint32(tt.filter), got, tt.want)
		}
		if got := MipmapFilterMode(tt.filter); got != tt.mip {
			t.Errorf("MipmapFilterMode(%#x) = %v, want %v", uint32(tt.filter), got, tt.mip)
		}
	}
}
