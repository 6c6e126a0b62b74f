package storage

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/format"
)

// Kind is the GL texture type a storage backs.
type Kind int

// Texture kinds.
const (
	Kind2D Kind = iota
	KindCube
	Kind3D
	Kind2DArray
)

// String returns the kind as used in error messages.
func (k Kind) String() string {
	switch k {
	case Kind2D:
		return "2D"
	case KindCube:
		return "cube"
	case Kind3D:
		return "3D"
	case Kind2DArray:
		return "2D array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Dimension returns the WebGPU texture dimension of the kind.
func (k Kind) Dimension() gputypes.TextureDimension {
	if k == Kind3D {
		return gputypes.TextureDimension3D
	}
	return gputypes.TextureDimension2D
}

// cubeFaceCount is the number of array slices of a cube map.
const cubeFaceCount = 6

// DimensionOps holds the parts of a storage that depend on the texture
// kind: resource and view descriptors, render target layout and the slots
// images associate with. The implementations are the four kinds of this
// package.
type DimensionOps interface {
	Kind() Kind

	createTexture(s *Storage, f d3d11.Format, bind d3d11.BindFlag, swizzle bool) (d3d11.Resource, error)
	srvDesc(s *Storage, baseLevel, mipLevels int, f d3d11.Format) d3d11.ShaderResourceViewDesc
	swizzleRTVDesc(s *Storage, level int) d3d11.RenderTargetViewDesc
	targetKey(index gl.ImageIndex) targetKey
	createRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex) (*RenderTarget, error)
	slot(index gl.ImageIndex) slotKey

	// levelDepth is the slice count of a 3D level, the layer count of an
	// array texture and 1 otherwise.
	levelDepth(s *Storage, level int) int
	// layerCount is the number of D3D11 array slices.
	layerCount(s *Storage) int
}

// swizzleDepth is the number of layers one swizzle blit of level writes.
func swizzleDepth(s *Storage, level int) int {
	if n := s.ops.layerCount(s); n > 1 {
		return n
	}
	return s.ops.levelDepth(s, level)
}

func mipSlice(s *Storage, level int) uint32 {
	return uint32(s.topLevel + level)
}

func wholeLevel(index gl.ImageIndex) targetKey {
	if index.HasLayer() {
		panic(fmt.Sprintf("storage: index %+v selects a layer of a layerless level", index))
	}
	return targetKey{level: index.MipIndex, layer: gl.EntireLevel}
}

func levelLayer(index gl.ImageIndex, layers int) targetKey {
	if index.LayerIndex < 0 || index.LayerIndex >= layers {
		panic(fmt.Sprintf("storage: layer %d out of range [0, %d)", index.LayerIndex, layers))
	}
	return targetKey{level: index.MipIndex, layer: index.LayerIndex}
}

type kind2D struct{}

func (kind2D) Kind() Kind { return Kind2D }

func (kind2D) createTexture(s *Storage, f d3d11.Format, bind d3d11.BindFlag, swizzle bool) (d3d11.Resource, error) {
	mips := s.mipLevels
	// Feature level 9 cannot sample a partial mip chain.
	if s.r.IsLevel9() && !swizzle {
		mips = 1
	}
	return s.r.Device().CreateTexture2D(s.texture2DDesc(f, bind, mips, 1, 0), nil)
}

func (kind2D) srvDesc(s *Storage, baseLevel, mipLevels int, f d3d11.Format) d3d11.ShaderResourceViewDesc {
	mips := uint32(mipLevels)
	if s.r.IsLevel9() {
		mips = d3d11.AllMips
	}
	return d3d11.ShaderResourceViewDesc{
		Format:        f,
		ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2D,
		Texture2D:     d3d11.Tex2DSRV{MostDetailedMip: mipSlice(s, baseLevel), MipLevels: mips},
	}
}

func (kind2D) swizzleRTVDesc(s *Storage, level int) d3d11.RenderTargetViewDesc {
	return d3d11.RenderTargetViewDesc{
		Format:        s.formats.SwizzleRTVFormat,
		ViewDimension: d3d11.RTV_DIMENSION_TEXTURE2D,
		Texture2D:     d3d11.Tex2DRTV{MipSlice: mipSlice(s, level)},
	}
}

func (kind2D) targetKey(index gl.ImageIndex) targetKey { return wholeLevel(index) }

func (kind2D) createRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex) (*RenderTarget, error) {
	level := index.MipIndex
	srv, err := s.GetSRVLevel(level)
	if err != nil {
		return nil, err
	}
	mip := mipSlice(s, level)
	return s.newRenderTarget(tex, level, 1, srv, false,
		&d3d11.RenderTargetViewDesc{
			Format:        s.formats.RTVFormat,
			ViewDimension: d3d11.RTV_DIMENSION_TEXTURE2D,
			Texture2D:     d3d11.Tex2DRTV{MipSlice: mip},
		},
		&d3d11.DepthStencilViewDesc{
			Format:        s.formats.DSVFormat,
			ViewDimension: d3d11.DSV_DIMENSION_TEXTURE2D,
			Texture2D:     d3d11.Tex2DDSV{MipSlice: mip},
		})
}

func (kind2D) slot(index gl.ImageIndex) slotKey { return slotKey{level: index.MipIndex} }

func (kind2D) levelDepth(*Storage, int) int { return 1 }

func (kind2D) layerCount(*Storage) int { return 1 }

type kindCube struct{}

func (kindCube) Kind() Kind { return KindCube }

func (kindCube) createTexture(s *Storage, f d3d11.Format, bind d3d11.BindFlag, _ bool) (d3d11.Resource, error) {
	return s.r.Device().CreateTexture2D(
		s.texture2DDesc(f, bind, s.mipLevels, cubeFaceCount, d3d11.RESOURCE_MISC_TEXTURECUBE), nil)
}

// srvDesc samples integer cube maps as an array of six 2D slices, since
// D3D11 cannot sample them through a cube view.
func (kindCube) srvDesc(s *Storage, baseLevel, mipLevels int, f d3d11.Format) d3d11.ShaderResourceViewDesc {
	desc := d3d11.ShaderResourceViewDesc{Format: f}
	switch format.GetDXGIFormatInfo(f).ComponentType {
	case gl.INT, gl.UNSIGNED_INT:
		desc.ViewDimension = d3d11.SRV_DIMENSION_TEXTURE2DARRAY
		desc.Texture2DArray = d3d11.Tex2DArraySRV{
			MostDetailedMip: mipSlice(s, baseLevel),
			MipLevels:       1,
			ArraySize:       cubeFaceCount,
		}
	default:
		desc.ViewDimension = d3d11.SRV_DIMENSION_TEXTURECUBE
		desc.TextureCube = d3d11.Tex2DSRV{MostDetailedMip: mipSlice(s, baseLevel), MipLevels: uint32(mipLevels)}
	}
	return desc
}

func (kindCube) swizzleRTVDesc(s *Storage, level int) d3d11.RenderTargetViewDesc {
	return d3d11.RenderTargetViewDesc{
		Format:         s.formats.SwizzleRTVFormat,
		ViewDimension:  d3d11.RTV_DIMENSION_TEXTURE2DARRAY,
		Texture2DArray: d3d11.Tex2DArrayRTV{MipSlice: mipSlice(s, level), ArraySize: cubeFaceCount},
	}
}

func (kindCube) targetKey(index gl.ImageIndex) targetKey { return levelLayer(index, cubeFaceCount) }

func (kindCube) createRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex) (*RenderTarget, error) {
	return arraySliceRenderTarget(s, tex, index, true)
}

func (kindCube) slot(index gl.ImageIndex) slotKey {
	k := levelLayer(index, cubeFaceCount)
	return slotKey{level: k.level, layer: k.layer}
}

func (kindCube) levelDepth(*Storage, int) int { return 1 }

func (kindCube) layerCount(*Storage) int { return cubeFaceCount }

type kind3D struct{}

func (kind3D) Kind() Kind { return Kind3D }

func (kind3D) createTexture(s *Storage, f d3d11.Format, bind d3d11.BindFlag, _ bool) (d3d11.Resource, error) {
	return s.r.Device().CreateTexture3D(&d3d11.Texture3DDesc{
		Width:     uint32(s.width),
		Height:    uint32(s.height),
		Depth:     uint32(s.depth),
		MipLevels: uint32(s.mipLevels),
		Format:    f,
		Usage:     d3d11.USAGE_DEFAULT,
		BindFlags: bind,
	}, nil)
}

func (kind3D) srvDesc(s *Storage, baseLevel, mipLevels int, f d3d11.Format) d3d11.ShaderResourceViewDesc {
	return d3d11.ShaderResourceViewDesc{
		Format:        f,
		ViewDimension: d3d11.SRV_DIMENSION_TEXTURE3D,
		Texture3D:     d3d11.Tex2DSRV{MostDetailedMip: mipSlice(s, baseLevel), MipLevels: uint32(mipLevels)},
	}
}

func (kind3D) swizzleRTVDesc(s *Storage, level int) d3d11.RenderTargetViewDesc {
	return d3d11.RenderTargetViewDesc{
		Format:        s.formats.SwizzleRTVFormat,
		ViewDimension: d3d11.RTV_DIMENSION_TEXTURE3D,
		Texture3D:     d3d11.Tex3DRTV{MipSlice: mipSlice(s, level), WSize: d3d11.AllMips},
	}
}

// targetKey addresses the whole volume of a level, or a single slice of
// it when the index has a layer.
func (kind3D) targetKey(index gl.ImageIndex) targetKey {
	if !index.HasLayer() {
		return wholeLevel(index)
	}
	if index.LayerIndex < 0 {
		panic(fmt.Sprintf("storage: negative 3D slice %d", index.LayerIndex))
	}
	return targetKey{level: index.MipIndex, layer: index.LayerIndex}
}

func (kind3D) createRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex) (*RenderTarget, error) {
	level := index.MipIndex
	if s.formats.RTVFormat == d3d11.FORMAT_UNKNOWN {
		panic("storage: 3D render target of a format without a render target view")
	}
	mip := mipSlice(s, level)

	if !index.HasLayer() {
		srv, err := s.GetSRVLevel(level)
		if err != nil {
			return nil, err
		}
		return s.newRenderTarget(tex, level, s.LevelDepth(level), srv, false,
			&d3d11.RenderTargetViewDesc{
				Format:        s.formats.RTVFormat,
				ViewDimension: d3d11.RTV_DIMENSION_TEXTURE3D,
				Texture3D:     d3d11.Tex3DRTV{MipSlice: mip, WSize: d3d11.AllMips},
			}, nil)
	}

	// A single slice has no matching shader resource view.
	return s.newRenderTarget(tex, level, 1, nil, false,
		&d3d11.RenderTargetViewDesc{
			Format:        s.formats.RTVFormat,
			ViewDimension: d3d11.RTV_DIMENSION_TEXTURE3D,
			Texture3D:     d3d11.Tex3DRTV{MipSlice: mip, FirstWSlice: uint32(index.LayerIndex), WSize: 1},
		}, nil)
}

func (kind3D) slot(index gl.ImageIndex) slotKey { return slotKey{level: index.MipIndex} }

func (kind3D) levelDepth(s *Storage, level int) int {
	return format.LevelSize(s.depth, s.topLevel+level)
}

func (kind3D) layerCount(*Storage) int { return 1 }

type kind2DArray struct{}

func (kind2DArray) Kind() Kind { return Kind2DArray }

func (kind2DArray) createTexture(s *Storage, f d3d11.Format, bind d3d11.BindFlag, _ bool) (d3d11.Resource, error) {
	return s.r.Device().CreateTexture2D(s.texture2DDesc(f, bind, s.mipLevels, s.depth, 0), nil)
}

func (kind2DArray) srvDesc(s *Storage, baseLevel, mipLevels int, f d3d11.Format) d3d11.ShaderResourceViewDesc {
	return d3d11.ShaderResourceViewDesc{
		Format:        f,
		ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2DARRAY,
		Texture2DArray: d3d11.Tex2DArraySRV{
			MostDetailedMip: mipSlice(s, baseLevel),
			MipLevels:       uint32(mipLevels),
			ArraySize:       uint32(s.depth),
		},
	}
}

func (kind2DArray) swizzleRTVDesc(s *Storage, level int) d3d11.RenderTargetViewDesc {
	return d3d11.RenderTargetViewDesc{
		Format:         s.formats.SwizzleRTVFormat,
		ViewDimension:  d3d11.RTV_DIMENSION_TEXTURE2DARRAY,
		Texture2DArray: d3d11.Tex2DArrayRTV{MipSlice: mipSlice(s, level), ArraySize: uint32(s.depth)},
	}
}

func (kind2DArray) targetKey(index gl.ImageIndex) targetKey { return levelLayerOf(index) }

func levelLayerOf(index gl.ImageIndex) targetKey {
	if !index.HasLayer() {
		panic(fmt.Sprintf("storage: 2D array index %+v has no layer", index))
	}
	return targetKey{level: index.MipIndex, layer: index.LayerIndex}
}

func (kind2DArray) createRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex) (*RenderTarget, error) {
	if index.LayerIndex < 0 || index.LayerIndex >= s.depth {
		panic(fmt.Sprintf("storage: layer %d out of range [0, %d)", index.LayerIndex, s.depth))
	}
	if s.formats.RTVFormat == d3d11.FORMAT_UNKNOWN {
		panic("storage: 2D array render target of a format without a render target view")
	}
	return arraySliceRenderTarget(s, tex, index, false)
}

func (kind2DArray) slot(index gl.ImageIndex) slotKey {
	k := levelLayerOf(index)
	return slotKey{level: k.level, layer: k.layer}
}

func (kind2DArray) levelDepth(s *Storage, _ int) int { return s.depth }

func (kind2DArray) layerCount(s *Storage) int { return s.depth }

// arraySliceRenderTarget builds the target of one array slice of a level.
// Each target owns a single slice shader resource view, which is sampled
// as a 2D texture.
func arraySliceRenderTarget(s *Storage, tex d3d11.Resource, index gl.ImageIndex, depthStencil bool) (*RenderTarget, error) {
	level, layer := index.MipIndex, uint32(index.LayerIndex)
	mip := mipSlice(s, level)

	srv, err := s.r.Device().CreateShaderResourceView(tex, &d3d11.ShaderResourceViewDesc{
		Format:        s.formats.SRVFormat,
		ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2DARRAY,
		Texture2DArray: d3d11.Tex2DArraySRV{
			MostDetailedMip: mip,
			MipLevels:       1,
			FirstArraySlice: layer,
			ArraySize:       1,
		},
	})
	if err != nil {
		return nil, gl.OutOfMemory("Failed to create internal shader resource view for texture storage, result: 0x%X.",
			d3d11.HRESULT(err))
	}

	var dsv *d3d11.DepthStencilViewDesc
	if depthStencil {
		dsv = &d3d11.DepthStencilViewDesc{
			Format:         s.formats.DSVFormat,
			ViewDimension:  d3d11.DSV_DIMENSION_TEXTURE2DARRAY,
			Texture2DArray: d3d11.Tex2DArrayDSV{MipSlice: mip, FirstArraySlice: layer, ArraySize: 1},
		}
	}
	return s.newRenderTarget(tex, level, 1, srv, true,
		&d3d11.RenderTargetViewDesc{
			Format:         s.formats.RTVFormat,
			ViewDimension:  d3d11.RTV_DIMENSION_TEXTURE2DARRAY,
			Texture2DArray: d3d11.Tex2DArrayRTV{MipSlice: mip, FirstArraySlice: layer, ArraySize: 1},
		}, dsv)
}
