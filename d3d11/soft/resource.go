package soft

import (
	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/internal/format"
)

// subresource is one mip level of one array slice.
type subresource struct {
	width, height, depth int
	rowPitch             int
	depthPitch           int
	data                 []byte
	mapped               bool
}

type object struct {
	dev      *Device
	kind     string
	released bool
}

func (o *object) Release() {
	if o.released {
		o.dev.doubleReleases++
		return
	}
	o.released = true
	o.dev.live[o.kind]--
}

// Released reports whether Release has been called.
func (o *object) Released() bool { return o.released }

// texture holds the memory shared by 2D and 3D textures.
type texture struct {
	object
	dim        d3d11.ResourceDimension
	format     d3d11.Format
	mipLevels  int
	arraySize  int
	usage      d3d11.Usage
	cpuAccess  d3d11.CPUAccessFlag
	blockW     int
	blockH     int
	pixelBytes int
	subs       []*subresource
}

func newTexture(dev *Device, kind string, dim d3d11.ResourceDimension, f d3d11.Format, width, height, depth, mips, arraySize int, usage d3d11.Usage, cpu d3d11.CPUAccessFlag) *texture {
	info := format.GetDXGIFormatInfo(f)
	t := &texture{
		object:     object{dev: dev, kind: kind},
		dim:        dim,
		format:     f,
		mipLevels:  mips,
		arraySize:  arraySize,
		usage:      usage,
		cpuAccess:  cpu,
		blockW:     max(info.BlockWidth, 1),
		blockH:     max(info.BlockHeight, 1),
		pixelBytes: info.PixelBytes,
	}
	for slice := 0; slice < arraySize; slice++ {
		for mip := 0; mip < mips; mip++ {
			w := format.LevelSize(width, mip)
			h := format.LevelSize(height, mip)
			d := format.LevelSize(depth, mip)
			rowPitch := (w + t.blockW - 1) / t.blockW * t.pixelBytes
			rows := (h + t.blockH - 1) / t.blockH
			t.subs = append(t.subs, &subresource{
				width:      w,
				height:     h,
				depth:      d,
				rowPitch:   rowPitch,
				depthPitch: rowPitch * rows,
				data:       make([]byte, rowPitch*rows*d),
			})
		}
	}
	return t
}

func (t *texture) Dimension() d3d11.ResourceDimension { return t.dim }

func (t *texture) sub(i uint32) *subresource {
	if int(i) >= len(t.subs) {
		return nil
	}
	return t.subs[i]
}

// Texture2D is a soft ID3D11Texture2D.
type Texture2D struct {
	*texture
	desc d3d11.Texture2DDesc
}

// Desc returns the creation descriptor with MipLevels resolved.
func (t *Texture2D) Desc() d3d11.Texture2DDesc { return t.desc }

// Texture3D is a soft ID3D11Texture3D.
type Texture3D struct {
	*texture
	desc d3d11.Texture3DDesc
}

// Desc returns the creation descriptor with MipLevels resolved.
func (t *Texture3D) Desc() d3d11.Texture3DDesc { return t.desc }

// Buffer is a soft ID3D11Buffer.
type Buffer struct {
	object
	desc   d3d11.BufferDesc
	data   []byte
	mapped bool
}

func (b *Buffer) Dimension() d3d11.ResourceDimension { return d3d11.RESOURCE_DIMENSION_BUFFER }

// Desc returns the creation descriptor.
func (b *Buffer) Desc() d3d11.BufferDesc { return b.desc }

// Bytes returns the buffer memory.
func (b *Buffer) Bytes() []byte { return b.data }

// ShaderResourceView is a soft ID3D11ShaderResourceView.
type ShaderResourceView struct {
	object
	res  d3d11.Resource
	desc d3d11.ShaderResourceViewDesc
}

func (v *ShaderResourceView) ViewedResource() d3d11.Resource     { return v.res }
func (v *ShaderResourceView) Desc() d3d11.ShaderResourceViewDesc { return v.desc }

// RenderTargetView is a soft ID3D11RenderTargetView.
type RenderTargetView struct {
	object
	res  d3d11.Resource
	desc d3d11.RenderTargetViewDesc
}

func (v *RenderTargetView) ViewedResource() d3d11.Resource   { return v.res }
func (v *RenderTargetView) Desc() d3d11.RenderTargetViewDesc { return v.desc }

// DepthStencilView is a soft ID3D11DepthStencilView.
type DepthStencilView struct {
	object
	res  d3d11.Resource
	desc d3d11.DepthStencilViewDesc
}

func (v *DepthStencilView) ViewedResource() d3d11.Resource   { return v.res }
func (v *DepthStencilView) Desc() d3d11.DepthStencilViewDesc { return v.desc }

// State is a soft pipeline state object. Desc holds the creation
// descriptor by value.
type State struct {
	object
	Desc any
}

// Shader is a soft shader object holding its bytecode.
type Shader struct {
	object
	Bytecode []byte
}

// InputLayout is a soft input layout.
type InputLayout struct {
	object
	Elements []d3d11.InputElementDesc
}

func textureOf(res d3d11.Resource) *texture {
	switch r := res.(type) {
	case *Texture2D:
		return r.texture
	case *Texture3D:
		return r.texture
	default:
		return nil
	}
}

// ReadSubresource returns the memory of one subresource of a soft texture
// together with its row and depth pitches. It returns nil for resources
// that do not belong to this package.
func ReadSubresource(res d3d11.Resource, subresource uint32) (data []byte, rowPitch, depthPitch int) {
	t := textureOf(res)
	if t == nil {
		if b, ok := res.(*Buffer); ok && subresource == 0 {
			return b.data, len(b.data), len(b.data)
		}
		return nil, 0, 0
	}
	s := t.sub(subresource)
	if s == nil {
		return nil, 0, 0
	}
	return s.data, s.rowPitch, s.depthPitch
}
