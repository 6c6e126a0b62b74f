package storage

import (
	"fmt"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/format"
	"github.com/gogpu/texstore/internal/membuf"
)

// ImageFormat describes the client image an upload comes from.
type ImageFormat interface {
	InternalFormat() gl.Enum
	Size() gl.Extents
}

func roundUp(v, m int) int {
	if m <= 1 {
		return v
	}
	return (v + m - 1) / m * m
}

// UpdateSubresourceLevel copies area of a source subresource into the same
// area of the image addressed by index.
//
// D3D11 cannot copy part of a depth/stencil subresource, so a partial copy
// of a depth or stencil format is done on the CPU by the blitter. Every
// other copy is a CopySubresourceRegion with the source box rounded up to
// whole compression blocks.
func (s *Storage) UpdateSubresourceLevel(src d3d11.Resource, srcSubresource uint32, index gl.ImageIndex, area gl.Box) error {
	if src == nil {
		panic("storage: nil source resource")
	}
	level := index.MipIndex
	s.InvalidateSwizzleCacheLevel(level)

	size := s.subresourceExtents(level)
	fullCopy := area == gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}

	dst, err := s.Resource()
	if err != nil {
		return err
	}
	dstSubresource := s.SubresourceIndex(index)

	info := format.GetDXGIFormatInfo(s.formats.TexFormat)
	if !fullCopy && (info.DepthBits > 0 || info.StencilBits > 0) {
		return s.r.Blitter().CopyDepthStencil(src, srcSubresource, area, size,
			dst, dstSubresource, area, size, nil)
	}

	var srcBox *d3d11.Box
	if !fullCopy {
		srcBox = &d3d11.Box{
			Left:   uint32(area.X),
			Top:    uint32(area.Y),
			Front:  uint32(area.Z),
			Right:  uint32(area.X + roundUp(area.Width, info.BlockWidth)),
			Bottom: uint32(area.Y + roundUp(area.Height, info.BlockHeight)),
			Back:   uint32(area.Z + area.Depth),
		}
	}
	s.r.DeviceContext().CopySubresourceRegion(dst, dstSubresource, uint32(area.X), uint32(area.Y), uint32(area.Z),
		src, srcSubresource, srcBox)
	return nil
}

// CopySubresourceLevel copies the whole image addressed by index into a
// destination subresource at the origin of region.
func (s *Storage) CopySubresourceLevel(dst d3d11.Resource, dstSubresource uint32, index gl.ImageIndex, region gl.Box) error {
	if dst == nil {
		panic("storage: nil destination resource")
	}
	src, err := s.Resource()
	if err != nil {
		return err
	}
	srcSubresource := s.SubresourceIndex(index)
	s.r.DeviceContext().CopySubresourceRegion(dst, dstSubresource, uint32(region.X), uint32(region.Y), uint32(region.Z),
		src, srcSubresource, nil)
	return nil
}

// GenerateMipmap downsamples the image at sourceIndex into destIndex with
// linear filtering. Both indices must address the same layer.
func (s *Storage) GenerateMipmap(sourceIndex, destIndex gl.ImageIndex) error {
	if sourceIndex.LayerIndex != destIndex.LayerIndex {
		panic(fmt.Sprintf("storage: mipmap generation between layers %d and %d",
			sourceIndex.LayerIndex, destIndex.LayerIndex))
	}
	s.InvalidateSwizzleCacheLevel(destIndex.MipIndex)

	source, err := s.GetRenderTarget(sourceIndex)
	if err != nil {
		return err
	}
	dest, err := s.GetRenderTarget(destIndex)
	if err != nil {
		return err
	}

	return s.r.Blitter().CopyTexture(source.SRV, source.Area(), source.Extents(),
		dest.RTV, dest.Area(), dest.Extents(), nil,
		gl.GetInternalFormatInfo(source.InternalFormat).Format, gl.LINEAR)
}

// CopyToStorage copies the whole resource into dest, which must have the
// same layout, and marks every swizzle level of dest stale.
func (s *Storage) CopyToStorage(dest *Storage) error {
	if dest == nil {
		panic("storage: nil destination storage")
	}
	src, err := s.Resource()
	if err != nil {
		return err
	}
	dst, err := dest.Resource()
	if err != nil {
		return err
	}
	s.r.DeviceContext().CopyResource(dst, src)
	dest.InvalidateSwizzleCache()
	return nil
}

// SetData converts client pixels of the given type into the resource
// layout and uploads them to the image addressed by index. A nil destBox
// updates the whole image, whose size is taken from image.
//
// Depth formats only accept whole-image updates. Compressed formats are
// not accepted.
func (s *Storage) SetData(index gl.ImageIndex, image ImageFormat, destBox *gl.Box, typ gl.Enum,
	unpack gl.PixelUnpackState, pixels []byte) error {
	res, err := s.Resource()
	if err != nil {
		return err
	}
	level := index.MipIndex
	dstSubresource := s.SubresourceIndex(index)

	internalFormat := image.InternalFormat()
	info := gl.GetInternalFormatInfo(internalFormat)

	size := s.subresourceExtents(level)
	fullUpdate := destBox == nil || *destBox == gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
	if info.DepthBits > 0 && !fullUpdate {
		panic("storage: partial update of a depth format")
	}
	if info.Compressed {
		panic("storage: SetData does not accept compressed formats")
	}

	extents := image.Size()
	width, height, depth := extents.Width, extents.Height, extents.Depth
	if destBox != nil {
		width, height, depth = destBox.Width, destBox.Height, destBox.Depth
	}
	srcRowPitch := info.ComputeRowPitch(typ, width, unpack.Alignment)
	srcDepthPitch := info.ComputeDepthPitch(typ, width, height, unpack.Alignment)

	texInfo := format.GetTextureFormatInfo(internalFormat)
	load := texInfo.LoadFunction(typ)
	if load == nil {
		panic(fmt.Sprintf("storage: no load function for format %#x and type %#x", uint32(internalFormat), uint32(typ)))
	}

	pixelBytes := format.GetDXGIFormatInfo(texInfo.TexFormat).PixelBytes
	bufferRowPitch := pixelBytes * width
	bufferDepthPitch := bufferRowPitch * height
	if bufferDepthPitch*depth == 0 {
		return nil
	}

	var conversion membuf.MemoryBuffer
	if !conversion.Resize(bufferDepthPitch * depth) {
		return gl.OutOfMemory("Failed to allocate internal buffer.")
	}
	load(width, height, depth, pixels, srcRowPitch, srcDepthPitch, conversion.Data(), bufferRowPitch, bufferDepthPitch)

	var box *d3d11.Box
	if !fullUpdate {
		box = &d3d11.Box{
			Left:   uint32(destBox.X),
			Top:    uint32(destBox.Y),
			Front:  uint32(destBox.Z),
			Right:  uint32(destBox.X + destBox.Width),
			Bottom: uint32(destBox.Y + destBox.Height),
			Back:   uint32(destBox.Z + destBox.Depth),
		}
	}
	s.InvalidateSwizzleCacheLevel(level)
	s.r.DeviceContext().UpdateSubresource(res, dstSubresource, box, conversion.Data(),
		uint32(bufferRowPitch), uint32(bufferDepthPitch))
	return nil
}
