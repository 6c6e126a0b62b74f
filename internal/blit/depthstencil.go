package blit

import (
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/format"
)

func textureFormat(res d3d11.Resource) d3d11.Format {
	switch t := res.(type) {
	case d3d11.Texture2D:
		return t.Desc().Format
	case d3d11.Texture3D:
		return t.Desc().Format
	default:
		return d3d11.FORMAT_UNKNOWN
	}
}

// createStagingTexture copies one subresource of source into a new single
// level staging texture with the given CPU access.
func (b *Blitter) createStagingTexture(source d3d11.Resource, subresource uint32, size gl.Extents,
	access d3d11.CPUAccessFlag) (d3d11.Texture2D, error) {
	staging, err := b.r.Device().CreateTexture2D(&d3d11.Texture2DDesc{
		Width:          uint32(size.Width),
		Height:         uint32(size.Height),
		MipLevels:      1,
		ArraySize:      1,
		Format:         textureFormat(source),
		SampleDesc:     d3d11.SampleDesc{Count: 1},
		Usage:          d3d11.USAGE_STAGING,
		CPUAccessFlags: access,
	}, nil)
	if err != nil {
		b.log.Warn("blit: failed to create staging texture for depth stencil blit",
			slog.Any("err", err))
		return nil, err
	}
	b.r.DeviceContext().CopySubresourceRegion(staging, 0, 0, 0, 0, source, subresource, nil)
	return staging, nil
}

// CopyStencil copies only the stencil bytes of sourceArea into destArea,
// leaving the destination depth untouched.
func (b *Blitter) CopyStencil(source d3d11.Resource, sourceSubresource uint32, sourceArea gl.Box, sourceSize gl.Extents,
	dest d3d11.Resource, destSubresource uint32, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle) error {
	return b.copyDepthStencil(source, sourceSubresource, sourceArea, sourceSize,
		dest, destSubresource, destArea, destSize, scissor, true)
}

// CopyDepthStencil copies whole depth/stencil texels from sourceArea into
// destArea on the CPU. D3D11 cannot copy a partial region of a combined
// depth/stencil resource, so both subresources go through staging
// textures. Rows are resampled with nearest filtering; destArea is clipped
// to destSize and to scissor when it is non-nil.
func (b *Blitter) CopyDepthStencil(source d3d11.Resource, sourceSubresource uint32, sourceArea gl.Box, sourceSize gl.Extents,
	dest d3d11.Resource, destSubresource uint32, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle) error {
	return b.copyDepthStencil(source, sourceSubresource, sourceArea, sourceSize,
		dest, destSubresource, destArea, destSize, scissor, false)
}

func (b *Blitter) copyDepthStencil(source d3d11.Resource, sourceSubresource uint32, sourceArea gl.Box, sourceSize gl.Extents,
	dest d3d11.Resource, destSubresource uint32, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle,
	stencilOnly bool) error {
	ctx := b.r.DeviceContext()

	sourceStaging, srcErr := b.createStagingTexture(source, sourceSubresource, sourceSize, d3d11.CPU_ACCESS_READ)
	// The destination is read back as well so that UpdateSubresource can
	// take its mapped memory as the source.
	destStaging, dstErr := b.createStagingTexture(dest, destSubresource, destSize, d3d11.CPU_ACCESS_READ|d3d11.CPU_ACCESS_WRITE)
	defer safeRelease2D(sourceStaging)
	defer safeRelease2D(destStaging)
	if srcErr != nil || dstErr != nil {
		return gl.OutOfMemory("Failed to create internal staging textures for depth stencil blit.")
	}

	f := textureFormat(source)
	if f != textureFormat(dest) {
		panic("blit: depth stencil blit between different formats")
	}
	info := format.GetDXGIFormatInfo(f)
	pixelSize := info.PixelBytes
	copyOffset, copySize := 0, pixelSize
	if stencilOnly {
		if info.DepthBits%8 != 0 || info.StencilBits%8 != 0 {
			panic("blit: stencil copy needs byte aligned depth and stencil")
		}
		copyOffset = info.DepthBits / 8
		copySize = info.StencilBits / 8
	}

	sourceMapping, err := ctx.Map(sourceStaging, 0, d3d11.MAP_READ, 0)
	if err != nil {
		return gl.OutOfMemory("Failed to map internal source staging texture for depth stencil blit, HRESULT: 0x%X.", d3d11.HRESULT(err))
	}
	defer ctx.Unmap(sourceStaging, 0)

	destMapping, err := ctx.Map(destStaging, 0, d3d11.MAP_WRITE, 0)
	if err != nil {
		return gl.OutOfMemory("Failed to map internal destination staging texture for depth stencil blit, HRESULT: 0x%X.", d3d11.HRESULT(err))
	}
	defer ctx.Unmap(destStaging, 0)

	clipped := clipDestArea(destArea, destSize, scissor)

	// Whole rows can be copied when nothing is stretched, no lookup falls
	// outside the source and complete texels are copied. Clipping keeps
	// the mapping one to one.
	wholeRowCopy := destArea.Width == sourceArea.Width && destArea.Height == sourceArea.Height &&
		sourceArea.X >= 0 && sourceArea.X+sourceArea.Width <= sourceSize.Width &&
		copySize == pixelSize

	srcPitch, dstPitch := int(sourceMapping.RowPitch), int(destMapping.RowPitch)
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		readRow := nearest(y, destArea.Y, destArea.Height, sourceArea.Y, sourceArea.Height, sourceSize.Height)
		writeRow := y

		if wholeRowCopy {
			readX := sourceArea.X + (clipped.X - destArea.X)
			src := sourceMapping.Data[readRow*srcPitch+readX*pixelSize:]
			dst := destMapping.Data[writeRow*dstPitch+clipped.X*pixelSize:]
			copy(dst[:pixelSize*clipped.Width], src)
			continue
		}

		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			readColumn := nearest(x, destArea.X, destArea.Width, sourceArea.X, sourceArea.Width, sourceSize.Width)
			src := sourceMapping.Data[readRow*srcPitch+readColumn*pixelSize+copyOffset:]
			dst := destMapping.Data[writeRow*dstPitch+x*pixelSize+copyOffset:]
			copy(dst[:copySize], src)
		}
	}

	// UpdateSubresource from the mapped staging memory costs an extra copy
	// over CopySubresourceRegion, but the latter hangs some drivers into a
	// TDR when this pattern repeats.
	ctx.UpdateSubresource(dest, destSubresource, nil, destMapping.Data, destMapping.RowPitch, destMapping.DepthPitch)
	return nil
}

// clipDestArea intersects destArea with the destination bounds and the
// scissor. An empty intersection has zero width and height.
func clipDestArea(destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle) gl.Rectangle {
	r := gl.Rectangle{X: destArea.X, Y: destArea.Y, Width: destArea.Width, Height: destArea.Height}
	r, ok := gl.ClipRectangle(r, gl.Rectangle{Width: destSize.Width, Height: destSize.Height})
	if ok && scissor != nil {
		r, ok = gl.ClipRectangle(r, *scissor)
	}
	if !ok {
		return gl.Rectangle{}
	}
	return r
}

func safeRelease2D(t d3d11.Texture2D) {
	if t != nil {
		t.Release()
	}
}
