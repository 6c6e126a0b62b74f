package image

import (
	"fmt"
	goimage "image"

	"golang.org/x/image/draw"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

// GenerateMipmap fills dest with a bilinear reduction of source, which must
// have the same format. Each slice of a 3D dest averages the two source
// slices it covers.
//
// Only 8-bit unsigned normalized formats with one or four channels are
// reduced on the CPU. Other formats report INVALID_OPERATION and must be
// generated by a storage.
func GenerateMipmap(dest, source *Image) error {
	if dest.internalFormat != source.internalFormat {
		panic(fmt.Sprintf("image: mipmap from format %#x into %#x",
			uint32(source.internalFormat), uint32(dest.internalFormat)))
	}
	if dest.empty() || source.empty() {
		return nil
	}

	var wrap func(pix []byte, stride, w, h int) draw.Image
	switch dest.formats.TexFormat {
	case d3d11.FORMAT_R8G8B8A8_UNORM, d3d11.FORMAT_R8G8B8A8_UNORM_SRGB, d3d11.FORMAT_B8G8R8A8_UNORM:
		// Channels are filtered independently, so BGRA reduces like RGBA.
		wrap = func(pix []byte, stride, w, h int) draw.Image {
			return &goimage.RGBA{Pix: pix, Stride: stride, Rect: goimage.Rect(0, 0, w, h)}
		}
	case d3d11.FORMAT_R8_UNORM, d3d11.FORMAT_A8_UNORM:
		wrap = func(pix []byte, stride, w, h int) draw.Image {
			return &goimage.Gray{Pix: pix, Stride: stride, Rect: goimage.Rect(0, 0, w, h)}
		}
	default:
		return gl.Errorf(gl.INVALID_OPERATION, "CPU mipmap generation is not supported for DXGI format %d.",
			uint32(dest.formats.TexFormat))
	}

	src, err := source.pixels()
	if err != nil {
		return err
	}
	dst, err := dest.pixels()
	if err != nil {
		return err
	}

	slice := func(img *Image, data []byte, z int) draw.Image {
		return wrap(data[z*img.depthPitch:(z+1)*img.depthPitch], img.rowPitch, img.width, img.height)
	}

	var scratch []byte
	for z := 0; z < dest.depth; z++ {
		out := slice(dest, dst, z)
		first := min(2*z, source.depth-1)
		draw.BiLinear.Scale(out, out.Bounds(), slice(source, src, first), goimage.Rect(0, 0, source.width, source.height), draw.Src, nil)

		second := min(2*z+1, source.depth-1)
		if second == first {
			continue
		}
		if scratch == nil {
			scratch = make([]byte, dest.depthPitch)
		}
		tmp := wrap(scratch, dest.rowPitch, dest.width, dest.height)
		draw.BiLinear.Scale(tmp, tmp.Bounds(), slice(source, src, second), goimage.Rect(0, 0, source.width, source.height), draw.Src, nil)

		plane := dst[z*dest.depthPitch : (z+1)*dest.depthPitch]
		for k := range plane {
			plane[k] = uint8((uint16(plane[k]) + uint16(scratch[k]) + 1) / 2)
		}
	}
	dest.dirty = true
	return nil
}
