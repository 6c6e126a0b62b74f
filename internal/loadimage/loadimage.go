// Package loadimage converts client pixel rows into the native layout of a
// DXGI format.
//
// Every function has the LoadFunc signature: it reads width x height x depth
// pixels from input with the given client pitches and writes them to
// output with the native pitches. Multi-byte values are little-endian,
// matching the layout D3D11 expects in upload buffers.
package loadimage

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// LoadFunc converts a block of pixels from client to native layout.
type LoadFunc func(width, height, depth int,
	input []byte, inputRowPitch, inputDepthPitch int,
	output []byte, outputRowPitch, outputDepthPitch int)

func row(buf []byte, y, z, rowPitch, depthPitch int) []byte {
	return buf[z*depthPitch+y*rowPitch:]
}

// each runs fn over every row pair of a block.
func each(height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int, fn func(src, dst []byte)) {
	for z := 0; z < depth; z++ {
		for y := 0; y < height; y++ {
			fn(row(input, y, z, inRow, inDepth), row(output, y, z, outRow, outDepth))
		}
	}
}

// Native copies pixels whose client and native layouts are identical.
func Native(pixelBytes int) LoadFunc {
	return func(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
		n := width * pixelBytes
		each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
			copy(dst[:n], src[:n])
		})
	}
}

// RGB8ToRGBA8 expands three-byte pixels to four bytes, filling the fourth
// with alpha.
func RGB8ToRGBA8(alpha byte) LoadFunc {
	return func(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
		each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
			for x := 0; x < width; x++ {
				dst[4*x+0] = src[3*x+0]
				dst[4*x+1] = src[3*x+1]
				dst[4*x+2] = src[3*x+2]
				dst[4*x+3] = alpha
			}
		})
	}
}

// L8ToRGBA8 replicates luminance into the color channels with opaque alpha.
func L8ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			l := src[x]
			dst[4*x+0], dst[4*x+1], dst[4*x+2], dst[4*x+3] = l, l, l, 0xFF
		}
	})
}

// LA8ToRGBA8 replicates luminance into the color channels and keeps alpha.
func LA8ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			l, a := src[2*x], src[2*x+1]
			dst[4*x+0], dst[4*x+1], dst[4*x+2], dst[4*x+3] = l, l, l, a
		}
	})
}

// A8ToRGBA8 writes black pixels carrying the source alpha.
func A8ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			dst[4*x+0], dst[4*x+1], dst[4*x+2], dst[4*x+3] = 0, 0, 0, src[x]
		}
	})
}

func expand(v uint16, bits uint) byte {
	maxIn := uint32(1)<<bits - 1
	return byte((uint32(v)*255 + maxIn/2) / maxIn)
}

// RGBA4ToRGBA8 unpacks UNSIGNED_SHORT_4_4_4_4 pixels.
func RGBA4ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			p := binary.LittleEndian.Uint16(src[2*x:])
			dst[4*x+0] = expand(p>>12&0xF, 4)
			dst[4*x+1] = expand(p>>8&0xF, 4)
			dst[4*x+2] = expand(p>>4&0xF, 4)
			dst[4*x+3] = expand(p&0xF, 4)
		}
	})
}

// RGB5A1ToRGBA8 unpacks UNSIGNED_SHORT_5_5_5_1 pixels.
func RGB5A1ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			p := binary.LittleEndian.Uint16(src[2*x:])
			dst[4*x+0] = expand(p>>11&0x1F, 5)
			dst[4*x+1] = expand(p>>6&0x1F, 5)
			dst[4*x+2] = expand(p>>1&0x1F, 5)
			dst[4*x+3] = expand(p&0x1, 1)
		}
	})
}

// R5G6B5ToRGBA8 unpacks UNSIGNED_SHORT_5_6_5 pixels with opaque alpha.
func R5G6B5ToRGBA8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			p := binary.LittleEndian.Uint16(src[2*x:])
			dst[4*x+0] = expand(p>>11&0x1F, 5)
			dst[4*x+1] = expand(p>>5&0x3F, 6)
			dst[4*x+2] = expand(p&0x1F, 5)
			dst[4*x+3] = 0xFF
		}
	})
}

// Float32ToFloat16 converts components 32-bit floats per pixel to halves.
func Float32ToFloat16(components int) LoadFunc {
	return func(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
		n := width * components
		each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
			for i := 0; i < n; i++ {
				f := math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
				binary.LittleEndian.PutUint16(dst[2*i:], float16.Fromfloat32(f).Bits())
			}
		})
	}
}

// RGB32FToRGBA32F expands three floats per pixel to four with alpha 1.0.
func RGB32FToRGBA32F(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	one := math.Float32bits(1)
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			copy(dst[16*x:16*x+12], src[12*x:12*x+12])
			binary.LittleEndian.PutUint32(dst[16*x+12:], one)
		}
	})
}

// R32ToR16 keeps the high half of 32-bit depth values.
func R32ToR16(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			v := binary.LittleEndian.Uint32(src[4*x:])
			binary.LittleEndian.PutUint16(dst[2*x:], uint16(v>>16))
		}
	})
}

// R32ToR24G8 moves GL's depth-high, stencil-low packing into the D3D
// layout with depth in the low 24 bits and stencil in the high 8.
func R32ToR24G8(width, height, depth int, input []byte, inRow, inDepth int, output []byte, outRow, outDepth int) {
	each(height, depth, input, inRow, inDepth, output, outRow, outDepth, func(src, dst []byte) {
		for x := 0; x < width; x++ {
			v := binary.LittleEndian.Uint32(src[4*x:])
			binary.LittleEndian.PutUint32(dst[4*x:], (v&0xFFFFFF00)>>8|(v&0xFF)<<24)
		}
	})
}
