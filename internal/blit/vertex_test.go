package blit

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

func floatAt(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestGenerateVertexCoords(t *testing.T) {
	tests := []struct {
		name       string
		sourceArea gl.Box
		sourceSize gl.Extents
		destArea   gl.Box
		destSize   gl.Extents
		want       quadCoords
	}{
		{
			name:       "full surface",
			sourceArea: gl.Box{Width: 4, Height: 4, Depth: 1},
			sourceSize: gl.Extents{Width: 4, Height: 4, Depth: 1},
			destArea:   gl.Box{Width: 8, Height: 8, Depth: 1},
			destSize:   gl.Extents{Width: 8, Height: 8, Depth: 1},
			want:       quadCoords{x1: -1, y1: -1, x2: 1, y2: 1, u1: 0, v1: 0, u2: 1, v2: 1},
		},
		{
			name:       "top left quarter",
			sourceArea: gl.Box{X: 2, Y: 2, Width: 2, Height: 2, Depth: 1},
			sourceSize: gl.Extents{Width: 4, Height: 4, Depth: 1},
			destArea:   gl.Box{Width: 4, Height: 4, Depth: 1},
			destSize:   gl.Extents{Width: 8, Height: 8, Depth: 1},
			want:       quadCoords{x1: -1, y1: 0, x2: 0, y2: 1, u1: 0.5, v1: 0.5, u2: 1, v2: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateVertexCoords(tt.sourceArea, tt.sourceSize, tt.destArea, tt.destSize); got != tt.want {
				t.Errorf("generateVertexCoords() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWrite2DVertices(t *testing.T) {
	out := make([]byte, vertexBufferSize(1))
	area := gl.Box{Width: 4, Height: 4, Depth: 1}
	size := gl.Extents{Width: 4, Height: 4, Depth: 1}

	stride, count, topology := write2DVertices(area, size, area, size, out)
	if stride != positionTexCoordStride || count != 4 || topology != d3d11.PRIMITIVE_TOPOLOGY_TRIANGLESTRIP {
		t.Fatalf("write2DVertices() = %d, %d, %d", stride, count, topology)
	}
	want := [4][4]float32{
		{-1, -1, 0, 1},
		{-1, 1, 0, 0},
		{1, -1, 1, 1},
		{1, 1, 1, 0},
	}
	for v, w := range want {
		for i, f := range w {
			if got := floatAt(out, v*positionTexCoordStride+i*4); got != f {
				t.Errorf("vertex %d component %d = %v, want %v", v, i, got, f)
			}
		}
	}
}

func TestWrite3DVertices(t *testing.T) {
	const depth = 3
	out := make([]byte, vertexBufferSize(depth))
	area := gl.Box{Width: 4, Height: 4, Depth: depth}
	size := gl.Extents{Width: 4, Height: 4, Depth: depth}

	stride, count, topology := write3DVertices(area, size, area, size, out)
	if stride != positionLayerTexCoord3DStride || count != depth*verticesPerSlice3D || topology != d3d11.PRIMITIVE_TOPOLOGY_TRIANGLELIST {
		t.Fatalf("write3DVertices() = %d, %d, %d", stride, count, topology)
	}
	for slice, wantDepth := range []float32{0, 0.5, 1} {
		for v := 0; v < verticesPerSlice3D; v++ {
			off := (slice*verticesPerSlice3D + v) * positionLayerTexCoord3DStride
			if layer := binary.LittleEndian.Uint32(out[off+8:]); layer != uint32(slice) {
				t.Errorf("slice %d vertex %d layer = %d", slice, v, layer)
			}
			if got := floatAt(out, off+20); got != wantDepth {
				t.Errorf("slice %d vertex %d read depth = %v, want %v", slice, v, got, wantDepth)
			}
		}
	}
}

func TestWrite3DVerticesSingleSlice(t *testing.T) {
	out := make([]byte, vertexBufferSize(1))
	area := gl.Box{Width: 2, Height: 2, Depth: 1}
	size := gl.Extents{Width: 2, Height: 2, Depth: 1}
	if _, count, _ := write3DVertices(area, size, area, size, out); count != verticesPerSlice3D {
		t.Errorf("count = %d, want %d", count, verticesPerSlice3D)
	}
	if got := floatAt(out, 20); got != 0 {
		t.Errorf("read depth = %v, want 0", got)
	}
}

func TestWrite3DVerticesEmptyDepthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("write3DVertices() with zero depth did not panic")
		}
	}()
	out := make([]byte, vertexBufferSize(1))
	write3DVertices(gl.Box{Width: 1, Height: 1}, gl.Extents{Width: 1, Height: 1}, gl.Box{Width: 1, Height: 1}, gl.Extents{Width: 1, Height: 1}, out)
}

func TestVertexBufferSize(t *testing.T) {
	if got := vertexBufferSize(0); got != positionTexCoordStride*quad2DVertexCount {
		t.Errorf("vertexBufferSize(0) = %d, want the 2D quad", got)
	}
	if got, want := vertexBufferSize(2048), positionLayerTexCoord3DStride*verticesPerSlice3D*2048; got != want {
		t.Errorf("vertexBufferSize(2048) = %d, want %d", got, want)
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name                                      string
		p, start, extent, srcStart, srcExt, limit int
		want                                      int
	}{
		{"identity first", 0, 0, 4, 0, 4, 4, 0},
		{"identity last", 3, 0, 4, 0, 4, 4, 3},
		{"magnify low", 1, 0, 4, 0, 2, 4, 0},
		{"magnify high", 2, 0, 4, 0, 2, 4, 1},
		{"minify", 1, 0, 2, 0, 4, 4, 3},
		{"offset", 5, 4, 2, 1, 2, 4, 2},
		{"single destination", 7, 7, 1, 2, 4, 8, 2},
		{"clamped high", 3, 0, 4, 2, 4, 4, 3},
		{"clamped low", 0, 0, 4, -2, 4, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearest(tt.p, tt.start, tt.extent, tt.srcStart, tt.srcExt, tt.limit); got != tt.want {
				t.Errorf("nearest() = %d, want %d", got, tt.want)
			}
		})
	}
}
