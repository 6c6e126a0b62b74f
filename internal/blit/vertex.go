package blit

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

// Vertex layouts of the blit programs.
const (
	positionTexCoordStride        = 16 // float2 position, float2 texcoord
	positionLayerTexCoord3DStride = 24 // float2 position, uint layer, float3 texcoord

	quad2DVertexCount  = 4
	verticesPerSlice3D = 6
)

// vertexWriter fills the shared vertex buffer for a blit from sourceArea
// of a texture of sourceSize into destArea of a target of destSize.
type vertexWriter func(sourceArea gl.Box, sourceSize gl.Extents, destArea gl.Box, destSize gl.Extents,
	out []byte) (stride, count uint32, topology d3d11.PrimitiveTopology)

// quadCoords holds the clip-space rectangle and texture coordinates of a blit.
type quadCoords struct {
	x1, y1, x2, y2 float32
	u1, v1, u2, v2 float32
}

// generateVertexCoords maps destArea into clip space, flipping Y, and
// sourceArea into normalized texture coordinates.
func generateVertexCoords(sourceArea gl.Box, sourceSize gl.Extents, destArea gl.Box, destSize gl.Extents) quadCoords {
	dw, dh := float32(destSize.Width), float32(destSize.Height)
	sw, sh := float32(sourceSize.Width), float32(sourceSize.Height)
	return quadCoords{
		x1: (float32(destArea.X)/dw)*2 - 1,
		y1: (float32(destSize.Height-destArea.Y-destArea.Height)/dh)*2 - 1,
		x2: (float32(destArea.X+destArea.Width)/dw)*2 - 1,
		y2: (float32(destSize.Height-destArea.Y)/dh)*2 - 1,

		u1: float32(sourceArea.X) / sw,
		v1: float32(sourceArea.Y) / sh,
		u2: float32(sourceArea.X+sourceArea.Width) / sw,
		v2: float32(sourceArea.Y+sourceArea.Height) / sh,
	}
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func setPositionTexCoord(b []byte, x, y, u, v float32) {
	putFloat(b[0:], x)
	putFloat(b[4:], y)
	putFloat(b[8:], u)
	putFloat(b[12:], v)
}

func setPositionLayerTexCoord3D(b []byte, x, y float32, layer uint32, u, v, s float32) {
	putFloat(b[0:], x)
	putFloat(b[4:], y)
	binary.LittleEndian.PutUint32(b[8:], layer)
	putFloat(b[12:], u)
	putFloat(b[16:], v)
	putFloat(b[20:], s)
}

// write2DVertices emits a four vertex triangle strip.
func write2DVertices(sourceArea gl.Box, sourceSize gl.Extents, destArea gl.Box, destSize gl.Extents,
	out []byte) (uint32, uint32, d3d11.PrimitiveTopology) {
	c := generateVertexCoords(sourceArea, sourceSize, destArea, destSize)

	setPositionTexCoord(out[0*positionTexCoordStride:], c.x1, c.y1, c.u1, c.v2)
	setPositionTexCoord(out[1*positionTexCoordStride:], c.x1, c.y2, c.u1, c.v1)
	setPositionTexCoord(out[2*positionTexCoordStride:], c.x2, c.y1, c.u2, c.v2)
	setPositionTexCoord(out[3*positionTexCoordStride:], c.x2, c.y2, c.u2, c.v1)

	return positionTexCoordStride, quad2DVertexCount, d3d11.PRIMITIVE_TOPOLOGY_TRIANGLESTRIP
}

// write3DVertices emits two triangles per destination slice. The geometry
// program routes each slice to its render target layer; the third texture
// coordinate walks the source volume from front to back.
func write3DVertices(sourceArea gl.Box, sourceSize gl.Extents, destArea gl.Box, destSize gl.Extents,
	out []byte) (uint32, uint32, d3d11.PrimitiveTopology) {
	if sourceSize.Depth <= 0 || destSize.Depth <= 0 {
		panic("blit: 3D blit with empty depth")
	}
	c := generateVertexCoords(sourceArea, sourceSize, destArea, destSize)

	last := math32.Max(float32(destSize.Depth-1), 1)
	for i := 0; i < destSize.Depth; i++ {
		readDepth := float32(i) / last
		layer := uint32(i)
		v := out[i*verticesPerSlice3D*positionLayerTexCoord3DStride:]

		setPositionLayerTexCoord3D(v[0*positionLayerTexCoord3DStride:], c.x1, c.y1, layer, c.u1, c.v2, readDepth)
		setPositionLayerTexCoord3D(v[1*positionLayerTexCoord3DStride:], c.x1, c.y2, layer, c.u1, c.v1, readDepth)
		setPositionLayerTexCoord3D(v[2*positionLayerTexCoord3DStride:], c.x2, c.y1, layer, c.u2, c.v2, readDepth)

		setPositionLayerTexCoord3D(v[3*positionLayerTexCoord3DStride:], c.x1, c.y2, layer, c.u1, c.v1, readDepth)
		setPositionLayerTexCoord3D(v[4*positionLayerTexCoord3DStride:], c.x2, c.y2, layer, c.u2, c.v1, readDepth)
		setPositionLayerTexCoord3D(v[5*positionLayerTexCoord3DStride:], c.x2, c.y1, layer, c.u2, c.v2, readDepth)
	}

	return positionLayerTexCoord3DStride, uint32(destSize.Depth * verticesPerSlice3D), d3d11.PRIMITIVE_TOPOLOGY_TRIANGLELIST
}

// vertexBufferSize is large enough for a full 3D slice stack of the
// largest supported 3D texture, or a 2D quad, whichever is bigger.
func vertexBufferSize(max3DTextureSize int) int {
	return max(positionLayerTexCoord3DStride*verticesPerSlice3D*max3DTextureSize,
		positionTexCoordStride*quad2DVertexCount)
}

// nearest maps destination coordinate p within [start, start+extent) to a
// source coordinate inside [srcStart, srcStart+srcExtent), clamped to
// [0, limit). It samples round(frac*(srcExtent-1)) with no filtering. A
// destination extent of one maps to the first source texel.
func nearest(p, start, extent, srcStart, srcExtent, limit int) int {
	var frac float32
	if extent > 1 {
		frac = float32(p-start) / float32(extent-1)
	}
	v := srcStart + int(math32.Floor(frac*float32(srcExtent-1)+0.5))
	return min(max(v, 0), limit-1)
}
