package gl

// EntireLevel is the layer index of an ImageIndex that addresses every
// layer of a mip level.
const EntireLevel = -1

// ImageIndex addresses one image of a texture: a mip level and, for cube
// maps, arrays and 3D textures, a layer.
type ImageIndex struct {
	Type       Enum
	MipIndex   int
	LayerIndex int
}

// Make2DIndex addresses a level of a 2D texture.
func Make2DIndex(mip int) ImageIndex {
	return ImageIndex{Type: TEXTURE_2D, MipIndex: mip, LayerIndex: EntireLevel}
}

// MakeCubeIndex addresses a level of one cube map face.
func MakeCubeIndex(target Enum, mip int) ImageIndex {
	return ImageIndex{Type: target, MipIndex: mip, LayerIndex: CubeFaceIndex(target)}
}

// Make2DArrayIndex addresses one layer of a 2D array level.
func Make2DArrayIndex(mip, layer int) ImageIndex {
	return ImageIndex{Type: TEXTURE_2D_ARRAY, MipIndex: mip, LayerIndex: layer}
}

// Make3DIndex addresses a level of a 3D texture. Pass EntireLevel for the
// whole volume.
func Make3DIndex(mip, layer int) ImageIndex {
	return ImageIndex{Type: TEXTURE_3D, MipIndex: mip, LayerIndex: layer}
}

// HasLayer reports whether the index selects a single layer.
func (i ImageIndex) HasLayer() bool {
	return i.LayerIndex != EntireLevel
}

// Extents is a width, height and depth triple.
type Extents struct {
	Width  int
	Height int
	Depth  int
}

// Box is an axis-aligned region of a texture level.
type Box struct {
	X      int
	Y      int
	Z      int
	Width  int
	Height int
	Depth  int
}

// Rectangle is a 2D region.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Offset is a texel position.
type Offset struct {
	X int
	Y int
	Z int
}

// ClipRectangle intersects source with clip. It reports false when the
// intersection is empty.
func ClipRectangle(source, clip Rectangle) (Rectangle, bool) {
	minX := max(source.X, clip.X)
	maxX := min(source.X+source.Width, clip.X+clip.Width)
	minY := max(source.Y, clip.Y)
	maxY := min(source.Y+source.Height, clip.Y+clip.Height)
	if minX >= maxX || minY >= maxY {
		return Rectangle{}, false
	}
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// SamplerState is the texture sampling state that affects view selection.
type SamplerState struct {
	MinFilter Enum
	MagFilter Enum

	BaseLevel int
	MaxLevel  int

	SwizzleRed   Enum
	SwizzleGreen Enum
	SwizzleBlue  Enum
	SwizzleAlpha Enum
}

// DefaultSamplerState returns the GL initial sampler and swizzle state.
func DefaultSamplerState() SamplerState {
	return SamplerState{
		MinFilter:    NEAREST_MIPMAP_LINEAR,
		MagFilter:    LINEAR,
		BaseLevel:    0,
		MaxLevel:     1000,
		SwizzleRed:   RED,
		SwizzleGreen: GREEN,
		SwizzleBlue:  BLUE,
		SwizzleAlpha: ALPHA,
	}
}

// SwizzleRequired reports whether any channel is remapped.
func (s SamplerState) SwizzleRequired() bool {
	return s.SwizzleRed != RED || s.SwizzleGreen != GREEN ||
		s.SwizzleBlue != BLUE || s.SwizzleAlpha != ALPHA
}

// IsMipmapFiltered reports whether the minification filter reads more
// than the base level.
func (s SamplerState) IsMipmapFiltered() bool {
	switch s.MinFilter {
	case NEAREST, LINEAR:
		return false
	case NEAREST_MIPMAP_NEAREST, LINEAR_MIPMAP_NEAREST, NEAREST_MIPMAP_LINEAR, LINEAR_MIPMAP_LINEAR:
		return true
	default:
		panic("gl: invalid minification filter")
	}
}

// PixelUnpackState is the client-side pixel store state for uploads.
type PixelUnpackState struct {
	Alignment int
}

// DefaultPixelUnpackState returns the GL initial unpack state.
func DefaultPixelUnpackState() PixelUnpackState {
	return PixelUnpackState{Alignment: 4}
}
