package gl

// TypeInfo describes a client pixel type.
type TypeInfo struct {
	// Bytes is the size of one component, or of one whole pixel for packed
	// types.
	Bytes int
	// SpecialInterpretation is set for packed types whose single value
	// holds every component of a pixel.
	SpecialInterpretation bool
}

var typeInfos = map[Enum]TypeInfo{
	BYTE:                           {Bytes: 1},
	UNSIGNED_BYTE:                  {Bytes: 1},
	SHORT:                          {Bytes: 2},
	UNSIGNED_SHORT:                 {Bytes: 2},
	INT:                            {Bytes: 4},
	UNSIGNED_INT:                   {Bytes: 4},
	FLOAT:                          {Bytes: 4},
	HALF_FLOAT:                     {Bytes: 2},
	UNSIGNED_SHORT_4_4_4_4:         {Bytes: 2, SpecialInterpretation: true},
	UNSIGNED_SHORT_5_5_5_1:         {Bytes: 2, SpecialInterpretation: true},
	UNSIGNED_SHORT_5_6_5:           {Bytes: 2, SpecialInterpretation: true},
	UNSIGNED_INT_2_10_10_10_REV:    {Bytes: 4, SpecialInterpretation: true},
	UNSIGNED_INT_24_8:              {Bytes: 4, SpecialInterpretation: true},
	UNSIGNED_INT_10F_11F_11F_REV:   {Bytes: 4, SpecialInterpretation: true},
	FLOAT_32_UNSIGNED_INT_24_8_REV: {Bytes: 8, SpecialInterpretation: true},
}

// GetTypeInfo returns the description of a pixel type. Unknown types yield
// the zero TypeInfo.
func GetTypeInfo(t Enum) TypeInfo {
	return typeInfos[t]
}

// InternalFormat describes a sized GL internal format.
type InternalFormat struct {
	RedBits       int
	GreenBits     int
	BlueBits      int
	LuminanceBits int
	AlphaBits     int
	DepthBits     int
	StencilBits   int

	// PixelBytes is the size of one pixel, or of one block for compressed
	// formats.
	PixelBytes     int
	ComponentCount int

	Compressed            bool
	CompressedBlockWidth  int
	CompressedBlockHeight int

	// Format is the unsized format, Type the natural client type.
	Format        Enum
	Type          Enum
	ComponentType Enum
}

// MaxChannelBits returns the widest channel of the format. Depth and
// stencil formats report their depth or stencil width.
func (f InternalFormat) MaxChannelBits() int {
	if f.DepthBits > 0 || f.StencilBits > 0 {
		return max(f.DepthBits, f.StencilBits)
	}
	return max(f.RedBits, f.GreenBits, f.BlueBits, f.AlphaBits, f.LuminanceBits)
}

// ComputeRowPitch returns the byte length of one client row of width
// pixels of the given type, rounded up to alignment.
func (f InternalFormat) ComputeRowPitch(formatType Enum, width, alignment int) int {
	var rowBytes int
	switch {
	case f.Compressed:
		blocks := (width + f.CompressedBlockWidth - 1) / f.CompressedBlockWidth
		rowBytes = blocks * f.PixelBytes
	default:
		ti := GetTypeInfo(formatType)
		if ti.SpecialInterpretation {
			rowBytes = ti.Bytes * width
		} else {
			rowBytes = f.ComponentCount * ti.Bytes * width
		}
	}
	if alignment <= 0 {
		alignment = 1
	}
	return roundUp(rowBytes, alignment)
}

// ComputeDepthPitch returns the byte length of one client image of
// width x height pixels.
func (f InternalFormat) ComputeDepthPitch(formatType Enum, width, height, alignment int) int {
	rows := height
	if f.Compressed {
		rows = (height + f.CompressedBlockHeight - 1) / f.CompressedBlockHeight
	}
	return f.ComputeRowPitch(formatType, width, alignment) * rows
}

func roundUp(v, m int) int {
	return ((v + m - 1) / m) * m
}

func colorFormat(r, g, b, a, pixelBytes int, format, typ, componentType Enum) InternalFormat {
	count := 0
	for _, bits := range []int{r, g, b, a} {
		if bits > 0 {
			count++
		}
	}
	return InternalFormat{
		RedBits: r, GreenBits: g, BlueBits: b, AlphaBits: a,
		PixelBytes: pixelBytes, ComponentCount: count,
		Format: format, Type: typ, ComponentType: componentType,
	}
}

func luminanceFormat(l, a, pixelBytes int, format Enum) InternalFormat {
	count := 1
	if l > 0 && a > 0 {
		count = 2
	}
	return InternalFormat{
		LuminanceBits: l, AlphaBits: a,
		PixelBytes: pixelBytes, ComponentCount: count,
		Format: format, Type: UNSIGNED_BYTE, ComponentType: UNSIGNED_NORMALIZED,
	}
}

func depthStencilFormat(depth, stencil, pixelBytes int, format, typ, componentType Enum) InternalFormat {
	count := 1
	if depth > 0 && stencil > 0 {
		count = 2
	}
	return InternalFormat{
		DepthBits: depth, StencilBits: stencil,
		PixelBytes: pixelBytes, ComponentCount: count,
		Format: format, Type: typ, ComponentType: componentType,
	}
}

func compressedFormat(blockBytes int, format Enum) InternalFormat {
	return InternalFormat{
		RedBits: 8, GreenBits: 8, BlueBits: 8, AlphaBits: 8,
		PixelBytes: blockBytes, ComponentCount: 4,
		Compressed: true, CompressedBlockWidth: 4, CompressedBlockHeight: 4,
		Format: format, Type: UNSIGNED_BYTE, ComponentType: UNSIGNED_NORMALIZED,
	}
}

var internalFormats = map[Enum]InternalFormat{
	RGBA8:          colorFormat(8, 8, 8, 8, 4, RGBA, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	RGB8:           colorFormat(8, 8, 8, 0, 3, RGB, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	RGBA4:          colorFormat(4, 4, 4, 4, 2, RGBA, UNSIGNED_SHORT_4_4_4_4, UNSIGNED_NORMALIZED),
	RGB5_A1:        colorFormat(5, 5, 5, 1, 2, RGBA, UNSIGNED_SHORT_5_5_5_1, UNSIGNED_NORMALIZED),
	RGB565:         colorFormat(5, 6, 5, 0, 2, RGB, UNSIGNED_SHORT_5_6_5, UNSIGNED_NORMALIZED),
	RGB10_A2:       colorFormat(10, 10, 10, 2, 4, RGBA, UNSIGNED_INT_2_10_10_10_REV, UNSIGNED_NORMALIZED),
	R8:             colorFormat(8, 0, 0, 0, 1, RED, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	RG8:            colorFormat(8, 8, 0, 0, 2, RG, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	R8_SNORM:       colorFormat(8, 0, 0, 0, 1, RED, BYTE, SIGNED_NORMALIZED),
	RGBA8_SNORM:    colorFormat(8, 8, 8, 8, 4, RGBA, BYTE, SIGNED_NORMALIZED),
	SRGB8_ALPHA8:   colorFormat(8, 8, 8, 8, 4, SRGB_ALPHA_EXT, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	BGRA8_EXT:      colorFormat(8, 8, 8, 8, 4, BGRA_EXT, UNSIGNED_BYTE, UNSIGNED_NORMALIZED),
	R16F:           colorFormat(16, 0, 0, 0, 2, RED, HALF_FLOAT, FLOAT),
	RG16F:          colorFormat(16, 16, 0, 0, 4, RG, HALF_FLOAT, FLOAT),
	RGBA16F:        colorFormat(16, 16, 16, 16, 8, RGBA, HALF_FLOAT, FLOAT),
	R32F:           colorFormat(32, 0, 0, 0, 4, RED, FLOAT, FLOAT),
	RG32F:          colorFormat(32, 32, 0, 0, 8, RG, FLOAT, FLOAT),
	RGB32F:         colorFormat(32, 32, 32, 0, 12, RGB, FLOAT, FLOAT),
	RGBA32F:        colorFormat(32, 32, 32, 32, 16, RGBA, FLOAT, FLOAT),
	R11F_G11F_B10F: colorFormat(11, 11, 10, 0, 4, RGB, UNSIGNED_INT_10F_11F_11F_REV, FLOAT),
	R8UI:           colorFormat(8, 0, 0, 0, 1, RED_INTEGER, UNSIGNED_BYTE, UNSIGNED_INT),
	R8I:            colorFormat(8, 0, 0, 0, 1, RED_INTEGER, BYTE, INT),
	R16UI:          colorFormat(16, 0, 0, 0, 2, RED_INTEGER, UNSIGNED_SHORT, UNSIGNED_INT),
	R16I:           colorFormat(16, 0, 0, 0, 2, RED_INTEGER, SHORT, INT),
	R32UI:          colorFormat(32, 0, 0, 0, 4, RED_INTEGER, UNSIGNED_INT, UNSIGNED_INT),
	R32I:           colorFormat(32, 0, 0, 0, 4, RED_INTEGER, INT, INT),
	RG8UI:          colorFormat(8, 8, 0, 0, 2, RG_INTEGER, UNSIGNED_BYTE, UNSIGNED_INT),
	RG8I:           colorFormat(8, 8, 0, 0, 2, RG_INTEGER, BYTE, INT),
	RGB8UI:         colorFormat(8, 8, 8, 0, 3, RGB_INTEGER, UNSIGNED_BYTE, UNSIGNED_INT),
	RGB8I:          colorFormat(8, 8, 8, 0, 3, RGB_INTEGER, BYTE, INT),
	RGBA8UI:        colorFormat(8, 8, 8, 8, 4, RGBA_INTEGER, UNSIGNED_BYTE, UNSIGNED_INT),
	RGBA8I:         colorFormat(8, 8, 8, 8, 4, RGBA_INTEGER, BYTE, INT),
	RGBA16UI:       colorFormat(16, 16, 16, 16, 8, RGBA_INTEGER, UNSIGNED_SHORT, UNSIGNED_INT),
	RGBA16I:        colorFormat(16, 16, 16, 16, 8, RGBA_INTEGER, SHORT, INT),
	RGBA32UI:       colorFormat(32, 32, 32, 32, 16, RGBA_INTEGER, UNSIGNED_INT, UNSIGNED_INT),
	RGBA32I:        colorFormat(32, 32, 32, 32, 16, RGBA_INTEGER, INT, INT),

	ALPHA8_EXT:            luminanceFormat(0, 8, 1, ALPHA),
	LUMINANCE8_EXT:        luminanceFormat(8, 0, 1, LUMINANCE),
	LUMINANCE8_ALPHA8_EXT: luminanceFormat(8, 8, 2, LUMINANCE_ALPHA),

	DEPTH_COMPONENT16:  depthStencilFormat(16, 0, 2, DEPTH_COMPONENT, UNSIGNED_SHORT, UNSIGNED_NORMALIZED),
	DEPTH_COMPONENT24:  depthStencilFormat(24, 0, 4, DEPTH_COMPONENT, UNSIGNED_INT, UNSIGNED_NORMALIZED),
	DEPTH_COMPONENT32F: depthStencilFormat(32, 0, 4, DEPTH_COMPONENT, FLOAT, FLOAT),
	DEPTH24_STENCIL8:   depthStencilFormat(24, 8, 4, DEPTH_STENCIL, UNSIGNED_INT_24_8, UNSIGNED_NORMALIZED),
	DEPTH32F_STENCIL8:  depthStencilFormat(32, 8, 8, DEPTH_STENCIL, FLOAT_32_UNSIGNED_INT_24_8_REV, FLOAT),

	COMPRESSED_RGB_S3TC_DXT1_EXT:  compressedFormat(8, RGB),
	COMPRESSED_RGBA_S3TC_DXT1_EXT: compressedFormat(8, RGBA),
	COMPRESSED_RGBA_S3TC_DXT3:     compressedFormat(16, RGBA),
	COMPRESSED_RGBA_S3TC_DXT5:     compressedFormat(16, RGBA),
}

// LookupInternalFormat returns the description of a sized internal format.
func LookupInternalFormat(internalFormat Enum) (InternalFormat, bool) {
	f, ok := internalFormats[internalFormat]
	return f, ok
}

// GetInternalFormatInfo returns the description of a sized internal
// format, or the zero InternalFormat when the format is unknown.
func GetInternalFormatInfo(internalFormat Enum) InternalFormat {
	return internalFormats[internalFormat]
}
