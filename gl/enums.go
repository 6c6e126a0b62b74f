package gl

// Enum is a GLenum.
type Enum uint32

// General.
const (
	NONE Enum = 0
	ZERO Enum = 0
	ONE  Enum = 1
)

// Texture targets.
const (
	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_3D                  Enum = 0x806F
	TEXTURE_2D_ARRAY            Enum = 0x8C1A
	TEXTURE_CUBE_MAP            Enum = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X Enum = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X Enum = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y Enum = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y Enum = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z Enum = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z Enum = 0x851A
)

// Unsized formats and swizzle sources.
const (
	RED             Enum = 0x1903
	GREEN           Enum = 0x1904
	BLUE            Enum = 0x1905
	ALPHA           Enum = 0x1906
	RGB             Enum = 0x1907
	RGBA            Enum = 0x1908
	LUMINANCE       Enum = 0x1909
	LUMINANCE_ALPHA Enum = 0x190A
	RG              Enum = 0x8227
	RG_INTEGER      Enum = 0x8228
	RED_INTEGER     Enum = 0x8D94
	RGB_INTEGER     Enum = 0x8D98
	RGBA_INTEGER    Enum = 0x8D99
	BGRA_EXT        Enum = 0x80E1
	DEPTH_COMPONENT Enum = 0x1902
	DEPTH_STENCIL   Enum = 0x84F9
	SRGB_ALPHA_EXT  Enum = 0x8C42
)

// Pixel types.
const (
	BYTE                           Enum = 0x1400
	UNSIGNED_BYTE                  Enum = 0x1401
	SHORT                          Enum = 0x1402
	UNSIGNED_SHORT                 Enum = 0x1403
	INT                            Enum = 0x1404
	UNSIGNED_INT                   Enum = 0x1405
	FLOAT                          Enum = 0x1406
	HALF_FLOAT                     Enum = 0x140B
	UNSIGNED_SHORT_4_4_4_4         Enum = 0x8033
	UNSIGNED_SHORT_5_5_5_1         Enum = 0x8034
	UNSIGNED_SHORT_5_6_5           Enum = 0x8363
	UNSIGNED_INT_2_10_10_10_REV    Enum = 0x8368
	UNSIGNED_INT_24_8              Enum = 0x84FA
	UNSIGNED_INT_10F_11F_11F_REV   Enum = 0x8C3B
	FLOAT_32_UNSIGNED_INT_24_8_REV Enum = 0x8DAD
)

// Component types.
const (
	UNSIGNED_NORMALIZED Enum = 0x8C17
	SIGNED_NORMALIZED   Enum = 0x8F9C
)

// Filters.
const (
	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_NEAREST  Enum = 0x2701
	NEAREST_MIPMAP_LINEAR  Enum = 0x2702
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
)

// Sized internal formats.
const (
	RGBA8                         Enum = 0x8058
	RGB8                          Enum = 0x8051
	RGBA4                         Enum = 0x8056
	RGB5_A1                       Enum = 0x8057
	RGB565                        Enum = 0x8D62
	RGB10_A2                      Enum = 0x8059
	R8                            Enum = 0x8229
	RG8                           Enum = 0x822B
	R16F                          Enum = 0x822D
	R32F                          Enum = 0x822E
	RG16F                         Enum = 0x822F
	RG32F                         Enum = 0x8230
	R8I                           Enum = 0x8231
	R8UI                          Enum = 0x8232
	R16I                          Enum = 0x8233
	R16UI                         Enum = 0x8234
	R32I                          Enum = 0x8235
	R32UI                         Enum = 0x8236
	RG8I                          Enum = 0x8237
	RG8UI                         Enum = 0x8238
	RGBA32F                       Enum = 0x8814
	RGB32F                        Enum = 0x8815
	RGBA16F                       Enum = 0x881A
	RGBA32UI                      Enum = 0x8D70
	RGBA16UI                      Enum = 0x8D76
	RGBA8UI                       Enum = 0x8D7C
	RGB8UI                        Enum = 0x8D7D
	RGBA32I                       Enum = 0x8D82
	RGBA16I                       Enum = 0x8D88
	RGBA8I                        Enum = 0x8D8E
	RGB8I                         Enum = 0x8D8F
	R8_SNORM                      Enum = 0x8F94
	RGBA8_SNORM                   Enum = 0x8F97
	R11F_G11F_B10F                Enum = 0x8C3A
	SRGB8_ALPHA8                  Enum = 0x8C43
	DEPTH_COMPONENT16             Enum = 0x81A5
	DEPTH_COMPONENT24             Enum = 0x81A6
	DEPTH_COMPONENT32F            Enum = 0x8CAC
	DEPTH24_STENCIL8              Enum = 0x88F0
	DEPTH32F_STENCIL8             Enum = 0x8CAD
	BGRA8_EXT                     Enum = 0x93A1
	ALPHA8_EXT                    Enum = 0x803C
	LUMINANCE8_EXT                Enum = 0x8040
	LUMINANCE8_ALPHA8_EXT         Enum = 0x8045
	COMPRESSED_RGB_S3TC_DXT1_EXT  Enum = 0x83F0
	COMPRESSED_RGBA_S3TC_DXT1_EXT Enum = 0x83F1
	COMPRESSED_RGBA_S3TC_DXT3     Enum = 0x83F2
	COMPRESSED_RGBA_S3TC_DXT5     Enum = 0x83F3
)

// Error codes.
const (
	NO_ERROR          Enum = 0
	INVALID_ENUM      Enum = 0x0500
	INVALID_VALUE     Enum = 0x0501
	INVALID_OPERATION Enum = 0x0502
	OUT_OF_MEMORY     Enum = 0x0505
)

// CubeFaceCount is the number of faces of a cube map.
const CubeFaceCount = 6

// ImplementationMaxTextureLevels bounds the mip chain of any texture.
const ImplementationMaxTextureLevels = 15

// IsCubeMapFace reports whether target names one cube map face.
func IsCubeMapFace(target Enum) bool {
	return target >= TEXTURE_CUBE_MAP_POSITIVE_X && target <= TEXTURE_CUBE_MAP_NEGATIVE_Z
}

// CubeFaceIndex returns the 0-based face index of a cube map face target.
func CubeFaceIndex(target Enum) int {
	return int(target - TEXTURE_CUBE_MAP_POSITIVE_X)
}
