package format

import "github.com/gogpu/texstore/gl"

// MakeValidSize rounds width and height of a block-compressed format up to
// whole blocks by doubling both until each is a block multiple. It returns
// the number of doublings, which storages use as their top level offset.
//
// Sizes of images always get rounded. Storage sizes only get rounded when
// they are smaller than a single block.
func MakeValidSize(isImage bool, internalFormat gl.Enum, width, height *int) int {
	info := GetDXGIFormatInfo(GetTextureFormatInfo(internalFormat).TexFormat)
	bw, bh := info.BlockWidth, info.BlockHeight
	if bw <= 1 && bh <= 1 {
		return 0
	}
	if !isImage && *width >= bw && *height >= bh {
		return 0
	}

	upsample := 0
	for *width%bw != 0 || *height%bh != 0 {
		*width <<= 1
		*height <<= 1
		upsample++
	}
	return upsample
}

// MipLevelCount returns the length of a full mip chain for the given
// extents.
func MipLevelCount(width, height, depth int) int {
	size := max(width, height, depth)
	levels := 1
	for size > 1 {
		size >>= 1
		levels++
	}
	return levels
}

// LevelSize returns the extent of a mip level.
func LevelSize(size, level int) int {
	return max(size>>level, 1)
}
