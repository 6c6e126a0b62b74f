package image

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/format"
	"github.com/gogpu/texstore/internal/membuf"
	"github.com/gogpu/texstore/storage"
)

// Renderer is the part of the owning renderer an image uses for its
// staging copies.
type Renderer interface {
	Device() d3d11.Device
	DeviceContext() d3d11.DeviceContext
	Logger() *slog.Logger
}

// maxRecoveries is the number of read backs after which an image stops
// releasing its memory on upload.
const maxRecoveries = 2

// Image is the CPU copy of one texture image.
//
// Image is not safe for concurrent use.
type Image struct {
	r   Renderer
	log *slog.Logger

	target         gl.Enum
	internalFormat gl.Enum
	formats        format.TextureInfo
	texInfo        format.DXGIInfo
	width          int
	height         int
	depth          int
	rowPitch       int
	depthPitch     int

	data  membuf.MemoryBuffer
	dirty bool

	// storage and storageIndex are set while the pixels live only in the
	// storage slot.
	storage      *storage.Storage
	storageIndex gl.ImageIndex
	recoveries   int
}

// New creates an empty image. target is TEXTURE_3D for a 3D level and the
// 2D, cube face or 2D array target otherwise.
func New(r Renderer, target, internalFormat gl.Enum, size gl.Extents) *Image {
	log := r.Logger()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	img := &Image{r: r, log: log, target: target}
	img.Redefine(internalFormat, size, true)
	return img
}

// Redefine changes the format and size of the image. It reports whether
// anything changed; the pixels are then discarded and an association with
// a storage is dropped. forceRelease discards them even when nothing
// changed.
func (i *Image) Redefine(internalFormat gl.Enum, size gl.Extents, forceRelease bool) bool {
	if i.internalFormat == internalFormat && i.Size() == size && !forceRelease {
		return false
	}
	i.disassociate()

	i.internalFormat = internalFormat
	i.formats = format.GetTextureFormatInfo(internalFormat)
	i.texInfo = format.GetDXGIFormatInfo(i.formats.TexFormat)
	i.width, i.height, i.depth = size.Width, size.Height, size.Depth
	bw, bh := max(i.texInfo.BlockWidth, 1), max(i.texInfo.BlockHeight, 1)
	i.rowPitch = (i.width + bw - 1) / bw * i.texInfo.PixelBytes
	i.depthPitch = i.rowPitch * ((i.height + bh - 1) / bh)
	i.data.Resize(0)
	i.dirty = false
	return true
}

// InternalFormat returns the GL internal format of the image.
func (i *Image) InternalFormat() gl.Enum { return i.internalFormat }

// Size returns the extents of the image.
func (i *Image) Size() gl.Extents {
	return gl.Extents{Width: i.width, Height: i.height, Depth: i.depth}
}

// Target returns the texture target the image was created for.
func (i *Image) Target() gl.Enum { return i.target }

// IsDirty reports whether the image holds pixels its storage lacks.
func (i *Image) IsDirty() bool { return i.dirty }

// MarkDirty flags the image for upload.
func (i *Image) MarkDirty() { i.dirty = true }

// MarkClean clears the dirty flag without uploading.
func (i *Image) MarkClean() { i.dirty = false }

// IsRenderableFormat reports whether the format can be bound as a render
// target, which is what mipmap generation in a storage requires.
func (i *Image) IsRenderableFormat() bool {
	return i.formats.RTVFormat != d3d11.FORMAT_UNKNOWN
}

func (i *Image) empty() bool {
	return i.width <= 0 || i.height <= 0 || i.depth <= 0
}

// pixels makes the CPU copy current and returns it, allocating zeroed
// memory on first use.
func (i *Image) pixels() ([]byte, error) {
	if err := i.RecoverFromAssociatedStorage(); err != nil {
		return nil, err
	}
	if n := i.depthPitch * i.depth; i.data.Size() != n {
		if !i.data.Resize(n) {
			return nil, gl.OutOfMemory("Failed to allocate image memory.")
		}
	}
	return i.data.Data(), nil
}

// Pixels returns the image in its native layout with the row and depth
// pitches. The slice aliases the image memory.
func (i *Image) Pixels() (data []byte, rowPitch, depthPitch int, err error) {
	if i.empty() {
		return nil, 0, 0, nil
	}
	data, err = i.pixels()
	if err != nil {
		return nil, 0, 0, err
	}
	return data, i.rowPitch, i.depthPitch, nil
}

func (i *Image) offset(x, y, z int) int {
	bw, bh := max(i.texInfo.BlockWidth, 1), max(i.texInfo.BlockHeight, 1)
	return z*i.depthPitch + y/bh*i.rowPitch + x/bw*i.texInfo.PixelBytes
}

func (i *Image) checkArea(area gl.Box) {
	if area.X < 0 || area.Y < 0 || area.Z < 0 ||
		area.X+area.Width > i.width || area.Y+area.Height > i.height || area.Z+area.Depth > i.depth {
		panic(fmt.Sprintf("image: area %+v outside %dx%dx%d image", area, i.width, i.height, i.depth))
	}
}

// SetData converts client pixels of type typ into area of the image.
func (i *Image) SetData(area gl.Box, unpack gl.PixelUnpackState, typ gl.Enum, pixels []byte) error {
	i.checkArea(area)
	if area.Width == 0 || area.Height == 0 || area.Depth == 0 {
		return nil
	}
	load := i.formats.LoadFunction(typ)
	if load == nil {
		panic(fmt.Sprintf("image: no load function for format %#x and type %#x", uint32(i.internalFormat), uint32(typ)))
	}
	info := gl.GetInternalFormatInfo(i.internalFormat)
	inRow := info.ComputeRowPitch(typ, area.Width, unpack.Alignment)
	inDepth := info.ComputeDepthPitch(typ, area.Width, area.Height, unpack.Alignment)

	data, err := i.pixels()
	if err != nil {
		return err
	}
	load(area.Width, area.Height, area.Depth, pixels, inRow, inDepth,
		data[i.offset(area.X, area.Y, area.Z):], i.rowPitch, i.depthPitch)
	i.dirty = true
	return nil
}

// SetCompressedData copies block-compressed pixels into area, which must
// start on a block boundary. pixels holds tightly packed block rows.
func (i *Image) SetCompressedData(area gl.Box, pixels []byte) error {
	i.checkArea(area)
	bw, bh := i.texInfo.BlockWidth, i.texInfo.BlockHeight
	if bw <= 1 && bh <= 1 {
		panic(fmt.Sprintf("image: format %#x is not block compressed", uint32(i.internalFormat)))
	}
	if area.X%bw != 0 || area.Y%bh != 0 {
		panic(fmt.Sprintf("image: compressed area %+v is not block aligned", area))
	}
	blocksWide := (area.Width + bw - 1) / bw
	blocksHigh := (area.Height + bh - 1) / bh
	n := blocksWide * i.texInfo.PixelBytes
	if n == 0 || blocksHigh == 0 || area.Depth == 0 {
		return nil
	}

	data, err := i.pixels()
	if err != nil {
		return err
	}
	for z := 0; z < area.Depth; z++ {
		for y := 0; y < blocksHigh; y++ {
			src := (z*blocksHigh + y) * n
			dst := i.offset(area.X, area.Y+y*bh, area.Z+z)
			copy(data[dst:dst+n], pixels[src:src+n])
		}
	}
	i.dirty = true
	return nil
}
