package texture

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/image"
	"github.com/gogpu/texstore/internal/format"
	"github.com/gogpu/texstore/storage"
)

// Renderer is the part of the owning renderer a texture uses.
type Renderer interface {
	storage.Renderer

	// SetDataFasterThanImageUpload reports whether uploads should be
	// converted straight into an existing storage instead of staging
	// through the images.
	SetDataFasterThanImageUpload() bool
}

// Texture is a GL texture object of one kind.
//
// Texture is not safe for concurrent use.
type Texture struct {
	r    Renderer
	log  *slog.Logger
	kind storage.Kind

	// images holds one image per level and layer. Cube levels have six
	// layers and 2D array levels one per array layer.
	images  [gl.ImplementationMaxTextureLevels][]*image.Image
	storage *storage.Storage

	immutable         bool
	immutableLevels   int
	renderTargetUsage bool
	dirtyImages       bool
}

// New creates a texture of the given kind with every level undefined.
func New(r Renderer, kind storage.Kind) *Texture {
	log := r.Logger()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	t := &Texture{r: r, log: log, kind: kind}

	layers := 1
	switch kind {
	case storage.Kind2D, storage.Kind3D:
	case storage.KindCube:
		layers = gl.CubeFaceCount
	case storage.Kind2DArray:
		layers = 0
	default:
		panic(fmt.Sprintf("texture: unknown kind %d", int(kind)))
	}
	for level := range t.images {
		t.images[level] = make([]*image.Image, layers)
		for layer := range layers {
			t.images[level][layer] = image.New(r, t.target(layer), gl.NONE, gl.Extents{})
		}
	}
	return t
}

// Kind returns the kind of the texture.
func (t *Texture) Kind() storage.Kind { return t.kind }

// Storage returns the current storage, or nil before the texture was first
// sampled or rendered to.
func (t *Texture) Storage() *storage.Storage { return t.storage }

// IsImmutable reports whether SetStorage fixed the levels of the texture.
func (t *Texture) IsImmutable() bool { return t.immutable }

// SetUsage requests that storages are created as render targets even when
// the texture is only sampled.
func (t *Texture) SetUsage(renderTarget bool) { t.renderTargetUsage = renderTarget }

// ImageFormat returns the internal format of the image addressed by index.
func (t *Texture) ImageFormat(index gl.ImageIndex) gl.Enum {
	return t.image(index).InternalFormat()
}

// ImageSize returns the extents of the level addressed by index. The depth
// of a 2D array level is its layer count.
func (t *Texture) ImageSize(index gl.ImageIndex) gl.Extents {
	t.checkIndex(index)
	if t.kind == storage.Kind2DArray {
		return t.levelSize(index.MipIndex)
	}
	return t.image(index).Size()
}

func (t *Texture) target(layer int) gl.Enum {
	switch t.kind {
	case storage.KindCube:
		return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(layer)
	case storage.Kind3D:
		return gl.TEXTURE_3D
	case storage.Kind2DArray:
		return gl.TEXTURE_2D_ARRAY
	default:
		return gl.TEXTURE_2D
	}
}

// index returns the canonical index of the image at level and layer.
func (t *Texture) index(level, layer int) gl.ImageIndex {
	switch t.kind {
	case storage.KindCube:
		return gl.MakeCubeIndex(t.target(layer), level)
	case storage.Kind3D:
		return gl.Make3DIndex(level, gl.EntireLevel)
	case storage.Kind2DArray:
		return gl.Make2DArrayIndex(level, layer)
	default:
		return gl.Make2DIndex(level)
	}
}

func (t *Texture) layerOf(index gl.ImageIndex) int {
	switch t.kind {
	case storage.KindCube, storage.Kind2DArray:
		return index.LayerIndex
	default:
		return 0
	}
}

func (t *Texture) checkIndex(index gl.ImageIndex) {
	if index.MipIndex < 0 || index.MipIndex >= gl.ImplementationMaxTextureLevels {
		panic(fmt.Sprintf("texture: level %d out of range", index.MipIndex))
	}
	var ok bool
	switch t.kind {
	case storage.Kind2D:
		ok = index.Type == gl.TEXTURE_2D
	case storage.KindCube:
		ok = gl.IsCubeMapFace(index.Type)
	case storage.Kind3D:
		ok = index.Type == gl.TEXTURE_3D
	case storage.Kind2DArray:
		ok = index.Type == gl.TEXTURE_2D_ARRAY
	}
	if !ok {
		panic(fmt.Sprintf("texture: index type %#x does not address a %v texture", uint32(index.Type), t.kind))
	}
}

func (t *Texture) image(index gl.ImageIndex) *image.Image {
	t.checkIndex(index)
	layers := t.images[index.MipIndex]
	layer := t.layerOf(index)
	if layer < 0 || layer >= len(layers) {
		panic(fmt.Sprintf("texture: layer %d out of range [0, %d) at level %d", layer, len(layers), index.MipIndex))
	}
	return layers[layer]
}

// baseImage returns the first image of level 0, or nil for a 2D array
// without layers.
func (t *Texture) baseImage() *image.Image {
	if len(t.images[0]) == 0 {
		return nil
	}
	return t.images[0][0]
}

// levelSize returns the size of a level as a storage sees it: the depth of
// a 2D array level is its layer count.
func (t *Texture) levelSize(level int) gl.Extents {
	layers := t.images[level]
	if len(layers) == 0 {
		return gl.Extents{}
	}
	size := layers[0].Size()
	if t.kind == storage.Kind2DArray {
		size.Depth = len(layers)
	}
	return size
}

// SetImage defines the level addressed by index and fills it from pixels,
// which may be nil to leave the level undefined in content. A 2D array
// index defines every layer of the level; size.Depth is the layer count
// and pixels holds the layers back to back.
func (t *Texture) SetImage(index gl.ImageIndex, internalFormat gl.Enum, size gl.Extents, typ gl.Enum,
	unpack gl.PixelUnpackState, pixels []byte) error {
	if t.immutable {
		return gl.Errorf(gl.INVALID_OPERATION, "Cannot redefine an immutable texture.")
	}
	if err := t.redefine(index, internalFormat, size); err != nil {
		return err
	}
	if pixels == nil {
		return nil
	}

	area := gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
	return t.load(index, area, func(img *image.Image, box gl.Box, layerPixels []byte) error {
		if t.shouldUseSetData(img, index.MipIndex) {
			layerIndex := t.index(index.MipIndex, t.imageLayer(index, img))
			if err := t.storage.SetData(layerIndex, img, nil, typ, unpack, layerPixels); err != nil {
				return err
			}
			return img.AssociateStorage(t.storage, layerIndex)
		}
		return img.SetData(box, unpack, typ, layerPixels)
	}, gl.GetInternalFormatInfo(internalFormat).ComputeDepthPitch(typ, size.Width, size.Height, unpack.Alignment), pixels)
}

// SubImage replaces area of the level addressed by index. For 2D arrays
// area.Z and area.Depth select layers. Updates reach an existing storage
// immediately.
func (t *Texture) SubImage(index gl.ImageIndex, area gl.Box, typ gl.Enum, unpack gl.PixelUnpackState, pixels []byte) error {
	info := gl.GetInternalFormatInfo(t.image(t.firstLayer(index)).InternalFormat())
	layerPitch := info.ComputeDepthPitch(typ, area.Width, area.Height, unpack.Alignment)
	return t.load(index, area, func(img *image.Image, box gl.Box, layerPixels []byte) error {
		layerIndex := t.index(index.MipIndex, t.imageLayer(index, img))
		if t.shouldUseSetData(img, layerIndex.MipIndex) {
			if err := t.updateImage(img, layerIndex); err != nil {
				return err
			}
			// Pixels the storage cannot take yet stay in the image.
			if !img.IsDirty() {
				if err := t.storage.SetData(layerIndex, img, &box, typ, unpack, layerPixels); err != nil {
					return err
				}
				return img.AssociateStorage(t.storage, layerIndex)
			}
		}
		return t.commitAfter(img, layerIndex, box, func() error {
			return img.SetData(box, unpack, typ, layerPixels)
		})
	}, layerPitch, pixels)
}

// SetCompressedImage defines the level addressed by index with
// block-compressed pixels.
func (t *Texture) SetCompressedImage(index gl.ImageIndex, internalFormat gl.Enum, size gl.Extents, pixels []byte) error {
	if t.immutable {
		return gl.Errorf(gl.INVALID_OPERATION, "Cannot redefine an immutable texture.")
	}
	if err := t.redefine(index, internalFormat, size); err != nil {
		return err
	}
	if pixels == nil {
		return nil
	}
	area := gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
	layerPitch := gl.GetInternalFormatInfo(internalFormat).ComputeDepthPitch(gl.UNSIGNED_BYTE, size.Width, size.Height, 1)
	return t.load(index, area, func(img *image.Image, box gl.Box, layerPixels []byte) error {
		return img.SetCompressedData(box, layerPixels)
	}, layerPitch, pixels)
}

// CompressedSubImage replaces a block-aligned area of a compressed level.
func (t *Texture) CompressedSubImage(index gl.ImageIndex, area gl.Box, pixels []byte) error {
	info := gl.GetInternalFormatInfo(t.image(t.firstLayer(index)).InternalFormat())
	layerPitch := info.ComputeDepthPitch(gl.UNSIGNED_BYTE, area.Width, area.Height, 1)
	return t.load(index, area, func(img *image.Image, box gl.Box, layerPixels []byte) error {
		layerIndex := t.index(index.MipIndex, t.imageLayer(index, img))
		return t.commitAfter(img, layerIndex, box, func() error {
			return img.SetCompressedData(box, layerPixels)
		})
	}, layerPitch, pixels)
}

// firstLayer maps a 2D array index to its first defined layer so the level
// format can be read from it.
func (t *Texture) firstLayer(index gl.ImageIndex) gl.ImageIndex {
	if t.kind == storage.Kind2DArray {
		return gl.Make2DArrayIndex(index.MipIndex, 0)
	}
	return index
}

// imageLayer returns the layer of img within the level of index.
func (t *Texture) imageLayer(index gl.ImageIndex, img *image.Image) int {
	if t.kind != storage.Kind2DArray {
		return t.layerOf(index)
	}
	for layer, candidate := range t.images[index.MipIndex] {
		if candidate == img {
			return layer
		}
	}
	panic("texture: image is not part of its level")
}

// load splits area into per-image boxes and calls fill for each with the
// matching slice of pixels. 2D arrays take one layer of layerPitch bytes
// per image.
func (t *Texture) load(index gl.ImageIndex, area gl.Box, fill func(img *image.Image, box gl.Box, pixels []byte) error,
	layerPitch int, pixels []byte) error {
	if t.kind != storage.Kind2DArray {
		img := t.image(index)
		if err := fill(img, area, pixels); err != nil {
			return err
		}
		t.dirtyImages = true
		return nil
	}

	layers := t.images[index.MipIndex]
	if area.Z < 0 || area.Z+area.Depth > len(layers) {
		panic(fmt.Sprintf("texture: layers [%d, %d) outside %d layers", area.Z, area.Z+area.Depth, len(layers)))
	}
	for i := range area.Depth {
		box := gl.Box{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height, Depth: 1}
		if err := fill(layers[area.Z+i], box, pixels[i*layerPitch:]); err != nil {
			return err
		}
	}
	t.dirtyImages = true
	return nil
}

// commitAfter runs update on img and uploads the result to the storage.
// An image that already held uncommitted pixels is uploaded whole.
func (t *Texture) commitAfter(img *image.Image, index gl.ImageIndex, region gl.Box, update func() error) error {
	wasDirty := img.IsDirty()
	if err := update(); err != nil {
		return err
	}
	if wasDirty {
		size := img.Size()
		region = gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
	}
	return t.commitRegion(img, index, region)
}

// shouldUseSetData reports whether pixels for img go straight into the
// storage.
func (t *Texture) shouldUseSetData(img *image.Image, level int) bool {
	if t.storage == nil || level >= t.storage.LevelCount() || !t.r.SetDataFasterThanImageUpload() {
		return false
	}
	info := gl.GetInternalFormatInfo(img.InternalFormat())
	return info.DepthBits == 0 && info.StencilBits == 0 && !info.Compressed
}

// CopySubImage draws sourceRect of source into the level addressed by
// index at destOffset. For 3D textures destOffset.Z selects the slice.
// The level must have a renderable format.
func (t *Texture) CopySubImage(index gl.ImageIndex, destOffset gl.Offset, source *storage.RenderTarget,
	sourceRect gl.Rectangle) error {
	img := t.image(index)
	if !img.IsRenderableFormat() {
		return gl.Errorf(gl.INVALID_OPERATION, "Format %#x cannot be the destination of a copy.", uint32(img.InternalFormat()))
	}
	if source == nil || source.SRV == nil {
		return gl.Errorf(gl.INVALID_OPERATION, "Copy source cannot be sampled.")
	}
	if err := t.ensureRenderTarget(); err != nil {
		return err
	}
	level := index.MipIndex
	if t.storage == nil || level >= t.storage.LevelCount() {
		return storage.ErrIncomplete
	}
	imageIndex := t.index(level, t.layerOf(index))
	if err := t.updateImage(img, imageIndex); err != nil {
		return err
	}

	rtIndex := imageIndex
	if t.kind == storage.Kind3D {
		rtIndex = gl.Make3DIndex(level, destOffset.Z)
	}
	dest, err := t.storage.GetRenderTarget(rtIndex)
	if err != nil {
		return err
	}
	if dest.RTV == nil {
		return gl.Errorf(gl.INVALID_OPERATION, "Copy destination is not a color target.")
	}

	sourceArea := gl.Box{X: sourceRect.X, Y: sourceRect.Y, Width: sourceRect.Width, Height: sourceRect.Height, Depth: 1}
	destArea := gl.Box{X: destOffset.X, Y: destOffset.Y, Width: sourceRect.Width, Height: sourceRect.Height, Depth: 1}
	err = t.r.Blitter().CopyTexture(source.SRV, sourceArea, source.Extents(), dest.RTV, destArea, dest.Extents(), nil,
		gl.GetInternalFormatInfo(img.InternalFormat()).Format, gl.NEAREST)
	if err != nil {
		return err
	}
	t.storage.InvalidateSwizzleCacheLevel(level)
	return img.AssociateStorage(t.storage, imageIndex)
}

// IsComplete reports whether the texture can be sampled with sampler:
// level 0 is defined and, for mipmapped filtering, every level down to
// 1x1 matches it.
func (t *Texture) IsComplete(sampler gl.SamplerState) bool {
	if !t.isBaseComplete() {
		return false
	}
	if t.immutable || !sampler.IsMipmapFiltered() {
		return true
	}
	levels := t.creationLevels()
	for level := 1; level < levels; level++ {
		if len(t.images[level]) != len(t.images[0]) {
			return false
		}
		for layer := range t.images[level] {
			if !t.isLevelComplete(level, layer) {
				return false
			}
		}
	}
	return true
}

func (t *Texture) isBaseComplete() bool {
	base := t.baseImage()
	if base == nil {
		return false
	}
	size := base.Size()
	if size.Width <= 0 || size.Height <= 0 || size.Depth <= 0 {
		return false
	}
	switch t.kind {
	case storage.KindCube:
		if size.Width != size.Height {
			return false
		}
		for _, face := range t.images[0][1:] {
			if face.Size() != size || face.InternalFormat() != base.InternalFormat() {
				return false
			}
		}
	case storage.Kind2DArray:
		for _, layer := range t.images[0][1:] {
			if layer.Size() != size || layer.InternalFormat() != base.InternalFormat() {
				return false
			}
		}
	}
	return true
}

// isLevelComplete reports whether the image at level and layer matches
// the size and format implied by the base level of its layer.
func (t *Texture) isLevelComplete(level, layer int) bool {
	if t.immutable {
		return true
	}
	baseLayer := layer
	if t.kind == storage.Kind2DArray {
		baseLayer = 0
	}
	if baseLayer >= len(t.images[0]) || layer >= len(t.images[level]) {
		return false
	}
	base := t.images[0][baseLayer].Size()
	if base.Width <= 0 || base.Height <= 0 || base.Depth <= 0 {
		return false
	}
	if level == 0 {
		return true
	}

	img := t.images[level][layer]
	if img.InternalFormat() != t.images[0][baseLayer].InternalFormat() {
		return false
	}
	want := gl.Extents{
		Width:  format.LevelSize(base.Width, level),
		Height: format.LevelSize(base.Height, level),
		Depth:  1,
	}
	if t.kind == storage.Kind3D {
		want.Depth = format.LevelSize(base.Depth, level)
	}
	return img.Size() == want
}

// creationLevels returns the length of the full mip chain of level 0.
func (t *Texture) creationLevels() int {
	size := t.levelSize(0)
	if t.kind != storage.Kind3D {
		size.Depth = 1
	}
	return format.MipLevelCount(size.Width, size.Height, size.Depth)
}

// GetSRV returns a view sampling the texture with sampler, creating and
// filling the storage on first use. Incomplete textures report
// storage.ErrIncomplete.
func (t *Texture) GetSRV(sampler gl.SamplerState) (d3d11.ShaderResourceView, error) {
	if err := t.initializeStorage(false); err != nil {
		return nil, err
	}
	if t.storage == nil || sampler.BaseLevel >= t.storage.LevelCount() {
		return nil, storage.ErrIncomplete
	}
	if err := t.updateStorage(); err != nil {
		return nil, err
	}
	return t.storage.GetSRV(sampler)
}

// GetRenderTarget returns the render target of the image addressed by
// index, converting the storage into a render target storage if needed.
func (t *Texture) GetRenderTarget(index gl.ImageIndex) (*storage.RenderTarget, error) {
	img := t.image(index)
	if err := t.ensureRenderTarget(); err != nil {
		return nil, err
	}
	if t.storage == nil || index.MipIndex >= t.storage.LevelCount() {
		return nil, storage.ErrIncomplete
	}
	if err := t.updateImage(img, t.index(index.MipIndex, t.layerOf(index))); err != nil {
		return nil, err
	}
	return t.storage.GetRenderTarget(index)
}

// GenerateMipmaps defines levels 1 and up from level 0 and fills them.
// A render target storage draws each level from the one above it;
// otherwise the images are reduced on the CPU.
func (t *Texture) GenerateMipmaps() error {
	if !t.isBaseComplete() {
		return gl.Errorf(gl.INVALID_OPERATION, "Cannot generate mipmaps for an incomplete base level.")
	}
	internalFormat := t.baseImage().InternalFormat()
	size := t.levelSize(0)
	levels := t.creationLevels()
	if t.immutable {
		levels = t.immutableLevels
	}

	for level := 1; level < levels; level++ {
		levelSize := gl.Extents{
			Width:  format.LevelSize(size.Width, level),
			Height: format.LevelSize(size.Height, level),
			Depth:  size.Depth,
		}
		if t.kind == storage.Kind3D {
			levelSize.Depth = format.LevelSize(size.Depth, level)
		}
		if err := t.redefineLevel(level, internalFormat, levelSize); err != nil {
			return err
		}
	}

	if t.storage != nil && t.storage.BindFlags()&d3d11.BIND_RENDER_TARGET != 0 {
		return t.generateMipmapsInStorage(min(levels, t.storage.LevelCount()))
	}

	for layer := range t.images[0] {
		for level := 1; level < levels; level++ {
			if err := image.GenerateMipmap(t.images[level][layer], t.images[level-1][layer]); err != nil {
				return err
			}
		}
	}
	t.dirtyImages = true
	t.log.Debug("texture: generated mipmaps on the CPU",
		slog.String("kind", t.kind.String()), slog.Int("levels", levels))
	return nil
}

func (t *Texture) generateMipmapsInStorage(levels int) error {
	for layer, img := range t.images[0] {
		if err := t.updateImage(img, t.index(0, layer)); err != nil {
			return err
		}
	}
	for layer := range t.images[0] {
		for level := 1; level < levels; level++ {
			dest := t.index(level, layer)
			if err := t.storage.GenerateMipmap(t.index(level-1, layer), dest); err != nil {
				return err
			}
			if err := t.images[level][layer].AssociateStorage(t.storage, dest); err != nil {
				return err
			}
		}
	}
	t.log.Debug("texture: generated mipmaps in storage",
		slog.String("kind", t.kind.String()), slog.Int("levels", levels))
	return nil
}

// Release releases the storage. The images read back the pixels they
// hold only in the storage and upload them again to the next one.
func (t *Texture) Release() error {
	if t.storage == nil {
		return nil
	}
	err := t.storage.Release()
	t.storage = nil
	t.markAllDirty()
	return err
}
