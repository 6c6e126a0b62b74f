package texture

import (
	"log/slog"

	"go.uber.org/multierr"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/image"
	"github.com/gogpu/texstore/internal/format"
	"github.com/gogpu/texstore/storage"
)

// redefine changes the images addressed by index. A cube index changes one
// face; any other index changes the whole level.
func (t *Texture) redefine(index gl.ImageIndex, internalFormat gl.Enum, size gl.Extents) error {
	t.checkIndex(index)
	if t.kind == storage.Kind2D || t.kind == storage.KindCube {
		size.Depth = 1
	}
	if t.kind == storage.KindCube {
		t.image(index).Redefine(internalFormat, size, false)
		return t.discardIfUnfit(index.MipIndex, internalFormat, size)
	}
	return t.redefineLevel(index.MipIndex, internalFormat, size)
}

// redefineLevel changes every image of level. For 2D arrays size.Depth is
// the new layer count.
func (t *Texture) redefineLevel(level int, internalFormat gl.Enum, size gl.Extents) error {
	imageSize := size
	if t.kind == storage.Kind2DArray {
		t.resizeLayers(level, size.Depth)
		imageSize.Depth = 1
	}
	for _, img := range t.images[level] {
		img.Redefine(internalFormat, imageSize, false)
	}
	return t.discardIfUnfit(level, internalFormat, size)
}

func (t *Texture) resizeLayers(level, layers int) {
	images := t.images[level]
	for len(images) > layers {
		images[len(images)-1].Redefine(gl.NONE, gl.Extents{}, true)
		images = images[:len(images)-1]
	}
	for len(images) < layers {
		images = append(images, image.New(t.r, gl.TEXTURE_2D_ARRAY, gl.NONE, gl.Extents{}))
	}
	t.images[level] = images
}

// discardIfUnfit releases the storage when level no longer matches it.
func (t *Texture) discardIfUnfit(level int, internalFormat gl.Enum, size gl.Extents) error {
	s := t.storage
	if s == nil {
		return nil
	}
	fits := level < s.LevelCount() &&
		s.InternalFormat() == internalFormat &&
		s.LevelWidth(level) == size.Width &&
		s.LevelHeight(level) == size.Height
	if fits && (t.kind == storage.Kind3D || t.kind == storage.Kind2DArray) {
		fits = s.LevelDepth(level) == size.Depth
	}
	if fits {
		return nil
	}

	t.log.Debug("texture: releasing storage that no longer fits",
		slog.Int("level", level), slog.Int("storageLevels", s.LevelCount()))
	err := s.Release()
	t.storage = nil
	t.markAllDirty()
	return err
}

func (t *Texture) markAllDirty() {
	for _, images := range t.images {
		for _, img := range images {
			img.MarkDirty()
		}
	}
	t.dirtyImages = true
}

// SetStorage fixes the format, size and level count of the texture and
// creates its storage. Later SetImage calls fail; sub-image updates and
// mipmap generation still work.
func (t *Texture) SetStorage(levels int, internalFormat gl.Enum, size gl.Extents) error {
	if t.immutable {
		return gl.Errorf(gl.INVALID_OPERATION, "Texture storage is already immutable.")
	}
	if levels < 1 || levels > gl.ImplementationMaxTextureLevels {
		return gl.Errorf(gl.INVALID_VALUE, "Invalid level count %d.", levels)
	}
	if t.kind == storage.Kind2D || t.kind == storage.KindCube {
		size.Depth = 1
	}

	for level := range t.images {
		levelSize := gl.Extents{}
		levelFormat := gl.NONE
		if level < levels {
			levelFormat = internalFormat
			levelSize = gl.Extents{
				Width:  format.LevelSize(size.Width, level),
				Height: format.LevelSize(size.Height, level),
				Depth:  size.Depth,
			}
			if t.kind == storage.Kind3D {
				levelSize.Depth = format.LevelSize(size.Depth, level)
			}
		}
		imageSize := levelSize
		if t.kind == storage.Kind2DArray {
			t.resizeLayers(level, levelSize.Depth)
			imageSize.Depth = min(levelSize.Depth, 1)
		}
		for _, img := range t.images[level] {
			img.Redefine(levelFormat, imageSize, true)
		}
	}

	s := t.newStorage(internalFormat, size, t.renderTargetUsage, levels)
	err := t.setCompleteStorage(s)
	t.immutable, t.immutableLevels = true, levels
	return err
}

// initializeStorage creates the storage once level 0 is complete and
// uploads every complete level.
func (t *Texture) initializeStorage(renderTarget bool) error {
	if t.storage != nil || !t.isBaseComplete() {
		return nil
	}
	if err := t.setCompleteStorage(t.createCompleteStorage(renderTarget || t.renderTargetUsage)); err != nil {
		return err
	}
	return t.updateStorage()
}

// createCompleteStorage creates a storage for the size of level 0 with as
// many levels as the current storage, or a full mip chain.
func (t *Texture) createCompleteStorage(renderTarget bool) *storage.Storage {
	levels := t.creationLevels()
	switch {
	case t.storage != nil:
		levels = t.storage.LevelCount()
	case t.immutable:
		levels = t.immutableLevels
	}
	return t.newStorage(t.baseImage().InternalFormat(), t.levelSize(0), renderTarget, levels)
}

func (t *Texture) newStorage(internalFormat gl.Enum, size gl.Extents, renderTarget bool, levels int) *storage.Storage {
	switch t.kind {
	case storage.KindCube:
		return storage.NewCube(t.r, internalFormat, renderTarget, size.Width, levels)
	case storage.Kind3D:
		return storage.New3D(t.r, internalFormat, renderTarget, size.Width, size.Height, size.Depth, levels)
	case storage.Kind2DArray:
		return storage.New2DArray(t.r, internalFormat, renderTarget, size.Width, size.Height, size.Depth, levels)
	default:
		return storage.New2D(t.r, internalFormat, renderTarget, size.Width, size.Height, levels)
	}
}

// setCompleteStorage replaces the storage with s. Images associated with
// the old storage read their pixels back.
func (t *Texture) setCompleteStorage(s *storage.Storage) error {
	var err error
	if t.storage != nil {
		err = t.storage.Release()
	}
	t.storage = s
	t.dirtyImages = true
	return err
}

// ensureRenderTarget makes the storage a render target, copying the
// current contents into a new storage when it is not one yet.
func (t *Texture) ensureRenderTarget() error {
	if err := t.initializeStorage(true); err != nil {
		return err
	}
	if t.storage == nil || t.storage.IsRenderTarget() {
		return nil
	}
	bind := storage.GetTextureBindFlags(t.storage.InternalFormat(), true)
	if bind&(d3d11.BIND_RENDER_TARGET|d3d11.BIND_DEPTH_STENCIL) == 0 {
		return nil
	}

	s := t.createCompleteStorage(true)
	if err := t.storage.CopyToStorage(s); err != nil {
		return multierr.Append(err, s.Release())
	}
	t.log.Debug("texture: converted storage into a render target", slog.String("kind", t.kind.String()))
	return t.setCompleteStorage(s)
}

// updateStorage uploads every dirty image of a complete level.
func (t *Texture) updateStorage() error {
	if t.storage == nil || !t.dirtyImages {
		return nil
	}
	for level := range t.storage.LevelCount() {
		for layer, img := range t.images[level] {
			if err := t.updateImage(img, t.index(level, layer)); err != nil {
				return err
			}
		}
	}
	t.dirtyImages = false
	return nil
}

// updateImage uploads img when it is dirty and its level is complete.
func (t *Texture) updateImage(img *image.Image, index gl.ImageIndex) error {
	if t.storage == nil || !img.IsDirty() || !t.isLevelComplete(index.MipIndex, t.layerOf(index)) {
		return nil
	}
	size := img.Size()
	return t.commitRegion(img, index, gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth})
}

// commitRegion uploads region of img to the storage, if there is one
// holding its level.
func (t *Texture) commitRegion(img *image.Image, index gl.ImageIndex, region gl.Box) error {
	if t.storage == nil || index.MipIndex >= t.storage.LevelCount() {
		return nil
	}
	if err := img.CopyToStorage(t.storage, index, region); err != nil {
		return err
	}
	img.MarkClean()
	return nil
}
