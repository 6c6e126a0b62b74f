package image

import (
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/storage"
)

// IsAssociatedStorageValid reports whether the pixels of the image live
// in s.
func (i *Image) IsAssociatedStorageValid(s *storage.Storage) bool {
	return i.storage != nil && i.storage == s
}

// RecoverFromAssociatedStorage reads the pixels back from the associated
// storage slot into CPU memory and drops the association. It does nothing
// for an image without one.
func (i *Image) RecoverFromAssociatedStorage() error {
	if i.storage == nil {
		return nil
	}
	if i.empty() {
		i.disassociate()
		return nil
	}

	staging, err := i.createStaging(nil)
	if err != nil {
		return err
	}
	defer staging.Release()

	if err := i.storage.CopySubresourceLevel(staging, 0, i.storageIndex, gl.Box{}); err != nil {
		return err
	}

	ctx := i.r.DeviceContext()
	mapped, err := ctx.Map(staging, 0, d3d11.MAP_READ, 0)
	if err != nil {
		return gl.OutOfMemory("Failed to map internal staging texture, result: 0x%X.", d3d11.HRESULT(err))
	}
	defer ctx.Unmap(staging, 0)

	if !i.data.Resize(i.depthPitch * i.depth) {
		return gl.OutOfMemory("Failed to allocate image memory.")
	}
	i.copyRows(i.data.Data(), mapped)

	i.recoveries++
	i.log.Debug("image: recovered pixels from storage",
		slog.Int("level", i.storageIndex.MipIndex),
		slog.Int("layer", i.storageIndex.LayerIndex),
		slog.Int("recoveries", i.recoveries))
	i.disassociate()
	return nil
}

// copyRows copies a mapped subresource with driver pitches into dst with
// the image pitches.
func (i *Image) copyRows(dst []byte, mapped d3d11.MappedSubresource) {
	rows := i.depthPitch / max(i.rowPitch, 1)
	for z := 0; z < i.depth; z++ {
		for y := 0; y < rows; y++ {
			src := z*int(mapped.DepthPitch) + y*int(mapped.RowPitch)
			off := z*i.depthPitch + y*i.rowPitch
			copy(dst[off:off+i.rowPitch], mapped.Data[src:src+i.rowPitch])
		}
	}
}

func (i *Image) disassociate() {
	if i.storage != nil {
		i.storage.DisassociateImage(i.storageIndex, i)
		i.storage = nil
	}
}

// CopyToStorage uploads region of the image into the slot of s addressed
// by index. Another image holding the slot recovers its pixels first.
//
// Unless the image has already been read back twice, it then associates
// with the slot and frees its memory.
func (i *Image) CopyToStorage(s *storage.Storage, index gl.ImageIndex, region gl.Box) error {
	if i.storage == s && i.storageIndex == index {
		i.dirty = false
		return nil
	}
	if i.empty() {
		return nil
	}

	associate := i.recoveries < maxRecoveries
	if associate {
		if err := s.ReleaseAssociatedImage(index, i); err != nil {
			return err
		}
	}

	data, err := i.pixels()
	if err != nil {
		return err
	}
	staging, err := i.createStaging([]d3d11.SubresourceData{{
		Data:       data,
		RowPitch:   uint32(i.rowPitch),
		SlicePitch: uint32(i.depthPitch),
	}})
	if err != nil {
		return err
	}
	defer staging.Release()

	if err := s.UpdateSubresourceLevel(staging, 0, index, region); err != nil {
		return err
	}
	i.dirty = false

	if associate {
		s.AssociateImage(i, index)
		i.storage, i.storageIndex = s, index
		i.data.Resize(0)
	}
	return nil
}

// AssociateStorage records that the pixels of the image now live in the
// slot of s addressed by index, after the storage wrote them itself. The
// CPU copy is dropped.
func (i *Image) AssociateStorage(s *storage.Storage, index gl.ImageIndex) error {
	if err := s.ReleaseAssociatedImage(index, i); err != nil {
		return err
	}
	i.disassociate()
	s.AssociateImage(i, index)
	i.storage, i.storageIndex = s, index
	i.data.Resize(0)
	i.dirty = false
	return nil
}

// createStaging creates a CPU-accessible copy target shaped like the image.
func (i *Image) createStaging(initial []d3d11.SubresourceData) (d3d11.Resource, error) {
	const access = d3d11.CPU_ACCESS_READ | d3d11.CPU_ACCESS_WRITE
	dev := i.r.Device()

	var (
		res d3d11.Resource
		err error
	)
	if i.target == gl.TEXTURE_3D {
		res, err = dev.CreateTexture3D(&d3d11.Texture3DDesc{
			Width:          uint32(i.width),
			Height:         uint32(i.height),
			Depth:          uint32(i.depth),
			MipLevels:      1,
			Format:         i.formats.TexFormat,
			Usage:          d3d11.USAGE_STAGING,
			CPUAccessFlags: access,
		}, initial)
	} else {
		res, err = dev.CreateTexture2D(&d3d11.Texture2DDesc{
			Width:          uint32(i.width),
			Height:         uint32(i.height),
			MipLevels:      1,
			ArraySize:      1,
			Format:         i.formats.TexFormat,
			SampleDesc:     d3d11.SampleDesc{Count: 1},
			Usage:          d3d11.USAGE_STAGING,
			CPUAccessFlags: access,
		}, initial)
	}
	if err != nil {
		return nil, gl.OutOfMemory("Failed to create internal staging texture, result: 0x%X.", d3d11.HRESULT(err))
	}
	return res, nil
}
