package storage

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/gogpu/texstore/gl"
)

// slotKey addresses the image slot of a level, or of a level and layer for
// cube and array storages.
type slotKey struct {
	level int
	layer int
}

// Image is a CPU-side image that can be associated with a storage slot.
//
// When the slot is about to be taken over, or the storage is released,
// the associated image reads its contents back from the storage so that
// no data is lost.
type Image interface {
	// IsAssociatedStorageValid reports whether the image still considers
	// s its storage.
	IsAssociatedStorageValid(s *Storage) bool
	// RecoverFromAssociatedStorage copies the slot contents back into the
	// image and drops the association.
	RecoverFromAssociatedStorage() error
}

func (s *Storage) slotOf(index gl.ImageIndex) slotKey {
	if index.MipIndex < 0 || index.MipIndex >= gl.ImplementationMaxTextureLevels {
		panic(fmt.Sprintf("storage: image level %d out of range", index.MipIndex))
	}
	return s.ops.slot(index)
}

// AssociateImage records img as the image backing index.
func (s *Storage) AssociateImage(img Image, index gl.ImageIndex) {
	s.images[s.slotOf(index)] = img
}

// IsAssociatedImageValid reports whether img is the image backing index.
func (s *Storage) IsAssociatedImageValid(index gl.ImageIndex, img Image) bool {
	return s.images[s.slotOf(index)] == img
}

// DisassociateImage clears the slot of index if img holds it.
func (s *Storage) DisassociateImage(index gl.ImageIndex, img Image) {
	key := s.slotOf(index)
	if s.images[key] == img {
		delete(s.images, key)
	}
}

// ReleaseAssociatedImage prepares index for incoming. An image other than
// incoming that still holds the slot recovers its data from the storage
// first.
func (s *Storage) ReleaseAssociatedImage(index gl.ImageIndex, incoming Image) error {
	key := s.slotOf(index)
	old := s.images[key]
	if old == nil || old == incoming {
		return nil
	}
	if !old.IsAssociatedStorageValid(s) {
		panic(fmt.Sprintf("storage: image at level %d layer %d lost its association", key.level, key.layer))
	}
	return old.RecoverFromAssociatedStorage()
}

// recoverImages asks every associated image to read its data back, in
// level then layer order.
func (s *Storage) recoverImages() error {
	keys := make([]slotKey, 0, len(s.images))
	for key := range s.images {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b slotKey) int {
		if c := cmp.Compare(a.level, b.level); c != 0 {
			return c
		}
		return cmp.Compare(a.layer, b.layer)
	})

	var err error
	for _, key := range keys {
		img := s.images[key]
		if img == nil {
			continue
		}
		if !img.IsAssociatedStorageValid(s) {
			panic(fmt.Sprintf("storage: image at level %d layer %d lost its association", key.level, key.layer))
		}
		err = multierr.Append(err, img.RecoverFromAssociatedStorage())
	}
	clear(s.images)
	return err
}
