// Package storage implements D3D11 texture storage: the GPU resource behind
// a GL texture together with the views, render targets and swizzled copies
// derived from it.
//
// A Storage is created for one of four texture kinds:
//
//	s2d := storage.New2D(r, gl.RGBA8, true, 256, 256, 0)
//	cube := storage.NewCube(r, gl.RGBA8, false, 64, 1)
//	vol := storage.New3D(r, gl.R8, false, 32, 32, 8, 1)
//	arr := storage.New2DArray(r, gl.RGBA8, true, 64, 64, 4, 1)
//
// The D3D11 texture is created lazily on first use. Views are memoized for
// the life of the storage and released by Release.
//
// # Swizzles
//
// GL texture swizzles are applied by rendering each level into a parallel
// swizzle texture. The combination last applied to every level is cached,
// so the blit only reruns when the requested combination changes or the
// level content is written.
//
// # Image association
//
// A storage slot (a level, or a level and layer) may be associated with the
// CPU-side Image that last uploaded it. Before another image takes the slot,
// or before the storage is released, the associated image recovers its
// pixels from the GPU resource.
//
// # Thread Safety
//
// Storage is not safe for concurrent use. It is driven from the GL command
// thread, like the renderer it borrows the device from.
package storage
