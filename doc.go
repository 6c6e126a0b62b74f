// Package texstore implements GL texture storage on Direct3D 11: the GPU
// resources behind GL textures, the views and render targets derived from
// them, channel swizzles, format-converting blits and the CPU images that
// stage uploads.
//
// # Overview
//
// A Renderer owns a device and its immediate context. Textures created on
// it keep their images on the CPU until they are sampled or rendered to,
// at which point a storage of the matching kind is created and filled:
//
//	r, err := texstore.NewRenderer(dev, dev.ImmediateContext())
//	if err != nil {
//	    return err
//	}
//	defer r.Release()
//
//	tex := r.NewTexture(storage.Kind2D)
//	err = tex.SetImage(gl.Make2DIndex(0), gl.RGBA8, gl.Extents{Width: 64, Height: 64, Depth: 1},
//	    gl.UNSIGNED_BYTE, gl.DefaultPixelUnpackState(), pixels)
//	...
//	srv, err := tex.GetSRV(gl.DefaultSamplerState())
//
// # Architecture
//
// The module is organized into:
//   - d3d11: the device interfaces, descriptors and DXGI formats, with a
//     CPU reference device in d3d11/soft
//   - gl: GL enums, image indices, boxes, sampler and unpack state
//   - storage: texture storages of the 2D, cube, 3D and 2D array kinds
//   - image: CPU images and their association with storage slots
//   - texture: GL texture objects tying images to storages
//   - internal/blit: the blitter that draws swizzles and copies
//
// # Feature levels
//
// WithFeatureLevel9 selects the feature level 9 paths: views always cover
// every level, 3D blits are unavailable and shaders use level 9 profiles.
//
// # Logging
//
// texstore logs through log/slog and is silent by default. See SetLogger
// and WithLogger.
//
// # Thread Safety
//
// A Renderer and everything created on it are driven from a single GL
// command thread and do not lock. SetLogger and Logger are safe for
// concurrent use.
package texstore
