// Package texture ties the CPU images of a GL texture to its D3D11 storage.
//
// A Texture owns one image per level and layer. Uploads land in the images
// and reach the storage when the texture is sampled or rendered to:
//
//	tex := texture.New(r, storage.Kind2D)
//	err := tex.SetImage(gl.Make2DIndex(0), gl.RGBA8, size, gl.UNSIGNED_BYTE, unpack, pixels)
//	...
//	srv, err := tex.GetSRV(gl.DefaultSamplerState())
//
// The storage is created on first use with a full mip chain for the size of
// level 0. Redefining a level so that it no longer fits the storage
// releases the storage; its images read their pixels back first.
//
// GenerateMipmaps draws each level from the one above it when the storage
// is a render target and reduces the images on the CPU otherwise.
package texture
