// Package image holds the CPU-side copy of one texture image.
//
// An Image keeps the pixels of a single mip level (one face of a cube map,
// one layer of a 2D array, or a whole 3D level) in the native DXGI layout
// of its internal format. Uploads convert client pixels with the load
// function of the format as they arrive.
//
// Copying an image into a storage associates it with the storage slot and
// frees its CPU memory. The pixels are read back from the storage through a
// staging texture the next time the image needs them, or when another image
// takes over the slot:
//
//	img := image.New(r, gl.TEXTURE_2D, gl.RGBA8, gl.Extents{Width: 64, Height: 64, Depth: 1})
//	if err := img.SetData(area, unpack, gl.UNSIGNED_BYTE, pixels); err != nil {
//	    return err
//	}
//	if err := img.CopyToStorage(s, gl.Make2DIndex(0), area); err != nil {
//	    return err
//	}
//
// Images that have been read back twice keep their memory after later
// copies instead of associating again.
package image
