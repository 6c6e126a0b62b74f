// Package format maps GL internal formats onto DXGI formats.
//
// It answers, per internal format, which DXGI formats back the texture and
// its shader-resource, render-target and depth-stencil views, which four
// channel format swizzled views sample from, and which load function turns
// client pixels of a given type into the texture's layout. Per DXGI format
// it reports pixel size, block size and the placement of depth and stencil
// bits.
package format
