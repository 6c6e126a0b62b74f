// Package d3d11 describes the slice of the Direct3D 11 API used by texture
// storage and the blitter.
//
// The package carries no implementation. Device, DeviceContext and the
// resource and view interfaces mirror their COM counterparts closely enough
// that a cgo or syscall binding can satisfy them directly; the soft
// sub-package provides a CPU reference device used by tests and tools.
//
// # Descriptors
//
// Descriptor structs keep the D3D11 field names. Unions in the native API
// (the per-dimension members of view descriptors) are flattened into one
// field per dimension; only the field selected by ViewDimension is read.
//
// # Thread Safety
//
// Like the native immediate context, a DeviceContext is single-writer.
// Callers must not submit commands from more than one goroutine.
package d3d11
