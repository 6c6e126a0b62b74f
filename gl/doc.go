// Package gl holds the OpenGL ES vocabulary consumed by texture storage:
// enums, image indices, regions, sampler and unpack state, internal format
// metadata and the GL error type that storage failures are reported with.
package gl
