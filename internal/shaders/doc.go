// Package shaders holds the blit and swizzle shader programs and the
// libraries that turn them into device bytecode.
//
// Every program is written in HLSL and embedded into the binary. On
// Windows, [NewCompiler] compiles them with d3dcompiler_47.dll. Elsewhere
// [NewPortable] compiles the WGSL renditions of the 2D float programs to
// SPIR-V with naga and hands back HLSL source for the rest, which is what
// the software device in d3d11/soft expects.
//
// Programs are addressed by their HLSL entry point name:
//
//	lib := shaders.Default(false)
//	vs, err := lib.Bytecode(shaders.VSPassthrough2D)
package shaders
