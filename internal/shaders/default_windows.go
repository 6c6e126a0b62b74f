//go:build windows

package shaders

// Default returns the platform shader library: the D3D compiler.
func Default(level9 bool) Library {
	return NewCompiler(level9)
}
