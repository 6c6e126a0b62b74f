//go:build !windows

package shaders

// Default returns the platform shader library. Without the D3D compiler
// this is the portable library; the level 9 flag only affects DXBC profiles.
func Default(_ bool) Library {
	return NewPortable()
}
