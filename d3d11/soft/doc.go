// Package soft implements the d3d11 interfaces on the CPU.
//
// Textures and buffers are plain byte slices laid out exactly like mapped
// D3D11 memory, so copies, updates and staging reads behave like the real
// API. The pipeline is not executed: Draw records a snapshot of the bound
// state, which tests inspect to verify what a blit would have rendered.
//
// Failures can be injected per call with FailNext, which makes the next
// matching call return an ErrorCode with the chosen HRESULT.
//
// Example:
//
//	dev := soft.New()
//	ctx := dev.ImmediateContext()
//	dev.FailNext("CreateTexture2D", d3d11.DXGI_ERROR_DEVICE_REMOVED)
package soft
