// Package blit implements the blitter: a small internal renderer that
// borrows the device pipeline for one draw at a time to convert formats,
// apply channel swizzles and copy depth between D3D11 resources.
//
// A Blitter is created once per renderer. Every operation is a
// self-contained transaction: it binds the state it needs, draws, unbinds
// its views and tells the renderer that all cached pipeline state is
// dirty.
//
//	b, err := blit.New(renderer, lib)
//	if err != nil {
//	    return err
//	}
//	defer b.Release()
//
//	err = b.SwizzleTexture(srv, rtv, gl.Extents{Width: 64, Height: 64, Depth: 1},
//	    gl.BLUE, gl.GREEN, gl.RED, gl.ONE)
//
// Partial depth/stencil copies cannot go through the pipeline. They run on
// the CPU through staging textures instead; see [Blitter.CopyDepthStencil].
//
// # Thread Safety
//
// A Blitter is driven from the single GL command thread, like the
// renderer that owns it. It does not lock.
package blit
