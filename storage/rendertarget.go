package storage

import (
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

// targetKey addresses a render target. layer is gl.EntireLevel for a
// target covering a whole level.
type targetKey struct {
	level int
	layer int
}

// RenderTarget is a level, or one layer of a level, bound for rendering.
// Exactly one of RTV and DSV is set. SRV samples the same image and is nil
// for single 3D slices.
type RenderTarget struct {
	RTV     d3d11.RenderTargetView
	DSV     d3d11.DepthStencilView
	SRV     d3d11.ShaderResourceView
	Texture d3d11.Resource

	InternalFormat gl.Enum
	Width          int
	Height         int
	Depth          int
	Samples        int

	// ownsSRV is false when SRV is the storage's level view.
	ownsSRV bool
}

// Extents returns the size of the target.
func (rt *RenderTarget) Extents() gl.Extents {
	return gl.Extents{Width: rt.Width, Height: rt.Height, Depth: rt.Depth}
}

// Area returns the box covering the whole target.
func (rt *RenderTarget) Area() gl.Box {
	return gl.Box{Width: rt.Width, Height: rt.Height, Depth: rt.Depth}
}

func (rt *RenderTarget) release() {
	safeRelease(rt.RTV)
	safeRelease(rt.DSV)
	if rt.ownsSRV {
		safeRelease(rt.SRV)
	}
}

// GetRenderTarget returns the render target of index, creating its views
// on first use.
func (s *Storage) GetRenderTarget(index gl.ImageIndex) (*RenderTarget, error) {
	s.checkLevel(index.MipIndex)
	key := s.ops.targetKey(index)
	return s.renderTargets.GetOrCreate(key, func() (*RenderTarget, error) {
		tex, err := s.Resource()
		if err != nil {
			return nil, err
		}
		rt, err := s.ops.createRenderTarget(s, tex, index)
		if err != nil {
			return nil, err
		}
		s.log.Debug("storage: created render target",
			slog.Int("level", key.level),
			slog.Int("layer", key.layer),
			slog.Bool("depthStencil", rt.DSV != nil))
		return rt, nil
	})
}

// newRenderTarget creates the color view from rtv when the format has a
// render target format, else the depth view from dsv. An owned srv is
// released when the view cannot be created.
func (s *Storage) newRenderTarget(tex d3d11.Resource, level, depth int, srv d3d11.ShaderResourceView, ownsSRV bool,
	rtv *d3d11.RenderTargetViewDesc, dsv *d3d11.DepthStencilViewDesc) (*RenderTarget, error) {
	rt := &RenderTarget{
		SRV:            srv,
		Texture:        tex,
		InternalFormat: s.internalFormat,
		Width:          s.LevelWidth(level),
		Height:         s.LevelHeight(level),
		Depth:          depth,
		ownsSRV:        ownsSRV,
	}

	switch {
	case s.formats.RTVFormat != d3d11.FORMAT_UNKNOWN:
		view, err := s.r.Device().CreateRenderTargetView(tex, rtv)
		if err != nil {
			rt.release()
			return nil, gl.OutOfMemory("Failed to create internal render target view for texture storage, result: 0x%X.",
				d3d11.HRESULT(err))
		}
		rt.RTV = view
	case s.formats.DSVFormat != d3d11.FORMAT_UNKNOWN && dsv != nil:
		view, err := s.r.Device().CreateDepthStencilView(tex, dsv)
		if err != nil {
			rt.release()
			return nil, gl.OutOfMemory("Failed to create internal depth stencil view for texture storage, result: 0x%X.",
				d3d11.HRESULT(err))
		}
		rt.DSV = view
	default:
		if ownsSRV {
			safeRelease(srv)
		}
		panic("storage: render target of a format that is neither color nor depth renderable")
	}
	return rt, nil
}
