package texstore

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/internal/blit"
	"github.com/gogpu/texstore/internal/shaders"
	"github.com/gogpu/texstore/storage"
	"github.com/gogpu/texstore/texture"
)

// Caps lists the texture limits of the device.
type Caps struct {
	Max2DTextureSize      int
	MaxCubeMapTextureSize int
	Max3DTextureSize      int
	MaxArrayTextureLayers int
}

// capsFor returns the limits guaranteed by feature level 9_3 or 11_0.
func capsFor(level9 bool) Caps {
	if level9 {
		return Caps{
			Max2DTextureSize:      4096,
			MaxCubeMapTextureSize: 4096,
			Max3DTextureSize:      256,
			MaxArrayTextureLayers: 1,
		}
	}
	return Caps{
		Max2DTextureSize:      16384,
		MaxCubeMapTextureSize: 16384,
		Max3DTextureSize:      2048,
		MaxArrayTextureLayers: 2048,
	}
}

// srvSlot addresses one shader resource binding.
type srvSlot struct {
	stage d3d11.ShaderStage
	slot  int
}

// Renderer owns a D3D11 device and immediate context and the state shared
// by every texture created on them: the blitter, the device limits, the
// pipeline bindings it last applied and the device-lost flag.
//
// Renderer implements the collaborator interfaces of the storage, image,
// texture and blit packages.
//
// Renderer is not safe for concurrent use; drive it from the GL command
// thread.
type Renderer struct {
	dev  d3d11.Device
	ctx  d3d11.DeviceContext
	opts options
	log  *slog.Logger
	caps Caps

	blitter *blit.Blitter

	deviceLost bool
	stateDirty bool

	// appliedSRVs caches bindings made through SetShaderResource until the
	// state is marked dirty.
	appliedSRVs map[srvSlot]d3d11.ShaderResourceView
}

// NewRenderer creates a renderer on dev and its immediate context ctx and
// builds the blitter.
func NewRenderer(dev d3d11.Device, ctx d3d11.DeviceContext, opts ...Option) (*Renderer, error) {
	if dev == nil || ctx == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		log = Logger()
	}
	caps := capsFor(o.level9)
	if o.max3DTextureSize > 0 {
		caps.Max3DTextureSize = o.max3DTextureSize
	}
	lib := o.library
	if lib == nil {
		lib = shaders.Default(o.level9)
	}

	r := &Renderer{
		dev:         dev,
		ctx:         ctx,
		opts:        o,
		log:         log,
		caps:        caps,
		stateDirty:  true,
		appliedSRVs: make(map[srvSlot]d3d11.ShaderResourceView),
	}
	b, err := blit.New(r, lib)
	if err != nil {
		return nil, fmt.Errorf("texstore: create blitter: %w", err)
	}
	r.blitter = b

	log.Info("texstore: renderer created",
		slog.Bool("level9", o.level9),
		slog.Int("max3DTextureSize", caps.Max3DTextureSize),
		slog.String("shaders", fmt.Sprintf("%T", lib)))
	return r, nil
}

// Device returns the device.
func (r *Renderer) Device() d3d11.Device { return r.dev }

// DeviceContext returns the immediate context.
func (r *Renderer) DeviceContext() d3d11.DeviceContext { return r.ctx }

// Blitter returns the blitter, or nil after Release.
func (r *Renderer) Blitter() storage.Blitter {
	if r.blitter == nil {
		return nil
	}
	return r.blitter
}

// IsLevel9 reports whether the device runs at feature level 9.
func (r *Renderer) IsLevel9() bool { return r.opts.level9 }

// Caps returns the texture limits of the device.
func (r *Renderer) Caps() Caps { return r.caps }

// Max3DTextureSize returns Caps().Max3DTextureSize.
func (r *Renderer) Max3DTextureSize() int { return r.caps.Max3DTextureSize }

// Logger returns the logger of the renderer.
func (r *Renderer) Logger() *slog.Logger { return r.log }

// SetDataFasterThanImageUpload reports whether WithSetDataWorkaround was
// enabled.
func (r *Renderer) SetDataFasterThanImageUpload() bool { return r.opts.setData }

// NotifyDeviceLost records that the device was removed or reset.
func (r *Renderer) NotifyDeviceLost() {
	if r.deviceLost {
		return
	}
	r.deviceLost = true
	r.log.Warn("texstore: device lost")
}

// IsDeviceLost reports whether NotifyDeviceLost was called.
func (r *Renderer) IsDeviceLost() bool { return r.deviceLost }

// Err returns ErrDeviceLost once the device was lost and nil before.
func (r *Renderer) Err() error {
	if r.deviceLost {
		return ErrDeviceLost
	}
	return nil
}

// MarkAllStateDirty forgets every binding the renderer applied. The next
// draw reapplies the full pipeline state.
func (r *Renderer) MarkAllStateDirty() {
	r.stateDirty = true
	clear(r.appliedSRVs)
}

// StateDirty reports whether the pipeline state must be reapplied.
func (r *Renderer) StateDirty() bool { return r.stateDirty }

// ClearStateDirty records that the caller reapplied the pipeline state.
func (r *Renderer) ClearStateDirty() { r.stateDirty = false }

// SetOneTimeRenderTarget binds rtv as the only render target for the next
// draw.
func (r *Renderer) SetOneTimeRenderTarget(rtv d3d11.RenderTargetView) {
	r.ctx.OMSetRenderTargets([]d3d11.RenderTargetView{rtv}, nil)
}

// UnapplyRenderTargets unbinds every render target so their textures can
// be sampled.
func (r *Renderer) UnapplyRenderTargets() {
	r.ctx.OMSetRenderTargets(nil, nil)
}

// SetShaderResource binds srv to slot of the vertex or pixel stage. A
// binding already applied since the last MarkAllStateDirty is skipped.
func (r *Renderer) SetShaderResource(stage d3d11.ShaderStage, slot int, srv d3d11.ShaderResourceView) {
	key := srvSlot{stage: stage, slot: slot}
	if cur, ok := r.appliedSRVs[key]; ok && cur == srv {
		return
	}
	views := []d3d11.ShaderResourceView{srv}
	switch stage {
	case d3d11.ShaderStageVertex:
		r.ctx.VSSetShaderResources(uint32(slot), views)
	case d3d11.ShaderStagePixel:
		r.ctx.PSSetShaderResources(uint32(slot), views)
	default:
		panic(fmt.Sprintf("texstore: shader resources cannot be bound to stage %d", int(stage)))
	}
	r.appliedSRVs[key] = srv
}

// NewTexture creates a texture of kind whose storages live on this
// renderer.
func (r *Renderer) NewTexture(kind storage.Kind) *texture.Texture {
	return texture.New(r, kind)
}

// Release releases the blitter. Textures and storages created on the
// renderer must be released by their owners first.
func (r *Renderer) Release() {
	if r.blitter == nil {
		return
	}
	r.blitter.Release()
	r.blitter = nil
	clear(r.appliedSRVs)
}
