package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/cache"
	"github.com/gogpu/texstore/internal/format"
)

// ErrIncomplete is returned when a resource is requested from a storage
// with an empty dimension. Such a storage never creates a D3D11 texture.
var ErrIncomplete = errors.New("storage: incomplete texture has no resource")

// Renderer is the part of the owning renderer a storage depends on.
// The device and context are borrowed, never released by the storage.
type Renderer interface {
	Device() d3d11.Device
	DeviceContext() d3d11.DeviceContext
	Blitter() Blitter
	IsLevel9() bool
	// NotifyDeviceLost is called when texture creation reports a removed
	// or reset device.
	NotifyDeviceLost()
	Logger() *slog.Logger
}

// Blitter performs the draws and CPU copies a storage delegates. The
// renderer's internal blitter implements it.
type Blitter interface {
	SwizzleTexture(source d3d11.ShaderResourceView, dest d3d11.RenderTargetView, size gl.Extents,
		swizzleRed, swizzleGreen, swizzleBlue, swizzleAlpha gl.Enum) error
	CopyTexture(source d3d11.ShaderResourceView, sourceArea gl.Box, sourceSize gl.Extents,
		dest d3d11.RenderTargetView, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle,
		destFormat, filter gl.Enum) error
	CopyDepthStencil(source d3d11.Resource, sourceSubresource uint32, sourceArea gl.Box, sourceSize gl.Extents,
		dest d3d11.Resource, destSubresource uint32, destArea gl.Box, destSize gl.Extents, scissor *gl.Rectangle) error
}

type srvKey struct {
	baseLevel int
	mipLevels int
	swizzle   bool
}

// swizzleState is the combination last rendered into a swizzle level.
// The zero value never matches a requested combination.
type swizzleState struct {
	valid                   bool
	red, green, blue, alpha gl.Enum
}

// Storage is the D3D11 texture backing one GL texture, with its views,
// render targets and swizzle copies.
type Storage struct {
	r   Renderer
	ops DimensionOps
	log *slog.Logger

	bindFlags      d3d11.BindFlag
	internalFormat gl.Enum
	formats        format.TextureInfo

	// topLevel is the number of levels added above GL level 0 to round a
	// block-compressed size up to whole blocks. mipLevels counts them.
	topLevel  int
	mipLevels int
	width     int
	height    int
	depth     int

	texture        d3d11.Resource
	swizzleTexture d3d11.Resource

	levelSRVs     [gl.ImplementationMaxTextureLevels]d3d11.ShaderResourceView
	srvs          *cache.Cache[srvKey, d3d11.ShaderResourceView]
	swizzles      [gl.ImplementationMaxTextureLevels]swizzleState
	swizzleRTVs   [gl.ImplementationMaxTextureLevels]d3d11.RenderTargetView
	renderTargets *cache.Cache[targetKey, *RenderTarget]
	images        map[slotKey]Image

	released bool
}

// New2D creates the storage of a 2D texture. levels 0 requests a full mip
// chain.
func New2D(r Renderer, internalFormat gl.Enum, renderTarget bool, width, height, levels int) *Storage {
	if levels == 0 {
		levels = format.MipLevelCount(width, height, 1)
	}
	return newStorage(r, kind2D{}, internalFormat, renderTarget, width, height, 1, levels)
}

// NewCube creates the storage of a cube map with six size x size faces.
func NewCube(r Renderer, internalFormat gl.Enum, renderTarget bool, size, levels int) *Storage {
	if levels == 0 {
		levels = format.MipLevelCount(size, size, 1)
	}
	return newStorage(r, kindCube{}, internalFormat, renderTarget, size, size, 1, levels)
}

// New3D creates the storage of a 3D texture. Depth shrinks with each mip
// level.
func New3D(r Renderer, internalFormat gl.Enum, renderTarget bool, width, height, depth, levels int) *Storage {
	if levels == 0 {
		levels = format.MipLevelCount(width, height, depth)
	}
	return newStorage(r, kind3D{}, internalFormat, renderTarget, width, height, depth, levels)
}

// New2DArray creates the storage of a 2D array of depth layers. It is one
// D3D11 texture with depth array slices, so every layer of every level is
// its own subresource.
func New2DArray(r Renderer, internalFormat gl.Enum, renderTarget bool, width, height, depth, levels int) *Storage {
	if levels == 0 {
		levels = format.MipLevelCount(width, height, 1)
	}
	return newStorage(r, kind2DArray{}, internalFormat, renderTarget, width, height, depth, levels)
}

func newStorage(r Renderer, ops DimensionOps, internalFormat gl.Enum, renderTarget bool,
	width, height, depth, levels int) *Storage {
	topLevel := format.MakeValidSize(false, internalFormat, &width, &height)
	mipLevels := topLevel + levels
	if levels < 1 || mipLevels > gl.ImplementationMaxTextureLevels {
		panic(fmt.Sprintf("storage: invalid level count %d (top level %d)", levels, topLevel))
	}

	log := r.Logger()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		r:              r,
		ops:            ops,
		log:            log,
		bindFlags:      GetTextureBindFlags(internalFormat, renderTarget),
		internalFormat: internalFormat,
		formats:        format.GetTextureFormatInfo(internalFormat),
		topLevel:       topLevel,
		mipLevels:      mipLevels,
		width:          width,
		height:         height,
		depth:          depth,
		srvs:           cache.New[srvKey, d3d11.ShaderResourceView](),
		renderTargets:  cache.New[targetKey, *RenderTarget](),
		images:         make(map[slotKey]Image),
	}
}

// GetTextureBindFlags returns the bind flags a texture of internalFormat
// supports. The render target flag is only set when renderTarget is true.
func GetTextureBindFlags(internalFormat gl.Enum, renderTarget bool) d3d11.BindFlag {
	info := format.GetTextureFormatInfo(internalFormat)

	var flags d3d11.BindFlag
	if info.SRVFormat != d3d11.FORMAT_UNKNOWN {
		flags |= d3d11.BIND_SHADER_RESOURCE
	}
	if info.DSVFormat != d3d11.FORMAT_UNKNOWN {
		flags |= d3d11.BIND_DEPTH_STENCIL
	}
	if info.RTVFormat != d3d11.FORMAT_UNKNOWN && renderTarget {
		flags |= d3d11.BIND_RENDER_TARGET
	}
	return flags
}

// Kind returns the texture kind of the storage.
func (s *Storage) Kind() Kind { return s.ops.Kind() }

// InternalFormat returns the GL sized internal format.
func (s *Storage) InternalFormat() gl.Enum { return s.internalFormat }

// TextureFormat returns the DXGI format of the resource.
func (s *Storage) TextureFormat() d3d11.Format { return s.formats.TexFormat }

// WebGPUFormat returns the WebGPU equivalent of the resource format, or
// gputypes.TextureFormatUndefined.
func (s *Storage) WebGPUFormat() gputypes.TextureFormat {
	return format.WebGPUFormat(s.formats.TexFormat)
}

// BindFlags returns the bind flags the resource is created with.
func (s *Storage) BindFlags() d3d11.BindFlag { return s.bindFlags }

// IsRenderTarget reports whether levels can be bound for rendering.
func (s *Storage) IsRenderTarget() bool {
	return s.bindFlags&(d3d11.BIND_RENDER_TARGET|d3d11.BIND_DEPTH_STENCIL) != 0
}

// TopLevel returns the number of resource levels above GL level 0.
func (s *Storage) TopLevel() int { return s.topLevel }

// LevelCount returns the number of GL levels.
func (s *Storage) LevelCount() int { return s.mipLevels - s.topLevel }

// LevelWidth returns the width of a GL mip level.
func (s *Storage) LevelWidth(level int) int { return format.LevelSize(s.width, s.topLevel+level) }

// LevelHeight returns the height of a GL mip level.
func (s *Storage) LevelHeight(level int) int { return format.LevelSize(s.height, s.topLevel+level) }

// LevelDepth returns the depth of a mip level: the slice count of a 3D
// level, the layer count of a 2D array and 1 otherwise.
func (s *Storage) LevelDepth(level int) int { return s.ops.levelDepth(s, level) }

// Dimension returns the WebGPU dimension of the texture. Cube maps and 2D
// arrays are two-dimensional with several layers.
func (s *Storage) Dimension() gputypes.TextureDimension { return s.ops.Kind().Dimension() }

// Size returns the extent of the resource top level. DepthOrArrayLayers is
// the depth of a 3D texture and the layer count otherwise.
func (s *Storage) Size() gputypes.Extent3D {
	layers := s.ops.layerCount(s)
	if s.ops.Kind() == Kind3D {
		layers = s.depth
	}
	return gputypes.Extent3D{
		Width:              uint32(max(s.width, 0)),
		Height:             uint32(max(s.height, 0)),
		DepthOrArrayLayers: uint32(max(layers, 0)),
	}
}

// subresourceExtents returns the extent of one subresource of level. Each
// layer of a cube map or array is a separate subresource of depth 1.
func (s *Storage) subresourceExtents(level int) gl.Extents {
	d := 1
	if s.ops.layerCount(s) == 1 {
		d = s.ops.levelDepth(s, level)
	}
	return gl.Extents{Width: s.LevelWidth(level), Height: s.LevelHeight(level), Depth: d}
}

func (s *Storage) checkLevel(level int) {
	if level < 0 || level >= s.LevelCount() {
		panic(fmt.Sprintf("storage: mip level %d out of range [0, %d)", level, s.LevelCount()))
	}
}

// SubresourceIndex returns the D3D11 subresource addressed by index.
func (s *Storage) SubresourceIndex(index gl.ImageIndex) uint32 {
	s.checkLevel(index.MipIndex)
	mipSlice := uint32(index.MipIndex + s.topLevel)
	var arraySlice uint32
	if index.HasLayer() && s.ops.layerCount(s) > 1 {
		arraySlice = uint32(index.LayerIndex)
	}
	return d3d11.CalcSubresource(mipSlice, arraySlice, uint32(s.mipLevels))
}

// Resource returns the D3D11 texture, creating it on first use. It returns
// ErrIncomplete when a dimension is empty.
func (s *Storage) Resource() (d3d11.Resource, error) {
	if s.texture != nil {
		return s.texture, nil
	}
	if s.width <= 0 || s.height <= 0 || s.depth <= 0 {
		return nil, ErrIncomplete
	}

	tex, err := s.ops.createTexture(s, s.formats.TexFormat, s.bindFlags, false)
	if err != nil {
		// Device removal shows up here after a TDR.
		if d3d11.IsDeviceLost(err) {
			s.r.NotifyDeviceLost()
		}
		return nil, gl.OutOfMemory("Failed to create %s texture storage, result: 0x%X.",
			s.ops.Kind(), d3d11.HRESULT(err))
	}
	s.log.Debug("storage: created texture",
		slog.String("kind", s.ops.Kind().String()),
		slog.Int("width", s.width),
		slog.Int("height", s.height),
		slog.Int("depth", s.depth),
		slog.Int("levels", s.mipLevels))
	s.texture = tex
	return tex, nil
}

func (s *Storage) swizzleResource() (d3d11.Resource, error) {
	if s.swizzleTexture != nil {
		return s.swizzleTexture, nil
	}
	if s.width <= 0 || s.height <= 0 || s.depth <= 0 {
		return nil, ErrIncomplete
	}

	tex, err := s.ops.createTexture(s, s.formats.SwizzleTexFormat,
		d3d11.BIND_SHADER_RESOURCE|d3d11.BIND_RENDER_TARGET, true)
	if err != nil {
		return nil, gl.OutOfMemory("Failed to create internal swizzle texture, result: 0x%X.", d3d11.HRESULT(err))
	}
	s.log.Debug("storage: created swizzle texture", slog.String("kind", s.ops.Kind().String()))
	s.swizzleTexture = tex
	return tex, nil
}

func (s *Storage) texture2DDesc(f d3d11.Format, bind d3d11.BindFlag, mipLevels, arraySize int,
	misc d3d11.MiscFlag) *d3d11.Texture2DDesc {
	return &d3d11.Texture2DDesc{
		Width:      uint32(s.width),
		Height:     uint32(s.height),
		MipLevels:  uint32(mipLevels),
		ArraySize:  uint32(arraySize),
		Format:     f,
		SampleDesc: d3d11.SampleDesc{Count: 1},
		Usage:      d3d11.USAGE_DEFAULT,
		BindFlags:  bind,
		MiscFlags:  misc,
	}
}

// Release frees the resource and every view. Images still associated with
// the storage first recover their pixels; their errors are combined,
// logged and returned. Release is idempotent.
func (s *Storage) Release() error {
	if s.released {
		return nil
	}
	err := s.recoverImages()
	if err != nil {
		s.log.Warn("storage: image recovery failed during release", slog.Any("err", err))
	}

	s.srvs.Clear(func(v d3d11.ShaderResourceView) { v.Release() })
	s.renderTargets.Clear(func(rt *RenderTarget) { rt.release() })
	for i := range s.levelSRVs {
		safeRelease(s.levelSRVs[i])
		s.levelSRVs[i] = nil
	}
	for i := range s.swizzleRTVs {
		safeRelease(s.swizzleRTVs[i])
		s.swizzleRTVs[i] = nil
	}
	safeRelease(s.texture)
	safeRelease(s.swizzleTexture)
	s.texture, s.swizzleTexture = nil, nil
	s.released = true
	return err
}

func safeRelease(obj d3d11.Unknown) {
	if obj != nil {
		obj.Release()
	}
}
