package main

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texstore"
	"github.com/gogpu/texstore/d3d11/soft"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/storage"
)

// stats is the device work recorded while probing one texture.
type stats struct {
	kind           storage.Kind
	size           gl.Extents
	levels         int
	extent         gputypes.Extent3D
	dimension      gputypes.TextureDimension
	webgpuFormat   gputypes.TextureFormat
	draws          int
	copies         int
	updates        int
	resourceCopies int
	liveTextures   int
}

// probe defines the texture described by spec, fills level 0 with a
// pattern, optionally generates mipmaps and finally samples it.
func probe(r *texstore.Renderer, dev *soft.Device, spec textureSpec) (stats, error) {
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return stats{}, err
	}
	internalFormat, err := parseFormat(spec.Format)
	if err != nil {
		return stats{}, err
	}
	size, err := parseSize(spec.Size)
	if err != nil {
		return stats{}, err
	}
	if kind == storage.Kind2D || kind == storage.KindCube {
		size.Depth = 1
	}
	if kind == storage.KindCube && size.Width != size.Height {
		return stats{}, fmt.Errorf("cube faces must be square, got %dx%d", size.Width, size.Height)
	}
	sampler := gl.DefaultSamplerState()
	if err := applySwizzle(&sampler, spec.Swizzle); err != nil {
		return stats{}, err
	}
	if !spec.Mipmaps && spec.Levels <= 1 {
		sampler.MinFilter = gl.LINEAR
	}

	ctx := dev.ImmediateContext()
	ctx.ResetLog()

	tex := r.NewTexture(kind)
	defer tex.Release()
	tex.SetUsage(spec.RenderTarget)

	info := gl.GetInternalFormatInfo(internalFormat)
	unpack := gl.DefaultPixelUnpackState()
	pixels := pattern(info.ComputeDepthPitch(info.Type, size.Width, size.Height, unpack.Alignment) * size.Depth)

	if spec.Levels > 0 {
		if err := tex.SetStorage(spec.Levels, internalFormat, size); err != nil {
			return stats{}, err
		}
	}
	for _, index := range levelZero(kind) {
		if spec.Levels > 0 {
			area := gl.Box{Width: size.Width, Height: size.Height, Depth: size.Depth}
			err = tex.SubImage(index, area, info.Type, unpack, pixels)
		} else {
			err = tex.SetImage(index, internalFormat, size, info.Type, unpack, pixels)
		}
		if err != nil {
			return stats{}, err
		}
	}

	if spec.RenderTarget {
		if _, err := tex.GetRenderTarget(levelZero(kind)[0]); err != nil {
			return stats{}, fmt.Errorf("render target: %w", err)
		}
	}
	if spec.Mipmaps {
		if err := tex.GenerateMipmaps(); err != nil {
			return stats{}, fmt.Errorf("mipmaps: %w", err)
		}
	}
	if _, err := tex.GetSRV(sampler); err != nil {
		return stats{}, fmt.Errorf("sample: %w", err)
	}

	st := stats{
		kind:           kind,
		size:           size,
		draws:          len(ctx.Draws()),
		copies:         len(ctx.Copies()),
		updates:        len(ctx.Updates()),
		resourceCopies: ctx.ResourceCopies(),
		liveTextures:   dev.Live("CreateTexture2D") + dev.Live("CreateTexture3D"),
	}
	if s := tex.Storage(); s != nil {
		st.levels = s.LevelCount()
		st.extent = s.Size()
		st.dimension = s.Dimension()
		st.webgpuFormat = s.WebGPUFormat()
	}
	return st, nil
}

// levelZero returns the indices that define level 0 of a texture of kind.
func levelZero(kind storage.Kind) []gl.ImageIndex {
	switch kind {
	case storage.KindCube:
		faces := make([]gl.ImageIndex, 6)
		for i := range faces {
			faces[i] = gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_X+gl.Enum(i), 0)
		}
		return faces
	case storage.Kind3D:
		return []gl.ImageIndex{gl.Make3DIndex(0, gl.EntireLevel)}
	case storage.Kind2DArray:
		return []gl.ImageIndex{gl.Make2DArrayIndex(0, 0)}
	default:
		return []gl.ImageIndex{gl.Make2DIndex(0)}
	}
}

// pattern returns n bytes of a repeating ramp.
func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}
