package storage

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/gl"
)

// GetSRV returns the shader resource view sampled with sampler.
//
// A mipmap filtered sampler sees the levels from BaseLevel up to MaxLevel
// that exist in the storage, any other sampler only BaseLevel. When the
// sampler swizzles channels the swizzle texture is refreshed first and the
// view reads from it. Views are cached by base level, level count and
// whether they are swizzled.
func (s *Storage) GetSRV(sampler gl.SamplerState) (d3d11.ShaderResourceView, error) {
	if sampler.BaseLevel < 0 || sampler.BaseLevel >= s.LevelCount() {
		panic(fmt.Sprintf("storage: base level %d out of range [0, %d)", sampler.BaseLevel, s.LevelCount()))
	}
	swizzle := sampler.SwizzleRequired()
	mipLevels := 1
	if sampler.IsMipmapFiltered() {
		mipLevels = sampler.MaxLevel - sampler.BaseLevel
	}
	mipLevels = max(min(mipLevels, s.mipLevels-s.topLevel-sampler.BaseLevel), 1)

	if swizzle {
		err := s.GenerateSwizzles(sampler.SwizzleRed, sampler.SwizzleGreen, sampler.SwizzleBlue, sampler.SwizzleAlpha)
		if err != nil {
			return nil, err
		}
	}

	key := srvKey{baseLevel: sampler.BaseLevel, mipLevels: mipLevels, swizzle: swizzle}
	return s.srvs.GetOrCreate(key, func() (d3d11.ShaderResourceView, error) {
		var (
			tex d3d11.Resource
			err error
		)
		f := s.formats.SRVFormat
		if swizzle {
			tex, err = s.swizzleResource()
			f = s.formats.SwizzleSRVFormat
		} else {
			tex, err = s.Resource()
		}
		if err != nil {
			return nil, err
		}
		s.log.Debug("storage: created shader resource view",
			slog.Int("baseLevel", key.baseLevel),
			slog.Int("mipLevels", key.mipLevels),
			slog.Bool("swizzle", key.swizzle))
		return s.createSRV(key.baseLevel, key.mipLevels, f, tex)
	})
}

// GetSRVLevel returns a view of a single level of the unswizzled texture.
func (s *Storage) GetSRVLevel(level int) (d3d11.ShaderResourceView, error) {
	s.checkLevel(level)
	if srv := s.levelSRVs[level]; srv != nil {
		return srv, nil
	}

	tex, err := s.Resource()
	if err != nil {
		return nil, err
	}
	srv, err := s.createSRV(level, 1, s.formats.SRVFormat, tex)
	if err != nil {
		return nil, err
	}
	s.levelSRVs[level] = srv
	return srv, nil
}

func (s *Storage) createSRV(baseLevel, mipLevels int, f d3d11.Format, tex d3d11.Resource) (d3d11.ShaderResourceView, error) {
	desc := s.ops.srvDesc(s, baseLevel, mipLevels, f)
	srv, err := s.r.Device().CreateShaderResourceView(tex, &desc)
	if err != nil {
		return nil, gl.OutOfMemory("Failed to create internal texture storage SRV, result: 0x%X.", d3d11.HRESULT(err))
	}
	return srv, nil
}

// GenerateSwizzles renders every level whose swizzle copy is stale or was
// made with another combination. Levels already holding the requested
// combination are skipped.
func (s *Storage) GenerateSwizzles(swizzleRed, swizzleGreen, swizzleBlue, swizzleAlpha gl.Enum) error {
	target := swizzleState{valid: true, red: swizzleRed, green: swizzleGreen, blue: swizzleBlue, alpha: swizzleAlpha}
	for level := 0; level < s.LevelCount(); level++ {
		if s.swizzles[level] == target {
			continue
		}

		source, err := s.GetSRVLevel(level)
		if err != nil {
			return err
		}
		dest, err := s.swizzleRenderTarget(level)
		if err != nil {
			return err
		}

		size := gl.Extents{Width: s.LevelWidth(level), Height: s.LevelHeight(level), Depth: swizzleDepth(s, level)}
		err = s.r.Blitter().SwizzleTexture(source, dest, size, swizzleRed, swizzleGreen, swizzleBlue, swizzleAlpha)
		if err != nil {
			return err
		}
		s.swizzles[level] = target
	}
	return nil
}

func (s *Storage) swizzleRenderTarget(level int) (d3d11.RenderTargetView, error) {
	s.checkLevel(level)
	if rtv := s.swizzleRTVs[level]; rtv != nil {
		return rtv, nil
	}

	tex, err := s.swizzleResource()
	if err != nil {
		return nil, err
	}
	desc := s.ops.swizzleRTVDesc(s, level)
	rtv, err := s.r.Device().CreateRenderTargetView(tex, &desc)
	if err != nil {
		return nil, gl.OutOfMemory("Failed to create internal swizzle render target view, result: 0x%X.", d3d11.HRESULT(err))
	}
	s.swizzleRTVs[level] = rtv
	return rtv, nil
}

// InvalidateSwizzleCacheLevel marks the swizzle copy of level stale.
// Levels out of range are ignored.
func (s *Storage) InvalidateSwizzleCacheLevel(level int) {
	if level >= 0 && level < len(s.swizzles) {
		s.swizzles[level] = swizzleState{}
	}
}

// InvalidateSwizzleCache marks every swizzle level stale.
func (s *Storage) InvalidateSwizzleCache() {
	for level := range s.swizzles {
		s.InvalidateSwizzleCacheLevel(level)
	}
}
