package texstore

import (
	"log/slog"

	"github.com/gogpu/texstore/internal/shaders"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := texstore.NewRenderer(dev, ctx,
//	    texstore.WithFeatureLevel9(true),
//	    texstore.WithLogger(slog.Default()))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	level9           bool
	max3DTextureSize int
	library          shaders.Library
	logger           *slog.Logger
	setData          bool
}

// defaultOptions returns the configuration of a feature level 11 device.
func defaultOptions() options {
	return options{
		max3DTextureSize: 0, // derived from the feature level when zero
		library:          nil,
		logger:           nil,
	}
}

// WithFeatureLevel9 selects the feature level 9 code paths: 2D array
// single-level views, no 3D blits and level 9 shader profiles.
func WithFeatureLevel9(level9 bool) Option {
	return func(o *options) {
		o.level9 = level9
	}
}

// WithMax3DTextureSize overrides the largest 3D texture extent the device
// supports. Non-positive values keep the feature level default.
func WithMax3DTextureSize(size int) Option {
	return func(o *options) {
		o.max3DTextureSize = size
	}
}

// WithShaderLibrary sets the library the blitter loads its programs from.
// The default is the platform library: the D3D compiler on Windows and the
// portable WGSL/HLSL library elsewhere.
func WithShaderLibrary(lib shaders.Library) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithLogger sets the logger of the renderer and of every storage, image
// and blitter it owns. Without it the package logger is used; see
// SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSetDataWorkaround makes texture uploads convert pixels straight into
// an existing storage instead of staging them through CPU images. Some
// drivers update subresources faster than they copy them.
func WithSetDataWorkaround(enabled bool) Option {
	return func(o *options) {
		o.setData = enabled
	}
}
