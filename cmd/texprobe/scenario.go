package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/storage"
)

// scenario is a set of textures to drive on one renderer.
type scenario struct {
	// Level9 selects the feature level 9 paths.
	Level9 bool `yaml:"level9"`
	// SetData uploads straight into existing storages.
	SetData  bool          `yaml:"setData"`
	Textures []textureSpec `yaml:"textures"`
}

// textureSpec describes one probed texture.
type textureSpec struct {
	Name   string
	Kind   string // 2d, cube, 3d or 2darray
	Format string // sized GL format name, e.g. RGBA8
	Size   string // WxH or WxHxD; the depth of a 2D array is its layer count
	// Levels makes the texture immutable with that many levels. Zero
	// defines level 0 only.
	Levels int
	// RenderTarget asks for a storage that can be drawn to.
	RenderTarget bool `yaml:"renderTarget"`
	Mipmaps      bool
	// Swizzle is four characters from "rgba01", e.g. "bgra".
	Swizzle string
}

func readScenarioFile(filename string) (*scenario, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var sc scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(sc.Textures) == 0 {
		return nil, fmt.Errorf("%s: no textures", filename)
	}
	for i := range sc.Textures {
		if sc.Textures[i].Name == "" {
			sc.Textures[i].Name = fmt.Sprintf("texture%d", i)
		}
	}
	return &sc, nil
}

var kinds = map[string]storage.Kind{
	"2d":      storage.Kind2D,
	"cube":    storage.KindCube,
	"3d":      storage.Kind3D,
	"2darray": storage.Kind2DArray,
}

func parseKind(s string) (storage.Kind, error) {
	if s == "" {
		return storage.Kind2D, nil
	}
	k, ok := kinds[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown texture kind %q", s)
	}
	return k, nil
}

var formats = map[string]gl.Enum{
	"RGBA8":        gl.RGBA8,
	"RGB8":         gl.RGB8,
	"RGBA4":        gl.RGBA4,
	"RGB5_A1":      gl.RGB5_A1,
	"RGB565":       gl.RGB565,
	"RGB10_A2":     gl.RGB10_A2,
	"R8":           gl.R8,
	"RG8":          gl.RG8,
	"R16F":         gl.R16F,
	"RG16F":        gl.RG16F,
	"RGBA16F":      gl.RGBA16F,
	"R32F":         gl.R32F,
	"RG32F":        gl.RG32F,
	"RGB32F":       gl.RGB32F,
	"RGBA32F":      gl.RGBA32F,
	"RGBA8UI":      gl.RGBA8UI,
	"SRGB8_ALPHA8": gl.SRGB8_ALPHA8,
	"BGRA8":        gl.BGRA8_EXT,
}

func parseFormat(s string) (gl.Enum, error) {
	if s == "" {
		return gl.RGBA8, nil
	}
	f, ok := formats[strings.ToUpper(s)]
	if !ok {
		return gl.NONE, fmt.Errorf("unknown or unsupported format %q", s)
	}
	return f, nil
}

// parseSize parses WxH or WxHxD. The depth defaults to 1.
func parseSize(s string) (gl.Extents, error) {
	parts := strings.Split(s, "x")
	if len(parts) < 2 || len(parts) > 3 {
		return gl.Extents{}, fmt.Errorf("size %q is not WxH or WxHxD", s)
	}
	dims := [3]int{1, 1, 1}
	for i, p := range parts {
		if _, err := fmt.Sscanf(p, "%d", &dims[i]); err != nil || dims[i] <= 0 {
			return gl.Extents{}, fmt.Errorf("size %q: bad dimension %q", s, p)
		}
	}
	return gl.Extents{Width: dims[0], Height: dims[1], Depth: dims[2]}, nil
}

var swizzleChannels = map[rune]gl.Enum{
	'r': gl.RED,
	'g': gl.GREEN,
	'b': gl.BLUE,
	'a': gl.ALPHA,
	'0': gl.ZERO,
	'1': gl.ONE,
}

// applySwizzle sets the swizzle of sampler from a string like "bgra".
func applySwizzle(sampler *gl.SamplerState, s string) error {
	if s == "" {
		return nil
	}
	if len(s) != 4 {
		return fmt.Errorf("swizzle %q needs four channels", s)
	}
	var channels [4]gl.Enum
	for i, c := range strings.ToLower(s) {
		ch, ok := swizzleChannels[c]
		if !ok {
			return fmt.Errorf("swizzle %q: unknown channel %q", s, c)
		}
		channels[i] = ch
	}
	sampler.SwizzleRed, sampler.SwizzleGreen, sampler.SwizzleBlue, sampler.SwizzleAlpha =
		channels[0], channels[1], channels[2], channels[3]
	return nil
}
