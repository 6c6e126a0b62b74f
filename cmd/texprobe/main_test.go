package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/texstore"
	"github.com/gogpu/texstore/d3d11/soft"
	"github.com/gogpu/texstore/gl"
	"github.com/gogpu/texstore/internal/shaders"
	"github.com/gogpu/texstore/storage"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    gl.Extents
		wantErr bool
	}{
		{"64x32", gl.Extents{Width: 64, Height: 32, Depth: 1}, false},
		{"8x8x4", gl.Extents{Width: 8, Height: 8, Depth: 4}, false},
		{"64", gl.Extents{}, true},
		{"0x4", gl.Extents{}, true},
		{"4xfoo", gl.Extents{}, true},
		{"1x2x3x4", gl.Extents{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseKindAndFormat(t *testing.T) {
	if k, err := parseKind("Cube"); err != nil || k != storage.KindCube {
		t.Errorf("parseKind(Cube) = %v, %v", k, err)
	}
	if k, err := parseKind(""); err != nil || k != storage.Kind2D {
		t.Errorf("parseKind(\"\") = %v, %v", k, err)
	}
	if _, err := parseKind("1d"); err == nil {
		t.Error("parseKind(1d) succeeded")
	}
	if f, err := parseFormat("bgra8"); err != nil || f != gl.BGRA8_EXT {
		t.Errorf("parseFormat(bgra8) = %#x, %v", uint32(f), err)
	}
	for name, f := range formats {
		if info, ok := gl.LookupInternalFormat(f); !ok || info.Compressed {
			t.Errorf("format %s is not an uncompressed sized format", name)
		}
	}
}

func TestApplySwizzle(t *testing.T) {
	s := gl.DefaultSamplerState()
	if err := applySwizzle(&s, "bgr1"); err != nil {
		t.Fatalf("applySwizzle() error = %v", err)
	}
	got := []gl.Enum{s.SwizzleRed, s.SwizzleGreen, s.SwizzleBlue, s.SwizzleAlpha}
	if diff := cmp.Diff([]gl.Enum{gl.BLUE, gl.GREEN, gl.RED, gl.ONE}, got); diff != "" {
		t.Errorf("swizzle mismatch (-want +got):\n%s", diff)
	}
	for _, bad := range []string{"rgb", "rgbx"} {
		if err := applySwizzle(&s, bad); err == nil {
			t.Errorf("applySwizzle(%q) succeeded", bad)
		}
	}
}

func TestReadScenarioFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, `
level9: true
textures:
  - kind: cube
    format: RGBA8
    size: 16x16
    renderTarget: true
    mipmaps: true
  - name: volume
    kind: 3d
    size: 4x4x4
    levels: 2
`)
	sc, err := readScenarioFile(good)
	if err != nil {
		t.Fatalf("readScenarioFile() error = %v", err)
	}
	want := &scenario{
		Level9: true,
		Textures: []textureSpec{
			{Name: "texture0", Kind: "cube", Format: "RGBA8", Size: "16x16", RenderTarget: true, Mipmaps: true},
			{Name: "volume", Kind: "3d", Size: "4x4x4", Levels: 2},
		},
	}
	if diff := cmp.Diff(want, sc); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	writeFile(t, unknown, "textures:\n  - kind: 2d\n    colour: red\n")
	if _, err := readScenarioFile(unknown); err == nil {
		t.Error("unknown field accepted")
	}

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "level9: false\n")
	if _, err := readScenarioFile(empty); err == nil {
		t.Error("scenario without textures accepted")
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestProbe(t *testing.T) {
	lib := shaders.Func(func(name string) ([]byte, error) {
		if _, ok := shaders.Lookup(name); !ok {
			return nil, shaders.ErrUnknownProgram
		}
		return []byte(name), nil
	})
	dev := soft.New()
	r, err := texstore.NewRenderer(dev, dev.ImmediateContext(), texstore.WithShaderLibrary(lib))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Release()

	tests := []struct {
		spec       textureSpec
		wantLevels int
		wantDraws  bool
		wantExtent gputypes.Extent3D
		wantDim    gputypes.TextureDimension
		wantFormat gputypes.TextureFormat
	}{
		{
			textureSpec{Name: "plain", Size: "4x4"}, 3, false,
			gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
			gputypes.TextureDimension2D, gputypes.TextureFormatRGBA8Unorm,
		},
		{
			textureSpec{Name: "swizzled", Size: "4x4", Swizzle: "bgra"}, 3, true,
			gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
			gputypes.TextureDimension2D, gputypes.TextureFormatRGBA8Unorm,
		},
		{
			textureSpec{Name: "cube", Kind: "cube", Size: "8x8", RenderTarget: true, Mipmaps: true}, 4, true,
			gputypes.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 6},
			gputypes.TextureDimension2D, gputypes.TextureFormatRGBA8Unorm,
		},
		{
			textureSpec{Name: "cpu mipmaps", Format: "R8", Size: "8x4", Mipmaps: true}, 4, false,
			gputypes.Extent3D{Width: 8, Height: 4, DepthOrArrayLayers: 1},
			gputypes.TextureDimension2D, gputypes.TextureFormatR8Unorm,
		},
		{
			textureSpec{Name: "volume", Kind: "3d", Size: "4x4x4", Levels: 2}, 2, false,
			gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 4},
			gputypes.TextureDimension3D, gputypes.TextureFormatRGBA8Unorm,
		},
		{
			textureSpec{Name: "array", Kind: "2darray", Size: "4x4x3"}, 3, false,
			gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 3},
			gputypes.TextureDimension2D, gputypes.TextureFormatRGBA8Unorm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Name, func(t *testing.T) {
			st, err := probe(r, dev, tt.spec)
			if err != nil {
				t.Fatalf("probe() error = %v", err)
			}
			if st.levels != tt.wantLevels {
				t.Errorf("levels = %d, want %d", st.levels, tt.wantLevels)
			}
			if got := st.draws > 0; got != tt.wantDraws {
				t.Errorf("draws = %d, want draws %v", st.draws, tt.wantDraws)
			}
			if st.copies+st.updates+st.resourceCopies == 0 {
				t.Error("no data reached the device")
			}
			if diff := cmp.Diff(tt.wantExtent, st.extent); diff != "" {
				t.Errorf("extent mismatch (-want +got):\n%s", diff)
			}
			if st.dimension != tt.wantDim || st.webgpuFormat != tt.wantFormat {
				t.Errorf("webgpu = %v %v, want %v %v", st.dimension, st.webgpuFormat, tt.wantDim, tt.wantFormat)
			}
		})
	}

	if got := dev.Live("CreateTexture2D") + dev.Live("CreateTexture3D"); got != 0 {
		t.Errorf("%d textures outlived their probe", got)
	}
	if _, err := probe(r, dev, textureSpec{Kind: "cube", Size: "8x4"}); err == nil {
		t.Error("non-square cube probed")
	}
}
