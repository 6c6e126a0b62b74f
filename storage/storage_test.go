package storage

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/d3d11/soft"
	"github.com/gogpu/texstore/gl"
)

type swizzleCall struct {
	size                    gl.Extents
	red, green, blue, alpha gl.Enum
}

type copyCall struct {
	sourceSize, destSize gl.Extents
	destFormat, filter   gl.Enum
}

// fakeBlitter records the draws a storage delegates.
type fakeBlitter struct {
	swizzles     []swizzleCall
	copies       []copyCall
	depthStencil int
}

func (b *fakeBlitter) SwizzleTexture(_ d3d11.ShaderResourceView, _ d3d11.RenderTargetView, size gl.Extents,
	red, green, blue, alpha gl.Enum) error {
	b.swizzles = append(b.swizzles, swizzleCall{size, red, green, blue, alpha})
	return nil
}

func (b *fakeBlitter) CopyTexture(_ d3d11.ShaderResourceView, _ gl.Box, sourceSize gl.Extents,
	_ d3d11.RenderTargetView, _ gl.Box, destSize gl.Extents, _ *gl.Rectangle, destFormat, filter gl.Enum) error {
	b.copies = append(b.copies, copyCall{sourceSize, destSize, destFormat, filter})
	return nil
}

func (b *fakeBlitter) CopyDepthStencil(d3d11.Resource, uint32, gl.Box, gl.Extents,
	d3d11.Resource, uint32, gl.Box, gl.Extents, *gl.Rectangle) error {
	b.depthStencil++
	return nil
}

type fakeRenderer struct {
	dev     *soft.Device
	blitter *fakeBlitter
	level9  bool
	lost    int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{dev: soft.New(), blitter: &fakeBlitter{}}
}

func (r *fakeRenderer) Device() d3d11.Device               { return r.dev }
func (r *fakeRenderer) DeviceContext() d3d11.DeviceContext { return r.dev.ImmediateContext() }
func (r *fakeRenderer) Blitter() Blitter                   { return r.blitter }
func (r *fakeRenderer) IsLevel9() bool                     { return r.level9 }
func (r *fakeRenderer) NotifyDeviceLost()                  { r.lost++ }
func (r *fakeRenderer) Logger() *slog.Logger               { return nil }

func mustResource(t *testing.T, s *Storage) d3d11.Resource {
	t.Helper()
	res, err := s.Resource()
	if err != nil {
		t.Fatalf("Resource() error = %v", err)
	}
	return res
}

func TestGetTextureBindFlags(t *testing.T) {
	tests := []struct {
		name           string
		internalFormat gl.Enum
		renderTarget   bool
		want           d3d11.BindFlag
	}{
		{"color", gl.RGBA8, false, d3d11.BIND_SHADER_RESOURCE},
		{"color target", gl.RGBA8, true, d3d11.BIND_SHADER_RESOURCE | d3d11.BIND_RENDER_TARGET},
		{"depth", gl.DEPTH24_STENCIL8, false, d3d11.BIND_SHADER_RESOURCE | d3d11.BIND_DEPTH_STENCIL},
		{"depth target", gl.DEPTH24_STENCIL8, true, d3d11.BIND_SHADER_RESOURCE | d3d11.BIND_DEPTH_STENCIL},
		{"unknown", 0x1234, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTextureBindFlags(tt.internalFormat, tt.renderTarget); got != tt.want {
				t.Errorf("GetTextureBindFlags() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestSubresourceIndex(t *testing.T) {
	r := newFakeRenderer()
	tests := []struct {
		name  string
		s     *Storage
		index gl.ImageIndex
		want  uint32
	}{
		{"2D", New2D(r, gl.RGBA8, false, 8, 8, 0), gl.Make2DIndex(1), 1},
		{"cube face", NewCube(r, gl.RGBA8, false, 8, 0), gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_Y, 3), 11},
		{"3D slice is not an array slice", New3D(r, gl.RGBA8, false, 8, 8, 8, 0), gl.Make3DIndex(2, 1), 2},
		{"array layer", New2DArray(r, gl.RGBA8, false, 8, 8, 4, 0), gl.Make2DArrayIndex(1, 2), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.SubresourceIndex(tt.index); got != tt.want {
				t.Errorf("SubresourceIndex(%+v) = %d, want %d", tt.index, got, tt.want)
			}
		})
	}
}

func TestResourceIsCreatedOnce(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, true, 16, 8, 0)

	first := mustResource(t, s)
	if second := mustResource(t, s); second != first {
		t.Error("Resource() returned a different texture on the second call")
	}
	if got := r.dev.Created("CreateTexture2D"); got != 1 {
		t.Errorf("CreateTexture2D calls = %d, want 1", got)
	}

	want := d3d11.Texture2DDesc{
		Width: 16, Height: 8, MipLevels: 5, ArraySize: 1,
		Format:     d3d11.FORMAT_R8G8B8A8_UNORM,
		SampleDesc: d3d11.SampleDesc{Count: 1},
		Usage:      d3d11.USAGE_DEFAULT,
		BindFlags:  d3d11.BIND_SHADER_RESOURCE | d3d11.BIND_RENDER_TARGET,
	}
	if diff := cmp.Diff(want, first.(d3d11.Texture2D).Desc()); diff != "" {
		t.Errorf("texture desc mismatch (-want +got):\n%s", diff)
	}
	if got := s.Size().DepthOrArrayLayers; got != 1 {
		t.Errorf("Size().DepthOrArrayLayers = %d, want 1", got)
	}
}

func TestResourceIncomplete(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 0, 4, 1)
	if _, err := s.Resource(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Resource() error = %v, want ErrIncomplete", err)
	}
	if got := r.dev.Created("CreateTexture2D"); got != 0 {
		t.Errorf("CreateTexture2D calls = %d, want 0", got)
	}
}

func TestResourceDeviceLost(t *testing.T) {
	r := newFakeRenderer()
	r.dev.FailNext("CreateTexture2D", d3d11.DXGI_ERROR_DEVICE_REMOVED)
	s := New2D(r, gl.RGBA8, false, 4, 4, 1)

	_, err := s.Resource()
	if !errors.Is(err, gl.ErrOutOfMemory) {
		t.Fatalf("Resource() error = %v, want OUT_OF_MEMORY", err)
	}
	if r.lost != 1 {
		t.Errorf("NotifyDeviceLost calls = %d, want 1", r.lost)
	}

	// The failure is not sticky.
	mustResource(t, s)
	if r.lost != 1 {
		t.Errorf("NotifyDeviceLost calls = %d after retry, want 1", r.lost)
	}
}

func TestInvalidLevelCountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New2D with 16 levels did not panic")
		}
	}()
	New2D(newFakeRenderer(), gl.RGBA8, false, 1<<15, 1<<15, gl.ImplementationMaxTextureLevels+1)
}

func TestGetSRV(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 16, 8, 0)

	mipmapped := gl.DefaultSamplerState()
	mipmapped.BaseLevel = 1
	srv, err := s.GetSRV(mipmapped)
	if err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	want := d3d11.ShaderResourceViewDesc{
		Format:        d3d11.FORMAT_R8G8B8A8_UNORM,
		ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2D,
		Texture2D:     d3d11.Tex2DSRV{MostDetailedMip: 1, MipLevels: 4},
	}
	if diff := cmp.Diff(want, srv.Desc()); diff != "" {
		t.Errorf("mipmapped view mismatch (-want +got):\n%s", diff)
	}

	again, err := s.GetSRV(mipmapped)
	if err != nil || again != srv {
		t.Errorf("GetSRV() second call = %v, %v, want the cached view", again, err)
	}

	single := mipmapped
	single.MinFilter = gl.LINEAR
	view, err := s.GetSRV(single)
	if err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if view == srv {
		t.Error("a non-mipmapped sampler shares the mipmapped view")
	}
	if got := view.Desc().Texture2D.MipLevels; got != 1 {
		t.Errorf("non-mipmapped MipLevels = %d, want 1", got)
	}
	if got := r.dev.Created("CreateShaderResourceView"); got != 2 {
		t.Errorf("CreateShaderResourceView calls = %d, want 2", got)
	}
}

func TestLevel9Descriptors(t *testing.T) {
	r := newFakeRenderer()
	r.level9 = true
	s := New2D(r, gl.RGBA8, false, 8, 8, 0)

	tex := mustResource(t, s).(d3d11.Texture2D)
	if got := tex.Desc().MipLevels; got != 1 {
		t.Errorf("level 9 MipLevels = %d, want 1", got)
	}
	srv, err := s.GetSRV(gl.DefaultSamplerState())
	if err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if got := srv.Desc().Texture2D.MipLevels; got != d3d11.AllMips {
		t.Errorf("level 9 view MipLevels = %#x, want all mips", got)
	}
}

func TestCubeIntegerViewIsArray(t *testing.T) {
	r := newFakeRenderer()
	s := NewCube(r, gl.RGBA8UI, false, 4, 1)
	srv, err := s.GetSRV(gl.DefaultSamplerState())
	if err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	want := d3d11.ShaderResourceViewDesc{
		Format:         d3d11.FORMAT_R8G8B8A8_UINT,
		ViewDimension:  d3d11.SRV_DIMENSION_TEXTURE2DARRAY,
		Texture2DArray: d3d11.Tex2DArraySRV{MipLevels: 1, ArraySize: 6},
	}
	if diff := cmp.Diff(want, srv.Desc()); diff != "" {
		t.Errorf("integer cube view mismatch (-want +got):\n%s", diff)
	}
}

func TestSwizzleGeneration(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 8, 8, 0)
	sampler := gl.DefaultSamplerState()
	sampler.SwizzleRed = gl.GREEN

	srv, err := s.GetSRV(sampler)
	if err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 4 {
		t.Fatalf("swizzle draws = %d, want one per level (4)", got)
	}
	wantFirst := swizzleCall{gl.Extents{Width: 8, Height: 8, Depth: 1}, gl.GREEN, gl.GREEN, gl.BLUE, gl.ALPHA}
	if diff := cmp.Diff(wantFirst, r.blitter.swizzles[0], cmp.AllowUnexported(swizzleCall{})); diff != "" {
		t.Errorf("level 0 swizzle mismatch (-want +got):\n%s", diff)
	}
	if srv.ViewedResource() == mustResource(t, s) {
		t.Error("swizzled view reads the unswizzled texture")
	}

	if _, err := s.GetSRV(sampler); err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 4 {
		t.Errorf("swizzle draws after repeat = %d, want 4", got)
	}

	pixels := make([]byte, 4*4*4)
	if err := s.SetData(gl.Make2DIndex(1), image{gl.RGBA8, gl.Extents{Width: 4, Height: 4, Depth: 1}},
		nil, gl.UNSIGNED_BYTE, gl.DefaultPixelUnpackState(), pixels); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if _, err := s.GetSRV(sampler); err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 5 {
		t.Fatalf("swizzle draws after upload = %d, want 5", got)
	}
	if got := r.blitter.swizzles[4].size; got != (gl.Extents{Width: 4, Height: 4, Depth: 1}) {
		t.Errorf("regenerated level size = %+v, want 4x4x1", got)
	}

	sampler.SwizzleRed = gl.BLUE
	if _, err := s.GetSRV(sampler); err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 9 {
		t.Errorf("swizzle draws after new combination = %d, want 9", got)
	}
}

func TestSwizzleDepthOfArrays(t *testing.T) {
	tests := []struct {
		name string
		s    func(r Renderer) *Storage
		want int
	}{
		{"cube", func(r Renderer) *Storage { return NewCube(r, gl.RGBA8, false, 4, 1) }, 6},
		{"array", func(r Renderer) *Storage { return New2DArray(r, gl.RGBA8, false, 4, 4, 3, 1) }, 3},
		{"3D", func(r Renderer) *Storage { return New3D(r, gl.RGBA8, false, 4, 4, 5, 1) }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRenderer()
			if err := tt.s(r).GenerateSwizzles(gl.ALPHA, gl.GREEN, gl.BLUE, gl.RED); err != nil {
				t.Fatalf("GenerateSwizzles() error = %v", err)
			}
			if len(r.blitter.swizzles) != 1 {
				t.Fatalf("swizzle draws = %d, want 1", len(r.blitter.swizzles))
			}
			if got := r.blitter.swizzles[0].size.Depth; got != tt.want {
				t.Errorf("swizzle depth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateMipmap(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, true, 8, 8, 0)
	if err := s.GenerateSwizzles(gl.GREEN, gl.GREEN, gl.BLUE, gl.ALPHA); err != nil {
		t.Fatalf("GenerateSwizzles() error = %v", err)
	}

	if err := s.GenerateMipmap(gl.Make2DIndex(0), gl.Make2DIndex(1)); err != nil {
		t.Fatalf("GenerateMipmap() error = %v", err)
	}
	want := []copyCall{{
		sourceSize: gl.Extents{Width: 8, Height: 8, Depth: 1},
		destSize:   gl.Extents{Width: 4, Height: 4, Depth: 1},
		destFormat: gl.RGBA,
		filter:     gl.LINEAR,
	}}
	if diff := cmp.Diff(want, r.blitter.copies, cmp.AllowUnexported(copyCall{})); diff != "" {
		t.Errorf("mipmap copy mismatch (-want +got):\n%s", diff)
	}

	// Only the written level has a stale swizzle.
	if err := s.GenerateSwizzles(gl.GREEN, gl.GREEN, gl.BLUE, gl.ALPHA); err != nil {
		t.Fatalf("GenerateSwizzles() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 5 {
		t.Errorf("swizzle draws = %d, want 5", got)
	}
}

func TestGenerateMipmapAcrossLayersPanics(t *testing.T) {
	s := NewCube(newFakeRenderer(), gl.RGBA8, true, 8, 0)
	defer func() {
		if recover() == nil {
			t.Error("GenerateMipmap between faces did not panic")
		}
	}()
	_ = s.GenerateMipmap(gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_X, 0),
		gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_Y, 1))
}

func TestRenderTargets3D(t *testing.T) {
	r := newFakeRenderer()
	s := New3D(r, gl.RGBA8, true, 8, 8, 4, 0)

	whole, err := s.GetRenderTarget(gl.Make3DIndex(1, gl.EntireLevel))
	if err != nil {
		t.Fatalf("GetRenderTarget(level) error = %v", err)
	}
	if got := whole.Extents(); got != (gl.Extents{Width: 4, Height: 4, Depth: 2}) {
		t.Errorf("level target extents = %+v, want 4x4x2", got)
	}
	if whole.SRV == nil {
		t.Error("level target has no shader resource view")
	}

	slice, err := s.GetRenderTarget(gl.Make3DIndex(0, 3))
	if err != nil {
		t.Fatalf("GetRenderTarget(slice) error = %v", err)
	}
	if slice.SRV != nil {
		t.Error("slice target has a shader resource view")
	}
	want := d3d11.RenderTargetViewDesc{
		Format:        d3d11.FORMAT_R8G8B8A8_UNORM,
		ViewDimension: d3d11.RTV_DIMENSION_TEXTURE3D,
		Texture3D:     d3d11.Tex3DRTV{FirstWSlice: 3, WSize: 1},
	}
	if diff := cmp.Diff(want, slice.RTV.Desc()); diff != "" {
		t.Errorf("slice view mismatch (-want +got):\n%s", diff)
	}

	again, err := s.GetRenderTarget(gl.Make3DIndex(0, 3))
	if err != nil || again != slice {
		t.Errorf("GetRenderTarget() second call = %p, %v, want the cached target", again, err)
	}
}

func TestRenderTargetArrayLayer(t *testing.T) {
	r := newFakeRenderer()
	s := New2DArray(r, gl.RGBA8, true, 4, 4, 3, 1)

	rt, err := s.GetRenderTarget(gl.Make2DArrayIndex(0, 1))
	if err != nil {
		t.Fatalf("GetRenderTarget() error = %v", err)
	}
	want := d3d11.Tex2DArraySRV{MipLevels: 1, FirstArraySlice: 1, ArraySize: 1}
	if diff := cmp.Diff(want, rt.SRV.Desc().Texture2DArray); diff != "" {
		t.Errorf("layer view mismatch (-want +got):\n%s", diff)
	}

	defer func() {
		if recover() == nil {
			t.Error("GetRenderTarget past the last layer did not panic")
		}
	}()
	_, _ = s.GetRenderTarget(gl.Make2DArrayIndex(0, 3))
}

func TestUpdateSubresourceLevel(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 8, 8, 1)
	src, err := r.dev.CreateTexture2D(&d3d11.Texture2DDesc{
		Width: 8, Height: 8, MipLevels: 1, ArraySize: 1,
		Format:     d3d11.FORMAT_R8G8B8A8_UNORM,
		SampleDesc: d3d11.SampleDesc{Count: 1},
	}, nil)
	if err != nil {
		t.Fatalf("CreateTexture2D() error = %v", err)
	}

	partial := gl.Box{X: 1, Y: 2, Width: 3, Height: 4, Depth: 1}
	if err := s.UpdateSubresourceLevel(src, 0, gl.Make2DIndex(0), partial); err != nil {
		t.Fatalf("UpdateSubresourceLevel(partial) error = %v", err)
	}
	full := gl.Box{Width: 8, Height: 8, Depth: 1}
	if err := s.UpdateSubresourceLevel(src, 0, gl.Make2DIndex(0), full); err != nil {
		t.Fatalf("UpdateSubresourceLevel(full) error = %v", err)
	}

	copies := r.dev.ImmediateContext().Copies()
	if len(copies) != 2 {
		t.Fatalf("copies = %d, want 2", len(copies))
	}
	wantBox := &d3d11.Box{Left: 1, Top: 2, Right: 4, Bottom: 6, Back: 1}
	if diff := cmp.Diff(wantBox, copies[0].SrcBox); diff != "" {
		t.Errorf("partial source box mismatch (-want +got):\n%s", diff)
	}
	if copies[0].DstX != 1 || copies[0].DstY != 2 {
		t.Errorf("partial destination = (%d, %d), want (1, 2)", copies[0].DstX, copies[0].DstY)
	}
	if copies[1].SrcBox != nil {
		t.Errorf("full copy source box = %+v, want nil", copies[1].SrcBox)
	}
}

func TestUpdateSubresourceLevelDepthStencil(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.DEPTH24_STENCIL8, false, 8, 8, 1)
	src, err := r.dev.CreateTexture2D(&d3d11.Texture2DDesc{
		Width: 8, Height: 8, MipLevels: 1, ArraySize: 1,
		Format:     d3d11.FORMAT_R24G8_TYPELESS,
		SampleDesc: d3d11.SampleDesc{Count: 1},
	}, nil)
	if err != nil {
		t.Fatalf("CreateTexture2D() error = %v", err)
	}

	if err := s.UpdateSubresourceLevel(src, 0, gl.Make2DIndex(0), gl.Box{Width: 4, Height: 4, Depth: 1}); err != nil {
		t.Fatalf("UpdateSubresourceLevel(partial) error = %v", err)
	}
	if r.blitter.depthStencil != 1 || len(r.dev.ImmediateContext().Copies()) != 0 {
		t.Errorf("partial depth copy: blitter=%d region copies=%d, want 1 and 0",
			r.blitter.depthStencil, len(r.dev.ImmediateContext().Copies()))
	}

	if err := s.UpdateSubresourceLevel(src, 0, gl.Make2DIndex(0), gl.Box{Width: 8, Height: 8, Depth: 1}); err != nil {
		t.Fatalf("UpdateSubresourceLevel(full) error = %v", err)
	}
	if r.blitter.depthStencil != 1 || len(r.dev.ImmediateContext().Copies()) != 1 {
		t.Errorf("full depth copy: blitter=%d region copies=%d, want 1 and 1",
			r.blitter.depthStencil, len(r.dev.ImmediateContext().Copies()))
	}
}

type image struct {
	internalFormat gl.Enum
	size           gl.Extents
}

func (i image) InternalFormat() gl.Enum { return i.internalFormat }
func (i image) Size() gl.Extents        { return i.size }

func TestSetData(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 4, 4, 1)
	img := image{gl.RGBA8, gl.Extents{Width: 4, Height: 4, Depth: 1}}

	pixels := make([]byte, 4*4*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	if err := s.SetData(gl.Make2DIndex(0), img, nil, gl.UNSIGNED_BYTE, gl.DefaultPixelUnpackState(), pixels); err != nil {
		t.Fatalf("SetData(full) error = %v", err)
	}
	data, _, _ := soft.ReadSubresource(mustResource(t, s), 0)
	if diff := cmp.Diff(pixels, data); diff != "" {
		t.Errorf("uploaded pixels mismatch (-want +got):\n%s", diff)
	}

	box := gl.Box{X: 1, Y: 1, Width: 2, Height: 2, Depth: 1}
	if err := s.SetData(gl.Make2DIndex(0), img, &box, gl.UNSIGNED_BYTE, gl.DefaultPixelUnpackState(), pixels[:16]); err != nil {
		t.Fatalf("SetData(partial) error = %v", err)
	}

	updates := r.dev.ImmediateContext().Updates()
	if len(updates) != 2 {
		t.Fatalf("updates = %d, want 2", len(updates))
	}
	if updates[0].DstBox != nil || updates[0].RowPitch != 16 {
		t.Errorf("full update box=%+v rowPitch=%d, want nil and 16", updates[0].DstBox, updates[0].RowPitch)
	}
	wantBox := &d3d11.Box{Left: 1, Top: 1, Right: 3, Bottom: 3, Back: 1}
	if diff := cmp.Diff(wantBox, updates[1].DstBox); diff != "" {
		t.Errorf("partial box mismatch (-want +got):\n%s", diff)
	}
	if updates[1].RowPitch != 8 {
		t.Errorf("partial row pitch = %d, want 8", updates[1].RowPitch)
	}
}

func TestSetDataEmptyBox(t *testing.T) {
	r := newFakeRenderer()
	s := New2D(r, gl.RGBA8, false, 4, 4, 1)
	box := gl.Box{Width: 0, Height: 2, Depth: 1}
	err := s.SetData(gl.Make2DIndex(0), image{gl.RGBA8, gl.Extents{Width: 4, Height: 4, Depth: 1}},
		&box, gl.UNSIGNED_BYTE, gl.DefaultPixelUnpackState(), nil)
	if err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if got := len(r.dev.ImmediateContext().Updates()); got != 0 {
		t.Errorf("updates = %d, want 0", got)
	}
}

func TestCopyToStorage(t *testing.T) {
	r := newFakeRenderer()
	src := New2D(r, gl.RGBA8, false, 4, 4, 1)
	dst := New2D(r, gl.RGBA8, false, 4, 4, 1)
	if err := dst.GenerateSwizzles(gl.RED, gl.RED, gl.RED, gl.ALPHA); err != nil {
		t.Fatalf("GenerateSwizzles() error = %v", err)
	}

	if err := src.CopyToStorage(dst); err != nil {
		t.Fatalf("CopyToStorage() error = %v", err)
	}
	if got := r.dev.ImmediateContext().ResourceCopies(); got != 1 {
		t.Errorf("resource copies = %d, want 1", got)
	}
	if err := dst.GenerateSwizzles(gl.RED, gl.RED, gl.RED, gl.ALPHA); err != nil {
		t.Fatalf("GenerateSwizzles() error = %v", err)
	}
	if got := len(r.blitter.swizzles); got != 2 {
		t.Errorf("swizzle draws = %d, want 2", got)
	}
}

// fakeImage logs recoveries in order.
type fakeImage struct {
	name    string
	storage *Storage
	err     error
	log     *[]string
}

func (i *fakeImage) IsAssociatedStorageValid(s *Storage) bool { return i.storage == s }

func (i *fakeImage) RecoverFromAssociatedStorage() error {
	*i.log = append(*i.log, i.name)
	i.storage = nil
	return i.err
}

func TestReleaseAssociatedImage(t *testing.T) {
	s := NewCube(newFakeRenderer(), gl.RGBA8, false, 4, 0)
	var log []string
	old := &fakeImage{name: "old", storage: s, log: &log}
	incoming := &fakeImage{name: "incoming", storage: s, log: &log}
	face := gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_Z, 1)

	s.AssociateImage(old, face)
	if !s.IsAssociatedImageValid(face, old) {
		t.Fatal("associated image is not valid")
	}
	if s.IsAssociatedImageValid(gl.MakeCubeIndex(gl.TEXTURE_CUBE_MAP_POSITIVE_X, 1), old) {
		t.Error("association leaked to another face")
	}

	if err := s.ReleaseAssociatedImage(face, old); err != nil || len(log) != 0 {
		t.Errorf("releasing to the holder: err=%v recovered=%v, want nothing", err, log)
	}
	if err := s.ReleaseAssociatedImage(face, incoming); err != nil {
		t.Fatalf("ReleaseAssociatedImage() error = %v", err)
	}
	if diff := cmp.Diff([]string{"old"}, log); diff != "" {
		t.Errorf("recoveries mismatch (-want +got):\n%s", diff)
	}

	s.AssociateImage(incoming, face)
	s.DisassociateImage(face, old)
	if !s.IsAssociatedImageValid(face, incoming) {
		t.Error("disassociating a non-holder cleared the slot")
	}
	s.DisassociateImage(face, incoming)
	if s.IsAssociatedImageValid(face, incoming) {
		t.Error("slot still held after disassociation")
	}
}

func TestReleaseAssociatedImageBrokenPanics(t *testing.T) {
	s := New2D(newFakeRenderer(), gl.RGBA8, false, 4, 4, 1)
	var log []string
	s.AssociateImage(&fakeImage{name: "stale", log: &log}, gl.Make2DIndex(0))
	defer func() {
		if recover() == nil {
			t.Error("recovering a broken association did not panic")
		}
	}()
	_ = s.ReleaseAssociatedImage(gl.Make2DIndex(0), nil)
}

func TestReleaseRecoversImages(t *testing.T) {
	r := newFakeRenderer()
	s := New2DArray(r, gl.RGBA8, true, 4, 4, 2, 0)
	var log []string
	errFirst := errors.New("first")
	errSecond := errors.New("second")
	s.AssociateImage(&fakeImage{name: "1/0", storage: s, err: errSecond, log: &log}, gl.Make2DArrayIndex(1, 0))
	s.AssociateImage(&fakeImage{name: "0/1", storage: s, log: &log}, gl.Make2DArrayIndex(0, 1))
	s.AssociateImage(&fakeImage{name: "0/0", storage: s, err: errFirst, log: &log}, gl.Make2DArrayIndex(0, 0))

	sampler := gl.DefaultSamplerState()
	sampler.SwizzleAlpha = gl.ONE
	if _, err := s.GetSRV(sampler); err != nil {
		t.Fatalf("GetSRV() error = %v", err)
	}
	if _, err := s.GetRenderTarget(gl.Make2DArrayIndex(0, 1)); err != nil {
		t.Fatalf("GetRenderTarget() error = %v", err)
	}

	err := s.Release()
	if diff := cmp.Diff([]string{"0/0", "0/1", "1/0"}, log); diff != "" {
		t.Errorf("recovery order mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) || len(multierr.Errors(err)) != 2 {
		t.Errorf("Release() error = %v, want both recovery errors", err)
	}

	for _, method := range []string{"CreateTexture2D", "CreateShaderResourceView", "CreateRenderTargetView"} {
		if got := r.dev.Live(method); got != 0 {
			t.Errorf("%s live after Release = %d, want 0", method, got)
		}
	}
	if got := r.dev.DoubleReleases(); got != 0 {
		t.Errorf("double releases = %d, want 0", got)
	}

	if err := s.Release(); err != nil {
		t.Errorf("second Release() error = %v, want nil", err)
	}
	if got := r.dev.DoubleReleases(); got != 0 {
		t.Errorf("double releases after second Release = %d, want 0", got)
	}
}
