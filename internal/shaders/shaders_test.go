package shaders

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

func TestProgramTableSourcesContainEntryPoints(t *testing.T) {
	names := Names()
	if len(names) != 41 {
		t.Errorf("program count = %d, want 41", len(names))
	}
	for _, name := range names {
		prog, _ := Lookup(name)
		src, err := prog.HLSL()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Contains(src, []byte(" "+name+"(")) {
			t.Errorf("%s not found in %s", name, prog.File)
		}
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name   string
		level9 bool
		want   string
	}{
		{VSPassthrough2D, false, "vs_4_0"},
		{VSPassthrough2D, true, "vs_4_0_level_9_3"},
		{PSPassthroughRGBA2D, false, "ps_4_0"},
		{PSPassthroughRGBA2D, true, "ps_4_0_level_9_3"},
		{GSPassthrough3D, false, "gs_4_0"},
		{GSPassthrough3D, true, "gs_4_0"},
	}
	for _, tt := range tests {
		prog, ok := Lookup(tt.name)
		if !ok {
			t.Fatalf("Lookup(%s) failed", tt.name)
		}
		if got := prog.Profile(tt.level9); got != tt.want {
			t.Errorf("%s.Profile(%v) = %q, want %q", tt.name, tt.level9, got, tt.want)
		}
	}
}

func TestWGSLRenditions(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  string
	}{
		{VSPassthrough2D, "fn vs_main", "out.texcoord = texcoord"},
		{PSPassthroughRGBA2D, "fn fs_main", "return c;"},
		{PSPassthroughLum2D, "fn fs_main", "vec4<f32>(c.rrr, 1.0)"},
		{PSPassthroughDepth2D, "fn fs_main", "@builtin(frag_depth)"},
		{PSSwizzleF2D, "fn fs_main", "var<uniform> swizzle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, _ := Lookup(tt.name)
			src, err := prog.WGSL()
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(src, tt.entry) || !strings.Contains(src, tt.want) {
				t.Errorf("WGSL for %s missing %q or %q:\n%s", tt.name, tt.entry, tt.want, src)
			}
			if strings.Count(src, "@vertex")+strings.Count(src, "@fragment") != 1 {
				t.Errorf("WGSL for %s should hold exactly one entry point", tt.name)
			}
		})
	}

	prog, _ := Lookup(GSPassthrough3D)
	if prog.HasWGSL() {
		t.Error("geometry program should not have a WGSL rendition")
	}
	if _, err := prog.WGSL(); err == nil {
		t.Error("WGSL() for geometry program should fail")
	}
}

func TestPortableCachesResults(t *testing.T) {
	calls := 0
	p := NewPortable()
	p.compile = func(src string) ([]byte, error) {
		calls++
		return []byte("spirv"), nil
	}

	for range 3 {
		code, err := p.Bytecode(PSPassthroughRGBA2D)
		if err != nil {
			t.Fatal(err)
		}
		if string(code) != "spirv" {
			t.Errorf("Bytecode = %q, want %q", code, "spirv")
		}
	}
	if calls != 1 {
		t.Errorf("compile calls = %d, want 1", calls)
	}
	if st := p.Stats(); st.Hits != 2 || st.Misses != 1 {
		t.Errorf("Stats = %+v, want 2 hits and 1 miss", st)
	}
}

func TestPortableFallsBackToHLSL(t *testing.T) {
	p := NewPortable()
	p.compile = func(string) ([]byte, error) {
		t.Fatal("compile should not run for programs without WGSL")
		return nil, nil
	}
	code, err := p.Bytecode(PSPassthroughRGBA3DUI)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(code, []byte("PS_PassthroughRGBA3DUI")) {
		t.Error("fallback bytecode should be the HLSL source")
	}
}

func TestPortableErrors(t *testing.T) {
	p := NewPortable()
	if _, err := p.Bytecode("PS_Missing"); !errors.Is(err, ErrUnknownProgram) {
		t.Errorf("unknown program error = %v, want ErrUnknownProgram", err)
	}

	boom := errors.New("boom")
	calls := 0
	p.compile = func(string) ([]byte, error) {
		calls++
		return nil, boom
	}
	for range 2 {
		if _, err := p.Bytecode(VSPassthrough2D); !errors.Is(err, boom) {
			t.Errorf("Bytecode error = %v, want wrapped boom", err)
		}
	}
	if calls != 2 {
		t.Errorf("failed compiles should not be cached: calls = %d", calls)
	}
}

func TestFuncLibrary(t *testing.T) {
	var lib Library = Func(func(name string) ([]byte, error) {
		return []byte(name), nil
	})
	code, err := lib.Bytecode(PSSwizzleF3D)
	if err != nil || string(code) != PSSwizzleF3D {
		t.Errorf("Func.Bytecode = %q, %v", code, err)
	}
}

func TestNagaCompilesWGSL(t *testing.T) {
	for _, name := range Names() {
		prog, _ := Lookup(name)
		if !prog.HasWGSL() {
			continue
		}
		t.Run(name, func(t *testing.T) {
			src, err := prog.WGSL()
			if err != nil {
				t.Fatal(err)
			}
			spirv, err := naga.Compile(src)
			if err != nil {
				// naga's WGSL frontend is still incomplete; the SPIR-V
				// path is exercised only where it already works.
				t.Skipf("Skipping: naga cannot compile %s yet: %v", name, err)
			}
			if len(spirv) < 4 {
				t.Fatal("SPIR-V output is empty")
			}
			magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
			if magic != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x, want 0x07230203", magic)
			}
		})
	}
}
