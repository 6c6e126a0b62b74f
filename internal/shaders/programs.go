package shaders

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

//go:embed hlsl/*.hlsl
var hlslFS embed.FS

//go:embed wgsl/blit.wgsl.tmpl
var wgslTemplate string

var wgslTemplates = template.Must(template.New("blit").Parse(wgslTemplate))

// ErrUnknownProgram is returned for a program name that is not in the
// program table.
var ErrUnknownProgram = errors.New("shaders: unknown program")

// Stage is the pipeline stage a program runs in.
type Stage uint8

const (
	StageVertex Stage = iota
	StageGeometry
	StagePixel
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StagePixel:
		return "pixel"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Vertex and geometry programs.
const (
	VSPassthrough2D = "VS_Passthrough2D"
	VSPassthrough3D = "VS_Passthrough3D"
	GSPassthrough3D = "GS_Passthrough3D"
)

// Depth blit.
const PSPassthroughDepth2D = "PS_PassthroughDepth2D"

// 2D passthrough pixel programs.
const (
	PSPassthroughRGBA2D     = "PS_PassthroughRGBA2D"
	PSPassthroughRGBA2DUI   = "PS_PassthroughRGBA2DUI"
	PSPassthroughRGBA2DI    = "PS_PassthroughRGBA2DI"
	PSPassthroughRGB2D      = "PS_PassthroughRGB2D"
	PSPassthroughRGB2DUI    = "PS_PassthroughRGB2DUI"
	PSPassthroughRGB2DI     = "PS_PassthroughRGB2DI"
	PSPassthroughRG2D       = "PS_PassthroughRG2D"
	PSPassthroughRG2DUI     = "PS_PassthroughRG2DUI"
	PSPassthroughRG2DI      = "PS_PassthroughRG2DI"
	PSPassthroughR2D        = "PS_PassthroughR2D"
	PSPassthroughR2DUI      = "PS_PassthroughR2DUI"
	PSPassthroughR2DI       = "PS_PassthroughR2DI"
	PSPassthroughLum2D      = "PS_PassthroughLum2D"
	PSPassthroughLumAlpha2D = "PS_PassthroughLumAlpha2D"
)

// 3D passthrough pixel programs.
const (
	PSPassthroughRGBA3D     = "PS_PassthroughRGBA3D"
	PSPassthroughRGBA3DUI   = "PS_PassthroughRGBA3DUI"
	PSPassthroughRGBA3DI    = "PS_PassthroughRGBA3DI"
	PSPassthroughRGB3D      = "PS_PassthroughRGB3D"
	PSPassthroughRGB3DUI    = "PS_PassthroughRGB3DUI"
	PSPassthroughRGB3DI     = "PS_PassthroughRGB3DI"
	PSPassthroughRG3D       = "PS_PassthroughRG3D"
	PSPassthroughRG3DUI     = "PS_PassthroughRG3DUI"
	PSPassthroughRG3DI      = "PS_PassthroughRG3DI"
	PSPassthroughR3D        = "PS_PassthroughR3D"
	PSPassthroughR3DUI      = "PS_PassthroughR3DUI"
	PSPassthroughR3DI       = "PS_PassthroughR3DI"
	PSPassthroughLum3D      = "PS_PassthroughLum3D"
	PSPassthroughLumAlpha3D = "PS_PassthroughLumAlpha3D"
)

// Swizzle pixel programs.
const (
	PSSwizzleF2D       = "PS_SwizzleF2D"
	PSSwizzleUI2D      = "PS_SwizzleUI2D"
	PSSwizzleI2D       = "PS_SwizzleI2D"
	PSSwizzleF3D       = "PS_SwizzleF3D"
	PSSwizzleUI3D      = "PS_SwizzleUI3D"
	PSSwizzleI3D       = "PS_SwizzleI3D"
	PSSwizzleF2DArray  = "PS_SwizzleF2DArray"
	PSSwizzleUI2DArray = "PS_SwizzleUI2DArray"
	PSSwizzleI2DArray  = "PS_SwizzleI2DArray"
)

// Program describes one shader entry point.
type Program struct {
	// Name is the HLSL entry point.
	Name  string
	Stage Stage
	// File is the embedded HLSL source file holding the entry point.
	File string

	wgsl string // template name, empty when there is no WGSL rendition
	expr string // passthrough output expression
}

var programs = buildProgramTable()

func buildProgramTable() map[string]Program {
	t := make(map[string]Program)
	add := func(p Program) { t[p.Name] = p }

	add(Program{Name: VSPassthrough2D, Stage: StageVertex, File: "passthrough2d.hlsl", wgsl: "quad2d"})
	add(Program{Name: VSPassthrough3D, Stage: StageVertex, File: "passthrough3d.hlsl"})
	add(Program{Name: GSPassthrough3D, Stage: StageGeometry, File: "passthrough3d.hlsl"})
	add(Program{Name: PSPassthroughDepth2D, Stage: StagePixel, File: "passthrough2d.hlsl", wgsl: "depth"})

	float2D := map[string]string{
		PSPassthroughRGBA2D:     "c",
		PSPassthroughRGB2D:      "vec4<f32>(c.rgb, 1.0)",
		PSPassthroughRG2D:       "vec4<f32>(c.rg, 0.0, 1.0)",
		PSPassthroughR2D:        "vec4<f32>(c.r, 0.0, 0.0, 1.0)",
		PSPassthroughLum2D:      "vec4<f32>(c.rrr, 1.0)",
		PSPassthroughLumAlpha2D: "vec4<f32>(c.rrr, c.a)",
	}
	for name, expr := range float2D {
		add(Program{Name: name, Stage: StagePixel, File: "passthrough2d.hlsl", wgsl: "passthrough", expr: expr})
	}
	for _, name := range []string{
		PSPassthroughRGBA2DUI, PSPassthroughRGBA2DI,
		PSPassthroughRGB2DUI, PSPassthroughRGB2DI,
		PSPassthroughRG2DUI, PSPassthroughRG2DI,
		PSPassthroughR2DUI, PSPassthroughR2DI,
	} {
		add(Program{Name: name, Stage: StagePixel, File: "passthrough2d.hlsl"})
	}

	for _, name := range []string{
		PSPassthroughRGBA3D, PSPassthroughRGBA3DUI, PSPassthroughRGBA3DI,
		PSPassthroughRGB3D, PSPassthroughRGB3DUI, PSPassthroughRGB3DI,
		PSPassthroughRG3D, PSPassthroughRG3DUI, PSPassthroughRG3DI,
		PSPassthroughR3D, PSPassthroughR3DUI, PSPassthroughR3DI,
		PSPassthroughLum3D, PSPassthroughLumAlpha3D,
	} {
		add(Program{Name: name, Stage: StagePixel, File: "passthrough3d.hlsl"})
	}

	add(Program{Name: PSSwizzleF2D, Stage: StagePixel, File: "swizzle.hlsl", wgsl: "swizzle"})
	for _, name := range []string{
		PSSwizzleUI2D, PSSwizzleI2D,
		PSSwizzleF3D, PSSwizzleUI3D, PSSwizzleI3D,
		PSSwizzleF2DArray, PSSwizzleUI2DArray, PSSwizzleI2DArray,
	} {
		add(Program{Name: name, Stage: StagePixel, File: "swizzle.hlsl"})
	}
	return t
}

// Lookup returns the program with the given entry point name.
func Lookup(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// Names returns every known program name.
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	return names
}

// HLSL returns the HLSL source file holding the program.
func (p Program) HLSL() ([]byte, error) {
	src, err := hlslFS.ReadFile("hlsl/" + p.File)
	if err != nil {
		return nil, fmt.Errorf("shaders: read %s: %w", p.File, err)
	}
	return src, nil
}

// Profile returns the D3DCompile target profile for the program.
// Feature level 9 devices need the level_9_3 variants, which exist only
// for vertex and pixel programs.
func (p Program) Profile(level9 bool) string {
	var profile string
	switch p.Stage {
	case StageVertex:
		profile = "vs_4_0"
	case StageGeometry:
		return "gs_4_0"
	default:
		profile = "ps_4_0"
	}
	if level9 {
		profile += "_level_9_3"
	}
	return profile
}

// HasWGSL reports whether the program has a WGSL rendition.
func (p Program) HasWGSL() bool {
	return p.wgsl != ""
}

// WGSL renders the program's WGSL rendition as a single entry point
// module. It returns an error for programs without one.
func (p Program) WGSL() (string, error) {
	if p.wgsl == "" {
		return "", fmt.Errorf("shaders: %s has no WGSL rendition", p.Name)
	}
	var buf bytes.Buffer
	if err := wgslTemplates.ExecuteTemplate(&buf, p.wgsl, struct{ Expr string }{p.expr}); err != nil {
		return "", fmt.Errorf("shaders: render %s: %w", p.Name, err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func lookup(name string) (Program, error) {
	p, ok := programs[name]
	if !ok {
		return Program{}, fmt.Errorf("%w: %q", ErrUnknownProgram, name)
	}
	return p, nil
}
