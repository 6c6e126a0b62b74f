// Command texprobe drives textures through the storage layer on the CPU
// reference device and reports the device work each one causes.
//
// A texture can be described with flags:
//
//	texprobe -kind cube -format RGBA8 -size 64x64 -mipmaps -swizzle bgra
//
// or several at once in a YAML scenario:
//
//	level9: false
//	textures:
//	  - name: albedo
//	    kind: 2d
//	    format: RGBA8
//	    size: 256x256
//	    mipmaps: true
//	    renderTarget: true
//	  - name: volume
//	    kind: 3d
//	    format: R8
//	    size: 32x32x32
//	    levels: 3
//
//	texprobe -scenario probe.yaml
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/texstore"
	"github.com/gogpu/texstore/d3d11/soft"
)

func main() {
	var (
		scenarioFile = flag.String("scenario", "", "YAML scenario file; overrides the texture flags")
		kind         = flag.String("kind", "2d", "texture kind: 2d, cube, 3d or 2darray")
		format       = flag.String("format", "RGBA8", "sized internal format")
		size         = flag.String("size", "64x64", "level 0 size, WxH or WxHxD")
		levels       = flag.Int("levels", 0, "immutable level count, 0 for a mutable texture")
		renderTarget = flag.Bool("rt", false, "request a render target storage")
		mipmaps      = flag.Bool("mipmaps", false, "generate mipmaps")
		swizzle      = flag.String("swizzle", "", "sampler swizzle, e.g. bgra or rrr1")
		level9       = flag.Bool("level9", false, "use the feature level 9 paths")
		setData      = flag.Bool("setdata", false, "upload straight into existing storages")
		verbose      = flag.Bool("v", false, "log storage activity to stderr")
	)
	flag.Parse()

	sc := &scenario{
		Level9:  *level9,
		SetData: *setData,
		Textures: []textureSpec{{
			Name:         "texture",
			Kind:         *kind,
			Format:       *format,
			Size:         *size,
			Levels:       *levels,
			RenderTarget: *renderTarget,
			Mipmaps:      *mipmaps,
			Swizzle:      *swizzle,
		}},
	}
	if *scenarioFile != "" {
		var err error
		if sc, err = readScenarioFile(*scenarioFile); err != nil {
			log.Fatalf("Failed to read scenario: %v", err)
		}
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		texstore.SetLogger(logger)
	}

	dev := soft.New()
	r, err := texstore.NewRenderer(dev, dev.ImmediateContext(),
		texstore.WithFeatureLevel9(sc.Level9),
		texstore.WithSetDataWorkaround(sc.SetData),
		texstore.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Release()

	failed := false
	for _, spec := range sc.Textures {
		st, err := probe(r, dev, spec)
		if err != nil {
			log.Printf("%s: %v", spec.Name, err)
			failed = true
			continue
		}
		log.Printf("%s: %s %s %dx%dx%d, %d levels: %d draws, %d copies, %d updates, %d resource copies, %d live textures\n",
			spec.Name, st.kind, spec.Format, st.size.Width, st.size.Height, st.size.Depth, st.levels,
			st.draws, st.copies, st.updates, st.resourceCopies, st.liveTextures)
		log.Printf("%s: webgpu %v %v %dx%dx%d\n", spec.Name, st.dimension, st.webgpuFormat,
			st.extent.Width, st.extent.Height, st.extent.DepthOrArrayLayers)
	}
	if r.IsDeviceLost() {
		log.Printf("device lost")
		failed = true
	}
	if failed {
		r.Release()
		os.Exit(1)
	}
}
