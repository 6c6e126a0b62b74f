package blit

import (
	"fmt"

	"github.com/gogpu/texstore/d3d11"
)

// passState is the lifecycle of a transient pass.
type passState int

const (
	passRecording passState = iota
	passEnded
)

func (s passState) String() string {
	switch s {
	case passRecording:
		return "Recording"
	case passEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// transientPass brackets one operation that takes over the pipeline. Its
// end unbinds what the operation bound and marks all renderer state dirty.
//
// State Machine:
//
//	Recording -> end() -> Ended
//
// Ending a pass twice is a programming error and panics.
type transientPass struct {
	r     Renderer
	state passState
}

func (b *Blitter) beginPass() *transientPass {
	return &transientPass{r: b.r}
}

// end releases the borrowed pipeline. The vertex buffer slot is cleared so
// the shared buffer can be mapped with WRITE_DISCARD by the next pass.
func (p *transientPass) end() {
	if p.state != passRecording {
		panic("blit: transient pass ended twice")
	}
	p.state = passEnded

	p.r.SetShaderResource(d3d11.ShaderStagePixel, 0, nil)
	p.r.UnapplyRenderTargets()
	p.r.DeviceContext().IASetVertexBuffers(0, []d3d11.Buffer{nil}, []uint32{0}, []uint32{0})
	p.r.MarkAllStateDirty()
}
