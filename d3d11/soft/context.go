package soft

import (
	"github.com/gogpu/texstore/d3d11"
)

// PipelineState is the state bound on a Context.
type PipelineState struct {
	InputLayout   d3d11.InputLayout
	VertexBuffers []d3d11.Buffer
	VertexStrides []uint32
	Topology      d3d11.PrimitiveTopology

	VS d3d11.VertexShader
	GS d3d11.GeometryShader
	PS d3d11.PixelShader

	PSConstantBuffers []d3d11.Buffer
	PSSamplers        []d3d11.SamplerState
	PSShaderResources []d3d11.ShaderResourceView
	VSShaderResources []d3d11.ShaderResourceView

	Rasterizer d3d11.RasterizerState
	Viewports  []d3d11.Viewport
	Scissors   []d3d11.Rect

	Blend            d3d11.BlendState
	DepthStencil     d3d11.DepthStencilState
	RenderTargets    []d3d11.RenderTargetView
	DepthStencilView d3d11.DepthStencilView
}

func (s PipelineState) clone() PipelineState {
	c := s
	c.VertexBuffers = append([]d3d11.Buffer(nil), s.VertexBuffers...)
	c.VertexStrides = append([]uint32(nil), s.VertexStrides...)
	c.PSConstantBuffers = append([]d3d11.Buffer(nil), s.PSConstantBuffers...)
	c.PSSamplers = append([]d3d11.SamplerState(nil), s.PSSamplers...)
	c.PSShaderResources = append([]d3d11.ShaderResourceView(nil), s.PSShaderResources...)
	c.VSShaderResources = append([]d3d11.ShaderResourceView(nil), s.VSShaderResources...)
	c.Viewports = append([]d3d11.Viewport(nil), s.Viewports...)
	c.Scissors = append([]d3d11.Rect(nil), s.Scissors...)
	c.RenderTargets = append([]d3d11.RenderTargetView(nil), s.RenderTargets...)
	return c
}

// DrawCall is a recorded Draw with the state bound at the time.
type DrawCall struct {
	PipelineState
	VertexCount uint32
	StartVertex uint32
	// Vertices and Constants copy the memory of vertex buffer 0 and pixel
	// constant buffer 0 when the draw was issued.
	Vertices  []byte
	Constants []byte
}

// CopyCall is a recorded CopySubresourceRegion.
type CopyCall struct {
	Dst            d3d11.Resource
	DstSubresource uint32
	DstX           uint32
	DstY           uint32
	DstZ           uint32
	Src            d3d11.Resource
	SrcSubresource uint32
	SrcBox         *d3d11.Box
}

// UpdateCall is a recorded UpdateSubresource.
type UpdateCall struct {
	Dst            d3d11.Resource
	DstSubresource uint32
	DstBox         *d3d11.Box
	RowPitch       uint32
	DepthPitch     uint32
}

// Context is the soft immediate context.
type Context struct {
	dev   *Device
	state PipelineState

	draws     []DrawCall
	copies    []CopyCall
	updates   []UpdateCall
	resCopies int
	mapped    int
}

// State returns a copy of the currently bound pipeline state.
func (c *Context) State() PipelineState { return c.state.clone() }

// Draws returns every draw recorded so far.
func (c *Context) Draws() []DrawCall { return c.draws }

// Copies returns every CopySubresourceRegion recorded so far.
func (c *Context) Copies() []CopyCall { return c.copies }

// Updates returns every UpdateSubresource recorded so far.
func (c *Context) Updates() []UpdateCall { return c.updates }

// ResourceCopies returns how many CopyResource calls were made.
func (c *Context) ResourceCopies() int { return c.resCopies }

// Outstanding returns the number of subresources currently mapped.
func (c *Context) Outstanding() int { return c.mapped }

// ResetLog forgets recorded draws, copies and updates.
func (c *Context) ResetLog() {
	c.draws, c.copies, c.updates, c.resCopies = nil, nil, nil, 0
}

func blocks(v, block int) int {
	return (v + block - 1) / block
}

// writeRegion stores client rows into a subresource. Coordinates are in
// texels and are clamped to the subresource.
func writeRegion(t *texture, s *subresource, x, y, z, w, h, d int, data []byte, rowPitch, depthPitch int) {
	bx0, by0 := x/t.blockW, y/t.blockH
	bx1 := min(blocks(x+w, t.blockW), blocks(s.width, t.blockW))
	by1 := min(blocks(y+h, t.blockH), blocks(s.height, t.blockH))
	z1 := min(z+d, s.depth)
	n := (bx1 - bx0) * t.pixelBytes
	if n <= 0 {
		return
	}
	for zz := z; zz < z1; zz++ {
		for by := by0; by < by1; by++ {
			src := (zz-z)*depthPitch + (by-by0)*rowPitch
			if src+n > len(data) {
				return
			}
			dst := zz*s.depthPitch + by*s.rowPitch + bx0*t.pixelBytes
			copy(s.data[dst:dst+n], data[src:src+n])
		}
	}
}

func (c *Context) CopySubresourceRegion(dst d3d11.Resource, dstSubresource, dstX, dstY, dstZ uint32, src d3d11.Resource, srcSubresource uint32, srcBox *d3d11.Box) {
	var boxCopy *d3d11.Box
	if srcBox != nil {
		b := *srcBox
		boxCopy = &b
	}
	c.copies = append(c.copies, CopyCall{
		Dst: dst, DstSubresource: dstSubresource, DstX: dstX, DstY: dstY, DstZ: dstZ,
		Src: src, SrcSubresource: srcSubresource, SrcBox: boxCopy,
	})

	dt, st := textureOf(dst), textureOf(src)
	if dt == nil || st == nil {
		return
	}
	ds, ss := dt.sub(dstSubresource), st.sub(srcSubresource)
	if ds == nil || ss == nil || dt.pixelBytes != st.pixelBytes {
		return
	}

	box := d3d11.Box{Right: uint32(ss.width), Bottom: uint32(ss.height), Back: uint32(ss.depth)}
	if srcBox != nil {
		box = *srcBox
	}
	left, top, front := int(box.Left), int(box.Top), int(box.Front)
	right := min(int(box.Right), ss.width)
	bottom := min(int(box.Bottom), ss.height)
	back := min(int(box.Back), ss.depth)
	if right <= left || bottom <= top || back <= front {
		return
	}

	bx0, by0 := left/st.blockW, top/st.blockH
	bw := blocks(right, st.blockW) - bx0
	bh := blocks(bottom, st.blockH) - by0
	dbx, dby := int(dstX)/dt.blockW, int(dstY)/dt.blockH
	bw = min(bw, blocks(ds.width, dt.blockW)-dbx)
	bh = min(bh, blocks(ds.height, dt.blockH)-dby)
	depth := min(back-front, ds.depth-int(dstZ))
	n := bw * st.pixelBytes
	if n <= 0 || bh <= 0 || depth <= 0 {
		return
	}
	for z := 0; z < depth; z++ {
		for y := 0; y < bh; y++ {
			so := (front+z)*ss.depthPitch + (by0+y)*ss.rowPitch + bx0*st.pixelBytes
			do := (int(dstZ)+z)*ds.depthPitch + (dby+y)*ds.rowPitch + dbx*dt.pixelBytes
			copy(ds.data[do:do+n], ss.data[so:so+n])
		}
	}
}

func (c *Context) CopyResource(dst, src d3d11.Resource) {
	c.resCopies++
	dt, st := textureOf(dst), textureOf(src)
	if dt == nil || st == nil {
		if db, ok := dst.(*Buffer); ok {
			if sb, ok := src.(*Buffer); ok {
				copy(db.data, sb.data)
			}
		}
		return
	}
	for i := 0; i < min(len(dt.subs), len(st.subs)); i++ {
		copy(dt.subs[i].data, st.subs[i].data)
	}
}

func (c *Context) UpdateSubresource(dst d3d11.Resource, dstSubresource uint32, dstBox *d3d11.Box, data []byte, rowPitch, depthPitch uint32) {
	var boxCopy *d3d11.Box
	if dstBox != nil {
		b := *dstBox
		boxCopy = &b
	}
	c.updates = append(c.updates, UpdateCall{
		Dst: dst, DstSubresource: dstSubresource, DstBox: boxCopy,
		RowPitch: rowPitch, DepthPitch: depthPitch,
	})

	if b, ok := dst.(*Buffer); ok {
		off := 0
		if dstBox != nil {
			off = int(dstBox.Left)
		}
		if off < len(b.data) {
			copy(b.data[off:], data)
		}
		return
	}
	t := textureOf(dst)
	if t == nil {
		return
	}
	s := t.sub(dstSubresource)
	if s == nil {
		return
	}
	x, y, z, w, h, d := 0, 0, 0, s.width, s.height, s.depth
	if dstBox != nil {
		x, y, z = int(dstBox.Left), int(dstBox.Top), int(dstBox.Front)
		w = int(dstBox.Right) - x
		h = int(dstBox.Bottom) - y
		d = int(dstBox.Back) - z
	}
	writeRegion(t, s, x, y, z, w, h, d, data, int(rowPitch), int(depthPitch))
}

func (c *Context) Map(res d3d11.Resource, subresource uint32, mapType d3d11.MapType, flags uint32) (d3d11.MappedSubresource, error) {
	const method = "Map"
	if err := c.dev.fault(method); err != nil {
		return d3d11.MappedSubresource{}, err
	}
	if b, ok := res.(*Buffer); ok {
		if b.desc.Usage != d3d11.USAGE_DYNAMIC && b.desc.Usage != d3d11.USAGE_STAGING {
			return d3d11.MappedSubresource{}, invalidArg(method)
		}
		if b.mapped || subresource != 0 {
			return d3d11.MappedSubresource{}, d3d11.ErrorCode{Name: method, Code: d3d11.DXGI_ERROR_INVALID_CALL}
		}
		b.mapped = true
		c.mapped++
		return d3d11.MappedSubresource{Data: b.data, RowPitch: uint32(len(b.data)), DepthPitch: uint32(len(b.data))}, nil
	}
	t := textureOf(res)
	if t == nil || (t.usage != d3d11.USAGE_STAGING && t.usage != d3d11.USAGE_DYNAMIC) {
		return d3d11.MappedSubresource{}, invalidArg(method)
	}
	if (mapType == d3d11.MAP_READ || mapType == d3d11.MAP_READ_WRITE) && t.cpuAccess&d3d11.CPU_ACCESS_READ == 0 {
		return d3d11.MappedSubresource{}, invalidArg(method)
	}
	s := t.sub(subresource)
	if s == nil || s.mapped {
		return d3d11.MappedSubresource{}, d3d11.ErrorCode{Name: method, Code: d3d11.DXGI_ERROR_INVALID_CALL}
	}
	s.mapped = true
	c.mapped++
	return d3d11.MappedSubresource{Data: s.data, RowPitch: uint32(s.rowPitch), DepthPitch: uint32(s.depthPitch)}, nil
}

func (c *Context) Unmap(res d3d11.Resource, subresource uint32) {
	if b, ok := res.(*Buffer); ok {
		if b.mapped {
			b.mapped = false
			c.mapped--
		}
		return
	}
	if t := textureOf(res); t != nil {
		if s := t.sub(subresource); s != nil && s.mapped {
			s.mapped = false
			c.mapped--
		}
	}
}

func (c *Context) IASetInputLayout(layout d3d11.InputLayout) { c.state.InputLayout = layout }

func (c *Context) IASetVertexBuffers(startSlot uint32, buffers []d3d11.Buffer, strides, offsets []uint32) {
	need := int(startSlot) + len(buffers)
	for len(c.state.VertexBuffers) < need {
		c.state.VertexBuffers = append(c.state.VertexBuffers, nil)
		c.state.VertexStrides = append(c.state.VertexStrides, 0)
	}
	for i, b := range buffers {
		c.state.VertexBuffers[int(startSlot)+i] = b
		if i < len(strides) {
			c.state.VertexStrides[int(startSlot)+i] = strides[i]
		}
	}
}

func (c *Context) IASetPrimitiveTopology(topology d3d11.PrimitiveTopology) {
	c.state.Topology = topology
}

func (c *Context) VSSetShader(shader d3d11.VertexShader)   { c.state.VS = shader }
func (c *Context) GSSetShader(shader d3d11.GeometryShader) { c.state.GS = shader }
func (c *Context) PSSetShader(shader d3d11.PixelShader)    { c.state.PS = shader }

func (c *Context) PSSetConstantBuffers(startSlot uint32, buffers []d3d11.Buffer) {
	c.state.PSConstantBuffers = setSlots(c.state.PSConstantBuffers, startSlot, buffers)
}

func (c *Context) PSSetSamplers(startSlot uint32, samplers []d3d11.SamplerState) {
	c.state.PSSamplers = setSlots(c.state.PSSamplers, startSlot, samplers)
}

func (c *Context) PSSetShaderResources(startSlot uint32, views []d3d11.ShaderResourceView) {
	c.state.PSShaderResources = setSlots(c.state.PSShaderResources, startSlot, views)
}

func (c *Context) VSSetShaderResources(startSlot uint32, views []d3d11.ShaderResourceView) {
	c.state.VSShaderResources = setSlots(c.state.VSShaderResources, startSlot, views)
}

func setSlots[T any](slots []T, start uint32, values []T) []T {
	need := int(start) + len(values)
	for len(slots) < need {
		var zero T
		slots = append(slots, zero)
	}
	copy(slots[start:], values)
	return slots
}

func (c *Context) RSSetState(state d3d11.RasterizerState) { c.state.Rasterizer = state }

func (c *Context) RSSetViewports(viewports []d3d11.Viewport) {
	c.state.Viewports = append([]d3d11.Viewport(nil), viewports...)
}

func (c *Context) RSSetScissorRects(rects []d3d11.Rect) {
	c.state.Scissors = append([]d3d11.Rect(nil), rects...)
}

func (c *Context) OMSetBlendState(state d3d11.BlendState, blendFactor *[4]float32, sampleMask uint32) {
	c.state.Blend = state
}

func (c *Context) OMSetDepthStencilState(state d3d11.DepthStencilState, stencilRef uint32) {
	c.state.DepthStencil = state
}

func (c *Context) OMSetRenderTargets(rtvs []d3d11.RenderTargetView, dsv d3d11.DepthStencilView) {
	c.state.RenderTargets = append([]d3d11.RenderTargetView(nil), rtvs...)
	c.state.DepthStencilView = dsv
}

func (c *Context) Draw(vertexCount, startVertex uint32) {
	call := DrawCall{
		PipelineState: c.state.clone(),
		VertexCount:   vertexCount,
		StartVertex:   startVertex,
	}
	if len(c.state.VertexBuffers) > 0 {
		if b, ok := c.state.VertexBuffers[0].(*Buffer); ok && b != nil {
			call.Vertices = append([]byte(nil), b.data...)
		}
	}
	if len(c.state.PSConstantBuffers) > 0 {
		if b, ok := c.state.PSConstantBuffers[0].(*Buffer); ok && b != nil {
			call.Constants = append([]byte(nil), b.data...)
		}
	}
	c.draws = append(c.draws, call)
}

var _ d3d11.DeviceContext = (*Context)(nil)
