package soft

import (
	"github.com/gogpu/texstore/d3d11"
	"github.com/gogpu/texstore/internal/format"
)

// Device is a CPU implementation of d3d11.Device.
//
// Device is not safe for concurrent use.
type Device struct {
	ctx *Context

	faults         map[string][]uint32
	created        map[string]int
	live           map[string]int
	doubleReleases int
}

// New creates a device and its immediate context.
func New() *Device {
	d := &Device{
		faults:  make(map[string][]uint32),
		created: make(map[string]int),
		live:    make(map[string]int),
	}
	d.ctx = &Context{dev: d}
	return d
}

// ImmediateContext returns the device's only context.
func (d *Device) ImmediateContext() *Context { return d.ctx }

// FailNext makes the next call named method fail with hr. Calls queue: two
// FailNext calls for the same method fail the next two calls.
func (d *Device) FailNext(method string, hr uint32) {
	d.faults[method] = append(d.faults[method], hr)
}

// Created returns how many objects the named Create method produced.
func (d *Device) Created(method string) int { return d.created[method] }

// Live returns how many objects of the named Create method are unreleased.
func (d *Device) Live(method string) int { return d.live[method] }

// DoubleReleases returns how many times an already released object was
// released again.
func (d *Device) DoubleReleases() int { return d.doubleReleases }

func (d *Device) fault(method string) error {
	q := d.faults[method]
	if len(q) == 0 {
		return nil
	}
	hr := q[0]
	d.faults[method] = q[1:]
	return d3d11.ErrorCode{Name: method, Code: hr}
}

func (d *Device) track(method string) object {
	d.created[method]++
	d.live[method]++
	return object{dev: d, kind: method}
}

func invalidArg(method string) error {
	return d3d11.ErrorCode{Name: method, Code: d3d11.E_INVALIDARG}
}

func validTextureDesc(f d3d11.Format, usage d3d11.Usage, bind d3d11.BindFlag) bool {
	if format.GetDXGIFormatInfo(f).PixelBytes == 0 {
		return false
	}
	if usage == d3d11.USAGE_STAGING && bind != 0 {
		return false
	}
	return true
}

func (d *Device) CreateTexture2D(desc *d3d11.Texture2DDesc, initial []d3d11.SubresourceData) (d3d11.Texture2D, error) {
	const method = "CreateTexture2D"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if desc.Width == 0 || desc.Height == 0 || desc.ArraySize == 0 || !validTextureDesc(desc.Format, desc.Usage, desc.BindFlags) {
		return nil, invalidArg(method)
	}
	if desc.MiscFlags&d3d11.RESOURCE_MISC_TEXTURECUBE != 0 && desc.ArraySize%6 != 0 {
		return nil, invalidArg(method)
	}
	resolved := *desc
	if resolved.MipLevels == 0 {
		resolved.MipLevels = uint32(format.MipLevelCount(int(desc.Width), int(desc.Height), 1))
	}
	tex := newTexture(d, method, d3d11.RESOURCE_DIMENSION_TEXTURE2D, desc.Format,
		int(desc.Width), int(desc.Height), 1, int(resolved.MipLevels), int(desc.ArraySize), desc.Usage, desc.CPUAccessFlags)
	tex.object = d.track(method)
	fillInitial(tex, initial)
	return &Texture2D{texture: tex, desc: resolved}, nil
}

func (d *Device) CreateTexture3D(desc *d3d11.Texture3DDesc, initial []d3d11.SubresourceData) (d3d11.Texture3D, error) {
	const method = "CreateTexture3D"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if desc.Width == 0 || desc.Height == 0 || desc.Depth == 0 || !validTextureDesc(desc.Format, desc.Usage, desc.BindFlags) {
		return nil, invalidArg(method)
	}
	resolved := *desc
	if resolved.MipLevels == 0 {
		resolved.MipLevels = uint32(format.MipLevelCount(int(desc.Width), int(desc.Height), int(desc.Depth)))
	}
	tex := newTexture(d, method, d3d11.RESOURCE_DIMENSION_TEXTURE3D, desc.Format,
		int(desc.Width), int(desc.Height), int(desc.Depth), int(resolved.MipLevels), 1, desc.Usage, desc.CPUAccessFlags)
	tex.object = d.track(method)
	fillInitial(tex, initial)
	return &Texture3D{texture: tex, desc: resolved}, nil
}

func fillInitial(t *texture, initial []d3d11.SubresourceData) {
	for i, init := range initial {
		if i >= len(t.subs) {
			return
		}
		writeRegion(t, t.subs[i], 0, 0, 0, t.subs[i].width, t.subs[i].height, t.subs[i].depth,
			init.Data, int(init.RowPitch), int(init.SlicePitch))
	}
}

func (d *Device) CreateBuffer(desc *d3d11.BufferDesc, initial *d3d11.SubresourceData) (d3d11.Buffer, error) {
	const method = "CreateBuffer"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if desc.ByteWidth == 0 {
		return nil, invalidArg(method)
	}
	b := &Buffer{object: d.track(method), desc: *desc, data: make([]byte, desc.ByteWidth)}
	if initial != nil {
		copy(b.data, initial.Data)
	}
	return b, nil
}

func (d *Device) CreateShaderResourceView(res d3d11.Resource, desc *d3d11.ShaderResourceViewDesc) (d3d11.ShaderResourceView, error) {
	const method = "CreateShaderResourceView"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if res == nil || desc == nil {
		return nil, invalidArg(method)
	}
	return &ShaderResourceView{object: d.track(method), res: res, desc: *desc}, nil
}

func (d *Device) CreateRenderTargetView(res d3d11.Resource, desc *d3d11.RenderTargetViewDesc) (d3d11.RenderTargetView, error) {
	const method = "CreateRenderTargetView"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if res == nil || desc == nil {
		return nil, invalidArg(method)
	}
	return &RenderTargetView{object: d.track(method), res: res, desc: *desc}, nil
}

func (d *Device) CreateDepthStencilView(res d3d11.Resource, desc *d3d11.DepthStencilViewDesc) (d3d11.DepthStencilView, error) {
	const method = "CreateDepthStencilView"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if res == nil || desc == nil {
		return nil, invalidArg(method)
	}
	return &DepthStencilView{object: d.track(method), res: res, desc: *desc}, nil
}

func (d *Device) CreateSamplerState(desc *d3d11.SamplerDesc) (d3d11.SamplerState, error) {
	s, err := d.createState("CreateSamplerState", *desc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) CreateRasterizerState(desc *d3d11.RasterizerDesc) (d3d11.RasterizerState, error) {
	s, err := d.createState("CreateRasterizerState", *desc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) CreateDepthStencilState(desc *d3d11.DepthStencilDesc) (d3d11.DepthStencilState, error) {
	s, err := d.createState("CreateDepthStencilState", *desc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) createState(method string, desc any) (*State, error) {
	if err := d.fault(method); err != nil {
		return nil, err
	}
	return &State{object: d.track(method), Desc: desc}, nil
}

func (d *Device) CreateInputLayout(elems []d3d11.InputElementDesc, vertexBytecode []byte) (d3d11.InputLayout, error) {
	const method = "CreateInputLayout"
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if len(elems) == 0 || len(vertexBytecode) == 0 {
		return nil, invalidArg(method)
	}
	return &InputLayout{object: d.track(method), Elements: append([]d3d11.InputElementDesc(nil), elems...)}, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (d3d11.VertexShader, error) {
	s, err := d.createShader("CreateVertexShader", bytecode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (d3d11.PixelShader, error) {
	s, err := d.createShader("CreatePixelShader", bytecode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) CreateGeometryShader(bytecode []byte) (d3d11.GeometryShader, error) {
	s, err := d.createShader("CreateGeometryShader", bytecode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Device) createShader(method string, bytecode []byte) (*Shader, error) {
	if err := d.fault(method); err != nil {
		return nil, err
	}
	if len(bytecode) == 0 {
		return nil, invalidArg(method)
	}
	return &Shader{object: d.track(method), Bytecode: bytecode}, nil
}

var _ d3d11.Device = (*Device)(nil)
