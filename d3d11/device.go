package d3d11

// Unknown is the IUnknown subset every D3D object exposes.
type Unknown interface {
	Release()
}

// Resource is ID3D11Resource.
type Resource interface {
	Unknown
	Dimension() ResourceDimension
}

// Texture2D is ID3D11Texture2D.
type Texture2D interface {
	Resource
	Desc() Texture2DDesc
}

// Texture3D is ID3D11Texture3D.
type Texture3D interface {
	Resource
	Desc() Texture3DDesc
}

// Buffer is ID3D11Buffer.
type Buffer interface {
	Resource
	Desc() BufferDesc
}

// View is the ID3D11View subset shared by resource views.
type View interface {
	Unknown
	ViewedResource() Resource
}

// ShaderResourceView is ID3D11ShaderResourceView.
type ShaderResourceView interface {
	View
	Desc() ShaderResourceViewDesc
}

// RenderTargetView is ID3D11RenderTargetView.
type RenderTargetView interface {
	View
	Desc() RenderTargetViewDesc
}

// DepthStencilView is ID3D11DepthStencilView.
type DepthStencilView interface {
	View
	Desc() DepthStencilViewDesc
}

// Pipeline state objects. Their descriptors are write-only from the point
// of view of this package.
type (
	SamplerState      interface{ Unknown }
	RasterizerState   interface{ Unknown }
	DepthStencilState interface{ Unknown }
	BlendState        interface{ Unknown }
	InputLayout       interface{ Unknown }
	VertexShader      interface{ Unknown }
	PixelShader       interface{ Unknown }
	GeometryShader    interface{ Unknown }
)

// Device is the resource-creation half of ID3D11Device.
//
// Every Create method returns an ErrorCode on failure. A failure caused by
// device removal reports DXGI_ERROR_DEVICE_REMOVED or DXGI_ERROR_DEVICE_RESET
// and can be detected with IsDeviceLost.
type Device interface {
	CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Texture2D, error)
	CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Texture3D, error)
	CreateBuffer(desc *BufferDesc, initial *SubresourceData) (Buffer, error)

	CreateShaderResourceView(res Resource, desc *ShaderResourceViewDesc) (ShaderResourceView, error)
	CreateRenderTargetView(res Resource, desc *RenderTargetViewDesc) (RenderTargetView, error)
	CreateDepthStencilView(res Resource, desc *DepthStencilViewDesc) (DepthStencilView, error)

	CreateSamplerState(desc *SamplerDesc) (SamplerState, error)
	CreateRasterizerState(desc *RasterizerDesc) (RasterizerState, error)
	CreateDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error)
	CreateInputLayout(elems []InputElementDesc, vertexBytecode []byte) (InputLayout, error)

	CreateVertexShader(bytecode []byte) (VertexShader, error)
	CreatePixelShader(bytecode []byte) (PixelShader, error)
	CreateGeometryShader(bytecode []byte) (GeometryShader, error)
}

// DeviceContext is the immediate ID3D11DeviceContext.
//
// Commands execute in submission order. Map blocks until the GPU is done
// with the mapped subresource.
type DeviceContext interface {
	CopySubresourceRegion(dst Resource, dstSubresource, dstX, dstY, dstZ uint32, src Resource, srcSubresource uint32, srcBox *Box)
	CopyResource(dst, src Resource)
	UpdateSubresource(dst Resource, dstSubresource uint32, dstBox *Box, data []byte, rowPitch, depthPitch uint32)
	Map(res Resource, subresource uint32, mapType MapType, flags uint32) (MappedSubresource, error)
	Unmap(res Resource, subresource uint32)

	IASetInputLayout(layout InputLayout)
	IASetVertexBuffers(startSlot uint32, buffers []Buffer, strides, offsets []uint32)
	IASetPrimitiveTopology(topology PrimitiveTopology)

	VSSetShader(shader VertexShader)
	GSSetShader(shader GeometryShader)
	PSSetShader(shader PixelShader)
	PSSetConstantBuffers(startSlot uint32, buffers []Buffer)
	PSSetSamplers(startSlot uint32, samplers []SamplerState)
	PSSetShaderResources(startSlot uint32, views []ShaderResourceView)
	VSSetShaderResources(startSlot uint32, views []ShaderResourceView)

	RSSetState(state RasterizerState)
	RSSetViewports(viewports []Viewport)
	RSSetScissorRects(rects []Rect)

	OMSetBlendState(state BlendState, blendFactor *[4]float32, sampleMask uint32)
	OMSetDepthStencilState(state DepthStencilState, stencilRef uint32)
	OMSetRenderTargets(rtvs []RenderTargetView, dsv DepthStencilView)

	Draw(vertexCount, startVertex uint32)
}

// CalcSubresource is D3D11CalcSubresource.
func CalcSubresource(mipSlice, arraySlice, mipLevels uint32) uint32 {
	return mipSlice + arraySlice*mipLevels
}
