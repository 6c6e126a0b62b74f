package d3d11

// SampleDesc is DXGI_SAMPLE_DESC.
type SampleDesc struct {
	Count   uint32
	Quality uint32
}

// Texture2DDesc is D3D11_TEXTURE2D_DESC.
type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         Format
	SampleDesc     SampleDesc
	Usage          Usage
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      MiscFlag
}

// Texture3DDesc is D3D11_TEXTURE3D_DESC.
type Texture3DDesc struct {
	Width          uint32
	Height         uint32
	Depth          uint32
	MipLevels      uint32
	Format         Format
	Usage          Usage
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      MiscFlag
}

// BufferDesc is D3D11_BUFFER_DESC.
type BufferDesc struct {
	ByteWidth           uint32
	Usage               Usage
	BindFlags           BindFlag
	CPUAccessFlags      CPUAccessFlag
	MiscFlags           MiscFlag
	StructureByteStride uint32
}

// SubresourceData is D3D11_SUBRESOURCE_DATA.
type SubresourceData struct {
	Data       []byte
	RowPitch   uint32
	SlicePitch uint32
}

// MappedSubresource is D3D11_MAPPED_SUBRESOURCE. Data aliases the mapped
// memory and is only valid until the matching Unmap.
type MappedSubresource struct {
	Data       []byte
	RowPitch   uint32
	DepthPitch uint32
}

// Box is D3D11_BOX. Right, Bottom and Back are exclusive.
type Box struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

// Viewport is D3D11_VIEWPORT.
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// Rect is D3D11_RECT, used for scissor rectangles.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Tex2DSRV is D3D11_TEX2D_SRV. It also serves TEXTURECUBE and TEXTURE3D
// views, which share the layout.
type Tex2DSRV struct {
	MostDetailedMip uint32
	MipLevels       uint32
}

// Tex2DArraySRV is D3D11_TEX2D_ARRAY_SRV.
type Tex2DArraySRV struct {
	MostDetailedMip uint32
	MipLevels       uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// ShaderResourceViewDesc is D3D11_SHADER_RESOURCE_VIEW_DESC.
type ShaderResourceViewDesc struct {
	Format         Format
	ViewDimension  SRVDimension
	Texture2D      Tex2DSRV
	Texture2DArray Tex2DArraySRV
	Texture3D      Tex2DSRV
	TextureCube    Tex2DSRV
}

// MostDetailedMip returns the first mip of the view regardless of its
// dimension.
func (d *ShaderResourceViewDesc) MostDetailedMip() uint32 {
	switch d.ViewDimension {
	case SRV_DIMENSION_TEXTURE2DARRAY:
		return d.Texture2DArray.MostDetailedMip
	case SRV_DIMENSION_TEXTURE3D:
		return d.Texture3D.MostDetailedMip
	case SRV_DIMENSION_TEXTURECUBE:
		return d.TextureCube.MostDetailedMip
	default:
		return d.Texture2D.MostDetailedMip
	}
}

// Tex2DRTV is D3D11_TEX2D_RTV.
type Tex2DRTV struct {
	MipSlice uint32
}

// Tex2DArrayRTV is D3D11_TEX2D_ARRAY_RTV.
type Tex2DArrayRTV struct {
	MipSlice        uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// Tex3DRTV is D3D11_TEX3D_RTV. A WSize of AllMips selects every remaining
// depth slice.
type Tex3DRTV struct {
	MipSlice    uint32
	FirstWSlice uint32
	WSize       uint32
}

// RenderTargetViewDesc is D3D11_RENDER_TARGET_VIEW_DESC.
type RenderTargetViewDesc struct {
	Format         Format
	ViewDimension  RTVDimension
	Texture2D      Tex2DRTV
	Texture2DArray Tex2DArrayRTV
	Texture3D      Tex3DRTV
}

// Tex2DDSV is D3D11_TEX2D_DSV.
type Tex2DDSV struct {
	MipSlice uint32
}

// Tex2DArrayDSV is D3D11_TEX2D_ARRAY_DSV.
type Tex2DArrayDSV struct {
	MipSlice        uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// DepthStencilViewDesc is D3D11_DEPTH_STENCIL_VIEW_DESC.
type DepthStencilViewDesc struct {
	Format         Format
	ViewDimension  DSVDimension
	Flags          uint32
	Texture2D      Tex2DDSV
	Texture2DArray Tex2DArrayDSV
}

// SamplerDesc is D3D11_SAMPLER_DESC.
type SamplerDesc struct {
	Filter         Filter
	AddressU       TextureAddressMode
	AddressV       TextureAddressMode
	AddressW       TextureAddressMode
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc ComparisonFunc
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

// RasterizerDesc is D3D11_RASTERIZER_DESC.
type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
}

// DepthStencilOpDesc is D3D11_DEPTH_STENCILOP_DESC.
type DepthStencilOpDesc struct {
	StencilFailOp      StencilOp
	StencilDepthFailOp StencilOp
	StencilPassOp      StencilOp
	StencilFunc        ComparisonFunc
}

// DepthStencilDesc is D3D11_DEPTH_STENCIL_DESC.
type DepthStencilDesc struct {
	DepthEnable      bool
	DepthWriteMask   DepthWriteMask
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DepthStencilOpDesc
	BackFace         DepthStencilOpDesc
}

// InputElementDesc is D3D11_INPUT_ELEMENT_DESC.
type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}
