package d3d11

// BindFlag is a D3D11_BIND_FLAG bitmask.
type BindFlag uint32

const (
	BIND_VERTEX_BUFFER   BindFlag = 0x1
	BIND_INDEX_BUFFER    BindFlag = 0x2
	BIND_CONSTANT_BUFFER BindFlag = 0x4
	BIND_SHADER_RESOURCE BindFlag = 0x8
	BIND_RENDER_TARGET   BindFlag = 0x20
	BIND_DEPTH_STENCIL   BindFlag = 0x40
)

// Usage is a D3D11_USAGE value.
type Usage uint32

const (
	USAGE_DEFAULT   Usage = 0
	USAGE_IMMUTABLE Usage = 1
	USAGE_DYNAMIC   Usage = 2
	USAGE_STAGING   Usage = 3
)

// CPUAccessFlag is a D3D11_CPU_ACCESS_FLAG bitmask.
type CPUAccessFlag uint32

const (
	CPU_ACCESS_WRITE CPUAccessFlag = 0x10000
	CPU_ACCESS_READ  CPUAccessFlag = 0x20000
)

// MiscFlag is a D3D11_RESOURCE_MISC_FLAG bitmask.
type MiscFlag uint32

const (
	RESOURCE_MISC_GENERATE_MIPS MiscFlag = 0x1
	RESOURCE_MISC_TEXTURECUBE   MiscFlag = 0x4
)

// MapType is a D3D11_MAP value.
type MapType uint32

const (
	MAP_READ          MapType = 1
	MAP_WRITE         MapType = 2
	MAP_READ_WRITE    MapType = 3
	MAP_WRITE_DISCARD MapType = 4
)

// ResourceDimension identifies the concrete type behind a Resource.
type ResourceDimension uint32

const (
	RESOURCE_DIMENSION_UNKNOWN   ResourceDimension = 0
	RESOURCE_DIMENSION_BUFFER    ResourceDimension = 1
	RESOURCE_DIMENSION_TEXTURE2D ResourceDimension = 3
	RESOURCE_DIMENSION_TEXTURE3D ResourceDimension = 4
)

// SRVDimension is a D3D11_SRV_DIMENSION value.
type SRVDimension uint32

const (
	SRV_DIMENSION_UNKNOWN        SRVDimension = 0
	SRV_DIMENSION_TEXTURE2D      SRVDimension = 4
	SRV_DIMENSION_TEXTURE2DARRAY SRVDimension = 5
	SRV_DIMENSION_TEXTURE3D      SRVDimension = 8
	SRV_DIMENSION_TEXTURECUBE    SRVDimension = 9
)

// RTVDimension is a D3D11_RTV_DIMENSION value.
type RTVDimension uint32

const (
	RTV_DIMENSION_UNKNOWN        RTVDimension = 0
	RTV_DIMENSION_TEXTURE2D      RTVDimension = 4
	RTV_DIMENSION_TEXTURE2DARRAY RTVDimension = 5
	RTV_DIMENSION_TEXTURE3D      RTVDimension = 8
)

// DSVDimension is a D3D11_DSV_DIMENSION value.
type DSVDimension uint32

const (
	DSV_DIMENSION_UNKNOWN        DSVDimension = 0
	DSV_DIMENSION_TEXTURE2D      DSVDimension = 3
	DSV_DIMENSION_TEXTURE2DARRAY DSVDimension = 4
)

// PrimitiveTopology is a D3D11_PRIMITIVE_TOPOLOGY value.
type PrimitiveTopology uint32

const (
	PRIMITIVE_TOPOLOGY_UNDEFINED     PrimitiveTopology = 0
	PRIMITIVE_TOPOLOGY_POINTLIST     PrimitiveTopology = 1
	PRIMITIVE_TOPOLOGY_TRIANGLELIST  PrimitiveTopology = 4
	PRIMITIVE_TOPOLOGY_TRIANGLESTRIP PrimitiveTopology = 5
)

// Filter is a D3D11_FILTER value.
type Filter uint32

const (
	FILTER_MIN_MAG_MIP_POINT  Filter = 0
	FILTER_MIN_MAG_MIP_LINEAR Filter = 0x15
)

// TextureAddressMode is a D3D11_TEXTURE_ADDRESS_MODE value.
type TextureAddressMode uint32

const (
	TEXTURE_ADDRESS_WRAP   TextureAddressMode = 1
	TEXTURE_ADDRESS_MIRROR TextureAddressMode = 2
	TEXTURE_ADDRESS_CLAMP  TextureAddressMode = 3
)

// ComparisonFunc is a D3D11_COMPARISON_FUNC value.
type ComparisonFunc uint32

const (
	COMPARISON_NEVER  ComparisonFunc = 1
	COMPARISON_LESS   ComparisonFunc = 2
	COMPARISON_ALWAYS ComparisonFunc = 8
)

// FillMode is a D3D11_FILL_MODE value.
type FillMode uint32

const (
	FILL_WIREFRAME FillMode = 2
	FILL_SOLID     FillMode = 3
)

// CullMode is a D3D11_CULL_MODE value.
type CullMode uint32

const (
	CULL_NONE  CullMode = 1
	CULL_FRONT CullMode = 2
	CULL_BACK  CullMode = 3
)

// DepthWriteMask is a D3D11_DEPTH_WRITE_MASK value.
type DepthWriteMask uint32

const (
	DEPTH_WRITE_MASK_ZERO DepthWriteMask = 0
	DEPTH_WRITE_MASK_ALL  DepthWriteMask = 1
)

// StencilOp is a D3D11_STENCIL_OP value.
type StencilOp uint32

const (
	STENCIL_OP_KEEP StencilOp = 1
)

// InputClassification is a D3D11_INPUT_CLASSIFICATION value.
type InputClassification uint32

const (
	INPUT_PER_VERTEX_DATA   InputClassification = 0
	INPUT_PER_INSTANCE_DATA InputClassification = 1
)

// ShaderStage selects the pipeline stage a shader resource is bound to.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageGeometry
	ShaderStagePixel
)

// AllMips selects every remaining mip level in a view descriptor. It is the
// bit pattern of -1 in the native descriptor.
const AllMips = ^uint32(0)

// DefaultSampleMask enables every sample in OMSetBlendState.
const DefaultSampleMask = 0xFFFFFFFF
