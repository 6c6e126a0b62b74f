package d3d11

// Format is a DXGI_FORMAT value.
type Format uint32

// DXGI formats. Values match dxgiformat.h.
const (
	FORMAT_UNKNOWN                  Format = 0
	FORMAT_R32G32B32A32_TYPELESS    Format = 1
	FORMAT_R32G32B32A32_FLOAT       Format = 2
	FORMAT_R32G32B32A32_UINT        Format = 3
	FORMAT_R32G32B32A32_SINT        Format = 4
	FORMAT_R32G32B32_TYPELESS       Format = 5
	FORMAT_R32G32B32_FLOAT          Format = 6
	FORMAT_R32G32B32_UINT           Format = 7
	FORMAT_R32G32B32_SINT           Format = 8
	FORMAT_R16G16B16A16_TYPELESS    Format = 9
	FORMAT_R16G16B16A16_FLOAT       Format = 10
	FORMAT_R16G16B16A16_UNORM       Format = 11
	FORMAT_R16G16B16A16_UINT        Format = 12
	FORMAT_R16G16B16A16_SNORM       Format = 13
	FORMAT_R16G16B16A16_SINT        Format = 14
	FORMAT_R32G32_TYPELESS          Format = 15
	FORMAT_R32G32_FLOAT             Format = 16
	FORMAT_R32G32_UINT              Format = 17
	FORMAT_R32G32_SINT              Format = 18
	FORMAT_R32G8X24_TYPELESS        Format = 19
	FORMAT_D32_FLOAT_S8X24_UINT     Format = 20
	FORMAT_R32_FLOAT_X8X24_TYPELESS Format = 21
	FORMAT_X32_TYPELESS_G8X24_UINT  Format = 22
	FORMAT_R10G10B10A2_TYPELESS     Format = 23
	FORMAT_R10G10B10A2_UNORM        Format = 24
	FORMAT_R10G10B10A2_UINT         Format = 25
	FORMAT_R11G11B10_FLOAT          Format = 26
	FORMAT_R8G8B8A8_TYPELESS        Format = 27
	FORMAT_R8G8B8A8_UNORM           Format = 28
	FORMAT_R8G8B8A8_UNORM_SRGB      Format = 29
	FORMAT_R8G8B8A8_UINT            Format = 30
	FORMAT_R8G8B8A8_SNORM           Format = 31
	FORMAT_R8G8B8A8_SINT            Format = 32
	FORMAT_R16G16_TYPELESS          Format = 33
	FORMAT_R16G16_FLOAT             Format = 34
	FORMAT_R16G16_UNORM             Format = 35
	FORMAT_R16G16_UINT              Format = 36
	FORMAT_R16G16_SNORM             Format = 37
	FORMAT_R16G16_SINT              Format = 38
	FORMAT_R32_TYPELESS             Format = 39
	FORMAT_D32_FLOAT                Format = 40
	FORMAT_R32_FLOAT                Format = 41
	FORMAT_R32_UINT                 Format = 42
	FORMAT_R32_SINT                 Format = 43
	FORMAT_R24G8_TYPELESS           Format = 44
	FORMAT_D24_UNORM_S8_UINT        Format = 45
	FORMAT_R24_UNORM_X8_TYPELESS    Format = 46
	FORMAT_X24_TYPELESS_G8_UINT     Format = 47
	FORMAT_R8G8_TYPELESS            Format = 48
	FORMAT_R8G8_UNORM               Format = 49
	FORMAT_R8G8_UINT                Format = 50
	FORMAT_R8G8_SNORM               Format = 51
	FORMAT_R8G8_SINT                Format = 52
	FORMAT_R16_TYPELESS             Format = 53
	FORMAT_R16_FLOAT                Format = 54
	FORMAT_D16_UNORM                Format = 55
	FORMAT_R16_UNORM                Format = 56
	FORMAT_R16_UINT                 Format = 57
	FORMAT_R16_SNORM                Format = 58
	FORMAT_R16_SINT                 Format = 59
	FORMAT_R8_TYPELESS              Format = 60
	FORMAT_R8_UNORM                 Format = 61
	FORMAT_R8_UINT                  Format = 62
	FORMAT_R8_SNORM                 Format = 63
	FORMAT_R8_SINT                  Format = 64
	FORMAT_A8_UNORM                 Format = 65
	FORMAT_R9G9B9E5_SHAREDEXP       Format = 67
	FORMAT_BC1_UNORM                Format = 71
	FORMAT_BC2_UNORM                Format = 74
	FORMAT_BC3_UNORM                Format = 77
	FORMAT_B5G6R5_UNORM             Format = 85
	FORMAT_B5G5R5A1_UNORM           Format = 86
	FORMAT_B8G8R8A8_UNORM           Format = 87
	FORMAT_B8G8R8X8_UNORM           Format = 88
	FORMAT_B8G8R8A8_TYPELESS        Format = 90
	FORMAT_B4G4R4A4_UNORM           Format = 115
)
