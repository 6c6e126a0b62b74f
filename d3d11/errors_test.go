package d3d11

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDeviceLost(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrorCode{Name: "CreateTexture2D", Code: DXGI_ERROR_DEVICE_REMOVED}, true},
		{ErrorCode{Name: "CreateTexture2D", Code: DXGI_ERROR_DEVICE_RESET}, true},
		{fmt.Errorf("wrapped: %w", ErrorCode{Code: D3DDDIERR_DEVICEREMOVED}), true},
		{ErrorCode{Code: E_OUTOFMEMORY}, false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsDeviceLost(tt.err); got != tt.want {
			t.Errorf("IsDeviceLost(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestHRESULT(t *testing.T) {
	if got := HRESULT(ErrorCode{Code: E_OUTOFMEMORY}); got != E_OUTOFMEMORY {
		t.Errorf("HRESULT() = %#x", got)
	}
	if got := HRESULT(errors.New("x")); got != E_FAIL {
		t.Errorf("HRESULT(non-d3d) = %#x, want E_FAIL", got)
	}
	if s := (ErrorCode{Name: "Map", Code: E_INVALIDARG}).Error(); s != "Map: 0x80070057" {
		t.Errorf("Error() = %q", s)
	}
}

func TestCalcSubresource(t *testing.T) {
	if got := CalcSubresource(2, 3, 5); got != 17 {
		t.Errorf("CalcSubresource(2,3,5) = %d, want 17", got)
	}
}

func TestMostDetailedMip(t *testing.T) {
	d := ShaderResourceViewDesc{ViewDimension: SRV_DIMENSION_TEXTURE2DARRAY, Texture2DArray: Tex2DArraySRV{MostDetailedMip: 3}}
	if d.MostDetailedMip() != 3 {
		t.Errorf("MostDetailedMip() = %d", d.MostDetailedMip())
	}
}
