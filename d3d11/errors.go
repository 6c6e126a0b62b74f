package d3d11

import (
	"errors"
	"fmt"
)

// HRESULT codes reported by devices.
const (
	S_OK                      = 0
	E_FAIL                    = 0x80004005
	E_INVALIDARG              = 0x80070057
	E_OUTOFMEMORY             = 0x8007000E
	DXGI_ERROR_DEVICE_REMOVED = 0x887A0005
	DXGI_ERROR_DEVICE_HUNG    = 0x887A0006
	DXGI_ERROR_DEVICE_RESET   = 0x887A0007
	DXGI_ERROR_INVALID_CALL   = 0x887A0001
	D3DDDIERR_DEVICEREMOVED   = 0x88760870
)

// ErrorCode is a failed HRESULT together with the name of the call that
// produced it.
type ErrorCode struct {
	Name string
	Code uint32
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %#x", e.Name, e.Code)
}

// HRESULT returns the HRESULT carried by err, or E_FAIL if err is not an
// ErrorCode.
func HRESULT(err error) uint32 {
	var ec ErrorCode
	if errors.As(err, &ec) {
		return ec.Code
	}
	return E_FAIL
}

// IsDeviceLost reports whether err signals a removed or reset device.
func IsDeviceLost(err error) bool {
	var ec ErrorCode
	if !errors.As(err, &ec) {
		return false
	}
	switch ec.Code {
	case DXGI_ERROR_DEVICE_REMOVED, DXGI_ERROR_DEVICE_RESET, D3DDDIERR_DEVICEREMOVED:
		return true
	}
	return false
}
