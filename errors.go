package texstore

import "errors"

var (
	// ErrNilDevice is returned by NewRenderer without a device or context.
	ErrNilDevice = errors.New("texstore: nil device or device context")

	// ErrDeviceLost is returned by operations on a renderer whose device
	// was removed or reset.
	ErrDeviceLost = errors.New("texstore: device lost")
)
