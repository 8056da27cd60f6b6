package hiddev

import (
	"errors"
	"time"
)

// ErrDeviceNotFound is returned when no HID device matches the requested
// vendor/product/interface triple. Hardware absence is not transient within
// a single run, so callers should fail fast rather than retry.
var ErrDeviceNotFound = errors.New("device not found")

// ErrReadTimeout is returned by Channel.Read when the bounded read window
// elapses without a packet. It is an expected condition, recovered locally
// by the caller's read loop.
var ErrReadTimeout = errors.New("read timed out")

// Channel is one exclusive communication path to a HID device. A Channel is
// owned by a single reader; concurrent reads of the same channel are not
// supported.
type Channel interface {
	// Read fills buf with the next input report. A timeout of zero blocks
	// indefinitely; a positive timeout returns ErrReadTimeout when it
	// elapses. Any other error is terminal for the channel.
	Read(buf []byte, timeout time.Duration) (int, error)

	// Write sends an output report. The report must already carry the
	// direction marker and padding expected by the device.
	Write(data []byte) (int, error)

	// Close releases the device handle. Safe to call more than once.
	Close() error
}
