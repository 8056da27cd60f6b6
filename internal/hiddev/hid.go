package hiddev

import (
	"fmt"
	"sync"
	"time"

	"github.com/sstallion/go-hid"
	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
)

var initOnce sync.Once

// Find locates the HID interface matching vendorID, productID, and the USB
// interface number, and opens it. Opening through hidapi detaches any bound
// kernel driver and claims the interface, so no separate claim step exists.
// Returns ErrDeviceNotFound when no matching interface is present.
func Find(vendorID, productID uint16, ifaceNumber int) (Channel, error) {
	initOnce.Do(func() {
		_ = hid.Init()
	})

	var path string
	err := hid.Enumerate(vendorID, productID, func(info *hid.DeviceInfo) error {
		if path == "" && info.InterfaceNbr == ifaceNumber {
			path = info.Path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating %04x:%04x: %w", vendorID, productID, err)
	}
	if path == "" {
		return nil, fmt.Errorf("%04x:%04x interface %d: %w",
			vendorID, productID, ifaceNumber, ErrDeviceNotFound)
	}

	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	logging.Info("HID device opened",
		zap.String("path", path),
		zap.Int("interface", ifaceNumber),
	)

	return &hidChannel{dev: dev, path: path}, nil
}

// hidChannel adapts a hidapi device handle to the Channel interface.
type hidChannel struct {
	dev  *hid.Device
	path string

	mu     sync.Mutex
	closed bool
}

func (c *hidChannel) Read(buf []byte, timeout time.Duration) (int, error) {
	var (
		n   int
		err error
	)
	if timeout <= 0 {
		n, err = c.dev.Read(buf)
	} else {
		n, err = c.dev.ReadWithTimeout(buf, timeout)
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", c.path, err)
	}
	// hidapi signals an elapsed timeout as a zero-byte read.
	if n == 0 {
		return 0, ErrReadTimeout
	}
	return n, nil
}

func (c *hidChannel) Write(data []byte) (int, error) {
	n, err := c.dev.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", c.path, err)
	}
	return n, nil
}

func (c *hidChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dev.Close()
}
