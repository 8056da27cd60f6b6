// Package hiddev provides the USB/HID transport for novamix.
//
// It wraps hidapi (via github.com/sstallion/go-hid) behind a small Channel
// interface so that everything above the transport can be driven by fakes
// in tests. Discovery is a single enumeration pass over the matching
// vendor/product IDs, selecting the interface number the base station
// exposes its vendor protocol on.
//
// # Timeouts
//
// Channel.Read maps hidapi's zero-byte timeout result to ErrReadTimeout,
// which the dispatch loop treats as "nothing happened" and uses as its
// opportunity to observe cancellation. Every other read error is terminal:
// the device went away or the handle was closed underneath us, and either
// way the run loop's answer is the same close sequence as a clean shutdown.
//
// # Ownership
//
// A Channel is exclusively owned by the dispatch loop that reads it. Writes
// may come from other goroutines (control commands); hidapi serializes
// those internally.
package hiddev
