// Package headset implements the feature-composition and opcode-dispatch
// engine for SteelSeries Nova base stations.
//
// # Architecture
//
// A Device owns one HID channel and a set of Features. Each feature is a
// self-contained capability (volume, EQ, ChatMix, the Sonar icon) attached
// to one endpoint, contributing an opcode-to-handler table. At attach time
// the device merges these tables into a per-endpoint dispatch map and
// records any open/close hooks the feature declares.
//
// The dispatch loop (Device.Run) is the longest-lived active component:
// one goroutine performs bounded blocking reads on the endpoint, routes
// each packet by its first byte, and drops unknown opcodes silently —
// these base stations emit far more message types than are documented, and
// treating them as errors would make the daemon useless.
//
// # Lifecycle
//
//	dev, err := headset.FindDevice(headset.Nova5X)      // fails fast if absent
//	dev.Attach(chatmix, volume)                          // before Open
//	dev.Open()                                           // fire open hooks
//	err = dev.Run(ctx, model.Endpoint(), time.Second)    // blocks; always closes
//
// Close runs exactly once regardless of exit cause: normal stop, signal
// cancellation, or a terminal transport error all funnel through the same
// hook sequence, and each feature restores its own device-side state
// (controls disabled, icon off) before the channel is released.
//
// # ChatMix
//
// The ChatMix feature is the reason this daemon exists: it keeps two
// pw-loopback virtual sinks (game, chat) routed at the real headset sink
// and applies the hardware dial's two volume percentages to them. Sink
// liveness is re-checked before every volume application because the audio
// stack can restart underneath us; dead sinks are restarted, live ones are
// left alone.
//
// # Concurrency
//
// The dispatch loop exclusively owns the channel's read side and the
// dispatch table. Control writes may arrive from other goroutines (the
// control server); features guard their own mutable state, and the closing
// flag is atomic. No other locking is needed.
package headset
