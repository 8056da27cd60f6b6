// Package server implements the local control and status server.
//
// The daemon binds a loopback HTTP listener with two endpoints:
//
//   - /ws: WebSocket. On connect the client receives a state snapshot,
//     then a stream of decoded device events (dial movements, volume and
//     EQ reports, power transitions). The same connection accepts JSON
//     commands (set_volume, set_eq_preset, set_eq_band, set_sonar_icon,
//     set_chatmix_controls, get_state) which are applied to the device
//     through the feature registry's try-invoke surface.
//   - /status: one-shot JSON state snapshot for scripts.
//
// The Hub implements headset.Notifier: features publish decoded events
// into it from the dispatch loop, so delivery to clients is strictly
// non-blocking — a client that cannot keep up loses events, never stalls
// the loop.
//
// Commands for features the device does not expose come back with
// supported=false rather than an error; receive-only models (Nova 5X)
// reject nothing, they just can't do anything.
package server
