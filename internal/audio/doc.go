// Package audio abstracts the PipeWire commands novamix uses for audio
// routing.
//
// The daemon never talks to the audio server directly: sink enumeration and
// volume changes go through pactl, and virtual sinks are pw-loopback
// processes redirected at the real headset sink. Both tools ship with any
// PipeWire desktop, and using them keeps the daemon free of an audio client
// library and its event-loop requirements.
//
// The Router interface exists so the ChatMix orchestrator can be tested
// against an in-memory fake; PipeWireRouter is the only real
// implementation.
//
// Virtual sink processes are fire-and-forget: a background Wait reaps each
// one, and Sink.Alive answers from the reaper rather than poking the
// process table. The audio stack restarting out from under us shows up as
// a dead sink on the next liveness check.
package audio
