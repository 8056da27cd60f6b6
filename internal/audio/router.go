package audio

// SinkInfo describes one output sink known to the audio server.
type SinkInfo struct {
	ID   string
	Name string
}

// Sink is a handle to a started virtual loopback sink. The underlying
// process is an independent OS-level entity: the audio stack can kill or
// restart it at any time, so liveness is polled, never assumed.
type Sink interface {
	// Name returns the virtual sink's node name.
	Name() string

	// Alive reports whether the loopback process is still running.
	Alive() bool

	// Stop terminates the loopback process. Stopping an already-dead sink
	// is not an error.
	Stop() error
}

// Router abstracts the audio routing commands novamix needs: enumerating
// real sinks, creating virtual loopback sinks, and setting sink-input
// volumes.
type Router interface {
	// ListSinks returns the sinks currently known to the audio server.
	ListSinks() ([]SinkInfo, error)

	// StartLoopback creates a virtual sink named name whose playback is
	// routed to the real sink target. The returned handle owns the
	// loopback process.
	StartLoopback(target, name string) (Sink, error)

	// SetVolume sets the volume of the named sink input to a percentage
	// (0-100).
	SetVolume(sinkInput string, percent int) error
}
