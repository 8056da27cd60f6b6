package headset

// Kind identifies a feature. A device holds at most one feature per kind.
type Kind string

const (
	KindSonarIcon Kind = "sonar-icon"
	KindChatMix   Kind = "chatmix"
	KindVolume    Kind = "volume"
	KindEQ        Kind = "eq"
)

// Handler processes one inbound packet. The packet starts at the opcode
// byte; the direction marker has already been consumed by the transport.
// Handlers run on the dispatch loop goroutine.
type Handler func(pkt []byte)

// Feature is a self-contained capability attached to a device. A feature
// owns its endpoint reference and the opcode slice of the protocol it
// listens for. Features implementing OpenHook or CloseHook additionally
// take part in the device lifecycle; the capability check happens once at
// attach time.
type Feature interface {
	Kind() Kind
	Endpoint() Endpoint

	// Opcodes returns the feature's opcode-to-handler table. An entry
	// with a non-nil handler that discards its packet means "consume
	// silently"; that is different from an unregistered opcode, which the
	// dispatch loop drops as unknown.
	Opcodes() map[byte]Handler
}

// OpenHook is implemented by features that need a hook when the device
// transitions to open. Hook errors are logged, not fatal: a feature whose
// open hook fails stays attached but inert.
type OpenHook interface {
	OnOpen() error
}

// CloseHook is implemented by features that need teardown on device close.
// Each feature restores its own enabled state; the registry knows nothing
// about feature internals. Hooks must tolerate being reached with nothing
// to undo.
type CloseHook interface {
	OnClose() error
}

// ControlWriter sends control packets to the device on behalf of features.
// The boolean result reports whether the endpoint supports outbound writes
// at all: false means the device is receive-only on that endpoint, which
// callers treat as "unsupported", never as an error.
type ControlWriter interface {
	WriteControl(ep Endpoint, opcode byte, payload ...byte) (bool, error)
}
