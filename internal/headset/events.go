package headset

// EventType discriminates device events published by features.
type EventType string

const (
	EventChatMix  EventType = "chatmix"
	EventVolume   EventType = "volume"
	EventEQBand   EventType = "eq_band"
	EventEQPreset EventType = "eq_preset"
	EventPower    EventType = "power"
)

// Event is a decoded device report. Which fields are meaningful depends on
// Type; the zero value of the remaining fields is left in place so that
// consumers can marshal events wholesale.
type Event struct {
	Type EventType `json:"type"`

	// EventChatMix
	GamePercent int `json:"game_percent"`
	ChatPercent int `json:"chat_percent"`

	// EventVolume: dB steps below maximum (0 = loudest)
	Attenuation int `json:"attenuation"`

	// EventEQBand
	Band  int `json:"band"`
	Value int `json:"value"`

	// EventEQPreset
	Preset int `json:"preset"`

	// EventPower: "on" or "off"
	Power string `json:"power"`
}

// Notifier receives device events as features decode them. Implementations
// must not block: Publish is called from the dispatch loop.
type Notifier interface {
	Publish(Event)
}

// NopNotifier discards all events. It is the default when no notifier is
// configured.
type NopNotifier struct{}

func (NopNotifier) Publish(Event) {}
