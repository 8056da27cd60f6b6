package headset

// Control is the typed command surface over a device's attached features,
// used by the control server and the CLI glue. Every method probes for the
// feature first: the boolean result is false when the feature was never
// attached, which is a normal outcome and performs no device I/O.
type Control struct {
	dev *Device
}

// NewControl wraps a device in its command surface.
func NewControl(d *Device) *Control {
	return &Control{dev: d}
}

func (c *Control) SetVolume(attenuation int) (bool, error) {
	return Invoke(c.dev, KindVolume, func(v *Volume) error {
		return v.SetVolume(byte(attenuation))
	})
}

func (c *Control) SetEQPreset(preset int) (bool, error) {
	return Invoke(c.dev, KindEQ, func(e *EQ) error {
		return e.SetPreset(byte(preset))
	})
}

func (c *Control) SetEQBand(band, value int) (bool, error) {
	return Invoke(c.dev, KindEQ, func(e *EQ) error {
		return e.SetBand(byte(band), byte(value))
	})
}

func (c *Control) SetSonarIcon(on bool) (bool, error) {
	return Invoke(c.dev, KindSonarIcon, func(s *SonarIcon) error {
		return s.SetIcon(on)
	})
}

func (c *Control) SetChatMixControls(on bool) (bool, error) {
	return Invoke(c.dev, KindChatMix, func(cm *ChatMix) error {
		return cm.SetControls(on)
	})
}
