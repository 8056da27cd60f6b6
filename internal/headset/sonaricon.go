package headset

import (
	"sync"

	"github.com/novamix/novamix/internal/protocol"
)

// SonarIcon toggles the Sonar icon on the base station display. Cosmetic:
// as far as anyone knows the opcode controls nothing but the icon. The
// feature tracks its enabled state so the icon is switched off again on
// shutdown.
type SonarIcon struct {
	writer ControlWriter
	ep     Endpoint

	mu      sync.Mutex
	enabled bool
}

// NewSonarIcon builds the Sonar icon feature for the given endpoint.
func NewSonarIcon(w ControlWriter, ep Endpoint) *SonarIcon {
	return &SonarIcon{writer: w, ep: ep}
}

func (s *SonarIcon) Kind() Kind         { return KindSonarIcon }
func (s *SonarIcon) Endpoint() Endpoint { return s.ep }

// Opcodes returns an empty table: the device never reports icon state.
func (s *SonarIcon) Opcodes() map[byte]Handler { return nil }

// SetIcon switches the icon on or off. State is recorded only after a
// successful write.
func (s *SonarIcon) SetIcon(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	supported, err := s.writer.WriteControl(s.ep, protocol.OpSonarIcon, boolByte(on))
	if err != nil {
		return err
	}
	if supported {
		s.enabled = on
	}
	return nil
}

// Enabled reports the last successfully written icon state.
func (s *SonarIcon) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// OnClose restores the icon to off if this process switched it on.
func (s *SonarIcon) OnClose() error {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()
	if !enabled {
		return nil
	}
	return s.SetIcon(false)
}
