package audio

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/novamix/novamix/internal/logging"
)

const (
	cmdPactl      = "pactl"
	cmdPwLoopback = "pw-loopback"
)

// PipeWireRouter implements Router by shelling out to the PipeWire
// PulseAudio compatibility tools: pactl for sink listing and volume,
// pw-loopback for virtual sinks.
type PipeWireRouter struct{}

// NewPipeWireRouter returns a Router backed by pactl and pw-loopback.
func NewPipeWireRouter() *PipeWireRouter {
	return &PipeWireRouter{}
}

func (r *PipeWireRouter) ListSinks() ([]SinkInfo, error) {
	out, err := exec.Command(cmdPactl, "list", "sinks", "short").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sinks: %w", err)
	}
	return parseSinkList(string(out)), nil
}

// parseSinkList parses `pactl list sinks short` output: one sink per line,
// tab-separated, ID then name.
func parseSinkList(out string) []SinkInfo {
	var sinks []SinkInfo
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		sinks = append(sinks, SinkInfo{ID: fields[0], Name: fields[1]})
	}
	return sinks
}

func (r *PipeWireRouter) StartLoopback(target, name string) (Sink, error) {
	cmd := exec.Command(cmdPwLoopback,
		"-P", target,
		"--capture-props=media.class=Audio/Sink",
		"-n", name,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting pw-loopback %s: %w", name, err)
	}

	s := &loopbackSink{name: name, cmd: cmd, done: make(chan struct{})}
	go func() {
		// Reap the process so Alive observes external death.
		err := cmd.Wait()
		close(s.done)
		if err != nil {
			logging.Debug("pw-loopback exited",
				zap.String("sink", name),
				zap.Error(err),
			)
		}
	}()

	logging.LogSinkEvent(name, "started")
	return s, nil
}

func (r *PipeWireRouter) SetVolume(sinkInput string, percent int) error {
	pct := fmt.Sprintf("%d%%", percent)
	if err := exec.Command(cmdPactl, "set-sink-volume", sinkInput, pct).Run(); err != nil {
		return fmt.Errorf("pactl set-sink-volume %s %s: %w", sinkInput, pct, err)
	}
	return nil
}

// loopbackSink wraps one pw-loopback process.
type loopbackSink struct {
	name string
	cmd  *exec.Cmd
	done chan struct{}
}

func (s *loopbackSink) Name() string { return s.name }

func (s *loopbackSink) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *loopbackSink) Stop() error {
	if !s.Alive() {
		return nil
	}
	logging.LogSinkEvent(s.name, "stopping")
	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("stopping pw-loopback %s: %w", s.name, err)
	}
	return nil
}
