package headset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/novamix/novamix/internal/audio"
	"github.com/novamix/novamix/internal/protocol"
)

// fakeSink is an in-memory virtual sink whose liveness the test controls.
type fakeSink struct {
	name  string
	alive bool
	ops   *[]string
}

func (s *fakeSink) Name() string { return s.name }
func (s *fakeSink) Alive() bool  { return s.alive }
func (s *fakeSink) Stop() error {
	s.alive = false
	*s.ops = append(*s.ops, "stop:"+s.name)
	return nil
}

// fakeRouter records audio operations in order.
type fakeRouter struct {
	sinks     []audio.SinkInfo
	listCalls int
	listErr   error
	started   map[string]int
	current   map[string]*fakeSink
	volumes   map[string]int
	ops       []string
}

func newFakeRouter(sinkNames ...string) *fakeRouter {
	r := &fakeRouter{
		started: make(map[string]int),
		current: make(map[string]*fakeSink),
		volumes: make(map[string]int),
	}
	for i, name := range sinkNames {
		r.sinks = append(r.sinks, audio.SinkInfo{ID: fmt.Sprintf("%d", i), Name: name})
	}
	return r
}

func (r *fakeRouter) ListSinks() ([]audio.SinkInfo, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sinks, nil
}

func (r *fakeRouter) StartLoopback(target, name string) (audio.Sink, error) {
	r.started[name]++
	r.ops = append(r.ops, "start:"+name)
	s := &fakeSink{name: name, alive: true, ops: &r.ops}
	r.current[name] = s
	return s, nil
}

func (r *fakeRouter) SetVolume(sinkInput string, percent int) error {
	r.volumes[sinkInput] = percent
	r.ops = append(r.ops, fmt.Sprintf("volume:%s=%d", sinkInput, percent))
	return nil
}

// fakeWriter records control writes. supported=false simulates a
// receive-only endpoint.
type fakeWriter struct {
	supported bool
	writes    []byte // opcodes in order
	payloads  [][]byte
	ops       *[]string
}

func (w *fakeWriter) WriteControl(_ Endpoint, opcode byte, payload ...byte) (bool, error) {
	if !w.supported {
		return false, nil
	}
	w.writes = append(w.writes, opcode)
	w.payloads = append(w.payloads, append([]byte(nil), payload...))
	if w.ops != nil {
		*w.ops = append(*w.ops, "write:"+protocol.OpcodeString(opcode))
	}
	return true, nil
}

const testSinkName = "alsa_output.usb-SteelSeries_Arctis_Nova_5X-00.analog-stereo"

func newTestChatMix(router *fakeRouter, writer *fakeWriter, opts ...ChatMixOption) *ChatMix {
	return NewChatMix(writer, Nova5X.Endpoint(), router, "SteelSeries_Arctis_Nova_5X", nil, opts...)
}

func TestChatMixVolumeReportStartsAndSetsVolumes(t *testing.T) {
	router := newFakeRouter("some_other_sink", testSinkName)
	c := newTestChatMix(router, &fakeWriter{})

	c.handleReport([]byte{protocol.OpChatMixReport, 40, 60})

	if router.started[DefaultGameSink] != 1 || router.started[DefaultChatSink] != 1 {
		t.Fatalf("sinks started game=%d chat=%d, want 1 each",
			router.started[DefaultGameSink], router.started[DefaultChatSink])
	}
	if got := router.volumes["input."+DefaultGameSink]; got != 40 {
		t.Errorf("game volume = %d, want 40", got)
	}
	if got := router.volumes["input."+DefaultChatSink]; got != 60 {
		t.Errorf("chat volume = %d, want 60", got)
	}
}

func TestChatMixRestartsOnlyDeadSink(t *testing.T) {
	router := newFakeRouter(testSinkName)
	c := newTestChatMix(router, &fakeWriter{})

	c.handleReport([]byte{protocol.OpChatMixReport, 50, 50})

	// Simulate the audio stack killing the game sink externally.
	router.current[DefaultGameSink].alive = false

	c.handleReport([]byte{protocol.OpChatMixReport, 30, 70})

	if router.started[DefaultGameSink] != 2 {
		t.Errorf("game sink started %d times, want 2 (restart on death)", router.started[DefaultGameSink])
	}
	if router.started[DefaultChatSink] != 1 {
		t.Errorf("chat sink started %d times, want 1 (live sink never restarted)", router.started[DefaultChatSink])
	}
	if got := router.volumes["input."+DefaultGameSink]; got != 30 {
		t.Errorf("game volume = %d, want 30", got)
	}
	if got := router.volumes["input."+DefaultChatSink]; got != 70 {
		t.Errorf("chat volume = %d, want 70", got)
	}
}

func TestChatMixResolvesSinkOnce(t *testing.T) {
	router := newFakeRouter(testSinkName)
	c := newTestChatMix(router, &fakeWriter{})

	c.handleReport([]byte{protocol.OpChatMixReport, 10, 10})
	c.handleReport([]byte{protocol.OpChatMixReport, 20, 20})

	if router.listCalls != 1 {
		t.Errorf("sink list queried %d times, want 1 (cached after resolve)", router.listCalls)
	}
}

func TestChatMixExplicitSinkSkipsDetection(t *testing.T) {
	router := newFakeRouter() // empty sink list would fail detection
	c := newTestChatMix(router, &fakeWriter{}, WithOriginalSink("my_sink"))

	c.handleReport([]byte{protocol.OpChatMixReport, 10, 10})

	if router.listCalls != 0 {
		t.Errorf("sink list queried %d times, want 0 with explicit sink", router.listCalls)
	}
	if router.started[DefaultGameSink] != 1 {
		t.Error("sinks not started with explicit sink configured")
	}
}

func TestChatMixSinkNotFound(t *testing.T) {
	router := newFakeRouter("unrelated_sink")
	c := newTestChatMix(router, &fakeWriter{})

	err := c.OnOpen()
	if err == nil {
		t.Fatal("OnOpen() should fail when no sink matches")
	}
	if !errors.Is(err, ErrSinkNotFound) {
		t.Errorf("OnOpen() error = %v, want ErrSinkNotFound", err)
	}

	// A volume report must not set volumes without sinks.
	c.handleReport([]byte{protocol.OpChatMixReport, 10, 10})
	if len(router.volumes) != 0 {
		t.Errorf("volumes applied without sinks: %v", router.volumes)
	}
}

func TestChatMixPowerTransitions(t *testing.T) {
	router := newFakeRouter(testSinkName)
	c := newTestChatMix(router, &fakeWriter{}, WithPowerReports())

	if _, ok := c.Opcodes()[protocol.OpPowerState]; !ok {
		t.Fatal("power opcode not registered with WithPowerReports()")
	}

	c.handleReport([]byte{protocol.OpChatMixReport, 50, 50})

	c.handlePower([]byte{protocol.OpPowerState, protocol.PowerStateOff})
	if router.current[DefaultGameSink].alive || router.current[DefaultChatSink].alive {
		t.Error("sinks still alive after power off")
	}

	c.handlePower([]byte{protocol.OpPowerState, protocol.PowerStateOn})
	if router.started[DefaultGameSink] != 2 || router.started[DefaultChatSink] != 2 {
		t.Errorf("sinks started game=%d chat=%d after power cycle, want 2 each",
			router.started[DefaultGameSink], router.started[DefaultChatSink])
	}

	// Unknown power values are ignored.
	before := len(router.ops)
	c.handlePower([]byte{protocol.OpPowerState, 9})
	if len(router.ops) != before {
		t.Error("unknown power value triggered sink operations")
	}
}

func TestChatMixSetControls(t *testing.T) {
	router := newFakeRouter(testSinkName)
	writer := &fakeWriter{supported: true}
	c := newTestChatMix(router, writer)

	if err := c.SetControls(true); err != nil {
		t.Fatalf("SetControls() error = %v", err)
	}
	if !c.Enabled() {
		t.Error("Enabled() = false after successful enable")
	}
	if len(writer.writes) != 1 || writer.writes[0] != protocol.OpChatMixEnable {
		t.Errorf("writes = %v, want one chatmix-enable", writer.writes)
	}
	if writer.payloads[0][0] != 1 {
		t.Errorf("enable payload = %v, want [1]", writer.payloads[0])
	}
}

func TestChatMixSetControlsUnsupported(t *testing.T) {
	router := newFakeRouter(testSinkName)
	writer := &fakeWriter{supported: false}
	c := newTestChatMix(router, writer)

	if err := c.SetControls(true); err != nil {
		t.Fatalf("SetControls() error = %v", err)
	}
	if c.Enabled() {
		t.Error("Enabled() = true after unsupported write; state must be unchanged")
	}
}

func TestChatMixCloseDisablesControlsBeforeStoppingSinks(t *testing.T) {
	router := newFakeRouter(testSinkName)
	writer := &fakeWriter{supported: true, ops: &router.ops}
	c := newTestChatMix(router, writer)

	if err := c.SetControls(true); err != nil {
		t.Fatalf("SetControls() error = %v", err)
	}
	c.handleReport([]byte{protocol.OpChatMixReport, 50, 50})

	router.ops = nil
	if err := c.OnClose(); err != nil {
		t.Fatalf("OnClose() error = %v", err)
	}

	if len(router.ops) < 3 {
		t.Fatalf("teardown ops = %v, want disable write then two stops", router.ops)
	}
	if router.ops[0] != "write:chatmix-enable" {
		t.Errorf("first teardown op = %q, want device-side disable before sink teardown", router.ops[0])
	}
	stops := 0
	for _, op := range router.ops[1:] {
		if op == "stop:"+DefaultGameSink || op == "stop:"+DefaultChatSink {
			stops++
		}
	}
	if stops != 2 {
		t.Errorf("teardown ops = %v, want both sinks stopped after disable", router.ops)
	}

	// Second close has nothing left to undo.
	if err := c.OnClose(); err != nil {
		t.Fatalf("second OnClose() error = %v", err)
	}
	if got := countOps(router.ops, "write:chatmix-enable"); got != 1 {
		t.Errorf("disable written %d times across double close, want 1", got)
	}
}

func countOps(ops []string, want string) int {
	n := 0
	for _, op := range ops {
		if op == want {
			n++
		}
	}
	return n
}

func TestChatMixEventsPublished(t *testing.T) {
	router := newFakeRouter(testSinkName)
	c := newTestChatMix(router, &fakeWriter{})

	var events []Event
	c.notifier = notifierFunc(func(e Event) { events = append(events, e) })

	c.handleReport([]byte{protocol.OpChatMixReport, 25, 75})

	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	e := events[0]
	if e.Type != EventChatMix || e.GamePercent != 25 || e.ChatPercent != 75 {
		t.Errorf("event = %+v, want chatmix 25/75", e)
	}
}

type notifierFunc func(Event)

func (f notifierFunc) Publish(e Event) { f(e) }
