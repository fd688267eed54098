package midi_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/chr15m/btmidi/sdk/contracts"
	"github.com/chr15m/btmidi/sdk/midi"
)

type nopField struct{}

func (nopField) Bool(string, bool) contracts.Field     { return nopField{} }
func (nopField) Int(string, int) contracts.Field       { return nopField{} }
func (nopField) Int64(string, int64) contracts.Field   { return nopField{} }
func (nopField) Uint8(string, uint8) contracts.Field   { return nopField{} }
func (nopField) Uint64(string, uint64) contracts.Field { return nopField{} }
func (nopField) String(string, string) contracts.Field { return nopField{} }
func (nopField) Error(string, error) contracts.Field   { return nopField{} }

type nopLogger struct{}

func (nopLogger) Info(string, ...contracts.Field)  {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Warn(string, ...contracts.Field)  {}
func (nopLogger) Fatal(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel)      {}

// fakeTransport records writes and exposes the receiver the service wired in,
// so tests can push inbound bytes and lifecycle events.
type fakeTransport struct {
	recv     contracts.TransportReceiver
	writes   [][]byte
	connects []string
	stops    int
	state    contracts.ConnectionState
}

func (f *fakeTransport) Connect(addr string) error {
	f.connects = append(f.connects, addr)
	f.state = contracts.StateConnected
	return nil
}

func (f *fakeTransport) Write(p []byte) error {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return nil
}

func (f *fakeTransport) State() contracts.ConnectionState { return f.state }

func (f *fakeTransport) Stop() error {
	f.stops++
	f.state = contracts.StateNone
	return nil
}

// recorder is a contracts.Receiver that records each callback as a line.
type recorder struct {
	calls []string
}

func (r *recorder) OnNoteOff(ch, note, vel uint8) {
	r.calls = append(r.calls, fmt.Sprintf("noteOff %d %d %d", ch, note, vel))
}

func (r *recorder) OnNoteOn(ch, note, vel uint8) {
	r.calls = append(r.calls, fmt.Sprintf("noteOn %d %d %d", ch, note, vel))
}

func (r *recorder) OnPolyAftertouch(ch, note, pressure uint8) {
	r.calls = append(r.calls, fmt.Sprintf("polyAftertouch %d %d %d", ch, note, pressure))
}

func (r *recorder) OnControlChange(ch, ctl, val uint8) {
	r.calls = append(r.calls, fmt.Sprintf("controlChange %d %d %d", ch, ctl, val))
}

func (r *recorder) OnProgramChange(ch, pgm uint8) {
	r.calls = append(r.calls, fmt.Sprintf("programChange %d %d", ch, pgm))
}

func (r *recorder) OnAftertouch(ch, pressure uint8) {
	r.calls = append(r.calls, fmt.Sprintf("aftertouch %d %d", ch, pressure))
}

func (r *recorder) OnPitchBend(ch uint8, val int16) {
	r.calls = append(r.calls, fmt.Sprintf("pitchBend %d %d", ch, val))
}

func (r *recorder) OnDeviceConnected(device contracts.DeviceInfo) {
	r.calls = append(r.calls, "deviceConnected "+device.Address)
}

func (r *recorder) OnConnectionLost() {
	r.calls = append(r.calls, "connectionLost")
}

func (r *recorder) OnConnectionFailed(err error) {
	r.calls = append(r.calls, "connectionFailed")
}

func newTestService(t *testing.T) (contracts.MIDIService, *fakeTransport, *recorder) {
	t.Helper()
	ft := &fakeTransport{}
	rec := &recorder{}

	svc, err := midi.NewMIDIService(
		contracts.WithLogger(nopLogger{}),
		contracts.WithReceiver(rec),
		contracts.WithTransport(func(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
			ft.recv = recv
			return ft, nil
		}),
	)
	if err != nil {
		t.Fatal("failed to create service:", err)
	}
	return svc, ft, rec
}

func TestNewMIDIServiceRequiresReceiver(t *testing.T) {
	_, err := midi.NewMIDIService(contracts.WithLogger(nopLogger{}))
	if !errors.Is(err, midi.ErrNoReceiver) {
		t.Fatalf("got %v, want ErrNoReceiver", err)
	}
}

func TestSendMethodsWriteWireBytes(t *testing.T) {
	svc, ft, _ := newTestService(t)

	steps := []struct {
		send func() error
		want []byte
	}{
		{func() error { return svc.SendNoteOff(0, 60, 40) }, []byte{0x80, 60, 40}},
		{func() error { return svc.SendNoteOn(1, 64, 100) }, []byte{0x91, 64, 100}},
		{func() error { return svc.SendPolyAftertouch(2, 65, 33) }, []byte{0xA2, 65, 33}},
		{func() error { return svc.SendControlChange(3, 7, 127) }, []byte{0xB3, 7, 127}},
		{func() error { return svc.SendProgramChange(4, 12) }, []byte{0xC4, 12}},
		{func() error { return svc.SendAftertouch(5, 66) }, []byte{0xD5, 66}},
		{func() error { return svc.SendPitchBend(15, 0) }, []byte{0xEF, 0x00, 0x40}},
	}
	for i, step := range steps {
		if err := step.send(); err != nil {
			t.Fatalf("step %d: send failed: %v", i, err)
		}
		if !bytes.Equal(ft.writes[i], step.want) {
			t.Errorf("step %d: wrote % #x, want % #x", i, ft.writes[i], step.want)
		}
	}
}

func TestReceivedBytesDispatchInOrder(t *testing.T) {
	_, ft, rec := newTestService(t)

	// Three messages split across awkward chunk boundaries.
	ft.recv.OnBytesReceived([]byte{0x90, 60})
	ft.recv.OnBytesReceived([]byte{100, 0xE3})
	ft.recv.OnBytesReceived([]byte{0x00, 0x40, 0xC7})
	ft.recv.OnBytesReceived([]byte{9})

	want := []string{
		"noteOn 0 60 100",
		"pitchBend 3 0",
		"programChange 7 9",
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("got %d callbacks (%v), want %d", len(rec.calls), rec.calls, len(want))
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("callback %d: got %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestLifecycleEventsPassThrough(t *testing.T) {
	_, ft, rec := newTestService(t)

	ft.recv.OnDeviceConnected(contracts.DeviceInfo{Address: "11:22:33:44:55:66"})
	ft.recv.OnConnectionLost()
	ft.recv.OnConnectionFailed(errors.New("boom"))

	want := []string{"deviceConnected 11:22:33:44:55:66", "connectionLost", "connectionFailed"}
	if len(rec.calls) != len(want) {
		t.Fatalf("got %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("callback %d: got %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestConnectStartsFreshStream(t *testing.T) {
	svc, ft, rec := newTestService(t)

	if err := svc.Connect("11:22:33:44:55:66"); err != nil {
		t.Fatal("connect:", err)
	}
	// Half a note-on arrives, then the connection is torn down and
	// re-established.
	ft.recv.OnBytesReceived([]byte{0x90, 60})
	if err := svc.Stop(); err != nil {
		t.Fatal("stop:", err)
	}
	if err := svc.Connect("11:22:33:44:55:66"); err != nil {
		t.Fatal("reconnect:", err)
	}
	if len(ft.connects) != 2 {
		t.Fatalf("transport connected %d times, want 2", len(ft.connects))
	}
	// The stale fragment must not complete on the new stream.
	ft.recv.OnBytesReceived([]byte{100})
	if len(rec.calls) != 0 {
		t.Fatalf("stale fragment completed: %v", rec.calls)
	}
	// A whole message on the new stream still decodes.
	ft.recv.OnBytesReceived([]byte{0x90, 60, 100})
	if len(rec.calls) != 1 || rec.calls[0] != "noteOn 0 60 100" {
		t.Errorf("got %v, want one noteOn", rec.calls)
	}
}

func TestConnectWhileConnectedLeavesStreamAlone(t *testing.T) {
	svc, ft, rec := newTestService(t)

	if err := svc.Connect("11:22:33:44:55:66"); err != nil {
		t.Fatal("connect:", err)
	}
	// A message is mid-flight when a second Connect arrives. It must be
	// rejected without disturbing the decoder: the pending first data byte
	// stays buffered and the message completes.
	ft.recv.OnBytesReceived([]byte{0x90, 60})
	if err := svc.Connect("11:22:33:44:55:66"); !errors.Is(err, midi.ErrAlreadyConnected) {
		t.Fatalf("got %v, want ErrAlreadyConnected", err)
	}
	if len(ft.connects) != 1 {
		t.Fatalf("transport connected %d times, want 1", len(ft.connects))
	}
	ft.recv.OnBytesReceived([]byte{100})
	if len(rec.calls) != 1 || rec.calls[0] != "noteOn 0 60 100" {
		t.Errorf("got %v, want one noteOn", rec.calls)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	svc, ft, _ := newTestService(t)
	if err := svc.Stop(); err != nil {
		t.Fatal("stop:", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatal("second stop:", err)
	}
	if ft.stops != 2 {
		t.Errorf("transport stopped %d times, want 2", ft.stops)
	}
}
