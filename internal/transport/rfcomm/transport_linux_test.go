//go:build linux
// +build linux

package rfcomm

import (
	"bytes"
	"testing"
	"time"

	"github.com/chr15m/btmidi/sdk/contracts"
	"golang.org/x/sys/unix"
)

type testField struct{}

func (testField) Bool(string, bool) contracts.Field     { return testField{} }
func (testField) Int(string, int) contracts.Field       { return testField{} }
func (testField) Int64(string, int64) contracts.Field   { return testField{} }
func (testField) Uint8(string, uint8) contracts.Field   { return testField{} }
func (testField) Uint64(string, uint64) contracts.Field { return testField{} }
func (testField) String(string, string) contracts.Field { return testField{} }
func (testField) Error(string, error) contracts.Field   { return testField{} }

type testLogger struct{}

func (testLogger) Info(string, ...contracts.Field)  {}
func (testLogger) Error(string, ...contracts.Field) {}
func (testLogger) Debug(string, ...contracts.Field) {}
func (testLogger) Warn(string, ...contracts.Field)  {}
func (testLogger) Fatal(string, ...contracts.Field) {}
func (testLogger) Field() contracts.Field           { return testField{} }
func (testLogger) SetLevel(contracts.LogLevel)      {}

// chanReceiver exposes transport callbacks as channels for synchronization.
type chanReceiver struct {
	bytes chan []byte
	lost  chan struct{}
}

func newChanReceiver() *chanReceiver {
	return &chanReceiver{bytes: make(chan []byte, 8), lost: make(chan struct{})}
}

func (r *chanReceiver) OnBytesReceived(p []byte) {
	r.bytes <- append([]byte(nil), p...)
}
func (r *chanReceiver) OnDeviceConnected(contracts.DeviceInfo) {}
func (r *chanReceiver) OnConnectionLost()                      { close(r.lost) }
func (r *chanReceiver) OnConnectionFailed(error)               {}

// connectedPair returns a transport wired to one end of a socketpair with its
// read loop running, plus the peer fd for the test to drive.
func connectedPair(t *testing.T, recv contracts.TransportReceiver) (*Transport, int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal("socketpair:", err)
	}

	tr := &Transport{
		logger:   testLogger{},
		receiver: recv,
		bufSize:  32,
		fd:       fds[0],
		state:    contracts.StateConnected,
	}
	tr.wg.Add(1)
	go tr.readLoop(fds[0])
	return tr, fds[1]
}

func TestStopWakesBlockedReader(t *testing.T) {
	tr, peer := connectedPair(t, newChanReceiver())
	defer unix.Close(peer)

	// The read loop is blocked in Read with nothing inbound; Stop must still
	// return promptly.
	done := make(chan struct{})
	go func() {
		tr.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while the reader was blocked")
	}
	if got := tr.State(); got != contracts.StateNone {
		t.Errorf("state after Stop = %v, want none", got)
	}
}

func TestReadLoopDeliversBytes(t *testing.T) {
	recv := newChanReceiver()
	tr, peer := connectedPair(t, recv)
	defer tr.Stop()
	defer unix.Close(peer)

	want := []byte{0x90, 60, 100}
	if _, err := unix.Write(peer, want); err != nil {
		t.Fatal("peer write:", err)
	}

	select {
	case got := <-recv.bytes:
		if !bytes.Equal(got, want) {
			t.Errorf("received % #x, want % #x", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bytes never reached the receiver")
	}
}

func TestRemoteCloseReportsConnectionLost(t *testing.T) {
	recv := newChanReceiver()
	tr, peer := connectedPair(t, recv)

	unix.Close(peer)

	select {
	case <-recv.lost:
	case <-time.After(2 * time.Second):
		t.Fatal("remote close not reported as connection lost")
	}
	if got := tr.State(); got != contracts.StateNone {
		t.Errorf("state after loss = %v, want none", got)
	}
	// Stop after a lost connection stays a no-op.
	if err := tr.Stop(); err != nil {
		t.Errorf("stop after loss: %v", err)
	}
}
