//go:build linux
// +build linux

package rfcomm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chr15m/btmidi/sdk/contracts"
	"golang.org/x/sys/unix"
)

// Error definitions for RFCOMM connection handling.
var (
	ErrAlreadyConnected = errors.New("transport already connected")
	ErrNotConnected     = errors.New("transport not connected")
)

// Transport is a Bluetooth SPP link over a Linux RFCOMM socket. Inbound bytes
// are delivered to the transport receiver from a dedicated read goroutine, in
// arrival order.
type Transport struct {
	logger   contracts.Logger
	receiver contracts.TransportReceiver
	channel  uint8
	bufSize  int

	mu      sync.Mutex
	fd      int
	state   contracts.ConnectionState
	closing bool
	wg      sync.WaitGroup
}

// NewTransport creates an RFCOMM transport wired to the given receiver.
func NewTransport(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
	opts.Logger.Info("RFCOMM transport created",
		opts.Logger.Field().Uint8("channel", opts.RFCOMMChannel))

	return &Transport{
		logger:   opts.Logger,
		receiver: recv,
		channel:  opts.RFCOMMChannel,
		bufSize:  opts.ReadBufferSize,
		fd:       -1,
	}, nil
}

// Connect opens an RFCOMM socket to the device with the given MAC address
// and starts the read loop. Failures are returned and also reported through
// OnConnectionFailed.
func (t *Transport) Connect(addr string) error {
	mac, err := parseAddress(addr)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.state != contracts.StateNone {
		t.mu.Unlock()
		return ErrAlreadyConnected
	}
	t.state = contracts.StateConnecting
	t.mu.Unlock()

	fd, err := t.dial(mac, addr)
	if err != nil {
		t.mu.Lock()
		t.state = contracts.StateNone
		t.mu.Unlock()
		// Callbacks are emitted without the lock held so a receiver may call
		// back into the transport.
		t.receiver.OnConnectionFailed(err)
		return err
	}

	t.mu.Lock()
	t.fd = fd
	t.state = contracts.StateConnected
	t.closing = false
	t.wg.Add(1)
	t.mu.Unlock()

	t.logger.Info("RFCOMM connection established",
		t.logger.Field().String("addr", addr))
	t.receiver.OnDeviceConnected(contracts.DeviceInfo{Name: addr, Address: addr})

	go t.readLoop(fd)
	return nil
}

func (t *Transport) dial(mac [6]byte, addr string) (int, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return -1, fmt.Errorf("rfcomm socket: %w", err)
	}
	sa := &unix.SockaddrRFCOMM{Addr: mac, Channel: t.channel}
	if err := unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("rfcomm connect %s: %w", addr, err)
	}
	return fd, nil
}

// Write sends the given bytes over the socket, retrying on short writes.
func (t *Transport) Write(p []byte) error {
	t.mu.Lock()
	fd := t.fd
	connected := t.state == contracts.StateConnected
	t.mu.Unlock()

	if !connected {
		return ErrNotConnected
	}

	for len(p) > 0 {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("rfcomm write: %w", err)
		}
		p = p[n:]
	}
	return nil
}

// State reports the current connection state.
func (t *Transport) State() contracts.ConnectionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop shuts the socket down and waits for the read loop to exit. Closing
// the fd would not wake a reader blocked in Read, so the shutdown does the
// waking and the read loop, as the fd's owner, performs the close. Calling
// Stop on a transport that is not connected is a no-op.
func (t *Transport) Stop() error {
	t.mu.Lock()
	if t.state != contracts.StateConnected {
		t.mu.Unlock()
		return nil
	}
	t.closing = true
	t.state = contracts.StateNone
	fd := t.fd
	t.fd = -1
	t.mu.Unlock()

	unix.Shutdown(fd, unix.SHUT_RDWR)
	t.wg.Wait()

	t.logger.Info("RFCOMM connection closed")
	return nil
}

// readLoop reads from the socket until it fails, forwarding each chunk to
// the receiver. The loop owns the fd and closes it once the reader has
// exited. A failure that was not initiated by Stop is reported as a lost
// connection.
func (t *Transport) readLoop(fd int) {
	defer t.wg.Done()
	defer unix.Close(fd)

	buf := make([]byte, t.bufSize)
	for {
		n, err := unix.Read(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n <= 0 {
			t.mu.Lock()
			lost := !t.closing && t.state == contracts.StateConnected
			if lost {
				t.state = contracts.StateNone
				t.fd = -1
			}
			t.mu.Unlock()

			if lost {
				t.receiver.OnConnectionLost()
			}
			return
		}
		t.receiver.OnBytesReceived(buf[:n])
	}
}
