//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chr15m/btmidi/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for CoreMIDI endpoint handling.
var (
	ErrAlreadyConnected = errors.New("transport already connected")
	ErrNotConnected     = errors.New("transport not connected")
	ErrNoSuchEndpoint   = errors.New("no CoreMIDI endpoint matches address")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Transport bridges a CoreMIDI source/destination pair to the raw byte
// contract: packet data from the matching source is forwarded to the
// receiver, and Write sends bytes to the matching destination. The address
// is a case-insensitive substring of the endpoint name.
type Transport struct {
	logger     contracts.Logger
	receiver   contracts.TransportReceiver
	clientName string

	mu       sync.Mutex
	client   coremidi.Client
	outPort  coremidi.OutputPort
	dest     coremidi.Destination
	hasDest  bool
	portConn internalPortConnection
	state    contracts.ConnectionState
}

// NewTransport creates a CoreMIDI transport wired to the given receiver.
func NewTransport(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
	client, err := coremidi.NewClient(opts.ClientName)
	if err != nil {
		return nil, fmt.Errorf("coremidi client: %w", err)
	}
	opts.Logger.Info("CoreMIDI transport created",
		opts.Logger.Field().String("client", opts.ClientName))

	return &Transport{
		logger:     opts.Logger,
		receiver:   recv,
		clientName: opts.ClientName,
		client:     client,
	}, nil
}

// Connect finds the source and destination whose names contain addr and
// attaches to them. A missing destination leaves the transport read-only;
// a missing source is an error, since a MIDI endpoint with nothing to decode
// is useless here.
func (t *Transport) Connect(addr string) error {
	t.mu.Lock()
	if t.state != contracts.StateNone {
		t.mu.Unlock()
		return ErrAlreadyConnected
	}
	t.state = contracts.StateConnecting
	t.mu.Unlock()

	source, err := t.attach(addr)
	if err != nil {
		t.mu.Lock()
		t.state = contracts.StateNone
		t.mu.Unlock()
		// Callbacks are emitted without the lock held so a receiver may call
		// back into the transport.
		t.receiver.OnConnectionFailed(err)
		return err
	}

	t.logger.Info("CoreMIDI endpoint connected",
		t.logger.Field().String("source", source.Name()))
	t.receiver.OnDeviceConnected(contracts.DeviceInfo{Name: source.Name(), Address: addr})
	return nil
}

// attach finds and connects the endpoints, leaving the transport connected on
// success.
func (t *Transport) attach(addr string) (coremidi.Source, error) {
	source, err := t.findSource(addr)
	if err != nil {
		return coremidi.Source{}, err
	}

	inputPort, err := coremidi.NewInputPort(t.client, t.clientName+" in", t.handlePacket)
	if err != nil {
		return coremidi.Source{}, fmt.Errorf("coremidi input port: %w", err)
	}

	portConn, err := inputPort.Connect(source)
	if err != nil {
		return coremidi.Source{}, fmt.Errorf("coremidi source connect: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.portConn = portConn

	if dest, ok := t.findDestination(addr); ok {
		outPort, err := coremidi.NewOutputPort(t.client, t.clientName+" out")
		if err != nil {
			t.portConn.Disconnect()
			t.portConn = nil
			return coremidi.Source{}, fmt.Errorf("coremidi output port: %w", err)
		}
		t.outPort = outPort
		t.dest = dest
		t.hasDest = true
	} else {
		t.logger.Warn("no matching CoreMIDI destination; transport is read-only",
			t.logger.Field().String("addr", addr))
	}

	t.state = contracts.StateConnected
	return source, nil
}

// Write sends the given bytes to the connected destination as one packet.
func (t *Transport) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != contracts.StateConnected {
		return ErrNotConnected
	}
	if !t.hasDest {
		return fmt.Errorf("%w: endpoint has no destination", ErrNotConnected)
	}

	packet := coremidi.NewPacket(p)
	if err := packet.Send(&t.outPort, &t.dest); err != nil {
		return fmt.Errorf("coremidi send: %w", err)
	}
	return nil
}

// State reports the current connection state.
func (t *Transport) State() contracts.ConnectionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop disconnects from the source. Calling Stop on a transport that is not
// connected is a no-op.
func (t *Transport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != contracts.StateConnected {
		return nil
	}
	if t.portConn != nil {
		t.portConn.Disconnect()
		t.portConn = nil
	}
	t.hasDest = false
	t.state = contracts.StateNone

	t.logger.Info("CoreMIDI endpoint disconnected")
	return nil
}

// handlePacket forwards raw packet bytes to the receiver. CoreMIDI packets
// carry plain MIDI stream bytes, so they feed the decoder unchanged.
func (t *Transport) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	if len(packet.Data) == 0 {
		return
	}
	t.receiver.OnBytesReceived(packet.Data)
}

func (t *Transport) findSource(addr string) (coremidi.Source, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return coremidi.Source{}, fmt.Errorf("coremidi sources: %w", err)
	}
	for _, source := range sources {
		if matchesEndpoint(source.Name(), addr) {
			return source, nil
		}
	}
	return coremidi.Source{}, fmt.Errorf("%w: %q", ErrNoSuchEndpoint, addr)
}

func (t *Transport) findDestination(addr string) (coremidi.Destination, bool) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return coremidi.Destination{}, false
	}
	for _, dest := range destinations {
		if matchesEndpoint(dest.Name(), addr) {
			return dest, true
		}
	}
	return coremidi.Destination{}, false
}

func matchesEndpoint(name, addr string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(addr))
}
