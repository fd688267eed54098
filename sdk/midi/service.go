package midi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chr15m/btmidi/sdk/contracts"
	"github.com/chr15m/btmidi/stream"
	"github.com/google/uuid"
)

// ErrAlreadyConnected is returned by Connect while a connection is live;
// call Stop first.
var ErrAlreadyConnected = errors.New("service already connected")

// Service decodes inbound transport bytes into Receiver callbacks and encodes
// outbound messages onto the transport. The decoder is driven only from the
// transport's read path, so it needs no locking of its own; the mutex guards
// connection bookkeeping.
type Service struct {
	logger    contracts.Logger
	receiver  contracts.Receiver
	transport contracts.Transport
	decoder   *stream.Decoder

	mu     sync.Mutex
	connID string
}

// NewService wires a Service to a transport built from the given options.
// Options must already have defaults applied; use NewMIDIService unless you
// are composing the pieces yourself.
func NewService(opts *contracts.ClientOptions) (*Service, error) {
	s := &Service{
		logger:   opts.Logger,
		receiver: opts.Receiver,
		decoder:  stream.NewDecoder(),
	}

	transport, err := newTransport(opts, transportSink{s})
	if err != nil {
		return nil, fmt.Errorf("transport setup: %w", err)
	}
	s.transport = transport
	return s, nil
}

// Connect opens the transport to the given address. Each attempt starts a
// fresh stream: the decoder is reset so state from a previous connection can
// never complete a message on the new one. While a connection is live the
// decoder belongs to the transport's read path, so Connect refuses to touch
// it and returns ErrAlreadyConnected.
func (s *Service) Connect(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport.State() == contracts.StateConnected {
		return ErrAlreadyConnected
	}

	s.connID = uuid.NewString()
	s.decoder.Reset()
	s.logger.Info("connecting to MIDI device",
		s.logger.Field().String("conn", s.connID),
		s.logger.Field().String("addr", addr))

	if err := s.transport.Connect(addr); err != nil {
		return fmt.Errorf("transport connect: %w", err)
	}
	return nil
}

// State reports the transport connection state.
func (s *Service) State() contracts.ConnectionState {
	return s.transport.State()
}

// Stop closes the transport. It is safe to call repeatedly.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("stopping MIDI service",
		s.logger.Field().String("conn", s.connID))
	return s.transport.Stop()
}

// SendNoteOff sends a note-off event to the connected device. The channel
// starts at 0.
func (s *Service) SendNoteOff(channel, note, velocity uint8) error {
	return s.transport.Write(stream.EncodeNoteOff(channel, note, velocity))
}

// SendNoteOn sends a note-on event to the connected device.
func (s *Service) SendNoteOn(channel, note, velocity uint8) error {
	return s.transport.Write(stream.EncodeNoteOn(channel, note, velocity))
}

// SendPolyAftertouch sends a polyphonic aftertouch event to the connected device.
func (s *Service) SendPolyAftertouch(channel, note, pressure uint8) error {
	return s.transport.Write(stream.EncodePolyAftertouch(channel, note, pressure))
}

// SendControlChange sends a control change event to the connected device.
func (s *Service) SendControlChange(channel, controller, value uint8) error {
	return s.transport.Write(stream.EncodeControlChange(channel, controller, value))
}

// SendProgramChange sends a program change event to the connected device.
func (s *Service) SendProgramChange(channel, program uint8) error {
	return s.transport.Write(stream.EncodeProgramChange(channel, program))
}

// SendAftertouch sends a channel aftertouch event to the connected device.
func (s *Service) SendAftertouch(channel, pressure uint8) error {
	return s.transport.Write(stream.EncodeAftertouch(channel, pressure))
}

// SendPitchBend sends a pitch bend event to the connected device. The value
// is centered at 0, ranging from -8192 to 8191.
func (s *Service) SendPitchBend(channel uint8, value int16) error {
	return s.transport.Write(stream.EncodePitchBend(channel, value))
}

// handleBytes feeds received bytes through the decoder one at a time, in
// arrival order, dispatching each completed event.
func (s *Service) handleBytes(buf []byte) {
	for _, b := range buf {
		if ev, ok := s.decoder.Feed(b); ok {
			s.dispatch(ev)
		}
	}
}

func (s *Service) dispatch(ev stream.Event) {
	switch ev.Kind {
	case stream.MessageNoteOff:
		s.receiver.OnNoteOff(ev.Channel, ev.Data1, ev.Data2)
	case stream.MessageNoteOn:
		s.receiver.OnNoteOn(ev.Channel, ev.Data1, ev.Data2)
	case stream.MessagePolyAftertouch:
		s.receiver.OnPolyAftertouch(ev.Channel, ev.Data1, ev.Data2)
	case stream.MessageControlChange:
		s.receiver.OnControlChange(ev.Channel, ev.Data1, ev.Data2)
	case stream.MessageProgramChange:
		s.receiver.OnProgramChange(ev.Channel, ev.Data1)
	case stream.MessageChannelAftertouch:
		s.receiver.OnAftertouch(ev.Channel, ev.Data1)
	case stream.MessagePitchBend:
		s.receiver.OnPitchBend(ev.Channel, ev.Bend)
	}
}

// transportSink adapts transport callbacks onto the service by explicit
// composition, keeping them off the public Service API.
type transportSink struct {
	s *Service
}

func (t transportSink) OnBytesReceived(buf []byte) {
	t.s.handleBytes(buf)
}

func (t transportSink) OnDeviceConnected(device contracts.DeviceInfo) {
	t.s.logger.Debug("device connected",
		t.s.logger.Field().String("conn", t.s.connID),
		t.s.logger.Field().String("device", device.Name))
	t.s.receiver.OnDeviceConnected(device)
}

func (t transportSink) OnConnectionLost() {
	t.s.logger.Warn("connection lost",
		t.s.logger.Field().String("conn", t.s.connID))
	t.s.receiver.OnConnectionLost()
}

func (t transportSink) OnConnectionFailed(err error) {
	t.s.logger.Warn("connection failed",
		t.s.logger.Field().String("conn", t.s.connID),
		t.s.logger.Field().Error("error", err))
	t.s.receiver.OnConnectionFailed(err)
}
