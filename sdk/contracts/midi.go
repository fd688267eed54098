package contracts

// Receiver handles decoded MIDI events and connection lifecycle changes for
// one stream. The codec chooses sanity over compliance with the MIDI
// standard: channel numbers are zero-based (0-15), and pitch-bend values are
// centered at zero, ranging from -8192 to 8191.
//
// Events arrive in the exact order their terminating byte was read from the
// transport. Lifecycle notifications are opaque pass-throughs from the
// transport; the codec never interprets them.
type Receiver interface {
	OnNoteOff(channel, note, velocity uint8)
	OnNoteOn(channel, note, velocity uint8)
	OnPolyAftertouch(channel, note, pressure uint8)
	OnControlChange(channel, controller, value uint8)
	OnProgramChange(channel, program uint8)
	OnAftertouch(channel, pressure uint8)
	OnPitchBend(channel uint8, value int16)

	OnDeviceConnected(device DeviceInfo)
	OnConnectionLost()
	OnConnectionFailed(err error)
}

// MIDIService is a duplex MIDI endpoint over a serial byte transport: it
// decodes inbound stream bytes into Receiver callbacks and encodes outbound
// messages onto the transport.
//
// The Send methods are safe for concurrent use; write failures are fatal to
// the current connection, not the process. Out-of-range channel or data
// values are masked to their valid bit width rather than rejected.
type MIDIService interface {
	// Connect opens the transport to the device at the given address. The
	// address format is transport-specific (a Bluetooth MAC on Linux, a
	// CoreMIDI endpoint name on macOS).
	Connect(addr string) error
	// State reports the current transport connection state.
	State() ConnectionState
	// Stop closes the transport and releases its resources. It is idempotent.
	Stop() error

	SendNoteOff(channel, note, velocity uint8) error
	SendNoteOn(channel, note, velocity uint8) error
	SendPolyAftertouch(channel, note, pressure uint8) error
	SendControlChange(channel, controller, value uint8) error
	SendProgramChange(channel, program uint8) error
	SendAftertouch(channel, pressure uint8) error
	SendPitchBend(channel uint8, value int16) error
}
