// Package stream implements the MIDI channel-voice wire codec: a
// running-status decoder that reassembles messages from an unbounded byte
// stream, and a stateless encoder producing the matching byte sequences.
// The codec deliberately narrows scope to the seven channel-voice message
// kinds; System messages are dropped silently.
package stream

// MessageKind identifies one of the seven MIDI channel-voice message kinds.
// MessageNone is a sentinel for "no message pending"; it never appears on the
// wire and never reaches a sink.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageNoteOff
	MessageNoteOn
	MessagePolyAftertouch
	MessageControlChange
	MessageProgramChange
	MessageChannelAftertouch
	MessagePitchBend
)

// statusKinds maps the kind bits of a status byte ((b>>4)&0x07, i.e. status
// nibbles 0x8 through 0xF) to a message kind. Entry 7 covers the 0xF0-0xFF
// System range, which this codec does not handle: it maps to MessageNone,
// silently suppressing output until the next channel-voice status byte.
var statusKinds = [8]MessageKind{
	MessageNoteOff,
	MessageNoteOn,
	MessagePolyAftertouch,
	MessageControlChange,
	MessageProgramChange,
	MessageChannelAftertouch,
	MessagePitchBend,
	MessageNone,
}

// Status nibbles per kind, 1:1 with the MIDI channel-voice status bytes.
const (
	nibbleNoteOff           = 0x8
	nibbleNoteOn            = 0x9
	nibblePolyAftertouch    = 0xA
	nibbleControlChange     = 0xB
	nibbleProgramChange     = 0xC
	nibbleChannelAftertouch = 0xD
	nibblePitchBend         = 0xE
)

func (k MessageKind) String() string {
	switch k {
	case MessageNoteOff:
		return "NoteOff"
	case MessageNoteOn:
		return "NoteOn"
	case MessagePolyAftertouch:
		return "PolyAftertouch"
	case MessageControlChange:
		return "ControlChange"
	case MessageProgramChange:
		return "ProgramChange"
	case MessageChannelAftertouch:
		return "ChannelAftertouch"
	case MessagePitchBend:
		return "PitchBend"
	default:
		return "None"
	}
}

// Event is one decoded channel-voice message. Channel is zero-based (0-15).
// Data1 and Data2 hold the raw data bytes in wire order (note then velocity,
// controller then value); Data2 is zero for the one-data-byte kinds. Bend
// carries the centered pitch-bend value (-8192..8191) and is meaningful only
// when Kind is MessagePitchBend.
type Event struct {
	Kind    MessageKind
	Channel uint8
	Data1   uint8
	Data2   uint8
	Bend    int16
}
