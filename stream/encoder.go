package stream

// Encoding is stateless: every function here is a pure mapping from message
// to wire bytes and is safe to call from any number of goroutines. Each
// message carries a full status byte; running-status compression is
// deliberately not performed.
//
// Out-of-range inputs are masked to their valid bit width (channels to 4
// bits, data bytes to 7), never rejected.

func statusByte(nibble, channel uint8) uint8 {
	return nibble<<4 | channel&0x0F
}

// EncodeNoteOff serializes a note-off message for the given zero-based channel.
func EncodeNoteOff(channel, note, velocity uint8) []byte {
	return []byte{statusByte(nibbleNoteOff, channel), note & 0x7F, velocity & 0x7F}
}

// EncodeNoteOn serializes a note-on message.
func EncodeNoteOn(channel, note, velocity uint8) []byte {
	return []byte{statusByte(nibbleNoteOn, channel), note & 0x7F, velocity & 0x7F}
}

// EncodePolyAftertouch serializes a polyphonic aftertouch message.
func EncodePolyAftertouch(channel, note, pressure uint8) []byte {
	return []byte{statusByte(nibblePolyAftertouch, channel), note & 0x7F, pressure & 0x7F}
}

// EncodeControlChange serializes a control change message.
func EncodeControlChange(channel, controller, value uint8) []byte {
	return []byte{statusByte(nibbleControlChange, channel), controller & 0x7F, value & 0x7F}
}

// EncodeProgramChange serializes a program change message.
func EncodeProgramChange(channel, program uint8) []byte {
	return []byte{statusByte(nibbleProgramChange, channel), program & 0x7F}
}

// EncodeAftertouch serializes a channel aftertouch message.
func EncodeAftertouch(channel, pressure uint8) []byte {
	return []byte{statusByte(nibbleChannelAftertouch, channel), pressure & 0x7F}
}

// EncodePitchBend serializes a pitch-bend message. The value is centered at
// zero (-8192..8191) and emitted as a 14-bit quantity, low seven bits first,
// matching the decoder's combination order.
func EncodePitchBend(channel uint8, value int16) []byte {
	v := uint16(value + 8192)
	return []byte{statusByte(nibblePitchBend, channel), uint8(v & 0x7F), uint8(v >> 7)}
}

// Encode serializes a decoded event back to its wire form. It is the inverse
// of Decoder.Feed for every event the decoder emits. MessageNone encodes to
// nil.
func Encode(ev Event) []byte {
	switch ev.Kind {
	case MessageNoteOff:
		return EncodeNoteOff(ev.Channel, ev.Data1, ev.Data2)
	case MessageNoteOn:
		return EncodeNoteOn(ev.Channel, ev.Data1, ev.Data2)
	case MessagePolyAftertouch:
		return EncodePolyAftertouch(ev.Channel, ev.Data1, ev.Data2)
	case MessageControlChange:
		return EncodeControlChange(ev.Channel, ev.Data1, ev.Data2)
	case MessageProgramChange:
		return EncodeProgramChange(ev.Channel, ev.Data1)
	case MessageChannelAftertouch:
		return EncodeAftertouch(ev.Channel, ev.Data1)
	case MessagePitchBend:
		return EncodePitchBend(ev.Channel, ev.Bend)
	default:
		return nil
	}
}
