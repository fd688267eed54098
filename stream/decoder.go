package stream

// noByte marks the first-data-byte slot as empty. Data bytes are 0-127, so
// any negative value is unambiguous.
const noByte int16 = -1

// Decoder reassembles channel-voice messages from a raw MIDI byte stream.
// It keeps only the state needed to complete the next message, so input may
// arrive split across arbitrary chunk boundaries. A status byte always resets
// the decoder, discarding any message in progress, which makes the stream
// self-resynchronizing; malformed input is absorbed, never reported.
//
// One Decoder serves one logical stream. It is not safe for concurrent use.
type Decoder struct {
	kind      MessageKind
	channel   uint8
	firstByte int16
}

// NewDecoder returns a decoder awaiting its first status byte.
func NewDecoder() *Decoder {
	return &Decoder{kind: MessageNone, firstByte: noByte}
}

// Feed consumes one stream byte and reports whether it completed a message.
// Every byte value 0-255 is legal input; Feed never fails.
//
// Status bytes (high bit set) select the pending message kind and channel and
// clear any buffered data byte. Data bytes seen before any status byte, or
// after an unsupported (System-range) status byte, are dropped. The returned
// event is only valid when the second result is true.
func (d *Decoder) Feed(b byte) (Event, bool) {
	if b&0x80 != 0 {
		d.kind = statusKinds[(b>>4)&0x07]
		d.channel = b & 0x0F
		d.firstByte = noByte
		return Event{}, false
	}

	switch d.kind {
	case MessageNoteOff, MessageNoteOn, MessagePolyAftertouch, MessageControlChange:
		if d.firstByte == noByte {
			d.firstByte = int16(b)
			return Event{}, false
		}
		ev := Event{Kind: d.kind, Channel: d.channel, Data1: uint8(d.firstByte), Data2: b}
		d.firstByte = noByte
		return ev, true

	case MessagePitchBend:
		if d.firstByte == noByte {
			d.firstByte = int16(b)
			return Event{}, false
		}
		bend := (int16(b)<<7 | d.firstByte) - 8192
		d.firstByte = noByte
		return Event{Kind: MessagePitchBend, Channel: d.channel, Bend: bend}, true

	case MessageProgramChange, MessageChannelAftertouch:
		// Single-data-byte kinds complete immediately; no buffering.
		return Event{Kind: d.kind, Channel: d.channel, Data1: b}, true
	}

	// MessageNone: no status byte seen yet, or the last one was unsupported.
	return Event{}, false
}

// Reset returns the decoder to its initial state, as if no bytes had been
// seen. Call it when the same decoder is reused for a new stream.
func (d *Decoder) Reset() {
	d.kind = MessageNone
	d.channel = 0
	d.firstByte = noByte
}
