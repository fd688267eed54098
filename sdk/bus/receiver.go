package bus

import (
	"github.com/asaskevich/EventBus"

	"github.com/chr15m/btmidi/sdk/contracts"
)

// Topics published by Receiver, one per decoded message kind plus the
// connection lifecycle pass-throughs.
const (
	TopicNoteOff        = "midi:noteoff"
	TopicNoteOn         = "midi:noteon"
	TopicPolyAftertouch = "midi:polyaftertouch"
	TopicControlChange  = "midi:controlchange"
	TopicProgramChange  = "midi:programchange"
	TopicAftertouch     = "midi:aftertouch"
	TopicPitchBend      = "midi:pitchbend"

	TopicDeviceConnected  = "midi:deviceconnected"
	TopicConnectionLost   = "midi:connectionlost"
	TopicConnectionFailed = "midi:connectionfailed"
)

// Receiver publishes decoded events onto an event bus, for applications that
// want per-topic fan-out instead of implementing the full sink interface.
// Handler argument shapes match the contracts.Receiver method signatures.
type Receiver struct {
	bus EventBus.Bus
}

// NewReceiver wraps an event bus as a contracts.Receiver.
func NewReceiver(b EventBus.Bus) *Receiver {
	return &Receiver{bus: b}
}

func (r *Receiver) OnNoteOff(channel, note, velocity uint8) {
	r.bus.Publish(TopicNoteOff, channel, note, velocity)
}

func (r *Receiver) OnNoteOn(channel, note, velocity uint8) {
	r.bus.Publish(TopicNoteOn, channel, note, velocity)
}

func (r *Receiver) OnPolyAftertouch(channel, note, pressure uint8) {
	r.bus.Publish(TopicPolyAftertouch, channel, note, pressure)
}

func (r *Receiver) OnControlChange(channel, controller, value uint8) {
	r.bus.Publish(TopicControlChange, channel, controller, value)
}

func (r *Receiver) OnProgramChange(channel, program uint8) {
	r.bus.Publish(TopicProgramChange, channel, program)
}

func (r *Receiver) OnAftertouch(channel, pressure uint8) {
	r.bus.Publish(TopicAftertouch, channel, pressure)
}

func (r *Receiver) OnPitchBend(channel uint8, value int16) {
	r.bus.Publish(TopicPitchBend, channel, value)
}

func (r *Receiver) OnDeviceConnected(device contracts.DeviceInfo) {
	r.bus.Publish(TopicDeviceConnected, device)
}

func (r *Receiver) OnConnectionLost() {
	r.bus.Publish(TopicConnectionLost)
}

func (r *Receiver) OnConnectionFailed(err error) {
	r.bus.Publish(TopicConnectionFailed, err)
}
