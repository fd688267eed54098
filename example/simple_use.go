package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/chr15m/btmidi/sdk/contracts"
	"github.com/chr15m/btmidi/sdk/midi"
)

// printReceiver prints every decoded event. Channels are zero-based and
// pitch bend is centered at zero.
type printReceiver struct{}

func (printReceiver) OnNoteOff(ch, note, vel uint8)      { fmt.Println("note off", ch, note, vel) }
func (printReceiver) OnNoteOn(ch, note, vel uint8)       { fmt.Println("note on", ch, note, vel) }
func (printReceiver) OnPolyAftertouch(ch, note, p uint8) { fmt.Println("poly aftertouch", ch, note, p) }
func (printReceiver) OnControlChange(ch, ctl, val uint8) { fmt.Println("control change", ch, ctl, val) }
func (printReceiver) OnProgramChange(ch, pgm uint8)      { fmt.Println("program change", ch, pgm) }
func (printReceiver) OnAftertouch(ch, pressure uint8)    { fmt.Println("aftertouch", ch, pressure) }
func (printReceiver) OnPitchBend(ch uint8, val int16)    { fmt.Println("pitch bend", ch, val) }
func (printReceiver) OnDeviceConnected(d contracts.DeviceInfo) {
	fmt.Println("connected to", d.Name)
}
func (printReceiver) OnConnectionLost()            { fmt.Println("connection lost") }
func (printReceiver) OnConnectionFailed(err error) { fmt.Println("connection failed:", err) }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: simple_use <device-address>")
		os.Exit(2)
	}

	service, err := midi.NewMIDIService(
		contracts.WithReceiver(printReceiver{}),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create MIDI service:", err)
		os.Exit(1)
	}

	if err := service.Connect(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect:", err)
		os.Exit(1)
	}
	defer service.Stop()

	// Play a short note on channel 0 so there is traffic both ways.
	if err := service.SendNoteOn(0, 60, 100); err != nil {
		fmt.Fprintln(os.Stderr, "send failed:", err)
	}
	time.Sleep(500 * time.Millisecond)
	if err := service.SendNoteOff(0, 60, 0); err != nil {
		fmt.Fprintln(os.Stderr, "send failed:", err)
	}

	fmt.Println("Receiving MIDI events... Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}
