//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/chr15m/btmidi/sdk/contracts"
)

type dummyTransport struct {
	logger contracts.Logger
}

// NewTransport returns a stub transport for non-macOS systems.
func NewTransport(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
	opts.Logger.Info("Using dummy CoreMIDI transport for non-macOS system")
	return &dummyTransport{logger: opts.Logger}, nil
}

// Connect logs a warning and returns an error indicating that CoreMIDI is unavailable on this platform.
func (t *dummyTransport) Connect(addr string) error {
	t.logger.Warn("Connect called on dummy CoreMIDI transport")
	return fmt.Errorf("CoreMIDI is not available on this platform")
}

// Write logs a warning and returns an error indicating that CoreMIDI is unavailable on this platform.
func (t *dummyTransport) Write(p []byte) error {
	t.logger.Warn("Write called on dummy CoreMIDI transport")
	return fmt.Errorf("CoreMIDI is not available on this platform")
}

// State always reports no connection.
func (t *dummyTransport) State() contracts.ConnectionState {
	return contracts.StateNone
}

// Stop is a no-op on the dummy transport.
func (t *dummyTransport) Stop() error {
	return nil
}
