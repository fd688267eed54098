//go:build !linux
// +build !linux

package rfcomm

import (
	"fmt"

	"github.com/chr15m/btmidi/sdk/contracts"
)

type dummyTransport struct {
	logger contracts.Logger
}

// NewTransport returns a stub transport for non-Linux systems.
func NewTransport(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
	opts.Logger.Info("Using dummy RFCOMM transport for non-Linux system")
	return &dummyTransport{logger: opts.Logger}, nil
}

// Connect logs a warning and returns an error indicating that RFCOMM is unavailable on this platform.
func (t *dummyTransport) Connect(addr string) error {
	t.logger.Warn("Connect called on dummy RFCOMM transport")
	return fmt.Errorf("bluetooth RFCOMM is not available on this platform")
}

// Write logs a warning and returns an error indicating that RFCOMM is unavailable on this platform.
func (t *dummyTransport) Write(p []byte) error {
	t.logger.Warn("Write called on dummy RFCOMM transport")
	return fmt.Errorf("bluetooth RFCOMM is not available on this platform")
}

// State always reports no connection.
func (t *dummyTransport) State() contracts.ConnectionState {
	return contracts.StateNone
}

// Stop is a no-op on the dummy transport.
func (t *dummyTransport) Stop() error {
	return nil
}
