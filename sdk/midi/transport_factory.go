package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/chr15m/btmidi/internal/transport/mididarwin"
	"github.com/chr15m/btmidi/internal/transport/rfcomm"
	"github.com/chr15m/btmidi/sdk/contracts"
)

// ErrUnsupportedOS is returned when no transport is available for the
// current operating system and none was supplied via WithTransport.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// transportInitializers maps OS names to default transport factories.
var transportInitializers = map[string]contracts.TransportFactory{
	"linux":  rfcomm.NewTransport,     // Bluetooth SPP over an RFCOMM socket.
	"darwin": mididarwin.NewTransport, // CoreMIDI endpoint bridge.
}

// newTransport builds the transport for the current platform, honoring a
// WithTransport override.
func newTransport(opts *contracts.ClientOptions, recv contracts.TransportReceiver) (contracts.Transport, error) {
	if opts.Transport != nil {
		return opts.Transport(opts, recv)
	}
	if initializer, exists := transportInitializers[runtime.GOOS]; exists {
		return initializer(opts, recv)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
