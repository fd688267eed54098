package midi

import (
	"github.com/chr15m/btmidi/sdk/contracts"
)

// NewMIDIService creates a new MIDI service with the specified options.
// It applies default options, selects a transport for the current platform,
// and wires the decoder to the configured receiver.
//
// opts ...contracts.Option: A variadic list of option functions to customize the service configuration.
//
// Returns:
//   - contracts.MIDIService: An instance of the MIDI service.
//   - error: An error, if any occurred during the creation of the service.
func NewMIDIService(opts ...contracts.Option) (contracts.MIDIService, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	service, err := NewService(&options)
	if err != nil {
		return nil, err
	}

	return service, nil
}
