package midi

import (
	"errors"

	"github.com/chr15m/btmidi/internal/logger"
	"github.com/chr15m/btmidi/sdk/contracts"
)

// ErrNoReceiver is returned when the service is built without an application
// sink; decoded events would have nowhere to go.
var ErrNoReceiver = errors.New("no receiver configured")

// Default transport settings. The 32-byte read buffer matches the original
// SPP connection this codec was written against.
const (
	defaultClientName     = "btmidi"
	defaultRFCOMMChannel  = 1
	defaultReadBufferSize = 32
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized options with defaults applied.
//   - error: An error if the resulting options are unusable.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Receiver == nil {
		return contracts.ClientOptions{}, ErrNoReceiver
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ClientName == "" {
		options.ClientName = defaultClientName
	}
	if options.RFCOMMChannel == 0 {
		options.RFCOMMChannel = defaultRFCOMMChannel
	}
	if options.ReadBufferSize == 0 {
		options.ReadBufferSize = defaultReadBufferSize
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
