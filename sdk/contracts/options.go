package contracts

// ClientOptions defines the configuration options for the MIDI service.
type ClientOptions struct {
	Logger         Logger           // Logger for lifecycle and transport diagnostics.
	LogLevel       LogLevel         // Level of logging to use.
	Receiver       Receiver         // Application sink for decoded events. Required.
	Transport      TransportFactory // Optional transport override; defaults per operating system.
	ClientName     string           // Client name registered with the platform MIDI system, where applicable.
	RFCOMMChannel  uint8            // Bluetooth RFCOMM channel for the SPP transport.
	ReadBufferSize int              // Transport read buffer size in bytes.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI service.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI service.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithReceiver sets the application sink for decoded events.
func WithReceiver(r Receiver) Option {
	return func(opts *ClientOptions) {
		opts.Receiver = r
	}
}

// WithTransport overrides the platform-selected transport factory.
func WithTransport(factory TransportFactory) Option {
	return func(opts *ClientOptions) {
		opts.Transport = factory
	}
}

// WithClientName sets the client name registered with the platform MIDI system.
func WithClientName(name string) Option {
	return func(opts *ClientOptions) {
		opts.ClientName = name
	}
}

// WithRFCOMMChannel sets the Bluetooth RFCOMM channel for the SPP transport.
func WithRFCOMMChannel(channel uint8) Option {
	return func(opts *ClientOptions) {
		opts.RFCOMMChannel = channel
	}
}

// WithReadBufferSize sets the transport read buffer size in bytes.
func WithReadBufferSize(size int) Option {
	return func(opts *ClientOptions) {
		opts.ReadBufferSize = size
	}
}
