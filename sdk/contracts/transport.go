package contracts

// ConnectionState describes a transport's connection lifecycle.
type ConnectionState int

const (
	// StateNone indicates no connection and no attempt in progress.
	StateNone ConnectionState = iota
	// StateConnecting indicates a connection attempt in progress.
	StateConnecting
	// StateConnected indicates an established connection.
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "none"
	}
}

// TransportReceiver receives raw transport events. OnBytesReceived delivers
// inbound bytes in arrival order; implementations must not retain the buffer
// beyond the call. The lifecycle callbacks mirror the connection state.
type TransportReceiver interface {
	OnBytesReceived(buf []byte)
	OnDeviceConnected(device DeviceInfo)
	OnConnectionLost()
	OnConnectionFailed(err error)
}

// Transport is a byte-oriented serial link to a remote MIDI device. The codec
// never inspects the transport beyond this contract.
//
// A failed Connect is returned to the caller and also reported through the
// receiver's OnConnectionFailed, so an application sink sees the same
// lifecycle regardless of which side initiated the attempt.
type Transport interface {
	Connect(addr string) error
	Write(p []byte) error
	State() ConnectionState
	Stop() error
}

// TransportFactory builds a transport wired to the given receiver. The
// default factory is selected per operating system; WithTransport overrides
// it.
type TransportFactory func(opts *ClientOptions, recv TransportReceiver) (Transport, error)
