package contracts

// DeviceInfo describes a connected MIDI device.
type DeviceInfo struct {
	Name    string // Human-readable device name, when the transport knows one.
	Address string // Transport-specific address the connection was made to.
}
