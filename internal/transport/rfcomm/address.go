package rfcomm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when a Bluetooth device address cannot be parsed.
var ErrInvalidAddress = errors.New("invalid bluetooth address")

// parseAddress converts a colon-separated Bluetooth MAC address
// ("AA:BB:CC:DD:EE:FF") into the little-endian bdaddr_t layout the kernel
// expects, i.e. the last octet of the string ends up in byte 0.
func parseAddress(addr string) ([6]byte, error) {
	var out [6]byte
	parts := strings.Split(addr, ":")
	if len(parts) != 6 {
		return out, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	for i, part := range parts {
		// ParseUint alone would accept "001"; an octet is exactly two digits.
		if len(part) != 2 {
			return out, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return out, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		out[5-i] = byte(v)
	}
	return out, nil
}
