package frame

import "errors"

const (
	// 3 bytes Magic + u8 Version + u8 Opcode + u8 Reserved + u32 Payload Length
	HeaderSize = 10

	Version uint8 = 0x01
)

var magic = [3]byte{'T', 'A', 'U'}

const (
	// Opcode for establishing a session with a credential payload
	OpConnect uint8 = 0x01
)

const (
	// Status opcode reported by the peer on success.
	// Any other status value denotes an error condition on the peer.
	StatusOK uint8 = 0xF0
)

var (
	ErrPayloadTooLarge = errors.New("payload too large to encode into frame")
	ErrBadMagic        = errors.New("bad magic")
	ErrBadVersion      = errors.New("unsupported version")
)
