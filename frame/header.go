package frame

import (
	"bytes"
	"encoding/binary"
)

type Header [HeaderSize]byte

func NewHeader(opcode uint8, length uint32) Header {
	var hdr Header
	copy(hdr[:3], magic[:])
	hdr[3] = Version
	hdr[4] = opcode
	binary.BigEndian.PutUint32(hdr[6:], length)
	return hdr
}

func (hdr Header) Opcode() uint8 {
	return hdr[4]
}

func (hdr Header) Len() uint32 {
	return binary.BigEndian.Uint32(hdr[6:])
}

func (hdr Header) Validate() error {
	if !bytes.Equal(hdr[:3], magic[:]) {
		return ErrBadMagic
	}
	if hdr[3] != Version {
		return ErrBadVersion
	}
	return nil
}
