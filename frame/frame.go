package frame

import (
	"io"
	"math"
	uio "tauwire/util/io"
)

// WriteFrame encodes a frame for the given opcode and writes it to w,
// header first, then the payload. The declared length always equals
// the number of payload bytes written.
func WriteFrame(w io.Writer, opcode uint8, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return ErrPayloadTooLarge
	}
	hdr := NewHeader(opcode, uint32(len(payload)))
	if err := uio.WriteFull(w, hdr[:]); err != nil {
		return err
	}
	return uio.WriteFull(w, payload)
}

// ReadHeader reads and validates exactly HeaderSize bytes from r.
// Returns io.EOF when the stream closes before the first byte and
// io.ErrUnexpectedEOF when it closes mid-header.
func ReadHeader(r io.Reader) (Header, error) {
	var hdr Header
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return hdr, err
	}
	return hdr, hdr.Validate()
}

// ReadFrame reads a full frame, consuming exactly the payload length
// declared in the header.
func ReadFrame(r io.Reader) (Header, []byte, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return hdr, nil, err
	}
	payload, err := uio.ReadBytes(r, int(hdr.Len()))
	if err == io.EOF {
		// The header promised more bytes than the stream delivered
		err = io.ErrUnexpectedEOF
	}
	return hdr, payload, err
}
