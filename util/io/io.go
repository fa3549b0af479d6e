package io

import "io"

// WriteFull writes the whole buffer to w, looping over partial writes.
// A short write is not an error, only a requirement to keep writing.
func WriteFull(w io.Writer, buf []byte) error {
	written := 0
	for written < len(buf) {
		n, err := w.Write(buf[written:])
		if err != nil {
			return err
		}
		written += n
	}
	return nil
}

func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	return buf, err
}
