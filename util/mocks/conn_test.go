package mocks

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConn(t *testing.T) {
	t.Run("buffered exchange", func(t *testing.T) {
		require := require.New(t)
		c1, c2 := Conn()
		expected := []byte("Hello, world!")

		// No reader yet; the write must not block
		n, err := c1.Write(expected)
		require.Nil(err)
		require.Equal(len(expected), n)

		buf := make([]byte, 64)
		n, err = c2.Read(buf)
		require.Nil(err)
		require.Equal(expected, buf[:n])

		require.Nil(c1.Close())
	})

	t.Run("read deadline", func(t *testing.T) {
		require := require.New(t)
		c1, c2 := Conn()
		defer c1.Close()

		require.Nil(c2.SetReadDeadline(time.Now().Add(50 * time.Millisecond)))
		buf := make([]byte, 64)
		_, err := c2.Read(buf)
		require.Equal(os.ErrDeadlineExceeded, err)
	})

	t.Run("close drains then EOF", func(t *testing.T) {
		require := require.New(t)
		c1, c2 := Conn()
		expected := []byte("last words")

		_, err := c1.Write(expected)
		require.Nil(err)
		require.Nil(c1.Close())

		buf := make([]byte, 64)
		n, err := c2.Read(buf)
		require.Nil(err)
		require.Equal(expected, buf[:n])

		_, err = c2.Read(buf)
		require.Equal(io.EOF, err)
	})
}
