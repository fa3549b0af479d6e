package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		require := require.New(t)
		hdr := NewHeader(OpConnect, 32)
		require.Equal([]byte("TAU"), hdr[:3])
		require.Equal(Version, hdr[3])
		require.Equal(OpConnect, hdr.Opcode())
		require.Equal(uint8(0), hdr[5])
		require.Equal(uint32(32), hdr.Len())
		require.Nil(hdr.Validate())
	})

	t.Run("bad magic", func(t *testing.T) {
		require := require.New(t)
		hdr := NewHeader(OpConnect, 0)
		hdr[0] = 'X'
		require.Equal(ErrBadMagic, hdr.Validate())
	})

	t.Run("bad version", func(t *testing.T) {
		require := require.New(t)
		hdr := NewHeader(OpConnect, 0)
		hdr[3] = 0x7F
		require.Equal(ErrBadVersion, hdr.Validate())
	})
}
