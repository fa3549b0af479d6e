package client

import (
	"errors"
	"io"
	"net"
	"tauwire/frame"
	"tauwire/netem"
	"tauwire/server"
	uerrors "tauwire/util/errors"
	uio "tauwire/util/io"
	"tauwire/util/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCredential() []byte {
	cred := make([]byte, 32)
	for i := range cred {
		cred[i] = byte(i)
	}
	return cred
}

// stubResponder reads one CONNECT frame from conn and answers with the
// given status opcode, asserting the request matches the wire layout.
func stubResponder(t *testing.T, conn net.Conn, status uint8) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		hdr, payload, err := frame.ReadFrame(conn)
		if err != nil {
			t.Errorf("Responder read: %+v", err)
			return
		}
		if hdr.Opcode() != frame.OpConnect {
			t.Errorf("Responder got opcode 0x%02X", hdr.Opcode())
		}
		if len(payload) != int(hdr.Len()) {
			t.Errorf("Responder got %d of %d payload bytes", len(payload), hdr.Len())
		}
		resp := frame.NewHeader(status, 0)
		if err := uio.WriteFull(conn, resp[:]); err != nil {
			t.Errorf("Responder write: %+v", err)
		}
	}()
	return done
}

func TestConnect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		done := stubResponder(t, sc, frame.StatusOK)

		c := New(cc, DefaultConfig())
		defer c.Close()
		status, err := c.Connect(testCredential())
		require.Nil(err)
		require.True(status.OK())
		require.Equal(frame.StatusOK, status.Code())
		<-done
	})

	t.Run("failure status", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		done := stubResponder(t, sc, 0x2A)

		c := New(cc, DefaultConfig())
		defer c.Close()
		status, err := c.Connect(testCredential())
		require.Nil(err)
		require.False(status.OK())
		// The literal opcode value is preserved for diagnostics
		require.Equal(uint8(0x2A), status.Code())
		require.Equal("ERR(0x2A)", status.String())
		<-done
	})

	t.Run("premature close", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		go func() {
			if _, _, err := frame.ReadFrame(sc); err != nil {
				t.Errorf("Responder read: %+v", err)
				return
			}
			// Send a partial response header, then drop the connection
			resp := frame.NewHeader(frame.StatusOK, 0)
			if err := uio.WriteFull(sc, resp[:5]); err != nil {
				t.Errorf("Responder write: %+v", err)
				return
			}
			sc.Close()
		}()

		c := New(cc, DefaultConfig())
		defer c.Close()
		_, err := c.Connect(testCredential())
		require.True(errors.Is(err, io.ErrUnexpectedEOF))
	})

	t.Run("closed without response", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		go func() {
			if _, _, err := frame.ReadFrame(sc); err != nil {
				t.Errorf("Responder read: %+v", err)
				return
			}
			sc.Close()
		}()

		c := New(cc, DefaultConfig())
		defer c.Close()
		_, err := c.Connect(testCredential())
		require.True(errors.Is(err, io.ErrUnexpectedEOF))
	})

	t.Run("timeout", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		defer sc.Close()

		cfg := DefaultConfig()
		cfg.ExchangeTimeout = 50 * time.Millisecond
		c := New(cc, cfg)
		defer c.Close()
		// The peer never responds
		_, err := c.Connect(testCredential())
		require.True(errors.Is(err, uerrors.ErrTimeout))
	})

	t.Run("fragmented transport", func(t *testing.T) {
		require := require.New(t)
		cc, sc := mocks.Conn()
		// One byte per read/write call on the client side
		ne := netem.New(cc, netem.Config{
			ReadFragmentSize:  1,
			WriteFragmentSize: 1,
		})
		done := stubResponder(t, sc, frame.StatusOK)

		c := New(ne, DefaultConfig())
		defer c.Close()
		status, err := c.Connect(testCredential())
		require.Nil(err)
		require.True(status.OK())
		<-done
	})
}

func TestConnectEndToEnd(t *testing.T) {
	require := require.New(t)
	expected := testCredential()

	srv, err := server.Listen("tcp", "127.0.0.1:0",
		func(opcode uint8, payload []byte) uint8 {
			if opcode != frame.OpConnect {
				return 0x00
			}
			if len(payload) != len(expected) {
				return 0x00
			}
			for i := range payload {
				if payload[i] != expected[i] {
					return 0x00
				}
			}
			return frame.StatusOK
		},
		server.DefaultConfig())
	require.Nil(err)
	go func() {
		_ = srv.Serve()
	}()
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.DialTimeout = time.Second
	cfg.ExchangeTimeout = time.Second
	c, err := Dial("tcp", srv.Addr().String(), cfg)
	require.Nil(err)
	defer c.Close()

	status, err := c.Connect(expected)
	require.Nil(err)
	require.True(status.OK())
}

func TestDialRefused(t *testing.T) {
	require := require.New(t)
	// Grab a port that refuses connections by closing its listener
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.Nil(err)
	addr := l.Addr().String()
	require.Nil(l.Close())

	_, err = Dial("tcp", addr, DefaultConfig())
	require.NotNil(err)
}
