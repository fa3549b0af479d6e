package mocks

import (
	"bytes"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"tauwire/util"
	"time"
)

type conn struct {
	peer *conn

	buffer     *bytes.Buffer
	bufferLock sync.Mutex

	readQueue    chan []byte
	readNotify   chan struct{}
	readDeadline atomic.Value

	die       chan struct{}
	closeOnce *sync.Once
}

// Conn returns a connected in-memory conn pair. Writes on one side are
// buffered and become readable on the other without a reader in lockstep.
// Closing either side closes the pair; queued data remains readable,
// after which reads return io.EOF.
func Conn() (net.Conn, net.Conn) {
	die := make(chan struct{})
	once := &sync.Once{}
	c1 := newConn(die, once)
	c2 := newConn(die, once)
	c1.peer, c2.peer = c2, c1
	return c1, c2
}

func newConn(die chan struct{}, once *sync.Once) *conn {
	return &conn{
		buffer:     bytes.NewBuffer(make([]byte, 0, 512)),
		readQueue:  make(chan []byte, 512),
		readNotify: make(chan struct{}),
		die:        die,
		closeOnce:  once,
	}
}

func (c *conn) Read(b []byte) (int, error) {
	if len(b) <= 0 {
		return 0, io.ErrShortBuffer
	}
	c.bufferLock.Lock()
	defer c.bufferLock.Unlock()
	var deadline <-chan time.Time
	for {
		if c.buffer.Len() > 0 {
			return c.buffer.Read(b)
		}
		// Drain queued data before reporting a closed pair
		select {
		case data := <-c.readQueue:
			c.buffer.Write(data)
			continue
		default:
		}
		if t, ok := c.readDeadline.Load().(time.Time); ok && !t.IsZero() {
			timer := time.NewTimer(time.Until(t))
			defer timer.Stop()
			deadline = timer.C
		}
		select {
		case data := <-c.readQueue:
			c.buffer.Write(data)
		case <-c.readNotify:
		case <-deadline:
			return 0, os.ErrDeadlineExceeded
		case <-c.die:
			return 0, io.EOF
		}
	}
}

func (c *conn) Write(b []byte) (int, error) {
	if len(b) <= 0 {
		return 0, io.EOF
	}
	data := make([]byte, len(b))
	copy(data, b)
	select {
	case c.peer.readQueue <- data:
		return len(b), nil
	case <-c.die:
		return 0, io.ErrClosedPipe
	}
}

func (c *conn) LocalAddr() net.Addr {
	return nil
}

func (c *conn) RemoteAddr() net.Addr {
	return nil
}

func (c *conn) SetReadDeadline(t time.Time) error {
	c.readDeadline.Store(t)
	util.AsyncNotify(c.readNotify)
	return nil
}

func (c *conn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (c *conn) SetDeadline(t time.Time) error {
	if err := c.SetReadDeadline(t); err != nil {
		return err
	}
	return c.SetWriteDeadline(t)
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.die)
	})
	util.AsyncNotify(c.readNotify)
	util.AsyncNotify(c.peer.readNotify)
	return nil
}
