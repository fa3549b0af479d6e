package netem

import (
	"net"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// The size of emulated fragments on read.
	// Each Read call returns at most this many bytes.
	// Zero value means no emulation of fragmentation.
	ReadFragmentSize int
	// The size of emulated fragments on write.
	// Each Write call flushes at most this many bytes and reports a
	// short write, leaving the caller to write the remainder.
	// Zero value means no emulation of fragmentation.
	WriteFragmentSize int
}

func DefaultConfig() Config {
	return Config{}
}

// Netem wraps a stream-oriented net.Conn and emulates a transport that
// delivers data in arbitrarily small chunks. Write deliberately breaks
// the io.Writer contract by returning short counts without an error,
// the way a raw socket send does.
type Netem struct {
	net.Conn

	readFragmentSize  uint32
	writeFragmentSize uint32

	readCounter  uint32
	writeCounter uint32
}

func New(conn net.Conn, cfg Config) *Netem {
	ne := &Netem{Conn: conn}
	ne.Update(cfg)
	return ne
}

func (ne *Netem) Read(b []byte) (int, error) {
	fs := int(atomic.LoadUint32(&ne.readFragmentSize))
	if fs > 0 && fs < len(b) {
		b = b[:fs]
	}
	n, err := ne.Conn.Read(b)
	if err == nil {
		rc := atomic.AddUint32(&ne.readCounter, 1)
		log.WithFields(logrus.Fields{
			"op":      "read",
			"counter": rc,
		}).Debugf("Read %d bytes", n)
	}
	return n, err
}

func (ne *Netem) Write(b []byte) (int, error) {
	fs := int(atomic.LoadUint32(&ne.writeFragmentSize))
	if fs <= 0 || fs >= len(b) {
		return ne.Conn.Write(b)
	}
	n, err := ne.Conn.Write(b[:fs])
	if err == nil {
		wc := atomic.AddUint32(&ne.writeCounter, 1)
		log.WithFields(logrus.Fields{
			"op":      "write",
			"counter": wc,
		}).Debugf("Wrote %d of %d bytes", n, len(b))
	}
	return n, err
}

// Update the config for network emulation.
// Takes effect on the next read/write operations.
func (ne *Netem) Update(cfg Config) {
	atomic.StoreUint32(&ne.readFragmentSize, uint32(cfg.ReadFragmentSize))
	atomic.StoreUint32(&ne.writeFragmentSize, uint32(cfg.WriteFragmentSize))
	atomic.StoreUint32(&ne.readCounter, 0)
	atomic.StoreUint32(&ne.writeCounter, 0)
}

func (ne *Netem) Reset() {
	ne.Update(Config{})
}
