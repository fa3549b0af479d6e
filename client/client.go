package client

import (
	"fmt"
	"io"
	"net"
	"tauwire/frame"
	uerrors "tauwire/util/errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the status opcode from a response header.
type Status uint8

func (s Status) OK() bool {
	return uint8(s) == frame.StatusOK
}

func (s Status) Code() uint8 {
	return uint8(s)
}

func (s Status) String() string {
	if s.OK() {
		return "OK"
	}
	return fmt.Sprintf("ERR(0x%02X)", uint8(s))
}

// Client performs framed request/response exchanges over a single
// connection. Exchanges are strictly sequential: the request is fully
// flushed before the response read begins.
type Client struct {
	conn net.Conn
	cfg  Config
}

func Dial(network, addr string, cfg Config) (*Client, error) {
	cfg = sanitizeConfig(cfg)
	conn, err := net.DialTimeout(network, addr, cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	cfg.Logger.Debugf("Connected to %s", conn.RemoteAddr())
	return New(conn, cfg), nil
}

func New(conn net.Conn, cfg Config) *Client {
	return &Client{
		conn: conn,
		cfg:  sanitizeConfig(cfg),
	}
}

// Connect performs one CONNECT exchange, presenting the credential blob
// to the peer. The returned status is the peer's verdict; a non-success
// status is a fully-formed response, not an error.
func (c *Client) Connect(credential []byte) (Status, error) {
	if c.cfg.ExchangeTimeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.cfg.ExchangeTimeout)); err != nil {
			return 0, err
		}
		defer c.conn.SetDeadline(time.Time{})
	}
	if err := frame.WriteFrame(c.conn, frame.OpConnect, credential); err != nil {
		return 0, c.exchangeErr("send", err)
	}
	hdr, err := frame.ReadHeader(c.conn)
	if err == io.EOF {
		// A response was due, so a clean close is still premature
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return 0, c.exchangeErr("recv", err)
	}
	status := Status(hdr.Opcode())
	c.cfg.Logger.WithFields(logrus.Fields{
		"opcode": fmt.Sprintf("0x%02X", status.Code()),
		"ok":     status.OK(),
	}).Debug("CONNECT exchange complete")
	return status, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) exchangeErr(op string, err error) error {
	if uerrors.IsDeadlineError(err) {
		err = uerrors.ErrTimeout
	}
	return fmt.Errorf("%s: %w", op, err)
}
