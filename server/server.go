package server

import (
	"io"
	"net"
	"sync"
	"tauwire/frame"
	"tauwire/util"
	uio "tauwire/util/io"
)

// Handler inspects one request frame and returns the status opcode for
// the response header. The payload slice is only valid for the duration
// of the call; its backing buffer is pooled.
type Handler func(opcode uint8, payload []byte) uint8

// Server is a stub responder: it reads request frames one at a time and
// answers each with a bare response header carrying the handler's
// status opcode. There is no session state and no response payload.
type Server struct {
	listener net.Listener
	handler  Handler
	cfg      Config

	pool *util.BufferPool

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func Listen(network, addr string, handler Handler, cfg Config) (*Server, error) {
	cfg = sanitizeConfig(cfg)
	l, err := net.Listen(network, addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: l,
		handler:  handler,
		cfg:      cfg,
		pool:     util.NewBufferPool(cfg.MaxPayloadSize),
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		s.wg.Add(1)
		go s.serveRoutine(conn)
	}
}

func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.listener.Close()
	})
	s.wg.Wait()
	return err
}

func (s *Server) serveRoutine(conn net.Conn) {
	defer s.wg.Done()
	if err := s.serve(conn); err != nil && err != io.EOF {
		s.cfg.Logger.Errorf("Serve error from %s: %+v", conn.RemoteAddr(), err)
	}
}

func (s *Server) serve(conn net.Conn) error {
	defer conn.Close()
	buf := s.pool.Get()
	defer s.pool.Put(buf)
	for {
		hdr, err := frame.ReadHeader(conn)
		if err != nil {
			return err
		}
		if hdr.Len() > uint32(len(buf)) {
			return frame.ErrPayloadTooLarge
		}
		payload := buf[:hdr.Len()]
		if _, err := io.ReadFull(conn, payload); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		status := s.handler(hdr.Opcode(), payload)
		s.cfg.Logger.Debugf("Handled opcode 0x%02X from %s with status 0x%02X",
			hdr.Opcode(), conn.RemoteAddr(), status)
		resp := frame.NewHeader(status, 0)
		if err := uio.WriteFull(conn, resp[:]); err != nil {
			return err
		}
	}
}
