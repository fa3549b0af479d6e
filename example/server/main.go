package main

import (
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"tauwire/example/shared"
	"tauwire/frame"
	"tauwire/server"

	"github.com/sirupsen/logrus"
)

var log = &logrus.Logger{
	Out:   os.Stdout,
	Level: logrus.DebugLevel,
	Formatter: &logrus.TextFormatter{
		FullTimestamp: true,
	},
}

func main() {
	if err := start(); err != nil {
		log.Fatal(err)
	}
}

func start() error {
	// Initialize the listener
	laddr := shared.GetServerAddr()
	cfg := server.DefaultConfig()
	cfg.Logger = log
	srv, err := server.Listen("tcp", laddr.String(), handleConnect, cfg)
	if err != nil {
		return err
	}
	log.Infof("Server listening at %s", srv.Addr())

	// Start serving
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go serveRoutine(wg, srv)

	// Handle signals
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	log.Infof("Received signal %+v", <-ch)

	// Cleanup
	if err := srv.Close(); err != nil {
		return err
	}
	wg.Wait()
	return nil
}

func serveRoutine(wg *sync.WaitGroup, srv *server.Server) {
	defer wg.Done()
	if err := srv.Serve(); err != nil && !isClosedErr(err) {
		log.Errorf("Serve error: %+v", err)
	}
}

func isClosedErr(err error) bool {
	opErr, ok := err.(*net.OpError)
	return ok && opErr.Op == "accept"
}

func handleConnect(opcode uint8, payload []byte) uint8 {
	if opcode != frame.OpConnect {
		log.Warnf("Unsupported opcode 0x%02X", opcode)
		return 0x00
	}
	if len(payload) != shared.CredentialSize {
		log.Warnf("CONNECT with %d-byte credential, want %d", len(payload), shared.CredentialSize)
		return 0x01
	}
	log.Infof("CONNECT accepted with %d-byte credential", len(payload))
	return frame.StatusOK
}
