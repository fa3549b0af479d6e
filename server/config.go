package server

import "github.com/sirupsen/logrus"

const (
	defaultMaxPayloadSize = 65535

	minMaxPayloadSize = 512
)

type Config struct {
	// The largest payload length accepted in a request frame.
	// Frames declaring more are rejected and the connection is closed.
	MaxPayloadSize int

	// Optional logger for debugging purposes
	Logger *logrus.Logger
}

func DefaultConfig() Config {
	return Config{
		MaxPayloadSize: defaultMaxPayloadSize,
		Logger:         discardLogger,
	}
}

func sanitizeConfig(cfg Config) Config {
	if cfg.MaxPayloadSize < minMaxPayloadSize {
		cfg.MaxPayloadSize = minMaxPayloadSize
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger
	}
	return cfg
}
