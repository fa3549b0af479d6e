package client

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Timeout for establishing the connection.
	// Zero value means no timeout.
	DialTimeout time.Duration

	// Timeout covering one full request/response exchange.
	// Zero value means no timeout, matching the base protocol.
	ExchangeTimeout time.Duration

	// Optional logger for debugging purposes
	Logger *logrus.Logger
}

func DefaultConfig() Config {
	return Config{
		Logger: discardLogger,
	}
}

func sanitizeConfig(cfg Config) Config {
	if cfg.DialTimeout < 0 {
		cfg.DialTimeout = 0
	}
	if cfg.ExchangeTimeout < 0 {
		cfg.ExchangeTimeout = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger
	}
	return cfg
}
