package bootstrap

import (
	"fmt"
	"os"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Format "json" selects JSON output,
// anything else the text formatter.
func NewLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
