// Package logging builds the process logger.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/pk-codebox-evo/openmap/internal/config"
)

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a JSON logger at the level named by LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewLoggerWithComponent returns an entry tagging every line with the
// component name.
func NewLoggerWithComponent(component string) *logrus.Entry {
	return NewLogger().WithField("component", component)
}
