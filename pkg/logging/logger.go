// Package logging constructs the service's structured JSON loggers.
package logging

import (
	"time"

	"github.com/sirupsen/logrus"

	"perch/pkg/config"
)

// Logger is the shared logger handle used across packages.
type Logger = *logrus.Logger

// Fields is shorthand for structured log fields.
type Fields = logrus.Fields

// NewLogger builds a JSON logger at the level configured via LOG_LEVEL.
func NewLogger() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	l.SetLevel(config.GetLogLevel())
	return l
}

// NewLoggerWithService returns a logger that stamps every entry with the
// service name.
func NewLoggerWithService(service string) Logger {
	l := NewLogger()
	l.AddHook(serviceHook(service))
	return l
}

type serviceHook string

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = string(h)
	return nil
}
