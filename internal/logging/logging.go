// Package logging configures the process logger and adapts it to the engine's
// Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/finfreedom/fincalc/internal/calculation"
)

// New returns a logrus logger writing to stderr at the given level ("debug", "info", ...)
// in "text" or "json" format.
func New(level, format string) (*logrus.Logger, error) {
	return NewWithOutput(os.Stderr, level, format)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	switch format {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}

// EngineLogger routes calculation engine output into a logrus entry.
type EngineLogger struct {
	Entry *logrus.Entry
}

var _ calculation.Logger = EngineLogger{}

// NewEngineLogger tags engine messages with component=engine.
func NewEngineLogger(log logrus.FieldLogger) EngineLogger {
	return EngineLogger{Entry: log.WithField("component", "engine")}
}

func (l EngineLogger) Debugf(format string, args ...any) { l.Entry.Debugf(format, args...) }
func (l EngineLogger) Infof(format string, args ...any)  { l.Entry.Infof(format, args...) }
func (l EngineLogger) Warnf(format string, args ...any)  { l.Entry.Warnf(format, args...) }
func (l EngineLogger) Errorf(format string, args ...any) { l.Entry.Errorf(format, args...) }
