// Package log builds the diagnostic logger shared by the pipeline and the bring-up coordinator.
//
// User-facing output goes through the notify package. The logger only carries
// diagnostics: raw output of external tools, retries and timings. In quiet mode only
// errors reach the writer.
package log

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunField is the field name carrying the identifier of one pipeline run.
const RunField = "run"

// New creates a logger writing to writer (os.Stderr when nil).
// quiet restricts output to errors; otherwise debug output is enabled.
func New(writer io.Writer, quiet bool) *logrus.Logger {
	if writer == nil {
		writer = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})

	if quiet {
		logger.SetLevel(logrus.ErrorLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)

	return logger
}

// WithRun tags every entry with a fresh run identifier.
func WithRun(logger logrus.FieldLogger) *logrus.Entry {
	return logger.WithField(RunField, uuid.NewString())
}
