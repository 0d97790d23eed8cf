package utils

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// NewLogger returns a logfmt logger writing to w and filtered to levelName
func NewLogger(w io.Writer, levelName string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, level.Allow(level.ParseDefault(levelName, level.InfoValue())))
}

// OpenLogger builds the logger for the chosen display. The terminal display
// owns stdout and stderr, so its logs go to logFile, or nowhere when unset.
func OpenLogger(display, logFile, levelName string) (log.Logger, io.Closer, error) {
	if display != DisplayTerminal {
		return NewLogger(os.Stderr, levelName), nopCloser{}, nil
	}
	if logFile == "" {
		return log.NewNopLogger(), nopCloser{}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[OpenLogger] failed to open log file: %+v", logFile)
	}
	return NewLogger(f, levelName), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
