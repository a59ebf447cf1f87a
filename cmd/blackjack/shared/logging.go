package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a stderr logger, debug switching the level
func SetupLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// SetupFileLogger logs to the named file at the given level, for commands
// whose terminal is owned by the TUI. An empty name discards all logs.
// The caller closes the returned file when it is non-nil.
func SetupFileLogger(name, level string) (*log.Logger, *os.File, error) {
	if name == "" {
		return log.New(io.Discard), nil, nil
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := log.New(file)
	logger.SetLevel(ParseLevel(level))

	return logger, file, nil
}

// ParseLevel maps a config log level to the logger's level
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
