// Package logging configures the debug logger written to ~/.chanhub/debug.log.
//
// The TUI owns the terminal, so nothing may write to stdout or stderr while
// it runs; transport failures and other diagnostics go to the log file
// instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LogPath returns the debug log file path.
func LogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chanhub", "debug.log")
}

// Open returns a logger appending to the debug log file.
func Open() (*logrus.Logger, error) {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logrus.DebugLevel)
	return logger, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
