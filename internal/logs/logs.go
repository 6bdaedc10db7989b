// Package logs holds the process-wide logger. The terminal is owned by the
// live view, so log output goes to a file or nowhere.
package logs

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	initOnce sync.Once
	logger   *logrus.Logger
	logFile  *os.File
)

func Init() {
	initOnce.Do(func() {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	})
}

func L() *logrus.Logger {
	Init()
	return logger
}

// WithComponent returns an entry tagged with the emitting component.
func WithComponent(name string) *logrus.Entry {
	return L().WithField("component", name)
}

// SetDebug switches between info and debug verbosity.
func SetDebug(on bool) {
	if on {
		L().SetLevel(logrus.DebugLevel)
		return
	}
	L().SetLevel(logrus.InfoLevel)
}

// SetOutputFile appends log output to path. An empty path keeps logs
// discarded.
func SetOutputFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	Close()
	logFile = f
	L().SetOutput(f)
	return nil
}

// Close closes the underlying log file, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	L().SetOutput(io.Discard)
	return err
}
