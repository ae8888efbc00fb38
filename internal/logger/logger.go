package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// singleton instance
var (
	consoleLogger *logrus.Logger
	consoleOnce   sync.Once
)

// Console returns the process-wide console logger.
func Console() *logrus.Logger {
	consoleOnce.Do(func() {
		consoleLogger = New(nil)
	})

	return consoleLogger
}

// New builds a text logger writing to out, or stderr when out is nil.
func New(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if out != nil {
		logger.SetOutput(out)
	}

	return logger
}

// SetLevel parses level ("debug", "info", ...) and applies it to the
// console logger. An empty level leaves it unchanged.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Console().SetLevel(lvl)
	return nil
}
