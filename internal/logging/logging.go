// internal/logging/logging.go
package logging

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tamzrod/excitation-controller/internal/config"
)

// New builds the process logger from config.
// With a file configured, output is rotated by lumberjack; otherwise stderr.
// The returned closer flushes and closes the log file.
func New(c config.LoggingConfig) (*logrus.Logger, func() error, error) {
	level := c.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	var out io.Writer = os.Stderr
	closer := func() error { return nil }

	if c.File != "" {
		lj := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   c.Compress,
		}
		out = lj
		closer = lj.Close
	}

	l.SetOutput(out)
	return l, closer, nil
}

// ModbusTrace returns a *log.Logger for goburrow frame traces, routed to
// logrus at debug level. Returns nil unless debug is enabled.
// The closer releases the pipe behind the logger and is always non-nil.
func ModbusTrace(l *logrus.Logger, channel string) (*log.Logger, func() error) {
	if l == nil || !l.IsLevelEnabled(logrus.DebugLevel) {
		return nil, func() error { return nil }
	}
	w := l.WithField("channel", channel).WriterLevel(logrus.DebugLevel)
	return log.New(w, "modbus: ", 0), w.Close
}
