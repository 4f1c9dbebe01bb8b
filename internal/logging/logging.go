// Package logging builds the bot logger: a console writer on stdout and a
// size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MaxFileSize is the log file size in megabytes before it is rotated.
const MaxFileSize = 256

// Options configures New.
type Options struct {
	// File is the log file path. Empty disables file logging.
	File  string
	Debug bool
	// Console receives human-readable output. Defaults to os.Stdout.
	Console io.Writer
}

// New returns the logger and a function flushing and closing its writers.
func New(o Options) (zerolog.Logger, func()) {
	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	console := o.Console
	if console == nil {
		console = os.Stdout
	}
	// diode closes its output when it implements io.Closer; stdout stays open.
	dw := diode.NewWriter(struct{ io.Writer }{console}, 1000, 10*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "Logger dropped %d messages\n", missed)
	})

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        dw,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}}
	closers := []io.Closer{dw}

	if o.File != "" {
		file := &lumberjack.Logger{
			Filename: o.File,
			MaxSize:  MaxFileSize,
		}
		writers = append(writers, file)
		closers = append(closers, file)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
}
