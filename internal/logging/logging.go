// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and sinks.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Format is "console" (human readable) or "json".
	Format string
	// File, when set, receives JSON logs with size-based rotation in
	// addition to stderr.
	File string
	// Stderr overrides the terminal sink (tests).
	Stderr io.Writer
}

// New returns a logger and a closer for any file sink.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl := zerolog.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(strings.ToLower(s)); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level: %w", err)
		}
	}
	var out io.Writer = os.Stderr
	if opts.Stderr != nil {
		out = opts.Stderr
	}
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}
	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
