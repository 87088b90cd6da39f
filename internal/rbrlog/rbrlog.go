// Package rbrlog assembles this core's logger the way the teacher
// assembles its own: a colorized tint handler on stderr fanned out
// alongside an optional plain-text file handler via slog-multi.
package rbrlog

import (
	"log/slog"
	"os"
	"path"

	slogmulti "github.com/samber/slog-multi"
	"github.com/encodeous/tint"
)

// Options configures the logger New builds.
type Options struct {
	// Level is the minimum level logged.
	Level slog.Level
	// Prefix is prepended to every line (typically the bridge name).
	Prefix string
	// FilePath, if non-empty, is also written to as plain text.
	FilePath string
}

// New builds a logger per Options, fanning out to stderr and, if
// FilePath is set, to a rotating-free append-only log file.
func New(opts Options) (*slog.Logger, error) {
	handlers := make([]slog.Handler, 0, 2)
	handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
		Level:        opts.Level,
		AddSource:    false,
		CustomPrefix: opts.Prefix,
	}))

	if opts.FilePath != "" {
		if err := os.MkdirAll(path.Dir(opts.FilePath), 0o700); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.FilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}
