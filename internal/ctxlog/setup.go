// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log output formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// ErrUnknownFormat is returned by Setup for a format other than pretty or json.
var ErrUnknownFormat = errors.New("unknown log format")

// Options describe the process logger.
type Options struct {
	Level      string    // DEBUG, INFO, WARN or ERROR; empty keeps the current level
	Format     string    // FormatPretty (default) or FormatJSON
	File       string    // optional path of a rotated JSON log file
	MaxSizeMB  int       // rotate File after this many megabytes
	MaxBackups int       // rotated files to keep
	Writer     io.Writer // console destination, stderr when nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger from opts. The returned closer flushes the
// log file, if any, and must be closed on exit.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Level != "" {
		LevelVar.Set(ParseLevel(opts.Level))
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var console slog.Handler

	switch strings.ToLower(opts.Format) {
	case "", FormatPretty:
		console = NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar}, WithAutoColour(), WithDestinationWriter(w))
	case FormatJSON:
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar})
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	if opts.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	sink := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: LevelVar})

	return slog.New(fanout{console, sink}), file, nil
}

// fanout sends every record to all of its handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}

	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error

	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}

	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}

	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}

	return out
}
