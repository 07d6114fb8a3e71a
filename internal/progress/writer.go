// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/relay/internal/color"
)

const durationPrecision = time.Millisecond

// WriterListener prints one line per event.
type WriterListener struct {
	w io.Writer
}

// NewWriterListener returns a listener printing to w.
func NewWriterListener(w io.Writer) *WriterListener {
	return &WriterListener{w: w}
}

// OnEvent implements Listener.
func (l *WriterListener) OnEvent(e Event) {
	symbol, code := eventSymbol(e.Type)

	mode := "sequential"
	if e.Async {
		mode = "async"
	}

	line := fmt.Sprintf("%s %s #%d (%s) %s", color.Colorize(symbol, code), color.Colorize(e.Command, color.Bold), e.Position, mode, e.Type)

	if e.Type != EventStarted {
		line += fmt.Sprintf(" in %s", e.Duration.Round(durationPrecision))
	}

	if e.Err != nil {
		line += ": " + e.Err.Error()
	}

	fmt.Fprintln(l.w, line) //nolint:errcheck
}

func eventSymbol(t EventType) (string, color.Code) {
	switch t {
	case EventStarted:
		return "▶", color.FgCyan
	case EventCompleted:
		return "✓", color.FgGreen
	case EventFailed:
		return "✗", color.FgRed
	case EventSkipped:
		return "~", color.FgYellow
	case EventCancelled:
		return "!", color.FgMagenta
	default:
		return "?", color.FgWhite
	}
}
