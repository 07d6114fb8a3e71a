// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teewriter

import (
	"io"
	"strings"
	"sync"
)

const ellipsis = "..."

// LastLineWriter forwards writes to another writer and tracks the last
// non-blank line written. It is safe for concurrent use.
type LastLineWriter struct {
	w        io.Writer
	lastLine string
	partial  strings.Builder // text after the last newline
	mu       sync.RWMutex
}

// New returns a LastLineWriter forwarding to w. A nil w discards the data.
func New(w io.Writer) *LastLineWriter {
	if w == nil {
		w = io.Discard
	}

	return &LastLineWriter{w: w}
}

// Write implements io.Writer. Line tracking sees only the bytes that the
// underlying writer accepted.
func (lw *LastLineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	n, err := lw.w.Write(p)
	if n > 0 {
		lw.track(string(p[:n]))
	}

	return n, err //nolint:wrapcheck
}

// track must be called with the lock held.
func (lw *LastLineWriter) track(data string) {
	lw.partial.WriteString(data)

	combined := lw.partial.String()

	i := strings.LastIndexByte(combined, '\n')
	if i < 0 {
		return
	}

	for _, l := range strings.Split(combined[:i], "\n") {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			lw.lastLine = l
		}
	}

	rest := combined[i+1:]

	lw.partial.Reset()
	lw.partial.WriteString(rest)
}

// LastLine returns the last complete non-blank line, truncated to maxLength
// with a trailing "..." when maxLength > 0.
func (lw *LastLineWriter) LastLine(maxLength int) string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return truncate(lw.lastLine, maxLength)
}

// PartialLine returns the text written after the last newline.
func (lw *LastLineWriter) PartialLine() string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	return lw.partial.String()
}

// Tail returns the unterminated last line if it is not blank, otherwise
// the last complete line. maxLength works as for LastLine.
func (lw *LastLineWriter) Tail(maxLength int) string {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	if p := lw.partial.String(); strings.TrimSpace(p) != "" {
		return truncate(p, maxLength)
	}

	return truncate(lw.lastLine, maxLength)
}

// Reset forgets the tracked lines. The underlying writer is not affected.
func (lw *LastLineWriter) Reset() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	lw.lastLine = ""
	lw.partial.Reset()
}

func truncate(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}

	if maxLength <= len(ellipsis) {
		return s[:maxLength]
	}

	return s[:maxLength-len(ellipsis)] + ellipsis
}
