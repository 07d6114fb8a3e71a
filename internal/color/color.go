// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix = "\033["
	suffix = "m"
	reset  = "\033[0m"
)

// Code is an SGR parameter of an ANSI escape sequence.
type Code int

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Hi-intensity foreground colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(isColorCapable())
}

// Enabled reports whether colored output is turned on for this process.
// NO_COLOR wins over FORCE_COLOR; with neither set, stdout must be a terminal.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides terminal detection, e.g. for --no-color or in tests.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// ControlString returns the escape sequence for the given codes, regardless of Enabled.
func ControlString(codes ...Code) string {
	sb := strings.Builder{}
	sb.WriteString(prefix)

	for i, c := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(int(c)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

// Colorize wraps s in the given codes followed by a reset.
// It returns s unchanged when color is disabled.
func Colorize(s string, codes ...Code) string {
	if !Enabled() || len(codes) == 0 {
		return s
	}

	return ControlString(codes...) + s + reset
}

func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
