// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/relay/internal/color"
)

const durationPrecision = time.Millisecond

// OutputOptions controls what WriteText includes.
type OutputOptions struct {
	ShowSuccessDetails bool // print durations of successful commands
}

// DefaultOutputOptions returns the options used when none are given.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{}
}

// WriteText renders results as an indented tree.
func WriteText(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, r := range results {
		if err := writeResultWithIndent(w, r, "", options); err != nil {
			return err
		}
	}

	return nil
}

func writeResultWithIndent(w io.Writer, r *Result, indent string, options *OutputOptions) error {
	statusStr, colour := statusSymbol(r.Status)

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	if _, err := fmt.Fprintf(w, "%s%s %s", indent, statusStr, color.Colorize(label, color.Bold, colour)); err != nil {
		return err
	}

	if r.Duration > 0 && (r.Status.IsError() || options.ShowSuccessDetails) {
		if _, err := fmt.Fprintf(w, " (%s)", r.Duration.Round(durationPrecision)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if r.Error != "" && len(r.Children) == 0 {
		if _, err := fmt.Fprintf(w, "%s  %s %s\n", indent, color.Colorize("➜ Error:", colour), r.Error); err != nil {
			return err
		}
	}

	for _, child := range r.Children {
		if err := writeResultWithIndent(w, child, indent+"  ", options); err != nil {
			return err
		}
	}

	return nil
}

func statusSymbol(s Status) (string, color.Code) {
	switch s {
	case StatusSucceeded:
		return color.Colorize("✓", color.FgGreen), color.FgGreen
	case StatusFailed:
		return color.Colorize("✗", color.FgRed), color.FgRed
	case StatusSkipped:
		return color.Colorize("~", color.FgYellow), color.FgYellow
	case StatusCancelled:
		return color.Colorize("!", color.FgMagenta), color.FgMagenta
	default:
		return color.Colorize("?", color.FgWhite), color.FgWhite
	}
}
