// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"io"
	"os"
	"slices"
	"time"
)

// Status is the outcome of one command, or of a group of commands.
type Status int

// Statuses.
const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
	StatusSkipped
	StatusCancelled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsError reports whether the status counts as a failure.
func (s Status) IsError() bool {
	return s == StatusFailed || s == StatusCancelled
}

// Result is a node of the result tree rendered by WriteText and WriteGob.
// Errors are kept as text so that the tree can be gob encoded.
type Result struct {
	Label    string
	Status   Status
	Error    string
	Duration time.Duration
	Children Results
}

// Results is a list of result trees.
type Results []*Result

// HasError reports whether any node in the tree failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Status.IsError() {
			return true
		}

		if v.Children.HasError() {
			return true
		}
	}

	return false
}

// Print writes the results to stdout with default options.
func (r Results) Print() error {
	return WriteText(os.Stdout, r, nil)
}

// Write writes the results to w with the given options.
func (r Results) Write(w io.Writer, options *OutputOptions) error {
	return WriteText(w, r, options)
}
