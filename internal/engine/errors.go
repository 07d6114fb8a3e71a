// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResolve is the category of errors that stop a run before execution.
	ErrResolve = errors.New("cannot resolve command lines")
	// ErrCommandsFailed is returned by Execute when at least one command failed.
	ErrCommandsFailed = errors.New("one or more commands failed")
	// ErrSkipped is recorded for commands that never started.
	ErrSkipped = errors.New("skipped")
	// ErrCancelled matches the CommandError of a command that stopped because the run was cancelled.
	ErrCancelled = errors.New("cancelled")
)

// ResolveError aggregates every line that could not be resolved.
type ResolveError struct {
	Err error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %v", ErrResolve, e.Err)
}

// Unwrap exposes the category and the aggregated errors.
func (e *ResolveError) Unwrap() []error {
	return []error{ErrResolve, e.Err}
}

// MissingNameError is returned for a command line that has arguments but no name.
type MissingNameError struct {
	Position int
}

// Error implements the error interface.
func (e *MissingNameError) Error() string {
	return fmt.Sprintf("command line at position %d has no command name", e.Position)
}

// InvalidAsyncError is returned when the async argument of a line is not a boolean.
type InvalidAsyncError struct {
	Command  string
	Position int
	Err      error
}

// Error implements the error interface.
func (e *InvalidAsyncError) Error() string {
	return fmt.Sprintf("%s (position %d): invalid %v", e.Command, e.Position, e.Err)
}

// Unwrap returns the parse error.
func (e *InvalidAsyncError) Unwrap() error {
	return e.Err
}

// CommandError ties a failure to the command that produced it.
type CommandError struct {
	Command   string
	Position  int
	Err       error
	Cancelled bool
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s (position %d): %v", e.Command, e.Position, e.Err)
}

// Unwrap returns the handler or binding error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is matches ErrCancelled when the command was cancelled.
func (e *CommandError) Is(target error) bool {
	return e.Cancelled && target == ErrCancelled
}

// listFormat renders a multierror on a single line.
func listFormat(errs []error) string {
	s := make([]string, len(errs))
	for i, err := range errs {
		s[i] = err.Error()
	}

	return strings.Join(s, "; ")
}
