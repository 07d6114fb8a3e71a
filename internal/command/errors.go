// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRegistry is the category of registration failures.
	ErrRegistry = errors.New("cannot register command")
	// ErrNotFound is the category of resolution failures.
	ErrNotFound = errors.New("command not found")
)

// DuplicateCommandError is returned when an alias of a new command is
// already taken by a registered command.
type DuplicateCommandError struct {
	ID       Identifier
	Alias    string
	Existing Identifier
}

// Error implements the error interface.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("%s: %s: alias %q is already used by %s", ErrRegistry, e.ID.Primary(), e.Alias, e.Existing.Primary())
}

// Unwrap returns ErrRegistry.
func (e *DuplicateCommandError) Unwrap() error {
	return ErrRegistry
}

// CommandNotFoundError is returned when no command has the requested name.
type CommandNotFoundError struct {
	Name string
	// Position is the index of the command line in its input.
	Position    int
	Suggestions []string
}

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %q at position %d", ErrNotFound, e.Name, e.Position)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

// Unwrap returns ErrNotFound.
func (e *CommandNotFoundError) Unwrap() error {
	return ErrNotFound
}
