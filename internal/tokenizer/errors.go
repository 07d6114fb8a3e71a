// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tokenizer

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenize is the category of every tokenizer failure.
	ErrTokenize = errors.New("cannot tokenize command line")
	// ErrUnterminatedQuote is the reason for a quote without a closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quote")
	// ErrMalformedToken is the reason for a word that matches no token pattern.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnexpectedToken is the reason for a token the current state does not allow.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// Error describes the offending token of a command line.
type Error struct {
	Offset int    // byte offset, or argument index for pre-split input
	Text   string // the offending text as written
	State  State  // state of the machine when the token was read
	Reason error  // one of the ErrXxx reasons above
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v %q at offset %d (after %s)", ErrTokenize, e.Reason, e.Text, e.Offset, e.State)
}

// Unwrap exposes both the category and the reason to errors.Is.
func (e *Error) Unwrap() []error {
	return []error{ErrTokenize, e.Reason}
}
