// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrBinding is the category of every error returned by Binder.Bind.
	ErrBinding = errors.New("cannot bind arguments")
	// ErrSchema is the category of every error returned while describing parameters.
	ErrSchema = errors.New("invalid parameter schema")
)

// CardinalityReason says why the number of values was wrong.
type CardinalityReason int

const (
	// TooManyValues means a scalar parameter received more than one value.
	TooManyValues CardinalityReason = iota
	// EmptyCollection means a collection parameter was given without values.
	EmptyCollection
	// MissingValue means a non-boolean scalar was given without a value.
	MissingValue
)

// String implements fmt.Stringer.
func (r CardinalityReason) String() string {
	switch r {
	case TooManyValues:
		return "too many values"
	case EmptyCollection:
		return "at least one value is required"
	case MissingValue:
		return "a value is required"
	default:
		return "invalid number of values"
	}
}

// BindError aggregates every parameter error of one command line.
type BindError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrBinding, e.Command, e.Err)
}

// Unwrap exposes the category and the aggregated errors.
func (e *BindError) Unwrap() []error {
	return []error{ErrBinding, e.Err}
}

// RequiredArgumentMissingError is returned when a required parameter has no value.
type RequiredArgumentMissingError struct {
	Parameter string
}

// Error implements the error interface.
func (e *RequiredArgumentMissingError) Error() string {
	return fmt.Sprintf("required argument %q is missing", e.Parameter)
}

// ParameterCardinalityError is returned when a parameter has the wrong number of values.
type ParameterCardinalityError struct {
	Parameter string
	Reason    CardinalityReason
	Count     int
}

// Error implements the error interface.
func (e *ParameterCardinalityError) Error() string {
	return fmt.Sprintf("argument %q: %s (got %d)", e.Parameter, e.Reason, e.Count)
}

// ConversionError is returned when raw values cannot be converted to the parameter type.
type ConversionError struct {
	Parameter string
	Values    []string
	Type      reflect.Type
	Err       error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("argument %q: cannot convert %q to %s: %v", e.Parameter, e.Values, e.Type, e.Err)
}

// Unwrap returns the converter error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// DuplicateParameterNameError is returned when two parameters share an alias.
type DuplicateParameterNameError struct {
	Alias  string
	First  string
	Second string
}

// Error implements the error interface.
func (e *DuplicateParameterNameError) Error() string {
	return fmt.Sprintf("alias %q is used by both %q and %q", e.Alias, e.First, e.Second)
}

// InvalidPositionSequenceError is returned when positional parameters are not 1..n,
// or when a collection is not the last of them.
type InvalidPositionSequenceError struct {
	Positions []int
	Reason    string
}

// Error implements the error interface.
func (e *InvalidPositionSequenceError) Error() string {
	s := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		s[i] = fmt.Sprint(p)
	}

	return fmt.Sprintf("positions [%s]: %s", strings.Join(s, " "), e.Reason)
}

// listFormat renders a multierror on a single line.
func listFormat(errs []error) string {
	s := make([]string, len(errs))
	for i, err := range errs {
		s[i] = err.Error()
	}

	return strings.Join(s, "; ")
}
