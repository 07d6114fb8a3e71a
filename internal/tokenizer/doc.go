// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tokenizer splits a command line into Value, LongArgument, Flags,
// ParamsMarker and Pipe tokens.
//
// The grammar is a small state machine: every token moves the machine into the
// state named after its kind, and only the transitions in the table below are
// legal.
//
//	Start        -> Value, Pipe
//	Value        -> Value, LongArgument, Flags, Params, Pipe
//	LongArgument -> LongArgument, Value, Flags, Params, Pipe
//	Flags        -> Flags, LongArgument, Value, Params, Pipe
//	Params       -> Value
//	Pipe         -> Value, LongArgument, Flags
//
// A bare "--" enters params mode: until the next "|" every word is a Value,
// even one starting with "-".
package tokenizer
