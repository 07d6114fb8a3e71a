// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tokenizer

import "slices"

// State is a state of the tokenizer. Apart from Start, each state is named
// after the kind of the token that was read last.
type State int

// Tokenizer states.
const (
	StateStart State = iota
	StateValue
	StateLongArgument
	StateFlags
	StateParams
	StatePipe
)

var stateNames = map[State]string{
	StateStart:        "Start",
	StateValue:        "Value",
	StateLongArgument: "LongArgument",
	StateFlags:        "Flags",
	StateParams:       "Params",
	StatePipe:         "Pipe",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}

	return "Unknown"
}

var transitions = map[State][]State{
	StateStart:        {StateValue, StatePipe},
	StateValue:        {StateValue, StateLongArgument, StateFlags, StateParams, StatePipe},
	StateLongArgument: {StateLongArgument, StateValue, StateFlags, StateParams, StatePipe},
	StateFlags:        {StateFlags, StateLongArgument, StateValue, StateParams, StatePipe},
	StateParams:       {StateValue},
	StatePipe:         {StateValue, StateLongArgument, StateFlags},
}

// CanTransition reports whether the machine may move from one state to another.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

func stateOf(k Kind) State {
	switch k {
	case Value:
		return StateValue
	case LongArgument:
		return StateLongArgument
	case Flags:
		return StateFlags
	case ParamsMarker:
		return StateParams
	default:
		return StatePipe
	}
}
