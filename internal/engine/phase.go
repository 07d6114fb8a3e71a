// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

// Phase is the stage of one Execute call.
type Phase int

// Phases of a run.
const (
	PhaseIdle Phase = iota
	PhaseParsing
	PhaseResolving
	PhaseExecuting
	PhaseCompleted
	PhaseFailed
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseParsing:
		return "Parsing"
	case PhaseResolving:
		return "Resolving"
	case PhaseExecuting:
		return "Executing"
	case PhaseCompleted:
		return "Completed"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}
