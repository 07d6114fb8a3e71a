// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a change in the lifecycle of one command of a run.
type Event struct {
	RunID     string
	Command   string // primary name
	Position  int    // index of the command line in its input
	Async     bool
	Type      EventType
	Err       error // set for EventFailed, EventSkipped and EventCancelled
	Duration  time.Duration
	Timestamp time.Time
}

// EventType is the kind of lifecycle change.
type EventType int

const (
	// EventStarted indicates a command has begun binding and execution.
	EventStarted EventType = iota
	// EventCompleted indicates successful completion.
	EventCompleted
	// EventFailed indicates the command failed.
	EventFailed
	// EventSkipped indicates the command never started because the run was cancelled.
	EventSkipped
	// EventCancelled indicates the command stopped because the run was cancelled.
	EventCancelled
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending events.
type Reporter interface {
	// Report sends an event. It must not block.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}
