// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

// ChannelReporter implements Reporter using a buffered channel.
// It is safe for concurrent use.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a reporter buffering up to bufferSize events.
// Events reported after ctx is done are dropped.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	return &ChannelReporter{
		ch:  make(chan Event, bufferSize),
		ctx: ctx,
	}
}

// Report implements Reporter. The event is dropped if the reporter is
// closed, its context is done or the buffer is full.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed || cr.ctx.Err() != nil {
		return
	}

	select {
	case cr.ch <- event:
	default:
	}
}

// Close implements Reporter. It waits for listeners to receive the events
// already buffered.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
	})
}

// Listen forwards events to listener on a new goroutine until Close.
// Call it at most once, before events are reported.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for event := range cr.ch {
			listener.OnEvent(event)
		}
	}()
}

// Events returns the channel of events, for callers that do not use Listen.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
