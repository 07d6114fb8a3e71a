// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{eventType: EventStarted, expected: "started"},
		{eventType: EventCompleted, expected: "completed"},
		{eventType: EventFailed, expected: "failed"},
		{eventType: EventSkipped, expected: "skipped"},
		{eventType: EventCancelled, expected: "cancelled"},
		{eventType: EventType(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.String())
		})
	}
}

func TestNullReporter(t *testing.T) {
	var r Reporter = NullReporter{}

	r.Report(Event{Command: "test", Type: EventStarted})
	r.Close()
}

func TestChannelReporter(t *testing.T) {
	reporter := NewChannelReporter(context.Background(), 10)

	event := Event{Command: "deploy", Position: 2, Type: EventStarted, Timestamp: time.Now()}
	reporter.Report(event)

	select {
	case received := <-reporter.Events():
		assert.Equal(t, event, received)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}

	reporter.Close()
	reporter.Close()

	// dropped, must not panic
	reporter.Report(Event{Type: EventCompleted})
}

func TestChannelReporter_BufferOverflow(t *testing.T) {
	reporter := NewChannelReporter(context.Background(), 1)

	reporter.Report(Event{Command: "one"})
	reporter.Report(Event{Command: "two"})

	reporter.Close()

	var got []string
	for e := range reporter.Events() {
		got = append(got, e.Command)
	}

	assert.Equal(t, []string{"one"}, got)
}

func TestChannelReporter_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reporter := NewChannelReporter(ctx, 10)

	cancel()
	reporter.Report(Event{Command: "late"})
	reporter.Close()

	_, ok := <-reporter.Events()
	assert.False(t, ok)
}

func TestChannelReporter_Listen(t *testing.T) {
	reporter := NewChannelReporter(context.Background(), 10)

	var (
		mu  sync.Mutex
		got []EventType
	)

	reporter.Listen(ListenerFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()

		got = append(got, e.Type)
	}))

	want := []EventType{EventStarted, EventFailed, EventSkipped}
	for _, et := range want {
		reporter.Report(Event{Type: et})
	}

	// Close drains the buffer before returning.
	reporter.Close()

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, want, got)
}

func TestWriterListener(t *testing.T) {
	color.SetEnabled(false)

	buf := &bytes.Buffer{}
	l := NewWriterListener(buf)

	l.OnEvent(Event{Command: "build", Position: 0, Type: EventStarted})
	l.OnEvent(Event{Command: "deploy", Position: 1, Async: true, Type: EventFailed, Duration: 1500 * time.Millisecond, Err: errors.New("boom")})
	l.OnEvent(Event{Command: "build", Position: 0, Type: EventCompleted, Duration: 2 * time.Millisecond})

	require.Equal(t,
		"▶ build #0 (sequential) started\n"+
			"✗ deploy #1 (async) failed in 1.5s: boom\n"+
			"✓ build #0 (sequential) completed in 2ms\n",
		buf.String())
}
