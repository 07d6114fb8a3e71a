// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		handler slog.Level
		want    bool
	}{
		{name: "debug record, debug handler", level: slog.LevelDebug, handler: slog.LevelDebug, want: true},
		{name: "debug record, info handler", level: slog.LevelDebug, handler: slog.LevelInfo, want: false},
		{name: "error record, warn handler", level: slog.LevelError, handler: slog.LevelWarn, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPrettyHandler(&slog.HandlerOptions{Level: tt.handler})
			assert.Equal(t, tt.want, h.Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))

	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC), slog.LevelInfo, "command finished", 0)
	r.AddAttrs(slog.String("command", "deploy"), slog.Int("position", 1))

	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[03:04:05.006] INFO: command finished "), out)
	assert.Contains(t, out, `"command": "deploy"`)
	assert.Contains(t, out, `"position": 1`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandler_ReplaceAttrDropsBuiltins(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(buf))

	slog.New(h).Warn("no time")

	assert.Equal(t, "WARN: no time \n", buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewPrettyHandler(nil, WithDestinationWriter(buf))
	logger := slog.New(base).With("run", "r1").WithGroup("cmd")

	logger.Error("failed", "name", "build")

	assert.Contains(t, buf.String(), `"run": "r1"`)
	assert.Contains(t, buf.String(), `"cmd": {`)
	assert.Contains(t, buf.String(), `"name": "build"`)
}

func TestPrettyHandler_EmptyAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	slog.New(NewPrettyHandler(nil, WithDestinationWriter(buf), WithOutputEmptyAttrs())).Warn("bare")

	assert.Contains(t, buf.String(), "bare {}")
}

func TestPrettyHandler_ConcurrentUse(t *testing.T) {
	buf := &safeBuffer{}
	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(buf)))

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Warn("concurrent", "i", i)
		}()
	}

	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "concurrent"))
}

type safeBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.b.String()
}
