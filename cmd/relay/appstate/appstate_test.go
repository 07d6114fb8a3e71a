// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package appstate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/relay/internal/builtin"
	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/config"
	"github.com/matt-FFFFFF/relay/internal/engine"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macroConfig = `
parallelism: 2
macros:
  - name: greet
    aliases: [hi]
    command_line: echo hello | echo world
  - name: twice
    command_line: greet | hi
`

func setup(t *testing.T) (afero.Fs, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	stubs := gostub.Stub(&FS, fs)
	stubs.Stub(&builtin.Stdout, out)
	stubs.Stub(&builtin.Stderr, out)
	t.Cleanup(stubs.Reset)

	color.SetEnabled(false)

	return fs, out, logs
}

func TestNew_Macros(t *testing.T) {
	fs, out, logs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/relay.yaml", []byte(macroConfig), 0o644))

	ctx, s, err := New(context.Background(), Options{ConfigPath: "/etc/relay.yaml", LogLevel: "error", LogWriter: logs})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, 2, s.Config.Parallelism)

	c, err := s.Registry.Resolve("HI", 0)
	require.NoError(t, err)
	assert.Equal(t, "greet", c.ID().Primary())
	assert.Equal(t, "Macro for: echo hello | echo world", c.Description())

	rep, err := s.Engine.Execute(ctx, "twice")
	require.NoError(t, err)
	assert.Equal(t, []command.Identifier{command.ID("twice")}, rep.Executed())
	assert.Equal(t, "hello\nworld\nhello\nworld\n", out.String())
}

func TestNew_FlagsOverrideConfig(t *testing.T) {
	fs, _, logs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/relay.yaml", []byte(macroConfig), 0o644))

	_, s, err := New(context.Background(), Options{
		ConfigPath:  "/etc/relay.yaml",
		Parallelism: 7,
		LogLevel:    "error",
		LogWriter:   logs,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, 7, s.Config.Parallelism)
}

func TestNew_Discover(t *testing.T) {
	fs, _, logs := setup(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(wd, "relay.hcl"), []byte(`parallelism = 3`), 0o644))

	_, s, err := New(context.Background(), Options{LogLevel: "error", LogWriter: logs})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, 3, s.Config.Parallelism)
}

func TestNew_Errors(t *testing.T) {
	fs, _, logs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("macros:\n  - name: loop\n    command_line: loop\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/clash.yaml", []byte("macros:\n  - name: echo\n    command_line: print x\n"), 0o644))

	_, _, err := New(context.Background(), Options{ConfigPath: "/missing.yaml", LogWriter: logs})
	require.ErrorIs(t, err, config.ErrReadConfig)

	_, _, err = New(context.Background(), Options{ConfigPath: "/bad.yaml", LogWriter: logs})
	require.ErrorIs(t, err, config.ErrCircularMacro)

	_, _, err = New(context.Background(), Options{ConfigPath: "/clash.yaml", LogLevel: "error", LogWriter: logs})
	require.ErrorIs(t, err, command.ErrRegistry)

	require.NoError(t, afero.WriteFile(fs, "/ok.yaml", []byte("parallelism: 1\n"), 0o644))
	_, _, err = New(context.Background(), Options{ConfigPath: "/ok.yaml", LogFormat: "xml", LogWriter: logs})
	require.Error(t, err)
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrNoState)

	s := &State{}
	got, err := FromContext(WithState(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestWriteReports(t *testing.T) {
	fs, _, logs := setup(t)

	ctx, s, err := New(context.Background(), Options{ConfigPath: "", OutFile: "/results.bin", LogLevel: "error", LogWriter: logs})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	first, err := s.Engine.Execute(ctx, "echo one")
	require.NoError(t, err)

	second, err := s.Engine.Execute(ctx, "fail boom")
	require.Error(t, err)

	empty, err := s.Engine.Execute(ctx, "   ")
	require.NoError(t, err)

	text := &bytes.Buffer{}
	require.NoError(t, s.WriteReports(text, first, second, empty, nil))

	assert.Contains(t, text.String(), "run "+first.RunID)
	assert.Contains(t, text.String(), "run "+second.RunID)
	assert.Contains(t, text.String(), "boom")

	f, err := fs.Open("/results.bin")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	results, err := engine.ReadGob(f)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Status.IsError())
	assert.True(t, results[1].Status.IsError())
}

func TestNew_Progress(t *testing.T) {
	setup(t)

	events := &bytes.Buffer{}

	ctx, s, err := New(context.Background(), Options{LogLevel: "error", Progress: true, ProgressWriter: events, LogWriter: &bytes.Buffer{}})
	require.NoError(t, err)

	_, err = s.Engine.Execute(ctx, "echo hi | fail no")
	require.Error(t, err)
	require.NoError(t, s.Close())

	assert.Contains(t, events.String(), "▶ echo #0 (sequential) started\n")
	assert.Contains(t, events.String(), "✓ echo #0 (sequential) completed in ")
	assert.Contains(t, events.String(), "✗ fail #1 (sequential) failed in ")
}

func TestNew_FailureLogging(t *testing.T) {
	setup(t)

	logs := &bytes.Buffer{}

	ctx, s, err := New(context.Background(), Options{LogLevel: "warn", LogFormat: "json", LogWriter: logs})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Engine.Execute(ctx, "fail boom")
	require.ErrorIs(t, err, engine.ErrCommandsFailed)
	assert.Equal(t, 1, strings.Count(logs.String(), `"msg":"command failed"`))
	assert.Contains(t, logs.String(), `"level":"ERROR"`)

	logs.Reset()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()

	report, err := s.Engine.Execute(cctx, "sleep 1m")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, engine.ErrCommandsFailed)
	assert.Equal(t, engine.StatusCancelled, report.Outcomes[0].Status)
	assert.Equal(t, 1, strings.Count(logs.String(), `"msg":"command cancelled"`))
	assert.NotContains(t, logs.String(), "command failed")
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}
