// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/builtin"
	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/matt-FFFFFF/relay/internal/script"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	stubs := gostub.Stub(&appstate.FS, afero.NewMemMapFs())
	stubs.Stub(&builtin.Stdout, out)
	stubs.Stub(&builtin.Stderr, out)
	t.Cleanup(stubs.Reset)

	color.SetEnabled(false)

	root := &cli.Command{
		Name:           "relay",
		Flags:          appstate.Flags(),
		Before:         appstate.Before,
		After:          appstate.After,
		Commands:       []*cli.Command{NewRunCmd()},
		Writer:         &bytes.Buffer{},
		ErrWriter:      &bytes.Buffer{},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"relay", "--log-level", "error"}, args...))

	return out.String(), err
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "single script",
			args: []string{"run", "-f", "./testdata/ok.relay"},
			want: "one\ntwo\nthree\n",
		},
		{
			name:    "stops at first failure",
			args:    []string{"run", "-f", "./testdata/failing.relay", "-f", "./testdata/ok.relay"},
			want:    "hello\n",
			wantErr: true,
		},
		{
			name:    "keep going",
			args:    []string{"run", "--keep-going", "-f", "./testdata/failing.relay", "-f", "./testdata/ok.relay"},
			want:    "hello\nafter\none\ntwo\nthree\n",
			wantErr: true,
		},
		{
			name:    "missing script",
			args:    []string{"run", "-f", "./testdata/missing.relay"},
			wantErr: true,
		},
		{
			name:    "no script",
			args:    []string{"run"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRunScripts_Cancelled(t *testing.T) {
	stubs := gostub.Stub(&appstate.FS, afero.NewMemMapFs())
	t.Cleanup(stubs.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctx, s, err := appstate.New(ctx, appstate.Options{LogLevel: "error", LogWriter: &bytes.Buffer{}})
	require.NoError(t, err)

	scripts := []*script.Script{{
		Source: "inline",
		Lines:  []script.Line{{Number: 1, Text: "echo never"}},
	}}

	reports, failed := runScripts(ctx, s.Engine, scripts, true)
	assert.Empty(t, reports)
	assert.True(t, failed)
}
