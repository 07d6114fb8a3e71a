// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execute

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/builtin"
	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// run executes the CLI with args and returns the results text, the output
// of the built-in commands and the exit error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	results := &bytes.Buffer{}
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

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
		Commands:       []*cli.Command{NewExecCmd()},
		Writer:         results,
		ErrWriter:      logs,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"relay", "--log-level", "error"}, args...))

	return results.String(), out.String(), err
}

func TestExec(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantOut string
		wantErr bool
		results []string
	}{
		{
			name:    "line flag",
			args:    []string{"exec", "--line", `echo "hello world" | echo again`},
			wantOut: "hello world\nagain\n",
			results: []string{"✓ run ", "✓ sequential"},
		},
		{
			name:    "arguments",
			args:    []string{"exec", "--", "echo", "one", "|", "print", "two"},
			wantOut: "one\ntwo\n",
		},
		{
			name:    "failing command",
			args:    []string{"exec", "-l", "fail broken | echo never"},
			wantErr: true,
			results: []string{"✗ fail broken", "➜ Error:", "broken", "~ echo never"},
		},
		{
			name:    "unknown command",
			args:    []string{"exec", "-l", "ehco hi"},
			wantErr: true,
		},
		{
			name:    "no command line",
			args:    []string{"exec"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results, out, err := run(t, tc.args...)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.wantOut, out)

			for _, r := range tc.results {
				assert.Contains(t, results, r)
			}
		})
	}
}
