// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parse

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/matt-FFFFFF/relay/internal/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.SetEnabled(false)

	out := &bytes.Buffer{}
	root := &cli.Command{
		Name:           "relay",
		Commands:       []*cli.Command{NewParseCmd()},
		Writer:         out,
		ErrWriter:      &bytes.Buffer{},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"relay"}, args...))

	return out.String(), err
}

func TestDescribe(t *testing.T) {
	tokens, err := tokenizer.Tokenize(`deploy site --env prod | notify --async`)
	require.NoError(t, err)

	d := Describe(tokens)

	toks := d["tokens"].([]any)
	require.Len(t, toks, 7)
	assert.Equal(t, map[string]any{"kind": "LongArgument", "text": "env", "offset": number(12)}, toks[2])

	lines := d["lines"].([]any)
	require.Len(t, lines, 2)

	first := lines[0].(map[string]any)
	assert.Equal(t, "deploy", first["command"])
	assert.Equal(t, false, first["async"])
	assert.Len(t, first["arguments"], 2)

	second := lines[1].(map[string]any)
	assert.Equal(t, "notify", second["command"])
	assert.Equal(t, true, second["async"])
	assert.Equal(t, number(1), second["position"])
}

func TestRender(t *testing.T) {
	tokens, err := tokenizer.Tokenize(`echo "a b"`)
	require.NoError(t, err)

	out, err := Render(tokens, true)
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "a b"`)
	assert.Contains(t, out, `"command": "echo"`)
	assert.NotContains(t, out, "\x1b[")
}

func TestParseCmd(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		contains string
		wantErr  bool
	}{
		{
			name:     "normalize line",
			args:     []string{"parse", "--normalize", "--line", `build   "x y"  -v |  deploy`},
			contains: "build \"x y\" -v | deploy\n",
		},
		{
			name:     "normalize args",
			args:     []string{"parse", "--normalize", "--", "build", "x y", "|", "deploy"},
			contains: "build \"x y\" | deploy\n",
		},
		{
			name:     "tree",
			args:     []string{"parse", "-l", "echo hi"},
			contains: `"kind": "Value"`,
		},
		{
			name:    "tokenize error",
			args:    []string{"parse", "-l", `echo "open`},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out, tc.contains)
		})
	}
}
