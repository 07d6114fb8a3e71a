// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parse provides the parse command, which shows how a command line
// is tokenized and parsed without running it.
package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
	"github.com/matt-FFFFFF/relay/internal/color"
	"github.com/matt-FFFFFF/relay/internal/tokenizer"
	"github.com/urfave/cli/v3"
)

const (
	lineFlag      = "line"
	normalizeFlag = "normalize"
)

// ErrRender is returned when the parse tree cannot be rendered.
var ErrRender = errors.New("failed to render parse result")

// NewParseCmd returns the command that prints the tokens and command lines of its input.
func NewParseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Show how a command line is tokenized and parsed",
		UsageText: "relay parse [--normalize] [--line LINE] [-- ARGS...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     lineFlag,
				Aliases:  []string{"l"},
				Usage:    "The command line to parse",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:        normalizeFlag,
				Usage:       "Print the command line rebuilt from its tokens instead of the parse tree",
				DefaultText: "false",
				Value:       false,
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	var (
		tokens []tokenizer.Token
		err    error
	)

	args := cmd.Args().Slice()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if line := cmd.String(lineFlag); line != "" {
		tokens, err = tokenizer.Tokenize(line)
	} else {
		tokens, err = tokenizer.TokenizeArgs(args)
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	w := cmd.Root().Writer

	if cmd.Bool(normalizeFlag) {
		fmt.Fprintln(w, tokenizer.Join(tokens)) //nolint:errcheck
		return nil
	}

	out, err := Render(tokens, !color.Enabled())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(w, out) //nolint:errcheck

	return nil
}

// Render formats the tokens and the command lines parsed from them as
// indented JSON.
func Render(tokens []tokenizer.Token, noColour bool) (string, error) {
	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = noColour

	b, err := f.Marshal(Describe(tokens))
	if err != nil {
		return "", errors.Join(ErrRender, err)
	}

	return string(b), nil
}

// Describe converts tokens and their command lines to plain JSON values.
func Describe(tokens []tokenizer.Token) map[string]any {
	toks := make([]any, len(tokens))
	for i, t := range tokens {
		toks[i] = map[string]any{
			"kind":   t.Kind.String(),
			"text":   t.Text,
			"offset": number(t.Offset),
		}
	}

	lines := cmdline.ParseTokens(tokens)
	out := make([]any, len(lines))

	for i, l := range lines {
		args := make([]any, len(l.Arguments))
		for j, a := range l.Arguments {
			values := make([]any, len(a.Values))
			for k, v := range a.Values {
				values[k] = v
			}

			args[j] = map[string]any{
				"name":   a.Name.String(),
				"kind":   a.Kind.String(),
				"values": values,
			}
		}

		line := map[string]any{
			"position":  number(l.Position),
			"command":   l.Name(),
			"arguments": args,
		}

		if async, err := l.Async(); err != nil {
			line["async"] = err.Error()
		} else {
			line["async"] = async
		}

		out[i] = line
	}

	return map[string]any{
		"tokens": toks,
		"lines":  out,
	}
}

func number(n int) json.Number {
	return json.Number(strconv.Itoa(n))
}
