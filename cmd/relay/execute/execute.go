// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execute provides the exec command, which runs a single command line.
package execute

import (
	"context"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/engine"
	"github.com/urfave/cli/v3"
)

const (
	lineFlag   = "line"
	cliExitStr = ""
)

// NewExecCmd returns the command that runs one command line given as
// arguments or as a string.
func NewExecCmd() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run a command line",
		UsageText: "relay exec [--line LINE] [-- COMMAND [ARGS...] [| COMMAND [ARGS...]]...]",
		Description: `Run a command line and print the results.

The command line is either given as a single string with --line, which is
tokenized like a shell would (quotes, pipes), or as the arguments after --.
Pipes separate commands; each segment is a separate argument when the line
is given as arguments:

  relay exec --line 'build --verbose | deploy --env prod --async'
  relay exec -- build --verbose '|' deploy --env prod --async
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     lineFlag,
				Aliases:  []string{"l"},
				Usage:    "The command line to run",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	s, err := appstate.FromContext(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	line := cmd.String(lineFlag)
	args := cmd.Args().Slice()

	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	if line == "" && len(args) == 0 {
		ctxlog.Error(ctx, "Please provide a command line with --line or after --.")
		return cli.Exit(cliExitStr, 1)
	}

	var rep *engine.Report

	if line != "" {
		rep, err = s.Engine.Execute(ctx, line)
	} else {
		rep, err = s.Engine.ExecuteArgs(ctx, args)
	}

	if werr := s.WriteReports(cmd.Root().Writer, rep); werr != nil {
		ctxlog.Error(ctx, "Failed to write results", "error", werr)
		return cli.Exit(cliExitStr, 1)
	}

	if err != nil {
		ctxlog.Error(ctx, "Command line failed", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
