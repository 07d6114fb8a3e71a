// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run provides the run command, which executes relay scripts.
package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/engine"
	"github.com/matt-FFFFFF/relay/internal/script"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag      = "file"
	keepGoingFlag = "keep-going"
	cliExitStr    = ""
)

// NewRunCmd returns the command that runs one or more script files.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the command lines of one or more script files",
		Description: `Run every command line of the given script files, in order.

Blank lines and lines starting with # are ignored. Each remaining line is
executed on its own; by default the run stops after the first line with a
failed command.

Script URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage: "Specify the URL of the script to run. " +
					"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
					"Specify multiple times to run multiple files.",
			},
			&cli.BoolFlag{
				Name:        keepGoingFlag,
				Aliases:     []string{"k"},
				Usage:       "Continue with the next line after a line fails",
				DefaultText: "false",
				Value:       false,
				OnlyOnce:    true,
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

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		ctxlog.Error(ctx, "Please specify at least one script URL using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	scripts := make([]*script.Script, 0, len(urls))

	for i, u := range urls {
		if u == "" {
			ctxlog.Error(ctx, fmt.Sprintf("The URL at index %d is empty. Please provide a valid URL.", i))
			return cli.Exit(cliExitStr, 1)
		}

		sc, err := script.Load(ctx, u)
		if err != nil {
			ctxlog.Error(ctx, "Failed to load script", "url", u, "error", err)
			return cli.Exit(cliExitStr, 1)
		}

		scripts = append(scripts, sc)
	}

	reports, failed := runScripts(ctx, s.Engine, scripts, cmd.Bool(keepGoingFlag))

	if err := s.WriteReports(cmd.Root().Writer, reports...); err != nil {
		ctxlog.Error(ctx, "Failed to write results", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	if failed {
		ctxlog.Error(ctx, "Some command lines failed. See above for details.")
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// runScripts executes the lines of every script in order. It stops at the
// first failing line unless keepGoing is set, and always stops once ctx is done.
func runScripts(ctx context.Context, eng *engine.Engine, scripts []*script.Script, keepGoing bool) ([]*engine.Report, bool) {
	var (
		reports []*engine.Report
		failed  bool
	)

	for _, sc := range scripts {
		for _, line := range sc.Lines {
			if ctx.Err() != nil {
				ctxlog.Warn(ctx, "Run cancelled, remaining lines were not executed", "script", sc.Source, "line", line.Number)
				return reports, true
			}

			lctx := ctxlog.With(ctx, "script", sc.Source, "line", line.Number)

			rep, err := eng.Execute(lctx, line.Text)
			reports = append(reports, rep)

			if err == nil {
				continue
			}

			failed = true

			ctxlog.Error(lctx, "Command line failed", "error", err)

			if !keepGoing {
				return reports, true
			}
		}
	}

	return reports, failed
}
