// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the relay command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/relay"
	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/cmd/relay/execute"
	"github.com/matt-FFFFFF/relay/cmd/relay/list"
	"github.com/matt-FFFFFF/relay/cmd/relay/parse"
	"github.com/matt-FFFFFF/relay/cmd/relay/repl"
	"github.com/matt-FFFFFF/relay/cmd/relay/run"
	"github.com/matt-FFFFFF/relay/cmd/relay/show"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			execute.NewExecCmd(),
			run.NewRunCmd(),
			repl.NewReplCmd(),
			list.NewListCmd(),
			parse.NewParseCmd(),
			show.NewShowCmd(),
		},
		Flags:     appstate.Flags(),
		Before:    appstate.Before,
		After:     appstate.After,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "relay",
		Description: `Relay runs command lines made of named commands joined by pipes.
Each segment is bound to the parameters of a registered command; segments
marked --async run concurrently after the sequential ones have finished.
Commands can be the built-in ones or macros defined in a YAML or HCL
configuration file.`,
		Usage:     "relay exec --line 'echo hello | sleep 1s --async'",
		Version:   fmt.Sprintf("%s (commit: %s)", relay.Version, relay.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func main() {
	ctx, cancel := context.WithCancelCause(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel(nil)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Warn("command terminated due to cancellation", "error", context.Cause(ctx))
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
