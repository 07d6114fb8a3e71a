// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl provides an interactive prompt that executes command lines.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const (
	historyFlag = "history"
	prompt      = "relay> "
	pipe        = "|"
)

var exitWords = []string{"exit", "quit"}

// Prompter reads lines from the user.
type Prompter interface {
	Prompt(p string) (string, error)
	AppendHistory(item string)
}

// NewReplCmd returns the interactive prompt command.
func NewReplCmd() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive prompt",
		Description: `Start an interactive prompt. Every line entered is executed as a command line.
Command names complete with Tab. Type exit or quit, or press Ctrl+D, to leave.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      historyFlag,
				Usage:     "History file. Defaults to .relay_history in the home directory.",
				TakesFile: true,
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

	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)
	line.SetWordCompleter(Completer(s.Registry.Aliases()))

	history := historyPath(cmd.String(historyFlag))
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f) //nolint:errcheck
			f.Close()           //nolint:errcheck
		}
	}

	w := cmd.Root().Writer

	fmt.Fprintln(w, "Entering interactive mode, type `exit` or `quit` or press Ctrl+D to leave.") //nolint:errcheck

	err = Loop(ctx, line, w, func(ctx context.Context, input string) error {
		rep, err := s.Engine.Execute(ctx, input)
		if werr := s.WriteReports(w, rep); werr != nil {
			return werr
		}

		return err
	})

	if history != "" {
		if f, ferr := os.Create(history); ferr == nil {
			line.WriteHistory(f) //nolint:errcheck
			f.Close()            //nolint:errcheck
		}
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// Loop prompts for lines and passes each non-empty one to exec until the
// user exits, input ends or ctx is done. Failures of exec are logged and
// do not end the loop.
func Loop(ctx context.Context, p Prompter, w io.Writer, exec func(context.Context, string) error) error {
	for ctx.Err() == nil {
		input, err := p.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(w, "Aborted") //nolint:errcheck
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("error reading line: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if slices.Contains(exitWords, strings.ToLower(input)) {
			return nil
		}

		p.AppendHistory(input)

		if err := exec(ctx, input); err != nil {
			ctxlog.Error(ctx, "Command line failed", "error", err)
		}
	}

	return nil
}

// Completer completes the command name of the last pipe segment.
func Completer(names []string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head := line[:pos]
		tail := line[pos:]

		start := strings.LastIndex(head, pipe) + 1
		segment := strings.TrimLeft(head[start:], " \t")

		if strings.ContainsAny(segment, " \t") {
			return head, nil, tail
		}

		var matches []string

		for _, n := range names {
			if strings.HasPrefix(n, strings.ToLower(segment)) {
				matches = append(matches, n+" ")
			}
		}

		return head[:len(head)-len(segment)], matches, tail
	}
}

func historyPath(flag string) string {
	if flag != "" {
		return flag
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".relay_history")
}
