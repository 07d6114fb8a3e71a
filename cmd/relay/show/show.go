// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show provides the show command, which prints results saved with --out.
package show

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/engine"
	"github.com/urfave/cli/v3"
)

const fileArg = "file"

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrWriteResults is returned when the results cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// NewShowCmd returns the command that shows previously saved results.
func NewShowCmd() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show previously saved results",
		Description: "Show results saved with the global --out flag.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      fileArg,
				UsageText: "FILE",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	name := cmd.StringArg(fileArg)
	if name == "" {
		return cli.Exit("Please provide the results file to show", 1)
	}

	file, err := appstate.FS.Open(name)
	if err != nil {
		return cli.Exit(errors.Join(ErrReadFile, err).Error(), 1)
	}
	defer file.Close() // nolint:errcheck

	results, err := engine.ReadGob(file)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := engine.DefaultOutputOptions()
	opts.ShowSuccessDetails = cmd.Bool(appstate.OutputSuccessDetailsFlag)

	if err := engine.WriteText(cmd.Root().Writer, results, opts); err != nil {
		return cli.Exit(errors.Join(ErrWriteResults, err).Error(), 1)
	}

	return nil
}
