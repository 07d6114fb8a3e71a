// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package list

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deployParams struct {
	Target  string        `position:"1" desc:"where to deploy"`
	Files   []string      `position:"2" default:"" desc:"files to upload"`
	Env     string        `arg:"env,e" required:"true" desc:"environment"`
	Retries []int         `default:"1,2"`
	Timeout time.Duration `default:"30s"`
	DryRun  bool          `arg:"dry-run,n"`
}

func deployCommand(t *testing.T) command.Command {
	t.Helper()

	c, err := command.New(command.ID("deploy", "dep"), "Deploy files",
		command.HandlerFunc[deployParams](func(context.Context, *deployParams) error { return nil }))
	require.NoError(t, err)

	return c
}

func TestUsage(t *testing.T) {
	assert.Equal(t,
		"deploy <target> [<files>...] --env <string> [--retries <list of integer>] [--timeout <duration>] [--dry-run]",
		Usage(deployCommand(t)))
}

func TestCommandsTable(t *testing.T) {
	out := CommandsTable([]command.Command{deployCommand(t)})

	for _, s := range []string{"COMMAND", "ALIASES", "DESCRIPTION", "USAGE", "deploy", "dep", "Deploy files", "--env <string>"} {
		assert.Contains(t, out, s)
	}
}

func TestParametersTable(t *testing.T) {
	out := ParametersTable(deployCommand(t))

	for _, s := range []string{"PARAMETER", "target", "files", "dry-run", "n", "where to deploy", "1,2", "30s", "list of integer"} {
		assert.Contains(t, out, s)
	}

	assert.NotContains(t, out, "#1")
}
