// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"time"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/teewriter"
)

const (
	// waitDelay is how long a cancelled program may take to exit after the
	// interrupt before it is killed.
	waitDelay = 5 * time.Second
	// maxOutputInError bounds the output quoted in an exit code error.
	maxOutputInError = 200
)

var (
	// ErrCouldNotStartProcess is returned when the program could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrExitCode is returned when the program exits with a code not listed as success.
	ErrExitCode = errors.New("process exited with unexpected code")
)

type execParams struct {
	Program          string   `position:"1" desc:"program to run, looked up in PATH"`
	Args             []string `position:"2" default:"" desc:"arguments, place them after -- when they start with a dash"`
	Dir              string   `arg:"dir,d" desc:"working directory"`
	Env              []string `arg:"env,e" desc:"extra environment variables as KEY=VALUE"`
	SuccessExitCodes []int    `default:"0" desc:"exit codes that count as success"`
}

var execHandler = command.HandlerFunc[execParams](func(ctx context.Context, p *execParams) error {
	logger := ctxlog.Logger(ctx).With("program", p.Program)

	cmd := exec.CommandContext(ctx, p.Program, p.Args...)
	cmd.Dir = p.Dir
	cmd.Env = append(os.Environ(), p.Env...)
	cmd.Stdin = os.Stdin
	stderr := teewriter.New(Stderr)

	cmd.Stdout = Stdout
	cmd.Stderr = stderr

	if sameWriter(Stdout, Stderr) {
		cmd.Stdout = stderr
	}
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = waitDelay

	logger.Debug("starting process", "args", p.Args, "dir", p.Dir)

	if err := cmd.Start(); err != nil {
		return errors.Join(ErrCouldNotStartProcess, err)
	}

	err := cmd.Wait()

	code := cmd.ProcessState.ExitCode()
	logger.Debug("process finished", "exitCode", code)

	if ctx.Err() != nil {
		return errors.Join(ctx.Err(), err)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}

	if !slices.Contains(p.SuccessExitCodes, code) {
		if tail := stderr.Tail(maxOutputInError); tail != "" {
			return fmt.Errorf("%w: %s exited with %d: %s", ErrExitCode, p.Program, code, tail)
		}

		return fmt.Errorf("%w: %s exited with %d", ErrExitCode, p.Program, code)
	}

	return nil
})

// sameWriter reports whether a and b are the same writer. Uncomparable
// writers are never the same.
func sameWriter(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()

	return a == b
}
