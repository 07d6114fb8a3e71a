// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/relay/internal/binding"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/progress"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is the size of the async worker pool when none is configured.
var DefaultParallelism = runtime.NumCPU()

// Resolver finds the command registered under a name.
type Resolver interface {
	Resolve(name string, position int) (command.Command, error)
}

// FailureFunc receives every failed or cancelled command. Calls are serialized.
// The engine logs cancellations at warn level and failures only at debug level,
// leaving failure reporting to the FailureFunc.
type FailureFunc func(id command.Identifier, err error)

// Engine runs command lines. It is safe for concurrent use.
type Engine struct {
	resolver    Resolver
	binder      *binding.Binder
	parallelism int
	onFailure   FailureFunc
	reporter    progress.Reporter
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism sets the maximum number of async commands running at once.
// Values below 1 select DefaultParallelism.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// WithFailureFunc sets the callback that receives command failures.
func WithFailureFunc(f FailureFunc) Option {
	return func(e *Engine) {
		e.onFailure = f
	}
}

// WithReporter sets the reporter that receives command lifecycle events.
// The engine never closes it.
func WithReporter(r progress.Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithConverter sets the converter used to bind argument values.
func WithConverter(c binding.Converter) Option {
	return func(e *Engine) {
		e.binder = binding.NewBinder(c)
	}
}

// New returns an engine resolving commands with r.
func New(r Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver: r,
		binder:   binding.NewBinder(nil),
		reporter: progress.NullReporter{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// executable is a resolved command line.
type executable struct {
	cmd   command.Command
	line  *cmdline.CommandLine
	async bool
	out   *Outcome
	runID string
	// unbound is set when the arguments could not be bound and the handler never ran.
	unbound bool
}

// Execute parses input and runs every command line in it.
//
// Blank input returns an empty report and no error. If a line cannot be
// parsed or resolved nothing runs and the error is returned. Otherwise the
// error wraps ErrCommandsFailed when a command failed, and is the cause of
// ctx when commands were only cancelled or skipped because ctx was done.
func (e *Engine) Execute(ctx context.Context, input string) (*Report, error) {
	return e.run(ctx, func() ([]*cmdline.CommandLine, error) {
		return cmdline.Parse(input)
	})
}

// ExecuteArgs is Execute for pre-split arguments such as os.Args.
func (e *Engine) ExecuteArgs(ctx context.Context, args []string) (*Report, error) {
	return e.run(ctx, func() ([]*cmdline.CommandLine, error) {
		return cmdline.ParseArgs(args)
	})
}

func (e *Engine) run(ctx context.Context, parse func() ([]*cmdline.CommandLine, error)) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Phase: PhaseIdle}
	ctx = ctxlog.With(ctx, "run", report.RunID)

	report.setPhase(ctx, PhaseParsing)

	lines, err := parse()
	if err != nil {
		report.setPhase(ctx, PhaseFailed)
		return report, err
	}

	if len(lines) == 0 {
		ctxlog.Debug(ctx, "no commands to execute")
		report.setPhase(ctx, PhaseCompleted)

		return report, nil
	}

	report.setPhase(ctx, PhaseResolving)

	execs, err := e.resolve(lines)
	if err != nil {
		ctxlog.Error(ctx, "resolution failed, nothing was executed", "error", err)
		report.setPhase(ctx, PhaseFailed)

		return report, err
	}

	report.Outcomes = make([]*Outcome, len(execs))
	for i, x := range execs {
		x.runID = report.RunID
		report.Outcomes[i] = x.out
	}

	report.setPhase(ctx, PhaseExecuting)

	err = e.execute(ctx, execs)

	if err != nil || report.HasError() {
		report.setPhase(ctx, PhaseFailed)
	} else {
		report.setPhase(ctx, PhaseCompleted)
	}

	return report, err
}

// resolve maps every line to its command. All failures are returned together.
func (e *Engine) resolve(lines []*cmdline.CommandLine) ([]*executable, error) {
	var result *multierror.Error

	execs := make([]*executable, 0, len(lines))

	for _, line := range lines {
		name := line.Name()
		if name == "" {
			result = multierror.Append(result, &MissingNameError{Position: line.Position})
			continue
		}

		cmd, err := e.resolver.Resolve(name, line.Position)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		async, err := line.Async()
		if err != nil {
			result = multierror.Append(result, &InvalidAsyncError{Command: name, Position: line.Position, Err: err})
			continue
		}

		execs = append(execs, &executable{
			cmd:   cmd,
			line:  line,
			async: async,
			out: &Outcome{
				ID:       cmd.ID(),
				Position: line.Position,
				Line:     line.String(),
				Async:    async,
			},
		})
	}

	if result != nil {
		result.ErrorFormat = listFormat
		return nil, &ResolveError{Err: result}
	}

	return execs, nil
}

// execute runs the sequential group, then the concurrent group.
func (e *Engine) execute(ctx context.Context, execs []*executable) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		sequential []*executable
		concurrent []*executable
		mu         sync.Mutex
		failures   *multierror.Error
		faulted    bool
	)

	for _, x := range execs {
		if x.async {
			concurrent = append(concurrent, x)
		} else {
			sequential = append(sequential, x)
		}
	}

	fail := func(x *executable, err error) {
		mu.Lock()
		defer mu.Unlock()

		failures = multierror.Append(failures, err)
		faulted = faulted || x.out.Status == StatusFailed

		if e.onFailure != nil {
			e.onFailure(x.cmd.ID(), err)
		}
	}

	for _, x := range sequential {
		if ctx.Err() != nil {
			e.skip(ctx, x)
			continue
		}

		if err := e.invoke(ctx, x); err != nil {
			fail(x, err)

			if x.out.Status == StatusFailed && !x.unbound {
				cancel(err)
			}
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(e.workers())

	for _, x := range concurrent {
		g.Go(func() error {
			if ctx.Err() != nil {
				e.skip(ctx, x)
				return nil
			}

			if err := e.invoke(ctx, x); err != nil {
				fail(x, err)
			}

			return nil
		})
	}

	_ = g.Wait()

	if failures != nil && !faulted {
		return context.Cause(ctx)
	}

	if failures != nil {
		failures.ErrorFormat = listFormat
		return fmt.Errorf("%w: %w", ErrCommandsFailed, failures)
	}

	for _, x := range execs {
		if x.out.Status == StatusSkipped {
			return context.Cause(ctx)
		}
	}

	return nil
}

func (e *Engine) workers() int {
	if e.parallelism > 0 {
		return e.parallelism
	}

	if DefaultParallelism > 0 {
		return DefaultParallelism
	}

	return 1
}

// invoke binds and runs one command and records its outcome. The returned
// error, a *CommandError, is nil when the command succeeded.
func (e *Engine) invoke(ctx context.Context, x *executable) error {
	id := x.cmd.ID()
	cctx := ctxlog.With(ctx, "command", id.Primary(), "position", x.line.Position, "async", x.async)
	start := time.Now()

	ctxlog.Info(cctx, "executing command")
	e.emit(x, progress.EventStarted)

	params, err := e.binder.Bind(x.cmd.Schema(), x.line)
	x.unbound = err != nil

	if err == nil {
		err = command.Recover(id, x.cmd.Invoke)(cctx, params)
	}

	x.out.Duration = time.Since(start)

	if err == nil {
		x.out.Status = StatusSucceeded
		ctxlog.Debug(cctx, "command succeeded", "duration", x.out.Duration)
		e.emit(x, progress.EventCompleted)

		return nil
	}

	cmdErr := &CommandError{Command: id.Primary(), Position: x.line.Position, Err: err}
	x.out.Err = cmdErr

	if cancelled(ctx, err) {
		cmdErr.Cancelled = true
		x.out.Status = StatusCancelled
		ctxlog.Warn(cctx, "command cancelled", "cause", context.Cause(ctx))
		e.emit(x, progress.EventCancelled)
	} else {
		x.out.Status = StatusFailed
		ctxlog.Debug(cctx, "command failed", "error", err)
		e.emit(x, progress.EventFailed)
	}

	return x.out.Err
}

func (e *Engine) skip(ctx context.Context, x *executable) {
	x.out.Status = StatusSkipped
	x.out.Err = fmt.Errorf("%w: %w", ErrSkipped, context.Cause(ctx))
	ctxlog.Info(ctx, "command skipped", "command", x.cmd.ID().Primary(), "position", x.line.Position)
	e.emit(x, progress.EventSkipped)
}

func (e *Engine) emit(x *executable, t progress.EventType) {
	e.reporter.Report(progress.Event{
		RunID:     x.runID,
		Command:   x.cmd.ID().Primary(),
		Position:  x.line.Position,
		Async:     x.async,
		Type:      t,
		Err:       x.out.Err,
		Duration:  x.out.Duration,
		Timestamp: time.Now(),
	})
}

// cancelled reports whether err is the handler giving up because ctx is done.
func cancelled(ctx context.Context, err error) bool {
	if ctx.Err() == nil {
		return false
	}

	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Cause(ctx))
}
