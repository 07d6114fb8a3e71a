// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package appstate builds the state shared by the relay subcommands:
// configuration, logger, command registry and engine.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/relay/internal/builtin"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/config"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
	"github.com/matt-FFFFFF/relay/internal/engine"
	"github.com/matt-FFFFFF/relay/internal/progress"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// Global flag names.
const (
	ConfigFlag               = "config"
	ParallelismFlag          = "parallelism"
	LogLevelFlag             = "log-level"
	LogFormatFlag            = "log-format"
	LogFileFlag              = "log-file"
	OutFlag                  = "out"
	OutputSuccessDetailsFlag = "output-success-details"
	ProgressFlag             = "progress"
)

const progressBufferSize = 256

var (
	// ErrNoState is returned when a subcommand runs without the root Before hook.
	ErrNoState = errors.New("application state not initialised")
	// ErrWriteResults is returned when results cannot be written.
	ErrWriteResults = errors.New("failed to write results")
)

// FS is the filesystem configuration files are read from.
var FS = afero.NewOsFs()

// Flags returns the global flags understood by Before.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ConfigFlag,
			Aliases:   []string{"c"},
			Usage:     "Configuration file (.yaml, .yml or .hcl). Defaults to relay.yaml, relay.yml or relay.hcl in the working directory.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.IntFlag{
			Name:    ParallelismFlag,
			Aliases: []string{"p"},
			Usage: "Set the maximum number of async commands to run at once. " +
				"Defaults to the number of CPU cores available.",
			Value: 0,
		},
		&cli.StringFlag{
			Name:    LogLevelFlag,
			Usage:   "Log level: debug, info, warn or error",
			Sources: cli.EnvVars(ctxlog.LevelEnvVar),
		},
		&cli.StringFlag{
			Name:  LogFormatFlag,
			Usage: "Console log format: pretty or json",
		},
		&cli.StringFlag{
			Name:      LogFileFlag,
			Usage:     "Also write JSON logs to this file, rotated by size",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      OutFlag,
			Usage:     "Write the results in binary form to this file; view them with 'relay show'",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:        OutputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful results in the output",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        ProgressFlag,
			Usage:       "Print a line to stderr as each command starts and finishes",
			DefaultText: "false",
			Value:       false,
		},
	}
}

// Options are the settings that override the configuration file.
type Options struct {
	ConfigPath         string
	Parallelism        int
	LogLevel           string
	LogFormat          string
	LogFile            string
	OutFile            string
	ShowSuccessDetails bool
	Progress           bool
	ProgressWriter     io.Writer
	LogWriter          io.Writer
}

// State is shared by all subcommands of one process.
type State struct {
	Config   *config.Config
	Registry *command.Registry
	Engine   *engine.Engine
	Options  Options

	reporter progress.Reporter
	closer   io.Closer
}

type stateKey struct{}

// Before is the root command's Before hook. It builds the State from the
// global flags and stores it, and the configured logger, in the context.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	opts := Options{
		ConfigPath:         cmd.String(ConfigFlag),
		Parallelism:        cmd.Int(ParallelismFlag),
		LogLevel:           cmd.String(LogLevelFlag),
		LogFormat:          cmd.String(LogFormatFlag),
		LogFile:            cmd.String(LogFileFlag),
		OutFile:            cmd.String(OutFlag),
		ShowSuccessDetails: cmd.Bool(OutputSuccessDetailsFlag),
		Progress:           cmd.Bool(ProgressFlag),
		ProgressWriter:     cmd.ErrWriter,
		LogWriter:          cmd.ErrWriter,
	}

	ctx, s, err := New(ctx, opts)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	return WithState(ctx, s), nil
}

// After is the root command's After hook. It closes the State.
func After(ctx context.Context, _ *cli.Command) error {
	s, err := FromContext(ctx)
	if err != nil {
		return nil //nolint:nilerr
	}

	return s.Close()
}

// New loads the configuration, sets up logging and registers the built-in
// commands and configured macros. The returned context carries the logger.
func New(ctx context.Context, opts Options) (context.Context, *State, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return ctx, nil, err
	}

	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}

	logOpts := ctxlog.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Writer:     opts.LogWriter,
	}

	if opts.LogLevel != "" {
		logOpts.Level = opts.LogLevel
	}

	if opts.LogFormat != "" {
		logOpts.Format = opts.LogFormat
	}

	if opts.LogFile != "" {
		logOpts.File = opts.LogFile
	}

	logger, closer, err := ctxlog.Setup(logOpts)
	if err != nil {
		return ctx, nil, err
	}

	ctx = ctxlog.New(ctx, logger)

	reg := command.NewRegistry()
	if err := reg.RegisterAll(builtin.Commands()...); err != nil {
		closer.Close() //nolint:errcheck
		return ctx, nil, err
	}

	var reporter progress.Reporter = progress.NullReporter{}

	if opts.Progress {
		w := opts.ProgressWriter
		if w == nil {
			w = os.Stderr
		}

		cr := progress.NewChannelReporter(ctx, progressBufferSize)
		cr.Listen(progress.NewWriterListener(w))
		reporter = cr
	}

	eng := engine.New(reg,
		engine.WithParallelism(cfg.Parallelism),
		engine.WithReporter(reporter),
		engine.WithFailureFunc(func(id command.Identifier, err error) {
			if errors.Is(err, engine.ErrCancelled) {
				logger.Debug("command cancelled", "command", id.Primary(), "error", err)
				return
			}

			logger.Error("command failed", "command", id.Primary(), "error", err)
		}),
	)

	s := &State{
		Config:   cfg,
		Registry: reg,
		Engine:   eng,
		Options:  opts,
		reporter: reporter,
		closer:   closer,
	}

	if err := registerMacros(reg, eng, cfg.Macros); err != nil {
		s.Close() //nolint:errcheck
		return ctx, nil, err
	}

	return ctx, s, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(FS, path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(config.ErrReadConfig, err)
	}

	if found, ok := config.Discover(FS, wd); ok {
		return config.Load(FS, found)
	}

	return config.Default(), nil
}

func registerMacros(reg *command.Registry, r builtin.Runner, macros []*config.Macro) error {
	for _, m := range macros {
		id, err := cmdline.NewName(m.Names()...)
		if err != nil {
			return fmt.Errorf("macro %q: %w", m.Name, err)
		}

		c, err := builtin.Macro(id, m.Description, m.CommandLine, r)
		if err != nil {
			return err
		}

		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// WithState returns a copy of ctx carrying s.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// FromContext returns the State stored by Before.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(stateKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoState
	}

	return s, nil
}

// Close waits for pending progress output and flushes the log file, if any.
func (s *State) Close() error {
	if s.reporter != nil {
		s.reporter.Close()
	}

	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

// WriteReports renders the reports as text to w and, when an output file
// was requested, writes them in binary form to that file.
func (s *State) WriteReports(w io.Writer, reports ...*engine.Report) error {
	var results engine.Results

	for _, r := range reports {
		if r == nil || len(r.Outcomes) == 0 {
			continue
		}

		results = append(results, r.Results()...)
	}

	if s.Options.OutFile != "" {
		if err := writeGobFile(s.Options.OutFile, results); err != nil {
			return err
		}
	}

	opts := engine.DefaultOutputOptions()
	opts.ShowSuccessDetails = s.Options.ShowSuccessDetails

	if err := engine.WriteText(w, results, opts); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}

func writeGobFile(name string, results engine.Results) error {
	f, err := FS.Create(name)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	defer f.Close() //nolint:errcheck

	if err := engine.WriteGob(f, results); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}
