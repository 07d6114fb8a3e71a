// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
)

// MaxMacroDepth is the longest chain of macros calling macros that Validate accepts.
const MaxMacroDepth = 100

var (
	// ErrInvalidConfig is the category of every validation error.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrCircularMacro is returned when macros call each other in a loop.
	ErrCircularMacro = errors.New("circular dependency between macros")
	// ErrMacroTooDeep is returned when macros nest deeper than MaxMacroDepth.
	ErrMacroTooDeep = errors.New("macros nest too deeply")
)

var (
	logLevels  = []string{"", "debug", "info", "warn", "error"}
	logFormats = []string{"", "pretty", "json"}
)

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Parallelism < 0 {
		result = multierror.Append(result, fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism))
	}

	if c.Log != nil {
		if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
			result = multierror.Append(result, fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Log.Level))
		}

		if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
			result = multierror.Append(result, fmt.Errorf("log format %q is not one of pretty, json", c.Log.Format))
		}

		if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
			result = multierror.Append(result, errors.New("log rotation settings must not be negative"))
		}
	}

	owner := make(map[string]string)

	for i, m := range c.Macros {
		if strings.TrimSpace(m.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("macro %d has no name", i))
			continue
		}

		for _, n := range m.Names() {
			n = strings.ToLower(n)
			if first, ok := owner[n]; ok {
				result = multierror.Append(result, fmt.Errorf("macro %q: name %q is already used by macro %q", m.Name, n, first))
				continue
			}

			owner[n] = m.Name
		}

		lines, err := cmdline.Parse(m.CommandLine)

		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("macro %q: %w", m.Name, err))
		case len(lines) == 0:
			result = multierror.Append(result, fmt.Errorf("macro %q has an empty command line", m.Name))
		}
	}

	if result == nil {
		if err := c.checkMacroGraph(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}

// checkMacroGraph walks the macro call graph depth first. Command lines
// must already be known to parse.
func (c *Config) checkMacroGraph() error {
	index := make(map[string]int)

	for i, m := range c.Macros {
		for _, n := range m.Names() {
			index[strings.ToLower(n)] = i
		}
	}

	calls := make([][]int, len(c.Macros))

	for i, m := range c.Macros {
		lines, _ := cmdline.Parse(m.CommandLine)
		for _, l := range lines {
			if j, ok := index[strings.ToLower(l.Name())]; ok {
				calls[i] = append(calls[i], j)
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]int, len(c.Macros))

	var (
		stack []int
		visit func(i int) error
	)

	visit = func(i int) error {
		if len(stack) >= MaxMacroDepth {
			return fmt.Errorf("%w: %s", ErrMacroTooDeep, c.formatPath(stack))
		}

		state[i] = visiting
		stack = append(stack, i)

		for _, j := range calls[i] {
			switch state[j] {
			case visiting:
				start := slices.Index(stack, j)
				return fmt.Errorf("%w: %s", ErrCircularMacro, c.formatPath(append(slices.Clone(stack[start:]), j)))
			case unvisited:
				if err := visit(j); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[i] = done

		return nil
	}

	for i := range c.Macros {
		if state[i] == unvisited {
			if err := visit(i); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Config) formatPath(path []int) string {
	names := make([]string, len(path))
	for i, idx := range path {
		names[i] = c.Macros[idx].Name
	}

	return strings.Join(names, " → ")
}
