// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/relay/internal/tokenizer"
)

// CommandArgument is one argument of a command line and its raw values.
type CommandArgument struct {
	Name ArgumentName
	// Kind is tokenizer.Value for the anonymous argument, otherwise the kind
	// of the token that introduced it.
	Kind   tokenizer.Kind
	Values []string
}

// CommandLine is the product of parsing one pipe-delimited segment.
type CommandLine struct {
	// Position is the index of the line among the lines of its input.
	Position  int
	Arguments []*CommandArgument
}

// Get returns the argument whose name equals name.
func (l *CommandLine) Get(name ArgumentName) (*CommandArgument, bool) {
	for _, a := range l.Arguments {
		if a.Name.Equal(name) {
			return a, true
		}
	}

	return nil, false
}

// Name returns the command name, or "" if the line has no anonymous value.
func (l *CommandLine) Name() string {
	a, ok := l.Get(Anonymous)
	if !ok || len(a.Values) == 0 {
		return ""
	}

	return a.Values[0]
}

// Positionals returns the anonymous values after the command name.
func (l *CommandLine) Positionals() []string {
	a, ok := l.Get(Anonymous)
	if !ok || len(a.Values) < 2 {
		return nil
	}

	return a.Values[1:]
}

// Async reports whether the line asked for concurrent execution.
// A bare -async or --async means true; a value is parsed with strconv.ParseBool.
func (l *CommandLine) Async() (bool, error) {
	values, ok := l.Lookup(AsyncName, nil)
	switch {
	case !ok:
		return false, nil
	case len(values) == 0:
		return true, nil
	case len(values) > 1:
		return false, fmt.Errorf("async: expected at most one value, got %d", len(values))
	}

	v, err := strconv.ParseBool(values[0])
	if err != nil {
		return false, fmt.Errorf("async: %w", err)
	}

	return v, nil
}

// Lookup returns the values of the argument matching name.
//
// Arguments whose name equals name win; when several aliases of name were
// used, such as --tag a -t b, their values are concatenated. Otherwise a
// flag cluster such as -abc, whose own name is not known to the caller,
// counts as the single character flags a, b and c; only the last of them
// takes the cluster's values. known may be nil, in which case every
// cluster is expanded.
func (l *CommandLine) Lookup(name ArgumentName, known func(alias string) bool) ([]string, bool) {
	var (
		values = []string{}
		found  bool
	)

	for _, a := range l.Arguments {
		if a.Name.Equal(name) {
			values = append(values, a.Values...)
			found = true
		}
	}

	if found {
		return values, true
	}

	for _, a := range l.Arguments {
		if a.Kind != tokenizer.Flags {
			continue
		}

		cluster := a.Name.Primary()
		if known != nil && known(cluster) {
			continue
		}

		runes := []rune(cluster)
		for i, r := range runes {
			if !name.Has(string(r)) {
				continue
			}

			if i == len(runes)-1 {
				return a.Values, true
			}

			return []string{}, true
		}
	}

	return nil, false
}

// String renders the line back into command-line syntax.
func (l *CommandLine) String() string {
	var parts []string

	for _, a := range l.Arguments {
		switch a.Kind {
		case tokenizer.LongArgument:
			parts = append(parts, "--"+a.Name.Primary())
		case tokenizer.Flags:
			parts = append(parts, "-"+a.Name.Primary())
		}

		for _, v := range a.Values {
			parts = append(parts, tokenizer.Token{Kind: tokenizer.Value, Text: v}.String())
		}
	}

	return strings.Join(parts, " ")
}

func (l *CommandLine) empty() bool {
	return !slices.ContainsFunc(l.Arguments, func(a *CommandArgument) bool {
		return a.Kind != tokenizer.Value || len(a.Values) > 0
	})
}
