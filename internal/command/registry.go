// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	maxSuggestions  = 3
	maxTypoDistance = 2
)

// Registry holds commands keyed by every alias of their identifier.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byAlias  map[string]Command
	commands []Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byAlias: make(map[string]Command)}
}

// Register adds cmd. It fails with a *DuplicateCommandError if any alias of
// cmd is already registered, leaving the registry unchanged.
func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	aliases := cmd.ID().Aliases()
	for _, a := range aliases {
		if existing, ok := r.byAlias[a]; ok {
			return &DuplicateCommandError{ID: cmd.ID(), Alias: a, Existing: existing.ID()}
		}
	}

	for _, a := range aliases {
		r.byAlias[a] = cmd
	}

	r.commands = append(r.commands, cmd)

	return nil
}

// RegisterAll registers every command, returning all failures together.
func (r *Registry) RegisterAll(cmds ...Command) error {
	var result *multierror.Error

	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Resolve returns the command registered under name, ignoring case.
// position is the index of the command line and is only used for the error.
func (r *Registry) Resolve(name string, position int) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.byAlias[strings.ToLower(name)]; ok {
		return cmd, nil
	}

	return nil, &CommandNotFoundError{
		Name:        name,
		Position:    position,
		Suggestions: r.suggest(name),
	}
}

// Commands returns the registered commands sorted by primary name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.commands)
	slices.SortFunc(out, func(a, b Command) int {
		return strings.Compare(a.ID().Primary(), b.ID().Primary())
	})

	return out
}

// Aliases returns every registered alias, sorted.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.aliases()
}

func (r *Registry) aliases() []string {
	out := make([]string, 0, len(r.byAlias))
	for a := range r.byAlias {
		out = append(out, a)
	}

	slices.Sort(out)

	return out
}

// suggest returns aliases that contain name as a fuzzy match, best first,
// followed by aliases within a small edit distance. Callers hold the lock.
func (r *Registry) suggest(name string) []string {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}

	aliases := r.aliases()
	ranks := fuzzy.RankFindFold(name, aliases)
	sort.Sort(ranks)

	var out []string

	add := func(s string) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	for _, rank := range ranks {
		add(rank.Target)
	}

	for _, a := range aliases {
		if fuzzy.LevenshteinDistance(name, a) <= maxTypoDistance {
			add(a)
		}
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}

	return out
}
