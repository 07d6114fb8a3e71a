// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/engine"
)

// MaxMacroDepth bounds how deeply macros may expand into other macros.
const MaxMacroDepth = 100

// ErrMacroDepth is returned when macro expansion nests deeper than MaxMacroDepth.
var ErrMacroDepth = errors.New("macro expansion too deep")

// Runner executes a command line, normally an *engine.Engine.
type Runner interface {
	Execute(ctx context.Context, input string) (*engine.Report, error)
}

type depthKey struct{}

type macroParams struct{}

// Macro returns a command that runs line through r each time it is invoked.
func Macro(id command.Identifier, description, line string, r Runner) (command.Command, error) {
	if description == "" {
		description = "Macro for: " + line
	}

	h := command.HandlerFunc[macroParams](func(ctx context.Context, _ *macroParams) error {
		depth, _ := ctx.Value(depthKey{}).(int)
		if depth >= MaxMacroDepth {
			return fmt.Errorf("%w: %s", ErrMacroDepth, id.Primary())
		}

		_, err := r.Execute(context.WithValue(ctx, depthKey{}, depth+1), line)

		return err
	})

	c, err := command.New(id, description, h, command.Logged)
	if err != nil {
		return nil, err
	}

	return c, nil
}
