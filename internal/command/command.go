// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/matt-FFFFFF/relay/internal/binding"
	"github.com/matt-FFFFFF/relay/internal/cmdline"
)

// ErrParamsType is returned when Invoke receives parameters of the wrong type.
var ErrParamsType = errors.New("unexpected parameter type")

// Identifier is the registry key of a command: its name and aliases.
type Identifier = cmdline.ArgumentName

// ID builds an Identifier. It panics if name and aliases are all empty.
func ID(name string, aliases ...string) Identifier {
	return cmdline.MustName(append([]string{name}, aliases...)...)
}

// Command is a resolved, invocable command.
type Command interface {
	ID() Identifier
	Description() string
	// Schema describes the parameter struct that Invoke expects a pointer to.
	Schema() *binding.Schema
	Invoke(ctx context.Context, params any) error
}

// Handler executes a command with its bound parameters.
type Handler[T any] interface {
	Execute(ctx context.Context, params *T) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[T any] func(ctx context.Context, params *T) error

// Execute implements Handler.
func (f HandlerFunc[T]) Execute(ctx context.Context, params *T) error {
	return f(ctx, params)
}

// Invoker is the untyped form of a handler that middleware wraps.
type Invoker func(ctx context.Context, params any) error

// Middleware decorates the invoker of the command identified by id.
type Middleware func(id Identifier, next Invoker) Invoker

var _ Command = (*TypedCommand[struct{}])(nil)

// TypedCommand is a Command backed by a Handler[T].
type TypedCommand[T any] struct {
	id          Identifier
	description string
	schema      *binding.Schema
	invoke      Invoker
}

// New builds a command from a typed handler. The first middleware is the
// outermost. Parameters of type T are described with binding.DefaultSchema.
func New[T any](id Identifier, description string, h Handler[T], mw ...Middleware) (*TypedCommand[T], error) {
	if id.IsZero() {
		return nil, cmdline.ErrEmptyName
	}

	schema, err := binding.DefaultSchema.Describe(reflect.TypeFor[T]())
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", id.Primary(), err)
	}

	inv := func(ctx context.Context, params any) error {
		p, ok := params.(*T)
		if !ok {
			return fmt.Errorf("%w: got %T, want %T", ErrParamsType, params, p)
		}

		return h.Execute(ctx, p)
	}

	var invoke Invoker = inv
	for i := len(mw) - 1; i >= 0; i-- {
		invoke = mw[i](id, invoke)
	}

	return &TypedCommand[T]{
		id:          id,
		description: description,
		schema:      schema,
		invoke:      invoke,
	}, nil
}

// Must panics if err is not nil.
func Must[T any](c *TypedCommand[T], err error) *TypedCommand[T] {
	if err != nil {
		panic(err)
	}

	return c
}

// ID implements Command.
func (c *TypedCommand[T]) ID() Identifier { return c.id }

// Description implements Command.
func (c *TypedCommand[T]) Description() string { return c.description }

// Schema implements Command.
func (c *TypedCommand[T]) Schema() *binding.Schema { return c.schema }

// Invoke implements Command. params must be a *T.
func (c *TypedCommand[T]) Invoke(ctx context.Context, params any) error {
	return c.invoke(ctx, params)
}
