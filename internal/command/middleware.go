// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/relay/internal/ctxlog"
)

// PanicError is returned by Recover when a handler panics.
type PanicError struct {
	Command string
	Value   any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	prefix := "command " + e.Command + " panicked:"

	switch x := e.Value.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// Recover turns a panic in the handler into a *PanicError.
func Recover(id Identifier, next Invoker) Invoker {
	return func(ctx context.Context, params any) (err error) {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.Error(ctx, "command panicked", "command", id.Primary(), "panic", r)
				err = &PanicError{Command: id.Primary(), Value: r}
			}
		}()

		return next(ctx, params)
	}
}

// Logged logs the start and the end of every invocation at debug level.
func Logged(id Identifier, next Invoker) Invoker {
	return func(ctx context.Context, params any) error {
		start := time.Now()

		ctxlog.Debug(ctx, "command starting", "command", id.Primary())

		err := next(ctx, params)

		ctxlog.Debug(ctx, "command finished", "command", id.Primary(), "duration", time.Since(start), "error", err)

		return err
	}
}

// Timeout bounds every invocation to d.
func Timeout(d time.Duration) Middleware {
	return func(_ Identifier, next Invoker) Invoker {
		return func(ctx context.Context, params any) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			return next(ctx, params)
		}
	}
}
