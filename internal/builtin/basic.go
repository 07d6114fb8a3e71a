// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matt-FFFFFF/relay/internal/command"
)

type echoParams struct {
	Words     []string `position:"1" default:"" desc:"words to print"`
	NoNewline bool     `arg:"n,no-newline" desc:"do not print the trailing newline"`
	Upper     bool     `arg:"upper,u" desc:"print in upper case"`
	Separator string   `arg:"separator,s" default:" " desc:"separator between words"`
}

var echoHandler = command.HandlerFunc[echoParams](func(_ context.Context, p *echoParams) error {
	s := strings.Join(p.Words, p.Separator)
	if p.Upper {
		s = strings.ToUpper(s)
	}

	if !p.NoNewline {
		s += "\n"
	}

	_, err := fmt.Fprint(Stdout, s)

	return err
})

type sleepParams struct {
	For time.Duration `position:"1" desc:"how long to wait, e.g. 500ms or 2m"`
}

var sleepHandler = command.HandlerFunc[sleepParams](func(ctx context.Context, p *sleepParams) error {
	t := time.NewTimer(p.For)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
})

type failParams struct {
	Message []string `position:"1" default:"failure requested" desc:"error message"`
}

var failHandler = command.HandlerFunc[failParams](func(_ context.Context, p *failParams) error {
	return errors.New(strings.Join(p.Message, " "))
})
