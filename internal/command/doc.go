// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package command defines commands and the registry they are resolved from.
//
// A command is built from a typed handler. Its parameter struct is
// described once, when the command is created, so schema mistakes surface
// at registration rather than at execution:
//
//	type greetParams struct {
//		Name string `position:"1"`
//		Loud bool   `arg:"loud,l"`
//	}
//
//	greet := command.Must(command.New(command.ID("greet", "hi"), "Say hello",
//		command.HandlerFunc[greetParams](func(ctx context.Context, p *greetParams) error {
//			...
//		}),
//		command.Recover, command.Logged,
//	))
package command
