// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdline turns tokens into command lines.
//
// A command line is the set of arguments found between two pipes. Values
// that follow no argument name, the first of which is the command name,
// belong to the anonymous argument; every other value belongs to the
// argument named most recently.
//
//	build -verbose | deploy --env prod -- --dry-run
//
// yields two command lines: "build" with an empty "verbose" argument, and
// "deploy" with "env" = ["prod", "--dry-run"].
package cmdline
