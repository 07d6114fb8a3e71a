// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teewriter provides an io.Writer that forwards everything it is
// given and remembers the last line, so that the tail of a program's output
// can be quoted in an error message.
package teewriter
