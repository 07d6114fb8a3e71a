// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builtin provides the commands every relay registry starts with.
//
// File commands work on FS and print to Stdout; both are package variables
// so that tests can replace them.
package builtin
