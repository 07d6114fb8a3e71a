// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine parses command lines, resolves them against a registry and
// runs them.
//
// Lines without the async flag run one after another, in input order. Once
// every one of them has been attempted, async lines run on a bounded pool of
// goroutines. A failing sequential command cancels the shared context, so
// that nothing else starts; a failing async command only fails itself.
//
// A run moves through the phases Idle, Parsing, Resolving and Executing,
// and ends in Completed or Failed. Nothing executes unless every line of
// the input resolves to a command.
package engine
