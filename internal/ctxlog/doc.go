// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Nothing in relay logs through a global: the engine derives a logger per run
// and per command (run id, command name, position) and passes it down in the
// context. The default handler is a pretty console handler; Setup builds a
// JSON handler and an optional rotating log file instead.
package ctxlog
