// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for terminal output.
// Color is on when stdout is a terminal, unless NO_COLOR is set; FORCE_COLOR
// turns it on for non-terminals.
package color
