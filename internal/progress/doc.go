// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries live command lifecycle events from the engine to
// listeners such as the CLI's --progress output. Results are still reported
// once a run has finished; events are for watching a run while it happens.
package progress
