// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/relay/internal/ctxlog"
)

// ErrSignal is the cancellation cause set by Watch.
var ErrSignal = errors.New("terminated by signal")

// Watch reads sigCh until it is closed or ctx is done. The second signal of the
// same kind cancels with ErrSignal as the cause.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelCauseFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, again := seen[sig]; again {
				ctxlog.Warn(ctx, "second signal received, cancelling remaining commands", "signal", sig.String())
				cancel(fmt.Errorf("%w: %s", ErrSignal, sig))

				return
			}

			ctxlog.Warn(ctx, "signal received, send again to cancel", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
