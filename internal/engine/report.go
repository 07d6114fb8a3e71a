// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/matt-FFFFFF/relay/internal/ctxlog"
)

// Outcome records what happened to one command line.
type Outcome struct {
	ID       command.Identifier
	Position int
	// Line is the command line rendered back into text.
	Line     string
	Async    bool
	Status   Status
	Err      error
	Duration time.Duration
}

// Report describes one Execute call.
type Report struct {
	RunID string
	Phase Phase
	// Outcomes holds one entry per resolved command line, in input order.
	Outcomes []*Outcome
}

func (r *Report) setPhase(ctx context.Context, p Phase) {
	ctxlog.Debug(ctx, "phase transition", "from", r.Phase.String(), "to", p.String())
	r.Phase = p
}

// Executed returns the identifiers of the commands that were started,
// whether or not they succeeded.
func (r *Report) Executed() []command.Identifier {
	var ids []command.Identifier

	for _, o := range r.Outcomes {
		if o.Status != StatusSkipped && o.Status != StatusPending {
			ids = append(ids, o.ID)
		}
	}

	return ids
}

// Failed returns the outcomes of failed and cancelled commands.
func (r *Report) Failed() []*Outcome {
	var out []*Outcome

	for _, o := range r.Outcomes {
		if o.Status.IsError() {
			out = append(out, o)
		}
	}

	return out
}

// HasError reports whether any command failed or was cancelled.
func (r *Report) HasError() bool {
	return len(r.Failed()) > 0
}

// Results returns the outcomes as a tree: one node for the run with a
// sequential and a concurrent group below it.
func (r *Report) Results() Results {
	groups := map[bool]*Result{
		false: {Label: "sequential", Status: StatusSucceeded},
		true:  {Label: "concurrent", Status: StatusSucceeded},
	}

	for _, o := range r.Outcomes {
		res := &Result{
			Label:    o.Line,
			Status:   o.Status,
			Duration: o.Duration,
		}
		if o.Err != nil {
			res.Error = o.Err.Error()
		}

		g := groups[o.Async]
		g.Children = append(g.Children, res)
	}

	root := &Result{Label: fmt.Sprintf("run %s", r.RunID), Status: StatusSucceeded}

	for _, async := range []bool{false, true} {
		g := groups[async]
		if len(g.Children) == 0 {
			continue
		}

		if g.Children.HasError() {
			g.Status = StatusFailed
		}

		root.Children = append(root.Children, g)
	}

	if root.Children.HasError() {
		root.Status = StatusFailed
	}

	return Results{root}
}
