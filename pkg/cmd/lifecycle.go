package cmd

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoCommand is returned by Run for an invocation without a command.
var ErrNoCommand = errors.New("invocation has no command")

// Run executes one invocation through the lifecycle: the root command's
// PreExecute, the (possibly wrapped) core step, then the root's PostExecute.
//
// A pre-hook error aborts the invocation. The post-hook runs whenever the core
// step returned without error, even when it reported failure.
func Run(ctx context.Context, inv *Invocation) (bool, error) {
	if inv == nil || inv.Command == nil {
		return false, ErrNoCommand
	}
	root := Root(inv.Command)

	if h, ok := root.(PreHooker); ok {
		if err := h.PreExecute(ctx, inv); err != nil {
			return false, fmt.Errorf("%s pre-execute: %w", inv.Name, err)
		}
	}

	ok, err := inv.Command.Execute(ctx, inv)
	if err != nil {
		return false, err
	}

	if h, isPost := root.(PostHooker); isPost {
		if err := h.PostExecute(ctx, inv); err != nil {
			return false, fmt.Errorf("%s post-execute: %w", inv.Name, err)
		}
	}
	return ok, nil
}
