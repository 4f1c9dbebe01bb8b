package cmd

import "context"

// Unwrappable is implemented by wrapped commands so adapters can reach the
// underlying command (e.g. to find its lifecycle hooks).
type Unwrappable interface {
	Command
	Unwrap() Command
}

// Wrapped wraps a command with a custom core step. Used by middleware.
// Everything but Execute delegates to the inner command.
type Wrapped struct {
	Command
	ExecFunc func(ctx context.Context, inv *Invocation) (bool, error)
}

// Execute runs ExecFunc, or the inner command when it is nil.
func (w *Wrapped) Execute(ctx context.Context, inv *Invocation) (bool, error) {
	if w.ExecFunc != nil {
		return w.ExecFunc(ctx, inv)
	}
	return w.Command.Execute(ctx, inv)
}

// Unwrap returns the inner command.
func (w *Wrapped) Unwrap() Command { return w.Command }

// Wrap returns a command that runs exec instead of c.Execute.
func Wrap(c Command, exec func(ctx context.Context, inv *Invocation) (bool, error)) Command {
	return &Wrapped{Command: c, ExecFunc: exec}
}

// Root unwraps a command until the underlying command is not Unwrappable.
func Root(c Command) Command {
	for {
		if u, ok := c.(Unwrappable); ok {
			c = u.Unwrap()
		} else {
			return c
		}
	}
}
