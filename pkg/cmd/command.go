// Package cmd provides a transport-agnostic command core: a command is something
// with a name, an argument schema and an Execute step. How text is parsed into
// an Invocation and how replies reach a user is defined by adapters.
package cmd

import "context"

// Command is the universal contract: identity, schema and the core step of
// the lifecycle.
//
// Execute reports whether the command succeeded. A false result with a nil
// error is a usage failure (the adapter may answer with help); a non-nil
// error is a fault the command could not handle, such as a failed delivery.
type Command interface {
	Name() string
	Description() string
	Hidden() bool
	Arguments() []Argument
	DefaultTTS() bool
	Execute(ctx context.Context, inv *Invocation) (bool, error)
}

// PreHooker is implemented by commands that need to run something before the
// core step of every invocation.
type PreHooker interface {
	PreExecute(ctx context.Context, inv *Invocation) error
}

// PostHooker is implemented by commands that need to run something after the
// core step of every invocation.
type PostHooker interface {
	PostExecute(ctx context.Context, inv *Invocation) error
}
