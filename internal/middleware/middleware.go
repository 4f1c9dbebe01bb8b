// Package middleware holds access checks applied to every registered
// command. Each check only affects commands that opt in through an optional
// interface.
package middleware

import (
	"context"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
)

// GuildOnly is implemented by commands that must not run in direct messages.
type GuildOnly interface {
	GuildOnly() bool
}

// WithGuildOnly answers direct-message invocations of GuildOnly commands
// with a notice instead of running them.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		g, ok := cmd.Root(c).(GuildOnly)
		if !ok || !g.GuildOnly() {
			return c
		}
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (bool, error) {
			m, ok := bot.FromInvocation(inv)
			if ok && m.Guild.ID == "" {
				return true, bot.Respond(ctx, inv, "This command can only be used in a server.")
			}
			return c.Execute(ctx, inv)
		})
	}
}
