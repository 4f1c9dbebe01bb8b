package bot

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/pkg/cmd"
)

// WithCommandLogger logs every execution of the wrapped command with its
// author, server and parameters.
func WithCommandLogger(logger zerolog.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (bool, error) {
			ev := logger.Info().Str("command", inv.Name)
			if m, ok := FromInvocation(inv); ok {
				ev = ev.Str("user", m.Author.Username).Str("server", m.Guild.Name).Str("channel", m.Channel.Name)
			}
			ev.Dict("params", paramsDict(inv.Params)).Msg("Executing command")

			return c.Execute(ctx, inv)
		})
	}
}

func paramsDict(p cmd.Params) *zerolog.Event {
	names := p.Names()
	sort.Strings(names)
	d := zerolog.Dict()
	for _, n := range names {
		v, _ := p.Get(n)
		d = d.Interface(n, v)
	}
	return d
}
