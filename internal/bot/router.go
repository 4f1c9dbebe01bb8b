package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/internal/message"
	"github.com/keshon/simplebot/pkg/cmd"
	"github.com/keshon/simplebot/pkg/cmdparse"
)

// Router turns incoming messages into command executions. It holds no
// per-message state and is safe for concurrent use once sealed.
type Router struct {
	parser     *cmdparse.Parser
	dispatcher *message.Dispatcher
	log        zerolog.Logger
	ignoreSelf bool
	middleware []cmd.Middleware
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// IgnoreSelf drops messages written by the bot itself.
func IgnoreSelf(ignore bool) RouterOption {
	return func(r *Router) { r.ignoreSelf = ignore }
}

// WithDispatcher sets how replies are delivered.
func WithDispatcher(d *message.Dispatcher) RouterOption {
	return func(r *Router) { r.dispatcher = d }
}

// WithMiddleware adds middleware applied to every command registered after.
func WithMiddleware(mws ...cmd.Middleware) RouterOption {
	return func(r *Router) { r.middleware = append(r.middleware, mws...) }
}

// NewRouter returns a router over parser. Every registered command is
// wrapped with WithCommandLogger, then any WithMiddleware.
func NewRouter(parser *cmdparse.Parser, logger zerolog.Logger, opts ...RouterOption) *Router {
	r := &Router{
		parser:     parser,
		dispatcher: message.NewDispatcher(message.DefaultChunkDelay),
		log:        logger,
		ignoreSelf: true,
		middleware: []cmd.Middleware{WithCommandLogger(logger)},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parser returns the parser commands are resolved with.
func (r *Router) Parser() *cmdparse.Parser { return r.parser }

// Register adds a command with the given aliases.
func (r *Router) Register(c cmd.Command, aliases ...string) error {
	if err := r.parser.Register(cmd.Apply(c, r.middleware...), aliases...); err != nil {
		return fmt.Errorf("register command %q: %w", c.Name(), err)
	}
	r.log.Debug().Str("command", c.Name()).Strs("aliases", aliases).Msg("Registered command")
	return nil
}

// RegisterHelp adds the designated help command.
func (r *Router) RegisterHelp(c cmd.Command, aliases ...string) error {
	if err := r.parser.RegisterHelp(cmd.Apply(c, r.middleware...), aliases...); err != nil {
		return fmt.Errorf("register help command %q: %w", c.Name(), err)
	}
	r.log.Debug().Str("command", c.Name()).Strs("aliases", aliases).Msg("Registered help command")
	return nil
}

// Seal freezes the command set. Call before the gateway connects.
func (r *Router) Seal() { r.parser.Registry().Seal() }

// Handle processes one incoming message to completion.
//
// Parse misses are logged and dropped. A command reporting failure is
// answered with the help for that command. Only faults (such as a failed
// delivery) are returned.
func (r *Router) Handle(ctx context.Context, m *Message) error {
	if r.ignoreSelf && m.FromSelf {
		return nil
	}

	logger := r.log.With().
		Str("message", m.ID).
		Str("channel", m.Channel.ID).
		Str("author", m.Author.Username).
		Logger()

	inv, err := r.parser.Parse(m.Text)
	if err != nil {
		if errors.Is(err, cmdparse.ErrNoPrefix) {
			return nil
		}
		logger.Info().Err(err).Str("text", m.Text).Msg("No command matched")
		return nil
	}
	logger.Info().Str("text", m.Text).Msg("Parsing message")

	m.dispatcher = r.dispatcher
	inv.Data = m
	ctx = logger.WithContext(ctx)

	ok, err := cmd.Run(ctx, inv)
	if err != nil {
		logger.Error().Err(err).Str("command", inv.Name).Msg("Command faulted")
		return fmt.Errorf("command %s: %w", inv.Name, err)
	}
	if ok {
		logger.Info().Str("command", inv.Name).Msg("Succeeded in executing command")
		return nil
	}

	helpErr := r.runHelp(ctx, inv.Name, m)
	logger.Error().Str("command", inv.Name).Msg("Failed executing command")
	if helpErr != nil {
		logger.Error().Err(helpErr).Str("command", inv.Name).Msg("Help fallback faulted")
		return fmt.Errorf("help for %s: %w", inv.Name, helpErr)
	}
	return nil
}

func (r *Router) runHelp(ctx context.Context, name string, m *Message) error {
	help, err := r.parser.HelpInvocation(name)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("command", name).Msg("Cannot build help fallback")
		return nil
	}
	help.Data = m
	_, err = cmd.Run(ctx, help)
	return err
}
