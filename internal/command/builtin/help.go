// Package builtin holds the commands every bot ships with: help, bot_info,
// bot_version and report_issue.
package builtin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
	"github.com/keshon/simplebot/pkg/cmdparse"
)

// HelpCommand lists visible commands or describes one by name. Its output is
// composed in the invocation buffer across the lifecycle and flushed once,
// as a code block, after the core step.
type HelpCommand struct {
	parser *cmdparse.Parser
	hidden bool
	tts    bool
}

// NewHelp returns the help command for parser.
func NewHelp(parser *cmdparse.Parser, hidden, tts bool) *HelpCommand {
	return &HelpCommand{parser: parser, hidden: hidden, tts: tts}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Lists the available commands or describes one of them" }
func (c *HelpCommand) Hidden() bool        { return c.hidden }
func (c *HelpCommand) DefaultTTS() bool    { return c.tts }

func (c *HelpCommand) Arguments() []cmd.Argument {
	return []cmd.Argument{
		{
			Name:        "command",
			Description: "The command to describe.",
			Type:        cmd.String,
			Default:     "",
		},
	}
}

func (c *HelpCommand) PreExecute(ctx context.Context, inv *cmd.Invocation) error {
	inv.Out.Reset()
	if m, ok := bot.FromInvocation(inv); ok {
		zerolog.Ctx(ctx).Debug().
			Str("user", m.Author.Username).
			Str("server", m.Guild.Name).
			Str("topic", inv.Params.String("command")).
			Msg("Composing help")
	}
	return nil
}

func (c *HelpCommand) Execute(_ context.Context, inv *cmd.Invocation) (bool, error) {
	topic := inv.Params.String("command")
	if topic == "" {
		inv.Out.WriteString(c.parser.Listing())
		return true, nil
	}

	desc, ok := c.parser.Describe(topic)
	if !ok {
		fmt.Fprintf(&inv.Out, "Unknown command: %s\n\n", topic)
		inv.Out.WriteString(c.parser.Listing())
		return true, nil
	}
	inv.Out.WriteString(desc)
	return true, nil
}

func (c *HelpCommand) PostExecute(ctx context.Context, inv *cmd.Invocation) error {
	if err := bot.Respond(ctx, inv, inv.Out.String(), bot.Code()); err != nil {
		return err
	}
	if inv.Params.String("command") != "" {
		return nil
	}
	hint := fmt.Sprintf("To get more help about a specific command, use the following command: %s%s <command>",
		c.parser.Prefix(), c.parser.HelpName())
	return bot.Respond(ctx, inv, hint)
}
