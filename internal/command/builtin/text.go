package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
)

// TextCommand answers with a fixed text.
type TextCommand struct {
	name        string
	description string
	text        string
	hidden      bool
	tts         bool
}

// NewText returns a command replying text.
func NewText(name, description, text string, hidden, tts bool) *TextCommand {
	return &TextCommand{name: name, description: description, text: text, hidden: hidden, tts: tts}
}

func (c *TextCommand) Name() string              { return c.name }
func (c *TextCommand) Description() string       { return c.description }
func (c *TextCommand) Hidden() bool              { return c.hidden }
func (c *TextCommand) DefaultTTS() bool          { return c.tts }
func (c *TextCommand) Arguments() []cmd.Argument { return nil }

func (c *TextCommand) Execute(ctx context.Context, inv *cmd.Invocation) (bool, error) {
	if err := bot.Respond(ctx, inv, c.text); err != nil {
		return false, err
	}
	return true, nil
}

// About describes the running bot for the info commands.
type About struct {
	Name             string
	Description      string
	SupportLink      string
	Version          string
	FrameworkVersion string
	LibraryVersion   string
}

// Options toggles one built-in command.
type Options struct {
	Enabled bool
	Hidden  bool
	TTS     bool
	Aliases []string
}

// NewBotInfo returns bot_info.
func NewBotInfo(a About, o Options) *TextCommand {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bot Name: %s\n", a.Name)
	fmt.Fprintf(&sb, "Bot Version: %s\n", a.Version)
	fmt.Fprintf(&sb, "Bot Support Link: %s\n", a.SupportLink)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Bot Description: %s\n", a.Description)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "_Built using simplebot (v%s) and discordgo (v%s)_", a.FrameworkVersion, a.LibraryVersion)
	return NewText("bot_info", "Displays some basic info about the Bot", sb.String(), o.Hidden, o.TTS)
}

// NewBotVersion returns bot_version.
func NewBotVersion(a About, o Options) *TextCommand {
	return NewText("bot_version", "Displays the current Bot Version", "Bot Version: "+a.Version, o.Hidden, o.TTS)
}

// NewReportIssue returns report_issue.
func NewReportIssue(a About, o Options) *TextCommand {
	return NewText("report_issue", "Provides a link to report an issue",
		"Please report an issue using the following link: "+a.SupportLink, o.Hidden, o.TTS)
}
