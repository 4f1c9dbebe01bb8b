package builtin

import (
	"fmt"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
)

// Set holds the options of every built-in command.
type Set struct {
	Help        Options
	BotInfo     Options
	BotVersion  Options
	ReportIssue Options
}

// Register adds the enabled built-ins to r.
func Register(r *bot.Router, a About, s Set) error {
	if s.Help.Enabled {
		help := NewHelp(r.Parser(), s.Help.Hidden, s.Help.TTS)
		if err := r.RegisterHelp(help, s.Help.Aliases...); err != nil {
			return err
		}
	}

	simple := []struct {
		cmd  cmd.Command
		opts Options
	}{
		{NewBotInfo(a, s.BotInfo), s.BotInfo},
		{NewBotVersion(a, s.BotVersion), s.BotVersion},
		{NewReportIssue(a, s.ReportIssue), s.ReportIssue},
	}
	for _, b := range simple {
		if !b.opts.Enabled {
			continue
		}
		if err := r.Register(b.cmd, b.opts.Aliases...); err != nil {
			return fmt.Errorf("built-in: %w", err)
		}
	}
	return nil
}
