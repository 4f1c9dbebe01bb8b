package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// HookLogger routes discordgo's internal logging to logger.
func HookLogger(logger zerolog.Logger) {
	l := logger.With().Str("component", "discordgo").Logger()
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		l.WithLevel(level(msgL)).Msgf(format, a...)
	}
}

func level(msgL int) zerolog.Level {
	switch msgL {
	case discordgo.LogError:
		return zerolog.ErrorLevel
	case discordgo.LogWarning:
		return zerolog.WarnLevel
	case discordgo.LogInformational:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
