package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(vars map[string]string) (*Config, error) {
	return Parse(env.Options{Environment: vars})
}

func TestParse_Defaults(t *testing.T) {
	c, err := parse(map[string]string{"DISCORD_TOKEN": "secret"})
	require.NoError(t, err)

	assert.Equal(t, "secret", c.DiscordToken)
	assert.Equal(t, "SimpleBot", c.BotName)
	assert.Equal(t, "!", c.CommandPrefix)
	assert.True(t, c.IgnoreOwnMessages)
	assert.Equal(t, "SimpleBot.txt", c.LogFile)
	assert.Equal(t, 5*time.Minute, c.ShutdownTimeout)
	assert.Equal(t, 250*time.Millisecond, c.ChunkDelay)
	assert.Equal(t, 5, c.ConnectAttempts)
	assert.Empty(t, c.SelfID())

	assert.Equal(t, BuiltIn{Enabled: true, Aliases: []string{"!"}}, c.Help)
	assert.Equal(t, BuiltIn{Enabled: true, Hidden: true}, c.BotInfo)
	assert.Equal(t, BuiltIn{Enabled: true, Hidden: true}, c.BotVersion)
	assert.Equal(t, BuiltIn{Enabled: true, Hidden: true}, c.ReportIssue)
}

func TestParse_Overrides(t *testing.T) {
	c, err := parse(map[string]string{
		"DISCORD_TOKEN":       "secret",
		"BOT_NAME":            "Duck",
		"BOT_USER_ID":         "123456789012345678",
		"COMMAND_PREFIX":      "?",
		"IGNORE_OWN_MESSAGES": "false",
		"CHUNK_DELAY":         "1s",
		"HELP_ALIASES":        "h,commands",
		"HELP_TTS":            "true",
		"BOT_INFO_ENABLED":    "false",
		"REPORT_ISSUE_HIDDEN": "false",
		"BOT_VERSION_ALIASES": "v",
	})
	require.NoError(t, err)

	assert.Equal(t, "Duck.txt", c.LogFile)
	assert.Equal(t, "123456789012345678", c.SelfID())
	assert.Equal(t, "?", c.CommandPrefix)
	assert.False(t, c.IgnoreOwnMessages)
	assert.Equal(t, time.Second, c.ChunkDelay)
	assert.Equal(t, []string{"h", "commands"}, c.Help.Aliases)
	assert.True(t, c.Help.TTS)
	assert.False(t, c.BotInfo.Enabled)
	assert.False(t, c.ReportIssue.Hidden)
	assert.Equal(t, []string{"v"}, c.BotVersion.Aliases)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing token", map[string]string{}},
		{"prefix with space", map[string]string{"DISCORD_TOKEN": "x", "COMMAND_PREFIX": "! "}},
		{"zero timeout", map[string]string{"DISCORD_TOKEN": "x", "SHUTDOWN_TIMEOUT": "0s"}},
		{"no attempts", map[string]string{"DISCORD_TOKEN": "x", "CONNECT_ATTEMPTS": "0"}},
		{"bad user id", map[string]string{"DISCORD_TOKEN": "x", "BOT_USER_ID": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "from-env")
	t.Setenv("COMMAND_PREFIX", "$")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.DiscordToken)
	assert.Equal(t, []string{"$"}, c.Help.Aliases)
}
