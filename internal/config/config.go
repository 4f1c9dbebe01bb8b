// Package config loads the bot settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// BuiltIn toggles one built-in command.
type BuiltIn struct {
	Enabled bool     `env:"ENABLED"`
	Hidden  bool     `env:"HIDDEN"`
	TTS     bool     `env:"TTS"`
	Aliases []string `env:"ALIASES" envSeparator:","`
}

// Config holds every bot setting read from the environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	BotName        string `env:"BOT_NAME" envDefault:"SimpleBot"`
	BotDescription string `env:"BOT_DESCRIPTION"`
	BotSupportLink string `env:"BOT_SUPPORT_LINK"`
	// BotUserID overrides the session user when telling own messages apart.
	BotUserID uint64 `env:"BOT_USER_ID"`

	CommandPrefix     string `env:"COMMAND_PREFIX" envDefault:"!"`
	IgnoreOwnMessages bool   `env:"IGNORE_OWN_MESSAGES" envDefault:"true"`

	LogFile  string `env:"LOG_FILE"`
	LogDebug bool   `env:"LOG_DEBUG" envDefault:"false"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5m"`
	ChunkDelay      time.Duration `env:"CHUNK_DELAY" envDefault:"250ms"`
	ConnectAttempts int           `env:"CONNECT_ATTEMPTS" envDefault:"5"`

	Help        BuiltIn `envPrefix:"HELP_"`
	BotInfo     BuiltIn `envPrefix:"BOT_INFO_"`
	BotVersion  BuiltIn `envPrefix:"BOT_VERSION_"`
	ReportIssue BuiltIn `envPrefix:"REPORT_ISSUE_"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	return Parse(env.Options{})
}

// Parse builds a Config from the environment described by opts.
func Parse(opts env.Options) (*Config, error) {
	c := &Config{
		Help:        BuiltIn{Enabled: true},
		BotInfo:     BuiltIn{Enabled: true, Hidden: true},
		BotVersion:  BuiltIn{Enabled: true, Hidden: true},
		ReportIssue: BuiltIn{Enabled: true, Hidden: true},
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if c.LogFile == "" {
		c.LogFile = c.BotName + ".txt"
	}
	if c.Help.Aliases == nil {
		c.Help.Aliases = []string{c.CommandPrefix}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.CommandPrefix == "" || strings.IndexFunc(c.CommandPrefix, unicode.IsSpace) >= 0 {
		errs = append(errs, fmt.Errorf("COMMAND_PREFIX %q must be non-empty without whitespace", c.CommandPrefix))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.ChunkDelay < 0 {
		errs = append(errs, errors.New("CHUNK_DELAY must not be negative"))
	}
	if c.ConnectAttempts < 1 {
		errs = append(errs, errors.New("CONNECT_ATTEMPTS must be at least 1"))
	}
	return errors.Join(errs...)
}

// SelfID returns the configured bot user ID, empty when unset.
func (c *Config) SelfID() string {
	if c.BotUserID == 0 {
		return ""
	}
	return fmt.Sprint(c.BotUserID)
}
