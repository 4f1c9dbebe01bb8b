package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/internal/command/builtin"
	"github.com/keshon/simplebot/internal/command/roll"
	"github.com/keshon/simplebot/internal/config"
	"github.com/keshon/simplebot/internal/discord"
	"github.com/keshon/simplebot/internal/logging"
	"github.com/keshon/simplebot/internal/message"
	"github.com/keshon/simplebot/internal/middleware"
	"github.com/keshon/simplebot/internal/version"
	"github.com/keshon/simplebot/pkg/cmd"
	"github.com/keshon/simplebot/pkg/cmdparse"
	"github.com/keshon/simplebot/pkg/retrylimit"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBot(c *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog := logging.New(logging.Options{File: cfg.LogFile, Debug: debug || cfg.LogDebug})
	defer closeLog()
	logger.Info().Str("bot", cfg.BotName).Str("version", version.Version).Msg("Starting bot")

	router, err := newRouter(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register commands")
		return err
	}

	policy := retrylimit.DefaultPolicy()
	policy.MaxAttempts = cfg.ConnectAttempts

	b, err := discord.New(cfg.DiscordToken, discord.Settings{
		Name:             cfg.BotName,
		Version:          version.Version,
		FrameworkVersion: version.Framework(),
		SelfID:           cfg.SelfID(),
		ShutdownTimeout:  cfg.ShutdownTimeout,
		Connect:          policy,
		Debug:            debug || cfg.LogDebug,
	}, router, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create bot")
		return err
	}

	if err := b.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Bot stopped with error")
		return err
	}
	logger.Info().Msg("Bot has been shut down gracefully")
	return nil
}

func newRouter(cfg *config.Config, logger zerolog.Logger) (*bot.Router, error) {
	parser, err := cmdparse.New(cfg.CommandPrefix, cmd.NewRegistry())
	if err != nil {
		return nil, err
	}
	router := bot.NewRouter(parser, logger,
		bot.IgnoreSelf(cfg.IgnoreOwnMessages),
		bot.WithDispatcher(message.NewDispatcher(cfg.ChunkDelay)),
		bot.WithMiddleware(middleware.WithGuildOnly(), middleware.WithUserPermissionCheck()),
	)

	about := builtin.About{
		Name:             cfg.BotName,
		Description:      cfg.BotDescription,
		SupportLink:      cfg.BotSupportLink,
		Version:          version.Version,
		FrameworkVersion: version.Framework(),
		LibraryVersion:   discordgo.VERSION,
	}
	set := builtin.Set{
		Help:        builtinOptions(cfg.Help),
		BotInfo:     builtinOptions(cfg.BotInfo),
		BotVersion:  builtinOptions(cfg.BotVersion),
		ReportIssue: builtinOptions(cfg.ReportIssue),
	}
	if err := builtin.Register(router, about, set); err != nil {
		return nil, err
	}
	if err := router.Register(roll.New()); err != nil {
		return nil, fmt.Errorf("roll: %w", err)
	}
	return router, nil
}

func builtinOptions(b config.BuiltIn) builtin.Options {
	return builtin.Options{Enabled: b.Enabled, Hidden: b.Hidden, TTS: b.TTS, Aliases: b.Aliases}
}
