// Package discord connects the router to the Discord gateway through
// discordgo and adapts gateway events and channels to the bot package.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/retrylimit"
)

// Intents needed to read prefix commands in guilds and direct messages.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// DefaultShutdownTimeout bounds each shutdown step.
const DefaultShutdownTimeout = 5 * time.Minute

type state int

const (
	stateIdle state = iota
	stateConnecting
	stateConnected
	stateClosed
)

// gateway is the connection half of discordgo.Session.
type gateway interface {
	Open() error
	Close() error
}

// Settings configures a Bot.
type Settings struct {
	Name             string
	Version          string
	FrameworkVersion string
	// SelfID identifies the bot's own messages. Empty uses the session user.
	SelfID          string
	ShutdownTimeout time.Duration
	Connect         retrylimit.Policy
	Debug           bool
}

// Bot owns the gateway session and feeds its messages to a router.
type Bot struct {
	settings Settings
	router   *bot.Router
	log      zerolog.Logger
	session  *discordgo.Session
	conn     gateway

	mu         sync.Mutex
	state      state
	connecting chan struct{}
}

// New creates a bot for token. Nothing is sent to Discord until Run.
func New(token string, s Settings, router *bot.Router, logger zerolog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = Intents
	dg.LogLevel = discordgo.LogWarning
	if s.Debug {
		dg.LogLevel = discordgo.LogDebug
	}
	HookLogger(logger)

	b := newBot(dg, dg, s, router, logger)
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	return b, nil
}

func newBot(session *discordgo.Session, conn gateway, s Settings, router *bot.Router, logger zerolog.Logger) *Bot {
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Bot{
		settings: s,
		router:   router,
		log:      logger,
		session:  session,
		conn:     conn,
	}
}

// Run connects, serves messages until ctx is done, then shuts down.
func (b *Bot) Run(ctx context.Context) error {
	b.router.Seal()

	done, err := b.beginConnect()
	if err != nil {
		return err
	}
	result := make(chan error, 1)
	go func() { result <- b.connect(ctx, done) }()

	select {
	case err := <-result:
		if err != nil && ctx.Err() != nil {
			return b.Close()
		}
		if err != nil {
			return err
		}
	case <-ctx.Done():
		b.log.Info().Msg("Shutdown signal received while connecting")
		return b.Close()
	}

	b.log.Info().Msgf("BotName: %s, v%s (simplebot v%s, discordgo v%s)",
		b.settings.Name, b.settings.Version, b.settings.FrameworkVersion, discordgo.VERSION)

	<-ctx.Done()
	b.log.Info().Msg("Shutdown signal received. Cleaning up...")
	return b.Close()
}

func (b *Bot) beginConnect() (chan struct{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != stateIdle {
		return nil, errors.New("bot already started")
	}
	b.state = stateConnecting
	b.connecting = make(chan struct{})
	return b.connecting, nil
}

func (b *Bot) connect(ctx context.Context, done chan struct{}) error {
	policy := b.settings.Connect
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		b.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Gateway connect failed, retrying")
	}

	err := policy.Do(ctx, func(context.Context) error {
		err := b.conn.Open()
		if errors.Is(err, discordgo.ErrWSAlreadyOpen) {
			return nil
		}
		return err
	})

	b.mu.Lock()
	abandoned := b.state == stateClosed
	if err == nil && b.state == stateConnecting {
		b.state = stateConnected
	} else if b.state == stateConnecting {
		b.state = stateIdle
	}
	close(done)
	b.mu.Unlock()

	// Close gave up waiting for this attempt; the session is nobody's now.
	if err == nil && abandoned {
		if cerr := b.conn.Close(); cerr != nil {
			b.log.Warn().Err(cerr).Msg("Failed to close late Discord session")
		}
		b.log.Info().Msg("Closed Discord session opened after shutdown")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	return nil
}

// Close logs out of the gateway. An in-progress connect is awaited first.
// Each step is bounded by the shutdown timeout. When the connect outlasts it,
// the bot is marked closed anyway and the session is closed as soon as the
// attempt finishes.
func (b *Bot) Close() error {
	timeout := b.settings.ShutdownTimeout

	b.mu.Lock()
	st, connecting := b.state, b.connecting
	b.mu.Unlock()

	if st == stateConnecting {
		select {
		case <-connecting:
		case <-time.After(timeout):
			b.log.Warn().Dur("timeout", timeout).Msg("Timed out waiting for gateway connect")
			b.mu.Lock()
			abandon := b.state == stateConnecting
			if abandon {
				b.state = stateClosed
			}
			b.mu.Unlock()
			if abandon {
				return nil
			}
		}
	}

	b.mu.Lock()
	st = b.state
	b.state = stateClosed
	b.mu.Unlock()
	if st != stateConnected {
		return nil
	}

	closed := make(chan error, 1)
	go func() { closed <- b.conn.Close() }()
	select {
	case err := <-closed:
		if err != nil {
			return fmt.Errorf("failed to close Discord session: %w", err)
		}
		b.log.Info().Msg("Disconnected from Discord")
		return nil
	case <-time.After(timeout):
		b.log.Warn().Dur("timeout", timeout).Msg("Timed out logging out of Discord")
		return nil
	}
}
