package builtin

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/internal/message"
	"github.com/keshon/simplebot/pkg/cmd"
	"github.com/keshon/simplebot/pkg/cmdparse"
)

type sink struct {
	mu    sync.Mutex
	texts []string
}

func (s *sink) SendText(_ context.Context, content string, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, content)
	return nil
}

func (s *sink) SendFile(context.Context, string, string, io.Reader, bool) error { return nil }

type roll struct{}

func (roll) Name() string        { return "roll" }
func (roll) Description() string { return "Rolls a die" }
func (roll) Hidden() bool        { return false }
func (roll) DefaultTTS() bool    { return false }
func (roll) Arguments() []cmd.Argument {
	return []cmd.Argument{{Name: "sides", Type: cmd.Int, Required: true, Description: "Number of sides."}}
}
func (roll) Execute(context.Context, *cmd.Invocation) (bool, error) { return false, nil }

var about = About{
	Name:             "TestBot",
	Description:      "A bot for tests",
	SupportLink:      "https://example.com/issues",
	Version:          "1.2.3",
	FrameworkVersion: "0.1.0",
	LibraryVersion:   "0.29.0",
}

func defaultSet() Set {
	return Set{
		Help:        Options{Enabled: true, Aliases: []string{"!"}},
		BotInfo:     Options{Enabled: true, Hidden: true},
		BotVersion:  Options{Enabled: true, Hidden: true},
		ReportIssue: Options{Enabled: true, Hidden: true},
	}
}

func newRouter(t *testing.T, s Set) *bot.Router {
	t.Helper()
	p, err := cmdparse.New("!", cmd.NewRegistry())
	require.NoError(t, err)
	r := bot.NewRouter(p, zerolog.Nop(), bot.WithDispatcher(message.NewDispatcher(0)))
	require.NoError(t, Register(r, about, s))
	require.NoError(t, r.Register(roll{}))
	r.Seal()
	return r
}

func handle(t *testing.T, r *bot.Router, text string) []string {
	t.Helper()
	out := &sink{}
	m := &bot.Message{ID: "1", Text: text, Author: bot.User{ID: "u", Username: "alice"}, Sink: out}
	require.NoError(t, r.Handle(context.Background(), m))
	return out.texts
}

func TestHelp_Listing(t *testing.T) {
	r := newRouter(t, defaultSet())

	for _, text := range []string{"!help", "!!"} {
		t.Run(text, func(t *testing.T) {
			texts := handle(t, r, text)
			require.Len(t, texts, 2)
			assert.True(t, strings.HasPrefix(texts[0], "```\nAvailable commands:\n"))
			assert.Contains(t, texts[0], "!roll - Rolls a die")
			assert.Contains(t, texts[0], "!help (aliases: !)")
			assert.NotContains(t, texts[0], "bot_info")
			assert.Equal(t, "To get more help about a specific command, use the following command: !help <command>", texts[1])
		})
	}
}

func TestHelp_DescribesCommand(t *testing.T) {
	r := newRouter(t, defaultSet())

	texts := handle(t, r, "!help roll")
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "!roll <sides> [output_as_text_file] [tts]")
	assert.Contains(t, texts[0], "sides (int, required) - Number of sides.")
}

func TestHelp_DescribesHiddenCommand(t *testing.T) {
	r := newRouter(t, defaultSet())

	texts := handle(t, r, "!help bot_info")
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "!bot_info")
}

func TestHelp_UnknownCommand(t *testing.T) {
	r := newRouter(t, defaultSet())

	texts := handle(t, r, "!help nope")
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Unknown command: nope")
	assert.Contains(t, texts[0], "Available commands:")
}

func TestHelp_FallbackForFailedCommand(t *testing.T) {
	r := newRouter(t, defaultSet())

	texts := handle(t, r, "!roll 6")
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "!roll <sides>")
}

func TestTextCommands(t *testing.T) {
	r := newRouter(t, defaultSet())

	tests := []struct {
		text string
		want string
	}{
		{"!bot_version", "Bot Version: 1.2.3"},
		{"!report_issue", "Please report an issue using the following link: https://example.com/issues"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, handle(t, r, tt.text))
		})
	}

	info := handle(t, r, "!bot_info")
	require.Len(t, info, 1)
	assert.Contains(t, info[0], "Bot Name: TestBot")
	assert.Contains(t, info[0], "Bot Description: A bot for tests")
	assert.Contains(t, info[0], "simplebot (v0.1.0) and discordgo (v0.29.0)")
}

func TestRegister_Disabled(t *testing.T) {
	s := defaultSet()
	s.BotInfo.Enabled = false
	s.Help.Enabled = false
	r := newRouter(t, s)

	assert.Empty(t, handle(t, r, "!bot_info"))
	assert.Empty(t, handle(t, r, "!help"))
	assert.True(t, r.Parser().Registry().Sealed())
}

func TestRegister_Aliases(t *testing.T) {
	s := defaultSet()
	s.BotVersion.Aliases = []string{"v"}
	r := newRouter(t, s)

	assert.Equal(t, []string{"Bot Version: 1.2.3"}, handle(t, r, "!v"))
}
