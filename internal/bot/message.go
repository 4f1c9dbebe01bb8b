// Package bot is the gateway-independent half of the bot: the per-message
// context handed to commands, the reply helper and the router that turns an
// incoming message into a command execution.
package bot

import (
	"errors"

	"github.com/keshon/simplebot/internal/message"
	"github.com/keshon/simplebot/pkg/cmd"
)

var (
	// ErrNoMessage is returned when an invocation carries no originating message.
	ErrNoMessage = errors.New("invocation has no originating message")
	// ErrNoGuild is returned for guild lookups on direct messages.
	ErrNoGuild = errors.New("message was not sent in a guild")
)

// User identifies a message author.
type User struct {
	ID       string
	Username string
}

// Place identifies a channel or guild.
type Place struct {
	ID   string
	Name string
}

// Permissions looks up Discord permission bit sets.
type Permissions interface {
	ChannelPermissions(userID, channelID string) (int64, error)
	GuildPermissions(userID, guildID string) (int64, error)
}

// Message is the read-only context of one incoming chat message, threaded
// through every lifecycle step as the invocation's Data.
type Message struct {
	ID      string
	Text    string
	Author  User
	Channel Place
	// Guild is zero for direct messages.
	Guild Place
	// FromSelf is set when the bot itself wrote the message.
	FromSelf bool

	Sink  message.Sink
	Perms Permissions

	dispatcher *message.Dispatcher
}

// FromInvocation returns the message an invocation originated from.
func FromInvocation(inv *cmd.Invocation) (*Message, bool) {
	if inv == nil {
		return nil, false
	}
	m, ok := inv.Data.(*Message)
	return m, ok && m != nil
}

// AuthorChannelPermissions returns the author's permissions in the channel.
func (m *Message) AuthorChannelPermissions() (int64, error) {
	if m.Perms == nil {
		return 0, errors.New("no permission source")
	}
	return m.Perms.ChannelPermissions(m.Author.ID, m.Channel.ID)
}

// AuthorGuildPermissions returns the author's guild-wide permissions.
func (m *Message) AuthorGuildPermissions() (int64, error) {
	if m.Guild.ID == "" {
		return 0, ErrNoGuild
	}
	if m.Perms == nil {
		return 0, errors.New("no permission source")
	}
	return m.Perms.GuildPermissions(m.Author.ID, m.Guild.ID)
}

func (m *Message) dispatch() *message.Dispatcher {
	if m.dispatcher != nil {
		return m.dispatcher
	}
	return message.NewDispatcher(message.DefaultChunkDelay)
}
