package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/simplebot/internal/bot"
)

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Discord bot is running")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	if mc.Message == nil || mc.Author == nil {
		return
	}
	m := b.newMessage(s, mc.Message)
	if err := b.router.Handle(context.Background(), m); err != nil {
		b.log.Debug().Err(err).Str("message", m.ID).Msg("Message handling faulted")
	}
}

func (b *Bot) newMessage(s *discordgo.Session, dm *discordgo.Message) *bot.Message {
	m := &bot.Message{
		ID:       dm.ID,
		Text:     dm.Content,
		Author:   bot.User{ID: dm.Author.ID, Username: dm.Author.Username},
		Channel:  bot.Place{ID: dm.ChannelID, Name: channelName(s, dm.ChannelID)},
		FromSelf: dm.Author.ID == b.selfID(s),
		Sink:     &channelSink{session: s, channelID: dm.ChannelID},
		Perms:    &permissions{session: s},
	}
	if dm.GuildID != "" {
		m.Guild = bot.Place{ID: dm.GuildID, Name: guildName(s, dm.GuildID)}
	}
	return m
}

func (b *Bot) selfID(s *discordgo.Session) string {
	if b.settings.SelfID != "" {
		return b.settings.SelfID
	}
	if s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}

// channel resolves from state first, then over REST.
func channel(s *discordgo.Session, id string) *discordgo.Channel {
	if s.State != nil {
		if c, err := s.State.Channel(id); err == nil {
			return c
		}
	}
	c, err := s.Channel(id)
	if err != nil {
		return nil
	}
	return c
}

func guild(s *discordgo.Session, id string) *discordgo.Guild {
	if s.State != nil {
		if g, err := s.State.Guild(id); err == nil {
			return g
		}
	}
	g, err := s.Guild(id)
	if err != nil {
		return nil
	}
	return g
}

func channelName(s *discordgo.Session, id string) string {
	if c := channel(s, id); c != nil {
		return c.Name
	}
	return ""
}

func guildName(s *discordgo.Session, id string) string {
	if g := guild(s, id); g != nil {
		return g.Name
	}
	return ""
}
