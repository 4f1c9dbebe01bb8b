package discord

import (
	"context"
	"io"

	"github.com/bwmarrin/discordgo"
)

// channelSink posts replies to one channel.
type channelSink struct {
	session   *discordgo.Session
	channelID string
}

func (c *channelSink) SendText(ctx context.Context, content string, tts bool) error {
	_, err := c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content: content,
		TTS:     tts,
	}, discordgo.WithContext(ctx))
	return err
}

func (c *channelSink) SendFile(ctx context.Context, name, caption string, r io.Reader, tts bool) error {
	_, err := c.session.ChannelMessageSendComplex(c.channelID, &discordgo.MessageSend{
		Content: caption,
		TTS:     tts,
		Files: []*discordgo.File{{
			Name:        name,
			ContentType: "text/plain",
			Reader:      r,
		}},
	}, discordgo.WithContext(ctx))
	return err
}
