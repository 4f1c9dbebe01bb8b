package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateSession(t *testing.T) *discordgo.Session {
	t.Helper()
	st := discordgo.NewState()
	st.User = &discordgo.User{ID: "bot", Username: "TestBot"}
	require.NoError(t, st.GuildAdd(&discordgo.Guild{
		ID:      "g1",
		Name:    "Guild One",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Name: "@everyone", Permissions: discordgo.PermissionViewChannel},
			{ID: "mod", Permissions: discordgo.PermissionManageMessages},
			{ID: "admin", Permissions: discordgo.PermissionAdministrator},
		},
		Channels: []*discordgo.Channel{{ID: "c1", GuildID: "g1", Name: "general"}},
	}))
	require.NoError(t, st.ChannelAdd(&discordgo.Channel{ID: "dm1", Name: "", Type: discordgo.ChannelTypeDM}))
	for _, m := range []*discordgo.Member{
		{GuildID: "g1", User: &discordgo.User{ID: "alice"}, Roles: []string{"mod"}},
		{GuildID: "g1", User: &discordgo.User{ID: "bob"}, Roles: []string{"admin"}},
		{GuildID: "g1", User: &discordgo.User{ID: "carol"}},
	} {
		require.NoError(t, st.MemberAdd(m))
	}
	return &discordgo.Session{State: st}
}

func TestNewMessage_Guild(t *testing.T) {
	b, _ := newTestBot(t, &fakeGateway{}, time.Second)
	s := stateSession(t)

	m := b.newMessage(s, &discordgo.Message{
		ID:        "m1",
		Content:   "!help",
		ChannelID: "c1",
		GuildID:   "g1",
		Author:    &discordgo.User{ID: "alice", Username: "alice"},
	})

	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "!help", m.Text)
	assert.Equal(t, "general", m.Channel.Name)
	assert.Equal(t, "Guild One", m.Guild.Name)
	assert.Equal(t, "alice", m.Author.Username)
	assert.False(t, m.FromSelf)
	assert.NotNil(t, m.Sink)
	assert.NotNil(t, m.Perms)
}

func TestNewMessage_DirectFromSelf(t *testing.T) {
	b, _ := newTestBot(t, &fakeGateway{}, time.Second)
	s := stateSession(t)

	m := b.newMessage(s, &discordgo.Message{
		ID:        "m2",
		ChannelID: "dm1",
		Author:    &discordgo.User{ID: "bot", Username: "TestBot"},
	})

	assert.True(t, m.FromSelf)
	assert.Empty(t, m.Guild.ID)
}

func TestNewMessage_ConfiguredSelfID(t *testing.T) {
	b, _ := newTestBot(t, &fakeGateway{}, time.Second)
	b.settings.SelfID = "other"
	s := stateSession(t)

	m := b.newMessage(s, &discordgo.Message{ChannelID: "dm1", Author: &discordgo.User{ID: "bot"}})
	assert.False(t, m.FromSelf)

	m = b.newMessage(s, &discordgo.Message{ChannelID: "dm1", Author: &discordgo.User{ID: "other"}})
	assert.True(t, m.FromSelf)
}

func TestGuildPermissions(t *testing.T) {
	p := &permissions{session: stateSession(t)}

	tests := []struct {
		user string
		want int64
	}{
		{"owner", discordgo.PermissionAll},
		{"bob", discordgo.PermissionAll},
		{"alice", discordgo.PermissionViewChannel | discordgo.PermissionManageMessages},
		{"carol", discordgo.PermissionViewChannel},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			got, err := p.GuildPermissions(tt.user, "g1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "error", level(discordgo.LogError).String())
	assert.Equal(t, "warn", level(discordgo.LogWarning).String())
	assert.Equal(t, "info", level(discordgo.LogInformational).String())
	assert.Equal(t, "debug", level(discordgo.LogDebug).String())
}
