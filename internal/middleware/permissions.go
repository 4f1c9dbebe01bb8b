package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
)

// Permissioned is implemented by commands restricted to members holding at
// least one of the listed permissions in the channel.
type Permissioned interface {
	UserPermissions() []int64
}

// PermissionNames maps permission bits to the names shown in denial messages.
var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:        "Kick Members",
	discordgo.PermissionBanMembers:         "Ban Members",
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionManageGuild:        "Manage Server",
	discordgo.PermissionAddReactions:       "Add Reactions",
	discordgo.PermissionViewAuditLogs:      "View Audit Logs",
	discordgo.PermissionViewChannel:        "View Channel",
	discordgo.PermissionSendMessages:       "Send Messages",
	discordgo.PermissionSendTTSMessages:    "Send TTS Messages",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionEmbedLinks:         "Embed Links",
	discordgo.PermissionAttachFiles:        "Attach Files",
	discordgo.PermissionReadMessageHistory: "Read Message History",
	discordgo.PermissionMentionEveryone:    "Mention Everyone",
	discordgo.PermissionManageThreads:      "Manage Threads",
	discordgo.PermissionManageNicknames:    "Manage Nicknames",
	discordgo.PermissionManageRoles:        "Manage Roles",
	discordgo.PermissionManageWebhooks:     "Manage Webhooks",
	discordgo.PermissionModerateMembers:    "Moderate Members",
}

// WithUserPermissionCheck refuses Permissioned commands to authors lacking
// every required permission. Administrators always pass; direct messages are
// not checked.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		p, ok := cmd.Root(c).(Permissioned)
		if !ok || len(p.UserPermissions()) == 0 {
			return c
		}
		required := p.UserPermissions()

		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (bool, error) {
			m, ok := bot.FromInvocation(inv)
			if !ok || m.Guild.ID == "" || m.Perms == nil {
				return c.Execute(ctx, inv)
			}

			perms, err := m.AuthorChannelPermissions()
			if err != nil {
				return false, fmt.Errorf("failed to get user permissions: %w", err)
			}
			if perms&discordgo.PermissionAdministrator != 0 {
				return c.Execute(ctx, inv)
			}
			for _, r := range required {
				if perms&r != 0 {
					return c.Execute(ctx, inv)
				}
			}

			zerolog.Ctx(ctx).Info().
				Str("command", c.Name()).
				Str("user", m.Author.Username).
				Msg("Permission denied")
			return true, bot.Respond(ctx, inv, fmt.Sprintf(
				"You need one of the following permissions to use this command: %s", names(required)))
		})
	}
}

func names(perms []int64) string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		name := PermissionNames[p]
		if name == "" {
			name = fmt.Sprintf("0x%x", p)
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}
