package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// permissions resolves permission bit sets through the session.
type permissions struct {
	session *discordgo.Session
}

func (p *permissions) ChannelPermissions(userID, channelID string) (int64, error) {
	perms, err := p.session.UserChannelPermissions(userID, channelID)
	if err != nil {
		return 0, fmt.Errorf("channel permissions: %w", err)
	}
	return perms, nil
}

// GuildPermissions combines the @everyone role with the member's roles. The
// guild owner and administrators get every permission.
func (p *permissions) GuildPermissions(userID, guildID string) (int64, error) {
	g := guild(p.session, guildID)
	if g == nil {
		return 0, fmt.Errorf("guild %s not found", guildID)
	}
	if userID == g.OwnerID {
		return discordgo.PermissionAll, nil
	}

	member, err := p.member(guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("guild permissions: %w", err)
	}
	return memberPermissions(g, member), nil
}

func (p *permissions) member(guildID, userID string) (*discordgo.Member, error) {
	if p.session.State != nil {
		if m, err := p.session.State.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	return p.session.GuildMember(guildID, userID)
}

func memberPermissions(g *discordgo.Guild, m *discordgo.Member) int64 {
	roles := make(map[string]struct{}, len(m.Roles)+1)
	roles[g.ID] = struct{}{} // @everyone
	for _, id := range m.Roles {
		roles[id] = struct{}{}
	}

	var perms int64
	for _, r := range g.Roles {
		if _, ok := roles[r.ID]; ok {
			perms |= r.Permissions
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}
