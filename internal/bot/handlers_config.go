package bot

import (
	"context"
	"fmt"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

type roleKind int

const (
	roleKindAdmin roleKind = iota
	roleKindVendor
)

func (k roleKind) String() string {
	if k == roleKindVendor {
		return "Partner"
	}
	return "Admin"
}

// handleConfigSetRole sets the admin or vendor role for the current guild
func (b *Bot) handleConfigSetRole(s *discordgo.Session, i *discordgo.InteractionCreate, kind roleKind) {
	// Manage Server is enforced by Discord via DefaultMemberPermissions
	if i.GuildID == "" || i.Member == nil {
		b.respondError(s, i, "This command must be used in a server")
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	roleOption := options["role"]
	if roleOption == nil {
		b.respondError(s, i, "Role is required")
		return
	}

	roleID := roleOption.RoleValue(s, i.GuildID).ID
	userID := i.Member.User.ID

	ctx := context.Background()
	var err error
	switch kind {
	case roleKindVendor:
		err = b.db.SetGuildVendorRole(ctx, i.GuildID, roleID, userID)
	default:
		err = b.db.SetGuildAdminRole(ctx, i.GuildID, roleID, userID)
	}
	if err != nil {
		logging.Error(logging.ComponentDatabase, "Error setting guild %s role: %v", kind, err)
		b.respondError(s, i, "Failed to save configuration")
		return
	}

	b.audit(ctx, database.AuditConfigRole, userID, map[string]interface{}{
		"guild_id": i.GuildID,
		"kind":     kind.String(),
		"role_id":  roleID,
	})
	logging.Bot("Guild %s %s role set to %s by %s", i.GuildID, kind, roleID, userID)

	footer := "Users with this role can now use admin commands"
	if kind == roleKindVendor {
		footer = "Users with this role can now add vendor rewards"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Configuration Updated",
		Description: fmt.Sprintf("%s role has been set to **%s**", kind, roleName(s, i.GuildID, roleID)),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Role ID",
				Value:  roleID,
				Inline: true,
			},
			{
				Name:   "Configured By",
				Value:  i.Member.User.Mention(),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	b.respondEmbed(s, i, embed, false)
}

// handleConfigShow displays current server configuration
func (b *Bot) handleConfigShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		b.respondError(s, i, "This command must be used in a server")
		return
	}

	ctx := context.Background()
	settings, err := b.db.GetGuildSettings(ctx, i.GuildID)
	if err != nil {
		logging.Error(logging.ComponentDatabase, "Error fetching guild settings: %v", err)
		b.respondError(s, i, "Failed to fetch configuration")
		return
	}
	if settings == nil {
		settings = &database.GuildSettings{GuildID: i.GuildID}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚙️ Server Configuration",
		Description: "Current bot settings for this server",
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			b.roleField(s, i.GuildID, "Admin Role", settings.AdminRoleID, b.adminRoleID, "/config-set-admin-role"),
			b.roleField(s, i.GuildID, "Partner Role", settings.VendorRoleID, b.vendorRoleID, "/config-set-vendor-role"),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if settings.ConfiguredBy != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   "Configured By",
				Value:  fmt.Sprintf("<@%s>", settings.ConfiguredBy),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Last Updated",
				Value:  fmt.Sprintf("<t:%d:R>", settings.UpdatedAt.Unix()),
				Inline: true,
			},
		)
	}

	if settings.AdminRoleID == "" && b.adminRoleID == "" {
		embed.Color = colorRed
	}

	b.respondEmbed(s, i, embed, true)
}

// roleField describes the server role and any global role from config
func (b *Bot) roleField(s *discordgo.Session, guildID, name, serverRole, globalRole, setCommand string) *discordgo.MessageEmbedField {
	value := fmt.Sprintf("❌ Not configured. Use `%s` to set it", setCommand)
	if serverRole != "" {
		value = fmt.Sprintf("**%s** (`%s`)", roleName(s, guildID, serverRole), serverRole)
	}
	if globalRole != "" {
		value += fmt.Sprintf("\nGlobal role from config: `%s`", globalRole)
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value}
}

func roleName(s *discordgo.Session, guildID, roleID string) string {
	role, err := s.State.Role(guildID, roleID)
	if err != nil {
		return "Unknown Role"
	}
	return "@" + role.Name
}
