package bot

import (
	"context"
	"slices"

	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Capability is what a member may do, resolved once per interaction.
// Higher values include the lower ones.
type Capability int

const (
	CapabilityCustomer Capability = iota
	CapabilityVendor
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityAdmin:
		return "admin"
	case CapabilityVendor:
		return "vendor"
	default:
		return "customer"
	}
}

// Allows reports whether c satisfies required
func (c Capability) Allows(required Capability) bool {
	return c >= required
}

// roleSet holds the role IDs that grant each capability
type roleSet struct {
	admin  []string
	vendor []string
}

func (r *roleSet) add(adminRoleID, vendorRoleID string) {
	if adminRoleID != "" {
		r.admin = append(r.admin, adminRoleID)
	}
	if vendorRoleID != "" {
		r.vendor = append(r.vendor, vendorRoleID)
	}
}

// resolveCapability maps a member's roles to a capability
func resolveCapability(memberRoles []string, roles roleSet) Capability {
	for _, id := range memberRoles {
		if slices.Contains(roles.admin, id) {
			return CapabilityAdmin
		}
	}
	for _, id := range memberRoles {
		if slices.Contains(roles.vendor, id) {
			return CapabilityVendor
		}
	}
	return CapabilityCustomer
}

// capability resolves the interaction's member against the global roles and
// the guild's configured overrides. DMs are always customers.
func (b *Bot) capability(i *discordgo.InteractionCreate) Capability {
	if i.Member == nil {
		return CapabilityCustomer
	}

	var roles roleSet
	roles.add(b.adminRoleID, b.vendorRoleID)

	if i.GuildID != "" {
		settings, err := b.db.GetGuildSettings(context.Background(), i.GuildID)
		if err != nil {
			logging.Error(logging.ComponentDatabase, "Error fetching guild settings: %v", err)
		} else if settings != nil {
			roles.add(settings.AdminRoleID, settings.VendorRoleID)
		}
	}

	return resolveCapability(i.Member.Roles, roles)
}

// channelAllowed reports whether a command restricted to configured may run
// in channelID. An unconfigured restriction allows every channel.
func channelAllowed(configured, channelID string) bool {
	return configured == "" || configured == channelID
}

// Denial replies
const (
	denyGuildOnly = "This command must be used in a server"
	denyAdmin     = "You don't have permission to do this, sweetie! Staff only 💅"
	denyVendor    = "You need the Partner role to use this!"
)

// accessDenial returns the reply for a member holding have who needs
// required, or "" when access is allowed. DMs never pass a check above
// customer.
func accessDenial(inGuild bool, have, required Capability) string {
	if required > CapabilityCustomer && !inGuild {
		return denyGuildOnly
	}
	if have.Allows(required) {
		return ""
	}
	if required == CapabilityAdmin {
		return denyAdmin
	}
	return denyVendor
}

// channelDenial returns the reply for a command restricted to configured
// that ran in channelID, or "" when the channel is allowed.
func channelDenial(configured, channelID, name string) string {
	if channelAllowed(configured, channelID) {
		return ""
	}
	return "This command can only be used in the " + name + " channel, sugar! <#" + configured + ">"
}

// checkCapability checks capability and replies with a denial when it falls short
func (b *Bot) checkCapability(s *discordgo.Session, i *discordgo.InteractionCreate, required Capability) bool {
	if msg := accessDenial(i.Member != nil, b.capability(i), required); msg != "" {
		b.respondError(s, i, msg)
		return false
	}
	return true
}

// requireChannel replies with a denial when used outside the configured channel
func (b *Bot) requireChannel(s *discordgo.Session, i *discordgo.InteractionCreate, configured, name string) bool {
	if msg := channelDenial(configured, i.ChannelID, name); msg != "" {
		b.respondError(s, i, msg)
		return false
	}
	return true
}

// checkAdmin validates if the user is an admin and responds if not
func (b *Bot) checkAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return b.checkCapability(s, i, CapabilityAdmin)
}
