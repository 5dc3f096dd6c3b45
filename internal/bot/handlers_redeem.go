package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// maxVendorButtons is the most buttons a single message can carry
const maxVendorButtons = 25

func (b *Bot) handleRedeem(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireChannel(s, i, b.channels.Redeem, "redeem") {
		return
	}
	b.showRedeemPanel(s, i)
}

// showRedeemPanel replies with the caller's balance and a button per fixed
// reward plus one that opens the vendor list.
func (b *Bot) showRedeemPanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	acct, err := b.db.GetStatus(ctx, getUserID(i))
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	buttons := make([]discordgo.Button, 0, len(database.FixedCatalog)+1)
	for _, entry := range database.FixedCatalog {
		buttons = append(buttons, rewardButton(entry, acct.Points))
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "🏪 Vendor Rewards",
		Style:    discordgo.SecondaryButton,
		CustomID: redeemButtonID(redeemVendorList),
	})

	b.respond(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "🎁 Redeem Your Sweet Rewards",
			Description: fmt.Sprintf("You have **%d points** (%s). Pick a treat, sugar! 💕", acct.Points, acct.Tier),
			Color:       colorPink,
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
		Components: buttonRows(buttons),
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

// rewardButton labels entry with its cost, greyed out when unaffordable
func rewardButton(entry database.CatalogEntry, balance int) discordgo.Button {
	style := discordgo.PrimaryButton
	if entry.Cost > balance {
		style = discordgo.SecondaryButton
	}
	return discordgo.Button{
		Label:    truncate(fmt.Sprintf("%s %s (%d)", entry.Emoji, entry.Name, entry.Cost), 80),
		Style:    style,
		CustomID: redeemButtonID(entry.Key),
	}
}

func (b *Bot) handleCatalog(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	entries, err := b.db.ListCatalog(ctx)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	var fixed, vendor strings.Builder
	for _, e := range entries {
		if e.VendorEntryID == 0 {
			fmt.Fprintf(&fixed, "%s **%s** • %d pts\n", e.Emoji, e.Name, e.Cost)
			continue
		}
		fmt.Fprintf(&vendor, "%s **%s** • %d pts (#%d by <@%s>)\n", e.Emoji, e.Name, e.Cost, e.VendorEntryID, e.VendorID)
		if e.Description != "" {
			fmt.Fprintf(&vendor, "   _%s_\n", truncate(e.Description, 100))
		}
	}

	vendorText := vendor.String()
	if vendorText == "" {
		vendorText = "No vendor rewards yet!"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🍩 Sweet Holes Reward Catalog",
		Color: colorPink,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "House Rewards", Value: fixed.String()},
			{Name: "Vendor Rewards", Value: truncate(vendorText, 1024)},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /redeem to claim a reward",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)
}

// handleRedeemButton redeems the entry behind key, or lists vendor rewards
func (b *Bot) handleRedeemButton(s *discordgo.Session, i *discordgo.InteractionCreate, key string) {
	if key == redeemVendorList {
		b.showVendorRewards(s, i)
		return
	}

	userID := getUserID(i)

	ctx := context.Background()
	r, err := b.db.Redeem(ctx, userID, key)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	logging.Rewards("%s redeemed %s for %d points (voucher %s)", userID, r.EntryName, r.Cost, r.VoucherCode)

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 Reward Redeemed!",
		Description: fmt.Sprintf("Enjoy your **%s**, sweetie! Show this code to staff 💕", r.EntryName),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Voucher", Value: fmt.Sprintf("`%s`", r.VoucherCode)},
			{Name: "Cost", Value: fmt.Sprintf("%d points", r.Cost), Inline: true},
			{Name: "Remaining", Value: fmt.Sprintf("%d points", r.BalanceAfter), Inline: true},
			{Name: "Tier", Value: r.Tier, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)

	title := "🎁 New Reward Redemption"
	if _, ok := database.ParseVendorKey(r.EntryKey); ok {
		title = "🏪 Vendor Reward Claimed"
	}
	b.notifier.Send(b.channels.Staff, &discordgo.MessageEmbed{
		Title: title,
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Customer", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
			{Name: "Reward", Value: r.EntryName, Inline: true},
			{Name: "Cost", Value: fmt.Sprintf("%d points", r.Cost), Inline: true},
			{Name: "Voucher", Value: fmt.Sprintf("`%s`", r.VoucherCode)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) showVendorRewards(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	entries, err := b.db.ListVendorEntries(ctx)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}
	if len(entries) == 0 {
		b.respondEphemeral(s, i, "No vendor rewards available yet, sweetie! Check back soon 💕")
		return
	}

	acct, err := b.db.GetStatus(ctx, getUserID(i))
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	shown := entries[:min(len(entries), maxVendorButtons)]
	embed := &discordgo.MessageEmbed{
		Title:     "🏪 Available Vendor Rewards",
		Color:     colorPink,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	buttons := make([]discordgo.Button, 0, len(shown))
	for _, e := range shown {
		desc := e.Description
		if desc == "" {
			desc = "No description"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d %s • %d pts", e.VendorEntryID, e.Name, e.Cost),
			Value: fmt.Sprintf("%s\nOffered by <@%s>", truncate(desc, 200), e.VendorID),
		})
		buttons = append(buttons, rewardButton(e, acct.Points))
	}
	if len(entries) > len(shown) {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing %d of %d rewards. See /catalog for the full list.", len(shown), len(entries)),
		}
	}

	b.respond(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: buttonRows(buttons),
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

// handleVendor dispatches the /vendor subcommands
func (b *Bot) handleVendor(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireChannel(s, i, b.channels.Vendor, "vendor") {
		return
	}

	name, _ := subcommand(i)
	switch name {
	case "add":
		b.handleVendorButton(s, i, vendorAdd)
	case "remove":
		b.handleVendorButton(s, i, vendorRemove)
	default:
		b.respondError(s, i, "Unknown vendor command")
	}
}

func (b *Bot) handleVendorButton(s *discordgo.Session, i *discordgo.InteractionCreate, action string) {
	if !b.checkCapability(s, i, CapabilityVendor) {
		return
	}

	switch action {
	case vendorAdd:
		b.showModal(s, i, formVendorAdd, "🏪 Add Vendor Reward",
			discordgo.TextInput{
				CustomID:  "name",
				Label:     "Reward name",
				Style:     discordgo.TextInputShort,
				Required:  true,
				MaxLength: database.MaxVendorNameLength,
			},
			discordgo.TextInput{
				CustomID:    "cost",
				Label:       "Points cost",
				Style:       discordgo.TextInputShort,
				Placeholder: "250",
				Required:    true,
				MaxLength:   7,
			},
			discordgo.TextInput{
				CustomID:  "description",
				Label:     "Description",
				Style:     discordgo.TextInputParagraph,
				Required:  false,
				MaxLength: 1000,
			},
		)
	case vendorRemove:
		b.showModal(s, i, formVendorRemove, "🗑️ Remove Vendor Reward",
			discordgo.TextInput{
				CustomID:    "reward_id",
				Label:       "Reward ID (see /catalog)",
				Style:       discordgo.TextInputShort,
				Placeholder: "3",
				Required:    true,
				MaxLength:   10,
			},
		)
	}
}

func (b *Bot) handleVendorAddModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	if !b.checkCapability(s, i, CapabilityVendor) {
		return
	}
	vendorID := getUserID(i)

	ctx := context.Background()
	entry, err := b.db.AddVendorEntry(ctx, vendorID, values["name"], values["cost"], values["description"])
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	b.audit(ctx, database.AuditVendorAdd, vendorID, map[string]interface{}{
		"entry_id": entry.VendorEntryID,
		"name":     entry.Name,
		"cost":     entry.Cost,
	})
	logging.Rewards("Vendor %s added reward #%d %q for %d points", vendorID, entry.VendorEntryID, entry.Name, entry.Cost)

	embed := &discordgo.MessageEmbed{
		Title: "✅ Vendor Reward Added",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reward ID", Value: fmt.Sprintf("#%d", entry.VendorEntryID), Inline: true},
			{Name: "Name", Value: entry.Name, Inline: true},
			{Name: "Cost", Value: fmt.Sprintf("%d points", entry.Cost), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if entry.Description != "" {
		embed.Description = entry.Description
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) handleVendorRemoveModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	capability := b.capability(i)
	if msg := accessDenial(i.Member != nil, capability, CapabilityVendor); msg != "" {
		b.respondError(s, i, msg)
		return
	}

	entryID, err := strconv.Atoi(strings.TrimPrefix(values["reward_id"], "#"))
	if err != nil {
		b.respondError(s, i, "Reward ID must be a number, sweetie!")
		return
	}

	requesterID := getUserID(i)
	ctx := context.Background()
	entry, err := b.db.RemoveVendorEntry(ctx, requesterID, entryID, capability.Allows(CapabilityAdmin))
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	b.audit(ctx, database.AuditVendorRemove, requesterID, map[string]interface{}{
		"entry_id":  entry.VendorEntryID,
		"name":      entry.Name,
		"vendor_id": entry.VendorID,
	})
	logging.Rewards("%s removed vendor reward #%d %q", requesterID, entry.VendorEntryID, entry.Name)

	b.respondEphemeral(s, i, fmt.Sprintf("🗑️ Removed vendor reward **#%d %s**", entry.VendorEntryID, entry.Name))
}
