package bot

import (
	"fmt"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Panels that /menu can post
const (
	panelMenu   = "menu"
	panelOrder  = "order"
	panelRedeem = "redeem"
	panelVendor = "vendor"
	panelAdmin  = "admin"
)

// handleMenu posts a persistent button panel into the current channel
func (b *Bot) handleMenu(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	panel := options["panel"].StringValue()

	msg, ok := panelMessage(panel)
	if !ok {
		b.respondError(s, i, "Unknown panel")
		return
	}

	if _, err := s.ChannelMessageSendComplex(i.ChannelID, msg); err != nil {
		logging.Error(logging.ComponentBot, "Error posting %s panel: %v", panel, err)
		b.respondError(s, i, "Failed to post the panel. Check my channel permissions!")
		return
	}

	logging.Bot("Posted %s panel in %s", panel, i.ChannelID)
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Posted the %s panel", panel))
}

// panelMessage builds the message for a panel
func panelMessage(panel string) (*discordgo.MessageSend, bool) {
	var embed *discordgo.MessageEmbed
	var buttons []discordgo.Button

	switch panel {
	case panelMenu:
		embed = &discordgo.MessageEmbed{
			Title:       "🍩 Welcome to Sweet Holes!",
			Description: "Your one-stop shop for sweet treats and sweeter rewards 💕\nPick an option below, sugar!",
			Color:       colorPink,
		}
		buttons = []discordgo.Button{
			{Label: "🎁 Daily Reward", Style: discordgo.SuccessButton, CustomID: menuButtonID(menuDaily)},
			{Label: "💖 My VIP Card", Style: discordgo.PrimaryButton, CustomID: menuButtonID(menuTier)},
			{Label: "💋 Pick-up Line", Style: discordgo.SecondaryButton, CustomID: menuButtonID(menuPickup)},
			{Label: "💖 Truth", Style: discordgo.SecondaryButton, CustomID: menuButtonID(menuTruth)},
			{Label: "🔥 Dare", Style: discordgo.SecondaryButton, CustomID: menuButtonID(menuDare)},
			{Label: "📝 Complaint", Style: discordgo.DangerButton, CustomID: menuButtonID(menuComplaint)},
			{Label: "💡 Suggestion", Style: discordgo.PrimaryButton, CustomID: menuButtonID(menuSuggestion)},
			{Label: "✨ Apply", Style: discordgo.SuccessButton, CustomID: menuButtonID(menuApply)},
		}
	case panelOrder:
		embed = &discordgo.MessageEmbed{
			Title:       "🍩 Sweet Holes Orders",
			Description: "Hungry, sweetie? Place an order, check on it or cancel it here 😘",
			Color:       colorPink,
		}
		buttons = []discordgo.Button{
			{Label: "🛒 Place Order", Style: discordgo.SuccessButton, CustomID: orderButtonID(orderPlace)},
			{Label: "🎀 My Orders", Style: discordgo.PrimaryButton, CustomID: orderButtonID(orderStatus)},
			{Label: "💔 Cancel Order", Style: discordgo.DangerButton, CustomID: orderButtonID(orderCancel)},
		}
	case panelRedeem:
		embed = &discordgo.MessageEmbed{
			Title:       "🎁 Sweet Holes Rewards",
			Description: "Spend your points on something sweet! Tap a reward to redeem it 💕",
			Color:       colorPink,
		}
		for _, entry := range database.FixedCatalog {
			buttons = append(buttons, rewardButton(entry, entry.Cost))
		}
		buttons = append(buttons, discordgo.Button{
			Label:    "🏪 Vendor Rewards",
			Style:    discordgo.SecondaryButton,
			CustomID: redeemButtonID(redeemVendorList),
		})
	case panelVendor:
		embed = &discordgo.MessageEmbed{
			Title:       "🏪 Partner Rewards",
			Description: "Partners can list their own rewards for our customers here.",
			Color:       colorGold,
		}
		buttons = []discordgo.Button{
			{Label: "➕ Add Reward", Style: discordgo.SuccessButton, CustomID: vendorButtonID(vendorAdd)},
			{Label: "🗑️ Remove Reward", Style: discordgo.DangerButton, CustomID: vendorButtonID(vendorRemove)},
		}
	case panelAdmin:
		embed = &discordgo.MessageEmbed{
			Title:       "🔐 Admin Control Panel",
			Description: "Staff tools. Only admins can use these buttons.",
			Color:       colorRed,
		}
		buttons = []discordgo.Button{
			{Label: "📝 Update Order", Style: discordgo.PrimaryButton, CustomID: menuButtonID(menuAdminUpdateOrder)},
			{Label: "🎁 Give Points", Style: discordgo.SuccessButton, CustomID: menuButtonID(menuAdminGivePoints)},
			{Label: "📋 View Orders", Style: discordgo.SecondaryButton, CustomID: menuButtonID(menuAdminViewOrders)},
		}
	default:
		return nil, false
	}

	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: buttonRows(buttons),
	}, true
}

// menuChannel returns the channel restriction shared by a menu action and
// its slash command. Unrestricted actions return an empty channel.
func (b *Bot) menuChannel(action string) (configured, name string) {
	switch action {
	case menuTier:
		return b.channels.Tier, "VIP tier"
	case menuSuggestion:
		return b.channels.Suggestion, "suggestions"
	case menuApply:
		return b.channels.Membership, "VIP membership"
	}
	return "", ""
}

// handleMenuButton handles the main and admin panel buttons
func (b *Bot) handleMenuButton(s *discordgo.Session, i *discordgo.InteractionCreate, action string) {
	if configured, name := b.menuChannel(action); !b.requireChannel(s, i, configured, name) {
		return
	}

	switch action {
	case menuDaily:
		b.handleDaily(s, i)
	case menuTier:
		b.showTierCard(s, i)
	case menuPickup:
		b.respondEphemeral(s, i, pickupMessage())
	case menuTruth:
		b.respondEphemeral(s, i, truthMessage())
	case menuDare:
		b.respondEphemeral(s, i, dareMessage())
	case menuComplaint:
		b.showComplaintModal(s, i)
	case menuSuggestion:
		b.showSuggestionModal(s, i)
	case menuApply:
		b.showApplyModal(s, i)

	case menuAdminUpdateOrder:
		if !b.checkAdmin(s, i) {
			return
		}
		b.showModal(s, i, formAdminUpdateOrder, "📝 Update Order Status",
			discordgo.TextInput{
				CustomID:    "order_id",
				Label:       "Order ID",
				Style:       discordgo.TextInputShort,
				Placeholder: "42",
				Required:    true,
				MaxLength:   10,
			},
			discordgo.TextInput{
				CustomID:    "status",
				Label:       "New status",
				Style:       discordgo.TextInputShort,
				Placeholder: "Processing, Completed...",
				Required:    true,
				MaxLength:   50,
			},
		)
	case menuAdminGivePoints:
		if !b.checkAdmin(s, i) {
			return
		}
		b.showModal(s, i, formAdminGivePoints, "🎁 Give Points",
			discordgo.TextInput{
				CustomID:    "user",
				Label:       "User ID or mention",
				Style:       discordgo.TextInputShort,
				Placeholder: "123456789012345678",
				Required:    true,
				MaxLength:   30,
			},
			discordgo.TextInput{
				CustomID:    "points",
				Label:       "Points",
				Style:       discordgo.TextInputShort,
				Placeholder: "100",
				Required:    true,
				MaxLength:   7,
			},
		)
	case menuAdminViewOrders:
		b.handleViewOrders(s, i)
	}
}
