package bot

import (
	"fmt"
	"strings"
	"time"

	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Embed colours
const (
	colorPink  = 0xff69b4
	colorGold  = 0xf1c40f
	colorGreen = 0x2ecc71
	colorBlue  = 0x3498db
	colorRed   = 0xe74c3c
)

// interactionCreate handles all slash command and component interactions
func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponentInteraction(s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModalSubmit(s, i)
	}
}

// handleComponentInteraction routes button interactions
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	raw := i.MessageComponentData().CustomID
	id, ok := parseCustomID(raw)
	if !ok {
		logging.Warn(logging.ComponentBot, "Unknown component interaction: %s", raw)
		b.respondError(s, i, "This button is no longer available")
		return
	}

	switch id.Kind {
	case kindRedeem:
		b.handleRedeemButton(s, i, id.Arg)
	case kindOrder:
		b.handleOrderButton(s, i, id.Arg)
	case kindVendor:
		b.handleVendorButton(s, i, id.Arg)
	case kindMenu:
		b.handleMenuButton(s, i, id.Arg)
	default:
		logging.Warn(logging.ComponentBot, "Unroutable component interaction: %s", raw)
		b.respondError(s, i, "This button is no longer available")
	}
}

// handleModalSubmit routes modal submissions
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	id, ok := parseCustomID(data.CustomID)
	if !ok || id.Kind != kindModal {
		logging.Warn(logging.ComponentBot, "Unknown modal submit: %s", data.CustomID)
		b.respondError(s, i, "This form is no longer available")
		return
	}

	values := modalValues(data)
	switch id.Arg {
	case formOrderPlace:
		b.handleOrderPlaceModal(s, i, values)
	case formOrderCancel:
		b.handleOrderCancelModal(s, i, values)
	case formVendorAdd:
		b.handleVendorAddModal(s, i, values)
	case formVendorRemove:
		b.handleVendorRemoveModal(s, i, values)
	case formComplaint:
		b.handleComplaintModal(s, i, values)
	case formSuggestion:
		b.handleSuggestionModal(s, i, values)
	case formApply:
		b.handleApplyModal(s, i, values)
	case formAdminUpdateOrder:
		b.handleAdminUpdateOrderModal(s, i, values)
	case formAdminGivePoints:
		b.handleAdminGivePointsModal(s, i, values)
	}
}

// handleCommand routes slash commands to their handlers
func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	switch data.Name {
	// Orders
	case "order":
		b.handleOrder(s, i)

	// Rewards
	case "tier":
		b.handleTier(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "signup":
		b.handleSignup(s, i)
	case "history":
		b.handleHistory(s, i)
	case "redeem":
		b.handleRedeem(s, i)
	case "catalog":
		b.handleCatalog(s, i)

	// Fun
	case "pickup":
		b.respondEphemeral(s, i, pickupMessage())
	case "truth":
		b.respondEphemeral(s, i, truthMessage())
	case "dare":
		b.respondEphemeral(s, i, dareMessage())

	// Vendors
	case "vendor":
		b.handleVendor(s, i)

	// Feedback
	case "complaint":
		b.showComplaintModal(s, i)
	case "suggestion":
		if configured, name := b.menuChannel(menuSuggestion); b.requireChannel(s, i, configured, name) {
			b.showSuggestionModal(s, i)
		}
	case "review":
		b.handleReview(s, i)
	case "apply":
		if configured, name := b.menuChannel(menuApply); b.requireChannel(s, i, configured, name) {
			b.showApplyModal(s, i)
		}

	// Admin
	case "menu":
		b.handleMenu(s, i)
	case "add_points":
		b.handleAddPoints(s, i)
	case "remove_points":
		b.handleRemovePoints(s, i)
	case "update_order_status":
		b.handleUpdateOrderStatus(s, i)
	case "view_orders":
		b.handleViewOrders(s, i)
	case "view_feedback":
		b.handleViewFeedback(s, i)
	case "view_redemptions":
		b.handleViewRedemptions(s, i)
	case "update_loyalty":
		b.handleUpdateLoyalty(s, i)
	case "vip_report":
		b.handleVIPReport(s, i)

	// Configuration
	case "config-set-admin-role":
		b.handleConfigSetRole(s, i, roleKindAdmin)
	case "config-set-vendor-role":
		b.handleConfigSetRole(s, i, roleKindVendor)
	case "config-show":
		b.handleConfigShow(s, i)

	default:
		b.respondError(s, i, "Unknown command")
	}
}

// Helper functions

func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	b.respondEphemeral(s, i, fmt.Sprintf("❌ %s", message))
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	b.respond(s, i, &discordgo.InteractionResponseData{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(s, i, data)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logging.Error(logging.ComponentBot, "Error responding to interaction: %v", err)
	}
}

func (b *Bot) showModal(s *discordgo.Session, i *discordgo.InteractionCreate, form, title string, inputs ...discordgo.TextInput) {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{input},
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modalFormID(form),
			Title:      title,
			Components: rows,
		},
	})
	if err != nil {
		logging.Error(logging.ComponentBot, "Error showing %s modal: %v", form, err)
	}
}

// modalValues maps text input IDs to their submitted values
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actions, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actions.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}
	return values
}

// buttonRows packs buttons five to a row
func buttonRows(buttons []discordgo.Button) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += 5 {
		end := min(start+5, len(buttons))
		row := discordgo.ActionsRow{}
		for _, btn := range buttons[start:end] {
			row.Components = append(row.Components, btn)
		}
		rows = append(rows, row)
	}
	return rows
}

// getUserID returns the invoking user's ID in guilds and DMs
func getUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func getUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// displayName prefers the server nickname
func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	if u := getUser(i); u != nil {
		if u.GlobalName != "" {
			return u.GlobalName
		}
		return u.Username
	}
	return "sweetie"
}

func formatAge(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func parseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}
	return optionMap
}

// subcommand returns the chosen subcommand and its options
func subcommand(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", nil
	}
	sub := data.Options[0]
	return sub.Name, parseOptions(sub.Options)
}
