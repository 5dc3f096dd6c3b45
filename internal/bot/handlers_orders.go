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

// handleOrder dispatches the /order subcommands
func (b *Bot) handleOrder(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireChannel(s, i, b.channels.Order, "orders") {
		return
	}

	name, options := subcommand(i)
	switch name {
	case "place":
		item := options["item"].StringValue()
		quantity := int(options["quantity"].IntValue())
		b.placeOrder(s, i, item, quantity)
	case "status":
		b.showOrderStatus(s, i)
	case "cancel":
		b.cancelOrder(s, i, int(options["id"].IntValue()))
	default:
		b.respondError(s, i, "Unknown order command")
	}
}

// handleOrderButton handles the order panel buttons
func (b *Bot) handleOrderButton(s *discordgo.Session, i *discordgo.InteractionCreate, action string) {
	switch action {
	case orderPlace:
		b.showModal(s, i, formOrderPlace, "🍩 Place Your Order",
			discordgo.TextInput{
				CustomID:    "item",
				Label:       "What would you like?",
				Style:       discordgo.TextInputShort,
				Placeholder: "Glazed donut, iced coffee...",
				Required:    true,
				MaxLength:   database.MaxItemLength,
			},
			discordgo.TextInput{
				CustomID:    "quantity",
				Label:       "How many? (1-100)",
				Style:       discordgo.TextInputShort,
				Placeholder: "1",
				Required:    true,
				MaxLength:   3,
			},
		)
	case orderStatus:
		b.showOrderStatus(s, i)
	case orderCancel:
		b.showModal(s, i, formOrderCancel, "Cancel Order",
			discordgo.TextInput{
				CustomID:    "order_id",
				Label:       "Order ID",
				Style:       discordgo.TextInputShort,
				Placeholder: "42",
				Required:    true,
				MaxLength:   10,
			},
		)
	}
}

func (b *Bot) handleOrderPlaceModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	quantity, err := strconv.Atoi(values["quantity"])
	if err != nil {
		b.respondError(s, i, "Quantity must be a number between 1 and 100, sugar!")
		return
	}
	b.placeOrder(s, i, values["item"], quantity)
}

func (b *Bot) handleOrderCancelModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	orderID, err := strconv.Atoi(strings.TrimPrefix(values["order_id"], "#"))
	if err != nil {
		b.respondError(s, i, "Order ID must be a number, sweetie!")
		return
	}
	b.cancelOrder(s, i, orderID)
}

func (b *Bot) placeOrder(s *discordgo.Session, i *discordgo.InteractionCreate, item string, quantity int) {
	userID := getUserID(i)

	ctx := context.Background()
	order, err := b.db.PlaceOrder(ctx, userID, item, quantity)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentOrders, err)
		return
	}

	logging.Orders("Order #%d placed by %s: %dx %s", order.ID, userID, order.Quantity, order.Item)

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Order Placed, Sweetheart!",
		Description: fmt.Sprintf("Your order **#%d** is on its way to the kitchen 💕", order.ID),
		Color:       colorPink,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Item", Value: order.Item, Inline: true},
			{Name: "Quantity", Value: strconv.Itoa(order.Quantity), Inline: true},
			{Name: "Status", Value: order.Status, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)

	b.notifier.Send(b.channels.Staff, &discordgo.MessageEmbed{
		Title: "🔔 New Order!",
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Order ID", Value: fmt.Sprintf("#%d", order.ID), Inline: true},
			{Name: "Customer", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
			{Name: "Item", Value: order.Item},
			{Name: "Quantity", Value: strconv.Itoa(order.Quantity), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) showOrderStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	orders, err := b.db.ListRecentOrders(ctx, getUserID(i), 5)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentOrders, err)
		return
	}

	if len(orders) == 0 {
		b.respondEphemeral(s, i, "💔 No orders found, sweetie! Time to treat yourself? 😘")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     "🎀 Your Recent Orders",
		Color:     colorPink,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, o := range orders {
		embed.Fields = append(embed.Fields, orderField(o))
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) cancelOrder(s *discordgo.Session, i *discordgo.InteractionCreate, orderID int) {
	userID := getUserID(i)

	ctx := context.Background()
	if err := b.db.CancelOrder(ctx, userID, orderID); err != nil {
		b.respondFailure(s, i, logging.ComponentOrders, err)
		return
	}

	logging.Orders("Order #%d cancelled by %s", orderID, userID)
	b.respondEphemeral(s, i, fmt.Sprintf("💝 Order #%d cancelled, darling!", orderID))
}

// orderField renders one order as an embed field
func orderField(o database.Order) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name: fmt.Sprintf("Order #%d • %s", o.ID, statusBadge(o.Status)),
		Value: fmt.Sprintf("%dx %s\n<@%s> • %s",
			o.Quantity, truncate(o.Item, 200), o.UserID, formatAge(time.Since(o.CreatedAt))),
	}
}

func statusBadge(status string) string {
	switch status {
	case database.StatusPending:
		return "⏳ " + status
	case database.StatusProcessing:
		return "👩‍🍳 " + status
	case database.StatusCompleted:
		return "✅ " + status
	case database.StatusCancelled:
		return "💔 " + status
	default:
		return status
	}
}
