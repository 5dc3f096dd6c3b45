package bot

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Admin point management

func (b *Bot) handleAddPoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	target := options["user"].UserValue(nil)
	b.grantPoints(s, i, target.ID, int(options["points"].IntValue()))
}

func (b *Bot) handleAdminGivePointsModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	if !b.checkAdmin(s, i) {
		return
	}

	targetID, ok := parseUserRef(values["user"])
	if !ok {
		b.respondError(s, i, "Please enter a user ID or mention")
		return
	}
	amount, err := strconv.Atoi(values["points"])
	if err != nil || amount <= 0 {
		b.respondError(s, i, "Points must be a positive number")
		return
	}
	b.grantPoints(s, i, targetID, amount)
}

func (b *Bot) grantPoints(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string, amount int) {
	adminID := getUserID(i)

	ctx := context.Background()
	acct, err := b.db.GrantPoints(ctx, targetID, amount, database.ReasonAdminGrant)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	b.audit(ctx, database.AuditGrantPoints, adminID, map[string]interface{}{
		"target": targetID,
		"points": amount,
		"total":  acct.Points,
	})
	logging.Rewards("Admin %s granted %d points to %s (total %d)", adminID, amount, targetID, acct.Points)

	b.respondEphemeral(s, i, fmt.Sprintf("✅ Gave **%d points** to <@%s>. They now have **%d points** (%s)",
		amount, targetID, acct.Points, acct.Tier))
}

func (b *Bot) handleRemovePoints(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	target := options["user"].UserValue(nil)
	amount := int(options["points"].IntValue())
	adminID := getUserID(i)

	ctx := context.Background()
	acct, removed, err := b.db.RemovePoints(ctx, target.ID, amount)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	b.audit(ctx, database.AuditRemovePoints, adminID, map[string]interface{}{
		"target":    target.ID,
		"requested": amount,
		"removed":   removed,
		"total":     acct.Points,
	})
	logging.Rewards("Admin %s removed %d of %d points from %s (total %d)", adminID, removed, amount, target.ID, acct.Points)

	msg := fmt.Sprintf("✅ Removed **%d points** from <@%s>. They now have **%d points** (%s)",
		removed, target.ID, acct.Points, acct.Tier)
	if removed < amount {
		msg += "\nTheir balance can't go below zero, so only part of the request was applied."
	}
	b.respondEphemeral(s, i, msg)
}

// Admin order management

func (b *Bot) handleUpdateOrderStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	b.updateOrderStatus(s, i, int(options["id"].IntValue()), options["status"].StringValue())
}

func (b *Bot) handleAdminUpdateOrderModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	if !b.checkAdmin(s, i) {
		return
	}

	orderID, err := strconv.Atoi(strings.TrimPrefix(values["order_id"], "#"))
	if err != nil {
		b.respondError(s, i, "Order ID must be a number")
		return
	}
	b.updateOrderStatus(s, i, orderID, values["status"])
}

func (b *Bot) updateOrderStatus(s *discordgo.Session, i *discordgo.InteractionCreate, orderID int, status string) {
	adminID := getUserID(i)

	ctx := context.Background()
	order, err := b.db.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentOrders, err)
		return
	}

	b.audit(ctx, database.AuditOrderStatus, adminID, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	logging.Orders("Admin %s set order #%d to %s", adminID, order.ID, order.Status)

	b.respondEphemeral(s, i, fmt.Sprintf("✅ Order **#%d** for <@%s> is now **%s**", order.ID, order.UserID, statusBadge(order.Status)))
}

func (b *Bot) handleViewOrders(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	ctx := context.Background()
	orders, err := b.db.ListAllOrders(ctx, 10)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentOrders, err)
		return
	}

	if len(orders) == 0 {
		b.respondEphemeral(s, i, "No orders yet!")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     "📋 All Orders",
		Color:     colorBlue,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, o := range orders {
		embed.Fields = append(embed.Fields, orderField(o))
	}
	b.respondEmbed(s, i, embed, true)
}

// Admin reports

func (b *Bot) handleViewFeedback(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	options := parseOptions(i.ApplicationCommandData().Options)
	kind := ""
	if opt := options["kind"]; opt != nil {
		kind = opt.StringValue()
	}

	ctx := context.Background()
	items, err := b.db.ListFeedback(ctx, kind, 5)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentDatabase, err)
		return
	}

	if len(items) == 0 {
		b.respondEphemeral(s, i, "No feedback yet!")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     "💖 Customer Reviews",
		Color:     colorPink,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, f := range items {
		label := kindLabel(f.Kind)
		if f.Rating != nil {
			label += " " + stars(*f.Rating)
		}
		body := f.Body
		if body == "" {
			body = "_No comment_"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d • %s", f.ID, label),
			Value: fmt.Sprintf("%s\n<@%s> • %s", truncate(body, 300), f.UserID, formatAge(time.Since(f.CreatedAt))),
		})
	}
	b.respondEmbed(s, i, embed, true)
}

func kindLabel(kind string) string {
	switch kind {
	case database.KindComplaint:
		return "⚠️ Complaint"
	case database.KindSuggestion:
		return "💡 Suggestion"
	case database.KindReview:
		return "⭐ Review"
	default:
		return kind
	}
}

func (b *Bot) handleViewRedemptions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	ctx := context.Background()
	redemptions, err := b.db.ListRedemptions(ctx, 10)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	if len(redemptions) == 0 {
		b.respondEphemeral(s, i, "No redemptions yet!")
		return
	}

	var lines strings.Builder
	for _, r := range redemptions {
		fmt.Fprintf(&lines, "**%s** • %d pts • <@%s> • `%s` (%s)\n",
			r.EntryName, r.Cost, r.UserID, r.VoucherCode, formatAge(time.Since(r.CreatedAt)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Recent Redemptions",
		Description: truncate(lines.String(), 4000),
		Color:       colorGold,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) handleUpdateLoyalty(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}
	adminID := getUserID(i)

	ctx := context.Background()
	changed, err := b.db.RecomputeAllTiers(ctx)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	b.audit(ctx, database.AuditLoyaltyUpdate, adminID, map[string]interface{}{"changed": changed})
	logging.Rewards("Admin %s recomputed tiers, %d accounts moved", adminID, changed)

	b.respondEphemeral(s, i, fmt.Sprintf("✅ Loyalty tiers updated! %d members changed tier.", changed))
}

func (b *Bot) handleVIPReport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.checkAdmin(s, i) {
		return
	}

	ctx := context.Background()
	stats, err := b.db.GetStats(ctx)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentDatabase, err)
		return
	}

	var tiers strings.Builder
	for _, t := range b.db.Tiers() {
		fmt.Fprintf(&tiers, "%s: **%d**\n", t.Name, stats.TierCounts[t.Name])
	}
	// Tiers left behind by an older configuration
	var extra []string
	for name := range stats.TierCounts {
		if !slices.ContainsFunc(b.db.Tiers(), func(t database.Tier) bool { return t.Name == name }) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		fmt.Fprintf(&tiers, "%s: **%d**\n", name, stats.TierCounts[name])
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 VIP Business Report",
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Orders Today", Value: strconv.Itoa(stats.OrdersToday), Inline: true},
			{Name: "Items Ordered Today", Value: strconv.Itoa(stats.ItemsToday), Inline: true},
			{Name: "Redemptions Today", Value: strconv.Itoa(stats.RedemptionsToday), Inline: true},
			{Name: "Points Redeemed Today", Value: strconv.Itoa(stats.PointsRedeemed), Inline: true},
			{Name: "Rewards Members", Value: strconv.Itoa(stats.Members), Inline: true},
			{Name: "Points Outstanding", Value: strconv.Itoa(stats.PointsHeld), Inline: true},
			{Name: "Members by Tier", Value: tiers.String()},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)
}

// audit records an admin action. Failures are logged and never block the reply.
func (b *Bot) audit(ctx context.Context, action, userID string, details map[string]interface{}) {
	if err := b.db.LogAudit(ctx, action, userID, details); err != nil {
		logging.Error(logging.ComponentDatabase, "Error logging audit entry %s: %v", action, err)
	}
}

// parseUserRef accepts a raw user ID or a <@id> / <@!id> mention
func parseUserRef(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if inner, ok := strings.CutPrefix(ref, "<@"); ok {
		ref = strings.TrimSuffix(strings.TrimPrefix(inner, "!"), ">")
	}
	if ref == "" {
		return "", false
	}
	if _, err := strconv.ParseUint(ref, 10, 64); err != nil {
		return "", false
	}
	return ref, true
}
