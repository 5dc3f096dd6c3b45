package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleTier(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if configured, name := b.menuChannel(menuTier); !b.requireChannel(s, i, configured, name) {
		return
	}
	b.showTierCard(s, i)
}

func (b *Bot) showTierCard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	acct, err := b.db.GetStatus(ctx, getUserID(i))
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	progress := "You've reached the top tier, you sweet thing! 👑"
	if next, missing, ok := database.NextTier(acct.Points, b.db.Tiers()); ok {
		progress = fmt.Sprintf("**%d** more points to reach **%s**", missing, next.Name)
	}

	embed := &discordgo.MessageEmbed{
		Title: "💖 Your VIP Sweet Holes Card 💖",
		Color: colorPink,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: displayName(i), Inline: true},
			{Name: "Tier", Value: acct.Tier, Inline: true},
			{Name: "Points", Value: fmt.Sprintf("%d", acct.Points), Inline: true},
			{Name: "Next Tier", Value: progress},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Stay sweet, sugar! More rewards coming your way! 😘",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if u := getUser(i); u != nil {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: u.AvatarURL("")}
	}

	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := getUserID(i)

	ctx := context.Background()
	bonus, acct, err := b.db.ClaimDaily(ctx, userID)
	if errors.Is(err, database.ErrAlreadyClaimedToday) {
		reset := b.db.NextDailyReset(time.Now())
		b.respondEphemeral(s, i, fmt.Sprintf(
			"⏰ Hold up sweetie! You've already claimed your daily reward today! Come back <t:%d:R> 💖", reset.Unix()))
		return
	}
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	logging.Rewards("Daily bonus of %d claimed by %s", bonus, userID)
	b.respondEphemeral(s, i, fmt.Sprintf(
		"🎉 **Daily Reward Claimed!** You earned **+%d points!**\nTotal points: %d", bonus, acct.Points))
}

func (b *Bot) handleSignup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := getUserID(i)

	ctx := context.Background()
	acct, err := b.db.Signup(ctx, userID)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	logging.Rewards("%s enrolled in rewards", userID)
	b.respondEphemeral(s, i, fmt.Sprintf(
		"✨ Welcome to Sweet Holes Rewards! You've earned %d bonus points!\nTotal points: %d",
		database.SignupBonus, acct.Points))

	b.notifier.Send(b.channels.Membership, &discordgo.MessageEmbed{
		Title:       "🎉 New Sweet Heart Joined!",
		Description: fmt.Sprintf("Give a warm welcome to <@%s>, our newest rewards member! 💕", userID),
		Color:       colorPink,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	txs, err := b.db.ListTransactions(ctx, getUserID(i), 10)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentRewards, err)
		return
	}

	if len(txs) == 0 {
		b.respondEphemeral(s, i, "No points activity yet, sweetie! Chat, react or claim your `/daily` to get started 💖")
		return
	}

	var lines strings.Builder
	for _, tx := range txs {
		fmt.Fprintf(&lines, "`%+d` %s → **%d** (%s)\n",
			tx.Delta, reasonLabel(tx.Reason), tx.BalanceAfter, formatAge(time.Since(tx.CreatedAt)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Your Points History",
		Description: lines.String(),
		Color:       colorPink,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	b.respondEmbed(s, i, embed, true)
}

func reasonLabel(reason string) string {
	switch reason {
	case database.ReasonMessage:
		return "Chatting"
	case database.ReasonReaction:
		return "Reaction"
	case database.ReasonDaily:
		return "Daily bonus"
	case database.ReasonSignup:
		return "Signup bonus"
	case database.ReasonAdminGrant:
		return "Staff gift"
	case database.ReasonAdminRemove:
		return "Staff adjustment"
	case database.ReasonRedeem:
		return "Redeemed"
	default:
		return reason
	}
}
