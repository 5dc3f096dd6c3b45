package bot

import (
	"context"
	"fmt"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// messageCreate grants passive points for chatting in a server
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()
	granted, err := b.db.RecordActivity(ctx, m.Author.ID, activityPoints(), database.ReasonMessage, messageCooldown)
	if err != nil {
		logging.Error(logging.ComponentRewards, "Error recording message activity for %s: %v", m.Author.ID, err)
		return
	}
	if granted {
		logging.Debug(logging.ComponentRewards, "Message points granted to %s", m.Author.ID)
	}
}

// messageReactionAdd grants one point per reaction
func (b *Bot) messageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || (s.State.User != nil && r.UserID == s.State.User.ID) {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}

	ctx := context.Background()
	if _, err := b.db.RecordActivity(ctx, r.UserID, 1, database.ReasonReaction, 0); err != nil {
		logging.Error(logging.ComponentRewards, "Error recording reaction for %s: %v", r.UserID, err)
	}
}

// guildMemberAdd assigns the default role and welcomes the new member
func (b *Bot) guildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	if b.defaultRoleID != "" {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, b.defaultRoleID); err != nil {
			logging.Error(logging.ComponentBot, "Error assigning default role to %s: %v", m.User.ID, err)
		}
	}

	logging.Bot("Member %s joined guild %s", m.User.ID, m.GuildID)
	b.notifier.Send(b.channels.Welcome, &discordgo.MessageEmbed{
		Title: "💝 Welcome to Sweet Holes! 🍩",
		Description: fmt.Sprintf(
			"Hey %s, welcome to the sweetest spot in town! 😘\nUse `/signup` to join our rewards program and grab your bonus points!",
			m.User.Mention()),
		Color:     colorPink,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("")},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// guildMemberRemove posts a goodbye
func (b *Bot) guildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	logging.Bot("Member %s left guild %s", m.User.ID, m.GuildID)
	b.notifier.Send(b.channels.Goodbye, &discordgo.MessageEmbed{
		Title:       "👋 See You Soon!",
		Description: fmt.Sprintf("**%s** has left Sweet Holes. We'll keep a donut warm for you 💔", m.User.Username),
		Color:       colorPink,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}
