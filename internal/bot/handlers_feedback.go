package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) showComplaintModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.showModal(s, i, formComplaint, "📝 File a Complaint",
		discordgo.TextInput{
			CustomID:    "text",
			Label:       "What went wrong?",
			Style:       discordgo.TextInputParagraph,
			Placeholder: "Tell us everything, sweetie. We'll make it right 💕",
			Required:    true,
			MaxLength:   database.MaxFeedbackLength,
		},
	)
}

func (b *Bot) showSuggestionModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.showModal(s, i, formSuggestion, "💡 Make a Suggestion",
		discordgo.TextInput{
			CustomID:    "text",
			Label:       "Your idea",
			Style:       discordgo.TextInputParagraph,
			Placeholder: "New flavours, events, anything!",
			Required:    true,
			MaxLength:   database.MaxFeedbackLength,
		},
	)
}

func (b *Bot) showApplyModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.showModal(s, i, formApply, "✨ Join the Sweet Holes Team",
		discordgo.TextInput{
			CustomID:  "name",
			Label:     "Name",
			Style:     discordgo.TextInputShort,
			Required:  true,
			MaxLength: 100,
		},
		discordgo.TextInput{
			CustomID:  "age",
			Label:     "Age",
			Style:     discordgo.TextInputShort,
			Required:  true,
			MaxLength: 3,
		},
		discordgo.TextInput{
			CustomID:  "why_join",
			Label:     "Why do you want to join?",
			Style:     discordgo.TextInputParagraph,
			Required:  true,
			MaxLength: 1000,
		},
	)
}

func (b *Bot) handleComplaintModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	ctx := context.Background()
	f, err := b.db.SubmitComplaint(ctx, getUserID(i), values["text"])
	if err != nil {
		b.respondFailure(s, i, logging.ComponentDatabase, err)
		return
	}

	logging.Bot("Complaint #%d filed by %s", f.ID, f.UserID)
	b.respondEphemeral(s, i, "💔 We're so sorry, sweetie! Your complaint has been sent to our staff and we'll make it right 💕")

	b.notifier.Send(b.channels.Staff, feedbackEmbed("⚠️ New Complaint Filed", colorRed, f))
}

func (b *Bot) handleSuggestionModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	ctx := context.Background()
	f, err := b.db.SubmitSuggestion(ctx, getUserID(i), values["text"])
	if err != nil {
		b.respondFailure(s, i, logging.ComponentDatabase, err)
		return
	}

	logging.Bot("Suggestion #%d submitted by %s", f.ID, f.UserID)
	b.respondEphemeral(s, i, "💡 Thank you for your suggestion, sugar! Our team will take a look 😘")

	b.notifier.Send(b.channels.Staff, feedbackEmbed("💡 New Suggestion Received", colorBlue, f))
}

func (b *Bot) handleReview(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := parseOptions(i.ApplicationCommandData().Options)
	rating := int(options["rating"].IntValue())
	comment := ""
	if opt := options["comment"]; opt != nil {
		comment = opt.StringValue()
	}

	ctx := context.Background()
	f, err := b.db.SubmitRating(ctx, getUserID(i), rating, comment)
	if err != nil {
		b.respondFailure(s, i, logging.ComponentDatabase, err)
		return
	}

	logging.Bot("Review #%d (%d stars) from %s", f.ID, rating, f.UserID)
	b.respondEphemeral(s, i, fmt.Sprintf("%s Thank you for your review, sweetheart! 💖", stars(rating)))

	b.notifier.Send(b.channels.Staff, feedbackEmbed("⭐ New Customer Review", colorGold, f))
}

func (b *Bot) handleApplyModal(s *discordgo.Session, i *discordgo.InteractionCreate, values map[string]string) {
	if values["name"] == "" || values["why_join"] == "" {
		b.respondError(s, i, "Please fill in every field, sugar!")
		return
	}

	userID := getUserID(i)
	logging.Bot("Employee application from %s", userID)

	channel := b.channels.Application
	if channel == "" {
		channel = b.channels.Staff
	}
	b.notifier.Send(channel, &discordgo.MessageEmbed{
		Title: "✨ New Employee Application",
		Color: colorPink,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Applicant", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
			{Name: "Name", Value: values["name"], Inline: true},
			{Name: "Age", Value: values["age"], Inline: true},
			{Name: "Why Join", Value: truncate(values["why_join"], 1024)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})

	b.respondEphemeral(s, i, "🔥 Application received, gorgeous! Our team will be in touch soon 😘")
}

func feedbackEmbed(title string, color int, f *database.Feedback) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "From", Value: fmt.Sprintf("<@%s>", f.UserID), Inline: true},
			{Name: "ID", Value: fmt.Sprintf("#%d", f.ID), Inline: true},
		},
		Timestamp: f.CreatedAt.Format(time.RFC3339),
	}
	if f.Rating != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Rating", Value: stars(*f.Rating), Inline: true,
		})
	}
	if f.Body != "" {
		embed.Description = truncate(f.Body, 4000)
	}
	return embed
}

func stars(rating int) string {
	return strings.Repeat("⭐", rating)
}
