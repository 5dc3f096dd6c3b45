package bot

import (
	"errors"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

const genericFailure = "Oops! Something went wrong, sweetie. Please try again!"

// userMessage maps a domain error to the reply shown to the user. ok is
// false for unexpected errors, which get the generic reply.
func userMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, database.ErrInsufficientBalance):
		return "Not enough points, sugar! Keep earning and come back soon 💖", true
	case errors.Is(err, database.ErrAlreadyClaimedToday):
		return "Hold up sweetie! You've already claimed your daily reward today! Come back tomorrow! 💖", true
	case errors.Is(err, database.ErrNotCancelable):
		return "Sorry sweetie, you can only cancel pending orders!", true
	case errors.Is(err, database.ErrForbidden):
		return "You can only remove your own rewards!", true
	case errors.Is(err, database.ErrAlreadyExists):
		return "You're already enrolled in our rewards program, sweetie! 💝", true
	case errors.Is(err, database.ErrNotFound):
		return "Couldn't find that one, sweetie! Double-check the ID?", true
	case errors.Is(err, database.ErrInvalidInput):
		return "That doesn't look right, sugar. Please check your input and try again!", true
	}
	return genericFailure, false
}

// respondFailure answers with the mapped message, logging unexpected errors
// under component.
func (b *Bot) respondFailure(s *discordgo.Session, i *discordgo.InteractionCreate, component string, err error) {
	msg, ok := userMessage(err)
	if !ok {
		logging.Error(component, "Error handling interaction: %v", err)
	}
	b.respondError(s, i, msg)
}
