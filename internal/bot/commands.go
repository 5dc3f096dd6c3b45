package bot

import (
	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

var (
	// Permission value for commands that require Manage Server permission
	manageServerPermission int64 = discordgo.PermissionManageServer

	minOne = 1.0
)

var commands = []*discordgo.ApplicationCommand{
	// Orders
	{
		Name:        "order",
		Description: "Place, check or cancel an order",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "place",
				Description: "Place a new order",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "item",
						Description: "What can I get you, sugar?",
						Required:    true,
						MaxLength:   database.MaxItemLength,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "quantity",
						Description: "How many (1-100)",
						Required:    true,
						MinValue:    &minOne,
						MaxValue:    database.MaxQuantity,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show your five most recent orders",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "cancel",
				Description: "Cancel one of your pending orders",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "id",
						Description: "Order ID",
						Required:    true,
						MinValue:    &minOne,
					},
				},
			},
		},
	},

	// Rewards
	{
		Name:        "tier",
		Description: "Show your VIP loyalty card",
	},
	{
		Name:        "daily",
		Description: "Claim your daily bonus points",
	},
	{
		Name:        "signup",
		Description: "Sign up for the Sweet Holes rewards program",
	},
	{
		Name:        "history",
		Description: "Show your latest point changes",
	},
	{
		Name:        "redeem",
		Description: "Redeem your points for treats",
	},
	{
		Name:        "catalog",
		Description: "List every reward and its cost",
	},

	// Fun
	{
		Name:        "pickup",
		Description: "Get a fun, flirty pick-up line",
	},
	{
		Name:        "truth",
		Description: "Get a flirty truth question",
	},
	{
		Name:        "dare",
		Description: "Get a fun dare task",
	},

	// Vendors
	{
		Name:        "vendor",
		Description: "Manage your partner rewards",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add a new vendor reward",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove one of your vendor rewards",
			},
		},
	},

	// Feedback
	{
		Name:        "complaint",
		Description: "File a complaint with the staff",
	},
	{
		Name:        "suggestion",
		Description: "Make a suggestion to improve Sweet Holes",
	},
	{
		Name:        "review",
		Description: "Rate your Sweet Holes experience",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "rating",
				Description: "1 to 5 stars",
				Required:    true,
				MinValue:    &minOne,
				MaxValue:    5,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "comment",
				Description: "Tell us more (optional)",
				Required:    false,
				MaxLength:   database.MaxFeedbackLength,
			},
		},
	},
	{
		Name:        "apply",
		Description: "Apply to join the Sweet Holes team",
	},

	// Admin
	{
		Name:        "menu",
		Description: "Post a button panel in this channel (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "panel",
				Description: "Which panel to post",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Main Menu", Value: panelMenu},
					{Name: "Orders", Value: panelOrder},
					{Name: "Redeem", Value: panelRedeem},
					{Name: "Vendor", Value: panelVendor},
					{Name: "Admin Controls", Value: panelAdmin},
				},
			},
		},
	},
	{
		Name:        "add_points",
		Description: "Give points to a user (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Who gets the points",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "How many points",
				Required:    true,
				MinValue:    &minOne,
			},
		},
	},
	{
		Name:        "remove_points",
		Description: "Take points from a user (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Whose points to remove",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "How many points",
				Required:    true,
				MinValue:    &minOne,
			},
		},
	},
	{
		Name:        "update_order_status",
		Description: "Change an order's status (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "Order ID",
				Required:    true,
				MinValue:    &minOne,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "status",
				Description: "New status, e.g. Processing or Completed",
				Required:    true,
			},
		},
	},
	{
		Name:        "view_orders",
		Description: "View the ten newest orders (admin only)",
	},
	{
		Name:        "view_feedback",
		Description: "View recent customer feedback (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "kind",
				Description: "Only show one kind",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Reviews", Value: database.KindReview},
					{Name: "Complaints", Value: database.KindComplaint},
					{Name: "Suggestions", Value: database.KindSuggestion},
				},
			},
		},
	},
	{
		Name:        "view_redemptions",
		Description: "View recent reward redemptions (admin only)",
	},
	{
		Name:        "update_loyalty",
		Description: "Recompute every loyalty tier now (admin only)",
	},
	{
		Name:        "vip_report",
		Description: "Generate the VIP business report (admin only)",
	},

	// Configuration
	{
		Name:        "config-set-admin-role",
		Description: "Set the admin role for this server (requires Manage Server permission)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role that will have admin permissions",
				Required:    true,
			},
		},
		DefaultMemberPermissions: &manageServerPermission,
	},
	{
		Name:        "config-set-vendor-role",
		Description: "Set the partner role for this server (requires Manage Server permission)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role that may add vendor rewards",
				Required:    true,
			},
		},
		DefaultMemberPermissions: &manageServerPermission,
	},
	{
		Name:                     "config-show",
		Description:              "Show current server configuration",
		DefaultMemberPermissions: &manageServerPermission,
	},
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	logging.Bot("Registering slash commands...")

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands); err != nil {
		return err
	}
	for _, cmd := range commands {
		logging.Debug(logging.ComponentBot, "Registered command: %s", cmd.Name)
	}
	logging.Bot("Registered %d commands", len(commands))

	return nil
}
