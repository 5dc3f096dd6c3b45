package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"sweetholes/internal/config"
	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
)

const (
	loyaltyRefreshInterval = 24 * time.Hour
	messageCooldown        = time.Minute
)

type Bot struct {
	session       *discordgo.Session
	db            *database.DB
	notifier      *Notifier
	adminRoleID   string
	vendorRoleID  string
	defaultRoleID string
	channels      config.Channels

	stop chan struct{}
	wg   sync.WaitGroup
}

type Config struct {
	Token         string
	AdminRoleID   string
	VendorRoleID  string
	DefaultRoleID string
	Channels      config.Channels
}

// New creates a new Discord bot instance backed by db. The caller owns db.
func New(cfg Config, db *database.DB) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:       session,
		db:            db,
		notifier:      NewNotifier(session),
		adminRoleID:   strings.TrimSpace(cfg.AdminRoleID),
		vendorRoleID:  strings.TrimSpace(cfg.VendorRoleID),
		defaultRoleID: strings.TrimSpace(cfg.DefaultRoleID),
		channels:      cfg.Channels,
		stop:          make(chan struct{}),
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers

	session.AddHandler(bot.ready)
	session.AddHandler(bot.interactionCreate)
	session.AddHandler(bot.messageCreate)
	session.AddHandler(bot.messageReactionAdd)
	session.AddHandler(bot.guildMemberAdd)
	session.AddHandler(bot.guildMemberRemove)

	return bot, nil
}

// Start opens the Discord connection, registers commands and blocks until
// SIGINT or SIGTERM.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	logging.Bot("Bot is now running. Press CTRL-C to exit.")

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.wg.Add(1)
	go b.loyaltyRefresher()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

// Close stops background work and closes the Discord session
func (b *Bot) Close() error {
	logging.Bot("Shutting down bot...")

	close(b.stop)
	b.wg.Wait()
	b.notifier.Wait()

	if err := b.session.Close(); err != nil {
		logging.Error(logging.ComponentBot, "Error closing Discord session: %v", err)
	}

	return nil
}

func (b *Bot) ready(s *discordgo.Session, event *discordgo.Ready) {
	logging.Bot("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)

	s.UpdateGameStatus(0, "Serving Sweet Holes 🍩")
}

// loyaltyRefresher recomputes every tier once a day
func (b *Bot) loyaltyRefresher() {
	defer b.wg.Done()

	ticker := time.NewTicker(loyaltyRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			changed, err := b.db.RecomputeAllTiers(ctx)
			if err != nil {
				logging.Error(logging.ComponentRewards, "Error refreshing loyalty tiers: %v", err)
			} else {
				logging.Rewards("Loyalty refresh moved %d accounts", changed)
				if changed > 0 {
					b.audit(ctx, database.AuditLoyaltyUpdate, "system", map[string]interface{}{"changed": changed})
				}
			}
			cancel()
		}
	}
}
