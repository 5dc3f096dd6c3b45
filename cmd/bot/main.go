package main

import (
	"log"
	"os"
	"path/filepath"

	"sweetholes/internal/bot"
	"sweetholes/internal/config"
	"sweetholes/internal/database"
	"sweetholes/internal/keepalive"
	"sweetholes/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	closeLog, err := logging.Setup(cfg.Debug, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.New(cfg.DatabasePath,
		database.WithLocation(cfg.Location),
		database.WithDailyBonus(cfg.DailyMin, cfg.DailyMax),
	)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	logging.Database("Database ready at %s", cfg.DatabasePath)

	if cfg.KeepAliveAddr != "" {
		srv := keepalive.New(cfg.KeepAliveAddr)
		if err := srv.Start(); err != nil {
			logging.Error(logging.ComponentKeepAlive, "Keep-alive server failed to start: %v", err)
		} else {
			defer srv.Shutdown()
		}
	}

	b, err := bot.New(bot.Config{
		Token:         cfg.Token,
		AdminRoleID:   cfg.AdminRoleID,
		VendorRoleID:  cfg.VendorRoleID,
		DefaultRoleID: cfg.DefaultRoleID,
		Channels:      cfg.Channels,
	}, db)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	defer b.Close()

	// Start bot
	if err := b.Start(); err != nil {
		logging.Error(logging.ComponentBot, "Failed to start bot: %v", err)
	}
}
