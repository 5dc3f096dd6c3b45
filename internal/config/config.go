// Package config loads bot settings from the environment, an optional .env
// file and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Channels holds the channel IDs the bot posts to or restricts commands to.
// An empty ID means the channel is not configured.
type Channels struct {
	Staff       string
	Order       string
	Tier        string
	Redeem      string
	Vendor      string
	Suggestion  string
	Membership  string
	Application string
	Welcome     string
	Goodbye     string
}

type Config struct {
	Token         string
	DatabasePath  string
	AdminRoleID   string
	VendorRoleID  string
	DefaultRoleID string
	Channels      Channels

	KeepAliveAddr string
	Timezone      string
	Location      *time.Location
	DailyMin      int
	DailyMax      int

	Debug   bool
	LogFile string
}

const defaultDatabasePath = "./data/orders.db"

// Load reads .env (if present) and then the environment, falling back to
// config.yaml in the given directories ("." and "./data" when none are given).
func Load(configPaths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{".", "./data"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetDefault("database_path", defaultDatabasePath)
	v.SetDefault("keepalive_addr", ":8080")
	v.SetDefault("timezone", "Local")
	v.SetDefault("daily_min", 1)
	v.SetDefault("daily_max", 40)
	v.SetDefault("debug", false)

	// Explicitly empty variables count, so KEEPALIVE_ADDR= disables the server
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Token:         strings.TrimSpace(v.GetString("discord_bot_token")),
		DatabasePath:  strings.TrimSpace(v.GetString("database_path")),
		AdminRoleID:   strings.TrimSpace(v.GetString("admin_role_id")),
		VendorRoleID:  strings.TrimSpace(v.GetString("vendor_role_id")),
		DefaultRoleID: strings.TrimSpace(v.GetString("default_role_id")),
		Channels: Channels{
			Staff:       strings.TrimSpace(v.GetString("staff_channel_id")),
			Order:       strings.TrimSpace(v.GetString("order_channel_id")),
			Tier:        strings.TrimSpace(v.GetString("tier_channel_id")),
			Redeem:      strings.TrimSpace(v.GetString("redeem_channel_id")),
			Vendor:      strings.TrimSpace(v.GetString("vendor_channel_id")),
			Suggestion:  strings.TrimSpace(v.GetString("suggestion_channel_id")),
			Membership:  strings.TrimSpace(v.GetString("membership_channel_id")),
			Application: strings.TrimSpace(v.GetString("application_channel_id")),
			Welcome:     strings.TrimSpace(v.GetString("welcome_channel_id")),
			Goodbye:     strings.TrimSpace(v.GetString("goodbye_channel_id")),
		},
		KeepAliveAddr: strings.TrimSpace(v.GetString("keepalive_addr")),
		Timezone:      strings.TrimSpace(v.GetString("timezone")),
		DailyMin:      v.GetInt("daily_min"),
		DailyMax:      v.GetInt("daily_max"),
		Debug:         v.GetBool("debug"),
		LogFile:       strings.TrimSpace(v.GetString("log_file")),
	}

	if cfg.Token == "" {
		cfg.Token = strings.TrimSpace(v.GetString("discord_token"))
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	return cfg, nil
}

// Validate checks required settings and resolves the time zone.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("DISCORD_BOT_TOKEN environment variable is required")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.DailyMin < 1 {
		return fmt.Errorf("DAILY_MIN must be at least 1, got %d", c.DailyMin)
	}
	if c.DailyMax < c.DailyMin {
		return fmt.Errorf("DAILY_MAX (%d) must not be below DAILY_MIN (%d)", c.DailyMax, c.DailyMin)
	}

	return nil
}
