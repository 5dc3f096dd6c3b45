package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment does not leak in
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"DISCORD_BOT_TOKEN", "DISCORD_TOKEN", "DATABASE_PATH",
		"ADMIN_ROLE_ID", "VENDOR_ROLE_ID", "DEFAULT_ROLE_ID",
		"STAFF_CHANNEL_ID", "ORDER_CHANNEL_ID", "TIER_CHANNEL_ID", "REDEEM_CHANNEL_ID",
		"VENDOR_CHANNEL_ID", "SUGGESTION_CHANNEL_ID", "MEMBERSHIP_CHANNEL_ID",
		"APPLICATION_CHANNEL_ID", "WELCOME_CHANNEL_ID", "GOODBYE_CHANNEL_ID",
		"KEEPALIVE_ADDR", "TIMEZONE", "DAILY_MIN", "DAILY_MAX", "DEBUG", "LOG_FILE",
	}
	for _, k := range keys {
		if old, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, old) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_BOT_TOKEN", "token")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "token", cfg.Token)
	require.Equal(t, "./data/orders.db", cfg.DatabasePath)
	require.Equal(t, ":8080", cfg.KeepAliveAddr)
	require.Equal(t, "Local", cfg.Timezone)
	require.Equal(t, 1, cfg.DailyMin)
	require.Equal(t, 40, cfg.DailyMax)
	require.False(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
	require.NotNil(t, cfg.Location)
}

func TestLoadLegacyTokenName(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "legacy")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "legacy", cfg.Token)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := []byte(`
discord_bot_token: from-file
staff_channel_id: "111"
order_channel_id: "222"
timezone: America/New_York
daily_max: 60
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))

	t.Setenv("ORDER_CHANNEL_ID", "333")
	t.Setenv("KEEPALIVE_ADDR", "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Token)
	require.Equal(t, "111", cfg.Channels.Staff)
	require.Equal(t, "333", cfg.Channels.Order, "environment wins over the file")
	require.Equal(t, "", cfg.KeepAliveAddr, "empty variable disables keep-alive")
	require.Equal(t, 60, cfg.DailyMax)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Token: "t", Timezone: "UTC", DailyMin: 1, DailyMax: 40}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Token = ""
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Timezone = "Not/AZone"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.DailyMin = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.DailyMin, cfg.DailyMax = 10, 5
	require.Error(t, cfg.Validate())
}
