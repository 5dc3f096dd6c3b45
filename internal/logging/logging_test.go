package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 14, 8, 30, 15, 0, time.UTC)
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &Options{NoColor: true, Now: fixedNow}))

	logger.Info("points granted", slog.String("component", ComponentRewards), slog.Int("amount", 3))
	logger.Warn("plain warning")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "08:30:15 [INFO] [REWARDS] points granted amount=3", lines[0])
	require.Equal(t, "08:30:15 [WARN] plain warning", lines[1])
}

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &Options{NoColor: true, Now: fixedNow}))

	logger.Debug("hidden")
	require.Empty(t, buf.String())

	buf.Reset()
	logger = slog.New(NewHandler(&buf, &Options{Level: slog.LevelDebug, NoColor: true, Now: fixedNow}))
	logger.Debug("shown")
	require.Contains(t, buf.String(), "[DEBUG] shown")
}

func TestWithAttrsKeepsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &Options{NoColor: true, Now: fixedNow})).
		With(slog.String("component", ComponentDatabase))

	logger.Error("query failed")
	require.Equal(t, "08:30:15 [ERROR] [DATABASE] query failed\n", buf.String())
}

func TestSetupWritesLogFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "bot.log")
	closeLog, err := Setup(false, path)
	require.NoError(t, err)

	Orders("order #%d placed", 7)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [ORDERS] order #7 placed")
	require.NotContains(t, string(data), "\x1b[")
}
