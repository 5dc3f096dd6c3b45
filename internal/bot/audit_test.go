package bot

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"sweetholes/internal/database"
	"sweetholes/internal/logging"

	"github.com/stretchr/testify/require"
)

func TestAuditFailureIsLogged(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)

	b := &Bot{db: db}
	ctx := context.Background()
	b.audit(ctx, database.AuditLoyaltyUpdate, "system", map[string]interface{}{"changed": 1})

	entries, err := db.ListAuditLog(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, database.AuditLoyaltyUpdate, entries[0].Action)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logging.NewHandler(&buf, &logging.Options{NoColor: true})))
	defer slog.SetDefault(prev)

	require.NoError(t, db.Close())
	b.audit(ctx, database.AuditLoyaltyUpdate, "system", map[string]interface{}{"changed": 2})

	require.Contains(t, buf.String(), "[ERROR]")
	require.Contains(t, buf.String(), database.AuditLoyaltyUpdate)
}
