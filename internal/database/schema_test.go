package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// testClock is a settable time source for tests
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupTestDB(t *testing.T, opts ...Option) (*DB, func()) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := New(path, opts...)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func TestDatabaseInitialization(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	tables := []string{
		"rewards", "point_transactions", "orders", "vendor_rewards",
		"redemptions", "feedback", "audit_log", "guild_settings",
	}
	for _, table := range tables {
		var count int
		err := db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query %s table: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected 1 %s table, got %d", table, count)
		}
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	ctx := context.Background()
	if _, err := db.GrantPoints(ctx, "user1", 10, ReasonMessage); err != nil {
		t.Fatalf("failed to grant points: %v", err)
	}
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	acct, err := db.GetStatus(ctx, "user1")
	if err != nil {
		t.Fatalf("failed to get status: %v", err)
	}
	if acct.Points != 10 {
		t.Errorf("expected 10 points after reopen, got %d", acct.Points)
	}
}

func TestPointsCheckConstraint(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := db.GrantPoints(ctx, "user1", 5, ReasonMessage); err != nil {
		t.Fatalf("failed to grant points: %v", err)
	}

	_, err := db.conn.ExecContext(ctx, `UPDATE rewards SET points = -1 WHERE user_id = 'user1'`)
	if err == nil {
		t.Error("expected negative balance to violate the CHECK constraint")
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"orders.db", "orders.db?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on"},
		{"file:orders.db?cache=shared", "file:orders.db?cache=shared&_txlock=immediate&_busy_timeout=5000&_foreign_keys=on"},
	}
	for _, tt := range tests {
		if got := dsn(tt.in); got != tt.want {
			t.Errorf("dsn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGuildSettings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	settings, err := db.GetGuildSettings(ctx, "guild1")
	if err != nil {
		t.Fatalf("failed to get guild settings: %v", err)
	}
	if settings != nil {
		t.Fatalf("expected no settings for a new guild, got %+v", settings)
	}

	if err := db.SetGuildAdminRole(ctx, "guild1", "role-admin", "owner"); err != nil {
		t.Fatalf("failed to set admin role: %v", err)
	}
	if err := db.SetGuildVendorRole(ctx, "guild1", "role-vendor", "owner"); err != nil {
		t.Fatalf("failed to set vendor role: %v", err)
	}

	settings, err = db.GetGuildSettings(ctx, "guild1")
	if err != nil {
		t.Fatalf("failed to get guild settings: %v", err)
	}
	if settings.AdminRoleID != "role-admin" || settings.VendorRoleID != "role-vendor" {
		t.Errorf("unexpected roles: admin=%q vendor=%q", settings.AdminRoleID, settings.VendorRoleID)
	}

	if err := db.SetGuildAdminRole(ctx, "guild1", "role-admin-2", "owner"); err != nil {
		t.Fatalf("failed to update admin role: %v", err)
	}
	settings, _ = db.GetGuildSettings(ctx, "guild1")
	if settings.AdminRoleID != "role-admin-2" || settings.VendorRoleID != "role-vendor" {
		t.Errorf("update clobbered roles: admin=%q vendor=%q", settings.AdminRoleID, settings.VendorRoleID)
	}
}

func TestAuditLog(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	err := db.LogAudit(ctx, AuditGrantPoints, "admin1", map[string]interface{}{
		"target": "user1",
		"amount": 25,
	})
	if err != nil {
		t.Fatalf("failed to log audit: %v", err)
	}

	entries, err := db.ListAuditLog(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list audit log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != AuditGrantPoints || entries[0].UserID != "admin1" {
		t.Errorf("unexpected audit entry: %+v", entries[0])
	}
	if entries[0].Details != `{"amount":25,"target":"user1"}` {
		t.Errorf("unexpected details: %s", entries[0].Details)
	}
}
