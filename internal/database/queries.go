package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Audit actions
const (
	AuditGrantPoints   = "grant_points"
	AuditRemovePoints  = "remove_points"
	AuditOrderStatus   = "update_order_status"
	AuditVendorAdd     = "vendor_add"
	AuditVendorRemove  = "vendor_remove"
	AuditLoyaltyUpdate = "update_loyalty"
	AuditConfigRole    = "config_role"
)

// LogAudit appends an audit entry; details are stored as JSON
func (db *DB) LogAudit(ctx context.Context, action, userID string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_log (action, user_id, timestamp, details)
		VALUES (?, ?, ?, ?)
	`
	if _, err := db.conn.ExecContext(ctx, query, action, userID, db.timestamp(), string(payload)); err != nil {
		return fmt.Errorf("failed to log action: %w", err)
	}
	return nil
}

// ListAuditLog returns the newest audit entries
func (db *DB) ListAuditLog(ctx context.Context, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, action, user_id, timestamp, details
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditLog
	for rows.Next() {
		var e AuditLog
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.UserID, &e.Timestamp, &details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats summarises today's business for the VIP report
type Stats struct {
	OrdersToday      int
	ItemsToday       int
	RedemptionsToday int
	PointsRedeemed   int
	Members          int
	PointsHeld       int
	TierCounts       map[string]int
}

// GetStats returns report figures. "Today" is the current calendar day in
// the configured time zone.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	local := db.now().In(db.loc)
	y, m, d := local.Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, db.loc).UTC()

	stats := &Stats{TierCounts: make(map[string]int)}

	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM orders WHERE created_at >= ?`, since,
	).Scan(&stats.OrdersToday, &stats.ItemsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(cost), 0) FROM redemptions WHERE created_at >= ?`, since,
	).Scan(&stats.RedemptionsToday, &stats.PointsRedeemed)
	if err != nil {
		return nil, fmt.Errorf("failed to count redemptions: %w", err)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(points), 0) FROM rewards WHERE points > 0 OR enrolled_at IS NOT NULL`,
	).Scan(&stats.Members, &stats.PointsHeld)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT loyalty_tier, COUNT(*) FROM rewards GROUP BY loyalty_tier`)
	if err != nil {
		return nil, fmt.Errorf("failed to count tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("failed to scan tier count: %w", err)
		}
		stats.TierCounts[tier] = n
	}

	return stats, rows.Err()
}

// Guild Settings

type GuildSettings struct {
	GuildID      string
	AdminRoleID  string
	VendorRoleID string
	ConfiguredAt time.Time
	ConfiguredBy string
	UpdatedAt    time.Time
}

// GetGuildSettings retrieves settings for a specific guild
func (db *DB) GetGuildSettings(ctx context.Context, guildID string) (*GuildSettings, error) {
	query := `
		SELECT guild_id, admin_role_id, vendor_role_id, configured_at, configured_by, updated_at
		FROM guild_settings
		WHERE guild_id = ?
	`

	settings, err := scanGuildSettings(db.conn.QueryRowContext(ctx, query, guildID))
	if err == sql.ErrNoRows {
		return nil, nil // No settings configured yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	return settings, nil
}

// SetGuildAdminRole sets or updates the admin role for a guild
func (db *DB) SetGuildAdminRole(ctx context.Context, guildID, roleID, configuredBy string) error {
	return db.setGuildRole(ctx, "admin_role_id", guildID, roleID, configuredBy)
}

// SetGuildVendorRole sets or updates the vendor role for a guild
func (db *DB) SetGuildVendorRole(ctx context.Context, guildID, roleID, configuredBy string) error {
	return db.setGuildRole(ctx, "vendor_role_id", guildID, roleID, configuredBy)
}

// column is one of the two role columns, never user input
func (db *DB) setGuildRole(ctx context.Context, column, guildID, roleID, configuredBy string) error {
	now := db.timestamp()
	query := fmt.Sprintf(`
		INSERT INTO guild_settings (guild_id, %[1]s, configured_at, configured_by, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			%[1]s = excluded.%[1]s,
			updated_at = excluded.updated_at
	`, column)

	if _, err := db.conn.ExecContext(ctx, query, guildID, roleID, now, configuredBy, now); err != nil {
		return fmt.Errorf("failed to set guild %s: %w", column, err)
	}
	return nil
}

func scanGuildSettings(row *sql.Row) (*GuildSettings, error) {
	var s GuildSettings
	var adminRoleID, vendorRoleID sql.NullString

	err := row.Scan(&s.GuildID, &adminRoleID, &vendorRoleID, &s.ConfiguredAt, &s.ConfiguredBy, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.AdminRoleID = adminRoleID.String
	s.VendorRoleID = vendorRoleID.String
	return &s, nil
}
