package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxVendorNameLength = 100
	MaxVendorCost       = 1_000_000

	vendorKeyPrefix = "vendor-"
)

// FixedCatalog lists the built-in rewards in ascending cost order
var FixedCatalog = []CatalogEntry{
	{Key: "donut", Name: "Any Donut", Cost: 150, Emoji: "🍩"},
	{Key: "icecream", Name: "Any Ice Cream Scoop", Cost: 165, Emoji: "🍦"},
	{Key: "coffee", Name: "Any Coffee", Cost: 180, Emoji: "☕"},
	{Key: "milkshake", Name: "Any Milkshake", Cost: 195, Emoji: "🥤"},
	{Key: "side", Name: "Any Side", Cost: 210, Emoji: "🍪"},
	{Key: "creamhole", Name: "Any Cream Hole", Cost: 225, Emoji: "🍩"},
	{Key: "breakfast", Name: "Any Breakfast Sammich", Cost: 240, Emoji: "🥯"},
	{Key: "meal", Name: "Free Meal Combo", Cost: 255, Emoji: "🍽️"},
	{Key: "coffeeweek", Name: "Week of Unlimited Coffee", Cost: 270, Emoji: "🔥"},
	{Key: "secret", Name: "VIP Secret Menu Item", Cost: 285, Emoji: "🤫"},
	{Key: "dessertmonth", Name: "Month of Free Desserts", Cost: 300, Emoji: "🎂"},
}

// VendorKey returns the catalog key of a vendor entry
func VendorKey(id int) string {
	return vendorKeyPrefix + strconv.Itoa(id)
}

// ParseVendorKey extracts the vendor entry ID from a catalog key. Only the
// form produced by VendorKey is accepted.
func ParseVendorKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, vendorKeyPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 || VendorKey(id) != key {
		return 0, false
	}
	return id, true
}

// ListCatalog returns the fixed entries followed by vendor entries, oldest first
func (db *DB) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	entries := make([]CatalogEntry, len(FixedCatalog))
	copy(entries, FixedCatalog)

	vendor, err := db.ListVendorEntries(ctx)
	if err != nil {
		return nil, err
	}
	return append(entries, vendor...), nil
}

// ListVendorEntries returns vendor-submitted entries, oldest first
func (db *DB) ListVendorEntries(ctx context.Context) ([]CatalogEntry, error) {
	query := `
		SELECT id, vendor_id, name, points_cost, description, created_at
		FROM vendor_rewards
		ORDER BY id ASC
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor rewards: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.VendorEntryID, &e.VendorID, &e.Name, &e.Cost, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor reward: %w", err)
		}
		e.Key = VendorKey(e.VendorEntryID)
		e.Emoji = "🎁"
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetCatalogEntry resolves a catalog key
func (db *DB) GetCatalogEntry(ctx context.Context, key string) (*CatalogEntry, error) {
	return getCatalogEntry(ctx, db.conn, key)
}

// Redeem spends the entry's cost and logs the redemption with a fresh
// voucher code. Nothing is written when the balance is short.
func (db *DB) Redeem(ctx context.Context, userID, key string) (*Redemption, error) {
	var r *Redemption
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		entry, err := getCatalogEntry(ctx, tx, key)
		if err != nil {
			return err
		}

		acct, err := db.spend(ctx, tx, userID, entry.Cost, ReasonRedeem)
		if err != nil {
			return err
		}

		now := db.timestamp()
		code := uuid.NewString()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO redemptions (user_id, entry_key, entry_name, cost, balance_after, voucher_code, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, entry.Key, entry.Name, entry.Cost, acct.Points, code, now,
		)
		if err != nil {
			return fmt.Errorf("failed to log redemption: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get redemption ID: %w", err)
		}

		r = &Redemption{
			ID:           int(id),
			UserID:       userID,
			EntryKey:     entry.Key,
			EntryName:    entry.Name,
			Cost:         entry.Cost,
			BalanceAfter: acct.Points,
			VoucherCode:  code,
			CreatedAt:    now,
			Tier:         acct.Tier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// AddVendorEntry validates and stores a vendor-submitted reward. costText
// is the raw form input.
func (db *DB) AddVendorEntry(ctx context.Context, vendorID, name, costText, description string) (*CatalogEntry, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || utf8.RuneCountInString(name) > MaxVendorNameLength {
		return nil, fmt.Errorf("name must be 1-%d characters: %w", MaxVendorNameLength, ErrInvalidInput)
	}

	cost, err := strconv.Atoi(strings.TrimSpace(costText))
	if err != nil || cost <= 0 || cost > MaxVendorCost {
		return nil, fmt.Errorf("cost %q must be a whole number from 1 to %d: %w", costText, MaxVendorCost, ErrInvalidInput)
	}

	now := db.timestamp()
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO vendor_rewards (vendor_id, name, points_cost, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		vendorID, name, cost, description, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor reward: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor reward ID: %w", err)
	}

	return &CatalogEntry{
		Key:           VendorKey(int(id)),
		Name:          name,
		Cost:          cost,
		Description:   description,
		Emoji:         "🎁",
		VendorEntryID: int(id),
		VendorID:      vendorID,
		CreatedAt:     now,
	}, nil
}

// RemoveVendorEntry deletes a vendor entry. Only the submitting vendor or an
// admin may remove it.
func (db *DB) RemoveVendorEntry(ctx context.Context, requesterID string, entryID int, isAdmin bool) (*CatalogEntry, error) {
	var entry *CatalogEntry
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		entry, err = getCatalogEntry(ctx, tx, VendorKey(entryID))
		if err != nil {
			return err
		}
		if !isAdmin && entry.VendorID != requesterID {
			return fmt.Errorf("vendor reward %d belongs to another vendor: %w", entryID, ErrForbidden)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM vendor_rewards WHERE id = ?`, entryID); err != nil {
			return fmt.Errorf("failed to delete vendor reward: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListRedemptions returns the newest redemptions
func (db *DB) ListRedemptions(ctx context.Context, limit int) ([]Redemption, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, user_id, entry_key, entry_name, cost, balance_after, voucher_code, created_at
		FROM redemptions
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []Redemption
	for rows.Next() {
		var r Redemption
		if err := rows.Scan(&r.ID, &r.UserID, &r.EntryKey, &r.EntryName, &r.Cost, &r.BalanceAfter, &r.VoucherCode, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, r)
	}
	return redemptions, rows.Err()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getCatalogEntry(ctx context.Context, q queryRower, key string) (*CatalogEntry, error) {
	for _, e := range FixedCatalog {
		if e.Key == key {
			entry := e
			return &entry, nil
		}
	}

	id, ok := ParseVendorKey(key)
	if !ok {
		return nil, fmt.Errorf("catalog entry %q: %w", key, ErrNotFound)
	}

	e := CatalogEntry{Key: key, VendorEntryID: id, Emoji: "🎁"}
	err := q.QueryRowContext(ctx,
		`SELECT vendor_id, name, points_cost, description, created_at FROM vendor_rewards WHERE id = ?`, id,
	).Scan(&e.VendorID, &e.Name, &e.Cost, &e.Description, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("catalog entry %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor reward: %w", err)
	}
	return &e, nil
}
