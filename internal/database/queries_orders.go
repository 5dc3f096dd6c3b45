package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Order statuses
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

const (
	MaxItemLength = 500
	MaxQuantity   = 100
)

var knownStatuses = []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// NormalizeStatus returns the canonical casing of a known status. Other
// values are returned trimmed but otherwise unchanged.
func NormalizeStatus(status string) string {
	status = strings.TrimSpace(status)
	for _, s := range knownStatuses {
		if strings.EqualFold(s, status) {
			return s
		}
	}
	return status
}

// PlaceOrder records a new pending order
func (db *DB) PlaceOrder(ctx context.Context, userID, item string, quantity int) (*Order, error) {
	item = strings.TrimSpace(item)
	if item == "" || utf8.RuneCountInString(item) > MaxItemLength {
		return nil, fmt.Errorf("item must be 1-%d characters: %w", MaxItemLength, ErrInvalidInput)
	}
	if quantity < 1 || quantity > MaxQuantity {
		return nil, fmt.Errorf("quantity must be 1-%d: %w", MaxQuantity, ErrInvalidInput)
	}

	now := db.timestamp()
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO orders (user_id, item, quantity, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, item, quantity, StatusPending, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	return &Order{
		ID:        int(id),
		UserID:    userID,
		Item:      item,
		Quantity:  quantity,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetOrder retrieves an order by ID
func (db *DB) GetOrder(ctx context.Context, orderID int) (*Order, error) {
	query := `
		SELECT id, user_id, item, quantity, status, created_at, updated_at
		FROM orders
		WHERE id = ?
	`
	var o Order
	err := db.conn.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.UserID, &o.Item, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// ListRecentOrders returns a user's newest orders
func (db *DB) ListRecentOrders(ctx context.Context, userID string, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT id, user_id, item, quantity, status, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return db.queryOrders(ctx, query, userID, limit)
}

// ListAllOrders returns the newest orders across all users
func (db *DB) ListAllOrders(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, user_id, item, quantity, status, created_at, updated_at
		FROM orders
		ORDER BY id DESC
		LIMIT ?
	`
	return db.queryOrders(ctx, query, limit)
}

// CancelOrder deletes one of the user's pending orders. Orders owned by
// someone else are reported as not found.
func (db *DB) CancelOrder(ctx context.Context, userID string, orderID int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var owner, status string
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, status FROM orders WHERE id = ?`, orderID,
		).Scan(&owner, &status)
		if err == sql.ErrNoRows || (err == nil && owner != userID) {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		if status != StatusPending {
			return fmt.Errorf("order %d is %s: %w", orderID, status, ErrNotCancelable)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// UpdateOrderStatus overwrites an order's status and returns the updated order
func (db *DB) UpdateOrderStatus(ctx context.Context, orderID int, status string) (*Order, error) {
	status = NormalizeStatus(status)
	if status == "" {
		return nil, fmt.Errorf("empty status: %w", ErrInvalidInput)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, db.timestamp(), orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	return db.GetOrder(ctx, orderID)
}

func (db *DB) queryOrders(ctx context.Context, query string, args ...interface{}) ([]Order, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Item, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
