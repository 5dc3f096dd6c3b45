package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceOrderValidation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name     string
		item     string
		quantity int
		wantErr  bool
	}{
		{"valid", "Glazed Donut", 2, false},
		{"trimmed", "   Latte  ", 1, false},
		{"empty item", "   ", 1, true},
		{"item too long", strings.Repeat("x", MaxItemLength+1), 1, true},
		{"zero quantity", "Donut", 0, true},
		{"quantity too large", "Donut", MaxQuantity + 1, true},
		{"max quantity", "Donut", MaxQuantity, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := db.PlaceOrder(ctx, "user1", tt.item, tt.quantity)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, StatusPending, order.Status)
			require.Equal(t, strings.TrimSpace(tt.item), order.Item)
		})
	}
}

func TestListRecentOrders(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		_, err := db.PlaceOrder(ctx, "user1", "Donut", i)
		require.NoError(t, err)
	}
	_, err := db.PlaceOrder(ctx, "user2", "Coffee", 1)
	require.NoError(t, err)

	orders, err := db.ListRecentOrders(ctx, "user1", 5)
	require.NoError(t, err)
	require.Len(t, orders, 5)
	require.Equal(t, 7, orders[0].Quantity, "newest first")
	for _, o := range orders {
		require.Equal(t, "user1", o.UserID)
	}

	all, err := db.ListAllOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 8)
	require.Equal(t, "user2", all[0].UserID)
}

func TestCancelOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	order, err := db.PlaceOrder(ctx, "user1", "Cream Hole", 3)
	require.NoError(t, err)

	// Someone else's order looks missing
	err = db.CancelOrder(ctx, "user2", order.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.CancelOrder(ctx, "user1", order.ID))

	err = db.CancelOrder(ctx, "user1", order.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetOrder(ctx, order.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelNonPendingOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	order, err := db.PlaceOrder(ctx, "user1", "Milkshake", 1)
	require.NoError(t, err)

	_, err = db.UpdateOrderStatus(ctx, order.ID, "processing")
	require.NoError(t, err)

	err = db.CancelOrder(ctx, "user1", order.ID)
	require.ErrorIs(t, err, ErrNotCancelable)

	got, err := db.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, got.Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	order, err := db.PlaceOrder(ctx, "user1", "Coffee", 1)
	require.NoError(t, err)

	updated, err := db.UpdateOrderStatus(ctx, order.ID, "  COMPLETED ")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, updated.Status)

	updated, err = db.UpdateOrderStatus(ctx, order.ID, "Out for delivery")
	require.NoError(t, err)
	require.Equal(t, "Out for delivery", updated.Status)

	_, err = db.UpdateOrderStatus(ctx, order.ID, " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = db.UpdateOrderStatus(ctx, 9999, StatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)
}
