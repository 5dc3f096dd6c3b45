package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFixedCatalogOrdering(t *testing.T) {
	require.Len(t, FixedCatalog, 11)
	for i := 1; i < len(FixedCatalog); i++ {
		require.Greater(t, FixedCatalog[i].Cost, FixedCatalog[i-1].Cost)
	}
	require.Equal(t, "donut", FixedCatalog[0].Key)
	require.Equal(t, 300, FixedCatalog[len(FixedCatalog)-1].Cost)
}

func TestVendorKey(t *testing.T) {
	require.Equal(t, "vendor-12", VendorKey(12))

	id, ok := ParseVendorKey("vendor-12")
	require.True(t, ok)
	require.Equal(t, 12, id)

	for _, key := range []string{"donut", "vendor-", "vendor-abc", "vendor--1", "vendor-0", "vendor-+5", "vendor-05"} {
		_, ok := ParseVendorKey(key)
		require.False(t, ok, key)
	}
}

func TestAddVendorEntryAppearsInCatalog(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entry, err := db.AddVendorEntry(ctx, "vendor1", "Sprinkle Box", " 320 ", "A dozen sprinkled minis")
	require.NoError(t, err)
	require.Equal(t, VendorKey(entry.VendorEntryID), entry.Key)

	catalog, err := db.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, len(FixedCatalog)+1)

	last := catalog[len(catalog)-1]
	require.Equal(t, "Sprinkle Box", last.Name)
	require.Equal(t, 320, last.Cost)
	require.Equal(t, "A dozen sprinkled minis", last.Description)
	require.Equal(t, "vendor1", last.VendorID)

	got, err := db.GetCatalogEntry(ctx, entry.Key)
	require.NoError(t, err)
	require.Equal(t, "Sprinkle Box", got.Name)
}

func TestAddVendorEntryValidation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name, item, cost string
	}{
		{"empty name", "  ", "100"},
		{"non-numeric cost", "Box", "lots"},
		{"zero cost", "Box", "0"},
		{"negative cost", "Box", "-5"},
		{"fractional cost", "Box", "10.5"},
		{"cost too large", "Box", "1000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.AddVendorEntry(ctx, "vendor1", tt.item, tt.cost, "")
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	entries, err := db.ListVendorEntries(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRemoveVendorEntryPermissions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entry, err := db.AddVendorEntry(ctx, "vendor1", "Sprinkle Box", "320", "")
	require.NoError(t, err)

	_, err = db.RemoveVendorEntry(ctx, "vendor2", entry.VendorEntryID, false)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = db.GetCatalogEntry(ctx, entry.Key)
	require.NoError(t, err, "entry remains after a forbidden removal")

	removed, err := db.RemoveVendorEntry(ctx, "admin", entry.VendorEntryID, true)
	require.NoError(t, err)
	require.Equal(t, "Sprinkle Box", removed.Name)

	_, err = db.RemoveVendorEntry(ctx, "vendor1", entry.VendorEntryID, false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedeem(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := db.GrantPoints(ctx, "user1", 200, ReasonAdminGrant)
	require.NoError(t, err)

	r, err := db.Redeem(ctx, "user1", "donut")
	require.NoError(t, err)
	require.Equal(t, "Any Donut", r.EntryName)
	require.Equal(t, 150, r.Cost)
	require.Equal(t, 50, r.BalanceAfter)
	_, err = uuid.Parse(r.VoucherCode)
	require.NoError(t, err)

	// Short balance leaves everything untouched
	_, err = db.Redeem(ctx, "user1", "coffee")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	acct, err := db.GetStatus(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 50, acct.Points)

	redemptions, err := db.ListRedemptions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, redemptions, 1)
	require.Equal(t, r.VoucherCode, redemptions[0].VoucherCode)

	_, err = db.Redeem(ctx, "user1", "nonexistent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentRedeemsNeverOverdraw(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := db.GrantPoints(ctx, "user1", 300, ReasonAdminGrant)
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	var unexpected []error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := db.Redeem(ctx, "user1", "donut")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case !errors.Is(err, ErrInsufficientBalance):
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, unexpected)
	require.Equal(t, 2, succeeded)

	acct, err := db.GetStatus(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 0, acct.Points)

	redemptions, err := db.ListRedemptions(ctx, 20)
	require.NoError(t, err)
	require.Len(t, redemptions, 2)
}

func TestRedeemVendorEntry(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	entry, err := db.AddVendorEntry(ctx, "vendor1", "Sprinkle Box", "75", "")
	require.NoError(t, err)
	_, err = db.GrantPoints(ctx, "user1", 100, ReasonAdminGrant)
	require.NoError(t, err)

	r, err := db.Redeem(ctx, "user1", entry.Key)
	require.NoError(t, err)
	require.Equal(t, 25, r.BalanceAfter)
	require.Equal(t, entry.Key, r.EntryKey)
}
