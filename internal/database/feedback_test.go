package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c, err := db.SubmitComplaint(ctx, "user1", "  Cold coffee  ")
	require.NoError(t, err)
	require.Equal(t, KindComplaint, c.Kind)
	require.Equal(t, "Cold coffee", c.Body)
	require.Nil(t, c.Rating)

	_, err = db.SubmitSuggestion(ctx, "user2", "More sprinkles")
	require.NoError(t, err)

	_, err = db.SubmitComplaint(ctx, "user1", "   ")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = db.SubmitSuggestion(ctx, "user1", strings.Repeat("a", MaxFeedbackLength+1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := db.SubmitRating(ctx, "user1", rating, "hmm")
		require.ErrorIs(t, err, ErrInvalidInput, "rating %d", rating)
	}

	review, err := db.SubmitRating(ctx, "user1", 5, "")
	require.NoError(t, err)
	require.NotNil(t, review.Rating)
	require.Equal(t, 5, *review.Rating)

	items, err := db.ListFeedback(ctx, KindReview, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Rating)
	require.Equal(t, 5, *items[0].Rating)
}

func TestListFeedbackByKind(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := db.SubmitComplaint(ctx, "user1", "complaint")
		require.NoError(t, err)
	}
	_, err := db.SubmitSuggestion(ctx, "user1", "suggestion")
	require.NoError(t, err)

	complaints, err := db.ListFeedback(ctx, KindComplaint, 5)
	require.NoError(t, err)
	require.Len(t, complaints, 5)
	for _, f := range complaints {
		require.Equal(t, KindComplaint, f.Kind)
		require.Nil(t, f.Rating)
	}

	all, err := db.ListFeedback(ctx, "", 20)
	require.NoError(t, err)
	require.Len(t, all, 8)
	require.Equal(t, KindSuggestion, all[0].Kind, "newest first")
}

func TestGetStats(t *testing.T) {
	clock := newTestClock(time.Date(2026, 7, 4, 15, 0, 0, 0, time.UTC))
	db, cleanup := setupTestDB(t, WithClock(clock.Now), WithLocation(time.UTC))
	defer cleanup()
	ctx := context.Background()

	// Yesterday's order is excluded
	clock.Advance(-24 * time.Hour)
	_, err := db.PlaceOrder(ctx, "user1", "Donut", 4)
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)

	_, err = db.PlaceOrder(ctx, "user1", "Donut", 2)
	require.NoError(t, err)
	_, err = db.PlaceOrder(ctx, "user2", "Coffee", 3)
	require.NoError(t, err)

	_, err = db.GrantPoints(ctx, "user1", 600, ReasonAdminGrant)
	require.NoError(t, err)
	_, err = db.Redeem(ctx, "user1", "donut")
	require.NoError(t, err)
	_, err = db.Signup(ctx, "user2")
	require.NoError(t, err)

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.OrdersToday)
	require.Equal(t, 5, stats.ItemsToday)
	require.Equal(t, 1, stats.RedemptionsToday)
	require.Equal(t, 150, stats.PointsRedeemed)
	require.Equal(t, 2, stats.Members)
	require.Equal(t, 450+SignupBonus, stats.PointsHeld)
	require.Equal(t, 2, stats.TierCounts["Flirty Bronze"])
}
