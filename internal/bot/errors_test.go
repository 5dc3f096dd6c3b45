package bot

import (
	"errors"
	"fmt"
	"testing"

	"sweetholes/internal/database"

	"github.com/stretchr/testify/require"
)

func TestUserMessageKnownErrors(t *testing.T) {
	known := []error{
		database.ErrNotFound,
		database.ErrForbidden,
		database.ErrInsufficientBalance,
		database.ErrAlreadyClaimedToday,
		database.ErrInvalidInput,
		database.ErrNotCancelable,
		database.ErrAlreadyExists,
	}

	seen := map[string]bool{}
	for _, sentinel := range known {
		wrapped := fmt.Errorf("order 7: %w", sentinel)
		msg, ok := userMessage(wrapped)
		require.True(t, ok, sentinel.Error())
		require.NotEqual(t, genericFailure, msg)
		require.False(t, seen[msg], "duplicate message for %v", sentinel)
		seen[msg] = true
	}
}

func TestUserMessageUnknownError(t *testing.T) {
	msg, ok := userMessage(errors.New("disk I/O error"))
	require.False(t, ok)
	require.Equal(t, genericFailure, msg)
}
