package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"finbot/internal/store"
)

// Integration tests run only when TEST_DATABASE_URL points at a disposable
// PostgreSQL instance.
func testStore(t *testing.T) *store.Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("integration test - requires PostgreSQL (set TEST_DATABASE_URL)")
	}

	s, err := store.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestUpsertUser_LastWriteWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, 1001, "jdoe", "Jane"))
	require.NoError(t, s.UpsertUser(ctx, 1001, "jdoe2", "Janet"))

	// The primary key keeps the id to a single row; the second call must
	// have overwritten the display fields.
	u, err := s.User(ctx, 1001)
	require.NoError(t, err)
	require.Equal(t, int64(1001), u.UserID)
	require.Equal(t, "jdoe2", u.Username)
	require.Equal(t, "Janet", u.DisplayName)
	require.False(t, u.CreatedAt.IsZero())
}

func TestWatchlist_OrderAndNormalization(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, 1002, "u", "U"))
	require.NoError(t, s.AddToWatchlist(ctx, 1002, "aapl"))
	require.NoError(t, s.AddToWatchlist(ctx, 1002, "msft"))
	require.NoError(t, s.AddToWatchlist(ctx, 1002, "aapl")) // duplicates permitted

	tickers, err := s.Watchlist(ctx, 1002)
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "MSFT", "AAPL"}, tickers)
}

func TestWatchlist_EmptyIsNotAnError(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, 1003, "u", "U"))

	tickers, err := s.Watchlist(ctx, 1003)
	require.NoError(t, err)
	require.Empty(t, tickers)
}
