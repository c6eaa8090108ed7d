package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playgrid/tictactoe-arena/testing/suite"
)

// Runs against a real Redis container; skipped with -short.
func TestLeaderboardRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker-backed integration test in short mode")
	}

	ctx, st := suite.New(t)

	repo := NewLeaderboardRepository(st.Storage)

	// Given: wins for two players
	require.NoError(t, repo.IncrScore(ctx, "conn-1", "alice", 10))
	require.NoError(t, repo.IncrScore(ctx, "conn-2", "bob", 10))
	require.NoError(t, repo.IncrScore(ctx, "conn-2", "bob", 10))

	// When: the leaderboard is read back
	entries, err := repo.TopN(ctx, 10)
	require.NoError(t, err)

	// Then: bob leads with the combined score
	require.Len(t, entries, 2)
	require.Equal(t, "conn-2", entries[0].ID)
	require.EqualValues(t, 20, entries[0].Score)
	require.Equal(t, "conn-1", entries[1].ID)
	require.EqualValues(t, 10, entries[1].Score)
}
