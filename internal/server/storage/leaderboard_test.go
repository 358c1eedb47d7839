package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboardManager(t *testing.T) *LeaderboardManager {
	t.Helper()
	client, _ := newTestRedisClient(t)
	return NewLeaderboardManager(client)
}

func TestLeaderboard_RecordGameResult_NewPlayer(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 74))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "p1", stats.PlayerID)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 74, stats.TotalPoints)
	assert.Equal(t, 74, stats.BestPoints)
	assert.Equal(t, WinScore, stats.Score)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.InDelta(t, 100.0, stats.WinRate(), 0.001)
}

func TestLeaderboard_RecordGameResult_Update(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultLoss, 40))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultDraw, 60))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Renamed", ResultLoss, 30))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, "Renamed", stats.PlayerName)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 130, stats.TotalPoints)
	assert.Equal(t, 60, stats.BestPoints)
	// 0 → 0 (floor) → 5 → 0
	assert.Equal(t, 0, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboardManager(t)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 61))
	}

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	// third straight win earns the 3-streak bonus
	assert.Equal(t, 3*WinScore+StreakBonus3, stats.Score)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
}

func TestCalculateStreakBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		streak int
		want   int
	}{
		{-3, 0}, {0, 0}, {2, 0}, {3, StreakBonus3}, {4, StreakBonus3},
		{5, StreakBonus5}, {9, StreakBonus5}, {10, StreakBonus10}, {25, StreakBonus10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculateStreakBonus(tt.streak), "streak %d", tt.streak)
	}
}

func TestLeaderboard_GetLeaderboard(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboardManager(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 70))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Player2", ResultDraw, 60))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 80))

	for _, kind := range []string{BoardTotal, BoardDaily, BoardWeekly} {
		entries, err := lm.GetLeaderboard(ctx, kind, 0, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2, kind)

		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "p1", entries[0].PlayerID)
		assert.Equal(t, 2*WinScore, entries[0].Score)
		assert.Equal(t, 2, entries[0].Wins)
		assert.Equal(t, "p2", entries[1].PlayerID)
		assert.Equal(t, 2, entries[1].Rank)
	}

	page, err := lm.GetLeaderboard(ctx, BoardTotal, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 2, page[0].Rank)
}

func TestLeaderboard_BoardKeys(t *testing.T) {
	t.Parallel()

	lm := NewLeaderboardManager(nil)
	lm.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, "leaderboard:score", lm.boardKey(BoardTotal))
	assert.Equal(t, "leaderboard:daily:2026-03-04", lm.boardKey(BoardDaily))
	assert.Equal(t, "leaderboard:weekly:2026-W10", lm.boardKey(BoardWeekly))
}

func TestLeaderboard_GetPlayerRank(t *testing.T) {
	t.Parallel()

	lm := newTestLeaderboardManager(t)
	ctx := context.Background()

	rank, err := lm.GetPlayerRank(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 70))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Player2", ResultDraw, 60))

	rank, err = lm.GetPlayerRank(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)
}

func TestLeaderboard_Disabled(t *testing.T) {
	t.Parallel()

	lm := NewLeaderboardManager(nil)
	ctx := context.Background()

	assert.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", ResultWin, 70))
	stats, err := lm.GetPlayerStats(ctx, "p1")
	assert.NoError(t, err)
	assert.Nil(t, stats)

	entries, err := lm.GetLeaderboard(ctx, BoardTotal, 0, 10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
