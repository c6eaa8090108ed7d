package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/playgrid/tictactoe-arena/internal/entity"
)

const (
	leaderboardScoresKey = "leaderboard:scores"
	leaderboardNamesKey  = "leaderboard:names"
)

// LeaderboardRepository is the cumulative score mirror. Live profiles die
// with their connection; this survives them and feeds the public
// leaderboard.
type LeaderboardRepository interface {
	IncrScore(ctx context.Context, playerID, name string, points int64) error
	TopN(ctx context.Context, n int64) ([]entity.LeaderboardEntry, error)
}

type dbLeaderboard struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

// IncrScore adds points to the player's cumulative score and remembers the
// last display name they played under.
func (that *dbLeaderboard) IncrScore(ctx context.Context, playerID, name string, points int64) error {
	pipe := that.client.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardScoresKey, float64(points), playerID)
	pipe.HSet(ctx, leaderboardNamesKey, playerID, name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	return nil
}

// TopN returns up to n entries sorted by score descending. Ties come back in
// the sorted set's lexical member order, which is stable.
func (that *dbLeaderboard) TopN(ctx context.Context, n int64) ([]entity.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	scored, err := that.client.ZRevRangeWithScores(ctx, leaderboardScoresKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	if len(scored) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(scored))
	for _, member := range scored {
		ids = append(ids, member.Member.(string))
	}

	names, err := that.client.HMGet(ctx, leaderboardNamesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard names: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(scored))
	for i, member := range scored {
		entry := entity.LeaderboardEntry{
			ID:    ids[i],
			Score: int64(member.Score),
		}

		if name, ok := names[i].(string); ok {
			entry.Name = name
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
