package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// 排行榜类型
const (
	BoardTotal  = "total"
	BoardDaily  = "daily"
	BoardWeekly = "weekly"
)

// GameResult 单个玩家视角的结果
type GameResult int

const (
	ResultLoss GameResult = iota
	ResultWin
	ResultDraw
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	// 总计
	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场
	Draws      int `json:"draws"`       // 平局（60:60）

	TotalPoints int `json:"total_points"` // 累计牌分
	BestPoints  int `json:"best_points"`  // 单局最高牌分

	// 积分
	Score int `json:"score"`

	// 连胜/连败
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// 积分规则
const (
	WinScore  = 20
	DrawScore = 5
	LossScore = -10

	// 连胜加成
	StreakBonus3  = 5
	StreakBonus5  = 10
	StreakBonus10 = 20
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardManager 排行榜管理器，redis 为 nil 时不记录
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// Enabled 是否可用
func (lm *LeaderboardManager) Enabled() bool {
	return lm != nil && lm.redis != nil
}

// GetPlayerStats 获取玩家统计，没有记录时返回 nil, nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	if !lm.Enabled() {
		return nil, nil
	}

	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  lm.now().Unix(),
		}
	}
	return stats, nil
}

// applyResult 更新胜负和连胜，返回基础积分变化
func applyResult(stats *PlayerStats, result GameResult) int {
	switch result {
	case ResultWin:
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
		stats.MaxWinStreak = max(stats.MaxWinStreak, stats.CurrentStreak)
		return WinScore + calculateStreakBonus(stats.CurrentStreak)
	case ResultDraw:
		stats.Draws++
		stats.CurrentStreak = 0
		return DrawScore
	default:
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
		return LossScore
	}
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordGameResult 记录一局结果
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, playerID, playerName string, result GameResult, points int) error {
	if !lm.Enabled() {
		return nil
	}

	stats, err := lm.getOrCreateStats(ctx, playerID, playerName)
	if err != nil {
		return err
	}

	stats.PlayerName = playerName
	stats.TotalGames++
	stats.TotalPoints += points
	stats.BestPoints = max(stats.BestPoints, points)
	stats.LastPlayedAt = lm.now().Unix()
	stats.Score = max(0, stats.Score+applyResult(stats, result))

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) boardKey(kind string) string {
	now := lm.now()
	switch kind {
	case BoardDaily:
		return dailyLeaderboard + now.Format("2006-01-02")
	case BoardWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	default:
		return leaderboardKey
	}
}

// UpdateLeaderboard 更新总榜、日榜、周榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	member := redis.Z{Score: float64(stats.Score), Member: stats.PlayerID}

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, member)

	dailyKey := lm.boardKey(BoardDaily)
	pipe.ZAdd(ctx, dailyKey, member)
	pipe.Expire(ctx, dailyKey, 48*time.Hour)

	weeklyKey := lm.boardKey(BoardWeekly)
	pipe.ZAdd(ctx, weeklyKey, member)
	pipe.Expire(ctx, weeklyKey, 8*24*time.Hour)

	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 获取排行榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, kind string, offset, limit int) ([]*LeaderboardEntry, error) {
	if !lm.Enabled() || limit <= 0 {
		return []*LeaderboardEntry{}, nil
	}

	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.boardKey(kind), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, _ := result.Member.(string)
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		entries = append(entries, &LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			Wins:       stats.Wins,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家总榜排名，未上榜为 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	if !lm.Enabled() {
		return -1, nil
	}

	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
