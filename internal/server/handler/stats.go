package handler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/server/storage"
	"github.com/palemoky/bisca/internal/types"
)

const queryTimeout = 3 * time.Second

// --- 排行榜处理 ---

// handleGetStats 获取个人统计
func (h *Handler) handleGetStats(client types.ClientInterface) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	playerStats, err := h.leaderboard.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		log.WithError(err).Warn("获取统计失败")
		client.SendMessage(codec.NewRejection(protocol.ErrCodeUnknown))
		return
	}

	if playerStats == nil {
		// 没有统计数据，返回空数据
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
			Rank:       -1,
		}))
		return
	}

	rank, _ := h.leaderboard.GetPlayerRank(ctx, client.GetID())

	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:      playerStats.PlayerID,
		PlayerName:    playerStats.PlayerName,
		TotalGames:    playerStats.TotalGames,
		Wins:          playerStats.Wins,
		Losses:        playerStats.Losses,
		Draws:         playerStats.Draws,
		WinRate:       playerStats.WinRate(),
		TotalPoints:   playerStats.TotalPoints,
		Score:         playerStats.Score,
		Rank:          int(rank),
		CurrentStreak: playerStats.CurrentStreak,
		MaxWinStreak:  playerStats.MaxWinStreak,
	}))
}

// handleGetLeaderboard 获取排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		// 默认获取总排行榜前 10
		payload = &protocol.GetLeaderboardPayload{Type: storage.BoardTotal, Limit: 10}
	}

	// 限制请求数量
	if payload.Limit <= 0 || payload.Limit > 50 {
		payload.Limit = 10
	}
	if payload.Offset < 0 {
		payload.Offset = 0
	}
	switch payload.Type {
	case storage.BoardDaily, storage.BoardWeekly:
	default:
		payload.Type = storage.BoardTotal
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	entries, err := h.leaderboard.GetLeaderboard(ctx, payload.Type, payload.Offset, payload.Limit)
	if err != nil {
		log.WithError(err).Warn("获取排行榜失败")
		client.SendMessage(codec.NewRejection(protocol.ErrCodeUnknown))
		return
	}

	// 转换为协议格式
	protocolEntries := make([]protocol.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		protocolEntries = append(protocolEntries, protocol.LeaderboardEntry{
			Rank:       entry.Rank,
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Score:      entry.Score,
			Wins:       entry.Wins,
			WinRate:    entry.WinRate,
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    payload.Type,
		Entries: protocolEntries,
	}))
}

// handleGetHistory 最近对局
func (h *Handler) handleGetHistory(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.GetHistoryPayload](msg)
	if err != nil || payload.Limit <= 0 || payload.Limit > 50 {
		payload = &protocol.GetHistoryPayload{Limit: 10}
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	records, err := h.history.RecentMatches(ctx, client.GetID(), payload.Limit)
	if err != nil {
		log.WithError(err).Warn("获取对局历史失败")
		client.SendMessage(codec.NewRejection(protocol.ErrCodeUnknown))
		return
	}

	matches := make([]protocol.MatchSummary, 0, len(records))
	for _, rec := range records {
		matches = append(matches, protocol.MatchSummary{
			RoomID:    rec.RoomID,
			PlayerA:   rec.PlayerAName,
			PlayerB:   rec.PlayerBName,
			ScoreA:    rec.ScoreA,
			ScoreB:    rec.ScoreB,
			Winner:    rec.Winner,
			Automated: rec.Automated,
			EndedAt:   rec.EndedAt.UnixMilli(),
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgHistoryResult, protocol.HistoryResultPayload{
		Matches: matches,
	}))
}
