package storage

import (
	"context"
	"errors"
)

// Recorder fans a finished game out to the leaderboard and match history.
// Either backend may be nil.
type Recorder struct {
	leaderboard *LeaderboardManager
	history     *MatchHistory
}

// NewRecorder 创建结果记录器
func NewRecorder(leaderboard *LeaderboardManager, history *MatchHistory) *Recorder {
	return &Recorder{leaderboard: leaderboard, history: history}
}

// RecordMatch 记录一局。托管座位不计入排行榜
func (r *Recorder) RecordMatch(ctx context.Context, rec *MatchRecord) error {
	if r == nil || rec == nil {
		return nil
	}

	var errs []error
	seats := []struct {
		id, name    string
		bot         bool
		seat, score int
	}{
		{rec.PlayerAID, rec.PlayerAName, rec.PlayerABot, 1, rec.ScoreA},
		{rec.PlayerBID, rec.PlayerBName, rec.PlayerBBot, 2, rec.ScoreB},
	}
	for _, s := range seats {
		if s.bot {
			continue
		}
		result := ResultLoss
		switch rec.Winner {
		case 0:
			result = ResultDraw
		case s.seat:
			result = ResultWin
		}
		errs = append(errs, r.leaderboard.RecordGameResult(ctx, s.id, s.name, result, s.score))
	}

	errs = append(errs, r.history.RecordMatch(ctx, rec))
	return errors.Join(errs...)
}
