package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createMatchesTable = `
CREATE TABLE IF NOT EXISTS matches (
	id          BIGSERIAL PRIMARY KEY,
	room_id     TEXT        NOT NULL,
	player_a_id TEXT        NOT NULL,
	player_a    TEXT        NOT NULL,
	player_b_id TEXT        NOT NULL,
	player_b    TEXT        NOT NULL,
	score_a     INT         NOT NULL,
	score_b     INT         NOT NULL,
	winner      SMALLINT    NOT NULL,
	automated   BOOLEAN     NOT NULL DEFAULT FALSE,
	ended_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS matches_player_a_idx ON matches (player_a_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS matches_player_b_idx ON matches (player_b_id, ended_at DESC);
`

// MatchRecord 一局结束后的记录。Winner 为 1/2，平局为 0
type MatchRecord struct {
	RoomID      string    `db:"room_id"`
	PlayerAID   string    `db:"player_a_id"`
	PlayerAName string    `db:"player_a"`
	PlayerABot  bool      `db:"-"`
	PlayerBID   string    `db:"player_b_id"`
	PlayerBName string    `db:"player_b"`
	PlayerBBot  bool      `db:"-"`
	ScoreA      int       `db:"score_a"`
	ScoreB      int       `db:"score_b"`
	Winner      int       `db:"winner"`
	Automated   bool      `db:"automated"`
	EndedAt     time.Time `db:"ended_at"`
}

// MatchHistory Postgres 对局历史，pool 为 nil 时不记录
type MatchHistory struct {
	pool *pgxpool.Pool
}

// NewMatchHistory 连接 Postgres 并建表
func NewMatchHistory(ctx context.Context, dsn string) (*MatchHistory, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createMatchesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate matches: %w", err)
	}
	return &MatchHistory{pool: pool}, nil
}

// Enabled 是否可用
func (h *MatchHistory) Enabled() bool {
	return h != nil && h.pool != nil
}

// RecordMatch 写入一局
func (h *MatchHistory) RecordMatch(ctx context.Context, rec *MatchRecord) error {
	if !h.Enabled() || rec == nil {
		return nil
	}

	endedAt := rec.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	_, err := h.pool.Exec(ctx, `
		INSERT INTO matches (room_id, player_a_id, player_a, player_b_id, player_b, score_a, score_b, winner, automated, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.RoomID, rec.PlayerAID, rec.PlayerAName, rec.PlayerBID, rec.PlayerBName,
		rec.ScoreA, rec.ScoreB, rec.Winner, rec.Automated, endedAt,
	)
	return err
}

// RecentMatches 某个玩家最近的对局，新的在前
func (h *MatchHistory) RecentMatches(ctx context.Context, playerID string, limit int) ([]MatchRecord, error) {
	if !h.Enabled() {
		return []MatchRecord{}, nil
	}

	rows, err := h.pool.Query(ctx, `
		SELECT room_id, player_a_id, player_a, player_b_id, player_b, score_a, score_b, winner, automated, ended_at
		FROM matches
		WHERE player_a_id = $1 OR player_b_id = $1
		ORDER BY ended_at DESC
		LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[MatchRecord])
}

// Close 关闭连接池
func (h *MatchHistory) Close() {
	if h.Enabled() {
		h.pool.Close()
	}
}
