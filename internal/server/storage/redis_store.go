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
	// Redis key 前缀
	roomKeyPrefix = "room:"

	// 房间快照过期时间
	roomExpiration = 2 * time.Hour
)

// RoomData 房间快照（用于 Redis 序列化），只做观测和排障，不用于恢复牌局
type RoomData struct {
	Code       string       `json:"code"`
	Phase      string       `json:"phase"`
	Private    bool         `json:"private"`
	Players    []PlayerData `json:"players"`
	DeckCount  int          `json:"deck_count"`
	TrumpSuit  string       `json:"trump_suit,omitempty"`
	Automated  bool         `json:"automated"`
	Generation uint64       `json:"generation"`
	CreatedAt  int64        `json:"created_at"`
	UpdatedAt  int64        `json:"updated_at"`
}

// PlayerData 座位数据
type PlayerData struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	Bot    bool   `json:"bot"`
	Points int    `json:"points"`
}

// RedisStore Redis 存储。client 为 nil 时所有方法都是空操作
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Enabled 是否连接了 Redis
func (rs *RedisStore) Enabled() bool {
	return rs != nil && rs.client != nil
}

// --- 房间存储 ---

// SaveRoom 保存房间快照
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	if data == nil || !rs.Enabled() {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", data.Code, err)
	}
	return rs.client.Set(ctx, roomKeyPrefix+data.Code, jsonData, roomExpiration).Err()
}

// LoadRoom 读取房间快照，不存在时返回 nil, nil
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	data, err := rs.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &roomData, nil
}

// DeleteRoom 删除房间快照
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}

// GetAllRoomCodes 获取所有快照中的房间号
func (rs *RedisStore) GetAllRoomCodes(ctx context.Context) ([]string, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	var codes []string
	iter := rs.client.Scan(ctx, 0, roomKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, iter.Val()[len(roomKeyPrefix):])
	}
	return codes, iter.Err()
}

// PurgeRooms removes every snapshot. Used at startup since rooms live only in
// memory and old snapshots describe games that no longer exist.
func (rs *RedisStore) PurgeRooms(ctx context.Context) (int, error) {
	codes, err := rs.GetAllRoomCodes(ctx)
	if err != nil || len(codes) == 0 {
		return 0, err
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = roomKeyPrefix + code
	}
	n, err := rs.client.Del(ctx, keys...).Result()
	return int(n), err
}
