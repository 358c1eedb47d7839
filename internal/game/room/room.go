package room

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/server/storage"
	"github.com/palemoky/bisca/internal/types"
)

const (
	roomCodeLength = 6                                  // 房间号长度
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // 去掉了 I O 0 1
)

// Store 房间快照持久化
type Store interface {
	SaveRoom(ctx context.Context, data *storage.RoomData) error
	DeleteRoom(ctx context.Context, code string) error
}

// ResultRecorder 终局结果记录
type ResultRecorder interface {
	RecordMatch(ctx context.Context, rec *storage.MatchRecord) error
}

// Pacing 一墩里每个分步揭示之前的停顿
type Pacing struct {
	Resolve time.Duration // 第二张牌亮出 → 结算
	Draw    time.Duration // 结算 → 补牌
	Bot     time.Duration // 轮到托管 → 出牌
}

// Room 把连接中的客户端绑定到一个 Session，并按节奏推进分步揭示
type Room struct {
	Code      string
	Private   bool
	CreatedAt time.Time

	session  *session.Session
	pacing   Pacing
	store    Store
	recorder ResultRecorder
	onFatal  func(code string)

	mu      sync.RWMutex
	clients map[string]types.ClientInterface // 只有真人连接
}

// Session 房间的牌局
func (r *Room) Session() *session.Session {
	return r.session
}

// ManagerConfig 房间管理器依赖
type ManagerConfig struct {
	Store          Store
	Recorder       ResultRecorder
	Pacing         Pacing
	RoomTimeout    time.Duration
	SessionOptions []session.Option
}

// RoomManager 房间注册表。各实例互相独立，没有进程级全局状态
type RoomManager struct {
	store       Store
	recorder    ResultRecorder
	pacing      Pacing
	roomTimeout time.Duration
	sessionOpts []session.Option

	rooms map[string]*Room
	mu    sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRoomManager 创建房间管理器
func NewRoomManager(cfg ManagerConfig) *RoomManager {
	rm := &RoomManager{
		store:       cfg.Store,
		recorder:    cfg.Recorder,
		pacing:      cfg.Pacing,
		roomTimeout: cfg.RoomTimeout,
		sessionOpts: cfg.SessionOptions,
		rooms:       make(map[string]*Room),
		stop:        make(chan struct{}),
	}

	// 启动房间清理协程
	go rm.cleanupLoop()

	return rm
}
