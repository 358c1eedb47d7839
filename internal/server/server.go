package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/config"
	"github.com/palemoky/bisca/internal/game/match"
	"github.com/palemoky/bisca/internal/game/room"
	"github.com/palemoky/bisca/internal/server/handler"
	"github.com/palemoky/bisca/internal/server/storage"
)

// Deps 外部依赖，都可以为 nil
type Deps struct {
	Redis   *redis.Client
	History *storage.MatchHistory
}

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	history     *storage.MatchHistory
	roomManager *room.RoomManager
	matcher     *match.Matcher
	handler     *handler.Handler
	upgrader    websocket.Upgrader
	http        *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	originChecker *OriginChecker

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		config:         cfg,
		redisStore:     storage.NewRedisStore(deps.Redis),
		leaderboard:    storage.NewLeaderboardManager(deps.Redis),
		history:        deps.History,
		clients:        make(map[string]*Client),
		originChecker:  NewOriginChecker(cfg.Server.AllowedOrigins),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	// 初始化房间管理器
	s.roomManager = room.NewRoomManager(room.ManagerConfig{
		Store:    s.redisStore,
		Recorder: storage.NewRecorder(s.leaderboard, s.history),
		Pacing: room.Pacing{
			Resolve: cfg.Game.ResolveDelay(),
			Draw:    cfg.Game.DrawDelay(),
			Bot:     cfg.Game.BotDelay(),
		},
		RoomTimeout: cfg.Game.RoomTimeoutDuration(),
	})

	// 初始化匹配器
	s.matcher = match.NewMatcher(s.roomManager)

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:      s,
		RoomManager: s.roomManager,
		Matcher:     s.matcher,
		Leaderboard: s.leaderboard,
		History:     s.history,
	})

	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Infof("🔒 安全配置: 最大连接数=%d, 允许来源=%v", cfg.Server.MaxConnections, cfg.Server.AllowedOrigins)
	return s
}

// Handler 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/", s.handleStatus)
	return mux
}

// Start 启动服务器，阻塞直到 Shutdown
func (s *Server) Start() error {
	log.Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", s.http.Addr, runtime.NumCPU())
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// RoomManager 房间管理器
func (s *Server) RoomManager() *room.RoomManager {
	return s.roomManager
}

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			log.Infof("📊 [监控] 在线: %d | 房间: %d | 对局: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
				s.GetOnlineCount(),
				s.roomManager.GetRoomCount(),
				s.roomManager.GetActiveGamesCount(),
				runtime.NumGoroutine(),
				len(s.semaphore),
				s.maxConnections,
				float64(m.Alloc)/1024/1024)
		}
	}
}

// Monitor 启动监控协程，ctx 结束时退出
func (s *Server) Monitor(ctx context.Context) {
	go s.monitorStats(ctx)
}
