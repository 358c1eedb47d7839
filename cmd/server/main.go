package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/bisca/internal/config"
	"github.com/palemoky/bisca/internal/logger"
	"github.com/palemoky/bisca/internal/server"
	"github.com/palemoky/bisca/internal/server/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warnf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	history := connectPostgres(ctx, cfg.Postgres)
	defer history.Close()

	srv := server.NewServer(cfg, server.Deps{Redis: rdb, History: history})
	srv.Monitor(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("🎮 Bisca 服务器启动中...")
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("正在关闭服务器...")
		srv.GracefulShutdown(cfg.Game.ShutdownTimeoutDuration())
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("服务器异常退出: %v", err)
		os.Exit(1)
	}
}

// connectRedis Redis 可选：未配置或连不上时排行榜和快照都关闭
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Info("Redis 未配置，排行榜和房间快照已关闭")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("⚠️ Redis 连接失败，排行榜和房间快照已关闭")
		_ = rdb.Close()
		return nil
	}

	// 上次进程留下的快照对应的牌局已经不存在
	if n, err := storage.NewRedisStore(rdb).PurgeRooms(pingCtx); err != nil {
		log.WithError(err).Warn("清理旧房间快照失败")
	} else if n > 0 {
		log.Infof("🧹 清理了 %d 个旧房间快照", n)
	}

	log.Infof("✅ Redis 已连接: %s", cfg.Addr)
	return rdb
}

// connectPostgres 对局历史可选
func connectPostgres(ctx context.Context, cfg config.PostgresConfig) *storage.MatchHistory {
	if cfg.DSN == "" {
		return nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	history, err := storage.NewMatchHistory(dbCtx, cfg.DSN)
	if err != nil {
		log.WithError(err).Warn("⚠️ Postgres 连接失败，对局历史已关闭")
		return nil
	}

	log.Info("✅ Postgres 已连接，对局历史已开启")
	return history
}
