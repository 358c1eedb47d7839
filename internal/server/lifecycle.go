package server

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
)

// EnterMaintenanceMode 进入维护模式
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	// 通知大厅用户服务器即将关闭
	s.BroadcastToLobby(codec.NewRejection(protocol.ErrCodeMaintenance))

	log.Info("🔧 进入维护模式：停止新连接和房间创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown waits up to timeout for running games to finish, then
// closes every connection and the HTTP listener.
func (s *Server) GracefulShutdown(timeout time.Duration) {
	// 1. 进入维护模式
	s.EnterMaintenanceMode()

	// 2. 等待游戏结束
	interval := s.config.Game.ShutdownCheckIntervalDuration()
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		activeGames := s.roomManager.GetActiveGamesCount()
		if activeGames == 0 {
			log.Info("✅ 所有对局已结束")
			break
		}
		log.Infof("⏳ 等待 %d 个对局结束...", activeGames)
		<-ticker.C
	}

	// 3. 超时检查
	if activeGames := s.roomManager.GetActiveGamesCount(); activeGames > 0 {
		log.Warnf("⚠️ 超时，仍有 %d 个对局进行中，强制关闭", activeGames)
		for _, c := range s.snapshotClients() {
			c.SendMessage(codec.MustNewMessage(protocol.MsgSessionTerminated, protocol.NoticePayload{
				Message: fmt.Sprintf("server shutting down after %s", timeout),
			}))
		}
	}

	// 4. 关闭服务器
	s.Shutdown()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	s.roomManager.Close()

	// 关闭所有客户端连接
	for _, client := range s.snapshotClients() {
		client.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("HTTP 服务关闭失败")
	}

	log.Info("服务器已关闭")
}
