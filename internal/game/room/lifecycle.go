package room

import (
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/types"
)

// generateRoomCode 生成房间号，调用方需持有 rm.mu
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.cleanup(time.Now())
		case <-rm.stop:
			return
		}
	}
}

// cleanup closes rooms that have waited longer than roomTimeout for an
// opponent. Running games are never timed out.
func (rm *RoomManager) cleanup(now time.Time) {
	if rm.roomTimeout <= 0 {
		return
	}

	var expired []*Room
	for _, room := range rm.Rooms() {
		if room.session.Phase() == session.PhaseWaiting && now.Sub(room.CreatedAt) > rm.roomTimeout {
			expired = append(expired, room)
		}
	}

	for _, room := range expired {
		room.Broadcast(codec.MustNewMessage(protocol.MsgSessionTerminated, protocol.NoticePayload{
			Message: "room timed out waiting for an opponent",
		}))
		rm.remove(room.Code)
		log.Infof("🏠 房间 %s 超时已清理", room.Code)
	}
}

// Close 停止清理协程并销毁所有房间
func (rm *RoomManager) Close() {
	rm.stopOnce.Do(func() { close(rm.stop) })
	for _, room := range rm.Rooms() {
		rm.remove(room.Code)
	}
}

// waitingForOpponent 公开匹配只挑等待中且恰好一个真人的房间
func (r *Room) waitingForOpponent() bool {
	return r.session.Phase() == session.PhaseWaiting && r.session.HumanCount() == 1
}

// detachAll 清空连接，返回被移出的客户端
func (r *Room) detachAll() []types.ClientInterface {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]types.ClientInterface, 0, len(r.clients))
	for id, client := range r.clients {
		clients = append(clients, client)
		delete(r.clients, id)
	}
	return clients
}

func (r *Room) humanClients() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
