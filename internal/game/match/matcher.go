package match

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/room"
	"github.com/palemoky/bisca/internal/types"
)

const maxJoinAttempts = 3

// Matcher 快速匹配：有人在等就坐进去，否则开新房间等人
type Matcher struct {
	rooms *room.RoomManager
	mu    sync.Mutex // 串行化匹配，避免两个人同时开房互相错过
}

// NewMatcher 创建匹配器
func NewMatcher(rooms *room.RoomManager) *Matcher {
	return &Matcher{rooms: rooms}
}

// FindOrJoin seats client in the oldest public room waiting for an
// opponent, or opens a new public room when none is waiting.
func (m *Matcher) FindOrJoin(client types.ClientInterface) (*room.Room, error) {
	if client.GetRoom() != "" {
		return nil, apperrors.ErrAlreadyInRoom
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for range maxJoinAttempts {
		waiting := m.rooms.FindWaiting()
		if waiting == nil {
			break
		}

		r, err := m.rooms.JoinRoom(client, waiting.Code)
		if err == nil {
			log.Infof("🎮 匹配成功！房间 %s", r.Code)
			return r, nil
		}
		// 房间在查找和入座之间被占满或销毁，换一个
		if errors.Is(err, apperrors.ErrRoomFull) || errors.Is(err, apperrors.ErrRoomNotFound) {
			continue
		}
		return nil, err
	}

	r, err := m.rooms.CreateRoom(client, false)
	if err != nil {
		return nil, err
	}
	log.Infof("🔍 玩家 %s 开始等待对手，房间 %s", client.GetName(), r.Code)
	return r, nil
}
