package room

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/types"
)

// CreateRoom 创建房间并让创建者入座
func (rm *RoomManager) CreateRoom(client types.ClientInterface, private bool) (*Room, error) {
	rm.mu.Lock()
	code := rm.generateRoomCode()
	room := rm.newRoom(code, private)
	rm.rooms[code] = room
	rm.mu.Unlock()

	log.WithFields(log.Fields{"room": code, "private": private}).
		Infof("🏠 房间 %s 已创建，玩家 %s", code, client.GetName())

	if _, err := room.join(client); err != nil {
		rm.remove(code)
		return nil, err
	}
	return room, nil
}

func (rm *RoomManager) newRoom(code string, private bool) *Room {
	opts := append([]session.Option{session.WithLogger(log.StandardLogger())}, rm.sessionOpts...)
	return &Room{
		Code:      code,
		Private:   private,
		CreatedAt: time.Now(),
		session:   session.New(code, opts...),
		pacing:    rm.pacing,
		store:     rm.store,
		recorder:  rm.recorder,
		onFatal:   rm.remove,
		clients:   make(map[string]types.ClientInterface),
	}
}

// JoinRoom 按房间号加入，第二个座位坐满时立即开局
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	room := rm.GetRoom(NormalizeCode(code))
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	if _, err := room.join(client); err != nil {
		return nil, err
	}
	log.Infof("👤 玩家 %s 加入房间 %s", client.GetName(), room.Code)
	return room, nil
}

// FindWaiting 最早创建、只坐了一个真人的公开房间。私人房间只能凭房间号加入，不参与快速匹配
func (rm *RoomManager) FindWaiting() *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	var found *Room
	for _, room := range rm.rooms {
		if room.Private || !room.waitingForOpponent() {
			continue
		}
		if found == nil || room.CreatedAt.Before(found.CreatedAt) {
			found = room
		}
	}
	return found
}

// LeaveRoom 离开房间（主动离开或断线）。最后一个真人离开时销毁房间
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	code := client.GetRoom()
	if code == "" {
		return
	}

	room := rm.GetRoom(code)
	if room == nil {
		client.SetRoom("")
		return
	}

	humansLeft, err := room.leave(client)
	if err != nil {
		log.WithError(err).Debugf("玩家 %s 不在房间 %s 中", client.GetName(), code)
		return
	}
	log.Infof("👋 玩家 %s 离开房间 %s", client.GetName(), code)

	if humansLeft == 0 {
		rm.remove(code)
		log.Infof("🏠 房间 %s 已解散", code)
	}
}

// remove 销毁房间，挂起的定时任务随之失效
func (rm *RoomManager) remove(code string) {
	rm.mu.Lock()
	room, ok := rm.rooms[code]
	delete(rm.rooms, code)
	rm.mu.Unlock()
	if !ok {
		return
	}

	room.session.Destroy()
	for _, client := range room.detachAll() {
		client.SetRoom("")
	}
	room.deleteSnapshot()
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// Rooms 当前所有房间
func (rm *RoomManager) Rooms() []*Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// GetRoomCount 房间总数
func (rm *RoomManager) GetRoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// GetActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	count := 0
	for _, room := range rm.Rooms() {
		// finished 的房间只是在等再来一局，不算进行中
		if room.session.Phase() == session.PhasePlaying {
			count++
		}
	}
	return count
}

// NormalizeCode 房间号不区分大小写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
