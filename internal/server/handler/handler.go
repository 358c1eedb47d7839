package handler

import (
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/match"
	"github.com/palemoky/bisca/internal/game/room"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/server/storage"
	"github.com/palemoky/bisca/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	RoomManager *room.RoomManager
	Matcher     *match.Matcher
	Leaderboard *storage.LeaderboardManager
	History     *storage.MatchHistory
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	roomManager *room.RoomManager
	matcher     *match.Matcher
	leaderboard *storage.LeaderboardManager
	history     *storage.MatchHistory
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		roomManager: deps.RoomManager,
		matcher:     deps.Matcher,
		leaderboard: deps.Leaderboard,
		history:     deps.History,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgFindMatch:         h.handleFindMatch,
		protocol.MsgCreatePrivateRoom: h.handleCreatePrivateRoom,
		protocol.MsgJoinPrivateRoom:   h.handleJoinPrivateRoom,
		protocol.MsgLeaveRoom:         func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },

		// 游戏操作
		protocol.MsgPlayCard:      h.handlePlayCard,
		protocol.MsgRematchVote:   func(c types.ClientInterface, _ *protocol.Message) { h.handleRematch(c) },
		protocol.MsgRematchAccept: func(c types.ClientInterface, _ *protocol.Message) { h.handleRematch(c) },

		// 信息查询
		protocol.MsgGetStats:       func(c types.ClientInterface, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
		protocol.MsgGetHistory:     h.handleGetHistory,
		protocol.MsgGetOnlineCount: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOnlineCount(c) },
		protocol.MsgChat:           h.handleChat,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Warnf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(codec.NewRejection(protocol.ErrCodeInvalidMsg))
}

// reject 把错误映射为 action_rejected 回给发起方
func reject(client types.ClientInterface, err error) {
	client.SendMessage(codec.NewRejectionFromError(err))
}

// roomOf 客户端当前所在的房间
func (h *Handler) roomOf(client types.ClientInterface) (*room.Room, error) {
	code := client.GetRoom()
	if code == "" {
		return nil, apperrors.ErrNotInRoom
	}
	r := h.roomManager.GetRoom(code)
	if r == nil {
		client.SetRoom("")
		return nil, apperrors.ErrNotInRoom
	}
	return r, nil
}
