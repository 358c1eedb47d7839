package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping"

	// 匹配与房间
	MsgFindMatch         MessageType = "find_match"
	MsgCreatePrivateRoom MessageType = "create_private_room"
	MsgJoinPrivateRoom   MessageType = "join_private_room"
	MsgLeaveRoom         MessageType = "leave_room"

	// 游戏操作
	MsgPlayCard      MessageType = "play_card"
	MsgRematchVote   MessageType = "rematch_vote"
	MsgRematchAccept MessageType = "rematch_accept"

	// 查询
	MsgGetStats       MessageType = "get_stats"
	MsgGetLeaderboard MessageType = "get_leaderboard"
	MsgGetHistory     MessageType = "get_history"
	MsgGetOnlineCount MessageType = "get_online_count"

	// 双向：客户端发送，服务端转发给房间
	MsgChat MessageType = "chat"
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"
	MsgPong        MessageType = "pong"
	MsgOnlineCount MessageType = "online_count"

	// 房间相关
	MsgJoinedRoom         MessageType = "joined_room"
	MsgPrivateRoomCreated MessageType = "private_room_created"
	MsgWaitingForOpponent MessageType = "waiting_for_opponent"

	// 游戏流程
	MsgGameStarted    MessageType = "game_started"
	MsgCardPlayed     MessageType = "card_played"
	MsgTrickResult    MessageType = "trick_result"
	MsgCardsDrawn     MessageType = "cards_drawn"
	MsgGameOver       MessageType = "game_over"
	MsgBotSubstituted MessageType = "opponent_left_bot_substituted"
	MsgOpponentLeft   MessageType = "opponent_disconnected"

	// 再来一局
	MsgRematchRequested MessageType = "rematch_requested"
	MsgRematchAccepted  MessageType = "rematch_accepted"
	MsgRematchPending   MessageType = "rematch_pending"

	// 查询结果
	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"
	MsgHistoryResult     MessageType = "history_result"

	// 错误
	MsgActionRejected    MessageType = "action_rejected"
	MsgSessionTerminated MessageType = "session_terminated"
)
