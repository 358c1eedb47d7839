package protocol

// 错误码
const (
	ErrCodeUnknown       = 1000
	ErrCodeInvalidMsg    = 1001
	ErrCodeRoomNotFound  = 2001
	ErrCodeRoomFull      = 2002
	ErrCodeNotInRoom     = 2003
	ErrCodeAlreadyInRoom = 2004
	ErrCodeNotPlaying    = 3001
	ErrCodeNotYourTurn   = 3002
	ErrCodeCardNotInHand = 3003
	ErrCodeBusy          = 3004
	ErrCodeNotFinished   = 3005
	ErrCodeOpponentGone  = 3006
	ErrCodeInternal      = 5000 // 会话内部不变量被破坏
	ErrCodeMaintenance   = 5003
)

// 拒绝原因，客户端按此分支处理
const (
	ReasonUnknown       = "UNKNOWN"
	ReasonInvalidMsg    = "INVALID_MESSAGE"
	ReasonRoomNotFound  = "ROOM_NOT_FOUND"
	ReasonRoomFull      = "ROOM_FULL"
	ReasonNotInRoom     = "NOT_IN_ROOM"
	ReasonAlreadyInRoom = "ALREADY_IN_ROOM"
	ReasonNotPlaying    = "NOT_PLAYING"
	ReasonNotYourTurn   = "NOT_YOUR_TURN"
	ReasonCardNotInHand = "CARD_NOT_IN_HAND"
	ReasonBusy          = "BUSY"
	ReasonNotFinished   = "NOT_FINISHED"
	ReasonOpponentGone  = "OPPONENT_GONE"
	ReasonInternal      = "INTERNAL"
	ReasonMaintenance   = "MAINTENANCE"
)

// ErrorReasons 错误码对应的拒绝原因
var ErrorReasons = map[int]string{
	ErrCodeUnknown:       ReasonUnknown,
	ErrCodeInvalidMsg:    ReasonInvalidMsg,
	ErrCodeRoomNotFound:  ReasonRoomNotFound,
	ErrCodeRoomFull:      ReasonRoomFull,
	ErrCodeNotInRoom:     ReasonNotInRoom,
	ErrCodeAlreadyInRoom: ReasonAlreadyInRoom,
	ErrCodeNotPlaying:    ReasonNotPlaying,
	ErrCodeNotYourTurn:   ReasonNotYourTurn,
	ErrCodeCardNotInHand: ReasonCardNotInHand,
	ErrCodeBusy:          ReasonBusy,
	ErrCodeNotFinished:   ReasonNotFinished,
	ErrCodeOpponentGone:  ReasonOpponentGone,
	ErrCodeInternal:      ReasonInternal,
	ErrCodeMaintenance:   ReasonMaintenance,
}

// ErrorMessages 错误码对应的提示文本
var ErrorMessages = map[int]string{
	ErrCodeUnknown:       "unknown error",
	ErrCodeInvalidMsg:    "invalid message",
	ErrCodeRoomNotFound:  "room not found",
	ErrCodeRoomFull:      "room is full",
	ErrCodeNotInRoom:     "you are not in a room",
	ErrCodeAlreadyInRoom: "you are already in a room",
	ErrCodeNotPlaying:    "no game in progress",
	ErrCodeNotYourTurn:   "it is not your turn",
	ErrCodeCardNotInHand: "that card is not in your hand",
	ErrCodeBusy:          "the table is busy, try again",
	ErrCodeNotFinished:   "the game has not finished",
	ErrCodeOpponentGone:  "your opponent has left",
	ErrCodeInternal:      "the game was terminated by a server error",
	ErrCodeMaintenance:   "server is under maintenance",
}
