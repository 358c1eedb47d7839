package apperrors

import (
	"github.com/palemoky/bisca/internal/protocol"
)

// GameError 可直接回报给玩家的拒绝，Reason 是封闭集合中的一项
type GameError struct {
	Code    int
	Reason  string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped copies compare equal to the sentinels.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Code == e.Code
}

func newGameError(code int) *GameError {
	return &GameError{
		Code:    code,
		Reason:  protocol.ErrorReasons[code],
		Message: protocol.ErrorMessages[code],
	}
}

// 预定义错误
var (
	ErrRoomNotFound  = newGameError(protocol.ErrCodeRoomNotFound)
	ErrRoomFull      = newGameError(protocol.ErrCodeRoomFull)
	ErrNotInRoom     = newGameError(protocol.ErrCodeNotInRoom)
	ErrAlreadyInRoom = newGameError(protocol.ErrCodeAlreadyInRoom)
	ErrNotPlaying    = newGameError(protocol.ErrCodeNotPlaying)
	ErrNotYourTurn   = newGameError(protocol.ErrCodeNotYourTurn)
	ErrCardNotInHand = newGameError(protocol.ErrCodeCardNotInHand)
	ErrBusy          = newGameError(protocol.ErrCodeBusy)
	ErrNotFinished   = newGameError(protocol.ErrCodeNotFinished)
	ErrOpponentGone  = newGameError(protocol.ErrCodeOpponentGone)
	ErrMaintenance   = newGameError(protocol.ErrCodeMaintenance)
	ErrInvalidMsg    = newGameError(protocol.ErrCodeInvalidMsg)
)
