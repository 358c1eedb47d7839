// Package codec encodes protocol messages for the wire. Text frames carry
// JSON, binary frames carry the same envelope as a protobuf Struct.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/protocol"
)

// ErrMissingType 消息缺少 type 字段
var ErrMissingType = errors.New("codec: message has no type")

// NewMessage 创建一个新消息
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
	}
	return &protocol.Message{
		Type:    msgType,
		Payload: data,
	}, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// EncodeJSON 将消息编码为 JSON 字节
func EncodeJSON(msg *protocol.Message) ([]byte, error) {
	buf := getJSONBuffer()
	defer putJSONBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	// Encoder 会追加换行；buf 回池前要拷贝出来
	return bytes.Clone(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// DecodeJSON 从 JSON 字节解码消息
func DecodeJSON(data []byte) (*protocol.Message, error) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, ErrMissingType
	}
	return &msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型，空 payload 得到零值
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewRejection 按错误码创建 action_rejected 消息
func NewRejection(code int) *protocol.Message {
	reason, ok := protocol.ErrorReasons[code]
	if !ok {
		code = protocol.ErrCodeUnknown
		reason = protocol.ReasonUnknown
	}
	return MustNewMessage(protocol.MsgActionRejected, protocol.ActionRejectedPayload{
		Code:    code,
		Reason:  reason,
		Message: protocol.ErrorMessages[code],
	})
}

// NewRejectionFromError maps any error onto the closed rejection set.
func NewRejectionFromError(err error) *protocol.Message {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		return MustNewMessage(protocol.MsgActionRejected, protocol.ActionRejectedPayload{
			Code:    gameErr.Code,
			Reason:  gameErr.Reason,
			Message: gameErr.Message,
		})
	}
	return NewRejection(protocol.ErrCodeUnknown)
}
