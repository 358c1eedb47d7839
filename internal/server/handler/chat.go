package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/types"
)

const maxChatLength = 200

// handleChat 处理聊天消息，只在房间内转发
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		reject(client, apperrors.ErrInvalidMsg)
		return
	}

	content := strings.TrimSpace(payload.Content)
	if content == "" {
		return
	}
	if utf8.RuneCountInString(content) > maxChatLength {
		content = string([]rune(content)[:maxChatLength])
	}

	room, err := h.roomOf(client)
	if err != nil {
		reject(client, err)
		return
	}
	room.Chat(client, content)
}
