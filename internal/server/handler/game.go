package handler

import (
	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/types"
)

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil || payload.CardID == "" {
		reject(client, apperrors.ErrInvalidMsg)
		return
	}

	room, err := h.roomOf(client)
	if err != nil {
		reject(client, err)
		return
	}
	if err := room.Play(client, payload.CardID); err != nil {
		reject(client, err)
	}
}

// handleRematch rematch_vote 和 rematch_accept 是同一个动作
func (h *Handler) handleRematch(client types.ClientInterface) {
	room, err := h.roomOf(client)
	if err != nil {
		reject(client, err)
		return
	}
	if err := room.VoteRematch(client); err != nil {
		reject(client, err)
	}
}
