package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/types"
)

const maxNameLength = 20

// applyName 请求里带了名字就替换连接昵称
func applyName(client types.ClientInterface, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	client.SetName(name)
}

// canSeat 维护模式和已在房间中都不能再入座
func (h *Handler) canSeat(client types.ClientInterface) error {
	if h.server != nil && h.server.IsMaintenanceMode() {
		return apperrors.ErrMaintenance
	}
	if client.GetRoom() != "" {
		return apperrors.ErrAlreadyInRoom
	}
	return nil
}

// handleFindMatch 处理快速匹配
func (h *Handler) handleFindMatch(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.FindMatchPayload](msg)
	if err != nil {
		reject(client, apperrors.ErrInvalidMsg)
		return
	}
	if err := h.canSeat(client); err != nil {
		reject(client, err)
		return
	}

	applyName(client, payload.Name)
	if _, err := h.matcher.FindOrJoin(client); err != nil {
		reject(client, err)
	}
}

// handleCreatePrivateRoom 处理创建私人房间
func (h *Handler) handleCreatePrivateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.CreatePrivateRoomPayload](msg)
	if err != nil {
		reject(client, apperrors.ErrInvalidMsg)
		return
	}
	if err := h.canSeat(client); err != nil {
		reject(client, err)
		return
	}

	applyName(client, payload.Name)
	room, err := h.roomManager.CreateRoom(client, true)
	if err != nil {
		reject(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPrivateRoomCreated, protocol.PrivateRoomCreatedPayload{
		RoomID: room.Code,
	}))
}

// handleJoinPrivateRoom 处理按房间号加入
func (h *Handler) handleJoinPrivateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinPrivateRoomPayload](msg)
	if err != nil || strings.TrimSpace(payload.RoomID) == "" {
		reject(client, apperrors.ErrInvalidMsg)
		return
	}
	if err := h.canSeat(client); err != nil {
		reject(client, err)
		return
	}

	applyName(client, payload.Name)
	if _, err := h.roomManager.JoinRoom(client, payload.RoomID); err != nil {
		reject(client, err)
	}
}

// handleLeaveRoom 处理离开房间，连接保持
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	if client.GetRoom() == "" {
		reject(client, apperrors.ErrNotInRoom)
		return
	}
	h.roomManager.LeaveRoom(client)
}
