package room

import (
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/protocol/convert"
	"github.com/palemoky/bisca/internal/types"
)

func (r *Room) members() []types.ClientInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]types.ClientInterface, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	return clients
}

// Broadcast 广播消息给房间内所有真人
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, client := range r.members() {
		client.SendMessage(msg)
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有人
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	for _, client := range r.members() {
		if client.GetID() != excludeID {
			client.SendMessage(msg)
		}
	}
}

// broadcastState sends each client a message built from its own view, so
// no one ever receives the opponent's hand.
func (r *Room) broadcastState(msgType protocol.MessageType, build func(session.View) any) {
	for _, client := range r.members() {
		view, ok := r.session.ViewFor(client.GetID())
		if !ok {
			continue
		}
		client.SendMessage(codec.MustNewMessage(msgType, build(view)))
	}
}

func (r *Room) broadcastGameStarted() {
	r.broadcastState(protocol.MsgGameStarted, func(v session.View) any {
		return protocol.GameStartedPayload{State: convert.StateFromView(v)}
	})
}
