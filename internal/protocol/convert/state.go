package convert

import (
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/protocol"
)

// StateFromView 把某个座位的视图转成线上格式
func StateFromView(v session.View) protocol.GameStatePayload {
	p := protocol.GameStatePayload{
		RoomID:            v.RoomID,
		Phase:             v.Phase.String(),
		MySeat:            v.Seat.Number(),
		MyName:            v.MyName,
		OpponentName:      v.OpponentName,
		OpponentIsBot:     v.OpponentIsBot,
		MyHand:            CardsToInfos(v.Hand),
		OpponentCardCount: v.OpponentCardCount,
		MyPoints:          v.MyPoints,
		OpponentPoints:    v.OpponentPoints,
		TrumpCard:         CardPtrToInfo(v.TrumpCard),
		DeckCount:         v.DeckCount,
		MyTableCard:       CardPtrToInfo(v.MyTableCard),
		OpponentTableCard: CardPtrToInfo(v.OpponentTableCard),
		IAmLead:           v.IAmLead,
		IsMyTurn:          v.IsMyTurn,
		Result:            string(v.Result),
	}
	if v.TrumpSuit != nil {
		p.TrumpSuit = v.TrumpSuit.String()
	}
	if v.LeadSeat != nil {
		p.LeadSeat = v.LeadSeat.Number()
	}
	return p
}
