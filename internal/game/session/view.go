package session

import (
	"slices"

	"github.com/palemoky/bisca/internal/game/card"
)

// View 某个座位能看到的状态，对手手牌只给张数
type View struct {
	RoomID            string
	Phase             Phase
	Seat              Seat
	MyName            string
	OpponentName      string
	OpponentIsBot     bool
	Hand              []card.Card
	OpponentCardCount int
	MyPoints          int
	OpponentPoints    int
	TrumpCard         *card.Card
	TrumpSuit         *card.Suit
	DeckCount         int
	MyTableCard       *card.Card
	OpponentTableCard *card.Card
	IAmLead           bool
	LeadSeat          *Seat
	IsMyTurn          bool
	Result            Result
}

// ViewFor 按外部身份取视图
func (s *Session) ViewFor(id string) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seatOf(id)
	if !ok {
		return View{}, false
	}
	return s.view(seat), true
}

// ViewOf 按座位取视图
func (s *Session) ViewOf(seat Seat) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(seat)
}

func (s *Session) view(seat Seat) View {
	other := seat.Other()
	v := View{
		RoomID:            s.id,
		Phase:             s.phase,
		Seat:              seat,
		Hand:              slices.Clone(s.hands[seat]),
		OpponentCardCount: len(s.hands[other]),
		MyPoints:          s.points[seat],
		OpponentPoints:    s.points[other],
		DeckCount:         s.deck.Len(),
		MyTableCard:       copyCard(s.table[seat]),
		OpponentTableCard: copyCard(s.table[other]),
		IsMyTurn:          s.phase == PhasePlaying && s.turnOpen() && s.turn == seat,
		Result:            s.outcome.For(seat),
	}
	if v.Hand == nil {
		v.Hand = []card.Card{}
	}
	if occ := s.seats[seat]; occ != nil {
		v.MyName = occ.Name
	}
	if occ := s.seats[other]; occ != nil {
		v.OpponentName = occ.Name
		v.OpponentIsBot = occ.Bot
	}
	if s.phase != PhaseWaiting {
		suit := s.trumpSuit
		v.TrumpSuit = &suit
		v.TrumpCard = copyCard(s.trumpCard)
	}
	if s.leader != nil {
		lead := *s.leader
		v.LeadSeat = &lead
		v.IAmLead = lead == seat
	}
	return v
}

func copyCard(c *card.Card) *card.Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// turnOpen 出牌权已确定：两墩之间，或上一墩的补牌还在下发
func (s *Session) turnOpen() bool {
	return s.stage == stageIdle || s.stage == stageSettle
}
