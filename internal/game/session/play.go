package session

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/card"
	"github.com/palemoky/bisca/internal/game/rule"
)

// PlayResult 一次合法出牌
type PlayResult struct {
	Seat Seat
	Card card.Card
	// TrickComplete 两张牌都已落桌。守卫继续持有，调用方须依次执行
	// ResolveTrick、DrawReplenish、CheckCompletion、EndTrick

	TrickComplete bool
}

// TrickResult 一墩的结算
type TrickResult struct {
	Winner Seat
	Lead   Seat
	Points int
	Cards  [2]card.Card // 按座位
	Scores [2]int
}

// DrawResult 每个座位本次摸到的牌，没摸到为 nil
type DrawResult struct {
	Drawn [2]*card.Card
}

// GameOver 终局
type GameOver struct {
	Outcome Outcome
	Scores  [2]int
}

// PlayCard 替外部 id 对应的玩家打出 c，被拒时会话状态不变
func (s *Session) PlayCard(id string, c card.Card) (PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seatOf(id)
	if !ok {
		return PlayResult{}, apperrors.ErrNotInRoom
	}
	return s.play(seat, c)
}

// AutoPlay 托管座位出牌；轮到的不是托管座位或一墩尚未结束时返回 false
func (s *Session) AutoPlay() (PlayResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return PlayResult{}, false, ErrDestroyed
	}
	if s.phase != PhasePlaying || s.stage != stageIdle {
		return PlayResult{}, false, nil
	}
	occ := s.seats[s.turn]
	if occ == nil || !occ.Bot {
		return PlayResult{}, false, nil
	}

	var lead *card.Card
	if s.leader != nil {
		lead = s.table[*s.leader]
	}
	c, ok := rule.ChooseCard(s.hands[s.turn], lead, s.trumpSuit)
	if !ok {
		return PlayResult{}, false, nil
	}
	res, err := s.play(s.turn, c)
	return res, err == nil, err
}

// BotTurn 托管座位现在是否该出牌
func (s *Session) BotTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	occ := s.seats[s.turn]
	return s.phase == PhasePlaying && s.stage == stageIdle && occ != nil && occ.Bot
}

func (s *Session) play(seat Seat, c card.Card) (PlayResult, error) {
	if s.destroyed {
		return PlayResult{}, apperrors.ErrRoomNotFound
	}
	if s.phase != PhasePlaying {
		return PlayResult{}, apperrors.ErrNotPlaying
	}
	if s.turn != seat {
		return PlayResult{}, apperrors.ErrNotYourTurn
	}
	if !card.Contains(s.hands[seat], c) {
		return PlayResult{}, apperrors.ErrCardNotInHand
	}
	if !s.guard.tryAcquire() {
		return PlayResult{}, apperrors.ErrBusy
	}

	s.hands[seat], _ = card.Remove(s.hands[seat], c)
	played := c
	s.table[seat] = &played
	if s.leader == nil {
		leader := seat
		s.leader = &leader
	}

	res := PlayResult{Seat: seat, Card: c}
	if s.table[seat.Other()] != nil {
		res.TrickComplete = true
		s.stage = stageResolve
		return res, nil
	}

	s.turn = seat.Other()
	s.guard.release()
	return res, nil
}

// ResolveTrick 结算桌上两张牌：加分、清桌、赢家先手
func (s *Session) ResolveTrick() (TrickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return TrickResult{}, ErrDestroyed
	}
	if s.stage != stageResolve || s.leader == nil {
		return TrickResult{}, ErrOutOfOrder
	}
	lead := *s.leader
	follow := lead.Other()
	leadCard, followCard := *s.table[lead], *s.table[follow]

	winner := lead
	if rule.ResolveTrick(leadCard, followCard, s.trumpSuit) == rule.Follow {
		winner = follow
	}
	points := rule.TrickPoints(leadCard, followCard)

	s.points[winner] += points
	s.scored[winner] += 2
	s.table = [2]*card.Card{}
	s.leader = nil
	s.turn = winner
	s.stage = stageDraw

	res := TrickResult{
		Winner: winner,
		Lead:   lead,
		Points: points,
		Scores: s.points,
	}
	res.Cards[lead] = leadCard
	res.Cards[follow] = followCard

	s.log.WithFields(logrus.Fields{
		"lead":   leadCard.ID(),
		"follow": followCard.ID(),
		"winner": winner.String(),
		"points": points,
	}).Debug("trick resolved")
	return res, nil
}

// DrawReplenish 赢家先摸，再到对方；牌堆空了摸将牌，将牌也没了就不摸
func (s *Session) DrawReplenish(winner Seat) (DrawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res DrawResult
	if s.destroyed {
		return res, ErrDestroyed
	}
	if s.stage != stageDraw {
		return res, ErrOutOfOrder
	}

	for _, seat := range [2]Seat{winner, winner.Other()} {
		if len(s.hands[seat]) >= HandSize {
			continue
		}

		var c card.Card
		switch {
		case s.deck.Len() > 0:
			var err error
			if c, err = s.deck.Draw(); err != nil {
				return res, fmt.Errorf("draw for seat %s: %w", seat, err)
			}
		case s.trumpCard != nil:
			c = *s.trumpCard
			s.trumpCard = nil
		default:
			continue
		}

		s.hands[seat] = append(s.hands[seat], c)
		drawn := c
		res.Drawn[seat] = &drawn
	}

	s.stage = stageCheck
	return res, nil
}

// CheckCompletion 判定牌局是否结束：双方手牌、牌堆、将牌都没了即终局。
// 守卫仍然持有，通知发完后由 EndTrick 释放
func (s *Session) CheckCompletion() (GameOver, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return GameOver{}, false, ErrDestroyed
	}
	if s.stage != stageCheck {
		return GameOver{}, false, ErrOutOfOrder
	}
	s.stage = stageSettle

	if len(s.hands[SeatA]) > 0 || len(s.hands[SeatB]) > 0 || s.deck.Len() > 0 || s.trumpCard != nil {
		return GameOver{}, false, nil
	}

	outcome := Outcome{Draw: true}
	switch {
	case s.points[SeatA] > s.points[SeatB]:
		outcome = Outcome{Winner: SeatA}
	case s.points[SeatB] > s.points[SeatA]:
		outcome = Outcome{Winner: SeatB}
	}
	s.outcome = &outcome
	s.phase = PhaseFinished

	s.log.WithFields(logrus.Fields{
		"score_a": s.points[SeatA],
		"score_b": s.points[SeatB],
		"draw":    outcome.Draw,
	}).Info("🏆 game over")
	return GameOver{Outcome: outcome, Scores: s.points}, true, nil
}

// EndTrick 本墩的结果已经送达双方，释放守卫，下一次出牌（或再来一局）才会被接受
func (s *Session) EndTrick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ErrDestroyed
	}
	if s.stage != stageSettle {
		return ErrOutOfOrder
	}
	s.stage = stageIdle
	s.guard.release()
	return nil
}
