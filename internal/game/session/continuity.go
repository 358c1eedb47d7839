package session

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
)

// botIDPrefix 托管座位的身份前缀
const botIDPrefix = "bot-"

// DepartResult 离场处理结果
type DepartResult struct {
	Seat Seat
	// Substituted is true when an automated player took over mid-game.
	Substituted bool
	// Replacement is the new occupant when Substituted.
	Replacement Occupant
	// HumansLeft counts connection-backed seats after the departure.
	HumansLeft int
}

// Depart 玩家永久离开
//
// 对局中由托管玩家接替座位，手牌、分数、出牌权和桌上的牌都按座位保存，原样继承；
// 其他阶段直接空出座位。整个替换在状态锁内完成，不会与出牌交错。
func (s *Session) Depart(id string) (DepartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seatOf(id)
	if !ok {
		return DepartResult{}, apperrors.ErrNotInRoom
	}
	occ := s.seats[seat]
	res := DepartResult{Seat: seat}

	if s.phase == PhasePlaying && !s.destroyed {
		replacement := Occupant{
			ID:   botIDPrefix + uuid.NewString(),
			Name: occ.Name,
			Bot:  true,
		}
		s.seats[seat] = &replacement
		s.automated = true
		res.Substituted = true
		res.Replacement = replacement

		s.log.WithFields(logrus.Fields{
			"seat":   seat.String(),
			"player": occ.Name,
			"hand":   len(s.hands[seat]),
			"points": s.points[seat],
		}).Info("🤖 automated player took over")
	} else {
		s.seats[seat] = nil
		s.votes[seat] = false
	}

	res.HumansLeft = s.humanCount()
	return res, nil
}

// Automated 是否有座位被托管过
func (s *Session) Automated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.automated
}
