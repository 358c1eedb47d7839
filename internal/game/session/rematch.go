package session

import (
	"github.com/palemoky/bisca/internal/apperrors"
)

// RematchResult 投票结果
type RematchResult struct {
	Voter Seat
	// Accepted means a new game has already been dealt in place.
	Accepted bool
}

// VoteRematch 记一票再来一局。托管对手总是同意，两个真人则都要投票
func (s *Session) VoteRematch(id string) (RematchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return RematchResult{}, apperrors.ErrRoomNotFound
	}
	seat, ok := s.seatOf(id)
	if !ok {
		return RematchResult{}, apperrors.ErrNotInRoom
	}
	if s.phase != PhaseFinished {
		return RematchResult{}, apperrors.ErrNotFinished
	}
	opponent := s.seats[seat.Other()]
	if opponent == nil {
		return RematchResult{}, apperrors.ErrOpponentGone
	}
	// game_over 还没发完
	if s.stage != stageIdle {
		return RematchResult{}, apperrors.ErrBusy
	}

	s.votes[seat] = true
	res := RematchResult{Voter: seat}
	if !opponent.Bot && !s.votes[seat.Other()] {
		return res, nil
	}

	if err := s.start(); err != nil {
		return res, err
	}
	res.Accepted = true
	return res, nil
}
