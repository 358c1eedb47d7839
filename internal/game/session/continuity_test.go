package session

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/card"
)

func TestDepart_MidGameSubstitutesAutomatedPlayer(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t,
		WithFirstSeat(SeatA),
		WithDeck(stackedDeck("2♥", []string{"7♠", "3♣", "4♣"}, []string{"A♠", "5♣", "6♣"})),
	)
	require.NoError(t, s.StartGame())

	// bob wins a trick so he has points to inherit, then leads
	_, err := s.PlayCard("alice", card.MustParse("7♠"))
	require.NoError(t, err)
	_, err = s.PlayCard("bob", card.MustParse("A♠"))
	require.NoError(t, err)
	finishTrick(t, s)
	_, err = s.PlayCard("bob", card.MustParse("5♣"))
	require.NoError(t, err)

	before := s.ViewOf(SeatB)
	turnBefore := s.Turn()

	res, err := s.Depart("bob")
	require.NoError(t, err)
	assert.True(t, res.Substituted)
	assert.Equal(t, SeatB, res.Seat)
	assert.Equal(t, 1, res.HumansLeft)
	assert.True(t, res.Replacement.Bot)
	assert.True(t, strings.HasPrefix(res.Replacement.ID, botIDPrefix))

	after := s.ViewOf(SeatB)
	assert.Equal(t, before.Hand, after.Hand)
	assert.Equal(t, before.MyPoints, after.MyPoints)
	assert.Equal(t, 21, after.MyPoints)
	assert.Equal(t, before.MyTableCard, after.MyTableCard)
	assert.True(t, after.IAmLead)
	assert.Equal(t, turnBefore, s.Turn())
	assert.True(t, s.Automated())

	_, ok := s.SeatOf("bob")
	assert.False(t, ok)
	assert.True(t, s.ViewOf(SeatA).OpponentIsBot)
	assert.Equal(t, card.DeckSize, s.CardCount())
}

func TestDepart_TurnHolderReplacedThenAutoPlays(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t, WithFirstSeat(SeatB), WithRand(rand.New(rand.NewPCG(5, 5))))
	require.NoError(t, s.StartGame())

	res, err := s.Depart("bob")
	require.NoError(t, err)
	require.True(t, res.Substituted)
	assert.Equal(t, SeatB, s.Turn())
	assert.True(t, s.BotTurn())

	played, ok, err := s.AutoPlay()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, SeatB, played.Seat)
	assert.False(t, s.BotTurn())

	// a human turn is never auto-played
	_, ok, err = s.AutoPlay()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDepart_WaitingVacatesSeat(t *testing.T) {
	t.Parallel()

	s := New("WAIT01")
	_, err := s.Join(Occupant{ID: "alice", Name: "Alice"})
	require.NoError(t, err)

	res, err := s.Depart("alice")
	require.NoError(t, err)
	assert.False(t, res.Substituted)
	assert.Equal(t, 0, res.HumansLeft)
	assert.Equal(t, [2]*Occupant{}, s.Occupants())

	_, err = s.Depart("alice")
	assert.ErrorIs(t, err, apperrors.ErrNotInRoom)
}

func TestDepart_BothHumansLeave(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t)
	require.NoError(t, s.StartGame())

	res, err := s.Depart("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, res.HumansLeft)

	res, err = s.Depart("bob")
	require.NoError(t, err)
	assert.Equal(t, 0, res.HumansLeft)
}

func TestRematch_AutomatedOpponentAcceptsImmediately(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t, WithRand(rand.New(rand.NewPCG(11, 3))))
	require.NoError(t, s.StartGame())
	_, err := s.Depart("bob")
	require.NoError(t, err)

	playOut(t, s)
	require.Equal(t, PhaseFinished, s.Phase())
	gen := s.Generation()

	res, err := s.VoteRematch("alice")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.NotEqual(t, gen, s.Generation())
	assert.Equal(t, "TEST01", s.ID())

	v := s.ViewOf(SeatA)
	assert.Len(t, v.Hand, HandSize)
	assert.Equal(t, 0, v.MyPoints)
	assert.Equal(t, ResultNone, v.Result)
}

func TestRematch_TwoHumansNeedBothVotes(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t, WithRand(rand.New(rand.NewPCG(2, 8))))

	_, err := s.VoteRematch("alice")
	assert.ErrorIs(t, err, apperrors.ErrNotFinished)

	require.NoError(t, s.StartGame())
	playOut(t, s)

	res, err := s.VoteRematch("alice")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, SeatA, res.Voter)
	assert.Equal(t, PhaseFinished, s.Phase())

	// voting twice changes nothing
	res, err = s.VoteRematch("alice")
	require.NoError(t, err)
	assert.False(t, res.Accepted)

	res, err = s.VoteRematch("bob")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, PhasePlaying, s.Phase())
}

func TestRematch_OpponentGone(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t, WithRand(rand.New(rand.NewPCG(4, 4))))
	require.NoError(t, s.StartGame())
	playOut(t, s)

	res, err := s.Depart("bob")
	require.NoError(t, err)
	assert.False(t, res.Substituted)

	_, err = s.VoteRematch("alice")
	assert.ErrorIs(t, err, apperrors.ErrOpponentGone)
	assert.Equal(t, PhaseFinished, s.Phase())
}

func TestRematch_BusyUntilLastTrickSettles(t *testing.T) {
	t.Parallel()

	s := newTwoPlayerSession(t, WithRand(rand.New(rand.NewPCG(6, 1))))
	require.NoError(t, s.StartGame())

	for i := 0; ; i++ {
		require.Less(t, i, 100, "game did not terminate")

		seat := s.Turn()
		v := s.ViewOf(seat)
		res, err := s.PlayCard(s.Occupants()[seat].ID, v.Hand[0])
		require.NoError(t, err)
		if !res.TrickComplete {
			continue
		}

		tr, err := s.ResolveTrick()
		require.NoError(t, err)
		_, err = s.DrawReplenish(tr.Winner)
		require.NoError(t, err)
		_, over, err := s.CheckCompletion()
		require.NoError(t, err)
		if over {
			break
		}
		require.NoError(t, s.EndTrick())
	}

	require.Equal(t, PhaseFinished, s.Phase())
	_, err := s.VoteRematch("alice")
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	require.NoError(t, s.EndTrick())
	res, err := s.VoteRematch("alice")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}
