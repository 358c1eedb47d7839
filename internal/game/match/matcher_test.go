package match

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/room"
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/testutil"
)

func newTestMatcher(t *testing.T) (*Matcher, *room.RoomManager) {
	t.Helper()
	rm := room.NewRoomManager(room.ManagerConfig{
		Pacing: room.Pacing{Resolve: time.Millisecond, Draw: time.Millisecond, Bot: time.Millisecond},
	})
	t.Cleanup(rm.Close)
	return NewMatcher(rm), rm
}

func TestMatcher_PairsTwoPlayers(t *testing.T) {
	t.Parallel()
	matcher, rm := newTestMatcher(t)

	c1 := testutil.NewSimpleClient("p1", "Player1")
	c2 := testutil.NewSimpleClient("p2", "Player2")

	r1, err := matcher.FindOrJoin(c1)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseWaiting, r1.Session().Phase())

	r2, err := matcher.FindOrJoin(c2)
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Equal(t, session.PhasePlaying, r1.Session().Phase())
	assert.Equal(t, 1, rm.GetRoomCount())
}

func TestMatcher_AlreadyInRoom(t *testing.T) {
	t.Parallel()
	matcher, _ := newTestMatcher(t)

	c1 := testutil.NewSimpleClient("p1", "Player1")
	_, err := matcher.FindOrJoin(c1)
	require.NoError(t, err)

	_, err = matcher.FindOrJoin(c1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInRoom)
}

func TestMatcher_SkipsPrivateRooms(t *testing.T) {
	t.Parallel()
	matcher, rm := newTestMatcher(t)

	host := testutil.NewSimpleClient("host", "Host")
	private, err := rm.CreateRoom(host, true)
	require.NoError(t, err)

	c1 := testutil.NewSimpleClient("p1", "Player1")
	r, err := matcher.FindOrJoin(c1)
	require.NoError(t, err)
	assert.NotEqual(t, private.Code, r.Code)
	assert.Equal(t, 2, rm.GetRoomCount())
}

func TestMatcher_ConcurrentPlayersArePaired(t *testing.T) {
	t.Parallel()
	matcher, rm := newTestMatcher(t)

	const players = 10
	var wg sync.WaitGroup
	for i := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := testutil.NewSimpleClient(string(rune('a'+i)), "Player")
			_, err := matcher.FindOrJoin(c)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, players/2, rm.GetRoomCount())
	assert.Equal(t, players/2, rm.GetActiveGamesCount())
	assert.Nil(t, rm.FindWaiting())
}
