package handler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bisca/internal/game/card"
	"github.com/palemoky/bisca/internal/game/match"
	"github.com/palemoky/bisca/internal/game/room"
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/server/storage"
	"github.com/palemoky/bisca/internal/testutil"
)

type testEnv struct {
	handler     *Handler
	server      *testutil.MockServer
	rooms       *room.RoomManager
	leaderboard *storage.LeaderboardManager
}

func newTestEnv(t *testing.T, maintenance bool) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rm := room.NewRoomManager(room.ManagerConfig{
		Pacing: room.Pacing{Resolve: time.Millisecond, Draw: time.Millisecond, Bot: time.Millisecond},
		SessionOptions: []session.Option{
			session.WithFirstSeat(session.SeatA),
			session.WithDeck(func() card.Deck { return card.NewDeck() }),
		},
	})
	t.Cleanup(rm.Close)

	srv := &testutil.MockServer{}
	srv.On("IsMaintenanceMode").Return(maintenance).Maybe()
	srv.On("GetOnlineCount").Return(7).Maybe()

	lm := storage.NewLeaderboardManager(rdb)
	h := NewHandler(HandlerDeps{
		Server:      srv,
		RoomManager: rm,
		Matcher:     match.NewMatcher(rm),
		Leaderboard: lm,
	})
	return &testEnv{handler: h, server: srv, rooms: rm, leaderboard: lm}
}

func send(h *Handler, c *testutil.SimpleClient, msgType protocol.MessageType, payload any) {
	h.Handle(c, codec.MustNewMessage(msgType, payload))
}

func rejection(t *testing.T, c *testutil.SimpleClient) *protocol.ActionRejectedPayload {
	t.Helper()
	msg := c.Last(protocol.MsgActionRejected)
	require.NotNil(t, msg, "expected action_rejected, got %v", c.Types())
	p, err := codec.ParsePayload[protocol.ActionRejectedPayload](msg)
	require.NoError(t, err)
	return p
}

func TestHandle_UnknownType(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "P1")

	env.handler.Handle(c, &protocol.Message{Type: "deal_me_aces"})

	assert.Equal(t, protocol.ReasonInvalidMsg, rejection(t, c).Reason)
}

func TestHandlePing(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "P1")

	send(env.handler, c, protocol.MsgPing, protocol.PingPayload{Timestamp: 42})

	pong, err := codec.ParsePayload[protocol.PongPayload](c.Last(protocol.MsgPong))
	require.NoError(t, err)
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.NotZero(t, pong.ServerTimestamp)
}

func TestHandleGetOnlineCount(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "P1")

	send(env.handler, c, protocol.MsgGetOnlineCount, nil)

	count, err := codec.ParsePayload[protocol.OnlineCountPayload](c.Last(protocol.MsgOnlineCount))
	require.NoError(t, err)
	assert.Equal(t, 7, count.Count)
}

func TestHandleFindMatch_PairsAndRenames(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("alice", "guest-1")
	bob := testutil.NewSimpleClient("bob", "guest-2")

	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{Name: "  Alice  "})
	assert.Equal(t, "Alice", alice.GetName())
	assert.NotNil(t, alice.Last(protocol.MsgWaitingForOpponent))

	send(env.handler, bob, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	assert.Equal(t, "guest-2", bob.GetName())
	assert.Equal(t, alice.GetRoom(), bob.GetRoom())

	start, err := codec.ParsePayload[protocol.GameStartedPayload](bob.Last(protocol.MsgGameStarted))
	require.NoError(t, err)
	assert.Equal(t, "Alice", start.State.OpponentName)

	// 已在房间中不能再匹配
	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	assert.Equal(t, protocol.ReasonAlreadyInRoom, rejection(t, alice).Reason)
}

func TestHandleFindMatch_Maintenance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	c := testutil.NewSimpleClient("p1", "P1")

	send(env.handler, c, protocol.MsgFindMatch, protocol.FindMatchPayload{})

	assert.Equal(t, protocol.ReasonMaintenance, rejection(t, c).Reason)
	assert.Zero(t, env.rooms.GetRoomCount())
}

func TestHandlePrivateRoom(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	host := testutil.NewSimpleClient("host", "Host")
	guest := testutil.NewSimpleClient("guest", "Guest")

	send(env.handler, host, protocol.MsgCreatePrivateRoom, protocol.CreatePrivateRoomPayload{})
	created, err := codec.ParsePayload[protocol.PrivateRoomCreatedPayload](host.Last(protocol.MsgPrivateRoomCreated))
	require.NoError(t, err)
	require.NotEmpty(t, created.RoomID)

	send(env.handler, guest, protocol.MsgJoinPrivateRoom, protocol.JoinPrivateRoomPayload{RoomID: "zzzzzz"})
	assert.Equal(t, protocol.ReasonRoomNotFound, rejection(t, guest).Reason)

	send(env.handler, guest, protocol.MsgJoinPrivateRoom, protocol.JoinPrivateRoomPayload{})
	assert.Equal(t, protocol.ReasonInvalidMsg, rejection(t, guest).Reason)

	send(env.handler, guest, protocol.MsgJoinPrivateRoom, protocol.JoinPrivateRoomPayload{RoomID: created.RoomID})
	assert.Equal(t, created.RoomID, guest.GetRoom())
	assert.NotNil(t, guest.Last(protocol.MsgGameStarted))
}

func TestHandlePlayCard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("alice", "Alice")
	bob := testutil.NewSimpleClient("bob", "Bob")

	send(env.handler, alice, protocol.MsgPlayCard, protocol.PlayCardPayload{CardID: "A♠"})
	assert.Equal(t, protocol.ReasonNotInRoom, rejection(t, alice).Reason)

	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	send(env.handler, bob, protocol.MsgFindMatch, protocol.FindMatchPayload{})

	start, err := codec.ParsePayload[protocol.GameStartedPayload](alice.Last(protocol.MsgGameStarted))
	require.NoError(t, err)
	require.True(t, start.State.IsMyTurn)

	send(env.handler, bob, protocol.MsgPlayCard, protocol.PlayCardPayload{CardID: start.State.MyHand[0].ID})
	assert.Equal(t, protocol.ReasonNotYourTurn, rejection(t, bob).Reason)

	send(env.handler, alice, protocol.MsgPlayCard, protocol.PlayCardPayload{})
	assert.Equal(t, protocol.ReasonInvalidMsg, rejection(t, alice).Reason)

	send(env.handler, alice, protocol.MsgPlayCard, protocol.PlayCardPayload{CardID: start.State.MyHand[0].ID})
	assert.Equal(t, 1, bob.Count(protocol.MsgCardPlayed))
}

func TestHandleRematch_NotFinished(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("alice", "Alice")
	bob := testutil.NewSimpleClient("bob", "Bob")

	send(env.handler, alice, protocol.MsgRematchVote, nil)
	assert.Equal(t, protocol.ReasonNotInRoom, rejection(t, alice).Reason)

	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	send(env.handler, bob, protocol.MsgFindMatch, protocol.FindMatchPayload{})

	send(env.handler, bob, protocol.MsgRematchAccept, nil)
	assert.Equal(t, protocol.ReasonNotFinished, rejection(t, bob).Reason)
}

func TestHandleLeaveRoom(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("alice", "Alice")
	bob := testutil.NewSimpleClient("bob", "Bob")

	send(env.handler, alice, protocol.MsgLeaveRoom, nil)
	assert.Equal(t, protocol.ReasonNotInRoom, rejection(t, alice).Reason)

	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	send(env.handler, bob, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	send(env.handler, bob, protocol.MsgLeaveRoom, nil)

	assert.Empty(t, bob.GetRoom())
	assert.NotNil(t, alice.Last(protocol.MsgBotSubstituted))
	assert.Equal(t, 1, env.rooms.GetRoomCount())
}

func TestHandleChat(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	alice := testutil.NewSimpleClient("alice", "Alice")
	bob := testutil.NewSimpleClient("bob", "Bob")

	send(env.handler, alice, protocol.MsgChat, protocol.ChatPayload{Content: "olá"})
	assert.Equal(t, protocol.ReasonNotInRoom, rejection(t, alice).Reason)

	send(env.handler, alice, protocol.MsgFindMatch, protocol.FindMatchPayload{})
	send(env.handler, bob, protocol.MsgFindMatch, protocol.FindMatchPayload{})

	send(env.handler, alice, protocol.MsgChat, protocol.ChatPayload{Content: "   "})
	assert.Zero(t, bob.Count(protocol.MsgChat))

	send(env.handler, alice, protocol.MsgChat, protocol.ChatPayload{Content: "olá", SenderName: "spoofed"})
	chat, err := codec.ParsePayload[protocol.ChatPayload](bob.Last(protocol.MsgChat))
	require.NoError(t, err)
	assert.Equal(t, "Alice", chat.SenderName)
	assert.Equal(t, "alice", chat.SenderID)
	assert.Equal(t, "olá", chat.Content)
}

func TestHandleGetStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "Player1")

	send(env.handler, c, protocol.MsgGetStats, nil)
	empty, err := codec.ParsePayload[protocol.StatsResultPayload](c.Last(protocol.MsgStatsResult))
	require.NoError(t, err)
	assert.Zero(t, empty.TotalGames)
	assert.Equal(t, -1, empty.Rank)

	ctx := context.Background()
	require.NoError(t, env.leaderboard.RecordGameResult(ctx, "p1", "Player1", storage.ResultWin, 80))
	require.NoError(t, env.leaderboard.RecordGameResult(ctx, "p1", "Player1", storage.ResultDraw, 60))

	send(env.handler, c, protocol.MsgGetStats, nil)
	stats, err := codec.ParsePayload[protocol.StatsResultPayload](c.Last(protocol.MsgStatsResult))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 140, stats.TotalPoints)
	assert.Equal(t, 1, stats.Rank)
}

func TestHandleGetLeaderboard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "Player1")

	ctx := context.Background()
	require.NoError(t, env.leaderboard.RecordGameResult(ctx, "p1", "Player1", storage.ResultWin, 80))
	require.NoError(t, env.leaderboard.RecordGameResult(ctx, "p2", "Player2", storage.ResultLoss, 40))

	send(env.handler, c, protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Type: "bogus", Limit: 500})

	board, err := codec.ParsePayload[protocol.LeaderboardResultPayload](c.Last(protocol.MsgLeaderboardResult))
	require.NoError(t, err)
	assert.Equal(t, storage.BoardTotal, board.Type)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "p1", board.Entries[0].PlayerID)
	assert.Equal(t, 1, board.Entries[0].Rank)
}

func TestHandleGetHistory_Disabled(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	c := testutil.NewSimpleClient("p1", "Player1")

	send(env.handler, c, protocol.MsgGetHistory, protocol.GetHistoryPayload{Limit: 5})

	history, err := codec.ParsePayload[protocol.HistoryResultPayload](c.Last(protocol.MsgHistoryResult))
	require.NoError(t, err)
	assert.Empty(t, history.Matches)
}
