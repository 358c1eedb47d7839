package room

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/card"
	"github.com/palemoky/bisca/internal/game/session"
	"github.com/palemoky/bisca/internal/logger"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/protocol/convert"
	"github.com/palemoky/bisca/internal/types"
)

// join 入座；第二个座位坐满时在同一把锁内开局
func (r *Room) join(client types.ClientInterface) (session.Seat, error) {
	r.mu.Lock()
	seat, err := r.session.Join(session.Occupant{ID: client.GetID(), Name: client.GetName()})
	if err != nil {
		r.mu.Unlock()
		return 0, err
	}
	r.clients[client.GetID()] = client
	seated := len(r.clients)

	started := false
	if r.session.Full() {
		if err := r.session.StartGame(); err != nil {
			r.mu.Unlock()
			r.terminate(fmt.Errorf("start game: %w", err))
			return 0, err
		}
		started = true
	}
	r.mu.Unlock()

	client.SetRoom(r.Code)
	client.SendMessage(codec.MustNewMessage(protocol.MsgJoinedRoom, protocol.JoinedRoomPayload{
		RoomID:    r.Code,
		Seat:      seat.Number(),
		SeatCount: seated,
	}))

	if !started {
		client.SendMessage(codec.MustNewMessage(protocol.MsgWaitingForOpponent, protocol.WaitingPayload{RoomID: r.Code}))
		r.save()
		return seat, nil
	}

	r.broadcastGameStarted()
	r.save()
	r.scheduleBot()
	return seat, nil
}

// leave 处理离场，返回剩余真人数
func (r *Room) leave(client types.ClientInterface) (int, error) {
	r.mu.Lock()
	res, err := r.session.Depart(client.GetID())
	delete(r.clients, client.GetID())
	r.mu.Unlock()

	client.SetRoom("")
	if err != nil {
		return r.humanClients(), err
	}
	if res.HumansLeft == 0 {
		return 0, nil
	}

	if res.Substituted {
		r.Broadcast(codec.MustNewMessage(protocol.MsgBotSubstituted, protocol.NoticePayload{
			Message: fmt.Sprintf("%s left the table, an automated player took over their cards", client.GetName()),
		}))
		r.save()
		r.scheduleBot()
		return res.HumansLeft, nil
	}

	r.Broadcast(codec.MustNewMessage(protocol.MsgOpponentLeft, protocol.NoticePayload{
		Message: fmt.Sprintf("%s left the room", client.GetName()),
	}))
	r.save()
	return res.HumansLeft, nil
}

// Play 出牌。无法解析的牌面等同于手里没有这张牌
func (r *Room) Play(client types.ClientInterface, cardID string) error {
	c, err := card.Parse(cardID)
	if err != nil {
		return apperrors.ErrCardNotInHand
	}

	res, err := r.session.PlayCard(client.GetID(), c)
	if err != nil {
		return err
	}
	r.afterPlay(res)
	return nil
}

// VoteRematch 投票再来一局
func (r *Room) VoteRematch(client types.ClientInterface) error {
	res, err := r.session.VoteRematch(client.GetID())
	if err != nil {
		var gameErr *apperrors.GameError
		if !errors.As(err, &gameErr) {
			r.terminate(fmt.Errorf("rematch: %w", err))
		}
		return err
	}

	if !res.Accepted {
		client.SendMessage(codec.MustNewMessage(protocol.MsgRematchPending, struct{}{}))
		r.BroadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgRematchRequested, protocol.RematchRequestedPayload{
			FromName: client.GetName(),
		}))
		return nil
	}

	log.WithField("room", r.Code).Info("🔁 rematch accepted")
	r.Broadcast(codec.MustNewMessage(protocol.MsgRematchAccepted, struct{}{}))
	r.broadcastGameStarted()
	r.save()
	r.scheduleBot()
	return nil
}

// Chat 房间聊天
func (r *Room) Chat(client types.ClientInterface, content string) {
	r.Broadcast(codec.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{
		SenderID:   client.GetID(),
		SenderName: client.GetName(),
		Content:    content,
		Time:       time.Now().UnixMilli(),
	}))
}

// --- 分步揭示 ---

func (r *Room) afterPlay(res session.PlayResult) {
	r.broadcastState(protocol.MsgCardPlayed, func(v session.View) any {
		return protocol.CardPlayedPayload{
			State: convert.StateFromView(v),
			Seat:  res.Seat.Number(),
			Card:  convert.CardToInfo(res.Card),
		}
	})

	if res.TrickComplete {
		r.schedule(r.pacing.Resolve, r.resolveStep)
		return
	}
	r.scheduleBot()
}

func (r *Room) resolveStep() {
	tr, err := r.session.ResolveTrick()
	if err != nil {
		r.abort(err)
		return
	}

	occupants := r.session.Occupants()
	payload := protocol.TrickResultPayload{
		WinnerSeat: tr.Winner.Number(),
		Points:     tr.Points,
		Cards: []protocol.TrickCard{
			{Seat: tr.Lead.Number(), Card: convert.CardToInfo(tr.Cards[tr.Lead])},
			{Seat: tr.Lead.Other().Number(), Card: convert.CardToInfo(tr.Cards[tr.Lead.Other()])},
		},
		Scores: tr.Scores,
	}
	if occ := occupants[tr.Winner]; occ != nil {
		payload.WinnerName = occ.Name
	}
	r.Broadcast(codec.MustNewMessage(protocol.MsgTrickResult, payload))

	r.schedule(r.pacing.Draw, func() { r.drawStep(tr.Winner) })
}

func (r *Room) drawStep(winner session.Seat) {
	drawn, err := r.session.DrawReplenish(winner)
	if err != nil {
		r.abort(err)
		return
	}
	// 先判定完结再广播，视图里的 IsMyTurn 才是新一墩的；守卫要等补牌发完才释放
	over, done, err := r.session.CheckCompletion()
	if err != nil {
		r.abort(err)
		return
	}
	r.broadcastState(protocol.MsgCardsDrawn, func(v session.View) any {
		return protocol.CardsDrawnPayload{
			State:     convert.StateFromView(v),
			DrawnCard: convert.CardPtrToInfo(drawn.Drawn[v.Seat]),
		}
	})
	if done {
		r.finish(over)
		return
	}
	if err := r.session.EndTrick(); err != nil {
		r.abort(err)
		return
	}
	r.scheduleBot()
}

func (r *Room) finish(over session.GameOver) {
	occupants := r.session.Occupants()
	winnerName := ""
	if !over.Outcome.Draw && occupants[over.Outcome.Winner] != nil {
		winnerName = occupants[over.Outcome.Winner].Name
	}

	r.broadcastState(protocol.MsgGameOver, func(v session.View) any {
		p := protocol.GameOverPayload{
			Draw:        over.Outcome.Draw,
			WinnerName:  winnerName,
			FinalScores: over.Scores,
			State:       convert.StateFromView(v),
		}
		if !over.Outcome.Draw {
			p.WinnerSeat = over.Outcome.Winner.Number()
		}
		return p
	})

	// 房间在揭示途中被移除时不再落盘
	if err := r.session.EndTrick(); err != nil {
		r.abort(err)
		return
	}
	r.save()
	r.record(over, occupants)
}

func (r *Room) scheduleBot() {
	if !r.session.BotTurn() {
		return
	}
	r.schedule(r.pacing.Bot, r.botStep)
}

func (r *Room) botStep() {
	res, ok, err := r.session.AutoPlay()
	if err != nil {
		var gameErr *apperrors.GameError
		if errors.As(err, &gameErr) {
			log.WithField("room", r.Code).WithError(err).Debug("automated play rejected")
			return
		}
		r.abort(err)
		return
	}
	if ok {
		r.afterPlay(res)
	}
}

// schedule 延迟执行 step；期间会话重新发牌或被销毁则放弃。检查与执行之间
// 若被销毁，由各步骤返回的 session.ErrDestroyed 兜底
func (r *Room) schedule(delay time.Duration, step func()) {
	gen := r.session.Generation()
	time.AfterFunc(delay, func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.LogPanic(rec)
			}
		}()
		if !r.session.Current(gen) {
			return
		}
		step()
	})
}

// abort 分步揭示失败。会话已销毁只是过期的定时任务，静默丢弃；其余都是致命错误
func (r *Room) abort(err error) {
	if errors.Is(err, session.ErrDestroyed) {
		log.WithField("room", r.Code).Debug("step skipped, session destroyed")
		return
	}
	r.terminate(err)
}

// terminate 会话不变量被破坏：通知玩家并移除房间
func (r *Room) terminate(err error) {
	log.WithField("room", r.Code).WithError(err).Error("💥 session terminated")
	r.Broadcast(codec.MustNewMessage(protocol.MsgSessionTerminated, protocol.NoticePayload{
		Message: protocol.ErrorMessages[protocol.ErrCodeInternal],
	}))
	if r.onFatal != nil {
		r.onFatal(r.Code)
	}
}
