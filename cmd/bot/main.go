// Command bot is a headless Bisca player. It queues for a public match and
// plays with the same policy the server uses for substituted seats.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/game/card"
	"github.com/palemoky/bisca/internal/game/rule"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
	"github.com/palemoky/bisca/internal/protocol/convert"
)

func main() {
	serverAddr := flag.String("server", "localhost:3001", "服务器地址")
	name := flag.String("name", "", "昵称，默认随机")
	games := flag.Int("games", 1, "连续对局数")
	think := flag.Duration("think", 500*time.Millisecond, "出牌前停顿")
	flag.Parse()

	if *name == "" {
		*name = "bot-" + uuid.NewString()[:4]
	}

	url := fmt.Sprintf("ws://%s/ws", *serverAddr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("连接服务器失败: %v", err)
	}
	defer func() { _ = conn.Close() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	p := &player{conn: conn, name: *name, remaining: *games, think: *think}
	if err := p.run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// retryPause 出牌前最短停顿
const retryPause = 20 * time.Millisecond

type player struct {
	conn      *websocket.Conn
	name      string
	remaining int
	think     time.Duration
	last      *protocol.GameStatePayload // 最近一次出牌时依据的状态，Busy 时重试
}

func (p *player) send(msgType protocol.MessageType, payload any) error {
	data, err := codec.EncodeJSON(codec.MustNewMessage(msgType, payload))
	if err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *player) run() error {
	if err := p.send(protocol.MsgFindMatch, protocol.FindMatchPayload{Name: p.name}); err != nil {
		return err
	}

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		msg, err := codec.DecodeJSON(data)
		if err != nil {
			log.WithError(err).Warn("无法解析消息")
			continue
		}

		done, err := p.handle(msg)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle reports true once the requested number of games has been played.
func (p *player) handle(msg *protocol.Message) (bool, error) {
	switch msg.Type {
	case protocol.MsgConnected:
		c, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
		if err == nil {
			log.Infof("✅ 已连接，ID %s", c.PlayerID)
		}

	case protocol.MsgWaitingForOpponent:
		log.Info("🔍 等待对手...")

	case protocol.MsgGameStarted:
		st, err := codec.ParsePayload[protocol.GameStartedPayload](msg)
		if err != nil {
			return false, err
		}
		log.Infof("🃏 对手 %s，将牌 %s", st.State.OpponentName, st.State.TrumpSuit)
		return false, p.maybePlay(st.State)

	case protocol.MsgCardPlayed:
		cp, err := codec.ParsePayload[protocol.CardPlayedPayload](msg)
		if err != nil {
			return false, err
		}
		return false, p.maybePlay(cp.State)

	case protocol.MsgCardsDrawn:
		cd, err := codec.ParsePayload[protocol.CardsDrawnPayload](msg)
		if err != nil {
			return false, err
		}
		return false, p.maybePlay(cd.State)

	case protocol.MsgTrickResult:
		tr, err := codec.ParsePayload[protocol.TrickResultPayload](msg)
		if err == nil {
			log.Debugf("墩: %s 赢 %d 分，比分 %v", tr.WinnerName, tr.Points, tr.Scores)
		}

	case protocol.MsgGameOver:
		over, err := codec.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return false, err
		}
		log.Infof("🏆 %s，比分 %d:%d", over.State.Result, over.State.MyPoints, over.State.OpponentPoints)
		p.last = nil

		p.remaining--
		if p.remaining <= 0 {
			return true, nil
		}
		if err := p.send(protocol.MsgLeaveRoom, nil); err != nil {
			return false, err
		}
		return false, p.send(protocol.MsgFindMatch, protocol.FindMatchPayload{Name: p.name})

	case protocol.MsgActionRejected:
		rej, err := codec.ParsePayload[protocol.ActionRejectedPayload](msg)
		if err != nil {
			return false, err
		}
		// 上一墩的补牌还在下发，稍后重出
		if rej.Reason == protocol.ReasonBusy && p.last != nil {
			log.Debug("牌桌忙，重试出牌")
			return false, p.maybePlay(*p.last)
		}
		log.Warnf("动作被拒绝: %s (%s)", rej.Reason, rej.Message)

	case protocol.MsgSessionTerminated:
		return false, fmt.Errorf("session terminated")
	}
	return false, nil
}

func (p *player) maybePlay(state protocol.GameStatePayload) error {
	if !state.IsMyTurn {
		p.last = nil
		return nil
	}

	hand := make([]card.Card, 0, len(state.MyHand))
	for _, info := range state.MyHand {
		c, err := convert.InfoToCard(info)
		if err != nil {
			return err
		}
		hand = append(hand, c)
	}
	trump, err := card.ParseSuit(state.TrumpSuit)
	if err != nil {
		return err
	}

	var lead *card.Card
	if state.OpponentTableCard != nil {
		c, err := convert.InfoToCard(*state.OpponentTableCard)
		if err != nil {
			return err
		}
		lead = &c
	}

	choice, ok := rule.ChooseCard(hand, lead, trump)
	if !ok {
		return nil
	}
	p.last = &state
	time.Sleep(max(p.think, retryPause))
	return p.send(protocol.MsgPlayCard, protocol.PlayCardPayload{CardID: choice.ID()})
}
