package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/apperrors"
	"github.com/palemoky/bisca/internal/game/card"
)

// HandSize 每人手牌上限
const HandSize = 3

// ErrOutOfOrder 一墩的步骤没按顺序执行。这是程序错误而非玩家错误，调用方应终止会话
var ErrOutOfOrder = errors.New("session: trick step out of order")

// ErrDestroyed 会话销毁后才触发的步骤返回它，调用方按空操作处理
var ErrDestroyed = errors.New("session: destroyed")

// stage tracks where a completed trick is in play → resolve → draw → check → settle.
type stage int

const (
	stageIdle stage = iota
	stageResolve
	stageDraw
	stageCheck
	stageSettle // 已判定完结，等待通知送达后 EndTrick
)

// Session 一个房间的全部牌局状态
//
// 所有状态受 mu 保护。守卫从凑齐一墩的那次出牌一直持有到 EndTrick，
// 在双方都看到补牌之前，轮到的玩家出牌会被告知 Busy。
type Session struct {
	id      string
	log     logrus.FieldLogger
	rng     *rand.Rand
	newDeck func() card.Deck
	first   *Seat

	guard guard

	mu         sync.Mutex
	phase      Phase
	seats      [2]*Occupant
	hands      [2][]card.Card
	points     [2]int
	scored     [2]int // 已计入分数的牌张数
	deck       card.Deck
	trumpCard  *card.Card // 亮出的将牌，最后一张被摸走后为 nil
	trumpSuit  card.Suit
	table      [2]*card.Card
	leader     *Seat
	turn       Seat
	stage      stage
	outcome    *Outcome
	votes      [2]bool
	automated  bool
	generation uint64
	destroyed  bool
}

// Option 会话选项
type Option func(*Session)

// WithLogger 注入日志
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// WithRand 固定洗牌和先手使用的随机源
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithDeck 替换洗好的牌堆，最后一张亮作将牌
func WithDeck(f func() card.Deck) Option {
	return func(s *Session) { s.newDeck = f }
}

// WithFirstSeat 每局第一墩由 seat 先出
func WithFirstSeat(seat Seat) Option {
	return func(s *Session) { s.first = &seat }
}

// New 创建一个等待中的会话
func New(id string, opts ...Option) *Session {
	s := &Session{
		id:    id,
		log:   logrus.StandardLogger(),
		guard: newGuard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newDeck == nil {
		s.newDeck = func() card.Deck { return card.NewShuffledDeck(s.rng) }
	}
	s.log = s.log.WithField("room", id)
	return s
}

// ID 房间号
func (s *Session) ID() string { return s.id }

// Phase 当前阶段
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Generation 每次发牌和销毁时递增
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Current gen 是否仍是当前代
func (s *Session) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.destroyed && s.generation == gen
}

// Destroy 作废会话，所有挂起的定时任务都会变成空操作
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	s.generation++
}

// Destroyed 是否已销毁
func (s *Session) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Join 入座，只允许在等待阶段
func (s *Session) Join(occ Occupant) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return 0, apperrors.ErrRoomNotFound
	}
	if _, ok := s.seatOf(occ.ID); ok {
		return 0, apperrors.ErrAlreadyInRoom
	}
	if s.phase != PhaseWaiting {
		return 0, apperrors.ErrRoomFull
	}
	for _, seat := range Seats {
		if s.seats[seat] == nil {
			o := occ
			s.seats[seat] = &o
			return seat, nil
		}
	}
	return 0, apperrors.ErrRoomFull
}

// Full 两个座位都有人
func (s *Session) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats[SeatA] != nil && s.seats[SeatB] != nil
}

// Turn 当前持有出牌权的座位
func (s *Session) Turn() Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// SeatOf 外部身份 → 座位
func (s *Session) SeatOf(id string) (Seat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seatOf(id)
}

func (s *Session) seatOf(id string) (Seat, bool) {
	for _, seat := range Seats {
		if occ := s.seats[seat]; occ != nil && occ.ID == id {
			return seat, true
		}
	}
	return 0, false
}

// Occupants 两个座位的拷贝，空座为 nil
func (s *Session) Occupants() [2]*Occupant {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [2]*Occupant
	for _, seat := range Seats {
		if occ := s.seats[seat]; occ != nil {
			o := *occ
			out[seat] = &o
		}
	}
	return out
}

// HumanCount 真人座位数
func (s *Session) HumanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.humanCount()
}

func (s *Session) humanCount() int {
	n := 0
	for _, occ := range s.seats {
		if occ != nil && !occ.Bot {
			n++
		}
	}
	return n
}

// StartGame 发牌开局：亮将牌，各发三张，随机先手
func (s *Session) StartGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (s *Session) start() error {
	if s.destroyed {
		return apperrors.ErrRoomNotFound
	}
	if s.phase == PhasePlaying {
		return apperrors.ErrNotFinished
	}
	if s.seats[SeatA] == nil || s.seats[SeatB] == nil {
		return apperrors.ErrOpponentGone
	}

	deck := s.newDeck()
	trump, err := deck.Draw()
	if err != nil {
		return fmt.Errorf("set aside trump: %w", err)
	}

	var hands [2][]card.Card
	for _, seat := range Seats {
		hands[seat] = make([]card.Card, 0, HandSize)
		for range HandSize {
			c, err := deck.Draw()
			if err != nil {
				return fmt.Errorf("deal to seat %s: %w", seat, err)
			}
			hands[seat] = append(hands[seat], c)
		}
	}

	s.deck = deck
	s.trumpCard = &trump
	s.trumpSuit = trump.Suit
	s.hands = hands
	s.points = [2]int{}
	s.scored = [2]int{}
	s.table = [2]*card.Card{}
	s.leader = nil
	s.turn = Seats[s.intN(2)]
	if s.first != nil {
		s.turn = *s.first
	}
	s.stage = stageIdle
	s.outcome = nil
	s.votes = [2]bool{}
	s.phase = PhasePlaying
	s.generation++

	s.log.WithFields(logrus.Fields{
		"trump": trump.ID(),
		"first": s.turn.String(),
	}).Info("🃏 cards dealt")
	return nil
}

func (s *Session) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

// CardCount 会话掌握的牌数：手牌、牌堆、亮出的将牌、桌上和已计分的牌。发牌后恒为 40
func (s *Session) CardCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.deck.Len() + s.scored[SeatA] + s.scored[SeatB]
	for _, seat := range Seats {
		n += len(s.hands[seat])
		if s.table[seat] != nil {
			n++
		}
	}
	if s.trumpCard != nil {
		n++
	}
	return n
}

// Snapshot 会话摘要，用于持久化和状态接口
type Snapshot struct {
	ID         string
	Phase      Phase
	Seats      [2]*Occupant
	Points     [2]int
	DeckCount  int
	TrumpSuit  card.Suit
	Automated  bool
	Outcome    *Outcome
	Generation uint64
}

// Snapshot 公开状态的一致拷贝
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		Phase:      s.phase,
		Points:     s.points,
		DeckCount:  s.deck.Len(),
		TrumpSuit:  s.trumpSuit,
		Automated:  s.automated,
		Generation: s.generation,
	}
	for _, seat := range Seats {
		if occ := s.seats[seat]; occ != nil {
			o := *occ
			snap.Seats[seat] = &o
		}
	}
	if s.outcome != nil {
		o := *s.outcome
		snap.Outcome = &o
	}
	return snap
}
