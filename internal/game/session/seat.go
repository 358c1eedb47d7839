package session

// Seat 牌桌上两个固定座位之一
type Seat int

const (
	SeatA Seat = iota
	SeatB
)

// Seats 座位遍历顺序
var Seats = [2]Seat{SeatA, SeatB}

// Other 对面的座位
func (s Seat) Other() Seat {
	return 1 - s
}

// Number 线上使用的座位号，从 1 开始
func (s Seat) Number() int {
	return int(s) + 1
}

func (s Seat) String() string {
	if s == SeatB {
		return "B"
	}
	return "A"
}

// SeatFromNumber 反解 1/2 座位号
func SeatFromNumber(n int) (Seat, bool) {
	switch n {
	case 1:
		return SeatA, true
	case 2:
		return SeatB, true
	}
	return 0, false
}

// Phase 会话阶段，只会 waiting → playing → finished，再来一局时回到 playing
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "waiting"
	}
}

// Occupant 坐在座位上的参与者
type Occupant struct {
	ID   string // 外部身份，托管座位为 bot- 前缀
	Name string
	Bot  bool
}

// Outcome 终局结果
type Outcome struct {
	Winner Seat
	Draw   bool
}

// Result 某个座位视角下的结局
type Result string

const (
	ResultNone    Result = ""
	ResultVictory Result = "victory"
	ResultDefeat  Result = "defeat"
	ResultDraw    Result = "draw"
)

// For 换算成某个座位视角的结果
func (o *Outcome) For(seat Seat) Result {
	switch {
	case o == nil:
		return ResultNone
	case o.Draw:
		return ResultDraw
	case o.Winner == seat:
		return ResultVictory
	default:
		return ResultDefeat
	}
}
