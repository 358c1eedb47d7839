package rule

import (
	"github.com/palemoky/bisca/internal/game/card"
)

// Side 一墩中出牌的先后
type Side int

const (
	Lead   Side = iota // 先出
	Follow             // 后出
)

func (s Side) String() string {
	if s == Follow {
		return "follow"
	}
	return "lead"
}

// ResolveTrick 判定一墩归谁
//
// 只有一张将牌时将牌赢；两张非将牌花色不同归先手；否则牌力高者赢，牌力不会相等。
func ResolveTrick(lead, follow card.Card, trump card.Suit) Side {
	leadTrump := lead.Suit == trump
	followTrump := follow.Suit == trump

	switch {
	case leadTrump && !followTrump:
		return Lead
	case followTrump && !leadTrump:
		return Follow
	case lead.Suit != follow.Suit:
		return Lead
	case follow.Power() > lead.Power():
		return Follow
	default:
		return Lead
	}
}

// TrickPoints 一墩的分数
func TrickPoints(lead, follow card.Card) int {
	return lead.Value() + follow.Value()
}

// Beats 后手 follow 能否赢下先手 lead
func Beats(lead, follow card.Card, trump card.Suit) bool {
	return ResolveTrick(lead, follow, trump) == Follow
}
