package card

import (
	"slices"
	"strings"
)

// IndexOf 返回牌在手牌中的位置，不存在时返回 -1
func IndexOf(hand []Card, c Card) int {
	return slices.Index(hand, c)
}

// Contains reports whether c is in hand.
func Contains(hand []Card, c Card) bool {
	return IndexOf(hand, c) >= 0
}

// Remove 从手牌中移除一张牌，保持其余牌的顺序
func Remove(hand []Card, c Card) ([]Card, bool) {
	i := IndexOf(hand, c)
	if i < 0 {
		return hand, false
	}
	return slices.Delete(hand, i, i+1), true
}

// SumValues 手牌总分
func SumValues(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value()
	}
	return total
}

// FormatCards 用空格拼接牌面，用于日志
func FormatCards(cards []Card) string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return strings.Join(ids, " ")
}
