package rule

import (
	"slices"

	"github.com/palemoky/bisca/internal/game/card"
)

// highValueLead 先手牌分值达到该值时，后手值得用赢牌去收
const highValueLead = 10

// ChooseCard 托管出牌策略
//
// 先手时出最弱的非将牌，全是将牌时出最弱的将牌。后手时若先手牌是 7 或 A 且手中有
// 能赢的牌，用最弱的赢牌去收；否则按分值升序、非将牌优先、牌力升序垫最便宜的牌。
// 同样的输入总是返回同样的牌。hand 为空时返回 false。
func ChooseCard(hand []card.Card, lead *card.Card, trump card.Suit) (card.Card, bool) {
	if len(hand) == 0 {
		return card.Card{}, false
	}

	if lead == nil {
		return weakestLead(hand, trump), true
	}

	if lead.Value() >= highValueLead {
		winners := WinningCards(hand, *lead, trump)
		if len(winners) > 0 {
			return cheapest(winners, trump, false), true
		}
	}

	return cheapest(hand, trump, true), true
}

// WinningCards 返回手牌中能赢下 lead 的牌
func WinningCards(hand []card.Card, lead card.Card, trump card.Suit) []card.Card {
	var winners []card.Card
	for _, c := range hand {
		if Beats(lead, c, trump) {
			winners = append(winners, c)
		}
	}
	return winners
}

func weakestLead(hand []card.Card, trump card.Suit) card.Card {
	var best *card.Card
	for i := range hand {
		c := &hand[i]
		if c.Suit == trump {
			continue
		}
		if best == nil || c.Power() < best.Power() {
			best = c
		}
	}
	if best != nil {
		return *best
	}

	best = &hand[0]
	for i := range hand[1:] {
		if c := &hand[i+1]; c.Power() < best.Power() {
			best = c
		}
	}
	return *best
}

// cheapest orders by value (when byValue), then non-trump before trump, then
// power, keeping hand order among equals.
func cheapest(cards []card.Card, trump card.Suit, byValue bool) card.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b card.Card) int {
		if byValue && a.Value() != b.Value() {
			return a.Value() - b.Value()
		}
		at, bt := a.Suit == trump, b.Suit == trump
		if at != bt {
			if at {
				return 1
			}
			return -1
		}
		return a.Power() - b.Power()
	})
	return sorted[0]
}
