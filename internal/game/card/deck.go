package card

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDeck is returned when drawing from an exhausted pile.
var ErrEmptyDeck = errors.New("card: deck is empty")

// Deck 牌堆，末尾为牌顶
type Deck []Card

// NewDeck 按花色、点数顺序生成 40 张牌
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// NewShuffledDeck returns a fresh deck in uniformly random order.
func NewShuffledDeck(r *rand.Rand) Deck {
	deck := NewDeck()
	deck.Shuffle(r)
	return deck
}

// Shuffle 洗牌（Fisher–Yates）。r 为 nil 时使用全局随机源
func (d Deck) Shuffle(r *rand.Rand) {
	swap := func(i, j int) { d[i], d[j] = d[j], d[i] }
	if r == nil {
		rand.Shuffle(len(d), swap)
		return
	}
	r.Shuffle(len(d), swap)
}

// Draw 从牌顶摸一张牌
func (d *Deck) Draw() (Card, error) {
	n := len(*d)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, nil
}

// Len 剩余张数
func (d Deck) Len() int { return len(d) }
