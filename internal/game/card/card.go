package card

import (
	"fmt"
	"strings"
)

// Suit 花色
type Suit int

// Rank 点数，按牌力从小到大排列
type Rank int

// Card 一张牌，身份由点数和花色决定
type Card struct {
	Suit Suit
	Rank Rank
}

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits in deck construction order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// ParseSuit accepts a suit symbol.
func ParseSuit(symbol string) (Suit, error) {
	for suit, sym := range suitSymbols {
		if sym == symbol {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", symbol)
}

const (
	Rank2 Rank = iota
	Rank3
	Rank4
	Rank5
	Rank6
	RankQ
	RankJ
	RankK
	Rank7
	RankA
)

// Ranks in ascending power order.
var Ranks = []Rank{Rank2, Rank3, Rank4, Rank5, Rank6, RankQ, RankJ, RankK, Rank7, RankA}

var rankNames = map[Rank]string{
	Rank2: "2",
	Rank3: "3",
	Rank4: "4",
	Rank5: "5",
	Rank6: "6",
	RankQ: "Q",
	RankJ: "J",
	RankK: "K",
	Rank7: "7",
	RankA: "A",
}

// rankValues 计分表，未列出的点数为 0 分
var rankValues = map[Rank]int{
	RankQ: 2,
	RankJ: 3,
	RankK: 4,
	Rank7: 10,
	RankA: 11,
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// Value is the number of points the rank is worth.
func (r Rank) Value() int { return rankValues[r] }

// Power orders ranks inside a suit; ranks never tie.
func (r Rank) Power() int { return int(r) }

// DeckSize 一副牌的张数
const DeckSize = 40

// TotalPoints 一副牌的总分
const TotalPoints = 120

// Value 牌的分值
func (c Card) Value() int { return c.Rank.Value() }

// Power 牌力
func (c Card) Power() int { return c.Rank.Power() }

// ID is the wire identity, e.g. "7♠".
func (c Card) ID() string { return c.Rank.String() + c.Suit.String() }

func (c Card) String() string { return c.ID() }

// Parse 解析 "A♥" 这样的牌面标识
func Parse(id string) (Card, error) {
	for suit, sym := range suitSymbols {
		if !strings.HasSuffix(id, sym) {
			continue
		}
		name := strings.TrimSuffix(id, sym)
		for rank, n := range rankNames {
			if n == name {
				return Card{Suit: suit, Rank: rank}, nil
			}
		}
		return Card{}, fmt.Errorf("unknown rank in card %q", id)
	}
	return Card{}, fmt.Errorf("unknown suit in card %q", id)
}

// MustParse panics on a malformed id. Intended for tests and fixed tables.
func MustParse(id string) Card {
	c, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return c
}
