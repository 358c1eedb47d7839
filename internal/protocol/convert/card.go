package convert

import (
	"github.com/palemoky/bisca/internal/game/card"
	"github.com/palemoky/bisca/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		ID:    c.ID(),
		Suit:  c.Suit.String(),
		Rank:  c.Rank.String(),
		Value: c.Value(),
		Power: c.Power(),
	}
}

// CardPtrToInfo nil 保持为 nil
func CardPtrToInfo(c *card.Card) *protocol.CardInfo {
	if c == nil {
		return nil
	}
	info := CardToInfo(*c)
	return &info
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard trusts only the id; the derived fields are recomputed.
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	return card.Parse(info.ID)
}
