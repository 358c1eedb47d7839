package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bisca/internal/game/card"
)

func cards(ids ...string) []card.Card {
	out := make([]card.Card, len(ids))
	for i, id := range ids {
		out[i] = card.MustParse(id)
	}
	return out
}

func TestChooseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hand  []card.Card
		lead  string
		trump card.Suit
		want  string
	}{
		{
			name:  "lead: weakest non-trump",
			hand:  cards("A♣", "2♥", "K♠"),
			trump: card.Hearts,
			want:  "K♠",
		},
		{
			name:  "lead: all trump plays weakest trump",
			hand:  cards("A♥", "Q♥", "7♥"),
			trump: card.Hearts,
			want:  "Q♥",
		},
		{
			name:  "follow high value lead with weakest winner",
			hand:  cards("2♥", "A♠", "3♣"),
			lead:  "7♠",
			trump: card.Hearts,
			want:  "A♠",
		},
		{
			name:  "follow high value lead, only trump wins, weakest trump",
			hand:  cards("K♥", "2♥", "3♣"),
			lead:  "A♠",
			trump: card.Hearts,
			want:  "2♥",
		},
		{
			name:  "follow high value lead without winner discards cheapest",
			hand:  cards("K♣", "4♦", "Q♦"),
			lead:  "A♠",
			trump: card.Hearts,
			want:  "4♦",
		},
		{
			name:  "follow low value lead discards zero value non-trump",
			hand:  cards("2♥", "5♣", "A♦"),
			lead:  "K♠",
			trump: card.Hearts,
			want:  "5♣",
		},
		{
			name:  "follow low value lead, zero value ties broken by power",
			hand:  cards("6♣", "3♦", "J♠"),
			lead:  "Q♠",
			trump: card.Hearts,
			want:  "3♦",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lead *card.Card
			if tt.lead != "" {
				c := card.MustParse(tt.lead)
				lead = &c
			}
			got, ok := ChooseCard(tt.hand, lead, tt.trump)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.ID())
			assert.True(t, card.Contains(tt.hand, got))
		})
	}
}

func TestChooseCard_EmptyHand(t *testing.T) {
	t.Parallel()

	_, ok := ChooseCard(nil, nil, card.Spades)
	assert.False(t, ok)
}

func TestChooseCard_DoesNotReorderHand(t *testing.T) {
	t.Parallel()

	hand := cards("7♦", "2♣", "A♥")
	lead := card.MustParse("3♦")
	_, _ = ChooseCard(hand, &lead, card.Hearts)
	assert.Equal(t, cards("7♦", "2♣", "A♥"), hand)
}
