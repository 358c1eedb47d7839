package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/bisca/internal/game/card"
)

func TestResolveTrick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lead   string
		follow string
		trump  card.Suit
		want   Side
		points int
	}{
		{"same suit higher follow wins", "7♠", "A♠", card.Hearts, Follow, 21},
		{"same suit higher lead wins", "A♣", "K♣", card.Hearts, Lead, 15},
		{"lone trump follow wins regardless of power", "Q♣", "2♥", card.Hearts, Follow, 2},
		{"lone trump lead wins", "2♥", "A♣", card.Hearts, Lead, 11},
		{"off suit without trump goes to leader", "2♦", "A♣", card.Hearts, Lead, 11},
		{"both trump higher power wins", "K♥", "7♥", card.Hearts, Follow, 14},
		{"both trump lead higher", "A♥", "3♥", card.Hearts, Lead, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead, follow := card.MustParse(tt.lead), card.MustParse(tt.follow)
			assert.Equal(t, tt.want, ResolveTrick(lead, follow, tt.trump))
			assert.Equal(t, tt.points, TrickPoints(lead, follow))
			assert.Equal(t, tt.want == Follow, Beats(lead, follow, tt.trump))
		})
	}
}

func TestResolveTrick_Exhaustive(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	for _, trump := range card.Suits {
		for _, a := range deck {
			for _, b := range deck {
				if a == b {
					continue
				}
				got := ResolveTrick(a, b, trump)
				// deterministic
				assert.Equal(t, got, ResolveTrick(a, b, trump))

				aTrump, bTrump := a.Suit == trump, b.Suit == trump
				switch {
				case aTrump != bTrump:
					assert.Equal(t, bTrump, got == Follow, "%s vs %s", a, b)
				case a.Suit == b.Suit:
					assert.Equal(t, b.Power() > a.Power(), got == Follow, "%s vs %s", a, b)
				default:
					assert.Equal(t, Lead, got, "%s vs %s", a, b)
				}
			}
		}
	}
}
