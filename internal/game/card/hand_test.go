package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemove(t *testing.T) {
	t.Parallel()

	hand := []Card{MustParse("A♥"), MustParse("2♣"), MustParse("K♠")}

	rest, ok := Remove(hand, MustParse("2♣"))
	assert.True(t, ok)
	assert.Equal(t, []Card{MustParse("A♥"), MustParse("K♠")}, rest)

	rest, ok = Remove(rest, MustParse("7♦"))
	assert.False(t, ok)
	assert.Len(t, rest, 2)
}

func TestSumValuesAndFormat(t *testing.T) {
	t.Parallel()

	cards := []Card{MustParse("A♥"), MustParse("7♥"), MustParse("Q♣")}
	assert.Equal(t, 23, SumValues(cards))
	assert.Equal(t, "A♥ 7♥ Q♣", FormatCards(cards))
	assert.True(t, Contains(cards, MustParse("7♥")))
	assert.Equal(t, -1, IndexOf(cards, MustParse("7♠")))
}
