package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	assert.Len(t, deck, 32)

	// 无重复
	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}

	// 每个花色 8 张
	suitCount := make(map[Suit]int)
	for _, c := range deck {
		suitCount[c.Suit]++
	}
	for s := Spade; s <= Diamond; s++ {
		assert.Equal(t, 8, suitCount[s])
	}
}

func TestRankValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, Rank7.Value())
	assert.Equal(t, 10, Rank10.Value())
	assert.Equal(t, 11, RankJ.Value())
	assert.Equal(t, 14, RankA.Value())

	// 点数大小随 Rank 单调递增
	prev := 0
	for r := Rank7; r <= RankA; r++ {
		assert.Greater(t, r.Value(), prev)
		prev = r.Value()
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", Card{Suit: Spade, Rank: RankA}.String())
	assert.Equal(t, "10♥", Card{Suit: Heart, Rank: Rank10}.String())
	assert.Equal(t, "7♦", Card{Suit: Diamond, Rank: Rank7}.String())
}

func TestShuffleKeepsCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle()
	assert.Len(t, deck, 32)

	seen := make(map[Card]bool)
	for _, c := range deck {
		seen[c] = true
	}
	assert.Len(t, seen, 32)
}
