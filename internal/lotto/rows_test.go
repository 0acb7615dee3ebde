package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCard builds a card with known rows for completion checks.
func testCard() Card {
	var card Card
	card[0] = [Columns]int{1, 0, 23, 0, 45, 0, 67, 0, 89}
	card[1] = [Columns]int{2, 12, 0, 34, 0, 56, 0, 78, 0}
	card[2] = [Columns]int{0, 13, 24, 0, 46, 0, 68, 0, 90}
	return card
}

func TestIsRowComplete(t *testing.T) {
	card := testCard()

	assert.False(t, IsRowComplete(card[0], nil))
	assert.False(t, IsRowComplete(card[0], []int{1, 23, 45, 67}))
	assert.True(t, IsRowComplete(card[0], []int{1, 23, 45, 67, 89}))
	assert.True(t, IsRowComplete(card[0], []int{89, 1, 45, 23, 67, 12, 34}), "order and extras are irrelevant")
}

func TestIsRowCompleteSparseRow(t *testing.T) {
	row := [Columns]int{1, 0, 23, 0, 45, 0, 0, 0, 0}
	assert.False(t, IsRowComplete(row, []int{1, 23, 45}), "a row with fewer than five numbers is never complete")
}

func TestCompletedRows(t *testing.T) {
	card := testCard()

	assert.Empty(t, CompletedRows(card, []int{1, 2, 3}))

	drawn := []int{1, 23, 45, 67, 89, 2, 12, 34, 56, 78}
	assert.Equal(t, []int{0, 1}, CompletedRows(card, drawn))
}

func TestNewlyCompletedRowsSingleWin(t *testing.T) {
	card := testCard()

	previous := []int{1, 23, 45, 67}
	current := []int{1, 23, 45, 67, 89}
	assert.Equal(t, []int{0}, NewlyCompletedRows(card, previous, current))
}

func TestNewlyCompletedRowsAlreadyComplete(t *testing.T) {
	card := testCard()

	previous := []int{1, 23, 45, 67, 89}
	current := []int{1, 23, 45, 67, 89, 50}
	assert.Empty(t, NewlyCompletedRows(card, previous, current))
}

func TestNewlyCompletedRowsMultipleAtOnce(t *testing.T) {
	card := testCard()

	// restoring an advanced state completes rows 0 and 1 simultaneously
	current := []int{1, 23, 45, 67, 89, 2, 12, 34, 56, 78}
	assert.Equal(t, []int{0, 1}, NewlyCompletedRows(card, nil, current))
}

func TestCompletedRowsMonotonic(t *testing.T) {
	card := GenerateWithSeed("ABCDEFGH", 0)
	numbers := card.Numbers()

	var drawn []int
	previousCount := 0
	for _, n := range numbers {
		before := CompletedRows(card, drawn)
		drawn = append(drawn, n)
		after := CompletedRows(card, drawn)

		require.GreaterOrEqual(t, len(after), len(before), "completed set shrank")
		for _, row := range before {
			assert.Contains(t, after, row)
		}

		newly := NewlyCompletedRows(card, drawn[:len(drawn)-1], drawn)
		assert.Equal(t, len(after)-len(before), len(newly))
		previousCount = len(after)
	}
	assert.Equal(t, Rows, previousCount, "all rows complete once every number is drawn")
}

func TestNewWinners(t *testing.T) {
	card := testCard()
	hands := []PlayerCard{
		{Player: "Alice", Card: card},
		{Player: "Bob", Card: GenerateWithSeed("ABCDEFGH", 1)},
		{Player: "Alice", Card: card}, // second card, same player
	}

	previous := []int{1, 23, 45, 67}
	current := []int{1, 23, 45, 67, 89}

	winners := NewWinners(hands, previous, current)
	assert.Equal(t, []string{"Alice"}, winners, "winner reported once despite two cards")
}

func TestNewWinnersNone(t *testing.T) {
	hands := []PlayerCard{{Player: "Alice", Card: testCard()}}
	assert.Empty(t, NewWinners(hands, []int{1}, []int{1, 2}))
}
