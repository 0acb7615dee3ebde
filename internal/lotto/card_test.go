package lotto

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidCard checks every structural invariant of a generated card.
func assertValidCard(t *testing.T, card Card) {
	t.Helper()

	total := 0
	seen := map[int]bool{}

	for row := 0; row < Rows; row++ {
		rowCount := 0
		for col := 0; col < Columns; col++ {
			v := card[row][col]
			if v == 0 {
				continue
			}
			rowCount++
			total++

			require.False(t, seen[v], "value %d appears twice", v)
			seen[v] = true

			lo, hi := ColumnRange(col)
			assert.GreaterOrEqual(t, v, lo, "value %d below range of column %d", v, col)
			assert.LessOrEqual(t, v, hi, "value %d above range of column %d", v, col)
		}
		assert.Equal(t, NumbersPerRow, rowCount, "row %d must hold five numbers", row)
	}

	assert.Equal(t, Rows*NumbersPerRow, total)

	for col := 0; col < Columns; col++ {
		prev := 0
		count := 0
		for row := 0; row < Rows; row++ {
			v := card[row][col]
			if v == 0 {
				continue
			}
			count++
			if prev != 0 {
				assert.Greater(t, v, prev, "column %d not ascending", col)
			}
			prev = v
		}
		assert.LessOrEqual(t, count, Rows)
	}
}

func TestGenerateStructure(t *testing.T) {
	for i := 0; i < 200; i++ {
		assertValidCard(t, Generate(AmbientSource()))
	}
}

func TestGenerateWithSeedStructure(t *testing.T) {
	for i := 0; i < 200; i++ {
		assertValidCard(t, GenerateWithSeed("ABCDEFGH", i))
	}
}

func TestGenerateWithSeedDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := GenerateWithSeed("ABCDEFGH", i)
		b := GenerateWithSeed("ABCDEFGH", i)
		assert.Equal(t, a, b, "card %d not reproducible", i)
	}
}

func TestGenerateWithSeedVariesByIndex(t *testing.T) {
	cards := map[string]bool{}
	for i := 0; i < 20; i++ {
		cards[fmt.Sprint(GenerateWithSeed("ABCDEFGH", i))] = true
	}
	assert.Greater(t, len(cards), 15, "cards of one session should differ by index")
}

func TestGenerateWithSeedVariesBySeed(t *testing.T) {
	a := GenerateWithSeed("AAAAAAAA", 0)
	b := GenerateWithSeed("BBBBBBBB", 0)
	assert.NotEqual(t, a, b)
}

// Two simulated clients decoding the same shared session must render
// identical grids without exchanging them.
func TestSharedSeedReproduction(t *testing.T) {
	hostCard := GenerateWithSeed("ABCDEFGH", 3)
	guestCard := GenerateWithSeed("ABCDEFGH", 3)
	require.Equal(t, hostCard, guestCard)
}

func TestColumnRange(t *testing.T) {
	lo, hi := ColumnRange(0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 9, hi)

	lo, hi = ColumnRange(4)
	assert.Equal(t, 40, lo)
	assert.Equal(t, 49, hi)

	lo, hi = ColumnRange(8)
	assert.Equal(t, 80, lo)
	assert.Equal(t, 90, hi)
}

func TestCardNumbers(t *testing.T) {
	card := GenerateWithSeed("ABCDEFGH", 0)
	numbers := card.Numbers()
	require.Len(t, numbers, 15)
	for _, n := range numbers {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 90)
	}
}
