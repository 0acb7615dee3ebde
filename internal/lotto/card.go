package lotto

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
)

const (
	Rows          = 3
	Columns       = 9
	TotalNumbers  = 90
	NumbersPerRow = 5
)

// Card is one 3x9 lotto grid. Zero means an empty cell. Each populated row
// holds five numbers; columns carry fixed sub-ranges of 1-90 and read
// ascending top to bottom. A card is immutable once generated.
type Card [Rows][Columns]int

// ColumnRange returns the inclusive value range for a column: column 0 is
// 1-9, columns 1-7 are 10c to 10c+9, column 8 is 80-90.
func ColumnRange(col int) (lo, hi int) {
	switch col {
	case 0:
		return 1, 9
	case Columns - 1:
		return 80, 90
	default:
		return col * 10, col*10 + 9
	}
}

// Generate builds one card from the given randomness source.
//
// Per row it shuffles the nine column indices and keeps the first five, then
// fills each selected cell with a value from the column's range that the
// card does not already use. A column that runs out of candidates is left
// empty for that row; the ranges are wide enough that this is rare, so it is
// logged and tolerated rather than treated as an error. A final pass
// re-sorts every column's values ascending across the rows it already
// occupies.
func Generate(src Source) Card {
	var card Card

	allCols := make([]int, Columns)
	for i := range allCols {
		allCols[i] = i
	}

	for row := 0; row < Rows; row++ {
		selected := Shuffle(allCols, src)[:NumbersPerRow]

		for _, col := range selected {
			candidates := availableInColumn(&card, col)
			if len(candidates) == 0 {
				log.Warnf("no numbers available for column %d row %d", col, row)
				continue
			}
			card[row][col] = Shuffle(candidates, src)[0]
		}
	}

	sortColumns(&card)
	return card
}

// GenerateWithSeed builds the index-th card of a shared session. The
// sub-seed keyed by card index makes every card of one session distinct
// while keeping each one reproducible on any device.
func GenerateWithSeed(seed string, index int) Card {
	cardSeed := fmt.Sprintf("%s-card-%d", seed, index)
	return Generate(NewSeededSource(cardSeed))
}

// availableInColumn lists the column's range values not already placed in
// that column.
func availableInColumn(card *Card, col int) []int {
	used := make(map[int]bool, Rows)
	for row := 0; row < Rows; row++ {
		if v := card[row][col]; v != 0 {
			used[v] = true
		}
	}

	lo, hi := ColumnRange(col)
	candidates := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		if !used[v] {
			candidates = append(candidates, v)
		}
	}
	return candidates
}

// sortColumns reorders each column's values ascending while keeping the same
// set of occupied rows.
func sortColumns(card *Card) {
	for col := 0; col < Columns; col++ {
		var rows []int
		var values []int
		for row := 0; row < Rows; row++ {
			if v := card[row][col]; v != 0 {
				rows = append(rows, row)
				values = append(values, v)
			}
		}

		sort.Ints(values)
		for i, row := range rows {
			card[row][col] = values[i]
		}
	}
}

// Numbers returns the card's populated values in row-major order.
func (c Card) Numbers() []int {
	out := make([]int, 0, Rows*NumbersPerRow)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if v := c[row][col]; v != 0 {
				out = append(out, v)
			}
		}
	}
	return out
}
