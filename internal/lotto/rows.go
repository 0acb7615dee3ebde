package lotto

// IsRowComplete reports whether the row's five numbers have all been drawn.
// A row carrying fewer than five numbers is never complete.
func IsRowComplete(row [Columns]int, drawn []int) bool {
	drawnSet := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		drawnSet[n] = true
	}

	count := 0
	for _, v := range row {
		if v == 0 {
			continue
		}
		if !drawnSet[v] {
			return false
		}
		count++
	}
	return count == NumbersPerRow
}

// CompletedRows returns the indices of all complete rows, ascending.
func CompletedRows(card Card, drawn []int) []int {
	var completed []int
	for i := 0; i < Rows; i++ {
		if IsRowComplete(card[i], drawn) {
			completed = append(completed, i)
		}
	}
	return completed
}

// NewlyCompletedRows returns the rows complete under current but not under
// previous, ascending. Restoring an advanced state can report several rows
// at once; a row already complete before the latest draw is never repeated.
func NewlyCompletedRows(card Card, previous, current []int) []int {
	before := make(map[int]bool, Rows)
	for _, i := range CompletedRows(card, previous) {
		before[i] = true
	}

	var newly []int
	for _, i := range CompletedRows(card, current) {
		if !before[i] {
			newly = append(newly, i)
		}
	}
	return newly
}

// PlayerCard couples a card with the player holding it.
type PlayerCard struct {
	Player string
	Card   Card
}

// NewWinners returns the players who just completed at least one row,
// deduplicated by name, in hand order.
func NewWinners(hands []PlayerCard, previous, current []int) []string {
	seen := make(map[string]bool, len(hands))
	var winners []string
	for _, hand := range hands {
		if len(NewlyCompletedRows(hand.Card, previous, current)) == 0 {
			continue
		}
		if seen[hand.Player] {
			continue
		}
		seen[hand.Player] = true
		winners = append(winners, hand.Player)
	}
	return winners
}
