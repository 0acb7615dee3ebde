// Package session maps a shareable game session to and from URL query
// parameters. Any client decoding the same parameters regenerates identical
// cards from the embedded seed, so grids never travel over the wire.
package session

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	MinPlayers = 1
	MaxPlayers = 20
	MinCards   = 1
	MaxCards   = 10
)

// Session is one shareable game instance. Card configuration is optional:
// NumberOfPlayers and CardsPerPlayer are zero when the session is draw-only,
// and are only ever set together. PlayerNames, when present, has exactly
// NumberOfPlayers entries, some possibly empty.
type Session struct {
	Seed            string
	DrawnNumbers    []int
	NumberOfPlayers int
	CardsPerPlayer  int
	PlayerNames     []string
}

// HasCardConfig reports whether the session carries a card configuration.
func (s *Session) HasCardConfig() bool {
	return s.NumberOfPlayers != 0 && s.CardsPerPlayer != 0
}

// Encode serializes the session into query parameters.
//
// Keys: s seed, d drawn numbers, p players, c cards per player, n names.
// d is omitted when no numbers are drawn. p and c appear together or not at
// all, and n only alongside them when at least one name survives trimming.
func Encode(s *Session) url.Values {
	params := url.Values{}
	params.Set("s", s.Seed)

	if len(s.DrawnNumbers) > 0 {
		params.Set("d", joinNumbers(s.DrawnNumbers))
	}

	if s.HasCardConfig() {
		params.Set("p", strconv.Itoa(s.NumberOfPlayers))
		params.Set("c", strconv.Itoa(s.CardsPerPlayer))

		var names []string
		for _, name := range s.PlayerNames {
			if strings.TrimSpace(name) != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			params.Set("n", strings.Join(names, ","))
		}
	}

	return params
}

// Decode reconstructs a session from query parameters. Returns nil when the
// seed is missing; any other malformed field degrades to absent rather than
// failing. Out of range or half-present card configuration is dropped
// wholesale.
func Decode(params url.Values) *Session {
	seed := params.Get("s")
	if seed == "" {
		return nil
	}

	s := &Session{
		Seed:         seed,
		DrawnNumbers: parseNumbers(params.Get("d")),
	}

	playersStr := params.Get("p")
	cardsStr := params.Get("c")
	if playersStr == "" || cardsStr == "" {
		return s
	}

	players, err1 := strconv.Atoi(playersStr)
	cards, err2 := strconv.Atoi(cardsStr)
	if err1 != nil || err2 != nil {
		return s
	}
	if players < MinPlayers || players > MaxPlayers || cards < MinCards || cards > MaxCards {
		return s
	}

	s.NumberOfPlayers = players
	s.CardsPerPlayer = cards

	s.PlayerNames = make([]string, players)
	if namesStr := params.Get("n"); namesStr != "" {
		names := strings.Split(namesStr, ",")
		for i := 0; i < players && i < len(names); i++ {
			s.PlayerNames[i] = names[i]
		}
	}

	return s
}

// ShareableURL renders the session as a link under the given origin.
func ShareableURL(origin string, s *Session) string {
	return origin + "/?" + Encode(s).Encode()
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// parseNumbers splits a comma-joined list, silently dropping tokens that are
// not integers in 1-90.
func parseNumbers(raw string) []int {
	if raw == "" {
		return nil
	}
	var numbers []int
	for _, token := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 1 || n > 90 {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}
