package session

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMinimal(t *testing.T) {
	s := &Session{Seed: "ABCDEFGH"}
	params := Encode(s)

	assert.Equal(t, "ABCDEFGH", params.Get("s"))
	assert.False(t, params.Has("d"))
	assert.False(t, params.Has("p"))
	assert.False(t, params.Has("c"))
	assert.False(t, params.Has("n"))
}

func TestEncodeOmitsEmptyNames(t *testing.T) {
	s := &Session{
		Seed:            "ABCDEFGH",
		NumberOfPlayers: 2,
		CardsPerPlayer:  1,
		PlayerNames:     []string{"  ", ""},
	}
	params := Encode(s)

	assert.Equal(t, "2", params.Get("p"))
	assert.Equal(t, "1", params.Get("c"))
	assert.False(t, params.Has("n"), "all-empty names leave n out")
}

func TestRoundTrip(t *testing.T) {
	s := &Session{
		Seed:            "test123",
		DrawnNumbers:    []int{1, 2, 3},
		NumberOfPlayers: 2,
		CardsPerPlayer:  3,
		PlayerNames:     []string{"Alice", "Bob"},
	}

	query := Encode(s).Encode()
	params, err := url.ParseQuery(query)
	require.NoError(t, err)

	decoded := Decode(params)
	require.NotNil(t, decoded)
	assert.Equal(t, "test123", decoded.Seed)
	assert.Equal(t, []int{1, 2, 3}, decoded.DrawnNumbers)
	assert.Equal(t, 2, decoded.NumberOfPlayers)
	assert.Equal(t, 3, decoded.CardsPerPlayer)
	assert.Equal(t, []string{"Alice", "Bob"}, decoded.PlayerNames)
}

func TestDecodeMissingSeed(t *testing.T) {
	params := url.Values{}
	params.Set("d", "1,2,3")
	assert.Nil(t, Decode(params))
}

func TestDecodeMalformedDrawnNumbers(t *testing.T) {
	params := url.Values{}
	params.Set("s", "ABCDEFGH")
	params.Set("d", "1,abc,42,0,91")

	decoded := Decode(params)
	require.NotNil(t, decoded)
	assert.Equal(t, []int{1, 42}, decoded.DrawnNumbers)
}

func TestDecodeOutOfRangeConfig(t *testing.T) {
	cases := []struct {
		name string
		p, c string
	}{
		{"players too high", "21", "3"},
		{"players too low", "0", "3"},
		{"cards too high", "2", "11"},
		{"cards too low", "2", "0"},
		{"players not numeric", "abc", "3"},
		{"cards not numeric", "2", "xyz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := url.Values{}
			params.Set("s", "ABCDEFGH")
			params.Set("p", tc.p)
			params.Set("c", tc.c)
			params.Set("n", "Alice,Bob")

			decoded := Decode(params)
			require.NotNil(t, decoded)
			assert.Equal(t, "ABCDEFGH", decoded.Seed)
			assert.Zero(t, decoded.NumberOfPlayers)
			assert.Zero(t, decoded.CardsPerPlayer)
			assert.Nil(t, decoded.PlayerNames)
		})
	}
}

func TestDecodePartialConfigDropped(t *testing.T) {
	params := url.Values{}
	params.Set("s", "ABCDEFGH")
	params.Set("p", "2")

	decoded := Decode(params)
	require.NotNil(t, decoded)
	assert.Zero(t, decoded.NumberOfPlayers)
	assert.Zero(t, decoded.CardsPerPlayer)
}

func TestDecodeNamesPaddedToPlayerCount(t *testing.T) {
	params := url.Values{}
	params.Set("s", "ABCDEFGH")
	params.Set("p", "3")
	params.Set("c", "1")
	params.Set("n", "Alice")

	decoded := Decode(params)
	require.NotNil(t, decoded)
	assert.Equal(t, []string{"Alice", "", ""}, decoded.PlayerNames)
}

func TestDecodeNamesAbsent(t *testing.T) {
	params := url.Values{}
	params.Set("s", "ABCDEFGH")
	params.Set("p", "2")
	params.Set("c", "1")

	decoded := Decode(params)
	require.NotNil(t, decoded)
	assert.Equal(t, []string{"", ""}, decoded.PlayerNames)
}

func TestShareableURL(t *testing.T) {
	s := &Session{Seed: "ABCDEFGH", DrawnNumbers: []int{5, 10}}
	link := ShareableURL("https://zahlenlotto.app", s)

	assert.Contains(t, link, "https://zahlenlotto.app/?")
	assert.Contains(t, link, "s=ABCDEFGH")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	decoded := Decode(parsed.Query())
	require.NotNil(t, decoded)
	assert.Equal(t, []int{5, 10}, decoded.DrawnNumbers)
}
