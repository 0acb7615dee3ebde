package lotto

import (
	"math"
	"math/rand"
)

// Source produces floats in [0,1). Card generation takes one of these so the
// same shuffle code serves ambient randomness and seeded replay.
type Source func() float64

const seedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewSeed mints a random 8 character alphanumeric session seed.
func NewSeed() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = seedChars[rand.Intn(len(seedChars))]
	}
	return string(b)
}

// SeedToInt folds a seed string into a non-negative 32-bit integer with a
// rolling multiply-add hash. Order sensitive: "ab" and "ba" hash apart.
// The empty string hashes to 0.
func SeedToInt(seed string) uint32 {
	var h int32
	for i := 0; i < len(seed); i++ {
		h = (h << 5) - h + int32(seed[i])
	}
	if h == math.MinInt32 {
		return uint32(h)
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}

// NewSeededSource returns a mulberry32 generator initialized from the seed.
// The returned Source is a pure function of its seed: identical seeds yield
// identical sequences, call for call.
func NewSeededSource(seed string) Source {
	state := SeedToInt(seed)
	return func() float64 {
		state += 0x6D2B79F5
		t := (state ^ (state >> 15)) * (state | 1)
		t = (t + (t^(t>>7))*(t|61)) ^ t
		t = t ^ (t >> 14)
		return float64(t) / 4294967296.0
	}
}

// AmbientSource wraps math/rand for standalone play.
func AmbientSource() Source {
	return rand.Float64
}

// Shuffle returns a Fisher-Yates shuffled copy of values, drawing from src.
func Shuffle(values []int, src Source) []int {
	out := make([]int, len(values))
	copy(out, values)
	for i := len(out) - 1; i > 0; i-- {
		j := int(src() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
