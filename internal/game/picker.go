package game

import (
	"crypto/rand"
	"math/big"
)

// Picker draws the computer's hand.
type Picker interface {
	Pick() Choice
}

// RandomPicker draws uniformly from Choices using crypto/rand.
type RandomPicker struct{}

// Pick returns each choice with probability 1/3, independent of earlier draws.
func (RandomPicker) Pick() Choice {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Choices))))
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("game: read random: " + err.Error())
	}
	return Choices[n.Int64()]
}

// Sequence replays a fixed list of hands, cycling when it runs out.
// Useful for tests and demos.
type Sequence struct {
	hands []Choice
	next  int
}

// NewSequence builds a Sequence over hands. It panics on an empty list.
func NewSequence(hands ...Choice) *Sequence {
	if len(hands) == 0 {
		panic("game: empty sequence")
	}
	return &Sequence{hands: hands}
}

func (s *Sequence) Pick() Choice {
	c := s.hands[s.next%len(s.hands)]
	s.next++
	return c
}
