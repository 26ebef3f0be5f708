package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// sampleAttempts bounds how many random draws Sampler.Move makes before
// giving up.
const sampleAttempts = 1000

var ErrNoLegalMove = errors.New("no legal move found")

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a PCG-backed source. A zero seed picks one at random.
func NewSeededSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomMove draws all four coordinates independently. The result is not
// necessarily legal.
func RandomMove(src Source) Move {
	r := func() int { return src.IntN(8) }
	return Move{Position{r(), r()}, Position{r(), r()}}
}

// Sampler picks random legal moves by rejection sampling.
type Sampler struct {
	src      Source
	attempts int
}

func NewSampler(src Source) *Sampler {
	return &Sampler{src: src, attempts: sampleAttempts}
}

// Move returns the first random draw that is legal on b. If none is found
// within the attempt budget it returns NoMove and ErrNoLegalMove; callers must
// not apply NoMove in that case.
func (s *Sampler) Move(b *Board) (Move, error) {
	for range s.attempts {
		m := RandomMove(s.src)
		if b.IsValidMove(m) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("after %d attempts: %w", s.attempts, ErrNoLegalMove)
}
