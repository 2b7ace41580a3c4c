// Package sampler computes per-example sampling weights and produces the
// index order a data loader follows through one epoch.
package sampler

import (
	"time"

	"golang.org/x/exp/rand"
)

// A Sampler produces the example index order for one epoch.
type Sampler interface {
	// Len returns the number of indices produced per epoch.
	Len() int

	// Indices returns a freshly drawn epoch's index order.
	Indices() []int
}

// Sequential visits every example once, in dataset order.
type Sequential struct {
	n int
}

// NewSequential creates a sampler over n examples in index order.
func NewSequential(n int) *Sequential {
	return &Sequential{n: n}
}

// Len returns the number of examples.
func (s *Sequential) Len() int { return s.n }

// Indices returns 0..n-1.
func (s *Sequential) Indices() []int {
	indices := make([]int, s.n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// Shuffled visits every example exactly once per epoch, in a uniformly random
// order. This is the conventional without-replacement epoch.
type Shuffled struct {
	n   int
	rng *rand.Rand
}

// NewShuffled creates a uniform shuffling sampler over n examples. A nil
// source seeds from the clock.
func NewShuffled(n int, src rand.Source) *Shuffled {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Shuffled{n: n, rng: rand.New(src)}
}

// Len returns the number of examples.
func (s *Shuffled) Len() int { return s.n }

// Indices returns a fresh permutation of 0..n-1.
func (s *Shuffled) Indices() []int {
	indices := make([]int, s.n)
	for i := range indices {
		indices[i] = i
	}
	s.rng.Shuffle(s.n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}
