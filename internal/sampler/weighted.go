package sampler

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Weighted draws example indices with replacement, with probability
// proportional to each index's weight. Every epoch produces exactly
// len(weights) draws, so epoch length matches the dataset size even though
// individual examples may appear several times per epoch or not at all.
//
// Replacement is always on: it keeps the sampled class distribution stable
// from epoch to epoch, which is the point of weighting in the first place.
type Weighted struct {
	weights []float64
	dist    distuv.Categorical
}

// NewWeighted creates a weighted sampler from a per-example weight vector.
// Weights must be positive and finite. A nil source seeds from the clock.
//
// Returns ErrEmptyDataset for an empty weight vector.
func NewWeighted(weights []float64, src rand.Source) (*Weighted, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyDataset
	}
	for i, w := range weights {
		if !positiveFinite(w) {
			return nil, fmt.Errorf("sampler: weight %d is %v, want positive and finite", i, w)
		}
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	// Categorical keeps its own copy of the weights; ours backs Weights().
	copied := make([]float64, len(weights))
	copy(copied, weights)

	return &Weighted{
		weights: copied,
		dist:    distuv.NewCategorical(copied, src),
	}, nil
}

// Len returns the number of draws per epoch, equal to the number of examples.
func (w *Weighted) Len() int { return len(w.weights) }

// Indices draws Len() example indices with replacement.
func (w *Weighted) Indices() []int {
	indices := make([]int, len(w.weights))
	for i := range indices {
		indices[i] = int(w.dist.Rand())
	}
	return indices
}

// Weights returns a copy of the per-example weight vector the sampler draws
// from. Diagnostic accessor; mutating the copy changes nothing.
func (w *Weighted) Weights() []float64 {
	copied := make([]float64, len(w.weights))
	copy(copied, w.weights)
	return copied
}
