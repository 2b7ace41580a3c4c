// Package sampler provides per-example sampling weights and epoch index
// samplers for oriented-detection datasets.
//
// This package wraps the internal sampler implementation and exports the
// public API: a validated class-bias table that turns per-example label sets
// into scalar draw weights, and samplers producing the index order a data
// loader follows through one epoch.
//
// Example usage:
//
//	table, err := sampler.NewClassWeightTable(map[int]float64{
//	    0: 1.0, // ship
//	    1: 3.5, // aircraft
//	    5: 5.4, // harbor
//	}, 0.1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	weights, err := table.SampleWeights(ds.LabelSets())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Draw with replacement, proportionally to the weights.
//	weighted, err := sampler.NewWeighted(weights, nil)
package sampler

import (
	"golang.org/x/exp/rand"

	"github.com/obbkit/obbkit/internal/sampler"
)

// DefaultEmptyLabelWeight is the sampling weight applied to examples with no
// annotated objects when the caller does not choose one.
const DefaultEmptyLabelWeight = sampler.DefaultEmptyLabelWeight

// Errors surfaced by weight-table construction and weight computation.
var (
	ErrInvalidWeightTable = sampler.ErrInvalidWeightTable
	ErrEmptyDataset       = sampler.ErrEmptyDataset
)

// A Sampler produces the example index order for one epoch.
type Sampler = sampler.Sampler

// ClassWeightTable maps class ids to a relative sampling bias and assigns one
// scalar sampling weight per example: the maximum bias over its annotated
// classes, or the empty-label weight when it has none.
type ClassWeightTable = sampler.ClassWeightTable

// WeightStats summarizes a sample weight vector for logging.
type WeightStats = sampler.WeightStats

// Weighted draws example indices with replacement, proportionally to a
// per-example weight vector, producing one dataset-sized epoch per pass.
type Weighted = sampler.Weighted

// Sequential visits every example once, in dataset order.
type Sequential = sampler.Sequential

// Shuffled visits every example exactly once per epoch, in a uniformly random
// order.
type Shuffled = sampler.Shuffled

// NewClassWeightTable validates and copies a class-id-to-bias mapping. The
// caller's map can be mutated freely afterwards without affecting the table.
func NewClassWeightTable(weights map[int]float64, emptyLabelWeight float64) (*ClassWeightTable, error) {
	return sampler.NewClassWeightTable(weights, emptyLabelWeight)
}

// NewWeighted creates a with-replacement weighted sampler from a per-example
// weight vector. A nil source seeds from the clock.
func NewWeighted(weights []float64, src rand.Source) (*Weighted, error) {
	return sampler.NewWeighted(weights, src)
}

// NewSequential creates a sampler over n examples in index order.
func NewSequential(n int) *Sequential {
	return sampler.NewSequential(n)
}

// NewShuffled creates a uniform shuffling sampler over n examples.
func NewShuffled(n int, src rand.Source) *Shuffled {
	return sampler.NewShuffled(n, src)
}

// Summarize computes the min, max and mean of a non-empty weight vector.
func Summarize(weights []float64) WeightStats {
	return sampler.Summarize(weights)
}
