package sampler

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultEmptyLabelWeight is the sampling weight applied to examples with no
// annotated objects when the caller does not choose one. Small enough that
// background tiles rarely crowd out annotated examples, non-zero so they are
// never excluded entirely.
const DefaultEmptyLabelWeight = 0.1

var (
	// ErrInvalidWeightTable is returned when a class weight table or
	// empty-label weight cannot be validated at construction time.
	ErrInvalidWeightTable = errors.New("sampler: invalid weight table")

	// ErrEmptyDataset is returned when sample weights are requested for a
	// dataset with zero examples.
	ErrEmptyDataset = errors.New("sampler: dataset has no examples")
)

// ClassWeightTable maps class ids to a relative sampling bias and assigns one
// scalar sampling weight per example.
//
// The weight of an example is the maximum bias over its annotated classes
// (classes absent from the table count as 1.0), or the empty-label weight when
// the example has no annotations at all. Taking the maximum rather than the
// mean or the sum means an example containing even one rare, high-bias class
// is sampled as if it were dedicated to that class, no matter how many common
// objects share the scene.
//
// The table keeps a private copy of the caller's map, so mutating the original
// map after construction has no effect.
//
// Example:
//
//	table, err := sampler.NewClassWeightTable(map[int]float64{
//	    0: 1.0, // ship
//	    5: 5.4, // harbor
//	}, 0.1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	weights, err := table.SampleWeights(ds.LabelSets())
type ClassWeightTable struct {
	weights map[int]float64
	empty   float64
}

// NewClassWeightTable validates and copies a class-id-to-bias mapping.
//
// Every key must be a non-negative class id and every value a positive finite
// bias; emptyLabelWeight must be positive and finite as well. Violations are
// reported as ErrInvalidWeightTable. A nil map is valid and leaves every class
// at the default bias of 1.0.
func NewClassWeightTable(weights map[int]float64, emptyLabelWeight float64) (*ClassWeightTable, error) {
	if !positiveFinite(emptyLabelWeight) {
		return nil, fmt.Errorf("%w: empty-label weight must be positive and finite, got %v",
			ErrInvalidWeightTable, emptyLabelWeight)
	}

	copied := make(map[int]float64, len(weights))
	for class, bias := range weights {
		if class < 0 {
			return nil, fmt.Errorf("%w: class id %d is negative", ErrInvalidWeightTable, class)
		}
		if !positiveFinite(bias) {
			return nil, fmt.Errorf("%w: class %d has bias %v, want positive and finite",
				ErrInvalidWeightTable, class, bias)
		}
		copied[class] = bias
	}

	return &ClassWeightTable{weights: copied, empty: emptyLabelWeight}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Bias returns the stored bias for a class id, defaulting to 1.0 for classes
// the table does not mention.
func (t *ClassWeightTable) Bias(class int) float64 {
	if bias, ok := t.weights[class]; ok {
		return bias
	}
	return 1.0
}

// EmptyLabelWeight returns the weight assigned to examples without
// annotations.
func (t *ClassWeightTable) EmptyLabelWeight() float64 {
	return t.empty
}

// ExampleWeight returns the sampling weight for a single example given the
// class ids of its annotated objects. The input slice is not modified.
func (t *ClassWeightTable) ExampleWeight(classes []int) float64 {
	if len(classes) == 0 {
		return t.empty
	}
	best := math.Inf(-1)
	for _, class := range classes {
		if bias := t.Bias(class); bias > best {
			best = bias
		}
	}
	return best
}

// SampleWeights computes one weight per example, in the order the label sets
// are given. That order must match the dataset's index space: position i of
// the result is the draw weight of example i.
//
// Returns ErrEmptyDataset when labelSets is empty.
func (t *ClassWeightTable) SampleWeights(labelSets [][]int) ([]float64, error) {
	if len(labelSets) == 0 {
		return nil, ErrEmptyDataset
	}
	weights := make([]float64, len(labelSets))
	for i, set := range labelSets {
		weights[i] = t.ExampleWeight(set)
	}
	return weights, nil
}

// WeightStats summarizes a sample weight vector for logging. The values are
// diagnostic only; nothing downstream consumes them.
type WeightStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summarize computes the min, max and mean of a non-empty weight vector.
func Summarize(weights []float64) WeightStats {
	return WeightStats{
		Min:  floats.Min(weights),
		Max:  floats.Max(weights),
		Mean: stat.Mean(weights, nil),
	}
}
