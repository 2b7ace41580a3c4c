package sampler_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbkit/obbkit/internal/sampler"
)

func TestClassWeightTable_ExampleWeight(t *testing.T) {
	table, err := sampler.NewClassWeightTable(map[int]float64{0: 1.0, 1: 3.5}, 0.1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		classes []int
		want    float64
	}{
		{"empty label set gets the empty-label weight", nil, 0.1},
		{"single weighted class", []int{1}, 3.5},
		{"max over mixed classes, not mean or sum", []int{0, 1}, 3.5},
		{"repeated class resolves to its own bias", []int{0, 0, 0}, 1.0},
		{"class absent from table defaults to 1.0", []int{5}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.ExampleWeight(tt.classes), 1e-12)
		})
	}
}

func TestClassWeightTable_DoesNotMutateInput(t *testing.T) {
	table, err := sampler.NewClassWeightTable(map[int]float64{2: 4.0}, 0.1)
	require.NoError(t, err)

	classes := []int{2, 0, 2}
	table.ExampleWeight(classes)
	assert.Equal(t, []int{2, 0, 2}, classes)
}

func TestNewClassWeightTable_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		weights map[int]float64
		empty   float64
	}{
		{"negative class id", map[int]float64{-1: 2.0}, 0.1},
		{"zero bias", map[int]float64{0: 0}, 0.1},
		{"negative bias", map[int]float64{0: -3.5}, 0.1},
		{"NaN bias", map[int]float64{0: math.NaN()}, 0.1},
		{"infinite bias", map[int]float64{0: math.Inf(1)}, 0.1},
		{"zero empty-label weight", map[int]float64{0: 1.0}, 0},
		{"negative empty-label weight", map[int]float64{0: 1.0}, -0.1},
		{"NaN empty-label weight", map[int]float64{0: 1.0}, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sampler.NewClassWeightTable(tt.weights, tt.empty)
			assert.ErrorIs(t, err, sampler.ErrInvalidWeightTable)
		})
	}
}

func TestNewClassWeightTable_NilMap(t *testing.T) {
	table, err := sampler.NewClassWeightTable(nil, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, table.ExampleWeight([]int{3}), 1e-12)
	assert.InDelta(t, 0.5, table.ExampleWeight(nil), 1e-12)
}

func TestClassWeightTable_PrivateCopy(t *testing.T) {
	caller := map[int]float64{1: 3.5}
	table, err := sampler.NewClassWeightTable(caller, 0.1)
	require.NoError(t, err)

	// Mutating the caller's map after construction must not change behavior.
	caller[1] = 100.0
	caller[7] = 9.0

	assert.InDelta(t, 3.5, table.ExampleWeight([]int{1}), 1e-12)
	assert.InDelta(t, 1.0, table.ExampleWeight([]int{7}), 1e-12)
}

func TestClassWeightTable_SampleWeights(t *testing.T) {
	table, err := sampler.NewClassWeightTable(map[int]float64{0: 1.0, 1: 3.5}, 0.1)
	require.NoError(t, err)

	weights, err := table.SampleWeights([][]int{{1}, {0, 1}, {}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 3.5, 0.1}, weights)
}

func TestClassWeightTable_SampleWeights_EmptyDataset(t *testing.T) {
	table, err := sampler.NewClassWeightTable(map[int]float64{0: 1.0}, 0.1)
	require.NoError(t, err)

	_, err = table.SampleWeights(nil)
	assert.ErrorIs(t, err, sampler.ErrEmptyDataset)
}

func TestClassWeightTable_Deterministic(t *testing.T) {
	labelSets := [][]int{{0}, {1, 2}, {}, {5, 5}, {0, 3}}

	first, err := sampler.NewClassWeightTable(map[int]float64{1: 2.0, 3: 7.5}, 0.1)
	require.NoError(t, err)
	second, err := sampler.NewClassWeightTable(map[int]float64{1: 2.0, 3: 7.5}, 0.1)
	require.NoError(t, err)

	w1, err := first.SampleWeights(labelSets)
	require.NoError(t, err)
	w2, err := second.SampleWeights(labelSets)
	require.NoError(t, err)

	assert.Equal(t, w1, w2)
}

func TestSummarize(t *testing.T) {
	stats := sampler.Summarize([]float64{3.5, 3.5, 0.1, 1.0})

	assert.InDelta(t, 0.1, stats.Min, 1e-12)
	assert.InDelta(t, 3.5, stats.Max, 1e-12)
	assert.InDelta(t, 2.025, stats.Mean, 1e-12)
}
