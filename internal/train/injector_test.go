package train_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/obbkit/obbkit/internal/dataset"
	"github.com/obbkit/obbkit/internal/loader"
	"github.com/obbkit/obbkit/internal/sampler"
	"github.com/obbkit/obbkit/internal/train"
)

func noopStep(context.Context, any) error { return nil }

func TestInjector_InstallsWeightedLoader(t *testing.T) {
	ds := makeDataset([]int{1}, []int{0, 1}, nil)

	marker := func(b *loader.Batch) (any, error) { return b.Indices, nil }
	original, err := loader.New(ds, loader.Config{BatchSize: 2, Workers: 3, Collate: marker})
	require.NoError(t, err)
	tr, err := train.New(original, train.Config{})
	require.NoError(t, err)

	inj, err := train.NewInjector(map[int]float64{0: 1.0, 1: 3.5},
		train.InjectorConfig{EmptyLabelWeight: 0.1, Source: rand.NewSource(1)})
	require.NoError(t, err)
	inj.Attach(tr)

	require.False(t, inj.Installed())
	require.NoError(t, tr.Run(context.Background(), noopStep))
	assert.True(t, inj.Installed())

	replaced := tr.Loader()
	require.NotSame(t, original, replaced)

	// Same dataset, batch size and worker count as the original stage.
	assert.Same(t, ds, replaced.Dataset())
	assert.Equal(t, 2, replaced.BatchSize())
	assert.Equal(t, 3, replaced.Workers())

	// The collate function is carried over unchanged.
	got, err := replaced.Collate()(&loader.Batch{Indices: []int{2, 0}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, got)

	// The sampling strategy is the weighted one, with the expected vector:
	// max bias for [1] and [0,1], empty-label weight for the background tile.
	weighted, ok := replaced.Sampler().(*sampler.Weighted)
	require.True(t, ok, "replacement loader must use the weighted sampler")
	assert.Equal(t, []float64{3.5, 3.5, 0.1}, weighted.Weights())
	assert.Equal(t, ds.Len(), weighted.Len())
}

func TestInjector_EmptyDatasetLeavesStageUntouched(t *testing.T) {
	original, err := loader.New(dataset.New(nil, nil), loader.Config{BatchSize: 4})
	require.NoError(t, err)
	tr, err := train.New(original, train.Config{})
	require.NoError(t, err)

	inj, err := train.NewInjector(map[int]float64{0: 2.0}, train.InjectorConfig{})
	require.NoError(t, err)
	inj.Attach(tr)

	err = tr.Run(context.Background(), noopStep)
	assert.ErrorIs(t, err, train.ErrInstallationFailed)
	assert.ErrorIs(t, err, sampler.ErrEmptyDataset)

	assert.Same(t, original, tr.Loader(), "failed installation must not replace the stage")
	assert.False(t, inj.Installed())
}

func TestInjector_SingleUse(t *testing.T) {
	ds := makeDataset([]int{0}, []int{1})
	l, err := loader.New(ds, loader.Config{BatchSize: 1})
	require.NoError(t, err)
	tr, err := train.New(l, train.Config{})
	require.NoError(t, err)

	inj, err := train.NewInjector(nil, train.InjectorConfig{})
	require.NoError(t, err)
	inj.Attach(tr)

	require.NoError(t, tr.Run(context.Background(), noopStep))

	// A second run fires train_start again; the injector must refuse rather
	// than rebuild the stage.
	err = tr.Run(context.Background(), noopStep)
	assert.ErrorIs(t, err, train.ErrInstallationFailed)
}

func TestNewInjector_InvalidTable(t *testing.T) {
	_, err := train.NewInjector(map[int]float64{-1: 2.0}, train.InjectorConfig{})
	assert.ErrorIs(t, err, sampler.ErrInvalidWeightTable)

	_, err = train.NewInjector(map[int]float64{0: -2.0}, train.InjectorConfig{})
	assert.ErrorIs(t, err, sampler.ErrInvalidWeightTable)

	_, err = train.NewInjector(map[int]float64{0: 1.0}, train.InjectorConfig{EmptyLabelWeight: -0.1})
	assert.ErrorIs(t, err, sampler.ErrInvalidWeightTable)
}

func TestNewInjector_DefaultEmptyLabelWeight(t *testing.T) {
	ds := makeDataset(nil, []int{0})
	l, err := loader.New(ds, loader.Config{BatchSize: 1})
	require.NoError(t, err)
	tr, err := train.New(l, train.Config{})
	require.NoError(t, err)

	inj, err := train.NewInjector(nil, train.InjectorConfig{Source: rand.NewSource(2)})
	require.NoError(t, err)
	inj.Attach(tr)

	require.NoError(t, tr.Run(context.Background(), noopStep))

	weighted := tr.Loader().Sampler().(*sampler.Weighted)
	assert.Equal(t, []float64{sampler.DefaultEmptyLabelWeight, 1.0}, weighted.Weights())
}

func TestInjector_PrivateCopyOfCallerTable(t *testing.T) {
	ds := makeDataset([]int{1})
	l, err := loader.New(ds, loader.Config{BatchSize: 1})
	require.NoError(t, err)
	tr, err := train.New(l, train.Config{})
	require.NoError(t, err)

	caller := map[int]float64{1: 3.5}
	inj, err := train.NewInjector(caller, train.InjectorConfig{Source: rand.NewSource(3)})
	require.NoError(t, err)
	inj.Attach(tr)

	// Mutate after construction; the installed weights must not see it.
	caller[1] = 100.0

	require.NoError(t, tr.Run(context.Background(), noopStep))

	weighted := tr.Loader().Sampler().(*sampler.Weighted)
	assert.Equal(t, []float64{3.5}, weighted.Weights())
}
