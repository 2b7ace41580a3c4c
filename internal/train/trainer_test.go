package train_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbkit/obbkit/internal/dataset"
	"github.com/obbkit/obbkit/internal/loader"
	"github.com/obbkit/obbkit/internal/train"
)

// makeDataset builds an in-memory dataset with one example per label set.
func makeDataset(labelSets ...[]int) *dataset.Dataset {
	examples := make([]dataset.Example, len(labelSets))
	for i, set := range labelSets {
		anns := make([]dataset.Annotation, len(set))
		for j, class := range set {
			anns[j] = dataset.Annotation{Class: class}
		}
		examples[i] = dataset.Example{
			Image:       fmt.Sprintf("img_%03d.png", i),
			Annotations: anns,
		}
	}
	return dataset.New(examples, nil)
}

func makeTrainer(t *testing.T, cfg train.Config, labelSets ...[]int) (*train.Trainer, *loader.Loader) {
	t.Helper()
	l, err := loader.New(makeDataset(labelSets...), loader.Config{BatchSize: 2})
	require.NoError(t, err)
	tr, err := train.New(l, cfg)
	require.NoError(t, err)
	return tr, l
}

func TestTrainer_RunCountsBatches(t *testing.T) {
	// 5 examples, batch size 2 -> 3 batches per epoch.
	tr, _ := makeTrainer(t, train.Config{Epochs: 2}, []int{0}, []int{1}, nil, []int{0}, []int{1})

	steps := 0
	err := tr.Run(context.Background(), func(context.Context, any) error {
		steps++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, steps)
}

func TestTrainer_HookOrderAndEvents(t *testing.T) {
	tr, _ := makeTrainer(t, train.Config{Epochs: 2}, []int{0}, []int{1})

	var events []string
	record := func(name string) train.Hook {
		return func(*train.Trainer) error {
			events = append(events, name)
			return nil
		}
	}
	tr.On(train.EventTrainStart, record("start-a"))
	tr.On(train.EventTrainStart, record("start-b"))
	tr.On(train.EventEpochEnd, record("epoch"))
	tr.On(train.EventTrainEnd, record("end"))

	err := tr.Run(context.Background(), func(context.Context, any) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"start-a", "start-b", "epoch", "epoch", "end"}, events)
}

func TestTrainer_HookErrorAbortsBeforeData(t *testing.T) {
	tr, _ := makeTrainer(t, train.Config{}, []int{0}, []int{1})

	boom := errors.New("refuse to start")
	tr.On(train.EventTrainStart, func(*train.Trainer) error { return boom })

	steps := 0
	err := tr.Run(context.Background(), func(context.Context, any) error {
		steps++
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, steps, "no batch may be consumed after a start hook failure")
}

func TestTrainer_StepErrorStopsRun(t *testing.T) {
	tr, _ := makeTrainer(t, train.Config{Epochs: 3}, []int{0}, []int{1})

	boom := errors.New("diverged")
	err := tr.Run(context.Background(), func(context.Context, any) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestTrainer_ContextCancellation(t *testing.T) {
	tr, _ := makeTrainer(t, train.Config{Epochs: 100}, []int{0}, []int{1}, []int{2})

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err := tr.Run(ctx, func(context.Context, any) error {
		steps++
		if steps == 3 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrainer_SetLoaderSwapsStage(t *testing.T) {
	tr, original := makeTrainer(t, train.Config{}, []int{0}, []int{1})

	replacement, err := loader.New(makeDataset([]int{5}), loader.Config{BatchSize: 1})
	require.NoError(t, err)

	tr.On(train.EventTrainStart, func(inner *train.Trainer) error {
		inner.SetLoader(replacement)
		return nil
	})

	batches := 0
	err = tr.Run(context.Background(), func(_ context.Context, batch any) error {
		batches++
		b := batch.(*loader.Batch)
		assert.Equal(t, []int{0}, b.Indices)
		assert.Equal(t, 5, b.Examples[0].Annotations[0].Class)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, batches, "run must consume the swapped-in loader")
	assert.NotSame(t, original, tr.Loader())
}

func TestTrainer_RunID(t *testing.T) {
	a, _ := makeTrainer(t, train.Config{}, []int{0})
	b, _ := makeTrainer(t, train.Config{}, []int{0})

	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestNew_NilLoader(t *testing.T) {
	_, err := train.New(nil, train.Config{})
	assert.Error(t, err)
}
