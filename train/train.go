// Package train provides the public API for the training pipeline host and
// the weighted resampling injector.
//
// The Trainer is a minimal pipeline: it owns the data-loading stage and the
// lifecycle events, and drives batches through a caller-supplied step
// function. The Injector is the reason this package exists: attached to a
// trainer, it replaces the data-loading stage with a class-weighted,
// with-replacement sampling strategy the moment training starts.
//
// Example usage:
//
//	ldr, err := loader.New(ds, loader.Config{BatchSize: 8, Workers: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	trainer, err := train.New(ldr, train.Config{Epochs: 300})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	inj, err := train.NewInjector(map[int]float64{
//	    1: 3.5, // aircraft
//	    5: 5.4, // harbor
//	}, train.InjectorConfig{EmptyLabelWeight: 0.1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inj.Attach(trainer)
//
//	err = trainer.Run(ctx, func(ctx context.Context, batch any) error {
//	    return model.Step(ctx, batch)
//	})
package train

import (
	"github.com/obbkit/obbkit/internal/loader"
	"github.com/obbkit/obbkit/internal/train"
)

// Lifecycle events.
const (
	EventTrainStart = train.EventTrainStart
	EventEpochEnd   = train.EventEpochEnd
	EventTrainEnd   = train.EventTrainEnd
)

// ErrInstallationFailed wraps any failure while substituting the weighted
// data loader at train start. A run seeing it must abort rather than continue
// on the unweighted stage.
var ErrInstallationFailed = train.ErrInstallationFailed

type (
	// Event names a point in the training lifecycle.
	Event = train.Event

	// Hook is a lifecycle callback, run synchronously in registration order.
	Hook = train.Hook

	// StepFunc consumes one collated batch.
	StepFunc = train.StepFunc

	// Config configures a Trainer.
	Config = train.Config

	// Trainer drives batches from a data loader through a step function.
	Trainer = train.Trainer

	// Injector substitutes class-weighted with-replacement sampling into a
	// trainer's data-loading stage at train start.
	Injector = train.Injector

	// InjectorConfig configures an Injector.
	InjectorConfig = train.InjectorConfig
)

// New creates a Trainer over an initial data loader.
func New(l *loader.Loader, cfg Config) (*Trainer, error) {
	return train.New(l, cfg)
}

// NewInjector validates the class weight table and creates an injector in its
// idle state. The table is copied; later mutation of the caller's map has no
// effect.
func NewInjector(classWeights map[int]float64, cfg InjectorConfig) (*Injector, error) {
	return train.NewInjector(classWeights, cfg)
}
