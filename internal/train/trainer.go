// Package train hosts a minimal training pipeline: lifecycle events, a
// swappable data-loading stage and an epoch loop that drives batches through
// a caller-supplied step function. The model, loss, optimizer and
// checkpointing live behind that step function and are not this package's
// concern. Its one piece of real machinery is the Injector, which substitutes
// a class-weighted sampling strategy into the pipeline at train start.
package train

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/obbkit/obbkit/internal/loader"
)

// Event names a point in the training lifecycle where registered hooks run.
type Event string

const (
	// EventTrainStart fires exactly once per run, before the first batch is
	// drawn. Anything that needs to replace the data-loading stage must do it
	// here.
	EventTrainStart Event = "train_start"

	// EventEpochEnd fires after every completed epoch.
	EventEpochEnd Event = "epoch_end"

	// EventTrainEnd fires once after the final epoch.
	EventTrainEnd Event = "train_end"
)

// Hook is a lifecycle callback. Hooks run synchronously on the trainer's
// goroutine in registration order; a hook error aborts the run.
type Hook func(*Trainer) error

// StepFunc consumes one collated batch. The batch value is whatever the
// loader's collate function produced.
type StepFunc func(ctx context.Context, batch any) error

// Config configures a Trainer.
type Config struct {
	Epochs int          // number of full passes (default 1)
	Logger *slog.Logger // defaults to slog.Default()
}

// Trainer drives batches from a data loader through a step function.
//
// Example:
//
//	trainer, err := train.New(ldr, train.Config{Epochs: 300})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	injector.Attach(trainer)
//	err = trainer.Run(ctx, func(ctx context.Context, batch any) error {
//	    return model.Step(ctx, batch)
//	})
type Trainer struct {
	runID  string
	ldr    *loader.Loader
	hooks  map[Event][]Hook
	epochs int
	epoch  int
	log    *slog.Logger
}

// New creates a Trainer over an initial data loader.
func New(l *loader.Loader, cfg Config) (*Trainer, error) {
	if l == nil {
		return nil, errors.New("train: nil loader")
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Trainer{
		runID:  uuid.NewString(),
		ldr:    l,
		hooks:  make(map[Event][]Hook),
		epochs: cfg.Epochs,
		log:    cfg.Logger,
	}, nil
}

// RunID returns the unique identifier of this trainer's run.
func (t *Trainer) RunID() string { return t.runID }

// Loader returns the active data-loading stage.
func (t *Trainer) Loader() *loader.Loader { return t.ldr }

// SetLoader replaces the active data-loading stage. Hooks run synchronously
// on the trainer's goroutine before any batch is drawn, so the single
// assignment is the whole handoff.
func (t *Trainer) SetLoader(l *loader.Loader) { t.ldr = l }

// Epoch returns the zero-based index of the epoch currently running.
func (t *Trainer) Epoch() int { return t.epoch }

// Epochs returns the configured number of epochs.
func (t *Trainer) Epochs() int { return t.epochs }

// Logger returns the trainer's logger.
func (t *Trainer) Logger() *slog.Logger { return t.log }

// On registers a hook against a lifecycle event. Hooks for the same event
// run in registration order.
func (t *Trainer) On(ev Event, fn Hook) {
	t.hooks[ev] = append(t.hooks[ev], fn)
}

func (t *Trainer) fire(ev Event) error {
	for _, fn := range t.hooks[ev] {
		if err := fn(t); err != nil {
			return fmt.Errorf("train: %s hook: %w", ev, err)
		}
	}
	return nil
}

// Run executes the configured number of epochs, calling step once per batch.
// EventTrainStart fires before the first batch of the run is drawn; a hook
// error there aborts the run without consuming any data.
func (t *Trainer) Run(ctx context.Context, step StepFunc) error {
	t.log.Info("starting training run",
		"run", t.runID, "epochs", t.epochs, "examples", t.ldr.Dataset().Len())

	if err := t.fire(EventTrainStart); err != nil {
		return err
	}

	for epoch := 0; epoch < t.epochs; epoch++ {
		t.epoch = epoch

		batches, err := t.ldr.Epoch()
		if err != nil {
			return fmt.Errorf("train: epoch %d: %w", epoch, err)
		}
		for _, batch := range batches {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := step(ctx, batch); err != nil {
				return fmt.Errorf("train: epoch %d: %w", epoch, err)
			}
		}

		t.log.Debug("epoch complete", "run", t.runID, "epoch", epoch, "batches", len(batches))
		if err := t.fire(EventEpochEnd); err != nil {
			return err
		}
	}

	return t.fire(EventTrainEnd)
}
