package train

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/obbkit/obbkit/internal/loader"
	"github.com/obbkit/obbkit/internal/sampler"
)

// ErrInstallationFailed wraps any failure while substituting the weighted
// data loader at train start. The run must abort on it: falling back to the
// original loader would silently train on an unweighted distribution.
var ErrInstallationFailed = errors.New("train: weighted sampler installation failed")

// Injector substitutes a class-weighted, with-replacement sampling strategy
// into a trainer's data-loading stage when training starts.
//
// Construction validates and copies the class weight table; Attach registers
// the installation against the trainer's train-start event. On that event the
// injector reads the dataset, batch size, worker count and collate function
// off the current loader, computes one sampling weight per example (the
// maximum class bias in the example, or the empty-label weight when it has no
// annotations), and swaps in a new loader that draws indices with replacement
// in proportion to those weights. The original loader is never mutated and
// stays active if anything fails.
//
// An Injector is single-use: it installs once per trainer run and reports any
// further attempt as ErrInstallationFailed.
//
// Example:
//
//	inj, err := train.NewInjector(map[int]float64{
//	    0: 1.0,  // ship
//	    1: 3.5,  // aircraft
//	    5: 5.4,  // harbor
//	}, train.InjectorConfig{EmptyLabelWeight: 0.1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inj.Attach(trainer)
type Injector struct {
	table     *sampler.ClassWeightTable
	src       rand.Source
	installed bool
	log       *slog.Logger
}

// InjectorConfig configures an Injector.
type InjectorConfig struct {
	// EmptyLabelWeight is the sampling weight for examples with no annotated
	// objects. Zero means sampler.DefaultEmptyLabelWeight. Intended usage
	// keeps it below 1.0 so background tiles do not dominate; values >= 1.0
	// are accepted with a warning.
	EmptyLabelWeight float64

	// Source drives the weighted draws. Nil seeds from the clock. The weight
	// computation itself is deterministic; only the draws consume randomness.
	Source rand.Source

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewInjector validates the class weight table and creates an injector in its
// idle state. Table keys must be non-negative class ids and values positive
// finite biases; violations surface as sampler.ErrInvalidWeightTable before
// any training starts. The table is copied, so the caller's map can be
// mutated freely afterwards.
func NewInjector(classWeights map[int]float64, cfg InjectorConfig) (*Injector, error) {
	if cfg.EmptyLabelWeight == 0 {
		cfg.EmptyLabelWeight = sampler.DefaultEmptyLabelWeight
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	table, err := sampler.NewClassWeightTable(classWeights, cfg.EmptyLabelWeight)
	if err != nil {
		return nil, err
	}
	if cfg.EmptyLabelWeight >= 1 {
		cfg.Logger.Warn("empty-label weight is >= 1; background examples will compete with annotated ones",
			"empty_label_weight", cfg.EmptyLabelWeight)
	}

	return &Injector{table: table, src: cfg.Source, log: cfg.Logger}, nil
}

// Attach registers the injector against the trainer's train-start event. The
// injector reacts to no other lifecycle event.
func (inj *Injector) Attach(t *Trainer) {
	t.On(EventTrainStart, inj.install)
}

// Installed reports whether the injector has already replaced a trainer's
// data-loading stage.
func (inj *Injector) Installed() bool { return inj.installed }

// install runs synchronously on the train-start event and must complete
// before the first training step consumes data. The trainer's loader
// reference is only touched in the final step, so a failure anywhere leaves
// the original stage active.
func (inj *Injector) install(t *Trainer) error {
	if inj.installed {
		return fmt.Errorf("%w: injector already installed", ErrInstallationFailed)
	}

	current := t.Loader()
	ds := current.Dataset()

	weights, err := inj.table.SampleWeights(ds.LabelSets())
	if err != nil {
		return fmt.Errorf("%w: compute sample weights: %w", ErrInstallationFailed, err)
	}
	stats := sampler.Summarize(weights)
	inj.log.Info("computed sampling weights",
		"examples", len(weights), "min", stats.Min, "max", stats.Max, "mean", stats.Mean)

	weighted, err := sampler.NewWeighted(weights, inj.src)
	if err != nil {
		return fmt.Errorf("%w: build weighted sampler: %w", ErrInstallationFailed, err)
	}

	replacement, err := loader.New(ds, loader.Config{
		BatchSize: current.BatchSize(),
		Workers:   current.Workers(),
		Collate:   current.Collate(),
		Sampler:   weighted,
	})
	if err != nil {
		return fmt.Errorf("%w: rebuild data loader: %w", ErrInstallationFailed, err)
	}

	t.SetLoader(replacement)
	inj.installed = true
	inj.log.Info("weighted sampling installed",
		"batch_size", replacement.BatchSize(), "workers", replacement.Workers())
	return nil
}
