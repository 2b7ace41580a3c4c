// Package loader batches dataset examples for training. A Loader combines a
// dataset, a sampler deciding the index order, a batch size, a parallel fetch
// worker count and an opaque collate function; rebuilding a Loader with a
// different sampler while keeping everything else is how weighted resampling
// is installed into a run.
package loader

import (
	"errors"
	"fmt"

	"github.com/obbkit/obbkit/internal/dataset"
	"github.com/obbkit/obbkit/internal/parallel"
	"github.com/obbkit/obbkit/internal/sampler"
)

// DefaultBatchSize is used when the config leaves the batch size unset.
const DefaultBatchSize = 8

// Batch is one mini-batch of fetched examples. Indices are the sampler draws
// that produced it, in draw order.
type Batch struct {
	Indices  []int
	Examples []dataset.Example
}

// CollateFunc assembles a fetched batch into the value handed to the training
// step. It is opaque to the loader and is carried over unchanged when a
// loader is rebuilt around a new sampler.
type CollateFunc func(batch *Batch) (any, error)

// Config configures a Loader.
type Config struct {
	BatchSize int             // examples per batch (default DefaultBatchSize)
	Workers   int             // parallel batch-assembly goroutines; <2 means synchronous
	Sampler   sampler.Sampler // epoch index order (default: sequential)
	Collate   CollateFunc     // batch assembly (default: the *Batch itself)
}

// Loader draws example indices from its sampler and yields collated batches,
// one epoch at a time.
type Loader struct {
	ds  *dataset.Dataset
	cfg Config
}

// New creates a Loader over a dataset, applying defaults for unset fields.
func New(ds *dataset.Dataset, cfg Config) (*Loader, error) {
	if ds == nil {
		return nil, errors.New("loader: nil dataset")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	if cfg.Sampler == nil {
		cfg.Sampler = sampler.NewSequential(ds.Len())
	}
	if cfg.Collate == nil {
		cfg.Collate = func(b *Batch) (any, error) { return b, nil }
	}
	return &Loader{ds: ds, cfg: cfg}, nil
}

// Dataset returns the underlying dataset.
func (l *Loader) Dataset() *dataset.Dataset { return l.ds }

// BatchSize returns the configured batch size.
func (l *Loader) BatchSize() int { return l.cfg.BatchSize }

// Workers returns the configured parallel fetch worker count.
func (l *Loader) Workers() int { return l.cfg.Workers }

// Sampler returns the sampler deciding the epoch index order.
func (l *Loader) Sampler() sampler.Sampler { return l.cfg.Sampler }

// Collate returns the batch-assembly function.
func (l *Loader) Collate() CollateFunc { return l.cfg.Collate }

// Epoch draws one full pass of indices from the sampler and returns the
// collated batches in draw order. The final batch may be short. Batches are
// assembled by the configured number of workers; order is preserved
// regardless.
func (l *Loader) Epoch() ([]any, error) {
	indices := l.cfg.Sampler.Indices()
	if len(indices) == 0 {
		return nil, errors.New("loader: sampler produced an empty epoch")
	}

	numBatches := (len(indices) + l.cfg.BatchSize - 1) / l.cfg.BatchSize
	batches := make([]any, numBatches)
	errs := make([]error, numBatches)

	parallel.For(numBatches, func(b int) {
		start := b * l.cfg.BatchSize
		end := min(start+l.cfg.BatchSize, len(indices))

		batch := &Batch{
			Indices:  indices[start:end],
			Examples: make([]dataset.Example, end-start),
		}
		for j, idx := range batch.Indices {
			batch.Examples[j] = l.ds.Example(idx)
		}
		batches[b], errs[b] = l.cfg.Collate(batch)
	}, parallel.Config{
		Enabled:  l.cfg.Workers > 1,
		Workers:  l.cfg.Workers,
		MinChunk: 1,
	})

	for b, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("loader: collate batch %d: %w", b, err)
		}
	}
	return batches, nil
}
