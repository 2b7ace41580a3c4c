// Package loader provides the public API for batching dataset examples.
//
// This package wraps the internal loader implementation. A Loader combines a
// dataset, a sampler deciding the epoch index order, a batch size, a parallel
// fetch worker count and an opaque collate function. Rebuilding a loader with
// a different sampler while carrying everything else over unchanged is how
// the weighted resampling injector installs itself into a training run.
//
// Example usage:
//
//	ldr, err := loader.New(ds, loader.Config{
//	    BatchSize: 8,
//	    Workers:   8,
//	    Sampler:   sampler.NewShuffled(ds.Len(), nil),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	batches, err := ldr.Epoch()
package loader

import (
	"github.com/obbkit/obbkit/internal/dataset"
	"github.com/obbkit/obbkit/internal/loader"
)

// DefaultBatchSize is used when the config leaves the batch size unset.
const DefaultBatchSize = loader.DefaultBatchSize

type (
	// Batch is one mini-batch of fetched examples with the sampler draws
	// that produced it.
	Batch = loader.Batch

	// CollateFunc assembles a fetched batch into the value handed to the
	// training step.
	CollateFunc = loader.CollateFunc

	// Config configures a Loader.
	Config = loader.Config

	// Loader draws example indices from its sampler and yields collated
	// batches, one epoch at a time.
	Loader = loader.Loader
)

// New creates a Loader over a dataset, applying defaults for unset fields.
func New(ds *dataset.Dataset, cfg Config) (*Loader, error) {
	return loader.New(ds, cfg)
}
