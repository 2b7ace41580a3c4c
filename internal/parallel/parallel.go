// Package parallel provides the worker-chunking helper the data loader uses
// to fetch and collate batches concurrently.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled  bool // Whether parallel execution is enabled.
	Workers  int  // Number of worker goroutines to use.
	MinChunk int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:  n > 1,
		Workers:  n,
		MinChunk: 1,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small to be worth splitting.
func For(n int, f func(i int), cfg Config) {
	if cfg.MinChunk < 1 {
		cfg.MinChunk = 1
	}
	if !cfg.Enabled || cfg.Workers < 2 || n <= cfg.MinChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
