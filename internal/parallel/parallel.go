// Package parallel splits index ranges across goroutines for the CPU kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// chunkSize returns the number of items per goroutine, or n when the range
// should run sequentially.
func (c Config) chunkSize(n int) int {
	if !c.Enabled || c.NumWorkers <= 1 || n < 2*max(c.MinChunkSize, 1) {
		return n
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// Chunks calls f(start, end) over disjoint ranges covering [0, n).
// Ranges run concurrently when cfg allows it. The first error returned by
// any call is returned; remaining ranges still run to completion.
func Chunks(n int, cfg Config, f func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	size := cfg.chunkSize(n)
	if size >= n {
		return f(0, n)
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += size {
		start := start
		end := min(start+size, n)
		g.Go(func() error {
			return f(start, end)
		})
	}
	return g.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	_ = Chunks(n, cfg, func(start, end int) error {
		for i := start; i < end; i++ {
			f(i)
		}
		return nil
	})
}
