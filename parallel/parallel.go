// Package parallel provides a data-parallel fork-join loop over index
// ranges. Iterations must be independent: they may not block on each other,
// and writes to shared state must target disjoint locations or go through
// concurrency-safe operations.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// sequentialCutoff is the range size below which For runs on the calling
// goroutine; spawning workers for tiny ranges costs more than it saves.
const sequentialCutoff = 1024

// For runs fn(i) for every i in [0, n), splitting the range into contiguous
// chunks across up to GOMAXPROCS goroutines. It returns after every
// iteration has completed. Iteration order within and across chunks is
// unspecified.
func For(n int, fn func(i int)) {
	ForWorkers(n, runtime.GOMAXPROCS(0), fn)
}

// ForWorkers is For with an explicit worker count. If workers <= 1 or the
// range is small, the loop runs sequentially on the calling goroutine.
func ForWorkers(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n <= sequentialCutoff {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	// Each worker owns a contiguous chunk of the range, so chunk boundaries
	// never overlap and fn sees each index exactly once.
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= n {
			break
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	// Workers never return errors; Wait is only the join point.
	_ = g.Wait()
}
