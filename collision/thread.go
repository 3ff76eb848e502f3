// Package collision builds the per-step contact constraints the ADMM
// solver (package solver) folds into its global linear system: a floor
// test, an obstacle signed-distance test, and an embedded-mesh
// self-collision test, all evaluated over striped vertex ranges so the
// work splits evenly across goroutines regardless of how vertices
// cluster in space.
package collision

import (
	"runtime"
	"sync"
)

// StripeThreads resolves n<=0 to runtime.NumCPU(), matching the solver
// Options convention that max_threads=-1 means "auto".
func StripeThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ParallelStripe calls fn(i) for every i in [0,count) distributed across
// nthreads goroutines by the interleaved assignment vi = i*nthreads+tid,
// so any spatial locality in the index ordering spreads evenly across
// threads instead of handing one thread a contiguous, possibly unevenly
// expensive, run.
func ParallelStripe(count, nthreads int, fn func(i int)) {
	nthreads = StripeThreads(nthreads)
	if count == 0 {
		return
	}
	if nthreads > count {
		nthreads = count
	}
	if nthreads <= 1 {
		for i := 0; i < count; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(nthreads)
	for tid := 0; tid < nthreads; tid++ {
		tid := tid
		go func() {
			defer wg.Done()
			for i := tid; i < count; i += nthreads {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
