package parallel

import (
	"runtime"
	"sync"
)

// Rows splits the rows [0, n) into at most workers contiguous bands and runs
// fn once per band, each band on its own goroutine. It returns when every
// band has finished. workers < 1 uses GOMAXPROCS. A single band runs on the
// calling goroutine.
func Rows(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	for i := range workers {
		lo, hi := band(n, workers, i)
		wg.Go(func() {
			fn(lo, hi)
		})
	}
	wg.Wait()
}

// band returns the i-th of k near-equal slices of [0, n).
func band(n, k, i int) (lo, hi int) {
	return i * n / k, (i + 1) * n / k
}
